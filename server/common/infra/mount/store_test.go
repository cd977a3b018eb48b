package mount

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"media_gateway/server/common/infra/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return st
}

func TestResolverContainment(t *testing.T) {
	r, err := NewResolver(t.TempDir())
	require.NoError(t, err)

	full, err := r.Resolve("supplier-media/acme/logo.png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(full, r.Root()+string(filepath.Separator)))

	for _, key := range []string{"../outside", "supplier-media/../../x", "/", ""} {
		_, err := r.Resolve(key)
		assert.ErrorIs(t, err, storage.ErrPathTraversal, "key %q", key)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	payload := []byte("not really a jpeg")
	require.NoError(t, st.Write(ctx, "supplier-media/acme/a.jpg", payload))

	reader, info, err := st.ReadStream(ctx, "supplier-media/acme/a.jpg")
	require.NoError(t, err)
	defer reader.Close()

	got, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	assert.Equal(t, "a.jpg", info.Name)
	assert.Equal(t, int64(len(payload)), info.Size)
	assert.Equal(t, "image/jpeg", info.ContentType)
	assert.False(t, info.ModTime.IsZero())
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Write(ctx, "supplier-media/acme/a.jpg", []byte("x")))

	entries, err := os.ReadDir(filepath.Join(st.Resolver().Root(), "supplier-media", "acme"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.jpg", entries[0].Name())
}

func TestWriteOverwritesSameSlot(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Write(ctx, "supplier-media/acme/a.jpg", []byte("first")))
	require.NoError(t, st.Write(ctx, "supplier-media/acme/a.jpg", []byte("second")))

	reader, info, err := st.ReadStream(ctx, "supplier-media/acme/a.jpg")
	require.NoError(t, err)
	defer reader.Close()
	got, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))
	assert.Equal(t, int64(6), info.Size)
}

func TestReadMissingFile(t *testing.T) {
	st := newTestStore(t)
	_, _, err := st.ReadStream(context.Background(), "supplier-media/acme/nope.png")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRemoveIsNotIdempotent(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Write(ctx, "supplier-media/acme/a.jpg", []byte("x")))
	require.NoError(t, st.Remove(ctx, "supplier-media/acme/a.jpg"))
	assert.ErrorIs(t, st.Remove(ctx, "supplier-media/acme/a.jpg"), storage.ErrNotFound)
}

func TestListMissingTenantIsEmpty(t *testing.T) {
	st := newTestStore(t)
	files, err := st.List(context.Background(), "supplier-media/ghost")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestListSkipsDirectories(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Write(ctx, "supplier-media/acme/a.jpg", []byte("x")))
	require.NoError(t, st.Write(ctx, "supplier-media/acme/nested/b.jpg", []byte("y")))

	files, err := st.List(ctx, "supplier-media/acme")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "a.jpg", files[0].Name)
}
