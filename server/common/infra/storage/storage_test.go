package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"supplier-media/acme/logo.png", "supplier-media/acme/logo.png"},
		{"/supplier-media/acme/logo.png", "supplier-media/acme/logo.png"},
		{"supplier-media//acme/./logo.png", "supplier-media/acme/logo.png"},
		{"  supplier-media/acme/a.jpg", "supplier-media/acme/a.jpg"},
	}
	for _, tc := range cases {
		got, err := CleanKey(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}
}

func TestCleanKeyRejectsTraversal(t *testing.T) {
	bad := []string{
		"",
		"/",
		"..",
		"../etc/passwd",
		"supplier-media/../../etc/passwd",
		"//etc/passwd",
		"supplier-media\\acme\\x",
		".",
	}
	for _, in := range bad {
		_, err := CleanKey(in)
		assert.ErrorIs(t, err, ErrPathTraversal, "input %q", in)
	}
}

func TestCleanSegment(t *testing.T) {
	got, err := CleanSegment(" acme ")
	require.NoError(t, err)
	assert.Equal(t, "acme", got)

	for _, in := range []string{"", ".", "..", "a/b", `a\b`} {
		_, err := CleanSegment(in)
		assert.ErrorIs(t, err, ErrPathTraversal, "input %q", in)
	}
}

func TestContentTypeByExtension(t *testing.T) {
	cases := map[string]string{
		"a.jpg":       "image/jpeg",
		"a.JPEG":      "image/jpeg",
		"a.png":       "image/png",
		"a.gif":       "image/gif",
		"a.webp":      "image/webp",
		"a.mp4":       "video/mp4",
		"a.webm":      "video/webm",
		"a.ogg":       "video/ogg",
		"a.pdf":       "application/octet-stream",
		"no-ext":      "application/octet-stream",
		"dir/b.jpeg":  "image/jpeg",
		"x.tar.gz":    "application/octet-stream",
	}
	for name, want := range cases {
		assert.Equal(t, want, ContentTypeByExtension(name), name)
	}
}
