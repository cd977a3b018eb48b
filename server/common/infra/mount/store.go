package mount

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"media_gateway/server/common/infra/storage"
)

// Store persists files under a network-mounted share made visible as an
// ordinary directory tree. Writes go to a temp file in the target
// directory and are renamed into place, so a concurrent reader never
// observes a partial file.
type Store struct {
	resolver *Resolver
}

func NewStore(root string) (*Store, error) {
	resolver, err := NewResolver(root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}
	if err := os.MkdirAll(resolver.Root(), 0o755); err != nil {
		return nil, fmt.Errorf("ensure storage root: %w", err)
	}
	return &Store{resolver: resolver}, nil
}

func (s *Store) Resolver() *Resolver {
	return s.resolver
}

func (s *Store) Write(ctx context.Context, key string, data []byte) error {
	full, err := s.resolver.Resolve(key)
	if err != nil {
		return err
	}
	// MkdirAll is idempotent, so concurrent first uploads to a new tenant
	// directory cannot race each other.
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create tenant directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(full), ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), full); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("commit file: %w", err)
	}
	return nil
}

func (s *Store) ReadStream(ctx context.Context, key string) (io.ReadCloser, storage.FileInfo, error) {
	full, err := s.resolver.Resolve(key)
	if err != nil {
		return nil, storage.FileInfo{}, err
	}
	f, err := os.Open(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, storage.FileInfo{}, storage.ErrNotFound
		}
		return nil, storage.FileInfo{}, fmt.Errorf("open file: %w", err)
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, storage.FileInfo{}, fmt.Errorf("stat file: %w", err)
	}
	if st.IsDir() {
		_ = f.Close()
		return nil, storage.FileInfo{}, storage.ErrNotFound
	}
	info := storage.FileInfo{
		Name:        filepath.Base(full),
		Size:        st.Size(),
		ModTime:     st.ModTime(),
		ContentType: storage.ContentTypeByExtension(full),
	}
	return f, info, nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	full, err := s.resolver.Resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

// List enumerates the regular files directly inside dir. A missing
// directory yields an empty listing, not an error. Enumeration order is
// whatever the filesystem reports.
func (s *Store) List(ctx context.Context, dir string) ([]storage.FileInfo, error) {
	full, err := s.resolver.Resolve(dir)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []storage.FileInfo{}, nil
		}
		return nil, fmt.Errorf("read tenant directory: %w", err)
	}
	files := make([]storage.FileInfo, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		st, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, storage.FileInfo{
			Name:        entry.Name(),
			Size:        st.Size(),
			ModTime:     st.ModTime(),
			ContentType: storage.ContentTypeByExtension(entry.Name()),
		})
	}
	return files, nil
}
