package mount

import (
	"path/filepath"
	"strings"

	"media_gateway/server/common/infra/storage"
)

// Resolver maps logical keys to absolute paths under the mounted share
// root. Resolution is pure computation; directory creation happens in the
// store right before a write.
type Resolver struct {
	root string
}

func NewResolver(root string) (*Resolver, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	return &Resolver{root: abs}, nil
}

func (r *Resolver) Root() string {
	return r.root
}

// Resolve cleans key and joins it under the root, guaranteeing the result
// is a strict descendant of the root.
func (r *Resolver) Resolve(key string) (string, error) {
	cleaned, err := storage.CleanKey(key)
	if err != nil {
		return "", err
	}
	full := filepath.Join(r.root, filepath.FromSlash(cleaned))
	if !strings.HasPrefix(full, r.root+string(filepath.Separator)) {
		return "", storage.ErrPathTraversal
	}
	return full, nil
}
