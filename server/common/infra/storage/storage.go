package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"
)

var (
	// ErrNotFound reports a read or remove against a path with no file.
	ErrNotFound = errors.New("file not found")
	// ErrPathTraversal reports a key whose normalized form escapes the
	// storage root. It is never corrected, always surfaced.
	ErrPathTraversal = errors.New("path escapes storage root")
)

// FileInfo describes one stored file.
type FileInfo struct {
	Name        string
	Size        int64
	ModTime     time.Time
	ContentType string
}

// Store is the byte-level backend behind the gateway. Keys are
// slash-separated logical paths relative to the storage root; every
// implementation must clean keys and refuse traversal before touching the
// backend.
type Store interface {
	Write(ctx context.Context, key string, data []byte) error
	ReadStream(ctx context.Context, key string) (io.ReadCloser, FileInfo, error)
	Remove(ctx context.Context, key string) error
	List(ctx context.Context, dir string) ([]FileInfo, error)
}

// CleanKey normalizes a logical key and rejects any form that could escape
// the storage root: ".." segments, absolute paths, backslashes, empty keys.
// A single leading slash (the route wildcard separator) is tolerated.
func CleanKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	key = strings.TrimPrefix(key, "/")
	if key == "" || strings.Contains(key, "\\") || strings.ContainsRune(key, 0) {
		return "", ErrPathTraversal
	}
	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || path.IsAbs(cleaned) || strings.HasPrefix(cleaned, "../") {
		return "", ErrPathTraversal
	}
	return cleaned, nil
}

// CleanSegment validates a single path element (a tenant id or file name).
func CleanSegment(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "." || s == ".." {
		return "", ErrPathTraversal
	}
	if strings.ContainsAny(s, "/\\") || strings.ContainsRune(s, 0) {
		return "", ErrPathTraversal
	}
	return s, nil
}

var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".ogg":  "video/ogg",
}

// ContentTypeByExtension derives the content type served for a file from
// its extension alone.
func ContentTypeByExtension(name string) string {
	if ct, ok := contentTypes[strings.ToLower(path.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}
