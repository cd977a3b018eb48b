package object

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"media_gateway/server/common/infra/storage"
)

func NewClient(endpoint, accessKey, secretKey string, useSSL bool) (*minio.Client, error) {
	return minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
}

func EnsureBucket(ctx context.Context, client *minio.Client, bucket string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
}

// Store is the object-storage backend. Logical keys become object keys
// inside a single bucket; object PUTs are atomic at the backend, so no
// temp-and-rename dance is needed here.
type Store struct {
	client *minio.Client
	bucket string
}

func NewStore(client *minio.Client, bucket string) *Store {
	return &Store{client: client, bucket: bucket}
}

func (s *Store) Write(ctx context.Context, key string, data []byte) error {
	cleaned, err := storage.CleanKey(key)
	if err != nil {
		return err
	}
	reader := bytes.NewReader(data)
	_, err = s.client.PutObject(ctx, s.bucket, cleaned, reader, int64(reader.Len()), minio.PutObjectOptions{
		ContentType: storage.ContentTypeByExtension(cleaned),
	})
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}

func (s *Store) ReadStream(ctx context.Context, key string) (io.ReadCloser, storage.FileInfo, error) {
	cleaned, err := storage.CleanKey(key)
	if err != nil {
		return nil, storage.FileInfo{}, err
	}
	obj, err := s.client.GetObject(ctx, s.bucket, cleaned, minio.GetObjectOptions{})
	if err != nil {
		return nil, storage.FileInfo{}, fmt.Errorf("get object: %w", err)
	}
	stat, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		if isNoSuchKey(err) {
			return nil, storage.FileInfo{}, storage.ErrNotFound
		}
		return nil, storage.FileInfo{}, fmt.Errorf("stat object: %w", err)
	}
	info := storage.FileInfo{
		Name:        path.Base(cleaned),
		Size:        stat.Size,
		ModTime:     stat.LastModified,
		ContentType: storage.ContentTypeByExtension(cleaned),
	}
	return obj, info, nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	cleaned, err := storage.CleanKey(key)
	if err != nil {
		return err
	}
	// RemoveObject succeeds on absent keys, so stat first to keep
	// delete-of-already-deleted reporting NotFound.
	if _, err := s.client.StatObject(ctx, s.bucket, cleaned, minio.StatObjectOptions{}); err != nil {
		if isNoSuchKey(err) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("stat object: %w", err)
	}
	if err := s.client.RemoveObject(ctx, s.bucket, cleaned, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object: %w", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context, dir string) ([]storage.FileInfo, error) {
	cleaned, err := storage.CleanKey(dir)
	if err != nil {
		return nil, err
	}
	files := make([]storage.FileInfo, 0)
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    cleaned + "/",
		Recursive: false,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list objects: %w", obj.Err)
		}
		if obj.Key == "" || obj.Key[len(obj.Key)-1] == '/' {
			continue
		}
		files = append(files, storage.FileInfo{
			Name:        path.Base(obj.Key),
			Size:        obj.Size,
			ModTime:     obj.LastModified,
			ContentType: storage.ContentTypeByExtension(obj.Key),
		})
	}
	return files, nil
}

func isNoSuchKey(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.StatusCode == 404
}
