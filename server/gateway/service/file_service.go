package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"media_gateway/server/common/infra/cache"
	"media_gateway/server/common/infra/storage"
	commonlog "media_gateway/server/common/log"
	"media_gateway/server/common/netaddr"
	"media_gateway/server/gateway/domain"
)

const (
	mediaPrefix   = "supplier-media"
	defaultTenant = "default"
)

// Config is the request-independent part of the service, built once at
// startup.
type Config struct {
	// PublicHost overrides automatic address discovery in generated URLs.
	// Empty means resolve the host's non-loopback IPv4 on every call.
	PublicHost string
	Port       string
}

// Ledger records storage events durably for audit.
type Ledger interface {
	Record(ctx context.Context, event domain.StorageEvent) error
}

// FileService wires the naming, normalization and storage steps behind
// the gateway's operations. The listing cache, ledger and event sink are
// optional collaborators attached after construction.
type FileService struct {
	cfg    Config
	store  storage.Store
	cache  *cache.ListingCache
	ledger Ledger
	events EventSink
}

func NewFileService(cfg Config, store storage.Store) *FileService {
	return &FileService{cfg: cfg, store: store}
}

func (s *FileService) UseListingCache(c *cache.ListingCache) {
	s.cache = c
}

func (s *FileService) UseLedger(l Ledger) {
	s.ledger = l
}

func (s *FileService) UseEvents(sink EventSink) {
	s.events = sink
}

type UploadInput struct {
	TenantID     string
	FileName     string
	OriginalName string
	ContentType  string
	Data         []byte
}

// Upload normalizes (images only), names and persists one file, then
// reports the committed event to the ledger, MQ and websocket listeners.
func (s *FileService) Upload(ctx context.Context, in UploadInput) (domain.UploadResult, error) {
	tenant, err := tenantOrDefault(in.TenantID)
	if err != nil {
		return domain.UploadResult{}, err
	}
	name, err := storage.CleanSegment(NewStoredName(in.FileName, in.OriginalName))
	if err != nil {
		return domain.UploadResult{}, err
	}

	data := NormalizeImage(in.Data, in.ContentType)

	key := path.Join(mediaPrefix, tenant, name)
	if err := s.store.Write(ctx, key, data); err != nil {
		return domain.UploadResult{}, err
	}
	s.invalidateListing(ctx, tenant)
	s.emit(ctx, domain.StorageEvent{
		Action:       domain.ActionUpload,
		TenantID:     tenant,
		Path:         key,
		Filename:     name,
		Size:         int64(len(data)),
		ContentType:  in.ContentType,
		OriginalName: in.OriginalName,
		At:           time.Now().UTC(),
	})

	return domain.UploadResult{
		URL:          s.fileURL(key),
		Path:         key,
		Filename:     name,
		Size:         int64(len(data)),
		OriginalName: in.OriginalName,
	}, nil
}

// Fetch returns a single-pass reader over the stored bytes. The caller
// owns closing the reader, also when it abandons the stream early.
func (s *FileService) Fetch(ctx context.Context, key string) (io.ReadCloser, storage.FileInfo, error) {
	return s.store.ReadStream(ctx, key)
}

func (s *FileService) Delete(ctx context.Context, key string) error {
	cleaned, err := storage.CleanKey(key)
	if err != nil {
		return err
	}
	if err := s.store.Remove(ctx, cleaned); err != nil {
		return err
	}
	tenant := tenantFromKey(cleaned)
	if tenant != "" {
		s.invalidateListing(ctx, tenant)
	}
	s.emit(ctx, domain.StorageEvent{
		Action:   domain.ActionDelete,
		TenantID: tenant,
		Path:     cleaned,
		Filename: path.Base(cleaned),
		At:       time.Now().UTC(),
	})
	return nil
}

// List enumerates a tenant's files. A tenant with no uploads yields an
// empty slice; enumeration order follows the backend and is not stable.
func (s *FileService) List(ctx context.Context, tenantID string) ([]domain.StoredFile, error) {
	tenant, err := tenantOrDefault(tenantID)
	if err != nil {
		return nil, err
	}

	infos, cached := s.cachedListing(ctx, tenant)
	if !cached {
		infos, err = s.store.List(ctx, path.Join(mediaPrefix, tenant))
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			s.cache.Set(ctx, tenant, infos)
		}
	}

	files := make([]domain.StoredFile, 0, len(infos))
	for _, info := range infos {
		files = append(files, domain.StoredFile{
			Name:     info.Name,
			Size:     info.Size,
			Modified: info.ModTime,
			URL:      s.fileURL(path.Join(mediaPrefix, tenant, info.Name)),
		})
	}
	return files, nil
}

func (s *FileService) fileURL(key string) string {
	host := s.cfg.PublicHost
	if host == "" {
		host = netaddr.LocalIPv4()
	}
	return fmt.Sprintf("http://%s:%s/files/%s", host, s.cfg.Port, key)
}

func (s *FileService) cachedListing(ctx context.Context, tenant string) ([]storage.FileInfo, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.Get(ctx, tenant)
}

func (s *FileService) invalidateListing(ctx context.Context, tenant string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, tenant)
	}
}

func (s *FileService) emit(ctx context.Context, event domain.StorageEvent) {
	if s.ledger != nil {
		if err := s.ledger.Record(ctx, event); err != nil {
			commonlog.Warnf("record storage event %s %s: %v", event.Action, event.Path, err)
		}
	}
	if s.events != nil {
		s.events.Publish(ctx, event)
	}
}

func tenantOrDefault(tenantID string) (string, error) {
	if strings.TrimSpace(tenantID) == "" {
		return defaultTenant, nil
	}
	return storage.CleanSegment(tenantID)
}

func tenantFromKey(key string) string {
	parts := strings.Split(key, "/")
	if len(parts) >= 2 && parts[0] == mediaPrefix {
		return parts[1]
	}
	return ""
}
