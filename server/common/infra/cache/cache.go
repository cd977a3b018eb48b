package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"media_gateway/server/common/infra/storage"
	commonlog "media_gateway/server/common/log"
)

func NewClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

func Ping(ctx context.Context, c *redis.Client) error {
	return c.Ping(ctx).Err()
}

// ListingCache keeps per-tenant directory listings for a short TTL so that
// repeated list calls do not hit the (slow) network share every time.
// Every operation is best-effort: a cache failure degrades to a direct
// listing, never to a request failure.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewListingCache(client *redis.Client, ttl time.Duration) *ListingCache {
	return &ListingCache{client: client, ttl: ttl}
}

func listingKey(tenantID string) string {
	return "listing:" + tenantID
}

func (c *ListingCache) Get(ctx context.Context, tenantID string) ([]storage.FileInfo, bool) {
	raw, err := c.client.Get(ctx, listingKey(tenantID)).Bytes()
	if err != nil {
		return nil, false
	}
	var files []storage.FileInfo
	if err := json.Unmarshal(raw, &files); err != nil {
		return nil, false
	}
	return files, true
}

func (c *ListingCache) Set(ctx context.Context, tenantID string, files []storage.FileInfo) {
	raw, err := json.Marshal(files)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, listingKey(tenantID), raw, c.ttl).Err(); err != nil {
		commonlog.Debugf("cache listing for tenant %s: %v", tenantID, err)
	}
}

func (c *ListingCache) Invalidate(ctx context.Context, tenantID string) {
	if err := c.client.Del(ctx, listingKey(tenantID)).Err(); err != nil {
		commonlog.Debugf("invalidate listing for tenant %s: %v", tenantID, err)
	}
}
