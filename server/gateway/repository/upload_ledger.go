package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"media_gateway/server/gateway/domain"
)

// UploadLedger keeps a durable audit trail of upload and delete events in
// Postgres. Recording is best-effort at the call site; the filesystem is
// the source of truth.
type UploadLedger struct {
	pool *pgxpool.Pool
}

func NewUploadLedger(pool *pgxpool.Pool) *UploadLedger {
	return &UploadLedger{pool: pool}
}

func (r *UploadLedger) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS storage_events(
			id BIGSERIAL PRIMARY KEY,
			action TEXT NOT NULL,
			tenant_id TEXT NOT NULL,
			stored_path TEXT NOT NULL,
			file_name TEXT NOT NULL,
			content_type TEXT NOT NULL DEFAULT '',
			size_bytes BIGINT NOT NULL DEFAULT 0,
			original_name TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		CREATE INDEX IF NOT EXISTS storage_events_tenant_created_idx
		ON storage_events(tenant_id, created_at DESC)
	`)
	return err
}

func (r *UploadLedger) Record(ctx context.Context, event domain.StorageEvent) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO storage_events(action, tenant_id, stored_path, file_name, content_type, size_bytes, original_name, created_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)
	`, event.Action, event.TenantID, event.Path, event.Filename, event.ContentType, event.Size, event.OriginalName, event.At)
	return err
}

func (r *UploadLedger) RecentByTenant(ctx context.Context, tenantID string, limit int) ([]domain.StorageEvent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT action, tenant_id, stored_path, file_name, content_type, size_bytes, original_name, created_at
		FROM storage_events
		WHERE tenant_id=$1
		ORDER BY created_at DESC
		LIMIT $2
	`, tenantID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]domain.StorageEvent, 0)
	for rows.Next() {
		var event domain.StorageEvent
		if err := rows.Scan(&event.Action, &event.TenantID, &event.Path, &event.Filename, &event.ContentType, &event.Size, &event.OriginalName, &event.At); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
