package domain

import "time"

const (
	ActionUpload = "upload"
	ActionDelete = "delete"
)

// StoredFile describes one file inside a tenant directory as exposed by
// the list operation.
type StoredFile struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
	URL      string    `json:"url"`
}

// UploadResult carries everything the upload response reports back.
type UploadResult struct {
	URL          string
	Path         string
	Filename     string
	Size         int64
	OriginalName string
}

// StorageEvent is emitted after an upload or delete has committed to the
// backend. It feeds the audit ledger, the message-queue publisher and the
// websocket stream.
type StorageEvent struct {
	Action       string    `json:"action"`
	TenantID     string    `json:"tenant_id"`
	Path         string    `json:"path"`
	Filename     string    `json:"filename"`
	Size         int64     `json:"size_bytes,omitempty"`
	ContentType  string    `json:"content_type,omitempty"`
	OriginalName string    `json:"original_name,omitempty"`
	At           time.Time `json:"at"`
}
