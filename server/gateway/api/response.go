package api

import (
	"media_gateway/server/common/transport/httpresp"
	"media_gateway/server/gateway/domain"
)

const (
	ErrNoFileUploaded  = httpresp.ErrNoFileUploaded
	ErrFileTooLarge    = httpresp.ErrFileTooLarge
	ErrFileNotFound    = httpresp.ErrFileNotFound
	ErrInvalidFilePath = httpresp.ErrInvalidFilePath
	ErrUnsupportedType = httpresp.ErrUnsupportedType
)

type ErrorResponse = httpresp.ErrorResponse

// PingResponse echoes the static share configuration plus the current
// time; field names match what clients already parse.
type PingResponse struct {
	Status    string    `json:"status"`
	Timestamp string    `json:"timestamp"`
	SMBConfig SMBConfig `json:"smb_config"`
}

type SMBConfig struct {
	Host       string `json:"host"`
	Share      string `json:"share"`
	MountPoint string `json:"mountPoint"`
}

type UploadResponse struct {
	Success      bool   `json:"success"`
	URL          string `json:"url"`
	Path         string `json:"path"`
	Filename     string `json:"filename"`
	Size         int64  `json:"size"`
	OriginalName string `json:"originalName"`
}

type DeleteResponse = httpresp.SuccessResponse

type ListResponse struct {
	Files []domain.StoredFile `json:"files"`
}

type AuditResponse struct {
	Events []domain.StorageEvent `json:"events"`
}

func NewErrorResponse(err string) ErrorResponse {
	return httpresp.NewErrorResponse(err)
}

func NewErrorResponseWithMessage(err, message string) ErrorResponse {
	return httpresp.NewErrorResponseWithMessage(err, message)
}

func NewUploadResponse(result domain.UploadResult) UploadResponse {
	return UploadResponse{
		Success:      true,
		URL:          result.URL,
		Path:         result.Path,
		Filename:     result.Filename,
		Size:         result.Size,
		OriginalName: result.OriginalName,
	}
}

func NewListResponse(files []domain.StoredFile) ListResponse {
	if files == nil {
		files = []domain.StoredFile{}
	}
	return ListResponse{Files: files}
}
