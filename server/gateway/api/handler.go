package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"media_gateway/server/common/infra/storage"
	commonlog "media_gateway/server/common/log"
	"media_gateway/server/gateway/repository"
	"media_gateway/server/gateway/service"
)

const cacheControlImmutable = "public, max-age=31536000"

// Config is the handler's slice of the process configuration: what /ping
// echoes and the upload ceiling.
type Config struct {
	SMBHost        string
	SMBShare       string
	MountPoint     string
	MaxUploadBytes int64
}

type Handler struct {
	cfg    Config
	files  *service.FileService
	ledger *repository.UploadLedger
	hub    *service.Hub
}

// NewHandler builds the HTTP surface. ledger may be nil when the audit
// ledger is not configured.
func NewHandler(cfg Config, files *service.FileService, ledger *repository.UploadLedger, hub *service.Hub) *Handler {
	return &Handler{cfg: cfg, files: files, ledger: ledger, hub: hub}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/ping", h.ping)
	r.POST("/upload", h.upload)
	r.GET("/files/*filepath", h.fetch)
	r.DELETE("/files/*filepath", h.remove)
	r.GET("/list", h.list)
	r.GET("/list/:tenantId", h.list)
	r.GET("/audit/:tenantId", h.audit)
	r.GET("/ws/events", h.eventsWS)
}

func (h *Handler) ping(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		SMBConfig: SMBConfig{
			Host:       h.cfg.SMBHost,
			Share:      h.cfg.SMBShare,
			MountPoint: h.cfg.MountPoint,
		},
	})
}

func (h *Handler) upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(ErrNoFileUploaded))
		return
	}
	if fileHeader.Size > h.cfg.MaxUploadBytes {
		c.JSON(http.StatusBadRequest, NewErrorResponseWithMessage(ErrFileTooLarge,
			"File size must be less than "+byteCeiling(h.cfg.MaxUploadBytes)))
		return
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") && !strings.HasPrefix(contentType, "video/") {
		c.JSON(http.StatusBadRequest, NewErrorResponse(ErrUnsupportedType))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponseWithMessage("Upload failed", err.Error()))
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponseWithMessage("Upload failed", err.Error()))
		return
	}

	result, err := h.files.Upload(c.Request.Context(), service.UploadInput{
		TenantID:     c.PostForm("supplierId"),
		FileName:     c.PostForm("fileName"),
		OriginalName: fileHeader.Filename,
		ContentType:  contentType,
		Data:         data,
	})
	if err != nil {
		h.writeStorageError(c, "Upload failed", err)
		return
	}
	commonlog.Infof("uploaded %s (%d bytes, %s)", result.Path, result.Size, contentType)
	c.JSON(http.StatusOK, NewUploadResponse(result))
}

func (h *Handler) fetch(c *gin.Context) {
	key := c.Param("filepath")
	reader, info, err := h.files.Fetch(c.Request.Context(), key)
	if err != nil {
		h.writeStorageError(c, "Failed to serve file", err)
		return
	}
	defer reader.Close()
	// File names are immutable once assigned, so clients may cache hard.
	c.DataFromReader(http.StatusOK, info.Size, info.ContentType, reader, map[string]string{
		"Cache-Control": cacheControlImmutable,
	})
}

func (h *Handler) remove(c *gin.Context) {
	key := c.Param("filepath")
	if err := h.files.Delete(c.Request.Context(), key); err != nil {
		h.writeStorageError(c, "Failed to delete file", err)
		return
	}
	commonlog.Infof("deleted %s", strings.TrimPrefix(key, "/"))
	c.JSON(http.StatusOK, DeleteResponse{Success: true, Message: "File deleted successfully"})
}

func (h *Handler) list(c *gin.Context) {
	files, err := h.files.List(c.Request.Context(), c.Param("tenantId"))
	if err != nil {
		h.writeStorageError(c, "Failed to list files", err)
		return
	}
	c.JSON(http.StatusOK, NewListResponse(files))
}

func (h *Handler) audit(c *gin.Context) {
	if h.ledger == nil {
		c.JSON(http.StatusServiceUnavailable, NewErrorResponse("Audit ledger not configured"))
		return
	}
	events, err := h.ledger.RecentByTenant(c.Request.Context(), c.Param("tenantId"), 100)
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponseWithMessage("Failed to read audit log", err.Error()))
		return
	}
	c.JSON(http.StatusOK, AuditResponse{Events: events})
}

var eventsUpgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// Peers must answer pings within eventsPongWait or the connection is torn
// down; variables so tests can shorten the intervals.
var (
	eventsPongWait   = 60 * time.Second
	eventsPingPeriod = 54 * time.Second
)

func (h *Handler) eventsWS(c *gin.Context) {
	conn, err := eventsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	client := &service.WSClient{Conn: conn}
	h.hub.Register(client)
	defer h.hub.Unregister(client)

	_ = conn.SetReadDeadline(time.Now().Add(eventsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(eventsPongWait))
	})

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(eventsPingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				// WriteControl is safe alongside the hub's data writes
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(eventsPingPeriod)); err != nil {
					return
				}
			case <-stop:
				return
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Handler) writeStorageError(c *gin.Context, action string, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, NewErrorResponse(ErrFileNotFound))
	case errors.Is(err, storage.ErrPathTraversal):
		c.JSON(http.StatusBadRequest, NewErrorResponse(ErrInvalidFilePath))
	default:
		commonlog.Errorf("%s: %v", action, err)
		c.JSON(http.StatusInternalServerError, NewErrorResponseWithMessage(action, err.Error()))
	}
}

func byteCeiling(limit int64) string {
	const mb = int64(1024 * 1024)
	if limit >= mb && limit%mb == 0 {
		return strconv.FormatInt(limit/mb, 10) + "MB"
	}
	return strconv.FormatInt(limit, 10) + " bytes"
}
