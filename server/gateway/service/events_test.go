package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"media_gateway/server/gateway/domain"
)

type recordingSink struct {
	events []domain.StorageEvent
}

func (s *recordingSink) Publish(ctx context.Context, event domain.StorageEvent) {
	s.events = append(s.events, event)
}

func TestMultiSinkFansOut(t *testing.T) {
	a := &recordingSink{}
	b := &recordingSink{}
	sinks := MultiSink{a, b}

	sinks.Publish(context.Background(), domain.StorageEvent{Action: domain.ActionUpload, TenantID: "acme"})

	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1)
	assert.Equal(t, "acme", a.events[0].TenantID)
}

func TestHubPublishWithoutClients(t *testing.T) {
	hub := NewHub()
	// must not panic or block with nobody connected
	hub.Publish(context.Background(), domain.StorageEvent{Action: domain.ActionDelete})
}

// dialHubClient connects a real websocket peer and registers its server
// side with the hub. The returned client-side connection is never read
// from unless the test does so itself.
func dialHubClient(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Register(&WSClient{Conn: conn})
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestHubDropsStalledClient(t *testing.T) {
	hub := NewHub()
	dialHubClient(t, hub) // peer never reads, so buffers eventually fill

	payload := strings.Repeat("x", 64*1024)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 400; i++ {
			hub.Publish(context.Background(), domain.StorageEvent{
				Action:       domain.ActionUpload,
				TenantID:     "acme",
				Path:         "supplier-media/acme/a.jpg",
				OriginalName: payload,
			})
		}
	}()

	select {
	case <-done:
	case <-time.After(hubWriteWait + 10*time.Second):
		t.Fatal("publish path blocked behind a stalled client")
	}

	hub.mu.RLock()
	remaining := len(hub.clients)
	hub.mu.RUnlock()
	assert.Zero(t, remaining, "stalled client must be evicted")
}
