package service

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"media_gateway/server/gateway/domain"
)

const hubWriteWait = 5 * time.Second

// WSClient wraps one websocket connection; the mutex serializes writes
// because gorilla connections allow a single concurrent writer.
type WSClient struct {
	Conn *websocket.Conn
	mu   sync.Mutex
}

// Hub broadcasts storage events to connected websocket clients. It is an
// EventSink, so it plugs into the same fan-out as the MQ publisher.
type Hub struct {
	mu      sync.RWMutex
	clients map[*WSClient]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: map[*WSClient]struct{}{}}
}

func (h *Hub) Register(client *WSClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
}

func (h *Hub) Unregister(client *WSClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	_ = client.Conn.Close()
}

func (h *Hub) Publish(ctx context.Context, event domain.StorageEvent) {
	h.mu.RLock()
	targets := make([]*WSClient, 0, len(h.clients))
	for client := range h.clients {
		targets = append(targets, client)
	}
	h.mu.RUnlock()

	for _, client := range targets {
		client.mu.Lock()
		// a client that stopped reading must not wedge the request path;
		// the deadline turns a full kernel buffer into a write error
		_ = client.Conn.SetWriteDeadline(time.Now().Add(hubWriteWait))
		err := client.Conn.WriteJSON(event)
		client.mu.Unlock()
		if err != nil {
			h.Unregister(client)
		}
	}
}
