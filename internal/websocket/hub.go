// Package websocket runs the live reload socket of the preview server. Every
// connected browser receives a "reload" text message when the site changes.
package websocket

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/tareeqi/tareeqweb/internal/logging"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Send pings to peer with this period.
	pingPeriod = 30 * time.Second

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Messages queued per client before it is dropped.
	sendBuffer = 16
)

// ReloadMessage tells the browser to reload the page.
const ReloadMessage = "reload"

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks connected clients and fans out broadcasts.
type Hub struct {
	clients      map[*client]struct{}
	clientsMutex sync.RWMutex
	origins      []string
	logger       logging.Logger
	closed       bool
	wg           sync.WaitGroup
}

// NewHub creates a hub. allowedOrigins are full origins such as
// "http://localhost:3000"; same-host requests are always accepted.
func NewHub(allowedOrigins []string, logger logging.Logger) *Hub {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	patterns := make([]string, 0, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if u, err := url.Parse(origin); err == nil && u.Host != "" {
			patterns = append(patterns, u.Host)
		}
	}
	return &Hub{
		clients: make(map[*client]struct{}),
		origins: patterns,
		logger:  logger.WithComponent("websocket"),
	}
}

// ServeHTTP upgrades the request and keeps the connection until the peer
// leaves or the hub closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.origins,
	})
	if err != nil {
		h.logger.Warn(r.Context(), err, "WebSocket upgrade failed",
			"origin", r.Header.Get("Origin"))
		return
	}
	conn.SetReadLimit(maxMessageSize)

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	if !h.register(c) {
		conn.Close(websocket.StatusGoingAway, "server shutting down")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		defer h.wg.Done()
		h.writePump(ctx, c)
	}()

	h.readPump(ctx, c)
	h.unregister(c)
}

func (h *Hub) register(c *client) bool {
	h.clientsMutex.Lock()
	defer h.clientsMutex.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	h.wg.Add(1)
	h.logger.Debug(context.Background(), "Client connected", "clients", len(h.clients))
	return true
}

func (h *Hub) unregister(c *client) {
	h.clientsMutex.Lock()
	defer h.clientsMutex.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
		h.logger.Debug(context.Background(), "Client disconnected", "clients", len(h.clients))
	}
}

// readPump discards client messages; it exists to notice closes and to
// process control frames.
func (h *Hub) readPump(ctx context.Context, c *client) {
	for {
		if _, _, err := c.conn.Read(ctx); err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway && ctx.Err() == nil {
				h.logger.Debug(ctx, "WebSocket read ended", "error", err.Error())
			}
			return
		}
	}
}

func (h *Hub) writePump(ctx context.Context, c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case message, ok := <-c.send:
			if !ok {
				c.conn.Close(websocket.StatusGoingAway, "")
				return
			}
			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Write(writeCtx, websocket.MessageText, message)
			cancel()
			if err != nil {
				h.logger.Warn(ctx, err, "WebSocket write failed")
				c.conn.Close(websocket.StatusInternalError, "write failed")
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				c.conn.Close(websocket.StatusGoingAway, "ping failed")
				return
			}
		}
	}
}

// Broadcast queues message for every client. Clients whose queue is full
// are disconnected.
func (h *Hub) Broadcast(message []byte) {
	h.clientsMutex.Lock()
	defer h.clientsMutex.Unlock()

	for c := range h.clients {
		select {
		case c.send <- message:
		default:
			delete(h.clients, c)
			close(c.send)
		}
	}
}

// Reload broadcasts ReloadMessage.
func (h *Hub) Reload() {
	h.Broadcast([]byte(ReloadMessage))
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.clientsMutex.RLock()
	defer h.clientsMutex.RUnlock()
	return len(h.clients)
}

// Close disconnects every client, refuses new ones and waits for the
// writers to finish.
func (h *Hub) Close() {
	h.clientsMutex.Lock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
	h.clientsMutex.Unlock()

	h.wg.Wait()
}
