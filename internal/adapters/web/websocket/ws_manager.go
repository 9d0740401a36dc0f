package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lcalzada-xor/cyberdash/internal/core/services/screens"
	"github.com/lcalzada-xor/cyberdash/internal/core/store"
	"github.com/lcalzada-xor/cyberdash/internal/telemetry"
)

const (
	writeWait   = 5 * time.Second
	pongWait    = 60 * time.Second
	pingPeriod  = (pongWait * 9) / 10
	maxReadSize = 4096
)

// WSMessage is the frame pushed to screen subscribers.
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// WSManager attaches WebSocket clients to screens. Each connection mounts its
// screen for as long as it stays open and receives a fresh view whenever a
// slice the screen watches changes.
type WSManager struct {
	ctx      context.Context
	store    *store.Store
	registry *screens.Registry
	upgrader websocket.Upgrader
	logger   *slog.Logger
	now      func() time.Time

	mu      sync.Mutex
	clients map[*client]struct{}
}

type client struct {
	conn   *websocket.Conn
	screen screens.Screen
	dirty  chan struct{}
	done   chan struct{}
}

// NewWSManager creates a manager. Pollers started by connections live at most
// as long as ctx. allowedOrigins lists cross-origin hosts that may connect;
// "*" accepts any origin.
func NewWSManager(ctx context.Context, st *store.Store, registry *screens.Registry, allowedOrigins []string, logger *slog.Logger) *WSManager {
	if logger == nil {
		logger = slog.Default()
	}
	m := &WSManager{
		ctx:      ctx,
		store:    st,
		registry: registry,
		logger:   logger.With("component", "websocket"),
		now:      time.Now,
		clients:  make(map[*client]struct{}),
	}
	m.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     m.checkOrigin(allowedOrigins),
	}
	return m
}

func (m *WSManager) checkOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if u, err := url.Parse(origin); err == nil && u.Host == r.Host {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		m.logger.Warn("Rejected origin", "origin", origin)
		return false
	}
}

// Clients returns the number of open connections.
func (m *WSManager) Clients() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.clients)
}

// HandleWebSocket serves /ws?screen=<path>. An empty screen means the dashboard.
func (m *WSManager) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("screen")
	if path == "" {
		path = "/"
	}
	screen, err := m.registry.Lookup(path)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		m.logger.Debug("Upgrade failed", "error", err)
		return
	}

	release, err := m.registry.Mount(m.ctx, screen.Path)
	if err != nil {
		m.logger.Error("Mount failed", "screen", screen.Path, "error", err)
		conn.Close()
		return
	}

	c := &client{
		conn:   conn,
		screen: screen,
		dirty:  make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	unsubscribe := m.store.Subscribe(func(a store.Action, _ store.State) {
		if screen.Watches(a.Slice()) {
			c.markDirty()
		}
	})
	c.markDirty()

	m.mu.Lock()
	m.clients[c] = struct{}{}
	m.mu.Unlock()
	telemetry.WebSocketClients.Inc()
	m.logger.Info("Client connected", "screen", screen.Path, "remote", r.RemoteAddr)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		m.writeLoop(c)
	}()

	m.readLoop(c)

	unsubscribe()
	release()
	close(c.done)
	wg.Wait()
	conn.Close()

	m.mu.Lock()
	delete(m.clients, c)
	m.mu.Unlock()
	telemetry.WebSocketClients.Dec()
	m.logger.Info("Client disconnected", "screen", screen.Path, "remote", r.RemoteAddr)
}

// markDirty coalesces change notifications; the writer always renders the
// latest snapshot.
func (c *client) markDirty() {
	select {
	case c.dirty <- struct{}{}:
	default:
	}
}

// readLoop drains control frames until the peer goes away. Client frames
// carry no commands.
func (m *WSManager) readLoop(c *client) {
	c.conn.SetReadLimit(maxReadSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				m.logger.Debug("Read error", "screen", c.screen.Path, "error", err)
			}
			return
		}
	}
}

func (m *WSManager) writeLoop(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case <-c.dirty:
			data, err := json.Marshal(WSMessage{
				Type:    "state",
				Payload: c.screen.Render(m.store.State(), m.now()),
			})
			if err != nil {
				m.logger.Error("JSON marshal error", "error", err)
				continue
			}
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.conn.Close()
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.conn.Close()
				return
			}
		}
	}
}

// Close drops every connection. Handlers return and release their screens.
func (m *WSManager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var errs []error
	for c := range m.clients {
		if err := c.conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
