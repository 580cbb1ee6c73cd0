// Package devtools streams the reactive dependency graph's debug events
// (track/trigger occurrences) to a connected inspector over a websocket,
// grounded on the teacher's pkg/server websocket session: a chi route
// upgrades the connection, a read-deadline-guarded loop keeps it alive, and
// a *slog.Logger is threaded through exactly the way newSession's is.
package devtools

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/reactive-go/reactive/reactive"
)

const (
	writeTimeout = 5 * time.Second
	pingInterval = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// wireEvent is the JSON shape streamed to the inspector for every
// reactive.DebugEvent.
type wireEvent struct {
	EffectID uint64 `json:"effectId,omitempty"`
	Op       string `json:"op"`
	Key      string `json:"key,omitempty"`
}

// Server bridges reactive.Debug to any number of connected inspector
// clients. It is only active while reactive.DevMode is true, matching
// reactive.Debug's own publish guard.
type Server struct {
	logger *slog.Logger

	mu      sync.Mutex
	clients map[*client]struct{}

	unsubscribe func()
}

type client struct {
	conn *websocket.Conn
	send chan wireEvent
}

// NewServer builds a devtools bridge and starts subscribing to
// reactive.Debug immediately. logger defaults to slog.Default() if nil.
func NewServer(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{logger: logger, clients: map[*client]struct{}{}}
	s.unsubscribe = reactive.Debug.Subscribe(s.broadcast)
	return s
}

// Close stops subscribing to reactive.Debug and drops every connected
// client.
func (s *Server) Close() {
	s.unsubscribe()
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		close(c.send)
		c.conn.Close()
	}
	s.clients = map[*client]struct{}{}
}

func (s *Server) broadcast(ev reactive.DebugEvent) {
	wire := wireEvent{Op: ev.Type.String()}
	if ev.Effect != nil {
		wire.EffectID = ev.Effect.ID()
	}
	if key, ok := ev.Key.(string); ok {
		wire.Key = key
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		select {
		case c.send <- wire:
		default:
			s.logger.Warn("devtools client send buffer full, dropping event")
		}
	}
}

// Mount registers the devtools websocket route on r.
func (s *Server) Mount(r chi.Router) {
	r.Get("/devtools/ws", s.handleWS)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("devtools upgrade failed", "error", err)
		return
	}
	c := &client{conn: conn, send: make(chan wireEvent, 256)}

	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()

	go s.writeLoop(c)
	s.readLoop(c)
}

// readLoop blocks until the connection closes, the same shape as the
// teacher's Session.ReadLoop: a read-deadline-guarded loop whose only job
// here is detecting disconnect, since the inspector has nothing to send us.
func (s *Server) readLoop(c *client) {
	defer s.drop(c)
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pingInterval * 2))
	})
	for {
		c.conn.SetReadDeadline(time.Now().Add(pingInterval * 2))
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("devtools read error", "error", err)
			}
			return
		}
	}
}

func (s *Server) writeLoop(c *client) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case ev, ok := <-c.send:
			if !ok {
				return
			}
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Server) drop(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.send)
	}
	c.conn.Close()
}
