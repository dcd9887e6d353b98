// Package ws pushes availability changes of a space to the browsers that
// have its details page open.
package ws

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"sharedesk/internal/models"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

type Logger interface {
	Infof(string, ...interface{})
	Errorf(string, ...interface{})
}

type listener struct {
	spaceID int
	conn    *websocket.Conn
	mu      sync.Mutex
	done    chan struct{}
	once    sync.Once
}

// Hub fans availability events out to every listener of a space.
type Hub struct {
	logger   Logger
	upgrader websocket.Upgrader

	mu        sync.RWMutex
	listeners map[int]map[*listener]struct{}
}

func NewHub(logger Logger, allowedOrigins []string) *Hub {
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: originChecker(allowedOrigins),
		},
		listeners: make(map[int]map[*listener]struct{}),
	}
}

func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || strings.EqualFold(a, origin) {
				return true
			}
		}
		return false
	}
}

// ServeSpace upgrades GET /ws/spaces/:spaceId.
func (h *Hub) ServeSpace(w http.ResponseWriter, r *http.Request) {
	spaceID, err := strconv.Atoi(r.URL.Query().Get(":spaceId"))
	if err != nil || spaceID <= 0 {
		http.Error(w, "invalid space id", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Errorf("availability ws upgrade failed: %v", err)
		return
	}

	l := &listener{spaceID: spaceID, conn: conn, done: make(chan struct{})}
	h.mu.Lock()
	if h.listeners[spaceID] == nil {
		h.listeners[spaceID] = make(map[*listener]struct{})
	}
	h.listeners[spaceID][l] = struct{}{}
	h.mu.Unlock()

	h.logger.Infof("availability listener joined space %d", spaceID)

	go h.pingLoop(l)
	go h.readLoop(l)
}

func (h *Hub) pingLoop(l *listener) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			h.write(l, func(c *websocket.Conn) error {
				return c.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			})
		}
	}
}

// readLoop only keeps the deadline fresh; listeners never send data.
func (h *Hub) readLoop(l *listener) {
	defer h.remove(l)

	l.conn.SetReadLimit(4 << 10)
	l.conn.SetReadDeadline(time.Now().Add(pongWait))
	l.conn.SetPongHandler(func(string) error {
		return l.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := l.conn.ReadMessage(); err != nil {
			return
		}
		l.conn.SetReadDeadline(time.Now().Add(pongWait))
	}
}

func (h *Hub) remove(l *listener) {
	l.once.Do(func() {
		close(l.done)
		_ = l.conn.Close()
		h.mu.Lock()
		if set, ok := h.listeners[l.spaceID]; ok {
			delete(set, l)
			if len(set) == 0 {
				delete(h.listeners, l.spaceID)
			}
		}
		h.mu.Unlock()
	})
}

func (h *Hub) write(l *listener, fn func(*websocket.Conn) error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	select {
	case <-l.done:
		return
	default:
	}
	l.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := fn(l.conn); err != nil {
		h.logger.Errorf("availability ws write to space %d failed: %v", l.spaceID, err)
		go h.remove(l)
	}
}

// Publish sends event to the listeners of event.SpaceID.
func (h *Hub) Publish(event models.AvailabilityEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Errorf("availability event marshal failed: %v", err)
		return
	}

	h.mu.RLock()
	targets := make([]*listener, 0, len(h.listeners[event.SpaceID]))
	for l := range h.listeners[event.SpaceID] {
		targets = append(targets, l)
	}
	h.mu.RUnlock()

	for _, l := range targets {
		h.write(l, func(c *websocket.Conn) error {
			return c.WriteMessage(websocket.TextMessage, data)
		})
	}
}

// Listeners counts the open connections for a space.
func (h *Hub) Listeners(spaceID int) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners[spaceID])
}

// Close disconnects every listener.
func (h *Hub) Close() {
	h.mu.RLock()
	var all []*listener
	for _, set := range h.listeners {
		for l := range set {
			all = append(all, l)
		}
	}
	h.mu.RUnlock()

	for _, l := range all {
		l.mu.Lock()
		_ = l.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		l.mu.Unlock()
		h.remove(l)
	}
}
