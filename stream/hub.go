package stream

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/milk9111/tiledworld/logger"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type viewer struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans snapshots out to connected websocket viewers. A viewer that
// falls behind misses snapshots rather than stalling the simulation.
type Hub struct {
	mu      sync.RWMutex
	viewers map[*viewer]struct{}
	closed  bool
	log     *logrus.Entry
}

func NewHub() *Hub {
	return &Hub{
		viewers: make(map[*viewer]struct{}),
		log:     logger.For("stream"),
	}
}

// ServeHTTP upgrades the request and registers the connection as a viewer.
func (h *Hub) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(rw, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	v := &viewer{conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.Close()
		return
	}
	h.viewers[v] = struct{}{}
	n := len(h.viewers)
	h.mu.Unlock()
	h.log.WithFields(logrus.Fields{"remote": r.RemoteAddr, "viewers": n}).Info("viewer connected")

	go h.writePump(v)
	go h.readPump(v)
}

// Broadcast encodes snap once and queues it for every viewer.
func (h *Hub) Broadcast(snap Snapshot) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.viewers) == 0 {
		return nil
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	for v := range h.viewers {
		select {
		case v.send <- payload:
		default:
			h.log.WithField("frame", snap.Frame).Debug("viewer behind, dropping snapshot")
		}
	}
	return nil
}

// Viewers returns the number of connected viewers.
func (h *Hub) Viewers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.viewers)
}

// Close disconnects every viewer and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for v := range h.viewers {
		delete(h.viewers, v)
		close(v.send)
	}
}

func (h *Hub) unregister(v *viewer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.viewers[v]; ok {
		delete(h.viewers, v)
		close(v.send)
	}
}

// readPump discards client messages; it exists to notice disconnects and
// answer pings.
func (h *Hub) readPump(v *viewer) {
	defer func() {
		h.unregister(v)
		if err := v.conn.Close(); err != nil {
			h.log.WithError(err).Debug("failed to close websocket connection")
		}
	}()

	v.conn.SetReadLimit(maxMessageSize)
	if err := v.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		h.log.WithError(err).Warn("failed to set read deadline")
	}
	v.conn.SetPongHandler(func(string) error {
		return v.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := v.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.WithError(err).Warn("viewer read failed")
			}
			return
		}
	}
}

func (h *Hub) writePump(v *viewer) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := v.conn.Close(); err != nil {
			h.log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case payload, ok := <-v.send:
			if err := v.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				h.log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				_ = v.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := v.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				h.log.WithError(err).Debug("write snapshot failed")
				return
			}
		case <-ticker.C:
			if err := v.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				h.log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := v.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
