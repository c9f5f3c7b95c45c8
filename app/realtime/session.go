package realtime

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 16
)

// Session wraps one websocket connection to a display/control page. Events
// are queued on a buffered channel and written by a single write pump, so
// Publish never blocks on a slow client.
type Session struct {
	hub  *Hub
	conn *websocket.Conn
	send chan Event

	closeOnce sync.Once
}

func NewSession(hub *Hub, conn *websocket.Conn) *Session {
	return &Session{
		hub:  hub,
		conn: conn,
		send: make(chan Event, sendBufferSize),
	}
}

// Send implements Subscriber. It reports false when the session's buffer is
// full, which the hub treats as a dead session.
func (s *Session) Send(ev Event) bool {
	select {
	case s.send <- ev:
		return true
	default:
		return false
	}
}

// Close implements Subscriber. Safe to call multiple times.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.send)
		s.conn.Close()
	})
}

// inbound is the envelope clients send; currently only tab-changed, whose
// payload is relayed verbatim without interpretation.
type inbound struct {
	Name string          `json:"event"`
	Data json.RawMessage `json:"data"`
}

// Run services the connection until it drops: a write pump draining the
// send channel, and a read loop relaying tab changes. It blocks until the
// session disconnects, then removes it from the hub.
func (s *Session) Run() {
	go s.writePump()
	s.readLoop()
	s.hub.Remove(s)
	s.Close()
}

func (s *Session) readLoop() {
	s.conn.SetReadLimit(4096)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug("viewer session read error", "err", err)
			}
			return
		}

		var in inbound
		if err := json.Unmarshal(msg, &in); err != nil {
			slog.Debug("ignoring malformed viewer message", "err", err)
			continue
		}
		if in.Name == "tab-changed" {
			s.hub.Publish("active-tab-changed", in.Data)
		}
	}
}

func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
