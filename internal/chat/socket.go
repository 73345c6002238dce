// Package chat maintains the realtime socket. The connection is opened
// when a session is committed and closed on logout; REST chat reads go
// through the client package.
package chat

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/odlemon/khaya-portal-sub000/internal/domain"
)

// Socket event names on the wire.
const (
	eventJoinChat   = "join_chat"
	eventLeaveChat  = "leave_chat"
	eventNewMessage = "new_message"
	eventUserTyping = "user_typing"
)

type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// MessageHandler receives messages pushed over the socket.
type MessageHandler func(msg domain.ChatMessage)

// TypingHandler receives typing notifications.
type TypingHandler func(ev domain.TypingEvent)

// Socket is the singleton realtime connection. Open replaces any
// previous connection, so at most one read loop runs at a time.
type Socket struct {
	url    string
	dialer *websocket.Dialer
	logger *zap.Logger

	mu        sync.Mutex
	conn      *websocket.Conn
	done      chan struct{}
	onMessage MessageHandler
	onTyping  TypingHandler
}

func NewSocket(url string, logger *zap.Logger) *Socket {
	return &Socket{
		url:    url,
		dialer: websocket.DefaultDialer,
		logger: logger,
	}
}

// OnMessage registers the handler for pushed chat messages.
func (s *Socket) OnMessage(h MessageHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onMessage = h
}

// OnTyping registers the handler for typing events.
func (s *Socket) OnTyping(h TypingHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onTyping = h
}

// Open dials the socket with the session token and starts the read
// loop. An existing connection is closed first. The token travels as a
// `token` query parameter on the handshake; the socket server does not
// read the Authorization header.
func (s *Socket) Open(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		s.closeLocked()
	}

	u, err := url.Parse(s.url)
	if err != nil {
		return fmt.Errorf("chat socket url: %w", err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()

	conn, _, err := s.dialer.Dial(u.String(), nil)
	if err != nil {
		return fmt.Errorf("chat socket dial: %w", err)
	}
	s.conn = conn
	s.done = make(chan struct{})
	go s.readLoop(conn, s.done)
	s.logger.Info("chat socket connected")
	return nil
}

// Close tears the connection down. Safe to call when not connected.
func (s *Socket) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
	return nil
}

func (s *Socket) closeLocked() {
	if s.conn == nil {
		return
	}
	_ = s.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	_ = s.conn.Close()
	close(s.done)
	s.conn = nil
	s.done = nil
}

// JoinChat subscribes to a conversation's events.
func (s *Socket) JoinChat(chatID string) error {
	return s.emit(eventJoinChat, map[string]string{"chatId": chatID})
}

// LeaveChat unsubscribes from a conversation.
func (s *Socket) LeaveChat(chatID string) error {
	return s.emit(eventLeaveChat, map[string]string{"chatId": chatID})
}

func (s *Socket) emit(event string, data any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return fmt.Errorf("chat socket not connected")
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return s.conn.WriteJSON(frame{Event: event, Data: raw})
}

func (s *Socket) readLoop(conn *websocket.Conn, done chan struct{}) {
	for {
		var f frame
		if err := conn.ReadJSON(&f); err != nil {
			select {
			case <-done:
				// Closed locally, not an error.
			default:
				s.logger.Warn("chat socket read failed", zap.Error(err))
			}
			return
		}
		s.dispatch(f)
	}
}

func (s *Socket) dispatch(f frame) {
	s.mu.Lock()
	onMessage := s.onMessage
	onTyping := s.onTyping
	s.mu.Unlock()

	switch f.Event {
	case eventNewMessage:
		if onMessage == nil {
			return
		}
		var msg domain.ChatMessage
		if err := json.Unmarshal(f.Data, &msg); err != nil {
			s.logger.Warn("malformed chat message frame", zap.Error(err))
			return
		}
		onMessage(msg)
	case eventUserTyping:
		if onTyping == nil {
			return
		}
		var ev domain.TypingEvent
		if err := json.Unmarshal(f.Data, &ev); err != nil {
			s.logger.Warn("malformed typing frame", zap.Error(err))
			return
		}
		onTyping(ev)
	default:
		s.logger.Debug("unhandled socket event", zap.String("event", f.Event))
	}
}
