package chat

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/Maroco0109/AgentForge-sub000/pkg/client/ws"
	"github.com/Maroco0109/AgentForge-sub000/pkg/design"
)

// Role labels who produced a message in the log.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message is one entry in the session's message log.
type Message struct {
	Role Role
	Text string
	Kind EventType
}

// socket is the connection surface Session needs; *ws.Conn satisfies
// it, and tests substitute a fake.
type socket interface {
	Send(content string) error
	Connected() bool
	Close() error
}

// Session drives one conversation: it owns the socket, translates
// inbound events into log entries, and tracks connection state.
// Methods are safe for concurrent use.
type Session struct {
	convID string

	mu        sync.Mutex
	conn      socket
	connected bool
	messages  []Message

	// OnDesigns, when set, receives design proposals as they arrive so
	// the editor can load them. Called with the lock released.
	OnDesigns func([]design.Design)
}

// Open dials the conversation socket and returns a running session.
func Open(ctx context.Context, baseURL, conversationID, token string, logger *slog.Logger, opts ...ws.Option) (*Session, error) {
	s := &Session{convID: conversationID}

	opts = append(opts, ws.WithLogger(logger))
	conn, err := ws.Dial(ctx, baseURL, conversationID, token, ws.Handlers{
		OnMessage: s.handleFrame,
		OnOpen:    s.handleOpen,
		OnClose:   s.handleClose,
	}, opts...)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
	return s, nil
}

// handleOpen records the connection notice. The first open says
// "Connected"; every later one says "Reconnected".
func (s *Session) handleOpen(reconnected bool) {
	notice := "Connected"
	if reconnected {
		notice = "Reconnected"
	}

	s.mu.Lock()
	s.connected = true
	s.messages = append(s.messages, Message{Role: RoleSystem, Text: notice})
	s.mu.Unlock()
}

// handleClose flips the connected flag; the socket reconnects on its
// own.
func (s *Session) handleClose(error) {
	s.mu.Lock()
	s.connected = false
	s.mu.Unlock()
}

// handleFrame decodes and interprets one inbound frame.
func (s *Session) handleFrame(data []byte) {
	ev := Decode(data)

	role := RoleAssistant
	switch ev.Type {
	case EventUserMessageReceived:
		// Echo of our own send; already in the log.
		return
	case EventError, EventSecurityWarning:
		role = RoleSystem
	}

	s.mu.Lock()
	s.messages = append(s.messages, Message{Role: role, Text: Render(ev), Kind: ev.Type})
	onDesigns := s.OnDesigns
	s.mu.Unlock()

	if ev.Type == EventDesignsPresented && onDesigns != nil && len(ev.Designs) > 0 {
		onDesigns(ev.Designs)
	}
}

// Send appends the user message to the log and writes it to the
// socket. Blank input (empty or whitespace-only) and a disconnected
// socket are no-ops; the log only records messages that went out.
func (s *Session) Send(content string) error {
	s.mu.Lock()
	conn := s.conn
	connected := s.connected
	s.mu.Unlock()

	if strings.TrimSpace(content) == "" || conn == nil || !connected {
		return nil
	}
	if err := conn.Send(content); err != nil {
		return err
	}

	s.mu.Lock()
	s.messages = append(s.messages, Message{Role: RoleUser, Text: content})
	s.mu.Unlock()
	return nil
}

// ConversationID returns the conversation this session is attached to.
func (s *Session) ConversationID() string {
	return s.convID
}

// Connected reports whether the socket is currently open.
func (s *Session) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// Messages returns a copy of the message log.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Close shuts the socket down.
func (s *Session) Close() error {
	s.mu.Lock()
	conn := s.conn
	s.conn = nil
	s.connected = false
	s.mu.Unlock()

	if conn != nil {
		return conn.Close()
	}
	return nil
}
