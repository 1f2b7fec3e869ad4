// Package ws maintains the chat WebSocket connection to the AgentForge
// backend, reconnecting automatically with exponential backoff when the
// socket drops.
package ws

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Maroco0109/AgentForge-sub000/pkg/observability"
)

const (
	// initialReconnectDelay is the backoff after the first failure.
	initialReconnectDelay = 1 * time.Second

	// maxReconnectDelay caps the exponential backoff.
	maxReconnectDelay = 30 * time.Second
)

// outbound is the message envelope sent to the backend.
type outbound struct {
	Content        string `json:"content"`
	ConversationID string `json:"conversation_id"`
}

// Handlers receives connection lifecycle and message events. All
// callbacks are invoked from the connection's internal goroutines;
// nil fields are skipped.
type Handlers struct {
	// OnMessage receives each raw frame read from the socket.
	OnMessage func(data []byte)

	// OnOpen fires when the socket connects. reconnected is false for
	// the first successful open and true for every subsequent one.
	OnOpen func(reconnected bool)

	// OnClose fires when the socket drops and a reconnect is about to
	// be scheduled.
	OnClose func(err error)
}

// Option configures a Conn.
type Option func(*Conn)

// WithLogger sets the structured logger. Nil disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Conn) { c.logger = logger }
}

// WithMetrics sets the metrics recorder for reconnect counts.
func WithMetrics(metrics observability.MetricsRecorder) Option {
	return func(c *Conn) { c.metrics = metrics }
}

// WithDialer overrides the websocket dialer.
func WithDialer(d *websocket.Dialer) Option {
	return func(c *Conn) { c.dialer = d }
}

// Conn is a self-healing WebSocket connection to one conversation's
// chat endpoint. Create one with Dial; it stays connected (retrying
// with exponential backoff) until Close is called.
type Conn struct {
	url      string
	convID   string
	handlers Handlers
	dialer   *websocket.Dialer
	logger   *slog.Logger
	metrics  observability.MetricsRecorder

	mu       sync.Mutex
	ws       *websocket.Conn
	attempts int
	timer    *time.Timer
	closed   bool
	everOpen bool
}

// Endpoint builds the chat socket URL from the API base URL, the
// conversation id, and the bearer token. http and https bases map to
// ws and wss.
func Endpoint(baseURL, conversationID, token string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/api/v1/ws/chat/" + conversationID
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Dial opens the chat socket for a conversation and starts the read
// loop. The connection reconnects automatically until Close.
func Dial(ctx context.Context, baseURL, conversationID, token string, handlers Handlers, opts ...Option) (*Conn, error) {
	endpoint, err := Endpoint(baseURL, conversationID, token)
	if err != nil {
		return nil, err
	}

	c := &Conn{
		url:      endpoint,
		convID:   conversationID,
		handlers: handlers,
		dialer:   websocket.DefaultDialer,
		metrics:  observability.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = observability.EnrichLogger(c.logger, conversationID)

	if err := c.connect(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// connect dials the socket and starts the reader goroutine.
func (c *Conn) connect(ctx context.Context) error {
	ws, _, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("dial chat socket: %w", err)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		_ = ws.Close()
		return nil
	}
	reconnected := c.everOpen
	c.ws = ws
	c.attempts = 0
	c.everOpen = true
	c.mu.Unlock()

	observability.LogSocketOpen(c.logger, reconnected)
	if c.handlers.OnOpen != nil {
		c.handlers.OnOpen(reconnected)
	}

	go c.readLoop(ws)
	return nil
}

// readLoop is the only goroutine reading from the socket. When the
// read fails it schedules a reconnect, unless the Conn is closed.
func (c *Conn) readLoop(ws *websocket.Conn) {
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			c.handleDrop(ws, err)
			return
		}
		if c.handlers.OnMessage != nil {
			c.handlers.OnMessage(data)
		}
	}
}

// handleDrop reacts to a read failure: notifies OnClose and schedules
// the next reconnect attempt.
func (c *Conn) handleDrop(ws *websocket.Conn, err error) {
	_ = ws.Close()

	c.mu.Lock()
	if c.closed || c.ws != ws {
		c.mu.Unlock()
		return
	}
	c.ws = nil
	c.attempts++
	attempt := c.attempts
	delay := ReconnectDelay(attempt)
	c.timer = time.AfterFunc(delay, c.reconnect)
	c.mu.Unlock()

	observability.LogSocketClosed(c.logger, attempt, delay)
	c.metrics.RecordReconnect(context.Background(), c.convID, attempt)
	if c.handlers.OnClose != nil {
		c.handlers.OnClose(err)
	}
}

// reconnect is the timer callback: redial, or schedule another attempt
// on failure.
func (c *Conn) reconnect() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	c.mu.Unlock()

	if err := c.connect(context.Background()); err != nil {
		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			return
		}
		c.attempts++
		attempt := c.attempts
		delay := ReconnectDelay(attempt)
		c.timer = time.AfterFunc(delay, c.reconnect)
		c.mu.Unlock()

		observability.LogSocketClosed(c.logger, attempt, delay)
		c.metrics.RecordReconnect(context.Background(), c.convID, attempt)
	}
}

// ReconnectDelay returns the backoff before reconnect attempt n
// (n >= 1): one second doubled per consecutive failure, capped at
// thirty seconds.
func ReconnectDelay(n int) time.Duration {
	delay := initialReconnectDelay
	for i := 1; i < n; i++ {
		delay *= 2
		if delay >= maxReconnectDelay {
			return maxReconnectDelay
		}
	}
	if delay > maxReconnectDelay {
		return maxReconnectDelay
	}
	return delay
}

// Send writes a chat message to the socket. Blank content and closed
// or disconnected sockets are silent no-ops, matching how the input
// box behaves while a reconnect is pending.
func (c *Conn) Send(content string) error {
	if strings.TrimSpace(content) == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.ws == nil {
		return nil
	}
	return c.ws.WriteJSON(outbound{Content: content, ConversationID: c.convID})
}

// Connected reports whether the socket is currently open.
func (c *Conn) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws != nil && !c.closed
}

// Close shuts the connection down permanently, cancelling any pending
// reconnect. Safe to call multiple times.
func (c *Conn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	ws := c.ws
	c.ws = nil
	c.mu.Unlock()

	if ws != nil {
		return ws.Close()
	}
	return nil
}
