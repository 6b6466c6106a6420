// Package realtime keeps a Socket.IO connection aligned with the session's
// API base URL and dispatches server events to registered handlers.
//
// Only the Engine.IO v4 websocket transport and the default namespace are
// spoken. There is no reconnect loop; callers invoke Sync when they want the
// connection (re)established.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dmitrijs2005/tabz/internal/common"
	"github.com/dmitrijs2005/tabz/internal/logging"
)

// Engine.IO / Socket.IO packet prefixes used by this client.
const (
	packetOpen       = "0"
	packetClose      = "1"
	packetPing       = "2"
	packetPong       = "3"
	packetConnect    = "40"
	packetDisconnect = "41"
	packetEvent      = "42"
	packetError      = "44"
)

var ErrClosed = errors.New("realtime connection closed")

// BaseURLSource supplies the current API base URL.
type BaseURLSource interface {
	BaseURL() string
}

// Handler receives the first argument of a server event.
type Handler func(payload json.RawMessage)

type Options struct {
	Platform         common.Platform
	HandshakeTimeout time.Duration
	Logger           logging.Logger
}

type Client struct {
	source BaseURLSource
	opts   Options
	log    logging.Logger
	dialer *websocket.Dialer

	mu       sync.Mutex
	conn     *websocket.Conn
	origin   string
	done     chan struct{}
	handlers map[string][]Handler

	writeMu sync.Mutex
}

func NewClient(source BaseURLSource, opts Options) *Client {
	if opts.HandshakeTimeout <= 0 {
		opts.HandshakeTimeout = 20 * time.Second
	}
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &Client{
		source:   source,
		opts:     opts,
		log:      log.With("component", "realtime"),
		dialer:   &websocket.Dialer{HandshakeTimeout: opts.HandshakeTimeout},
		handlers: make(map[string][]Handler),
	}
}

// On registers h for event. Handlers run on the read goroutine in
// registration order.
func (c *Client) On(event string, h Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[event] = append(c.handlers[event], h)
}

// Origin returns the origin of the live connection, or "" when there is none.
func (c *Client) Origin() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return ""
	}
	return c.origin
}

// Sync makes sure a connection to the current base URL's origin is open.
// An existing connection to the same origin is reused; one to a different
// origin is closed first.
func (c *Client) Sync(ctx context.Context) error {
	origin, err := NormalizeOrigin(c.source.BaseURL(), c.opts.Platform)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil && c.origin == origin {
		return nil
	}
	if c.conn != nil {
		c.log.Info(ctx, "base url changed; reconnecting", "from", c.origin, "to", origin)
		c.closeLocked()
	}

	wsURL, err := socketURL(origin)
	if err != nil {
		return err
	}
	conn, _, err := c.dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("websocket dial %s: %w", origin, err)
	}

	c.conn = conn
	c.origin = origin
	c.done = make(chan struct{})
	go c.readLoop(conn, c.done)

	c.log.Debug(ctx, "realtime connected", "origin", origin)
	return nil
}

// Close shuts the connection down. It is safe to call more than once.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
	return nil
}

func (c *Client) closeLocked() {
	if c.conn == nil {
		return
	}
	close(c.done)
	c.writeMu.Lock()
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.writeMu.Unlock()
	_ = c.conn.Close()
	c.conn = nil
	c.origin = ""
}

// Emit sends a Socket.IO event with a single JSON argument.
func (c *Client) Emit(event string, payload any) error {
	frame, err := json.Marshal([]any{event, payload})
	if err != nil {
		return err
	}

	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return ErrClosed
	}
	return c.write(conn, packetEvent+string(frame))
}

func (c *Client) write(conn *websocket.Conn, packet string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return conn.WriteMessage(websocket.TextMessage, []byte(packet))
}

// dropConn forgets conn after its read loop ended so the next Sync redials.
// A connection already replaced by Sync or Close is left alone.
func (c *Client) dropConn(conn *websocket.Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != conn {
		return
	}
	_ = conn.Close()
	c.conn = nil
	c.origin = ""
	c.done = nil
}

func (c *Client) readLoop(conn *websocket.Conn, done chan struct{}) {
	ctx := context.Background()
	defer c.dropConn(conn)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-done:
			default:
				c.log.Warn(ctx, "realtime read failed", logging.Err(err))
			}
			return
		}

		packet := string(msg)
		switch {
		case packet == packetPing:
			if err := c.write(conn, packetPong); err != nil {
				c.log.Warn(ctx, "realtime pong failed", logging.Err(err))
				return
			}
		case strings.HasPrefix(packet, packetEvent):
			c.dispatch(ctx, packet[len(packetEvent):])
		case strings.HasPrefix(packet, packetConnect):
			c.log.Debug(ctx, "namespace connected")
		case strings.HasPrefix(packet, packetDisconnect), packet == packetClose:
			c.log.Info(ctx, "server closed realtime session")
			return
		case strings.HasPrefix(packet, packetError):
			c.log.Warn(ctx, "namespace connect rejected", "detail", packet[len(packetError):])
		case strings.HasPrefix(packet, packetOpen):
			if err := c.write(conn, packetConnect); err != nil {
				c.log.Warn(ctx, "namespace connect failed", logging.Err(err))
				return
			}
		}
	}
}

func (c *Client) dispatch(ctx context.Context, body string) {
	var args []json.RawMessage
	if err := json.Unmarshal([]byte(body), &args); err != nil || len(args) == 0 {
		c.log.Debug(ctx, "ignoring malformed event", "body", body)
		return
	}
	var event string
	if err := json.Unmarshal(args[0], &event); err != nil {
		c.log.Debug(ctx, "ignoring event without name", "body", body)
		return
	}
	var payload json.RawMessage
	if len(args) > 1 {
		payload = args[1]
	}

	c.mu.Lock()
	handlers := append([]Handler(nil), c.handlers[event]...)
	c.mu.Unlock()

	for _, h := range handlers {
		h(payload)
	}
}
