// Package client provides the connection-oriented realtime search
// client: a debounced query/response exchange over a websocket that
// reconnects forever on unexpected close.
package client

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/ternarybob/arbor"
)

// ErrNotConnected is returned when a query is sent while the connection
// is not open. Never silently swallowed; callers surface it.
var ErrNotConnected = errors.New("search connection is not open")

const (
	// DebounceInterval is the per-client query debounce window. Only the
	// last query within the window is dispatched.
	DebounceInterval = 500 * time.Millisecond

	// ReconnectDelay is the fixed delay before a reconnect attempt.
	// No backoff growth and no retry cap: the client never permanently
	// gives up.
	ReconnectDelay = 3 * time.Second
)

// State is the connection state of the search client.
type State string

const (
	StateDisconnected State = "disconnected"
	StateWaiting      State = "waiting" // reconnect timer pending
	StateConnecting   State = "connecting"
	StateOpen         State = "open"
	StateClosed       State = "closed" // explicit Close, terminal
)

// Conn is the subset of the websocket connection the client uses.
type Conn interface {
	WriteJSON(v interface{}) error
	ReadMessage() (messageType int, p []byte, err error)
	Close() error
}

// Dialer opens a connection to the search endpoint.
type Dialer func(url string) (Conn, error)

// Timer is a cancellable pending callback.
type Timer interface {
	Stop() bool
}

// TimerFactory schedules f after d. Injectable so tests advance
// simulated time deterministically.
type TimerFactory func(d time.Duration, f func()) Timer

// Result is one realtime response message.
type Result struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// searchMessage is the outbound envelope.
type searchMessage struct {
	Type    string        `json:"type"`
	Payload searchPayload `json:"payload"`
}

type searchPayload struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

// SearchClient maintains a persistent connection to the realtime search
// endpoint. Queries are debounced per client; the connection state is an
// explicit machine so reconnect behaviour is testable.
type SearchClient struct {
	url       string
	dial      Dialer
	newTimer  TimerFactory
	onResult  func(Result)
	logger    arbor.ILogger
	debounce  time.Duration
	reconnect time.Duration

	mu             sync.Mutex
	state          State
	conn           Conn
	pendingQuery   string
	pendingLimit   int
	debounceTimer  Timer
	reconnectTimer Timer
	generation     int // bumped on each reconnect; stale read loops exit
}

// Option configures the SearchClient.
type Option func(*SearchClient)

// WithDialer overrides the websocket dialer.
func WithDialer(d Dialer) Option {
	return func(c *SearchClient) { c.dial = d }
}

// WithTimerFactory overrides timer creation.
func WithTimerFactory(f TimerFactory) Option {
	return func(c *SearchClient) { c.newTimer = f }
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) Option {
	return func(c *SearchClient) { c.logger = logger }
}

// WithDebounce overrides the debounce window.
func WithDebounce(d time.Duration) Option {
	return func(c *SearchClient) { c.debounce = d }
}

// WithReconnectDelay overrides the reconnect delay.
func WithReconnectDelay(d time.Duration) Option {
	return func(c *SearchClient) { c.reconnect = d }
}

// NewSearchClient creates a client for the given ws:// URL. onResult is
// invoked for every inbound message; it must not block.
func NewSearchClient(url string, onResult func(Result), opts ...Option) *SearchClient {
	c := &SearchClient{
		url:       url,
		onResult:  onResult,
		state:     StateDisconnected,
		debounce:  DebounceInterval,
		reconnect: ReconnectDelay,
		dial:      defaultDial,
		newTimer: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func defaultDial(url string) (Conn, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// State returns the current connection state.
func (c *SearchClient) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Connect starts the connection attempt. Safe to call once; reconnects
// are handled internally afterwards.
func (c *SearchClient) Connect() {
	c.mu.Lock()
	if c.state != StateDisconnected {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	c.connect()
}

func (c *SearchClient) connect() {
	c.mu.Lock()
	if c.state == StateClosed {
		c.mu.Unlock()
		return
	}
	c.state = StateConnecting
	url := c.url
	c.mu.Unlock()

	conn, err := c.dial(url)

	c.mu.Lock()
	if c.state == StateClosed {
		c.mu.Unlock()
		if conn != nil {
			conn.Close()
		}
		return
	}

	if err != nil {
		c.scheduleReconnectLocked()
		c.mu.Unlock()
		if c.logger != nil {
			c.logger.Warn().Err(err).Msg("Search connection failed, retrying")
		}
		return
	}

	c.conn = conn
	c.state = StateOpen
	c.generation++
	generation := c.generation
	c.mu.Unlock()

	if c.logger != nil {
		c.logger.Debug().Str("url", url).Msg("Search connection open")
	}

	go c.readLoop(conn, generation)
}

// scheduleReconnectLocked arms the fixed-delay reconnect timer. Caller
// holds c.mu.
func (c *SearchClient) scheduleReconnectLocked() {
	c.state = StateWaiting
	c.reconnectTimer = c.newTimer(c.reconnect, c.connect)
}

// readLoop consumes messages until the connection drops, then schedules
// a reconnect.
func (c *SearchClient) readLoop(conn Conn, generation int) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			// A newer connection may already be active.
			if c.state == StateClosed || generation != c.generation {
				c.mu.Unlock()
				return
			}
			c.conn = nil
			c.scheduleReconnectLocked()
			c.mu.Unlock()

			if c.logger != nil {
				c.logger.Warn().Err(err).Msg("Search connection lost, retrying")
			}
			return
		}

		var result Result
		if err := json.Unmarshal(data, &result); err != nil {
			if c.logger != nil {
				c.logger.Warn().Err(err).Msg("Ignoring malformed search response")
			}
			continue
		}

		if c.onResult != nil {
			c.onResult(result)
		}
	}
}

// Search submits a query. Repeated calls within the debounce window
// supersede each other; only the last query is dispatched. Returns
// ErrNotConnected while the connection is not open.
func (c *SearchClient) Search(query string, limit int) error {
	return c.send("search", query, limit)
}

// Suggest submits a typeahead query, debounced the same way.
func (c *SearchClient) Suggest(query string, limit int) error {
	return c.send("suggest", query, limit)
}

func (c *SearchClient) send(msgType, query string, limit int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateOpen {
		return ErrNotConnected
	}

	c.pendingQuery = query
	c.pendingLimit = limit

	// Last write wins: restart the window on every call.
	if c.debounceTimer != nil {
		c.debounceTimer.Stop()
	}
	c.debounceTimer = c.newTimer(c.debounce, func() {
		c.dispatch(msgType)
	})

	return nil
}

// dispatch sends the pending query after the debounce window elapses.
func (c *SearchClient) dispatch(msgType string) {
	c.mu.Lock()
	if c.state != StateOpen || c.conn == nil {
		c.mu.Unlock()
		return
	}
	conn := c.conn
	msg := searchMessage{
		Type: msgType,
		Payload: searchPayload{
			Query: c.pendingQuery,
			Limit: c.pendingLimit,
		},
	}
	c.mu.Unlock()

	if err := conn.WriteJSON(msg); err != nil && c.logger != nil {
		c.logger.Warn().Err(err).Str("query", msg.Payload.Query).Msg("Search dispatch failed")
	}
}

// Close shuts the client down permanently: pending debounce and
// reconnect timers are cleared so nothing fires after close.
func (c *SearchClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateClosed {
		return nil
	}
	c.state = StateClosed

	if c.debounceTimer != nil {
		c.debounceTimer.Stop()
		c.debounceTimer = nil
	}
	if c.reconnectTimer != nil {
		c.reconnectTimer.Stop()
		c.reconnectTimer = nil
	}

	if c.conn != nil {
		err := c.conn.Close()
		c.conn = nil
		return err
	}
	return nil
}
