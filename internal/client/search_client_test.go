package client

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTimer records its delay and lets tests fire the callback on demand
// instead of waiting on the wall clock.
type fakeTimer struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	was := t.stopped
	t.stopped = true
	return !was
}

func (t *fakeTimer) fire() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.stopped = true
	fn := t.fn
	t.mu.Unlock()
	fn()
}

func (t *fakeTimer) isStopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (c *fakeClock) factory(d time.Duration, f func()) Timer {
	t := &fakeTimer{delay: d, fn: f}
	c.mu.Lock()
	c.timers = append(c.timers, t)
	c.mu.Unlock()
	return t
}

func (c *fakeClock) timer(i int) *fakeTimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timers[i]
}

func (c *fakeClock) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// fakeConn records outbound messages and feeds inbound frames through a
// channel so tests control when the connection drops.
type fakeConn struct {
	mu     sync.Mutex
	writes []searchMessage
	inbox  chan []byte
	closed bool
}

func newFakeConn() *fakeConn {
	return &fakeConn{inbox: make(chan []byte, 8)}
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	msg, ok := v.(searchMessage)
	if !ok {
		return errors.New("unexpected message type")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errors.New("connection closed")
	}
	c.writes = append(c.writes, msg)
	return nil
}

func (c *fakeConn) ReadMessage() (int, []byte, error) {
	data, ok := <-c.inbox
	if !ok {
		return 0, nil, errors.New("connection closed")
	}
	return websocket.TextMessage, data, nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.inbox)
	}
	return nil
}

func (c *fakeConn) sentMessages() []searchMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]searchMessage, len(c.writes))
	copy(out, c.writes)
	return out
}

func waitForState(t *testing.T, c *SearchClient, want State) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if c.State() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("client never reached state %q, stuck in %q", want, c.State())
}

func TestSearchBeforeConnectReturnsErrNotConnected(t *testing.T) {
	client := NewSearchClient("ws://example/ws", nil)

	err := client.Search("삼성", 10)

	assert.ErrorIs(t, err, ErrNotConnected)
	assert.Equal(t, StateDisconnected, client.State())
}

func TestDebounceDispatchesOnlyLastQuery(t *testing.T) {
	clock := &fakeClock{}
	conn := newFakeConn()
	client := NewSearchClient("ws://example/ws", nil,
		WithDialer(func(url string) (Conn, error) { return conn, nil }),
		WithTimerFactory(clock.factory),
	)
	defer client.Close()

	client.Connect()
	waitForState(t, client, StateOpen)

	require.NoError(t, client.Search("삼", 10))
	require.NoError(t, client.Search("삼성", 10))
	require.NoError(t, client.Search("삼성전자", 10))

	// Each call restarts the window, cancelling the previous timer.
	require.Equal(t, 3, clock.count())
	assert.True(t, clock.timer(0).isStopped())
	assert.True(t, clock.timer(1).isStopped())
	assert.Equal(t, DebounceInterval, clock.timer(2).delay)

	clock.timer(2).fire()

	sent := conn.sentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, "search", sent[0].Type)
	assert.Equal(t, "삼성전자", sent[0].Payload.Query)
	assert.Equal(t, 10, sent[0].Payload.Limit)
}

func TestReconnectRetriesForeverWithFixedDelay(t *testing.T) {
	clock := &fakeClock{}
	conn := newFakeConn()

	var mu sync.Mutex
	attempts := 0
	dial := func(url string) (Conn, error) {
		mu.Lock()
		defer mu.Unlock()
		attempts++
		if attempts <= 2 {
			return nil, errors.New("connection refused")
		}
		return conn, nil
	}

	client := NewSearchClient("ws://example/ws", nil,
		WithDialer(dial),
		WithTimerFactory(clock.factory),
	)
	defer client.Close()

	client.Connect()
	waitForState(t, client, StateWaiting)

	// First retry fails too and re-arms the same fixed delay.
	require.Equal(t, 1, clock.count())
	assert.Equal(t, ReconnectDelay, clock.timer(0).delay)
	clock.timer(0).fire()
	waitForState(t, client, StateWaiting)

	require.Equal(t, 2, clock.count())
	assert.Equal(t, ReconnectDelay, clock.timer(1).delay)
	clock.timer(1).fire()
	waitForState(t, client, StateOpen)

	mu.Lock()
	assert.Equal(t, 3, attempts)
	mu.Unlock()
}

func TestConnectionLossSchedulesReconnect(t *testing.T) {
	clock := &fakeClock{}
	first := newFakeConn()
	second := newFakeConn()

	var mu sync.Mutex
	attempts := 0
	dial := func(url string) (Conn, error) {
		mu.Lock()
		defer mu.Unlock()
		attempts++
		if attempts == 1 {
			return first, nil
		}
		return second, nil
	}

	client := NewSearchClient("ws://example/ws", nil,
		WithDialer(dial),
		WithTimerFactory(clock.factory),
	)
	defer client.Close()

	client.Connect()
	waitForState(t, client, StateOpen)

	first.Close()
	waitForState(t, client, StateWaiting)

	require.Equal(t, 1, clock.count())
	assert.Equal(t, ReconnectDelay, clock.timer(0).delay)
	clock.timer(0).fire()
	waitForState(t, client, StateOpen)
}

func TestResultsAreDeliveredToCallback(t *testing.T) {
	clock := &fakeClock{}
	conn := newFakeConn()

	results := make(chan Result, 1)
	client := NewSearchClient("ws://example/ws",
		func(r Result) { results <- r },
		WithDialer(func(url string) (Conn, error) { return conn, nil }),
		WithTimerFactory(clock.factory),
	)
	defer client.Close()

	client.Connect()
	waitForState(t, client, StateOpen)

	conn.inbox <- []byte(`{"type":"searchResult","payload":{"query":"카카오","count":1}}`)

	select {
	case r := <-results:
		assert.Equal(t, "searchResult", r.Type)
	case <-time.After(time.Second):
		t.Fatal("result never delivered")
	}
}

func TestCloseClearsPendingDebounce(t *testing.T) {
	clock := &fakeClock{}
	conn := newFakeConn()
	client := NewSearchClient("ws://example/ws", nil,
		WithDialer(func(url string) (Conn, error) { return conn, nil }),
		WithTimerFactory(clock.factory),
	)

	client.Connect()
	waitForState(t, client, StateOpen)

	require.NoError(t, client.Search("알테오젠", 5))
	require.NoError(t, client.Close())

	assert.Equal(t, StateClosed, client.State())
	assert.True(t, clock.timer(0).isStopped())

	// Firing the cancelled timer is a no-op.
	clock.timer(0).fire()
	assert.Empty(t, conn.sentMessages())

	// Terminal: queries after close stay rejected.
	assert.ErrorIs(t, client.Search("알테오젠", 5), ErrNotConnected)
}
