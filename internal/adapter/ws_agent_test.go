// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/bijukaru-sync/internal/config"
	"github.com/MKhiriev/bijukaru-sync/internal/logger"
	"github.com/MKhiriev/bijukaru-sync/models"
)

const testToken = "AB12CD34"

// fakeSyncServer accepts WebSocket connections, sends a snapshot on join and
// records every inbound message.
type fakeSyncServer struct {
	snapshot string
	reject   atomic.Bool

	mu       sync.Mutex
	received []string
	conns    []*websocket.Conn
	tokens   []string
}

func (f *fakeSyncServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if f.reject.Load() {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		return
	}

	f.mu.Lock()
	f.conns = append(f.conns, conn)
	f.tokens = append(f.tokens, r.URL.Query().Get("token"))
	f.mu.Unlock()

	ctx := r.Context()
	_ = conn.Write(ctx, websocket.MessageText, []byte(f.snapshot))

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		f.mu.Lock()
		f.received = append(f.received, string(data))
		f.mu.Unlock()
	}
}

func (f *fakeSyncServer) receivedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.received)
}

func (f *fakeSyncServer) dropAll() {
	f.mu.Lock()
	conns := f.conns
	f.conns = nil
	f.mu.Unlock()

	for _, c := range conns {
		_ = c.Close(websocket.StatusGoingAway, "restart")
	}
}

type scheduled struct {
	delay time.Duration
	fn    func()
}

type fakeTimer struct {
	stopped atomic.Bool
}

func (t *fakeTimer) Stop() bool {
	t.stopped.Store(true)
	return true
}

// manualClock captures reconnect timers instead of running them.
type manualClock struct {
	mu     sync.Mutex
	timers []scheduled
	last   *fakeTimer
}

func (c *manualClock) afterFunc(d time.Duration, f func()) stopper {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timers = append(c.timers, scheduled{delay: d, fn: f})
	c.last = &fakeTimer{}
	return c.last
}

func (c *manualClock) delays() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]time.Duration, 0, len(c.timers))
	for _, s := range c.timers {
		out = append(out, s.delay)
	}
	return out
}

func (c *manualClock) fireLast() {
	c.mu.Lock()
	fn := c.timers[len(c.timers)-1].fn
	c.mu.Unlock()
	fn()
}

func newTestAgent(t *testing.T, serverURL string) (*wsSyncAgent, *manualClock) {
	t.Helper()
	a, err := NewSyncAgent(config.Adapter{
		HTTPAddress:           serverURL,
		HandshakeTimeout:      2 * time.Second,
		ReconnectInitialDelay: time.Second,
		ReconnectMaxDelay:     30 * time.Second,
		ReconnectAttempts:     5,
	}, 0, logger.Nop())
	require.NoError(t, err)

	agent := a.(*wsSyncAgent)
	clock := &manualClock{}
	agent.afterFunc = clock.afterFunc
	t.Cleanup(func() { _ = agent.Disconnect() })
	return agent, clock
}

func TestSyncAgent_ConnectReceivesSnapshot(t *testing.T) {
	srv := &fakeSyncServer{snapshot: `{"favourites":{"apod":["today"]},"likedImages":[]}`}
	ts := httptest.NewServer(srv)
	defer ts.Close()

	agent, _ := newTestAgent(t, ts.URL)

	updates := make(chan models.SyncedState, 1)
	agent.OnUpdate(func(s models.SyncedState) { updates <- s })

	var statuses []AgentStatus
	var statusMu sync.Mutex
	agent.OnStatus(func(s AgentStatus) {
		statusMu.Lock()
		statuses = append(statuses, s)
		statusMu.Unlock()
	})

	require.NoError(t, agent.Connect(context.Background(), testToken))

	select {
	case s := <-updates:
		assert.Equal(t, []string{"today"}, s.Favourites["apod"])
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot received")
	}

	assert.True(t, agent.IsConnected())
	stats := agent.Stats()
	assert.Equal(t, testToken, stats.Token)
	assert.Equal(t, 0, stats.ReconnectAttempts)
	assert.Contains(t, stats.URL, "/ws")

	statusMu.Lock()
	assert.Equal(t, []AgentStatus{StatusConnecting, StatusConnected}, statuses)
	statusMu.Unlock()

	srv.mu.Lock()
	assert.Equal(t, []string{testToken}, srv.tokens)
	srv.mu.Unlock()
}

func TestSyncAgent_PushWhenDisconnected(t *testing.T) {
	agent, _ := newTestAgent(t, "http://127.0.0.1:1")

	err := agent.Push(context.Background(), models.NewSyncedState())

	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestSyncAgent_PushSendsFullState(t *testing.T) {
	srv := &fakeSyncServer{snapshot: `{}`}
	ts := httptest.NewServer(srv)
	defer ts.Close()

	agent, _ := newTestAgent(t, ts.URL)
	require.NoError(t, agent.Connect(context.Background(), testToken))

	state := models.SyncedState{Favourites: map[string][]string{"mars": {"curiosity"}}}
	require.NoError(t, agent.Push(context.Background(), state))

	require.Eventually(t, func() bool { return srv.receivedCount() == 1 }, 2*time.Second, 10*time.Millisecond)
	srv.mu.Lock()
	assert.JSONEq(t, `{"favourites":{"mars":["curiosity"]},"likedImages":[]}`, srv.received[0])
	srv.mu.Unlock()
}

func TestSyncAgent_InvalidToken(t *testing.T) {
	agent, _ := newTestAgent(t, "http://127.0.0.1:1")

	assert.ErrorIs(t, agent.Connect(context.Background(), "short"), ErrInvalidToken)
}

func TestSyncAgent_BackoffThenGiveUp(t *testing.T) {
	srv := &fakeSyncServer{}
	srv.reject.Store(true)
	ts := httptest.NewServer(srv)
	defer ts.Close()

	agent, clock := newTestAgent(t, ts.URL)

	require.Error(t, agent.Connect(context.Background(), testToken))
	for i := 0; i < 5; i++ {
		clock.fireLast()
	}

	assert.Equal(t, []time.Duration{
		1 * time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		16 * time.Second,
	}, clock.delays())
	assert.Equal(t, 5, agent.Stats().ReconnectAttempts)
	assert.False(t, agent.IsConnected())
}

func TestSyncAgent_ManualReconnectResetsAttempts(t *testing.T) {
	srv := &fakeSyncServer{snapshot: `{}`}
	srv.reject.Store(true)
	ts := httptest.NewServer(srv)
	defer ts.Close()

	agent, clock := newTestAgent(t, ts.URL)

	require.Error(t, agent.Connect(context.Background(), testToken))
	clock.fireLast()
	require.Equal(t, 2, agent.Stats().ReconnectAttempts)

	srv.reject.Store(false)
	require.NoError(t, agent.Connect(context.Background(), testToken))

	assert.Equal(t, 0, agent.Stats().ReconnectAttempts)
	assert.True(t, agent.IsConnected())
}

func TestSyncAgent_ReconnectsAfterServerClose(t *testing.T) {
	srv := &fakeSyncServer{snapshot: `{}`}
	ts := httptest.NewServer(srv)
	defer ts.Close()

	agent, clock := newTestAgent(t, ts.URL)
	require.NoError(t, agent.Connect(context.Background(), testToken))

	srv.dropAll()

	require.Eventually(t, func() bool { return len(clock.delays()) == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, time.Second, clock.delays()[0])
	assert.False(t, agent.IsConnected())

	clock.fireLast()

	assert.True(t, agent.IsConnected())
	assert.Equal(t, 0, agent.Stats().ReconnectAttempts)
}

func TestSyncAgent_DisconnectCancelsReconnect(t *testing.T) {
	srv := &fakeSyncServer{}
	srv.reject.Store(true)
	ts := httptest.NewServer(srv)
	defer ts.Close()

	agent, clock := newTestAgent(t, ts.URL)
	require.Error(t, agent.Connect(context.Background(), testToken))

	require.NoError(t, agent.Disconnect())

	clock.mu.Lock()
	timer := clock.last
	clock.mu.Unlock()
	assert.True(t, timer.stopped.Load())
	assert.Equal(t, 0, agent.Stats().ReconnectAttempts)

	// a timer that fires anyway belongs to a dead generation
	srv.reject.Store(false)
	clock.fireLast()
	assert.False(t, agent.IsConnected())
}

func TestSyncAgent_PanickingCallbackKeepsReading(t *testing.T) {
	srv := &fakeSyncServer{snapshot: `{"likedImages":[{"id":"img1"}]}`}
	ts := httptest.NewServer(srv)
	defer ts.Close()

	agent, _ := newTestAgent(t, ts.URL)

	got := make(chan models.SyncedState, 2)
	agent.OnUpdate(func(models.SyncedState) { panic("ui bug") })
	agent.OnUpdate(func(s models.SyncedState) { got <- s })

	require.NoError(t, agent.Connect(context.Background(), testToken))

	select {
	case s := <-got:
		require.Len(t, s.LikedImages, 1)
		assert.Equal(t, "img1", s.LikedImages[0].ID)
	case <-time.After(2 * time.Second):
		t.Fatal("second callback was not called")
	}
	assert.True(t, agent.IsConnected())
}
