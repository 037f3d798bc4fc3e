// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/MKhiriev/bijukaru-sync/internal/config"
	"github.com/MKhiriev/bijukaru-sync/internal/logger"
	"github.com/MKhiriev/bijukaru-sync/models"
)

// AgentStatus is the connectivity of a [SyncAgent] as shown to the user.
type AgentStatus int

const (
	StatusDisconnected AgentStatus = iota
	StatusConnecting
	StatusConnected
)

func (s AgentStatus) String() string {
	switch s {
	case StatusConnecting:
		return "connecting"
	case StatusConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// AgentStats is a snapshot of the agent for diagnostics.
type AgentStats struct {
	Status            AgentStatus
	Connected         bool
	Token             string
	ReconnectAttempts int
	URL               string
}

type stopper interface {
	Stop() bool
}

// wsSyncAgent implements [SyncAgent] over coder/websocket.
//
// Every connection gets a generation number. Read loops and reconnect
// timers of an older generation exit without touching the agent.
type wsSyncAgent struct {
	wsURL            string
	handshakeTimeout time.Duration
	readLimit        int64
	backoff          Backoff
	afterFunc        func(d time.Duration, f func()) stopper

	mu       sync.Mutex
	token    string
	conn     *websocket.Conn
	status   AgentStatus
	attempts int
	gen      uint64
	wanted   bool
	timer    stopper
	onUpdate []func(models.SyncedState)
	onStatus []func(AgentStatus)

	logger *logger.Logger
}

// NewSyncAgent builds an agent for the server at adapterCfg.HTTPAddress.
// The WebSocket URL is derived from it (http becomes ws, https becomes wss).
func NewSyncAgent(adapterCfg config.Adapter, readLimit int64, logger *logger.Logger) (SyncAgent, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}
	wsURL, err := websocketURL(baseURL)
	if err != nil {
		return nil, err
	}

	if readLimit <= 0 {
		readLimit = config.DefaultMaxMessageBytes
	}

	return &wsSyncAgent{
		wsURL:            wsURL,
		handshakeTimeout: adapterCfg.HandshakeTimeout,
		readLimit:        readLimit,
		backoff: Backoff{
			Initial:     adapterCfg.ReconnectInitialDelay,
			Max:         adapterCfg.ReconnectMaxDelay,
			MaxAttempts: adapterCfg.ReconnectAttempts,
		},
		afterFunc: func(d time.Duration, f func()) stopper { return time.AfterFunc(d, f) },
		logger:    logger,
	}, nil
}

func websocketURL(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidAddress, u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws"

	return u.String(), nil
}

func (a *wsSyncAgent) urlFor(token string) string {
	return a.wsURL + "?token=" + url.QueryEscape(token)
}

func (a *wsSyncAgent) Connect(ctx context.Context, token string) error {
	if len(token) != 8 {
		return ErrInvalidToken
	}

	a.mu.Lock()
	a.stopTimerLocked()
	old := a.conn
	a.conn = nil
	a.gen++
	gen := a.gen
	a.token = token
	a.attempts = 0
	a.wanted = true
	a.mu.Unlock()

	if old != nil {
		_ = old.Close(websocket.StatusNormalClosure, "reconnecting")
	}

	return a.dial(ctx, gen)
}

func (a *wsSyncAgent) dial(ctx context.Context, gen uint64) error {
	a.mu.Lock()
	if gen != a.gen || !a.wanted {
		a.mu.Unlock()
		return nil
	}
	target := a.urlFor(a.token)
	a.mu.Unlock()

	a.setStatus(StatusConnecting)

	dialCtx, cancel := context.WithTimeout(ctx, a.handshakeTimeout)
	conn, _, err := websocket.Dial(dialCtx, target, nil)
	cancel()
	if err != nil {
		a.logger.Warn().Err(err).Str("func", "*wsSyncAgent.dial").Msg("connection attempt failed")
		a.setStatus(StatusDisconnected)
		a.scheduleReconnect(gen)
		return fmt.Errorf("error connecting to sync server: %w", err)
	}
	conn.SetReadLimit(a.readLimit)

	a.mu.Lock()
	if gen != a.gen || !a.wanted {
		a.mu.Unlock()
		_ = conn.Close(websocket.StatusNormalClosure, "superseded")
		return nil
	}
	a.conn = conn
	a.attempts = 0
	a.mu.Unlock()

	a.logger.Info().Str("url", a.wsURL).Msg("connected to sync server")
	a.setStatus(StatusConnected)

	go a.readLoop(conn, gen)
	return nil
}

func (a *wsSyncAgent) readLoop(conn *websocket.Conn, gen uint64) {
	for {
		_, data, err := conn.Read(context.Background())
		if err != nil {
			a.handleClosed(conn, gen, err)
			return
		}

		state, err := models.DecodeSyncedState(data)
		if err != nil {
			a.logger.Warn().Err(err).Msg("ignoring malformed message from server")
			continue
		}
		a.emitUpdate(state)
	}
}

func (a *wsSyncAgent) handleClosed(conn *websocket.Conn, gen uint64, err error) {
	a.mu.Lock()
	if gen != a.gen {
		a.mu.Unlock()
		return
	}
	if a.conn == conn {
		a.conn = nil
	}
	a.mu.Unlock()

	if status := websocket.CloseStatus(err); status == websocket.StatusNormalClosure {
		a.logger.Info().Msg("connection closed by server")
	} else {
		a.logger.Warn().Err(err).Msg("connection lost")
	}

	a.setStatus(StatusDisconnected)
	a.scheduleReconnect(gen)
}

func (a *wsSyncAgent) scheduleReconnect(gen uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if gen != a.gen || !a.wanted {
		return
	}

	next := a.attempts + 1
	delay, ok := a.backoff.Delay(next)
	if !ok {
		a.logger.Error().Int("attempts", a.attempts).Msg("giving up reconnecting, manual reconnect required")
		return
	}
	a.attempts = next

	a.logger.Info().Int("attempt", next).Dur("delay", delay).Msg("scheduling reconnect")
	a.stopTimerLocked()
	a.timer = a.afterFunc(delay, func() {
		_ = a.dial(context.Background(), gen)
	})
}

func (a *wsSyncAgent) stopTimerLocked() {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

func (a *wsSyncAgent) Push(ctx context.Context, state models.SyncedState) error {
	a.mu.Lock()
	conn := a.conn
	a.mu.Unlock()

	if conn == nil {
		return ErrNotConnected
	}

	payload, err := state.Encode()
	if err != nil {
		return fmt.Errorf("error encoding state: %w", err)
	}

	if err = conn.Write(ctx, websocket.MessageText, payload); err != nil {
		a.logger.Warn().Err(err).Str("func", "*wsSyncAgent.Push").Msg("error sending state")
		return fmt.Errorf("error sending state: %w", err)
	}
	return nil
}

func (a *wsSyncAgent) OnUpdate(cb func(models.SyncedState)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onUpdate = append(a.onUpdate, cb)
}

func (a *wsSyncAgent) OnStatus(cb func(AgentStatus)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onStatus = append(a.onStatus, cb)
}

func (a *wsSyncAgent) Disconnect() error {
	a.mu.Lock()
	a.wanted = false
	a.gen++
	a.stopTimerLocked()
	conn := a.conn
	a.conn = nil
	a.attempts = 0
	a.mu.Unlock()

	if conn != nil {
		// the read loop of this generation may already have seen the close
		_ = conn.Close(websocket.StatusNormalClosure, "client disconnect")
	}
	a.setStatus(StatusDisconnected)
	return nil
}

func (a *wsSyncAgent) IsConnected() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status == StatusConnected
}

func (a *wsSyncAgent) Stats() AgentStats {
	a.mu.Lock()
	defer a.mu.Unlock()

	return AgentStats{
		Status:            a.status,
		Connected:         a.status == StatusConnected,
		Token:             a.token,
		ReconnectAttempts: a.attempts,
		URL:               a.wsURL,
	}
}

func (a *wsSyncAgent) ResetReconnection() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.attempts = 0
}

func (a *wsSyncAgent) setStatus(s AgentStatus) {
	a.mu.Lock()
	if a.status == s {
		a.mu.Unlock()
		return
	}
	a.status = s
	callbacks := slices.Clone(a.onStatus)
	a.mu.Unlock()

	for _, cb := range callbacks {
		a.safeCall(func() { cb(s) })
	}
}

func (a *wsSyncAgent) emitUpdate(state models.SyncedState) {
	a.mu.Lock()
	callbacks := slices.Clone(a.onUpdate)
	a.mu.Unlock()

	for _, cb := range callbacks {
		a.safeCall(func() { cb(state.Clone()) })
	}
}

// safeCall keeps a panicking callback from killing the read loop.
func (a *wsSyncAgent) safeCall(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error().Interface("panic", r).Msg("sync agent callback panicked")
		}
	}()
	fn()
}
