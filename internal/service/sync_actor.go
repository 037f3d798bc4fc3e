// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/bijukaru-sync/internal/logger"
	"github.com/MKhiriev/bijukaru-sync/internal/store"
	"github.com/MKhiriev/bijukaru-sync/models"
)

// ActorState is the lifecycle stage of a sync actor.
type ActorState int32

const (
	ActorCold ActorState = iota
	ActorLoading
	ActorReady
	ActorMerging
	ActorFailed
	ActorStopped
)

func (s ActorState) String() string {
	switch s {
	case ActorCold:
		return "cold"
	case ActorLoading:
		return "loading"
	case ActorReady:
		return "ready"
	case ActorMerging:
		return "merging"
	case ActorFailed:
		return "failed"
	case ActorStopped:
		return "stopped"
	default:
		return fmt.Sprintf("ActorState(%d)", int32(s))
	}
}

type actorOptions struct {
	reconcileInterval time.Duration
	persistTimeout    time.Duration
	writeTimeout      time.Duration
}

// syncActor owns one token's canonical state. All state below the
// "loop-owned" marker is touched only by the run goroutine.
type syncActor struct {
	token    string
	repo     store.StateRepository
	registry SessionRegistry
	opts     actorOptions
	logger   *logger.Logger
	now      func() time.Time

	mailbox  chan func()
	ready    chan struct{}
	done     chan struct{}
	stopCh   chan struct{}
	stopOnce sync.Once

	state   atomic.Int32
	loadErr error // written before ready is closed

	// loop-owned
	canonical   models.SyncedState
	live        map[string]Session
	lastUpdated *time.Time
	dirty       bool
}

func newSyncActor(token string, repo store.StateRepository, registry SessionRegistry, opts actorOptions, log *logger.Logger) *syncActor {
	return &syncActor{
		token:     token,
		repo:      repo,
		registry:  registry,
		opts:      opts,
		logger:    log.WithStr("token", token),
		now:       time.Now,
		mailbox:   make(chan func()),
		ready:     make(chan struct{}),
		done:      make(chan struct{}),
		stopCh:    make(chan struct{}),
		canonical: models.NewSyncedState(),
		live:      make(map[string]Session),
	}
}

// start launches the actor goroutine. When prev is not nil the actor waits
// for it to close before loading, so that a previous incarnation of the same
// token finishes its last persist first.
func (a *syncActor) start(prev <-chan struct{}) {
	go a.run(prev)
}

func (a *syncActor) run(prev <-chan struct{}) {
	defer close(a.done)

	if prev != nil {
		<-prev
	}

	a.setState(ActorLoading)
	if err := a.load(); err != nil {
		a.loadErr = err
		a.setState(ActorFailed)
		close(a.ready)
		return
	}
	a.setState(ActorReady)
	close(a.ready)

	ticker := time.NewTicker(a.opts.reconcileInterval)
	defer ticker.Stop()

	for {
		select {
		case task := <-a.mailbox:
			task()
		case <-ticker.C:
			a.reconcile()
		case <-a.stopCh:
			a.shutdown()
			return
		}
	}
}

func (a *syncActor) load() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.opts.persistTimeout)
	defer cancel()

	stored, err := a.repo.LoadState(ctx, a.token)
	switch {
	case errors.Is(err, store.ErrStateNotFound):
		a.logger.Debug().Msg("no persisted state, starting empty")
		return nil
	case err != nil:
		a.logger.Err(err).Str("func", "*syncActor.load").Msg("error loading persisted state")
		return err
	}

	a.canonical = stored.State.Normalized()
	updated := stored.UpdatedAt
	a.lastUpdated = &updated
	a.logger.Debug().
		Int("favourites", len(a.canonical.Favourites)).
		Int("liked_images", len(a.canonical.LikedImages)).
		Msg("persisted state loaded")
	return nil
}

// do runs fn on the actor goroutine and waits for it. Once the actor has
// accepted fn it always runs to completion, regardless of ctx.
func (a *syncActor) do(ctx context.Context, fn func()) error {
	select {
	case <-a.ready:
	case <-ctx.Done():
		return ctx.Err()
	}
	if a.loadErr != nil {
		return fmt.Errorf("%w: %w", ErrActorLoadFailed, a.loadErr)
	}

	finished := make(chan struct{})
	task := func() {
		defer close(finished)
		fn()
	}

	select {
	case a.mailbox <- task:
	case <-a.done:
		return ErrActorStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	<-finished
	return nil
}

func (a *syncActor) Token() string {
	return a.token
}

func (a *syncActor) State() ActorState {
	return ActorState(a.state.Load())
}

func (a *syncActor) setState(s ActorState) {
	a.state.Store(int32(s))
}

func (a *syncActor) Join(ctx context.Context, s Session) error {
	var sendErr error
	err := a.do(ctx, func() {
		a.live[s.ID()] = s

		payload, err := a.canonical.Encode()
		if err != nil {
			sendErr = err
			return
		}
		if sendErr = a.send(s, payload); sendErr != nil {
			delete(a.live, s.ID())
			a.logger.Warn().Err(sendErr).Str("session_id", s.ID()).Msg("error sending snapshot to joining session")
			return
		}
		a.logger.Debug().Str("session_id", s.ID()).Int("live", len(a.live)).Msg("session joined")
	})
	if err != nil {
		return err
	}
	return sendErr
}

func (a *syncActor) Deliver(ctx context.Context, s Session, payload []byte) error {
	incoming, err := models.DecodeSyncedState(payload)
	if err != nil {
		a.logger.Warn().Err(err).Str("session_id", s.ID()).Int("bytes", len(payload)).Msg("dropping malformed message")
		return fmt.Errorf("%w: %w", ErrMalformedMessage, err)
	}

	return a.do(ctx, func() {
		a.setState(ActorMerging)
		defer a.setState(ActorReady)

		a.canonical = Merge(a.canonical, incoming)
		a.persist()
		a.broadcast(s.ID())
	})
}

func (a *syncActor) Leave(ctx context.Context, s Session) error {
	return a.do(ctx, func() {
		delete(a.live, s.ID())
		a.logger.Debug().Str("session_id", s.ID()).Int("live", len(a.live)).Msg("session left")
	})
}

func (a *syncActor) Reconcile(ctx context.Context) error {
	return a.do(ctx, a.reconcile)
}

func (a *syncActor) reconcile() {
	open := a.registry.OpenSessions(a.token)

	live := make(map[string]Session, len(open))
	for _, s := range open {
		live[s.ID()] = s
	}
	if dropped := len(a.live) - countShared(a.live, live); dropped > 0 {
		a.logger.Info().Int("dropped", dropped).Msg("removed sessions the transport no longer has")
	}
	a.live = live

	a.persist()
}

func countShared(a, b map[string]Session) int {
	n := 0
	for id := range a {
		if _, ok := b[id]; ok {
			n++
		}
	}
	return n
}

func (a *syncActor) Status(ctx context.Context) (models.SyncStatus, error) {
	var status models.SyncStatus
	err := a.do(ctx, func() {
		status = models.SyncStatus{
			Connected: len(a.live),
			DataSize:  models.SizeOf(a.canonical),
		}
		if a.lastUpdated != nil {
			ms := a.lastUpdated.UnixMilli()
			status.LastUpdated = &ms
		}
	})
	return status, err
}

func (a *syncActor) Stop(ctx context.Context) error {
	a.stopOnce.Do(func() { close(a.stopCh) })

	select {
	case <-a.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *syncActor) shutdown() {
	if a.dirty {
		a.persist()
	}
	a.setState(ActorStopped)
	a.logger.Debug().Bool("unsaved", a.dirty).Msg("sync actor stopped")
}

// persist saves the canonical state. A failure keeps the in-memory state
// authoritative and marks it dirty.
func (a *syncActor) persist() {
	ctx, cancel := context.WithTimeout(context.Background(), a.opts.persistTimeout)
	defer cancel()

	now := a.now()
	if err := a.repo.SaveState(ctx, a.token, a.canonical, now); err != nil {
		a.dirty = true
		a.logger.Err(err).Str("func", "*syncActor.persist").Msg("error persisting state, keeping it in memory")
		return
	}

	a.dirty = false
	a.lastUpdated = &now
}

func (a *syncActor) broadcast(exceptID string) {
	payload, err := a.canonical.Encode()
	if err != nil {
		a.logger.Err(err).Str("func", "*syncActor.broadcast").Msg("error encoding state")
		return
	}

	for id, s := range a.live {
		if id == exceptID {
			continue
		}
		if err := a.send(s, payload); err != nil {
			delete(a.live, id)
			a.logger.Warn().Err(err).Str("session_id", id).Msg("send failed, session removed")
		}
	}
}

func (a *syncActor) send(s Session, payload []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), a.opts.writeTimeout)
	defer cancel()

	return s.Send(ctx, payload)
}
