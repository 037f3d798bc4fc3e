// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/bijukaru-sync/internal/config"
	"github.com/MKhiriev/bijukaru-sync/internal/logger"
	"github.com/MKhiriev/bijukaru-sync/internal/store"
	"github.com/MKhiriev/bijukaru-sync/models"
)

type hubEntry struct {
	actor     *syncActor
	refs      int
	idleSince time.Time
}

// syncHub maps tokens to their actors. There is never more than one running
// actor per token: a replacement waits for its predecessor to exit.
type syncHub struct {
	mu       sync.Mutex
	actors   map[string]*hubEntry
	retiring map[string]<-chan struct{}
	closed   bool

	repo     store.StateRepository
	registry SessionRegistry
	opts     actorOptions
	now      func() time.Time

	logger *logger.Logger
}

func NewSyncHub(repo store.StateRepository, registry SessionRegistry, cfg config.StructuredConfig, logger *logger.Logger) SyncService {
	return newSyncHub(repo, registry, actorOptions{
		reconcileInterval: cfg.Sync.ReconcileInterval,
		persistTimeout:    cfg.Sync.PersistTimeout,
		writeTimeout:      cfg.Server.WriteTimeout,
	}, logger)
}

func newSyncHub(repo store.StateRepository, registry SessionRegistry, opts actorOptions, logger *logger.Logger) *syncHub {
	if opts.reconcileInterval <= 0 {
		opts.reconcileInterval = 30 * time.Second
	}
	if opts.persistTimeout <= 0 {
		opts.persistTimeout = 5 * time.Second
	}
	if opts.writeTimeout <= 0 {
		opts.writeTimeout = 5 * time.Second
	}

	return &syncHub{
		actors:   make(map[string]*hubEntry),
		retiring: make(map[string]<-chan struct{}),
		repo:     repo,
		registry: registry,
		opts:     opts,
		now:      time.Now,
		logger:   logger,
	}
}

func (h *syncHub) Acquire(token string) (SyncActor, func(), error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, nil, ErrHubClosed
	}

	e, ok := h.actors[token]
	if !ok || e.actor.State() == ActorFailed || isClosed(e.actor.done) {
		prev := h.retiring[token]
		if ok {
			prev = e.actor.done
		}

		a := newSyncActor(token, h.repo, h.registry, h.opts, h.logger)
		a.start(prev)
		delete(h.retiring, token)

		e = &hubEntry{actor: a}
		h.actors[token] = e
		h.logger.Debug().Str("token", token).Msg("sync actor started")
	}
	e.refs++

	var once sync.Once
	release := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()

			e.refs--
			if e.refs == 0 {
				e.idleSince = h.now()
			}
		})
	}

	return e.actor, release, nil
}

func (h *syncHub) Status(ctx context.Context, token string) (models.SyncStatus, error) {
	h.mu.Lock()
	e, ok := h.actors[token]
	h.mu.Unlock()

	if ok && !isClosed(e.actor.done) {
		status, err := e.actor.Status(ctx)
		if err == nil || !errors.Is(err, ErrActorStopped) {
			return status, err
		}
	}

	stored, err := h.repo.LoadState(ctx, token)
	switch {
	case errors.Is(err, store.ErrStateNotFound):
		return models.SyncStatus{}, nil
	case err != nil:
		logger.FromContext(ctx).Err(err).Str("func", "*syncHub.Status").Msg("error loading persisted state")
		return models.SyncStatus{}, fmt.Errorf("error loading status: %w", err)
	}

	ms := stored.UpdatedAt.UnixMilli()
	return models.SyncStatus{
		Connected:   0,
		LastUpdated: &ms,
		DataSize:    models.SizeOf(stored.State),
	}, nil
}

func (h *syncHub) EvictIdle(ctx context.Context, olderThan time.Duration) int {
	now := h.now()

	h.mu.Lock()
	evicted := make([]*syncActor, 0)
	for token, e := range h.actors {
		if e.refs > 0 {
			continue
		}
		if !isClosed(e.actor.done) && now.Sub(e.idleSince) < olderThan {
			continue
		}
		delete(h.actors, token)
		h.retiring[token] = e.actor.done
		evicted = append(evicted, e.actor)
	}
	h.mu.Unlock()

	for _, a := range evicted {
		if err := a.Stop(ctx); err != nil {
			// the actor may still be flushing; its successor waits on retiring
			h.logger.Warn().Err(err).Str("token", a.token).Msg("error stopping idle actor")
			continue
		}

		h.mu.Lock()
		if h.retiring[a.token] == a.done {
			delete(h.retiring, a.token)
		}
		h.mu.Unlock()
	}

	if len(evicted) > 0 {
		h.logger.Info().Int("evicted", len(evicted)).Msg("idle sync actors evicted")
	}
	return len(evicted)
}

func (h *syncHub) Close(ctx context.Context) error {
	h.mu.Lock()
	h.closed = true
	actors := make([]*syncActor, 0, len(h.actors))
	for _, e := range h.actors {
		actors = append(actors, e.actor)
	}
	h.actors = make(map[string]*hubEntry)
	h.mu.Unlock()

	var wg sync.WaitGroup
	errs := make([]error, len(actors))
	for i, a := range actors {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = a.Stop(ctx)
		}()
	}
	wg.Wait()

	return errors.Join(errs...)
}

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}
