// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/bijukaru-sync/internal/adapter"
	"github.com/MKhiriev/bijukaru-sync/internal/logger"
	"github.com/MKhiriev/bijukaru-sync/internal/store"
	"github.com/MKhiriev/bijukaru-sync/models"
)

type clientSyncService struct {
	localStore  store.StateRepository
	agent       adapter.SyncAgent
	pushTimeout time.Duration
	now         func() time.Time

	mu       sync.Mutex
	token    string
	local    models.SyncedState
	onChange []func(models.SyncedState)

	logger *logger.Logger
}

func NewClientSyncService(storages *store.ClientStorages, agent adapter.SyncAgent, pushTimeout time.Duration, logger *logger.Logger) ClientSyncService {
	if pushTimeout <= 0 {
		pushTimeout = 10 * time.Second
	}

	s := &clientSyncService{
		localStore:  storages.StateRepository,
		agent:       agent,
		pushTimeout: pushTimeout,
		now:         time.Now,
		local:       models.NewSyncedState(),
		logger:      logger,
	}
	agent.OnUpdate(s.applyRemote)
	agent.OnStatus(s.handleStatus)

	return s
}

func (s *clientSyncService) Start(ctx context.Context, token string) error {
	if token == "" {
		return ErrNoToken
	}
	if err := ValidateToken(token); err != nil {
		return err
	}

	cached := models.NewSyncedState()
	stored, err := s.localStore.LoadState(ctx, token)
	switch {
	case err == nil:
		cached = stored.State.Normalized()
	case errors.Is(err, store.ErrStateNotFound):
		s.logger.Debug().Str("token", token).Msg("no cached state, starting empty")
	default:
		s.logger.Warn().Err(err).Str("func", "*clientSyncService.Start").Msg("error loading cached state, starting empty")
	}

	s.mu.Lock()
	s.token = token
	s.local = cached
	s.mu.Unlock()

	if err = s.agent.Connect(ctx, token); err != nil {
		return fmt.Errorf("error connecting to sync server: %w", err)
	}
	return nil
}

func (s *clientSyncService) State() models.SyncedState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.local.Clone()
}

func (s *clientSyncService) AddFavourite(ctx context.Context, mediaSource, categoryID string) error {
	if mediaSource == "" || categoryID == "" {
		return fmt.Errorf("%w: media source and category are required", models.ErrMalformedState)
	}

	fragment := models.SyncedState{Favourites: map[string][]string{mediaSource: {categoryID}}}
	return s.applyLocal(ctx, fragment)
}

func (s *clientSyncService) LikeItem(ctx context.Context, item models.LikedItem) error {
	if item.ID == "" {
		return models.ErrLikedItemWithoutID
	}

	fragment := models.SyncedState{LikedImages: []models.LikedItem{item}}
	return s.applyLocal(ctx, fragment)
}

// applyLocal merges a local edit, caches it and pushes the full local state.
// An offline push is not an error: the state goes out after the next connect.
func (s *clientSyncService) applyLocal(ctx context.Context, fragment models.SyncedState) error {
	if _, err := s.currentToken(); err != nil {
		return err
	}

	state := s.merge(fragment)
	s.cache(ctx, state)
	s.notify(state)

	err := s.push(ctx, state)
	if errors.Is(err, adapter.ErrNotConnected) {
		s.logger.Debug().Msg("offline, local edit will be pushed after reconnect")
		return nil
	}
	return err
}

func (s *clientSyncService) ForceSync(ctx context.Context) error {
	if _, err := s.currentToken(); err != nil {
		return err
	}
	return s.push(ctx, s.State())
}

func (s *clientSyncService) Reconnect(ctx context.Context) error {
	token, err := s.currentToken()
	if err != nil {
		return err
	}

	s.agent.ResetReconnection()
	if err = s.agent.Connect(ctx, token); err != nil {
		return fmt.Errorf("error reconnecting to sync server: %w", err)
	}
	return nil
}

func (s *clientSyncService) OnChange(cb func(models.SyncedState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, cb)
}

func (s *clientSyncService) Stats() ClientStats {
	s.mu.Lock()
	size := models.SizeOf(s.local)
	s.mu.Unlock()

	return ClientStats{
		AgentStats: s.agent.Stats(),
		DataSize:   size,
	}
}

func (s *clientSyncService) Stop() error {
	return s.agent.Disconnect()
}

// applyRemote runs for every canonical state the server sends.
func (s *clientSyncService) applyRemote(remote models.SyncedState) {
	state := s.merge(remote)

	ctx, cancel := context.WithTimeout(context.Background(), s.pushTimeout)
	defer cancel()

	s.cache(ctx, state)
	s.notify(state)
}

func (s *clientSyncService) handleStatus(status adapter.AgentStatus) {
	s.logger.Info().Str("status", status.String()).Msg("sync status changed")
	if status != adapter.StatusConnected {
		return
	}

	if err := s.push(context.Background(), s.State()); err != nil {
		s.logger.Warn().Err(err).Str("func", "*clientSyncService.handleStatus").Msg("error pushing local state after connect")
	}
}

func (s *clientSyncService) merge(fragment models.SyncedState) models.SyncedState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.local = Merge(s.local, fragment)
	return s.local.Clone()
}

func (s *clientSyncService) push(ctx context.Context, state models.SyncedState) error {
	ctx, cancel := context.WithTimeout(ctx, s.pushTimeout)
	defer cancel()

	if err := s.agent.Push(ctx, state); err != nil {
		return fmt.Errorf("error pushing local state: %w", err)
	}
	return nil
}

func (s *clientSyncService) cache(ctx context.Context, state models.SyncedState) {
	token, err := s.currentToken()
	if err != nil {
		return
	}
	if err = s.localStore.SaveState(ctx, token, state, s.now()); err != nil {
		s.logger.Warn().Err(err).Str("func", "*clientSyncService.cache").Msg("error caching local state")
	}
}

func (s *clientSyncService) notify(state models.SyncedState) {
	s.mu.Lock()
	callbacks := slices.Clone(s.onChange)
	s.mu.Unlock()

	for _, cb := range callbacks {
		cb(state.Clone())
	}
}

func (s *clientSyncService) currentToken() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == "" {
		return "", ErrNoToken
	}
	return s.token, nil
}
