// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/bijukaru-sync/internal/logger"
	"github.com/MKhiriev/bijukaru-sync/models"
)

type memoryRecord struct {
	payload   []byte
	updatedAt time.Time
}

// memoryStateRepository keeps encoded states in process memory. States are
// stored as JSON so that callers never share maps or slices with the store.
type memoryStateRepository struct {
	mu      sync.RWMutex
	records map[string]memoryRecord
	logger  *logger.Logger
}

// NewMemoryStateRepository returns a [StateRepository] that forgets
// everything when the process exits.
func NewMemoryStateRepository(logger *logger.Logger) StateRepository {
	logger.Debug().Msg("creating in-memory sync state repository")
	return &memoryStateRepository{
		records: make(map[string]memoryRecord),
		logger:  logger,
	}
}

func (m *memoryStateRepository) SaveState(ctx context.Context, token string, state models.SyncedState, updatedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := state.Encode()
	if err != nil {
		return fmt.Errorf("error encoding sync state: %w", err)
	}

	m.mu.Lock()
	m.records[token] = memoryRecord{payload: payload, updatedAt: updatedAt}
	m.mu.Unlock()

	return nil
}

func (m *memoryStateRepository) LoadState(ctx context.Context, token string) (models.StoredState, error) {
	if err := ctx.Err(); err != nil {
		return models.StoredState{}, err
	}

	m.mu.RLock()
	rec, ok := m.records[token]
	m.mu.RUnlock()
	if !ok {
		return models.StoredState{}, ErrStateNotFound
	}

	state, err := models.DecodeSyncedState(rec.payload)
	if err != nil {
		return models.StoredState{}, fmt.Errorf("%w: %w", ErrDecodingState, err)
	}

	return models.StoredState{
		Token:     token,
		State:     state,
		UpdatedAt: time.UnixMilli(rec.updatedAt.UnixMilli()),
	}, nil
}
