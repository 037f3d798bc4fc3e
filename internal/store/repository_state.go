// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/bijukaru-sync/internal/logger"
	"github.com/MKhiriev/bijukaru-sync/models"
)

// stateRepository is the SQL implementation of [StateRepository]. One row of
// the sync_states table holds the JSON document of one token together with
// the time of its last save in Unix milliseconds.
type stateRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewStateRepository constructs a [StateRepository] backed by db.
func NewStateRepository(db *DB, logger *logger.Logger) StateRepository {
	logger.Debug().Str("dialect", string(db.dialect)).Msg("creating sync state repository")
	return &stateRepository{
		db:     db,
		logger: logger,
	}
}

func (r *stateRepository) SaveState(ctx context.Context, token string, state models.SyncedState, updatedAt time.Time) error {
	log := logger.FromContext(ctx)

	payload, err := state.Encode()
	if err != nil {
		log.Err(err).Str("func", "*stateRepository.SaveState").Msg("error encoding sync state")
		return fmt.Errorf("error encoding sync state: %w", err)
	}

	query, args, err := buildSaveStateQuery(r.db.dialect, token, payload, updatedAt.UnixMilli())
	if err != nil {
		log.Err(err).Str("func", "*stateRepository.SaveState").Msg("error building save query")
		return err
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "*stateRepository.SaveState").
			Stringer("class", r.db.classify(err)).
			Msg("error saving sync state")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *stateRepository) LoadState(ctx context.Context, token string) (models.StoredState, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildLoadStateQuery(r.db.dialect, token)
	if err != nil {
		log.Err(err).Str("func", "*stateRepository.LoadState").Msg("error building load query")
		return models.StoredState{}, err
	}

	var (
		storedToken   string
		payload       string
		updatedMillis int64
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&storedToken, &payload, &updatedMillis)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.StoredState{}, ErrStateNotFound
	case err != nil:
		log.Err(err).
			Str("func", "*stateRepository.LoadState").
			Stringer("class", r.db.classify(err)).
			Msg("error loading sync state")
		return models.StoredState{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	state, err := models.DecodeSyncedState([]byte(payload))
	if err != nil {
		log.Err(err).Str("func", "*stateRepository.LoadState").Msg("stored sync state is corrupted")
		return models.StoredState{}, fmt.Errorf("%w: %w", ErrDecodingState, err)
	}

	return models.StoredState{
		Token:     storedToken,
		State:     state,
		UpdatedAt: time.UnixMilli(updatedMillis),
	}, nil
}
