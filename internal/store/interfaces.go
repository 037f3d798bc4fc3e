// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/bijukaru-sync/models"
)

// StateRepository persists one synced state per device token.
type StateRepository interface {
	// SaveState replaces the stored state of token. The write is an upsert,
	// so the first save of a token and later saves use the same call.
	SaveState(ctx context.Context, token string, state models.SyncedState, updatedAt time.Time) error

	// LoadState returns the last saved state of token or [ErrStateNotFound]
	// when the token was never saved.
	LoadState(ctx context.Context, token string) (models.StoredState, error)
}

// ErrorClassificator decides whether a failed database call may succeed if
// attempted again.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
