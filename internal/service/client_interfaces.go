// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/bijukaru-sync/internal/adapter"
	"github.com/MKhiriev/bijukaru-sync/models"
)

// ClientStats is the client view of a device: agent connectivity plus the
// size of the local state.
type ClientStats struct {
	adapter.AgentStats
	DataSize models.DataSize
}

// ClientSyncService keeps the local state of one device and the server state
// of its token converging.
//
// Local edits are merged into the local state, cached on disk and pushed to
// the server as the full local state. Every canonical state received from the
// server is merged into the local state. After each (re)connect the full
// local state is pushed again, so edits made offline reach the server.
type ClientSyncService interface {
	// Start loads the cached state of token and connects to the server. A
	// failed first connection is returned but the agent keeps retrying in
	// the background.
	Start(ctx context.Context, token string) error

	// State returns a copy of the local state.
	State() models.SyncedState

	// AddFavourite marks categoryID of mediaSource as favourite.
	AddFavourite(ctx context.Context, mediaSource, categoryID string) error

	// LikeItem adds item to the liked images. Liking an item twice is a no-op.
	LikeItem(ctx context.Context, item models.LikedItem) error

	// ForceSync pushes the full local state right away.
	ForceSync(ctx context.Context) error

	// Reconnect is the manual reconnect after the agent gave up.
	Reconnect(ctx context.Context) error

	// OnChange registers a callback run after every change of the local state.
	OnChange(cb func(models.SyncedState))

	Stats() ClientStats

	// Stop disconnects from the server.
	Stop() error
}
