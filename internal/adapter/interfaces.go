// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client-side transport to the bijukaru-sync
// server.
//
// [ServerAdapter] covers the plain HTTP endpoints (token generation and
// status) on top of resty. [SyncAgent] keeps one WebSocket connection per
// device token, reconnects with exponential backoff and hands every inbound
// canonical state to the registered callbacks.
//
// HTTP status codes are mapped to the sentinel errors of errors.go by
// mapHTTPError so callers can use [errors.Is].
package adapter

import (
	"context"

	"github.com/MKhiriev/bijukaru-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// ServerAdapter talks to the HTTP endpoints of the sync server.
type ServerAdapter interface {
	// GenerateToken asks the server for a fresh device token.
	GenerateToken(ctx context.Context) (string, error)

	// GetStatus returns the live-session count, last persist time and size
	// counters of token without opening a WebSocket.
	GetStatus(ctx context.Context, token string) (models.SyncStatus, error)
}

// SyncAgent keeps a device connected to its token's sync actor.
type SyncAgent interface {
	// Connect opens the connection for token. A failed attempt is returned
	// and also starts the reconnect schedule. Calling Connect again is the
	// manual reconnect: it resets the attempt counter.
	Connect(ctx context.Context, token string) error

	// Push sends state when connected. Nothing is queued: offline pushes
	// return [ErrNotConnected] and are dropped.
	Push(ctx context.Context, state models.SyncedState) error

	// OnUpdate registers a callback run for every inbound canonical state.
	OnUpdate(cb func(models.SyncedState))

	// OnStatus registers a callback run on every connectivity change.
	OnStatus(cb func(AgentStatus))

	// Disconnect closes the connection and cancels pending reconnects.
	Disconnect() error

	IsConnected() bool
	Stats() AgentStats

	// ResetReconnection zeroes the consecutive failure counter.
	ResetReconnection()
}
