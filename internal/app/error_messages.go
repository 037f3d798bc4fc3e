// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the human-readable messages the sync gateway writes
// into plain-text HTTP error bodies and WebSocket close frames.
package app

const (
	// MsgUpgradeRequired answers a plain HTTP request to the WebSocket
	// endpoint.
	MsgUpgradeRequired = "Expected Upgrade: websocket"

	// MsgInvalidToken is returned when the token query parameter is absent
	// or is not eight characters from [A-Za-z0-9].
	MsgInvalidToken = "Invalid or missing device token"

	// MsgTokenGenerationFailed is returned when no token could be drawn.
	MsgTokenGenerationFailed = "error generating token"

	// MsgStatusUnavailable is returned when neither the live actor nor the
	// store could report a status.
	MsgStatusUnavailable = "error getting sync status"

	// MsgSyncUnavailable is returned when the hub is shutting down.
	MsgSyncUnavailable = "sync service unavailable"

	// MsgStateUnavailable is the close reason sent when the persisted state
	// of a token could not be loaded. Clients should retry later.
	MsgStateUnavailable = "state unavailable, try again later"

	// MsgInternalServerError is the close reason for unexpected failures.
	MsgInternalServerError = "internal server error"

	// MsgServerShuttingDown is the close reason sent to every session on
	// graceful shutdown.
	MsgServerShuttingDown = "server shutting down"
)
