// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrNotFound            = errors.New("not found")
	ErrUpgradeRequired     = errors.New("upgrade required")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrServiceUnavailable  = errors.New("service unavailable")

	// ErrInvalidAddress is returned when the configured server address
	// cannot be turned into HTTP and WebSocket URLs.
	ErrInvalidAddress = errors.New("invalid server address")

	// ErrNotConnected is returned by Push while the agent has no connection.
	ErrNotConnected = errors.New("sync agent is not connected")

	// ErrInvalidToken is returned by Connect for tokens the server would
	// reject anyway.
	ErrInvalidToken = errors.New("device token must be 8 characters")
)
