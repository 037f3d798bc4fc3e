// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	// ErrTokenMissing is returned when a request carries no device token.
	ErrTokenMissing = errors.New("device token is missing")
	// ErrTokenMalformed is returned when a device token is not 8 alphanumeric characters.
	ErrTokenMalformed = errors.New("device token must be 8 alphanumeric characters")

	// ErrMalformedMessage wraps decode errors of inbound sync messages. The
	// message is dropped and the connection stays open.
	ErrMalformedMessage = errors.New("malformed sync message")

	// ErrActorLoadFailed is returned to every caller of an actor whose
	// persisted state could not be loaded.
	ErrActorLoadFailed = errors.New("sync actor failed to load state")
	// ErrActorStopped is returned when an operation reaches an actor that
	// has already exited.
	ErrActorStopped = errors.New("sync actor is stopped")
	// ErrHubClosed is returned by Acquire after the hub was shut down.
	ErrHubClosed = errors.New("sync hub is closed")

	// ErrNoToken is returned by client operations started without a token.
	ErrNoToken = errors.New("no device token configured")
)
