// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/bijukaru-sync/models"
)

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// TokenService issues and checks device tokens.
type TokenService interface {
	GenerateToken(ctx context.Context) (string, error)
	ValidateToken(token string) error
}

// Session is one open connection of a device. The actor never owns the
// transport: it only sends to sessions and forgets them.
type Session interface {
	// ID is unique for the lifetime of the process.
	ID() string
	// Token is the device token the session joined.
	Token() string
	// Send writes one full state message. ctx bounds the write.
	Send(ctx context.Context, payload []byte) error
	// Close terminates the transport.
	Close(reason string) error
}

// SessionRegistry is the transport's list of connections that are open
// right now, grouped by token.
type SessionRegistry interface {
	Add(s Session)
	Remove(s Session)
	OpenSessions(token string) []Session
	Count(token string) int
	// CloseAll closes every registered session and returns how many were closed.
	CloseAll(reason string) int
}

// SyncActor is the single writer of one token's canonical state. Every
// method is queued behind the operations already accepted by the actor.
type SyncActor interface {
	Token() string
	State() ActorState

	// Join adds s to the live set and sends it the full canonical state.
	// It blocks while the actor is still loading.
	Join(ctx context.Context, s Session) error
	// Deliver merges payload sent by s, persists the result and broadcasts
	// it to every other live session. A payload that cannot be decoded is
	// dropped with an [ErrMalformedMessage] error.
	Deliver(ctx context.Context, s Session, payload []byte) error
	// Leave removes s from the live set.
	Leave(ctx context.Context, s Session) error
	// Reconcile rebuilds the live set from the session registry and
	// persists the canonical state.
	Reconcile(ctx context.Context) error
	Status(ctx context.Context) (models.SyncStatus, error)
	// Stop persists unsaved state and terminates the actor.
	Stop(ctx context.Context) error
}

// SyncService routes tokens to their actors.
type SyncService interface {
	// Acquire returns the actor of token, starting it when needed. The
	// returned release func must be called once the caller is done with the
	// actor; an actor without holders becomes eligible for idle eviction.
	Acquire(token string) (SyncActor, func(), error)
	// Status reports the live actor's status, or the persisted one when no
	// actor is running for token.
	Status(ctx context.Context, token string) (models.SyncStatus, error)
	// EvictIdle stops actors that had no holders for at least olderThan.
	EvictIdle(ctx context.Context, olderThan time.Duration) int
	// Close stops every actor. Acquire fails afterwards.
	Close(ctx context.Context) error
}
