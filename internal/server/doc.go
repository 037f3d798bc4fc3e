// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server wires and runs the sync gateway.
//
// It owns the HTTP listener lifecycle together with the background workers,
// and on SIGTERM, SIGINT or SIGQUIT shuts everything down in order: the
// listener stops accepting, live WebSocket sessions are closed with
// "going away", workers stop, actors flush their state and the storage
// backend is closed.
package server
