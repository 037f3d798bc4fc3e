// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the HTTP and WebSocket transport of the sync
// server.
//
// Routes are wired on a chi router in routes.go. The /ws endpoint upgrades
// the request with coder/websocket, registers the connection as a session
// and pumps inbound frames into the token's sync actor. Tracing, access
// logging and CORS are handled by middleware before a request reaches a
// handler.
package http
