// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

// Server defines the lifecycle contract of the gateway.
//
// RunServer blocks until a stop signal arrives or the listener fails.
// Shutdown releases every resource the server owns and may be called
// more than once.
type Server interface {
	RunServer()
	Shutdown()
}
