// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

const (
	DefaultHTTPAddress      = "localhost:8787"
	DefaultServerURL        = "http://localhost:8787"
	DefaultMaxMessageBytes  = 1 << 20
	DefaultRequestTimeout   = 30 * time.Second
	DefaultClientDBFileName = "bijukaru-client.db"

	// MemoryDSN selects the process-local state store.
	MemoryDSN = "memory"
)

// defaultConfig returns the lowest-priority configuration source.
// Reconnects start at 1s, double up to 30s and give up after five attempts.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Version: "dev",
		},
		Storage: Storage{
			DB: DB{DSN: MemoryDSN},
		},
		Server: Server{
			HTTPAddress:     DefaultHTTPAddress,
			RequestTimeout:  DefaultRequestTimeout,
			WriteTimeout:    5 * time.Second,
			MaxMessageBytes: DefaultMaxMessageBytes,
			AllowedOrigins:  []string{"*"},
		},
		Sync: Sync{
			ReconcileInterval: 30 * time.Second,
			PersistTimeout:    5 * time.Second,
			IdleTimeout:       5 * time.Minute,
		},
		Adapter: Adapter{
			HTTPAddress:           DefaultServerURL,
			RequestTimeout:        15 * time.Second,
			HandshakeTimeout:      10 * time.Second,
			ReconnectInitialDelay: time.Second,
			ReconnectMaxDelay:     30 * time.Second,
			ReconnectAttempts:     5,
		},
		Workers: Workers{
			JanitorInterval: time.Minute,
		},
	}
}
