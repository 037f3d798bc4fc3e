// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// bijukaru-sync server and client. It aggregates all sub-configurations and
// is populated by merging values from a .env file, environment variables,
// command-line flags, an optional JSON/YAML file and built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the version string.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the state store backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address, timeout and transport limits of the
	// HTTP/WebSocket gateway.
	Server Server `envPrefix:"SERVER_"`

	// Sync holds the timing parameters of sync actors.
	Sync Sync `envPrefix:"SYNC_"`

	// Adapter holds client-side transport settings: where the server lives
	// and how the client sync agent reconnects.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON or YAML configuration file.
	// The format is chosen by extension (.yaml/.yml, anything else is JSON).
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running application
	// (e.g. "1.2.3"). Exposed via the /api/version/ endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for the storage backend.
type Storage struct {
	// DB holds the database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the state store.
type DB struct {
	// DSN selects and configures the backend:
	//   - "postgres://..." or "postgresql://...": PostgreSQL via pgx;
	//   - "memory": process-local store, lost on restart;
	//   - anything else: path of an SQLite database file.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network, timeout and transport limits of the gateway.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8787").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds reading request headers and plain HTTP
	// handlers. WebSocket sessions are not affected once upgraded.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// WriteTimeout bounds a single WebSocket frame write to one session.
	// Env: SERVER_WRITE_TIMEOUT
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT"`

	// MaxMessageBytes is the largest inbound WebSocket frame accepted.
	// Env: SERVER_MAX_MESSAGE_BYTES
	MaxMessageBytes int64 `env:"MAX_MESSAGE_BYTES"`

	// AllowedOrigins lists the origin patterns accepted on WebSocket
	// upgrade (comma separated in env). Defaults to every origin.
	// Env: SERVER_ALLOWED_ORIGINS
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// Sync holds timing parameters of sync actors.
type Sync struct {
	// ReconcileInterval is how often an actor rebuilds its live session set
	// from the transport and re-saves its state.
	// Env: SYNC_RECONCILE_INTERVAL
	ReconcileInterval time.Duration `env:"RECONCILE_INTERVAL"`

	// PersistTimeout bounds a single state store call.
	// Env: SYNC_PERSIST_TIMEOUT
	PersistTimeout time.Duration `env:"PERSIST_TIMEOUT"`

	// IdleTimeout is how long an actor without connections is kept in
	// memory before it is evicted.
	// Env: SYNC_IDLE_TIMEOUT
	IdleTimeout time.Duration `env:"IDLE_TIMEOUT"`
}

// Adapter holds client transport settings.
type Adapter struct {
	// HTTPAddress is the base URL of the sync server
	// (e.g. "http://localhost:8787"). The WebSocket URL is derived from it.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the timeout of plain HTTP calls (token, status).
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// HandshakeTimeout bounds a WebSocket connection attempt.
	// Env: ADAPTER_HANDSHAKE_TIMEOUT
	HandshakeTimeout time.Duration `env:"HANDSHAKE_TIMEOUT"`

	// ReconnectInitialDelay is the first reconnect delay; it doubles on
	// every consecutive failure.
	// Env: ADAPTER_RECONNECT_INITIAL_DELAY
	ReconnectInitialDelay time.Duration `env:"RECONNECT_INITIAL_DELAY"`

	// ReconnectMaxDelay caps the reconnect delay.
	// Env: ADAPTER_RECONNECT_MAX_DELAY
	ReconnectMaxDelay time.Duration `env:"RECONNECT_MAX_DELAY"`

	// ReconnectAttempts is the number of consecutive failed attempts after
	// which the agent stops reconnecting on its own.
	// Env: ADAPTER_RECONNECT_ATTEMPTS
	ReconnectAttempts int `env:"RECONNECT_ATTEMPTS"`

	// Token is the device token the client joins.
	// Env: ADAPTER_TOKEN
	Token string `env:"TOKEN"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// JanitorInterval is how often idle actors are looked for.
	// Env: WORKERS_JANITOR_INTERVAL
	JanitorInterval time.Duration `env:"JANITOR_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the server configuration
// from all available sources in the following priority order (the first
// source providing a non-zero field wins):
//  1. Environment variables (after loading an optional .env file)
//  2. Command-line flags
//  3. JSON/YAML file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withDotEnv().
		withEnv().
		withFlags().
		withFile().
		withDefaults().
		build()
	if err != nil {
		return nil, err
	}

	return cfg, cfg.validate()
}
