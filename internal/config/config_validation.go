// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// validate checks that the final merged server configuration can be used
// at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 || cfg.Server.WriteTimeout <= 0 {
		return ErrInvalidServerConfigs
	}
	if cfg.Server.MaxMessageBytes <= 0 {
		return fmt.Errorf("%w: max message bytes must be positive", ErrInvalidServerConfigs)
	}

	if cfg.Sync.ReconcileInterval <= 0 || cfg.Sync.PersistTimeout <= 0 || cfg.Sync.IdleTimeout <= 0 {
		return ErrInvalidSyncConfigs
	}

	if cfg.Workers.JanitorInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

// validateClient checks the fields the client runtime depends on. The
// client keeps a local cache on disk, so the memory store is rejected.
func (cfg *StructuredConfig) validateClient() error {
	if cfg.Storage.DB.DSN == "" || strings.EqualFold(cfg.Storage.DB.DSN, MemoryDSN) {
		return ErrInvalidStorageConfigs
	}

	a := cfg.Adapter
	if a.HTTPAddress == "" || a.RequestTimeout <= 0 || a.HandshakeTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}
	if a.ReconnectInitialDelay <= 0 || a.ReconnectMaxDelay < a.ReconnectInitialDelay || a.ReconnectAttempts < 1 {
		return fmt.Errorf("%w: reconnect settings", ErrInvalidAdapterConfigs)
	}

	return nil
}
