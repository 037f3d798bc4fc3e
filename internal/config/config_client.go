// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// GetClientConfig builds and validates the client configuration.
//
// The client command line is owned by cobra, so its flag values are passed
// in as overrides instead of being parsed here. Priority order:
//  1. Environment variables (after loading an optional .env file)
//  2. overrides
//  3. JSON/YAML file
//  4. Client defaults (local SQLite cache next to the working directory)
//  5. Built-in defaults
func GetClientConfig(overrides *StructuredConfig) (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withDotEnv().
		withEnv().
		withConfig(overrides).
		withFile().
		withConfig(clientDefaultConfig()).
		withDefaults().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get client config: %w", err)
	}

	return cfg, cfg.validateClient()
}

func clientDefaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Storage: Storage{
			DB: DB{DSN: DefaultClientDBFileName},
		},
	}
}
