// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// StructuredFileConfig is the on-disk layout of the configuration file.
// The same struct is decoded from JSON and YAML.
type StructuredFileConfig struct {
	App struct {
		Version string `json:"version" yaml:"version"`
	} `json:"app,omitempty" yaml:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn" yaml:"dsn"`
		} `json:"db,omitempty" yaml:"db,omitempty"`
	} `json:"storage,omitempty" yaml:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address" yaml:"http_address"`
		RequestTimeout  Duration `json:"request_timeout" yaml:"request_timeout"`
		WriteTimeout    Duration `json:"write_timeout" yaml:"write_timeout"`
		MaxMessageBytes int64    `json:"max_message_bytes" yaml:"max_message_bytes"`
		AllowedOrigins  []string `json:"allowed_origins" yaml:"allowed_origins"`
	} `json:"server,omitempty" yaml:"server,omitempty"`

	Sync struct {
		ReconcileInterval Duration `json:"reconcile_interval" yaml:"reconcile_interval"`
		PersistTimeout    Duration `json:"persist_timeout" yaml:"persist_timeout"`
		IdleTimeout       Duration `json:"idle_timeout" yaml:"idle_timeout"`
	} `json:"sync,omitempty" yaml:"sync,omitempty"`

	Adapter struct {
		HTTPAddress           string   `json:"http_address" yaml:"http_address"`
		RequestTimeout        Duration `json:"request_timeout" yaml:"request_timeout"`
		HandshakeTimeout      Duration `json:"handshake_timeout" yaml:"handshake_timeout"`
		ReconnectInitialDelay Duration `json:"reconnect_initial_delay" yaml:"reconnect_initial_delay"`
		ReconnectMaxDelay     Duration `json:"reconnect_max_delay" yaml:"reconnect_max_delay"`
		ReconnectAttempts     int      `json:"reconnect_attempts" yaml:"reconnect_attempts"`
		Token                 string   `json:"token" yaml:"token"`
	} `json:"adapter,omitempty" yaml:"adapter,omitempty"`

	Workers struct {
		JanitorInterval Duration `json:"janitor_interval" yaml:"janitor_interval"`
	} `json:"workers,omitempty" yaml:"workers,omitempty"`
}

func parseConfigFile(path string) (*StructuredConfig, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a config file: %w", err)
	}

	var fileCfg StructuredFileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding yaml configs: %w", err)
		}
	default:
		if err := json.Unmarshal(content, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	}

	return fileCfg.toStructured(), nil
}

func (f StructuredFileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Version: f.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: f.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:     f.Server.HTTPAddress,
			RequestTimeout:  time.Duration(f.Server.RequestTimeout),
			WriteTimeout:    time.Duration(f.Server.WriteTimeout),
			MaxMessageBytes: f.Server.MaxMessageBytes,
			AllowedOrigins:  f.Server.AllowedOrigins,
		},
		Sync: Sync{
			ReconcileInterval: time.Duration(f.Sync.ReconcileInterval),
			PersistTimeout:    time.Duration(f.Sync.PersistTimeout),
			IdleTimeout:       time.Duration(f.Sync.IdleTimeout),
		},
		Adapter: Adapter{
			HTTPAddress:           f.Adapter.HTTPAddress,
			RequestTimeout:        time.Duration(f.Adapter.RequestTimeout),
			HandshakeTimeout:      time.Duration(f.Adapter.HandshakeTimeout),
			ReconnectInitialDelay: time.Duration(f.Adapter.ReconnectInitialDelay),
			ReconnectMaxDelay:     time.Duration(f.Adapter.ReconnectMaxDelay),
			ReconnectAttempts:     f.Adapter.ReconnectAttempts,
			Token:                 f.Adapter.Token,
		},
		Workers: Workers{
			JanitorInterval: time.Duration(f.Workers.JanitorInterval),
		},
	}
}

// Duration is a wrapper around time.Duration that supports decoding from
// strings like "1h", "30s" (JSON and YAML) as well as plain nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	if tmp, err := time.ParseDuration(s); err == nil {
		*d = Duration(tmp)
		return nil
	}

	var n int64
	if err := node.Decode(&n); err != nil {
		return fmt.Errorf("invalid duration %q", s)
	}
	*d = Duration(time.Duration(n))
	return nil
}
