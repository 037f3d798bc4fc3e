// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the server configuration flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN (postgres URL, sqlite file path or "memory")
//	-c/-config json or yaml file path with configs
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-write-timeout websocket frame write timeout
//	-max-message-bytes largest accepted inbound frame
//	-reconcile-interval actor reconciliation period
//	-idle-timeout actor idle eviction timeout
//	-version application version
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("bijukaru-sync", flag.ContinueOnError)

	var serverAddress NetAddress
	var databaseDSN string
	var configPath string
	var requestTimeout time.Duration
	var writeTimeout time.Duration
	var maxMessageBytes int64
	var reconcileInterval time.Duration
	var idleTimeout time.Duration
	var version string

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&configPath, "c", "", "Config file path (json or yaml)")
	fs.StringVar(&configPath, "config", "", "Config file path (alias)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&writeTimeout, "write-timeout", 0, "WebSocket write timeout (e.g., 5s)")
	fs.Int64Var(&maxMessageBytes, "max-message-bytes", 0, "Largest inbound WebSocket frame in bytes")
	fs.DurationVar(&reconcileInterval, "reconcile-interval", 0, "Actor reconciliation interval")
	fs.DurationVar(&idleTimeout, "idle-timeout", 0, "Idle actor eviction timeout")
	fs.StringVar(&version, "version", "", "Application version")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			Version: version,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:     serverAddress.String(),
			RequestTimeout:  requestTimeout,
			WriteTimeout:    writeTimeout,
			MaxMessageBytes: maxMessageBytes,
		},
		Sync: Sync{
			ReconcileInterval: reconcileInterval,
			IdleTimeout:       idleTimeout,
		},
		JSONFilePath: configPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
