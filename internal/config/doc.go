// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides configuration loading, merging, and validation
// for the bijukaru-sync server and client.
//
// Configuration is assembled from multiple sources. The first source that
// provides a non-zero field wins:
//  1. Environment variables (a .env file is loaded first if present)
//  2. Command-line flags
//  3. JSON or YAML config file
//  4. Built-in defaults
//
// The main entry points are [GetStructuredConfig] for the server and
// [GetClientConfig] for the client.
package config
