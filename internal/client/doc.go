// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive console of a sync device.
//
// It reads one command per line, applies it through the client sync service
// and prints every change of the local state as it arrives from the server.
package client
