// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// ErrUpgradeRequired is reported for a plain HTTP request to the WebSocket
// endpoint.
var ErrUpgradeRequired = errors.New("expected Upgrade: websocket")
