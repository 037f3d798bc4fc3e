// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoListener is returned when no handler set carries an HTTP router.
var errNoListener = errors.New("server: nothing to listen with, HTTP handler is not configured")
