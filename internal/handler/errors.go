// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

var errHTTPAddressMissing = errors.New("handler: server HTTP address is empty")
