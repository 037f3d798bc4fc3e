// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the lifecycle contract of a runnable device.
type Client interface {
	// Run syncs token until the input ends, a quit command is read or ctx
	// is done.
	Run(ctx context.Context, token string) error
}
