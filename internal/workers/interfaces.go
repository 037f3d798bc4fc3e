// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the background jobs of the sync server.
//
// A [Worker] is started once with Run and stopped with Stop. [Workers]
// groups the jobs so the server can start and stop them together.
package workers

// Worker is a background job.
//
// Run starts the job and returns immediately. Stop signals the job to exit
// and blocks until it has. Both are safe to call more than once.
type Worker interface {
	Run()
	Stop()
}
