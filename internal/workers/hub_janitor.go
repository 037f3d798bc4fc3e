// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/bijukaru-sync/internal/logger"
	"github.com/MKhiriev/bijukaru-sync/internal/service"
)

// hubJanitor stops sync actors that had no sessions for idleTimeout. Their
// state is persisted on stop and reloaded by the next connection.
type hubJanitor struct {
	hub         service.SyncService
	interval    time.Duration
	idleTimeout time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewHubJanitor checks the hub every interval. Zero or negative values fall
// back to one minute for interval and five minutes for idleTimeout.
func NewHubJanitor(hub service.SyncService, interval, idleTimeout time.Duration, logger *logger.Logger) Worker {
	if interval <= 0 {
		interval = time.Minute
	}
	if idleTimeout <= 0 {
		idleTimeout = 5 * time.Minute
	}

	return &hubJanitor{
		hub:         hub,
		interval:    interval,
		idleTimeout: idleTimeout,
		logger:      logger,
	}
}

func (j *hubJanitor) Run() {
	j.Stop()

	j.mu.Lock()
	ctx, cancel := context.WithCancel(context.Background())
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	j.logger.Info().Dur("interval", j.interval).Dur("idle_timeout", j.idleTimeout).Msg("hub janitor started")

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if n := j.hub.EvictIdle(ctx, j.idleTimeout); n > 0 {
					j.logger.Debug().Int("evicted", n).Msg("janitor pass finished")
				}
			}
		}
	}()
}

func (j *hubJanitor) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
