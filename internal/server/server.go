// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"io"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/MKhiriev/bijukaru-sync/internal/app"
	"github.com/MKhiriev/bijukaru-sync/internal/config"
	"github.com/MKhiriev/bijukaru-sync/internal/handler"
	"github.com/MKhiriev/bijukaru-sync/internal/logger"
	"github.com/MKhiriev/bijukaru-sync/internal/service"
	"github.com/MKhiriev/bijukaru-sync/internal/workers"
)

const shutdownTimeout = 15 * time.Second

type server struct {
	httpServer *httpServer
	services   *service.Services
	workers    *workers.Workers
	storages   io.Closer

	shutdownOnce sync.Once
	logger       *logger.Logger
}

func NewServer(
	handlers *handler.Handlers,
	services *service.Services,
	workers *workers.Workers,
	storages io.Closer,
	cfg config.Server,
	logger *logger.Logger,
) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil {
		return nil, errNoListener
	}

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		services:   services,
		workers:    workers,
		storages:   storages,
		logger:     logger,
	}, nil
}

func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := s.run(ctx); err != nil {
		s.logger.Err(err).Msg("error running server")
	}
}

// run serves until ctx is done or the listener fails, then shuts down.
func (s *server) run(ctx context.Context) error {
	ln, err := s.httpServer.listen()
	if err != nil {
		s.Shutdown()
		return err
	}

	if s.workers != nil {
		s.workers.Run()
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.RunServer(ln)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info().Msg("stop signal received")
	case err = <-serveErr:
	}

	s.Shutdown()
	s.logger.Info().Msg("server Shutdown gracefully")

	return err
}

func (s *server) Shutdown() {
	s.shutdownOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		// upgraded connections are not tracked by http.Server
		s.httpServer.Shutdown(ctx)
		if s.services != nil {
			n := s.services.SessionRegistry.CloseAll(app.MsgServerShuttingDown)
			s.logger.Info().Int("sessions", n).Msg("sessions closed")
		}

		if s.workers != nil {
			s.workers.Stop()
		}

		if s.services != nil {
			if err := s.services.SyncService.Close(ctx); err != nil {
				s.logger.Err(err).Msg("error flushing sync actors")
			}
		}

		if s.storages != nil {
			if err := s.storages.Close(); err != nil {
				s.logger.Err(err).Msg("error closing storages")
			}
		}
	})
}
