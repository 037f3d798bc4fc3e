// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/bijukaru-sync/internal/config"
	"github.com/MKhiriev/bijukaru-sync/internal/handler"
	"github.com/MKhiriev/bijukaru-sync/internal/logger"
	"github.com/MKhiriev/bijukaru-sync/internal/server"
	"github.com/MKhiriev/bijukaru-sync/internal/service"
	"github.com/MKhiriev/bijukaru-sync/internal/store"
	"github.com/MKhiriev/bijukaru-sync/internal/workers"
	"github.com/MKhiriev/bijukaru-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	fmt.Println(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))

	log := logger.NewLogger("bijukaru-sync-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	services, err := service.NewServices(storages, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, services, workers.NewWorkers(services, *cfg, log), storages, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}
