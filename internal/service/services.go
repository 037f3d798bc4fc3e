// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/bijukaru-sync/internal/config"
	"github.com/MKhiriev/bijukaru-sync/internal/logger"
	"github.com/MKhiriev/bijukaru-sync/internal/store"
)

type Services struct {
	AppInfoService  AppInfoService
	TokenService    TokenService
	SessionRegistry SessionRegistry
	SyncService     SyncService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}
	registry := NewSessionRegistry(logger)

	return &Services{
		AppInfoService:  appInfo,
		TokenService:    NewTokenService(logger),
		SessionRegistry: registry,
		SyncService:     NewSyncHub(storages.StateRepository, registry, cfg, logger),
	}, nil
}
