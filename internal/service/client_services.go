// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/bijukaru-sync/internal/adapter"
	"github.com/MKhiriev/bijukaru-sync/internal/config"
	"github.com/MKhiriev/bijukaru-sync/internal/logger"
	"github.com/MKhiriev/bijukaru-sync/internal/store"
)

type ClientServices struct {
	TokenService TokenService
	SyncService  ClientSyncService
}

func NewClientServices(storages *store.ClientStorages, agent adapter.SyncAgent, cfg config.StructuredConfig, logger *logger.Logger) *ClientServices {
	return &ClientServices{
		TokenService: NewTokenService(logger),
		SyncService:  NewClientSyncService(storages, agent, cfg.Adapter.RequestTimeout, logger),
	}
}
