// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/bijukaru-sync/internal/config"
	"github.com/MKhiriev/bijukaru-sync/internal/logger"
)

// serverVersion answers GET /api/version/ with the configured release string.
type serverVersion string

func NewAppInfoService(cfg config.App, _ *logger.Logger) (AppInfoService, error) {
	v := strings.TrimSpace(cfg.Version)
	if v == "" {
		return nil, fmt.Errorf("app info: %w", ErrVersionIsNotSpecified)
	}
	return serverVersion(v), nil
}

func (v serverVersion) GetAppVersion(ctx context.Context) string {
	logger.FromContext(ctx).Debug().Str("version", string(v)).Msg("version requested")
	return string(v)
}
