// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/bijukaru-sync/internal/service"
	"github.com/MKhiriev/bijukaru-sync/internal/store"
)

var errorStatusMap = map[error]int{
	ErrUpgradeRequired: http.StatusUpgradeRequired,

	service.ErrTokenMissing:     http.StatusBadRequest,
	service.ErrTokenMalformed:   http.StatusBadRequest,
	service.ErrMalformedMessage: http.StatusBadRequest,
	service.ErrHubClosed:        http.StatusServiceUnavailable,
	service.ErrActorLoadFailed:  http.StatusServiceUnavailable,
	service.ErrActorStopped:     http.StatusServiceUnavailable,

	store.ErrDecodingState:      http.StatusInternalServerError,
	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
