// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/bijukaru-sync/internal/app"
	"github.com/MKhiriev/bijukaru-sync/internal/logger"
	"github.com/MKhiriev/bijukaru-sync/internal/utils"
	"github.com/MKhiriev/bijukaru-sync/models"
)

// generateToken returns a fresh device token. No actor is created until a
// device connects with it.
func (h *Handler) generateToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	token, err := h.services.TokenService.GenerateToken(ctx)
	if err != nil {
		log.Err(err).Str("func", "*Handler.generateToken").Msg(app.MsgTokenGenerationFailed)
		http.Error(w, app.MsgTokenGenerationFailed, statusFromError(err))
		return
	}

	if err = utils.WriteJSON(w, http.StatusOK, models.TokenResponse{Token: token}); err != nil {
		log.Err(err).Str("func", "*Handler.generateToken").Msg("error writing response")
	}
}

func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	token := r.URL.Query().Get("token")
	if err := h.services.TokenService.ValidateToken(token); err != nil {
		log.Debug().Err(err).Str("func", "*Handler.getStatus").Msg("invalid device token")
		http.Error(w, app.MsgInvalidToken, statusFromError(err))
		return
	}

	status, err := h.services.SyncService.Status(ctx, token)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getStatus").Str("token", token).Msg(app.MsgStatusUnavailable)
		http.Error(w, app.MsgStatusUnavailable, statusFromError(err))
		return
	}

	if err = utils.WriteJSON(w, http.StatusOK, status); err != nil {
		log.Err(err).Str("func", "*Handler.getStatus").Msg("error writing response")
	}
}
