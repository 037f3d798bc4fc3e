// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"

	"github.com/MKhiriev/bijukaru-sync/internal/app"
	"github.com/MKhiriev/bijukaru-sync/internal/logger"
	"github.com/MKhiriev/bijukaru-sync/internal/service"
	"github.com/MKhiriev/bijukaru-sync/internal/utils"
)

const leaveTimeout = 5 * time.Second

// webSocket attaches one device connection to the sync actor of its token.
//
// Protocol errors are answered before any actor work: a request without an
// upgrade gets 426, a missing or malformed token gets 400.
func (h *Handler) webSocket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if !isWebSocketUpgrade(r) {
		http.Error(w, app.MsgUpgradeRequired, statusFromError(ErrUpgradeRequired))
		return
	}

	token := r.URL.Query().Get("token")
	if err := h.services.TokenService.ValidateToken(token); err != nil {
		log.Debug().Err(err).Str("func", "*Handler.webSocket").Msg("invalid device token")
		http.Error(w, app.MsgInvalidToken, statusFromError(err))
		return
	}

	actor, release, err := h.services.SyncService.Acquire(token)
	if err != nil {
		log.Err(err).Str("func", "*Handler.webSocket").Str("token", token).Msg("error acquiring sync actor")
		http.Error(w, app.MsgSyncUnavailable, statusFromError(err))
		return
	}
	defer release()

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.cfg.AllowedOrigins,
	})
	if err != nil {
		log.Err(err).Str("func", "*Handler.webSocket").Msg("error accepting websocket")
		return
	}
	conn.SetReadLimit(h.cfg.MaxMessageBytes)

	session := newWSSession(utils.NewSessionID(), token, conn)
	log = log.WithStr("token", token).WithStr("session_id", session.ID())

	h.services.SessionRegistry.Add(session)
	defer h.services.SessionRegistry.Remove(session)

	if err = actor.Join(ctx, session); err != nil {
		log.Warn().Err(err).Msg("error joining sync actor")
		if errors.Is(err, service.ErrActorLoadFailed) {
			_ = conn.Close(websocket.StatusTryAgainLater, app.MsgStateUnavailable)
			return
		}
		_ = conn.Close(websocket.StatusInternalError, app.MsgInternalServerError)
		return
	}
	log.Info().Msg("session joined")

	defer func() {
		leaveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), leaveTimeout)
		defer cancel()
		if err := actor.Leave(leaveCtx, session); err != nil && !errors.Is(err, service.ErrActorStopped) {
			log.Warn().Err(err).Msg("error leaving sync actor")
		}
	}()

	h.pump(ctx, conn, actor, session, log)
}

// pump feeds inbound frames into the actor until the connection ends.
// Text and binary frames are both taken as UTF-8 JSON.
func (h *Handler) pump(ctx context.Context, conn *websocket.Conn, actor service.SyncActor, session service.Session, log *logger.Logger) {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				log.Info().Msg("session closed")
			default:
				log.Debug().Err(err).Msg("session read ended")
			}
			return
		}

		err = actor.Deliver(ctx, session, data)
		switch {
		case err == nil:
		case errors.Is(err, service.ErrMalformedMessage):
			// dropped, the connection stays open
		case errors.Is(err, service.ErrActorStopped):
			_ = conn.Close(websocket.StatusGoingAway, app.MsgServerShuttingDown)
			return
		default:
			log.Err(err).Str("func", "*Handler.pump").Msg("error delivering message")
			_ = conn.Close(websocket.StatusInternalError, app.MsgInternalServerError)
			return
		}
	}
}

func isWebSocketUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}
