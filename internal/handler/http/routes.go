// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging, withCORS)

	router.Get("/", h.banner)
	router.Get("/ws", h.webSocket)

	// plain JSON/text endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(h.cfg.RequestTimeout), withGZip)

		r.Get("/api/version/", h.getServerVersion)
		r.Post("/generate-token", h.generateToken)
		r.Get("/status", h.getStatus)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
