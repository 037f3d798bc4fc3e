// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/bijukaru-sync/internal/logger"
)

// CheckHTTPMethod is the router's MethodNotAllowed handler. A known path
// requested with a method it does not serve gets 404 instead of chi's 405,
// e.g. POST /ws or GET /generate-token.
//
// Requests whose method is registered for the exact path are passed back to
// the router.
func CheckHTTPMethod(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if routeServes(router, r.URL.Path, r.Method) {
			router.ServeHTTP(w, r)
			return
		}

		logger.FromRequest(r).Debug().Str("path", r.URL.Path).Str("method", r.Method).Msg("method not served for path")
		http.NotFound(w, r)
	}
}

func routeServes(router *chi.Mux, path, method string) bool {
	for _, route := range router.Routes() {
		if route.Pattern != path {
			continue
		}
		_, ok := route.Handlers[method]
		return ok
	}
	return false
}
