// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/bijukaru-sync/internal/utils"
)

const (
	traceIDHeader = "X-Trace-ID"
	maxTraceIDLen = 128
)

// withTraceID tags every log line of the request with trace_id. A caller
// supplied X-Trace-ID is reused unless it is oversized.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(traceIDHeader)
		if id == "" || len(id) > maxTraceIDLen {
			id = utils.NewSessionID()
		}

		reqLog := h.logger.With().Str("trace_id", id).Logger()
		w.Header().Set(traceIDHeader, id)
		next.ServeHTTP(w, r.WithContext(reqLog.WithContext(r.Context())))
	})
}
