// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON writes data as a JSON response with statusCode.
//
// Responses are marked no-store: status and tokens change with every
// request. When data cannot be encoded a 500 is written instead and the
// encoding error is returned.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return fmt.Errorf("error encoding JSON response: %w", err)
	}

	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(statusCode)

	if _, err = w.Write(payload); err != nil {
		return fmt.Errorf("error writing JSON response: %w", err)
	}
	return nil
}
