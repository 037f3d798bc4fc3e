// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/bijukaru-sync/internal/config"
	"github.com/MKhiriev/bijukaru-sync/internal/logger"
	"github.com/MKhiriev/bijukaru-sync/internal/utils"
	"github.com/MKhiriev/bijukaru-sync/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the resty implementation of
// [ServerAdapter] for the server at adapterCfg.HTTPAddress.
func NewHTTPServerAdapter(adapterCfg config.Adapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty address", ErrInvalidAddress)
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: address must include host and scheme", ErrInvalidAddress)
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) GenerateToken(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Post("/generate-token")
	if err != nil {
		h.logger.Err(err).Str("func", "*httpServerAdapter.GenerateToken").Msg("token request failed")
		return "", fmt.Errorf("generate token request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	var tr models.TokenResponse
	if err = json.Unmarshal(resp.Body(), &tr); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}

	return tr.Token, nil
}

func (h *httpServerAdapter) GetStatus(ctx context.Context, token string) (models.SyncStatus, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParam("token", token).
		Get("/status")
	if err != nil {
		h.logger.Err(err).Str("func", "*httpServerAdapter.GetStatus").Msg("status request failed")
		return models.SyncStatus{}, fmt.Errorf("status request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SyncStatus{}, err
	}

	var status models.SyncStatus
	if err = json.Unmarshal(resp.Body(), &status); err != nil {
		return models.SyncStatus{}, fmt.Errorf("decode status response: %w", err)
	}

	return status, nil
}
