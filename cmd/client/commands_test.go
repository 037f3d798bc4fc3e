// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/bijukaru-sync/internal/config"
	httpHandler "github.com/MKhiriev/bijukaru-sync/internal/handler/http"
	"github.com/MKhiriev/bijukaru-sync/internal/logger"
	"github.com/MKhiriev/bijukaru-sync/internal/service"
	"github.com/MKhiriev/bijukaru-sync/internal/store"
	"github.com/MKhiriev/bijukaru-sync/models"
)

func nopLogger(string) *logger.Logger { return logger.Nop() }

func newSyncServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.StructuredConfig{App: config.App{Version: "test"}}
	services, err := service.NewServices(&store.Storages{StateRepository: store.NewMemoryStateRepository(logger.Nop())}, cfg, logger.Nop())
	require.NoError(t, err)

	srv := httptest.NewServer(httpHandler.NewHandler(services, cfg.Server, logger.Nop()).Init())
	t.Cleanup(srv.Close)
	return srv
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(models.NewAppBuildInfo("1.0.0", "", ""), nopLogger)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "Build version: 1.0.0")
	assert.Contains(t, out, "Build date: N/A")
}

func TestTokenCmd(t *testing.T) {
	srv := newSyncServer(t)

	out, err := execute(t, "token", "--server", srv.URL)

	require.NoError(t, err)
	assert.Regexp(t, `^[A-Z0-9]{8}\n$`, out)
}

func TestStatusCmd(t *testing.T) {
	srv := newSyncServer(t)

	out, err := execute(t, "status", "-s", srv.URL, "-t", "AB12CD34")

	require.NoError(t, err)
	assert.Contains(t, out, "connected devices: 0")
	assert.Contains(t, out, "last updated: never")
}

func TestStatusAndRunNeedToken(t *testing.T) {
	t.Setenv("ADAPTER_TOKEN", "")

	for _, sub := range []string{"status", "run"} {
		_, err := execute(t, sub, "--server", "http://localhost:1")
		assert.ErrorIs(t, err, errTokenRequired, sub)
	}
}

func TestTokenCmd_RejectsMemoryCache(t *testing.T) {
	_, err := execute(t, "token", "--db", "memory")

	assert.ErrorIs(t, err, config.ErrInvalidStorageConfigs)
}
