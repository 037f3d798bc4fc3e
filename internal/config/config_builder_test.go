// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBuild_FirstNonZeroValueWins(t *testing.T) {
	b := newConfigBuilder().
		withConfig(&StructuredConfig{Server: Server{HTTPAddress: "first:1"}}).
		withConfig(&StructuredConfig{
			Server: Server{HTTPAddress: "second:2", WriteTimeout: time.Second},
			Sync:   Sync{IdleTimeout: time.Minute},
		})

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "first:1", cfg.Server.HTTPAddress)
	assert.Equal(t, time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, time.Minute, cfg.Sync.IdleTimeout)
}

func TestWithConfig_IgnoresNil(t *testing.T) {
	b := newConfigBuilder().withConfig(nil)
	assert.Empty(t, b.configs)
}

func TestWithDefaults_FillsEverything(t *testing.T) {
	cfg, err := newConfigBuilder().withDefaults().build()

	require.NoError(t, err)
	assert.NoError(t, cfg.validate())
	assert.Equal(t, MemoryDSN, cfg.Storage.DB.DSN)
	assert.Equal(t, int64(DefaultMaxMessageBytes), cfg.Server.MaxMessageBytes)
	assert.Equal(t, 30*time.Second, cfg.Sync.ReconcileInterval)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 5, cfg.Adapter.ReconnectAttempts)
}

func TestWithEnv_OverridesDefaults(t *testing.T) {
	setEnvVars(t, map[string]string{
		"SYNC_RECONCILE_INTERVAL": "5s",
	})

	cfg, err := newConfigBuilder().withEnv().withDefaults().build()

	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Sync.ReconcileInterval)
	assert.Equal(t, 5*time.Minute, cfg.Sync.IdleTimeout)
}

func TestWithEnv_ErrorIsCollected(t *testing.T) {
	setEnvVars(t, map[string]string{
		"SYNC_IDLE_TIMEOUT": "forever",
	})

	_, err := newConfigBuilder().withEnv().withDefaults().build()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error occured during building config")
}

func TestWithFile_UsesPathFromEarlierSource(t *testing.T) {
	path := writeTempConfig(t, "cfg.json", `{"sync":{"idle_timeout":"90s"},"server":{"http_address":"file:1"}}`)

	cfg, err := newConfigBuilder().
		withConfig(&StructuredConfig{JSONFilePath: path, Server: Server{HTTPAddress: "flag:2"}}).
		withFile().
		withDefaults().
		build()

	require.NoError(t, err)
	assert.Equal(t, "flag:2", cfg.Server.HTTPAddress)
	assert.Equal(t, 90*time.Second, cfg.Sync.IdleTimeout)
}

func TestWithFile_NoPathIsNoop(t *testing.T) {
	b := newConfigBuilder().withFile()
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

func TestWithFile_MissingFile(t *testing.T) {
	b := newConfigBuilder().
		withConfig(&StructuredConfig{JSONFilePath: filepath.Join(t.TempDir(), "absent.json")}).
		withFile()

	require.Error(t, b.err)
}

func TestWithDotEnv_NoFileIsNoop(t *testing.T) {
	t.Chdir(t.TempDir())

	b := newConfigBuilder().withDotEnv()
	assert.NoError(t, b.err)
}

func TestWithDotEnv_LoadsFile(t *testing.T) {
	clearEnvVars(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, dotEnvFile), []byte("SYNC_PERSIST_TIMEOUT=7s\n"), 0o600))
	t.Chdir(dir)

	cfg, err := newConfigBuilder().withDotEnv().withEnv().build()

	require.NoError(t, err)
	assert.Equal(t, 7*time.Second, cfg.Sync.PersistTimeout)
}

func TestGetClientConfig_Defaults(t *testing.T) {
	clearEnvVars(t)
	t.Chdir(t.TempDir())

	cfg, err := GetClientConfig(nil)

	require.NoError(t, err)
	assert.Equal(t, DefaultClientDBFileName, cfg.Storage.DB.DSN)
	assert.Equal(t, DefaultServerURL, cfg.Adapter.HTTPAddress)
	assert.Equal(t, 10*time.Second, cfg.Adapter.HandshakeTimeout)
}

func TestGetClientConfig_OverridesWinOverDefaults(t *testing.T) {
	clearEnvVars(t)
	t.Chdir(t.TempDir())

	cfg, err := GetClientConfig(&StructuredConfig{
		Adapter: Adapter{HTTPAddress: "http://10.0.0.1:8787", Token: "AB12CD34"},
	})

	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.1:8787", cfg.Adapter.HTTPAddress)
	assert.Equal(t, "AB12CD34", cfg.Adapter.Token)
}

func TestGetClientConfig_RejectsMemoryStore(t *testing.T) {
	clearEnvVars(t)
	t.Chdir(t.TempDir())

	_, err := GetClientConfig(&StructuredConfig{Storage: Storage{DB: DB{DSN: MemoryDSN}}})

	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}
