// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/bijukaru-sync/internal/config"
	"github.com/MKhiriev/bijukaru-sync/internal/logger"
	"github.com/MKhiriev/bijukaru-sync/models"
)

func newTestStateRepo(t *testing.T, dialect Dialect) (*stateRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	l := logger.Nop()
	repo := &stateRepository{
		db:     &DB{DB: db, dialect: dialect, logger: l, errorClassificator: NewPostgresErrorClassifier()},
		logger: l,
	}
	return repo, mock
}

func sampleState() models.SyncedState {
	return models.SyncedState{
		Favourites:  map[string][]string{"apod": {"today"}},
		LikedImages: []models.LikedItem{{ID: "img1", Title: "Nebula"}},
	}
}

func TestSaveState_Postgres(t *testing.T) {
	repo, mock := newTestStateRepo(t, DialectPostgres)
	at := time.UnixMilli(1700000000123)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sync_states (token,state,updated_at) VALUES ($1,$2,$3) ON CONFLICT (token) DO UPDATE")).
		WithArgs("AB12CD34", sqlmock.AnyArg(), int64(1700000000123)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SaveState(context.Background(), "AB12CD34", sampleState(), at)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveState_SQLitePlaceholders(t *testing.T) {
	repo, mock := newTestStateRepo(t, DialectSQLite)

	mock.ExpectExec(regexp.QuoteMeta("VALUES (?,?,?)")).
		WithArgs("AB12CD34", `{"favourites":{},"likedImages":[]}`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.SaveState(context.Background(), "AB12CD34", models.SyncedState{}, time.Now())

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveState_ExecError(t *testing.T) {
	repo, mock := newTestStateRepo(t, DialectPostgres)

	mock.ExpectExec("INSERT INTO sync_states").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.ConnectionFailure})

	err := repo.SaveState(context.Background(), "AB12CD34", sampleState(), time.Now())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecutingStatement)
}

func TestSaveState_UnsupportedDialect(t *testing.T) {
	repo, _ := newTestStateRepo(t, Dialect("mssql"))

	err := repo.SaveState(context.Background(), "AB12CD34", sampleState(), time.Now())

	assert.ErrorIs(t, err, ErrUnsupportedDialect)
}

func TestLoadState_Found(t *testing.T) {
	repo, mock := newTestStateRepo(t, DialectPostgres)

	rows := sqlmock.NewRows([]string{"token", "state", "updated_at"}).
		AddRow("AB12CD34", `{"favourites":{"apod":["today"]},"likedImages":[{"id":"img1","title":"Nebula","image_url":"","link":""}]}`, int64(1700000000123))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT token, state, updated_at FROM sync_states WHERE token = $1")).
		WithArgs("AB12CD34").
		WillReturnRows(rows)

	got, err := repo.LoadState(context.Background(), "AB12CD34")

	require.NoError(t, err)
	assert.Equal(t, "AB12CD34", got.Token)
	assert.Equal(t, sampleState(), got.State)
	assert.Equal(t, int64(1700000000123), got.UpdatedAt.UnixMilli())
}

func TestLoadState_NotFound(t *testing.T) {
	repo, mock := newTestStateRepo(t, DialectPostgres)

	mock.ExpectQuery("SELECT").WillReturnError(sql.ErrNoRows)

	_, err := repo.LoadState(context.Background(), "AB12CD34")

	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestLoadState_QueryError(t *testing.T) {
	repo, mock := newTestStateRepo(t, DialectPostgres)

	mock.ExpectQuery("SELECT").WillReturnError(assert.AnError)

	_, err := repo.LoadState(context.Background(), "AB12CD34")

	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestLoadState_CorruptedPayload(t *testing.T) {
	repo, mock := newTestStateRepo(t, DialectPostgres)

	rows := sqlmock.NewRows([]string{"token", "state", "updated_at"}).AddRow("AB12CD34", `not json`, int64(1))
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	_, err := repo.LoadState(context.Background(), "AB12CD34")

	assert.ErrorIs(t, err, ErrDecodingState)
	assert.ErrorIs(t, err, models.ErrMalformedState)
}

func TestStateRepository_SQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	cfg := config.Storage{DB: config.DB{DSN: filepath.Join(t.TempDir(), "nested", "sync.db")}}

	storages, err := NewClientStorages(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })
	repo := storages.StateRepository

	_, err = repo.LoadState(ctx, "AB12CD34")
	require.ErrorIs(t, err, ErrStateNotFound)

	first := time.UnixMilli(1000)
	require.NoError(t, repo.SaveState(ctx, "AB12CD34", sampleState(), first))

	updated := sampleState()
	updated.Favourites["mars"] = []string{"curiosity"}
	second := time.UnixMilli(2000)
	require.NoError(t, repo.SaveState(ctx, "AB12CD34", updated, second))

	got, err := repo.LoadState(ctx, "AB12CD34")
	require.NoError(t, err)
	assert.Equal(t, updated, got.State)
	assert.Equal(t, second.UnixMilli(), got.UpdatedAt.UnixMilli())
}
