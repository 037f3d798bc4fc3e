// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

const (
	syncStatesTable = "sync_states"

	colToken     = "token"
	colState     = "state"
	colUpdatedAt = "updated_at"
)

func placeholderFor(dialect Dialect) (sq.PlaceholderFormat, error) {
	switch dialect {
	case DialectPostgres:
		return sq.Dollar, nil
	case DialectSQLite:
		return sq.Question, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDialect, dialect)
	}
}

// buildSaveStateQuery builds the upsert of a single token row. Both
// supported databases understand ON CONFLICT ... DO UPDATE with excluded.
func buildSaveStateQuery(dialect Dialect, token string, state []byte, updatedAtMillis int64) (string, []any, error) {
	format, err := placeholderFor(dialect)
	if err != nil {
		return "", nil, err
	}

	query, args, err := sq.Insert(syncStatesTable).
		Columns(colToken, colState, colUpdatedAt).
		Values(token, string(state), updatedAtMillis).
		Suffix("ON CONFLICT (" + colToken + ") DO UPDATE SET " +
			colState + " = excluded." + colState + ", " +
			colUpdatedAt + " = excluded." + colUpdatedAt).
		PlaceholderFormat(format).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildLoadStateQuery(dialect Dialect, token string) (string, []any, error) {
	format, err := placeholderFor(dialect)
	if err != nil {
		return "", nil, err
	}

	query, args, err := sq.Select(colToken, colState, colUpdatedAt).
		From(syncStatesTable).
		Where(sq.Eq{colToken: token}).
		PlaceholderFormat(format).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
