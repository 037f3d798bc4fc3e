// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

var (
	// ErrStateNotFound is returned by [StateRepository.LoadState] when nothing
	// was ever saved for the token.
	ErrStateNotFound = errors.New("sync state was not found")

	// ErrDecodingState is returned when a stored state blob is not a valid
	// synced state document.
	ErrDecodingState = errors.New("error decoding stored sync state")

	// ErrUnsupportedDialect is returned when a query is built for a database
	// the store does not know.
	ErrUnsupportedDialect = errors.New("unsupported sql dialect")
)

// Low-level database operation errors.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing an INSERT or UPDATE
	// fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a result row fails.
	ErrScanningRow = errors.New("failed to scan sync state row")
)
