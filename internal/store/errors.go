// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by the storage driver. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrOpeningDatabase is returned when the underlying sqlite3 handle
	// cannot be opened or pinged within the configured retry budget.
	ErrOpeningDatabase = errors.New("error opening policy database")

	// ErrCreatingStorageFolder is returned when the app storage folder
	// cannot be created on disk.
	ErrCreatingStorageFolder = errors.New("error creating app storage folder")

	// ErrBeginningTransaction is returned when the driver cannot start a
	// new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommittingTransaction is returned when committing an open
	// transaction fails. The transaction is rolled back at this point.
	ErrCommittingTransaction = errors.New("failed to commit transaction")

	// ErrBuildingSQLQuery is returned when the query builder fails to
	// render a statement (e.g. mismatched argument count).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a prepared DML
	// statement (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrPreparingStatement names a failure to prepare a SQL statement.
	// The driver issues statements without an explicit prepare step, so
	// no method in this package returns it.
	ErrPreparingStatement = errors.New("failed to prepare statement")

	// ErrScanningRow is returned when scanning column values from a
	// single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrDatabaseNotOpen is returned when a query capability is used
	// before Open has succeeded.
	ErrDatabaseNotOpen = errors.New("policy database is not open")

	// ErrHasErrors names the state in which the driver's error flag is
	// set (see HasErrors). No method in this package returns it; operations
	// run regardless of the flag.
	ErrHasErrors = errors.New("policy database handle has recorded errors")
)
