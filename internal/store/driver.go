// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store is the Storage Driver: a thin capability layer over an
// embedded sqlite3 database — open a file, test read/write capability,
// execute parameterised statements, produce prepared-statement handles, run
// transactions, perform integrity checks, and snapshot/backup a file.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rkhiriev/policytable/internal/logger"
)

// Driver opens and owns a single sqlite3 handle to the policy database.
// On the in-memory-handle platform profile, db() instead opens a fresh
// handle per call and closes it when the caller is done (see db()).
type Driver struct {
	path          string
	label         string
	inMemoryHandle bool

	handle   *sql.DB
	hasErrors bool

	log *logger.Logger
}

// NewDriver constructs a Driver. It does not touch the filesystem; call
// Open to actually connect.
func NewDriver(log *logger.Logger, inMemoryHandle bool) *Driver {
	return &Driver{log: log, inMemoryHandle: inMemoryHandle}
}

// NewWithHandle constructs a Driver already bound to an open handle,
// skipping Open entirely. Used by tests that inject a sqlmock handle, and
// by any caller that manages the sqlite3 connection lifecycle itself.
func NewWithHandle(handle *sql.DB, log *logger.Logger) *Driver {
	return &Driver{handle: handle, log: log}
}

// Open opens (creating if necessary) the database file at path; if the first
// attempt fails it retries up to attempts more times, pausing for timeout
// before each retry. When the driver already holds a handle (one injected by
// NewWithHandle, or one left open by an earlier Open), Open keeps it and
// reports success without opening path. label is
// recorded for diagnostics only. Open reports whether the handle is usable;
// it never returns an error directly, matching the boolean-capability style
// of the rest of the driver.
func (d *Driver) Open(ctx context.Context, path string, label string, attempts uint16, timeout time.Duration) bool {
	d.path = path
	d.label = label
	d.hasErrors = false

	if d.inMemoryHandle {
		// Nothing to open up front: db() will construct a handle lazily
		// on every call and close it afterwards.
		return true
	}

	if d.handle != nil {
		return true
	}

	if err := ensureParentDir(path); err != nil {
		d.log.Err(err).Str("func", "Open").Str("label", label).Msg(ErrCreatingStorageFolder.Error())
		d.hasErrors = true
		return false
	}

	var lastErr error
	for attempt := 0; ; attempt++ {
		handle, err := openSQLite(ctx, path)
		if err == nil {
			d.handle = handle
			d.log.Debug().Str("func", "Open").Str("label", label).Msg("policy database opened")
			return true
		}
		lastErr = err
		if attempt >= int(attempts) {
			break
		}
		d.log.Err(err).Str("func", "Open").Int("attempt", attempt+1).Msg("retrying policy database open")
		select {
		case <-ctx.Done():
			d.hasErrors = true
			return false
		case <-time.After(timeout):
		}
	}

	d.log.Err(lastErr).Str("func", "Open").Str("label", label).Msg(ErrOpeningDatabase.Error())
	d.hasErrors = true
	return false
}

func openSQLite(ctx context.Context, path string) (*sql.DB, error) {
	handle, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpeningDatabase, err)
	}
	if err = handle.PingContext(ctx); err != nil {
		handle.Close()
		return nil, fmt.Errorf("%w: %w", ErrOpeningDatabase, err)
	}
	return handle, nil
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// IsReadWrite reports whether the driver holds a usable handle capable of
// both reads and writes. The in-memory-handle profile is always considered
// read-write since every call opens a fresh file-backed handle.
func (d *Driver) IsReadWrite() bool {
	if d.hasErrors {
		return false
	}
	if d.inMemoryHandle {
		return true
	}
	return d.handle != nil
}

// HasErrors reports whether the driver has recorded a failure since the
// last successful Open.
func (d *Driver) HasErrors() bool {
	return d.hasErrors
}

// Close releases the long-lived handle. It is a no-op on the
// in-memory-handle profile, which never holds one.
func (d *Driver) Close() error {
	if d.handle == nil {
		return nil
	}
	err := d.handle.Close()
	d.handle = nil
	return err
}

// db returns the handle to issue the next operation against. On ordinary
// platforms this is the long-lived handle opened by Open; on the
// in-memory-handle profile it opens a fresh handle against the fixed file
// name every call. release must always be invoked by the caller, even on
// the ordinary-platform path (where it is a no-op), so call sites don't need
// to special-case the profile.
func (d *Driver) db(ctx context.Context) (*sql.DB, func(), error) {
	if !d.inMemoryHandle {
		if d.handle == nil {
			return nil, func() {}, ErrDatabaseNotOpen
		}
		return d.handle, func() {}, nil
	}

	handle, err := openSQLite(ctx, d.path)
	if err != nil {
		return nil, func() {}, err
	}
	return handle, func() { handle.Close() }, nil
}

// Backup snapshots the current database file to dst using sqlite3's online
// backup path (a plain VACUUM INTO, which both copies the schema and
// defragments the file).
func (d *Driver) Backup(ctx context.Context, dst string) bool {
	handle, release, err := d.db(ctx)
	if err != nil {
		d.log.Err(err).Str("func", "Backup").Msg("backup failed: driver not open")
		return false
	}
	defer release()

	if _, err = handle.ExecContext(ctx, "VACUUM INTO ?", dst); err != nil {
		d.log.Err(err).Str("func", "Backup").Msg("backup failed")
		return false
	}
	return true
}

// DeleteFile removes the database file from disk. It is idempotent: a
// missing file is not an error.
func (d *Driver) DeleteFile(path string) bool {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		d.log.Err(err).Str("func", "DeleteFile").Msg("failed to delete policy database file")
		return false
	}
	return true
}

// Path returns the path this driver was opened against.
func (d *Driver) Path() string { return d.path }

// Exec runs query against the driver's handle (applying the in-memory-handle
// escape hatch transparently) and returns the sql.Result.
func (d *Driver) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	handle, release, err := d.db(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseNotOpen, err)
	}
	defer release()

	result, err := handle.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return result, nil
}

// Rows wraps sql.Rows so that closing it also releases the handle obtained
// for the in-memory-handle escape hatch (a no-op on ordinary platforms).
type Rows struct {
	*sql.Rows
	release func()
}

// Close closes the underlying cursor and releases the handle.
func (r *Rows) Close() error {
	defer r.release()
	return r.Rows.Close()
}

// Query runs query against the driver's handle and returns the resulting
// rows. Callers must call rows.Close().
func (d *Driver) Query(ctx context.Context, query string, args ...any) (*Rows, error) {
	handle, release, err := d.db(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseNotOpen, err)
	}

	rows, err := handle.QueryContext(ctx, query, args...)
	if err != nil {
		release()
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return &Rows{Rows: rows, release: release}, nil
}

// QueryRow runs query and returns the first row only, mirroring
// database/sql.DB.QueryRowContext. The in-memory-handle escape hatch's
// fresh handle is closed once the row has been scanned.
func (d *Driver) QueryRow(ctx context.Context, query string, args ...any) (*sql.Row, func(), error) {
	handle, release, err := d.db(ctx)
	if err != nil {
		return nil, func() {}, fmt.Errorf("%w: %w", ErrDatabaseNotOpen, err)
	}
	return handle.QueryRowContext(ctx, query, args...), release, nil
}

// Tx is a transaction boundary spanning exactly one Save(table) call, per
// the single unit-of-atomicity rule: every write inside runs against the
// same handle and is rolled back as a whole on any failure.
type Tx struct {
	*sql.Tx
	release func()
}

// BeginTransaction opens a transaction against the driver's handle. Commit
// or Rollback must be called exactly once to release the underlying handle,
// including on the in-memory-handle profile.
func (d *Driver) BeginTransaction(ctx context.Context) (*Tx, error) {
	handle, release, err := d.db(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	tx, err := handle.BeginTx(ctx, nil)
	if err != nil {
		release()
		return nil, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	return &Tx{Tx: tx, release: release}, nil
}

// CommitTransaction commits tx and releases the underlying handle.
func (tx *Tx) CommitTransaction() error {
	defer tx.release()
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommittingTransaction, err)
	}
	return nil
}

// RollbackTransaction rolls tx back and releases the underlying handle.
// Rolling back an already-committed or already-rolled-back transaction is
// reported by sql.ErrTxDone and is treated as a no-op here, matching the
// common defer tx.Rollback() pattern.
func (tx *Tx) RollbackTransaction() error {
	defer tx.release()
	if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
		return err
	}
	return nil
}

