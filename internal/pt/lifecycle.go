// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package pt

import (
	"context"
	"fmt"
	"time"

	"github.com/rkhiriev/policytable/internal/store"
)

// InitResult is the three-way outcome of Init, mirroring the platform's
// FAIL/SUCCESS/EXISTS lifecycle result.
type InitResult int

const (
	// InitFailed means every open attempt failed, the handle is not
	// read-write, or the file failed its integrity check.
	InitFailed InitResult = iota
	// InitSucceeded means a new file was created and seeded, or an
	// existing file completed its first-run transition.
	InitSucceeded
	// InitExists means the file was already initialized on a prior run.
	InitExists
)

// Init runs the open/verify/bootstrap sequence. It tries to open the
// database file, retrying up to settings.AttemptsToOpenPolicyDB times with
// a pause of settings.OpenAttemptTimeoutMs between attempts; verifies
// read/write capability and (for a non-empty file) integrity; and either
// bootstraps a fresh schema or completes the one-time first-run transition.
func (t *Table) Init(ctx context.Context) (InitResult, error) {
	path := t.dbPath()
	// The sleep unit-of-scaling (milliseconds * 1000, slept as
	// microseconds) is preserved verbatim from the source this core was
	// derived from; the resulting pause equals the configured number of
	// milliseconds. See the repository's open question log.
	timeout := time.Duration(t.settings.OpenAttemptTimeoutMs()) * 1000 * time.Microsecond

	if ok := t.driver.Open(ctx, path, "policy", t.settings.AttemptsToOpenPolicyDB(), timeout); !ok {
		return InitFailed, ErrOpenFailed
	}

	if !t.driver.IsReadWrite() {
		return InitFailed, ErrNotReadWrite
	}

	pageCount, err := t.pageCount(ctx)
	if err != nil {
		return InitFailed, err
	}

	if pageCount == 0 {
		if err = t.createAndSeed(ctx); err != nil {
			return InitFailed, err
		}
		return InitSucceeded, nil
	}

	ok, err := t.integrityOK(ctx)
	if err != nil {
		return InitFailed, err
	}
	if !ok {
		return InitFailed, ErrIntegrityCheckFailed
	}

	firstRun, err := t.isFirstRun(ctx)
	if err != nil {
		return InitFailed, err
	}
	if firstRun {
		if _, err = t.driver.Exec(ctx, "UPDATE lifecycle_flag SET is_first_run = 0 WHERE id = 0"); err != nil {
			return InitFailed, err
		}
		return InitSucceeded, nil
	}

	return InitExists, nil
}

func (t *Table) pageCount(ctx context.Context) (int64, error) {
	row, release, err := t.driver.QueryRow(ctx, "PRAGMA page_count;")
	if err != nil {
		return 0, err
	}
	defer release()

	var count int64
	if err = row.Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %w", store.ErrScanningRow, err)
	}
	return count, nil
}

func (t *Table) integrityOK(ctx context.Context) (bool, error) {
	rows, err := t.driver.Query(ctx, "PRAGMA integrity_check;")
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var result string
		if err = rows.Scan(&result); err != nil {
			return false, fmt.Errorf("%w: %w", store.ErrScanningRows, err)
		}
		if result != "ok" {
			t.log.Warn().Str("func", "integrityOK").Str("result", result).Msg("integrity check failed")
			return false, nil
		}
	}
	return true, nil
}

func (t *Table) isFirstRun(ctx context.Context) (bool, error) {
	row, release, err := t.driver.QueryRow(ctx, "SELECT is_first_run FROM lifecycle_flag WHERE id = 0")
	if err != nil {
		return false, err
	}
	defer release()

	var isFirstRun bool
	if err = row.Scan(&isFirstRun); err != nil {
		return false, fmt.Errorf("%w: %w", store.ErrScanningRow, err)
	}
	return isFirstRun, nil
}

func (t *Table) createAndSeed(ctx context.Context) error {
	if _, err := t.driver.Exec(ctx, store.CreateSchemaSQL()); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := t.driver.Exec(ctx, store.InsertInitDataSQL()); err != nil {
		return fmt.Errorf("seed init data: %w", err)
	}
	return nil
}

// Drop executes kDropSchema, removing every table.
func (t *Table) Drop(ctx context.Context) error {
	_, err := t.driver.Exec(ctx, store.DropSchemaSQL())
	return err
}

// Clear deletes every row and re-seeds the empty-but-valid policy table,
// without dropping the schema itself.
func (t *Table) Clear(ctx context.Context) error {
	if _, err := t.driver.Exec(ctx, store.DeleteDataSQL()); err != nil {
		return fmt.Errorf("clear data: %w", err)
	}
	if _, err := t.driver.Exec(ctx, store.InsertInitDataSQL()); err != nil {
		return fmt.Errorf("reseed init data: %w", err)
	}
	return nil
}

// RefreshDB drops, recreates and reseeds the schema: drop + create + seed.
func (t *Table) RefreshDB(ctx context.Context) error {
	if err := t.Drop(ctx); err != nil {
		return err
	}
	return t.createAndSeed(ctx)
}

// WriteDb snapshots the current database file to dst via the Storage
// Driver's Backup capability.
func (t *Table) WriteDb(ctx context.Context, dst string) bool {
	return t.driver.Backup(ctx, dst)
}

// RemoveDB deletes the policy database file from disk and releases the
// driver's handle.
func (t *Table) RemoveDB() bool {
	path := t.dbPath()
	_ = t.driver.Close()
	return t.driver.DeleteFile(path)
}

// IsDBVersionActual compares the stored db_version against the current
// schema's version identity.
func (t *Table) IsDBVersionActual(ctx context.Context) (bool, error) {
	meta, err := t.GatherModuleMeta(ctx)
	if err != nil {
		return false, err
	}
	m, ok := meta.Value()
	if !ok {
		return false, nil
	}
	return m.DBVersion == store.GetDBVersion(), nil
}

// UpdateDBVersion writes the current schema's version identity into
// module_meta.db_version.
func (t *Table) UpdateDBVersion(ctx context.Context) error {
	_, err := t.driver.Exec(ctx, "UPDATE module_meta SET db_version = ? WHERE id = 0", store.GetDBVersion())
	return err
}
