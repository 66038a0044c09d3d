// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package pt

import (
	"path/filepath"

	"github.com/rkhiriev/policytable/internal/config"
	"github.com/rkhiriev/policytable/internal/logger"
	"github.com/rkhiriev/policytable/internal/store"
)

// fixedInMemoryHandleFileName is the fixed database file name used on the
// in-memory-handle platform profile, where the configured storage folder is
// ignored entirely.
const fixedInMemoryHandleFileName = "policy"

// Table is the policy table core: the wiring point combining the Storage
// Driver, the operator-facing config collaborator and a scoped logger. All
// Persistence Engine, Decision Engine and Lifecycle Controller operations
// are methods on Table.
type Table struct {
	driver   *store.Driver
	settings config.PolicySettings
	log      *logger.Logger
}

// New constructs a Table bound to settings. Call Init before any other
// method.
func New(settings config.PolicySettings, log *logger.Logger) *Table {
	return &Table{
		driver:   store.NewDriver(log.GetChildLogger(), settings.InMemoryHandle()),
		settings: settings,
		log:      log.GetChildLogger(),
	}
}

// dbPath resolves the file path the driver opens against, honoring the
// in-memory-handle profile's fixed-name/ignore-folder rule.
func (t *Table) dbPath() string {
	if t.settings.InMemoryHandle() {
		return fixedInMemoryHandleFileName
	}
	name := t.settings.DBFileName()
	if name == "" {
		name = fixedInMemoryHandleFileName
	}
	return filepath.Join(t.settings.AppStorageFolder(), name)
}
