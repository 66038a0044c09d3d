// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the policy
// table core. It aggregates all sub-configurations and is populated by
// merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Storage holds the on-disk location and platform behavior of the
	// policy table database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Lifecycle holds the open-retry and update-cadence timing settings
	// consumed by the Lifecycle Controller at Init.
	Lifecycle Lifecycle `envPrefix:"LIFECYCLE_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and its values fill only the
	// fields that environment variables and flags left at their zero value.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the configuration for the embedded policy table database.
type Storage struct {
	// AppStorageFolder is the directory under which the policy table
	// database file is created, e.g. "<app_storage_folder>/policy".
	// Env: STORAGE_APP_STORAGE_FOLDER
	AppStorageFolder string `env:"APP_STORAGE_FOLDER"`

	// DBFileName is the base name of the policy table database file
	// within AppStorageFolder. Defaults to "policy".
	// Env: STORAGE_DB_FILE_NAME
	DBFileName string `env:"DB_FILE_NAME"`

	// InMemoryHandle selects the platform escape hatch described in
	// spec §4.1/§9: when true, the storage driver re-opens a fresh
	// handle on every db() call under the fixed name "policy" and
	// ignores AppStorageFolder, matching the in-memory-like shared
	// handle profile of certain target platforms.
	// Env: STORAGE_IN_MEMORY_HANDLE
	InMemoryHandle bool `env:"IN_MEMORY_HANDLE"`
}

// Lifecycle holds the timing knobs consumed by the Lifecycle Controller's
// Init retry loop.
type Lifecycle struct {
	// AttemptsToOpenPolicyDB is the maximum number of times Init retries
	// opening the database file before giving up and returning FAIL.
	// Env: LIFECYCLE_ATTEMPTS_TO_OPEN_POLICY_DB
	AttemptsToOpenPolicyDB uint16 `env:"ATTEMPTS_TO_OPEN_POLICY_DB"`

	// OpenAttemptTimeoutMs is the sleep interval, in milliseconds,
	// between successive open attempts. Per spec §4.6/§9 this value is
	// multiplied by 1000 and slept as microseconds, which gives the same
	// pause (preserved verbatim from the source system; see DESIGN.md
	// Open Questions).
	// Env: LIFECYCLE_OPEN_ATTEMPT_TIMEOUT_MS
	OpenAttemptTimeoutMs uint16 `env:"OPEN_ATTEMPT_TIMEOUT_MS"`
}

// timeoutAsDuration renders Lifecycle.OpenAttemptTimeoutMs as a
// time.Duration. Nothing in the module calls it.
func (l Lifecycle) timeoutAsDuration() time.Duration {
	return time.Duration(l.OpenAttemptTimeoutMs) * time.Millisecond
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources. Sources are layered with
// [dario.cat/mergo], which only fills fields still at their zero value, so
// the first source to set a field wins:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
