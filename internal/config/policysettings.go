// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// PolicySettings is the collaborator contract consumed by the Lifecycle
// Controller at Init. It is implemented by [StructuredConfig.PolicySettings]
// but is defined independently so callers (and tests) can supply a minimal
// stand-in without pulling in the full env/flag/json builder.
type PolicySettings interface {
	// AppStorageFolder is the directory under which the policy database
	// file lives on ordinary platforms. Ignored when InMemoryHandle is
	// true.
	AppStorageFolder() string

	// DBFileName is the base name of the policy database file.
	DBFileName() string

	// InMemoryHandle reports whether the storage driver should use the
	// in-memory-like shared handle platform profile described in spec
	// §4.1/§9: a fresh handle opened under the fixed name "policy" on
	// every db() call, ignoring AppStorageFolder.
	InMemoryHandle() bool

	// AttemptsToOpenPolicyDB is the maximum number of times Init retries
	// opening the database before returning FAIL.
	AttemptsToOpenPolicyDB() uint16

	// OpenAttemptTimeoutMs is the number of milliseconds slept between
	// open attempts.
	OpenAttemptTimeoutMs() uint16
}

// policySettings is the concrete [PolicySettings] backed by a
// [StructuredConfig] snapshot.
type policySettings struct {
	storage   Storage
	lifecycle Lifecycle
}

// PolicySettings returns the [PolicySettings] view of cfg.
func (cfg *StructuredConfig) PolicySettings() PolicySettings {
	return &policySettings{storage: cfg.Storage, lifecycle: cfg.Lifecycle}
}

func (p *policySettings) AppStorageFolder() string       { return p.storage.AppStorageFolder }
func (p *policySettings) DBFileName() string             { return p.storage.DBFileName }
func (p *policySettings) InMemoryHandle() bool           { return p.storage.InMemoryHandle }
func (p *policySettings) AttemptsToOpenPolicyDB() uint16 { return p.lifecycle.AttemptsToOpenPolicyDB }
func (p *policySettings) OpenAttemptTimeoutMs() uint16   { return p.lifecycle.OpenAttemptTimeoutMs }
