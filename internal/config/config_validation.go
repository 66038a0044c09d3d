// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants required before it is handed to the Lifecycle Controller.
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise.
func (cfg *StructuredConfig) validate() error {
	if !cfg.Storage.InMemoryHandle && cfg.Storage.AppStorageFolder == "" {
		return ErrInvalidStorageConfig
	}

	if cfg.Lifecycle.AttemptsToOpenPolicyDB == 0 {
		return ErrInvalidLifecycleConfig
	}

	return nil
}
