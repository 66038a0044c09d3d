// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package pt

import "errors"

// Sentinel errors returned by the lifecycle, persistence and decision
// operations. Callers should use [errors.Is] to match against these values.
var (
	// ErrOpenFailed is returned by Init when every open attempt allowed by
	// PolicySettings.AttemptsToOpenPolicyDB has been exhausted.
	ErrOpenFailed = errors.New("failed to open policy database after all attempts")

	// ErrNotReadWrite is returned by Init when the opened handle does not
	// support both reads and writes.
	ErrNotReadWrite = errors.New("policy database handle is not read-write")

	// ErrIntegrityCheckFailed is returned by Init when kCheckDBIntegrity
	// reports anything other than "ok".
	ErrIntegrityCheckFailed = errors.New("policy database failed integrity check")

	// ErrSaveAborted is returned by Save when a sub-save fails partway
	// through the transaction; the caller observes no partial state.
	ErrSaveAborted = errors.New("save aborted: transaction rolled back")

	// ErrUnknownApplication names an app_id that has no row in the
	// application table. No operation in this package returns it
	// (GetApplicationStatus reports such an app_id as Represented=false).
	ErrUnknownApplication = errors.New("unknown application")
)
