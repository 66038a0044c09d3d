package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfig indicates invalid storage settings (for
	// example, an empty app storage folder on a non-in-memory platform).
	ErrInvalidStorageConfig = errors.New("invalid storage configuration")

	// ErrInvalidLifecycleConfig indicates invalid lifecycle timing settings
	// (for example, zero open attempts).
	ErrInvalidLifecycleConfig = errors.New("invalid lifecycle configuration")
)
