package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestBuild_EmptyBuilder_FailsValidation(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	assert.Nil(t, cfg)
	require.ErrorIs(t, err, ErrInvalidStorageConfig)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBuild_EarliestSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Storage: Storage{AppStorageFolder: "/from/env"}},
		&StructuredConfig{Storage: Storage{AppStorageFolder: "/from/flags", DBFileName: "policy"}},
		&StructuredConfig{Lifecycle: Lifecycle{AttemptsToOpenPolicyDB: 3}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.Storage.AppStorageFolder)
	assert.Equal(t, "policy", cfg.Storage.DBFileName)
	assert.Equal(t, uint16(3), cfg.Lifecycle.AttemptsToOpenPolicyDB)
}

// ── withDefaults ──────────────────────────────────────────────────────────────

func TestWithDefaults_FillsGaps(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{Storage: Storage{InMemoryHandle: true}})
	b.withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, defaultDBFileName, cfg.Storage.DBFileName)
	assert.Equal(t, uint16(defaultAttemptsToOpenPolicyDB), cfg.Lifecycle.AttemptsToOpenPolicyDB)
	assert.Equal(t, uint16(defaultOpenAttemptTimeoutMs), cfg.Lifecycle.OpenAttemptTimeoutMs)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_NoPathSpecified_NoOp(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{Storage: Storage{InMemoryHandle: true}})
	b.withJSON()

	assert.Len(t, b.configs, 1)
}

func TestWithJSON_MissingFile_SetsError(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/does/not/exist.json"})
	b.withJSON()

	require.Error(t, b.err)
}
