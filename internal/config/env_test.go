// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"STORAGE_APP_STORAGE_FOLDER": "/var/lib/headunit",
		"STORAGE_DB_FILE_NAME":       "policy",
		"STORAGE_IN_MEMORY_HANDLE":   "true",

		"LIFECYCLE_ATTEMPTS_TO_OPEN_POLICY_DB": "5",
		"LIFECYCLE_OPEN_ATTEMPT_TIMEOUT_MS":    "250",
	}
	setEnvVars(t, envVars)

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
	assert.Equal(t, "/var/lib/headunit", cfg.Storage.AppStorageFolder)
	assert.Equal(t, "policy", cfg.Storage.DBFileName)
	assert.True(t, cfg.Storage.InMemoryHandle)
	assert.Equal(t, uint16(5), cfg.Lifecycle.AttemptsToOpenPolicyDB)
	assert.Equal(t, uint16(250), cfg.Lifecycle.OpenAttemptTimeoutMs)
}

func TestParseEnv_PartialFields(t *testing.T) {
	setEnvVars(t, map[string]string{
		"STORAGE_APP_STORAGE_FOLDER": "/opt/policy",
	})

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)
	require.NoError(t, err)

	assert.Equal(t, "/opt/policy", cfg.Storage.AppStorageFolder)
	assert.Equal(t, "", cfg.Storage.DBFileName)
	assert.Equal(t, uint16(0), cfg.Lifecycle.AttemptsToOpenPolicyDB)
}

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	clearEnvVars(t)
	for k, v := range vars {
		require.NoError(t, os.Setenv(k, v))
		t.Cleanup(func() { _ = os.Unsetenv(k) })
	}
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	keys := []string{
		"CONFIG",
		"STORAGE_APP_STORAGE_FOLDER",
		"STORAGE_DB_FILE_NAME",
		"STORAGE_IN_MEMORY_HANDLE",
		"LIFECYCLE_ATTEMPTS_TO_OPEN_POLICY_DB",
		"LIFECYCLE_OPEN_ATTEMPT_TIMEOUT_MS",
	}
	for _, k := range keys {
		require.NoError(t, os.Unsetenv(k))
	}
}
