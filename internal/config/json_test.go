package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSONConfig(t *testing.T, cfg StructuredJSONConfig) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestParseJSON_AllFields(t *testing.T) {
	var jsonCfg StructuredJSONConfig
	jsonCfg.Storage.AppStorageFolder = "/var/lib/headunit"
	jsonCfg.Storage.DBFileName = "policy"
	jsonCfg.Storage.InMemoryHandle = true
	jsonCfg.Lifecycle.AttemptsToOpenPolicyDB = 5
	jsonCfg.Lifecycle.OpenAttemptTimeoutMs = 250

	path := writeJSONConfig(t, jsonCfg)

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/headunit", cfg.Storage.AppStorageFolder)
	assert.Equal(t, "policy", cfg.Storage.DBFileName)
	assert.True(t, cfg.Storage.InMemoryHandle)
	assert.Equal(t, uint16(5), cfg.Lifecycle.AttemptsToOpenPolicyDB)
	assert.Equal(t, uint16(250), cfg.Lifecycle.OpenAttemptTimeoutMs)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := parseJSON(path)
	require.Error(t, err)
}
