package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags, since the
// `env` tags used by caarlos0/env are not reused for the JSON file source.
type StructuredJSONConfig struct {
	Storage struct {
		AppStorageFolder string `json:"app_storage_folder"`
		DBFileName       string `json:"db_file_name"`
		InMemoryHandle   bool   `json:"in_memory_handle"`
	} `json:"storage,omitempty"`

	Lifecycle struct {
		AttemptsToOpenPolicyDB uint16 `json:"attempts_to_open_policy_db"`
		OpenAttemptTimeoutMs   uint16 `json:"open_attempt_timeout_ms"`
	} `json:"lifecycle,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Storage: Storage{
			AppStorageFolder: jsonCfg.Storage.AppStorageFolder,
			DBFileName:       jsonCfg.Storage.DBFileName,
			InMemoryHandle:   jsonCfg.Storage.InMemoryHandle,
		},
		Lifecycle: Lifecycle{
			AttemptsToOpenPolicyDB: jsonCfg.Lifecycle.AttemptsToOpenPolicyDB,
			OpenAttemptTimeoutMs:   jsonCfg.Lifecycle.OpenAttemptTimeoutMs,
		},
	}

	return cfg, nil
}
