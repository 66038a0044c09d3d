package config

import (
	"flag"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		validate func(t *testing.T, cfg *StructuredConfig)
	}{
		{
			name: "all flags set",
			args: []string{
				"-folder", "/var/lib/headunit",
				"-db-file-name", "policy",
				"-in-memory-handle",
				"-attempts", "5",
				"-open-timeout-ms", "250",
				"-c", "/path/to/config.json",
			},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "/var/lib/headunit", cfg.Storage.AppStorageFolder)
				assert.Equal(t, "policy", cfg.Storage.DBFileName)
				assert.True(t, cfg.Storage.InMemoryHandle)
				assert.Equal(t, uint16(5), cfg.Lifecycle.AttemptsToOpenPolicyDB)
				assert.Equal(t, uint16(250), cfg.Lifecycle.OpenAttemptTimeoutMs)
				assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
			},
		},
		{
			name: "no flags",
			args: []string{},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Empty(t, cfg.Storage.AppStorageFolder)
				assert.False(t, cfg.Storage.InMemoryHandle)
				assert.Zero(t, cfg.Lifecycle.AttemptsToOpenPolicyDB)
				assert.Empty(t, cfg.JSONFilePath)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)

			oldArgs := os.Args
			os.Args = append([]string{"cmd"}, tt.args...)
			defer func() { os.Args = oldArgs }()

			cfg := ParseFlags()
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}
