package config

import (
	"flag"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-folder application storage folder (policy db lives at <folder>/policy)
//	-db-file-name base name of the policy database file
//	-in-memory-handle use the in-memory-like shared handle platform profile
//	-attempts number of retries Init performs when opening the database
//	-open-timeout-ms milliseconds slept between open attempts
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var appStorageFolder string
	var dbFileName string
	var inMemoryHandle bool
	var attempts uint
	var openTimeoutMs uint
	var jsonConfigPath string

	flag.StringVar(&appStorageFolder, "folder", "", "Application storage folder")
	flag.StringVar(&dbFileName, "db-file-name", "", "Policy database file name")
	flag.BoolVar(&inMemoryHandle, "in-memory-handle", false, "Use the in-memory-like shared handle platform profile")
	flag.UintVar(&attempts, "attempts", 0, "Number of retries Init performs when opening the database")
	flag.UintVar(&openTimeoutMs, "open-timeout-ms", 0, "Milliseconds slept between open attempts")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		Storage: Storage{
			AppStorageFolder: appStorageFolder,
			DBFileName:       dbFileName,
			InMemoryHandle:   inMemoryHandle,
		},
		Lifecycle: Lifecycle{
			AttemptsToOpenPolicyDB: uint16(attempts),
			OpenAttemptTimeoutMs:   uint16(openTimeoutMs),
		},
		JSONFilePath: jsonConfigPath,
	}
}
