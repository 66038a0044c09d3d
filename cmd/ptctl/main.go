// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// ptctl is an operator CLI for inspecting and exercising the policy table
// core from a shell: initialize the database, check its status, run a
// permission lookup, or inspect update cadence.
package main

import (
	"fmt"
	"os"

	"github.com/rkhiriev/policytable/internal/cli"
	"github.com/rkhiriev/policytable/internal/config"
	"github.com/rkhiriev/policytable/internal/logger"
	"github.com/rkhiriev/policytable/internal/pt"
)

func main() {
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	log := logger.NewLogger("ptctl")
	table := pt.New(cfg.PolicySettings(), log)

	if err := cli.Execute(table); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
