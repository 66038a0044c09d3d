// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cli wires the policy table core into an operator-facing cobra
// command tree: init, status, check-permission, cadence and refresh.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rkhiriev/policytable/internal/pt"
)

var table *pt.Table

var rootCmd = &cobra.Command{
	Use:           "ptctl",
	Short:         "Inspect and exercise the policy table core",
	Long:          "ptctl initializes, inspects and queries the embedded policy table used by the decision core of an in-vehicle head unit.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute wires t as the collaborator backing every subcommand and runs the
// command tree against os.Args.
func Execute(t *pt.Table) error {
	table = t
	return rootCmd.Execute()
}

func cmdContext(cmd *cobra.Command) context.Context {
	return cmd.Context()
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(checkPermissionCmd)
	rootCmd.AddCommand(cadenceCmd)
	rootCmd.AddCommand(refreshCmd)
}
