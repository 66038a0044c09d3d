// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Drop and re-seed the policy database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := table.RefreshDB(cmdContext(cmd)); err != nil {
			return fmt.Errorf("refresh: %w", err)
		}
		fmt.Println("refreshed")
		return nil
	},
}
