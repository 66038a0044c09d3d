// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report schema version and update-required status",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmdContext(cmd)

		actual, err := table.IsDBVersionActual(ctx)
		if err != nil {
			return fmt.Errorf("status: %w", err)
		}

		updateRequired, err := table.UpdateRequired(ctx)
		if err != nil {
			return fmt.Errorf("status: %w", err)
		}

		fmt.Printf("schema version current: %v\n", actual)
		fmt.Printf("update required: %v\n", updateRequired)
		return nil
	},
}
