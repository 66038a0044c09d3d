// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rkhiriev/policytable/internal/pt"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Open (creating and seeding if necessary) the policy database",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := table.Init(cmdContext(cmd))
		if err != nil {
			return fmt.Errorf("init: %w", err)
		}

		switch result {
		case pt.InitSucceeded:
			fmt.Println("initialized")
		case pt.InitExists:
			fmt.Println("already initialized")
		default:
			fmt.Println("failed")
		}
		return nil
	},
}
