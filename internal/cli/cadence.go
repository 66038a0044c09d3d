// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	cadenceKilometers int
	cadenceDays       int
)

var cadenceCmd = &cobra.Command{
	Use:   "cadence",
	Short: "Report the remaining ignition cycles, distance and days before the next update exchange",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmdContext(cmd)

		ignitionCycles, err := table.IgnitionCyclesBeforeExchange(ctx)
		if err != nil {
			return fmt.Errorf("cadence: %w", err)
		}

		kilometers, err := table.KilometersBeforeExchange(ctx, cadenceKilometers)
		if err != nil {
			return fmt.Errorf("cadence: %w", err)
		}

		days, err := table.DaysBeforeExchange(ctx, cadenceDays)
		if err != nil {
			return fmt.Errorf("cadence: %w", err)
		}

		retries, err := table.SecondsBetweenRetries(ctx)
		if err != nil {
			return fmt.Errorf("cadence: %w", err)
		}

		fmt.Printf("ignition cycles remaining: %d\n", ignitionCycles)
		fmt.Printf("kilometers remaining: %d\n", kilometers)
		fmt.Printf("days remaining: %d\n", days)
		fmt.Printf("seconds between retries: %v\n", retries)
		fmt.Printf("request timeout seconds: %d\n", table.TimeoutResponse(ctx))
		return nil
	},
}

func init() {
	cadenceCmd.Flags().IntVar(&cadenceKilometers, "current-km", 0, "current odometer reading in kilometers")
	cadenceCmd.Flags().IntVar(&cadenceDays, "current-day", 0, "current day count since epoch")
}
