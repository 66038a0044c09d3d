// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rkhiriev/policytable/internal/policy"
)

var (
	checkPermissionAppID    string
	checkPermissionHmiLevel string
	checkPermissionRpc      string
)

var checkPermissionCmd = &cobra.Command{
	Use:   "check-permission",
	Short: "Check whether an app may invoke an rpc at a given hmi level",
	RunE: func(cmd *cobra.Command, args []string) error {
		hmiLevel, ok := policy.HmiLevelFromJsonString(checkPermissionHmiLevel)
		if !ok {
			return fmt.Errorf("check-permission: unrecognized hmi level %q", checkPermissionHmiLevel)
		}

		verdict, err := table.CheckPermissions(cmdContext(cmd), checkPermissionAppID, hmiLevel, checkPermissionRpc)
		if err != nil {
			return fmt.Errorf("check-permission: %w", err)
		}

		fmt.Printf("permitted: %v\n", verdict.HmiLevelPermitted)
		if len(verdict.AllowedParams) > 0 {
			fmt.Print("allowed params:")
			for _, p := range verdict.AllowedParams {
				fmt.Printf(" %s", policy.EnumToJsonString(p))
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	checkPermissionCmd.Flags().StringVar(&checkPermissionAppID, "app-id", "", "application id")
	checkPermissionCmd.Flags().StringVar(&checkPermissionHmiLevel, "hmi-level", "FULL", "hmi level (FULL, LIMITED, BACKGROUND, NONE)")
	checkPermissionCmd.Flags().StringVar(&checkPermissionRpc, "rpc", "", "rpc name")
	checkPermissionCmd.MarkFlagRequired("app-id")
	checkPermissionCmd.MarkFlagRequired("rpc")
}
