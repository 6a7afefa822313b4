// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 DisreputableCode

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DisreputableCode/poketool/pkg/trader"
)

var modeCmd = &cobra.Command{
	Use:   "mode [clone|storage]",
	Short: "Show or set the trade mode",
	Long: `Without an argument, print the current trade mode. With one,
switch the daemon between clone mode (replicate slot 0, overwrite it on
trade) and storage mode (offer every occupied slot, bank what arrives).
The mode is persisted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMode,
}

func init() {
	rootCmd.AddCommand(modeCmd)
}

func runMode(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		var status trader.Status
		if err := apiGet("/api/status", &status); err != nil {
			return err
		}
		fmt.Println(status.Mode)
		return nil
	}

	mode := args[0]
	if mode != "clone" && mode != "storage" {
		return fmt.Errorf("invalid mode %q (want clone or storage)", mode)
	}

	if err := apiPost("/api/mode", map[string]string{"mode": mode}); err != nil {
		return err
	}

	fmt.Printf("trade mode set to %s\n", mode)
	return nil
}
