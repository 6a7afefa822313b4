// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 DisreputableCode

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DisreputableCode/poketool/pkg/trader"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the daemon's connection and trade state",
	Long: `Query a running daemon's status: connection state, Trade Centre
state, negotiated generation, the Game Boy's current selection, and the
slot we are offering.

Prints a table on a terminal, JSON otherwise.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	var status trader.Status
	if err := apiGet("/api/status", &status); err != nil {
		return err
	}

	if !stdoutIsTerminal() {
		return printJSON(status)
	}

	fmt.Printf("mode:         %s\n", status.Mode)
	fmt.Printf("connection:   %s\n", status.Conn)
	fmt.Printf("trade centre: %s\n", status.TC)
	fmt.Printf("generation:   %s\n", status.Gen)
	fmt.Printf("offer slot:   %d\n", status.OfferSlot)
	fmt.Printf("auto confirm: %v\n", status.AutoConfirm)
	if status.Selection >= 0 {
		fmt.Printf("gb selection: %d\n", status.Selection)
	}
	if status.OpponentCount > 0 {
		fmt.Printf("opponent:     %d mons (see 'poketool party --opponent')\n", status.OpponentCount)
	}
	return nil
}
