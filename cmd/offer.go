// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 DisreputableCode

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var offerCmd = &cobra.Command{
	Use:   "offer <slot>",
	Short: "Choose which party position to offer",
	Long: `Select which of our party positions is offered when the Game Boy
picks a mon. Takes effect at the next selection exchange.`,
	Args: cobra.ExactArgs(1),
	RunE: runOffer,
}

var confirmCmd = &cobra.Command{
	Use:   "confirm",
	Short: "Confirm the pending trade (one-shot)",
	Long: `Arm a one-shot confirmation, consumed at the next confirmation
byte. Only needed when auto-confirm is off.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := apiPost("/api/trade/confirm", nil); err != nil {
			return err
		}
		fmt.Println("confirm armed")
		return nil
	},
}

var declineCmd = &cobra.Command{
	Use:   "decline",
	Short: "Decline the pending trade (one-shot)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := apiPost("/api/trade/decline", nil); err != nil {
			return err
		}
		fmt.Println("decline armed")
		return nil
	},
}

var autoCmd = &cobra.Command{
	Use:   "auto <on|off>",
	Short: "Toggle automatic trade confirmation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var on bool
		switch args[0] {
		case "on", "true":
			on = true
		case "off", "false":
		default:
			return fmt.Errorf("invalid value %q (want on or off)", args[0])
		}

		if err := apiPost("/api/trade/auto", map[string]bool{"auto": on}); err != nil {
			return err
		}
		fmt.Printf("auto-confirm %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(offerCmd)
	rootCmd.AddCommand(confirmCmd)
	rootCmd.AddCommand(declineCmd)
	rootCmd.AddCommand(autoCmd)
}

func runOffer(cmd *cobra.Command, args []string) error {
	slot, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid slot: %q", args[0])
	}

	if err := apiPost("/api/trade/offer", map[string]int{"slot": slot}); err != nil {
		return err
	}

	fmt.Printf("offering slot %d\n", slot)
	return nil
}
