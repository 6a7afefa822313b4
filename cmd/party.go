// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 DisreputableCode

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	partyGen      string
	partyOpponent bool
)

type partyEntry struct {
	Slot        int    `json:"slot"`
	Occupied    bool   `json:"occupied"`
	Species     uint8  `json:"species"`
	SpeciesName string `json:"speciesName"`
	Level       uint8  `json:"level"`
	Nickname    string `json:"nickname"`
}

var partyCmd = &cobra.Command{
	Use:   "party",
	Short: "List stored slots (or the opponent's party)",
	Long: `List the six stored slots for a generation, or with --opponent the
party summary captured from the last exchange.`,
	RunE: runParty,
}

var partyClearCmd = &cobra.Command{
	Use:   "clear <slot>",
	Short: "Clear a stored slot",
	Args:  cobra.ExactArgs(1),
	RunE:  runPartyClear,
}

func init() {
	rootCmd.AddCommand(partyCmd)
	partyCmd.AddCommand(partyClearCmd)

	partyCmd.PersistentFlags().StringVarP(&partyGen, "gen", "g", "gen1", "Generation (gen1 or gen2)")
	partyCmd.Flags().BoolVar(&partyOpponent, "opponent", false, "Show the opponent's party instead")
}

func runParty(cmd *cobra.Command, args []string) error {
	path := "/api/pokemon/" + partyGen
	if partyOpponent {
		path = "/api/opponent"
	}

	var entries []partyEntry
	if err := apiGet(path, &entries); err != nil {
		return err
	}

	if !stdoutIsTerminal() {
		return printJSON(entries)
	}

	if partyOpponent && len(entries) == 0 {
		fmt.Println("no opponent party captured yet")
		return nil
	}

	for _, e := range entries {
		if !partyOpponent && !e.Occupied {
			fmt.Printf("[%d] (empty)\n", e.Slot)
			continue
		}
		nick := e.Nickname
		if nick == "" {
			nick = "?"
		}
		fmt.Printf("[%d] %-12s lv%-3d (species 0x%02X) %q\n",
			e.Slot, e.SpeciesName, e.Level, e.Species, nick)
	}
	return nil
}

func runPartyClear(cmd *cobra.Command, args []string) error {
	slot, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid slot: %q", args[0])
	}

	if err := apiDelete(fmt.Sprintf("/api/pokemon/%s/%d", partyGen, slot)); err != nil {
		return err
	}

	fmt.Printf("cleared %s slot %d\n", partyGen, slot)
	return nil
}
