// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 DisreputableCode

package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Link transport flags (serve)
	portName string
	baudRate int
	wsURL    string

	// Control-plane flags
	apiBase    string
	listenAddr string
	dataDir    string
)

var rootCmd = &cobra.Command{
	Use:   "poketool",
	Short: "Game Boy link-cable trade peer",
	Long: `PokeTool - a link-cable slave for Generation 1 and 2 Pokemon trades.

The serve command runs the trade daemon against a link-cable adapter and
exposes a local control plane. The other commands talk to a running
daemon over that control plane.

Link transports:
  Serial adapter: --port /dev/ttyACM0 [--baud 115200]
  LAN bridge:     --url ws://host/link

In clone mode the daemon offers stored slot 0 in all six party positions
and overwrites slot 0 with whatever the Game Boy trades away. In storage
mode every occupied slot is offered and the received mon is banked into
the slot that was traded.`,
	Version: "0.2.0",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiBase, "api", "http://127.0.0.1:8533", "Control-plane base URL")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
