// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 DisreputableCode
//
// PokeTool - Game Boy link-cable trade peer
//
// Impersonates a link-cable slave for the Generation 1 and 2 Pokemon
// trade protocols: clone the mon a Game Boy offers, or bank received
// mons into persistent per-generation slots.

package main

import (
	"os"

	"github.com/DisreputableCode/poketool/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
