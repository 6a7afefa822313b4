// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 DisreputableCode

package cmd

import (
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/DisreputableCode/poketool/pkg/trader"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream state changes from the daemon",
	Long: `Subscribe to the daemon's event stream and print one line per
state change. Useful while walking a Game Boy through the menus.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

// eventsURL converts the HTTP API base into the websocket endpoint.
func eventsURL() (string, error) {
	u, err := url.Parse(apiBase)
	if err != nil {
		return "", fmt.Errorf("invalid --api URL: %w", err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/api/events"
	return u.String(), nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	wsEndpoint, err := eventsURL()
	if err != nil {
		return err
	}

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.Dial(wsEndpoint, nil)
	if err != nil {
		return fmt.Errorf("daemon unreachable at %s: %w", wsEndpoint, err)
	}
	defer conn.Close()

	interruptChan := make(chan os.Signal, 1)
	signal.Notify(interruptChan, os.Interrupt)
	go func() {
		<-interruptChan
		conn.Close()
	}()

	fmt.Printf("watching %s (Ctrl+C to exit)\n", wsEndpoint)

	var last trader.Status
	for {
		var status trader.Status
		if err := conn.ReadJSON(&status); err != nil {
			return nil
		}
		if status == last {
			continue
		}
		last = status

		line := fmt.Sprintf("[%s] %s/%s gen=%s mode=%s offer=%d",
			time.Now().Format("15:04:05.000"),
			status.Conn, status.TC, status.Gen, status.Mode, status.OfferSlot)
		if status.Selection >= 0 {
			line += fmt.Sprintf(" selection=%d", status.Selection)
		}
		fmt.Println(line)
	}
}
