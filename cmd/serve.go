// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 DisreputableCode

package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/DisreputableCode/poketool/pkg/gblink"
	"github.com/DisreputableCode/poketool/pkg/led"
	"github.com/DisreputableCode/poketool/pkg/storage"
	"github.com/DisreputableCode/poketool/pkg/trader"
	"github.com/DisreputableCode/poketool/pkg/webapi"
)

var ledDebug bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the trade daemon",
	Long: `Run the protocol loop against a link-cable adapter and serve the
control plane.

The daemon is the link slave: it waits for a Game Boy to probe, follows
the in-game menus, exchanges party blocks in the Trade Centre, and
commits completed trades to the slot store once the clock goes idle.

Requires either --port (serial adapter) or --url (websocket bridge).`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&portName, "port", "p", "", "Serial adapter device")
	serveCmd.Flags().IntVarP(&baudRate, "baud", "b", 115200, "Baud rate (serial only)")
	serveCmd.Flags().StringVarP(&wsURL, "url", "u", "", "Adapter bridge URL (ws:// or wss://)")
	serveCmd.Flags().StringVarP(&listenAddr, "listen", "l", "127.0.0.1:8533", "Control-plane listen address")
	serveCmd.Flags().StringVarP(&dataDir, "data-dir", "d", defaultDataDir(), "Slot storage directory")
	serveCmd.Flags().BoolVar(&ledDebug, "led-debug", false, "Log indicator level changes")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".poketool"
	}
	return home + "/.poketool"
}

func openLink() (gblink.Exchanger, func() error, string, error) {
	if wsURL != "" {
		link, err := gblink.OpenBridgeLink(wsURL, false)
		if err != nil {
			return nil, nil, "", err
		}
		return link, link.Close, fmt.Sprintf("bridge: %s", wsURL), nil
	}

	if portName != "" {
		link, err := gblink.OpenSerialLink(portName, baudRate)
		if err != nil {
			return nil, nil, "", err
		}
		return link, link.Close, fmt.Sprintf("serial: %s @ %d baud", portName, baudRate), nil
	}

	return nil, nil, "", fmt.Errorf("either --port or --url must be specified")
}

func runServe(cmd *cobra.Command, args []string) error {
	link, closeLink, linkInfo, err := openLink()
	if err != nil {
		return err
	}
	defer closeLink()

	store, err := storage.Open(dataDir)
	if err != nil {
		return err
	}

	var out led.Output
	if ledDebug {
		out = func(on bool) { log.Printf("[led] %v", on) }
	}
	driver := led.NewDriver(out)

	tctx := trader.NewContext()
	tctx.SetTradeMode(store.Mode())

	session := trader.NewSession(tctx, store, driver.SetPattern)
	controller := trader.NewController(session, link)

	api := webapi.NewServer(tctx, store)
	session.SetOnChange(api.Publish)

	httpServer := &http.Server{Addr: listenAddr, Handler: api.Handler()}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interruptChan := make(chan os.Signal, 1)
	signal.Notify(interruptChan, syscall.SIGTERM, syscall.SIGINT)

	go driver.Run(ctx)

	go func() {
		log.Printf("[api] control plane on http://%s", listenAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("[api] %v", err)
		}
	}()

	errChan := make(chan error, 1)
	go func() {
		errChan <- controller.Run(ctx)
	}()

	log.Printf("[link] %s", linkInfo)
	log.Printf("ready: waiting for a game boy (mode=%s)", store.Mode())

	select {
	case <-interruptChan:
		log.Println("shutting down ...")
	case err = <-errChan:
		if err != nil && err != context.Canceled {
			log.Printf("[link] session loop: %v", err)
		}
	}

	cancel()
	_ = httpServer.Close()

	if err == context.Canceled {
		return nil
	}
	return err
}
