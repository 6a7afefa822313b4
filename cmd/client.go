// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 DisreputableCode

package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/term"
)

var apiClient = &http.Client{Timeout: 5 * time.Second}

// apiGet fetches a JSON resource from the running daemon.
func apiGet(path string, out any) error {
	resp, err := apiClient.Get(apiBase + path)
	if err != nil {
		return fmt.Errorf("daemon unreachable at %s: %w", apiBase, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: HTTP %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// apiPost posts a JSON body (nil for empty) to the running daemon.
func apiPost(path string, body any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	resp, err := apiClient.Post(apiBase+path, "application/json", &buf)
	if err != nil {
		return fmt.Errorf("daemon unreachable at %s: %w", apiBase, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: HTTP %d", path, resp.StatusCode)
	}
	return nil
}

// apiDelete issues a DELETE to the running daemon.
func apiDelete(path string) error {
	req, err := http.NewRequest(http.MethodDelete, apiBase+path, nil)
	if err != nil {
		return err
	}

	resp, err := apiClient.Do(req)
	if err != nil {
		return fmt.Errorf("daemon unreachable at %s: %w", apiBase, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: HTTP %d", path, resp.StatusCode)
	}
	return nil
}

// stdoutIsTerminal decides between table output and raw JSON.
func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// printJSON dumps a value as indented JSON for scripting consumers.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
