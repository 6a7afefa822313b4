// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 DisreputableCode

package gblink

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
)

// BridgeLink exchanges bytes with a remote link-cable adapter over a
// websocket, one binary message per byte each way. Useful when the
// adapter hangs off another machine on the LAN.
type BridgeLink struct {
	conn         *websocket.Conn
	lastActivity time.Time
	pending      []byte
}

// OpenBridgeLink dials a ws:// or wss:// adapter bridge.
func OpenBridgeLink(wsURL string, skipTLSVerify bool) (*BridgeLink, error) {
	u, err := url.Parse(wsURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	switch u.Scheme {
	case "ws", "wss":
	default:
		return nil, fmt.Errorf("unsupported URL scheme: %s (use ws:// or wss://)", u.Scheme)
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}
	if u.Scheme == "wss" {
		dialer.TLSClientConfig = &tls.Config{InsecureSkipVerify: skipTLSVerify}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	conn, resp, err := dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("bridge connection failed (HTTP %d): %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("bridge connection failed: %w", err)
	}

	return &BridgeLink{conn: conn, lastActivity: time.Now()}, nil
}

func (b *BridgeLink) Close() error {
	return b.conn.Close()
}

func (b *BridgeLink) readByte(timeout time.Duration) (byte, error) {
	if err := b.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return 0, err
	}

	for {
		messageType, data, err := b.conn.ReadMessage()
		if err != nil {
			if e, ok := err.(interface{ Timeout() bool }); ok && e.Timeout() {
				return 0, ErrTimeout
			}
			return 0, err
		}
		if messageType != websocket.BinaryMessage || len(data) == 0 {
			continue
		}
		return data[0], nil
	}
}

func (b *BridgeLink) Transfer(send byte) (byte, error) {
	if err := b.conn.WriteMessage(websocket.BinaryMessage, []byte{send}); err != nil {
		return 0, fmt.Errorf("bridge write: %w", err)
	}

	if len(b.pending) > 0 {
		recv := b.pending[0]
		b.pending = b.pending[:0]
		b.lastActivity = time.Now()
		return recv, nil
	}

	recv, err := b.readByte(EdgeTimeout)
	if err != nil {
		return 0, err
	}

	b.lastActivity = time.Now()
	return recv, nil
}

func (b *BridgeLink) WaitForActivity(timeout time.Duration) bool {
	recv, err := b.readByte(timeout)
	if err != nil {
		return false
	}

	b.pending = append(b.pending[:0], recv)
	b.lastActivity = time.Now()
	return true
}

func (b *BridgeLink) IsIdle(idle time.Duration) bool {
	return time.Since(b.lastActivity) >= idle
}
