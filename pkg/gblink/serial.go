// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 DisreputableCode

package gblink

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

// SerialLink exchanges bytes through a USB link-cable adapter that does
// the bit-banging in firmware. The adapter protocol is one byte each way
// per exchange: we write the response byte into the adapter's tx latch,
// and the adapter emits the received byte once the Game Boy has clocked
// the exchange.
type SerialLink struct {
	port         serial.Port
	lastActivity time.Time
	pending      []byte // byte observed by WaitForActivity, owed to Transfer
	buf          [1]byte
}

// OpenSerialLink opens the adapter on portName.
func OpenSerialLink(portName string, baudRate int) (*SerialLink, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", portName, err)
	}

	return &SerialLink{port: port, lastActivity: time.Now()}, nil
}

func (s *SerialLink) Close() error {
	return s.port.Close()
}

// Transfer latches send and waits one edge-timeout for the exchanged
// byte. A byte buffered by WaitForActivity is handed back first; the
// response written by this call is then latched one exchange late.
func (s *SerialLink) Transfer(send byte) (byte, error) {
	s.buf[0] = send
	if _, err := s.port.Write(s.buf[:]); err != nil {
		return 0, fmt.Errorf("adapter write: %w", err)
	}

	if len(s.pending) > 0 {
		b := s.pending[0]
		s.pending = s.pending[:0]
		s.lastActivity = time.Now()
		return b, nil
	}

	if err := s.port.SetReadTimeout(EdgeTimeout); err != nil {
		return 0, fmt.Errorf("adapter timeout: %w", err)
	}

	n, err := s.port.Read(s.buf[:])
	if err != nil {
		return 0, fmt.Errorf("adapter read: %w", err)
	}
	if n == 0 {
		return 0, ErrTimeout
	}

	s.lastActivity = time.Now()
	return s.buf[0], nil
}

// WaitForActivity blocks for one adapter byte; the adapter only emits
// when the Game Boy clocks, so a byte arriving is clock activity.
func (s *SerialLink) WaitForActivity(timeout time.Duration) bool {
	if err := s.port.SetReadTimeout(timeout); err != nil {
		return false
	}

	n, err := s.port.Read(s.buf[:])
	if err != nil || n == 0 {
		return false
	}

	s.pending = append(s.pending[:0], s.buf[0])
	s.lastActivity = time.Now()
	return true
}

func (s *SerialLink) IsIdle(idle time.Duration) bool {
	return time.Since(s.lastActivity) >= idle
}
