// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 DisreputableCode

// Package trader implements the trade protocol state machines and the
// session controller that pumps bytes between them and the link layer.
//
// The protocol is layered: an outer connection handshake negotiates the
// generation and the in-game menu, then the Trade Centre sub-protocol
// exchanges party blocks and runs the selection/confirmation handshake.
// Every transition is driven by exactly one received byte and yields
// exactly one byte to send.
package trader

// ConnState is the outer connection state.
type ConnState int

const (
	NotConnected ConnState = iota
	Connected
	TradeCentre
	Colosseum
)

func (s ConnState) String() string {
	switch s {
	case Connected:
		return "connected"
	case TradeCentre:
		return "trade_centre"
	case Colosseum:
		return "colosseum"
	}
	return "not_connected"
}

// TCState is the Trade Centre sub-protocol state.
type TCState int

const (
	TCInit TCState = iota
	TCReadyToGo
	TCSeenFirstWait
	TCSendingRandomData
	TCWaitingToSendData
	TCSendingData
	TCSendingPatchData
	TCTradePending
	TCTradeConfirmation
	TCDone
)

func (s TCState) String() string {
	switch s {
	case TCReadyToGo:
		return "ready_to_go"
	case TCSeenFirstWait:
		return "seen_first_wait"
	case TCSendingRandomData:
		return "sending_random"
	case TCWaitingToSendData:
		return "wait_to_send"
	case TCSendingData:
		return "sending_data"
	case TCSendingPatchData:
		return "sending_patch"
	case TCTradePending:
		return "trade_pending"
	case TCTradeConfirmation:
		return "trade_confirm"
	case TCDone:
		return "done"
	}
	return "init"
}
