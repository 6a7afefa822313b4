// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 DisreputableCode

// Package webapi serves the local control plane: a small REST surface
// over the shared trade context and the stored slots, plus a websocket
// stream of state-change events.
package webapi

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/DisreputableCode/poketool/pkg/gbtrade"
	"github.com/DisreputableCode/poketool/pkg/storage"
	"github.com/DisreputableCode/poketool/pkg/trader"
)

// Server is the control-plane HTTP server.
type Server struct {
	ctx   *trader.Context
	store *storage.Store

	upgrader websocket.Upgrader

	mu   sync.Mutex
	subs map[chan trader.Status]struct{}
}

func NewServer(ctx *trader.Context, store *storage.Store) *Server {
	return &Server{
		ctx:   ctx,
		store: store,
		upgrader: websocket.Upgrader{
			// Local control plane on a trusted interface.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		subs: map[chan trader.Status]struct{}{},
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/opponent", s.handleOpponent)
	mux.HandleFunc("GET /api/pokemon/{gen}", s.handleGetParty)
	mux.HandleFunc("DELETE /api/pokemon/{gen}/{slot}", s.handleClearSlot)
	mux.HandleFunc("POST /api/mode", s.handleSetMode)
	mux.HandleFunc("POST /api/trade/offer", s.handleOffer)
	mux.HandleFunc("POST /api/trade/confirm", s.handleConfirm)
	mux.HandleFunc("POST /api/trade/decline", s.handleDecline)
	mux.HandleFunc("POST /api/trade/auto", s.handleAuto)
	mux.HandleFunc("GET /api/events", s.handleEvents)

	return mux
}

// Publish pushes the current status to every event subscriber. Wired as
// the session's change callback; slow subscribers drop updates rather
// than stall the protocol loop.
func (s *Server) Publish() {
	status := s.ctx.Snapshot()

	s.mu.Lock()
	defer s.mu.Unlock()

	for ch := range s.subs {
		select {
		case ch <- status:
		default:
		}
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[api] encode response: %v", err)
	}
}

func writeOK(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func parseGen(s string) (gbtrade.Generation, bool) {
	switch s {
	case "gen1", "1":
		return gbtrade.Gen1, true
	case "gen2", "2":
		return gbtrade.Gen2, true
	}
	return gbtrade.GenUnknown, false
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ctx.Snapshot())
}

type opponentEntry struct {
	Slot        int    `json:"slot"`
	Species     uint8  `json:"species"`
	SpeciesName string `json:"speciesName"`
	Level       uint8  `json:"level"`
	Nickname    string `json:"nickname"`
}

func (s *Server) handleOpponent(w http.ResponseWriter, r *http.Request) {
	opp := s.ctx.Opponent()

	entries := make([]opponentEntry, 0, len(opp.Mons))
	for i, m := range opp.Mons {
		entries = append(entries, opponentEntry{
			Slot:        i,
			Species:     m.Species,
			SpeciesName: gbtrade.SpeciesName(opp.Gen, m.Species),
			Level:       m.Level,
			Nickname:    m.Nickname,
		})
	}
	writeJSON(w, http.StatusOK, entries)
}

type partyEntry struct {
	Slot        int    `json:"slot"`
	Occupied    bool   `json:"occupied"`
	Species     uint8  `json:"species,omitempty"`
	SpeciesName string `json:"speciesName,omitempty"`
	Level       uint8  `json:"level,omitempty"`
	Nickname    string `json:"nickname,omitempty"`
}

func (s *Server) handleGetParty(w http.ResponseWriter, r *http.Request) {
	gen, ok := parseGen(r.PathValue("gen"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid generation")
		return
	}

	l := gbtrade.LayoutFor(gen)
	party := s.store.Party(gen)

	entries := make([]partyEntry, 0, len(party))
	for i, m := range party {
		e := partyEntry{Slot: i, Occupied: m.Occupied}
		if m.Occupied {
			e.Species = m.Species
			e.SpeciesName = gbtrade.SpeciesName(gen, m.Species)
			e.Level = m.Mon[l.LevelOff]
			e.Nickname = gbtrade.DecodeText(m.Nickname[:])
		}
		entries = append(entries, e)
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleClearSlot(w http.ResponseWriter, r *http.Request) {
	gen, ok := parseGen(r.PathValue("gen"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid generation")
		return
	}

	slot, err := strconv.Atoi(r.PathValue("slot"))
	if err != nil || slot < 0 || slot >= gbtrade.PartyLength {
		writeError(w, http.StatusBadRequest, "invalid slot")
		return
	}

	s.store.ClearSlot(gen, slot)
	writeOK(w)
}

func (s *Server) handleSetMode(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Mode string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	mode := gbtrade.ModeClone
	if body.Mode == "storage" {
		mode = gbtrade.ModeStorage
	}

	s.ctx.SetTradeMode(mode)
	s.store.SetMode(mode)
	writeOK(w)
}

func (s *Server) handleOffer(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Slot int `json:"slot"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if body.Slot < 0 || body.Slot >= gbtrade.PartyLength {
		writeError(w, http.StatusBadRequest, "invalid slot")
		return
	}

	s.ctx.SetOfferSlot(body.Slot)
	writeOK(w)
}

func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	s.ctx.RequestConfirm()
	writeOK(w)
}

func (s *Server) handleDecline(w http.ResponseWriter, r *http.Request) {
	s.ctx.RequestDecline()
	writeOK(w)
}

func (s *Server) handleAuto(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Auto bool `json:"auto"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	s.ctx.SetAutoConfirm(body.Auto)
	writeOK(w)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[api] events upgrade: %v", err)
		return
	}
	defer conn.Close()

	ch := make(chan trader.Status, 16)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.subs, ch)
		s.mu.Unlock()
	}()

	// Initial snapshot so the client renders immediately.
	if err := conn.WriteJSON(s.ctx.Snapshot()); err != nil {
		return
	}

	// Drain client frames to observe disconnects.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case status := <-ch:
			if err := conn.WriteJSON(status); err != nil {
				return
			}
		}
	}
}
