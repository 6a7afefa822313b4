// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 DisreputableCode

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/DisreputableCode/poketool/pkg/trader"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Live trade dashboard",
	Long: `Full-screen dashboard over a running daemon: connection and Trade
Centre state, both parties, and the pending selection. Press c to confirm
and d to decline when auto-confirm is off; q quits.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// Messages
type tuiTickMsg time.Time
type tuiStatusMsg struct {
	status   trader.Status
	party    []partyEntry
	opponent []partyEntry
	err      error
}
type tuiActionMsg struct{ note string }

// TUI model
type tuiModel struct {
	status   trader.Status
	party    []partyEntry
	opponent []partyEntry
	fetchErr error
	note     string
	spin     spinner.Model
	width    int
	quitting bool
}

func newTUIModel() tuiModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return tuiModel{spin: s}
}

func tuiTick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return tuiTickMsg(t)
	})
}

func fetchStatus() tea.Msg {
	var msg tuiStatusMsg

	if msg.err = apiGet("/api/status", &msg.status); msg.err != nil {
		return msg
	}

	gen := msg.status.Gen
	if gen == "unknown" {
		gen = "gen1"
	}
	if err := apiGet("/api/pokemon/"+gen, &msg.party); err != nil {
		msg.err = err
		return msg
	}
	if msg.status.OpponentCount > 0 {
		if err := apiGet("/api/opponent", &msg.opponent); err != nil {
			msg.err = err
		}
	}
	return msg
}

func (m tuiModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, fetchStatus, tuiTick())
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "c":
			return m, func() tea.Msg {
				if err := apiPost("/api/trade/confirm", nil); err != nil {
					return tuiActionMsg{note: err.Error()}
				}
				return tuiActionMsg{note: "confirm armed"}
			}
		case "d":
			return m, func() tea.Msg {
				if err := apiPost("/api/trade/decline", nil); err != nil {
					return tuiActionMsg{note: err.Error()}
				}
				return tuiActionMsg{note: "decline armed"}
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tuiTickMsg:
		return m, tea.Batch(fetchStatus, tuiTick())

	case tuiStatusMsg:
		m.fetchErr = msg.err
		if msg.err == nil {
			m.status = msg.status
			m.party = msg.party
			m.opponent = msg.opponent
		}

	case tuiActionMsg:
		m.note = msg.note

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

var (
	tuiTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	tuiLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	tuiValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	tuiErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	tuiBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

func renderParty(title string, entries []partyEntry, opponent bool) string {
	var b strings.Builder
	b.WriteString(tuiLabelStyle.Render(title) + "\n")

	if len(entries) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, e := range entries {
		if !opponent && !e.Occupied {
			b.WriteString(fmt.Sprintf("  [%d] (empty)\n", e.Slot))
			continue
		}
		b.WriteString(fmt.Sprintf("  [%d] %-12s lv%-3d %s\n",
			e.Slot, e.SpeciesName, e.Level, e.Nickname))
	}
	return tuiBoxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m tuiModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(tuiTitleStyle.Render("PokeTool") + "\n\n")

	if m.fetchErr != nil {
		b.WriteString(tuiErrorStyle.Render("daemon unreachable") + "\n")
		b.WriteString(tuiLabelStyle.Render(m.fetchErr.Error()) + "\n")
		return b.String()
	}

	s := m.status
	line := func(label, value string) {
		b.WriteString(tuiLabelStyle.Render(fmt.Sprintf("%-14s", label)))
		b.WriteString(tuiValueStyle.Render(value) + "\n")
	}

	line("connection", s.Conn)
	line("trade centre", s.TC)
	line("generation", s.Gen)
	line("mode", s.Mode)
	line("offer slot", fmt.Sprintf("%d", s.OfferSlot))
	line("auto confirm", fmt.Sprintf("%v", s.AutoConfirm))

	if s.Conn == "not_connected" {
		b.WriteString("\n" + m.spin.View() + " waiting for a game boy\n")
	}
	if s.Selection >= 0 {
		b.WriteString("\n" + tuiValueStyle.Render(
			fmt.Sprintf("game boy selected party position %d", s.Selection)) + "\n")
		if !s.AutoConfirm {
			b.WriteString(tuiLabelStyle.Render("press c to confirm, d to decline") + "\n")
		}
	}

	b.WriteString("\n" + renderParty("our slots", m.party, false) + "\n")
	if len(m.opponent) > 0 {
		b.WriteString("\n" + renderParty("opponent party", m.opponent, true) + "\n")
	}

	if m.note != "" {
		b.WriteString("\n" + tuiLabelStyle.Render(m.note) + "\n")
	}
	b.WriteString("\n" + tuiLabelStyle.Render("q: quit") + "\n")

	return b.String()
}

func runTUI(cmd *cobra.Command, args []string) error {
	p := tea.NewProgram(newTUIModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
