// Package stats renders the per-user performance summary screen.
package stats

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mizuki/cardrill/internal/ledger"
	"github.com/mizuki/cardrill/internal/screen"
	"github.com/mizuki/cardrill/internal/session"
	"github.com/mizuki/cardrill/internal/stats"
	"github.com/mizuki/cardrill/internal/ui/layout"
	"github.com/mizuki/cardrill/internal/ui/theme"
)

const recentRows = 10

// StatsScreen shows the overall rate and the most recent attempts.
type StatsScreen struct {
	state *session.State
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

func New(state *session.State) *StatsScreen {
	return &StatsScreen{state: state}
}

func (s *StatsScreen) Init() tea.Cmd { return nil }

func (s *StatsScreen) Title() string { return "Statistics" }

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	sum := stats.Summarize(s.state.Ledger.History(), s.state.User)

	lines := []string{
		theme.Title.Render("Statistics for " + s.state.User),
		"",
	}
	if sum.Total == 0 {
		lines = append(lines, theme.Hint.Render("No attempts yet. Start drilling!"))
	} else {
		lines = append(lines,
			theme.Body.Render(fmt.Sprintf("%d / %d correct (%d%%)", sum.Correct, sum.Total, sum.RatePercent)),
			"",
			theme.Subtitle.Render("Recent attempts"),
		)
		for _, e := range sum.Recent(recentRows) {
			lines = append(lines, attemptRow(e))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func attemptRow(e ledger.ResultEntry) string {
	mark := theme.Incorrect.Render("✗")
	if e.Correct {
		mark = theme.Correct.Render("✓")
	}
	when := e.Timestamp.Format("01-02 15:04")
	return fmt.Sprintf("%s  %s  %s",
		theme.Hint.Render(when),
		mark,
		theme.Body.Render(fmt.Sprintf("%s @ %.0f円", e.SnapshotName, e.SnapshotPrice)),
	)
}
