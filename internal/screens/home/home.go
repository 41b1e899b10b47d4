// Package home is the landing screen: deck overview plus the main menu.
package home

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mizuki/cardrill/internal/router"
	"github.com/mizuki/cardrill/internal/screen"
	"github.com/mizuki/cardrill/internal/screens/quiz"
	"github.com/mizuki/cardrill/internal/screens/stats"
	"github.com/mizuki/cardrill/internal/selector"
	"github.com/mizuki/cardrill/internal/session"
	"github.com/mizuki/cardrill/internal/store"
	"github.com/mizuki/cardrill/internal/ui/components"
	"github.com/mizuki/cardrill/internal/ui/layout"
	"github.com/mizuki/cardrill/internal/ui/theme"
)

// HomeScreen shows the deck summary and routes into drilling or stats.
type HomeScreen struct {
	state *session.State
	st    *store.Store
	menu  components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New builds the home screen. Drilling is disabled while the filtered
// pool is empty.
func New(state *session.State, st *store.Store) *HomeScreen {
	pool := selector.Pool(state.Cards, state.Settings.GradeFilter)
	items := []components.MenuItem{
		{
			Label:    "Start drilling",
			Disabled: len(pool) == 0,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: quiz.New(state, st)}
				}
			},
		},
		{
			Label: "Statistics",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: stats.New(state)}
				}
			},
		},
		{
			Label: "Quit",
			Action: func() tea.Cmd {
				return tea.Quit
			},
		},
	}
	return &HomeScreen{state: state, st: st, menu: components.NewMenu(items)}
}

func (s *HomeScreen) Init() tea.Cmd { return nil }

func (s *HomeScreen) Title() string { return "Home" }

func (s *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *HomeScreen) View(width, height int) string {
	pool := selector.Pool(s.state.Cards, s.state.Settings.GradeFilter)

	summary := fmt.Sprintf("%d cards in deck, %d in play", len(s.state.Cards), len(pool))
	attempts := fmt.Sprintf("%d attempts recorded", len(s.state.Ledger.History()))

	lines := []string{
		theme.Title.Render("Cardrill"),
		theme.Subtitle.Render("Know your cards. Know your prices."),
		"",
		theme.Body.Render(summary),
		theme.Subtitle.Render(attempts),
		"",
		s.menu.View(),
	}
	if len(pool) == 0 {
		lines = append(lines, theme.Hint.Render("deck is empty, run `cardrill import <file.csv>` first"))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
