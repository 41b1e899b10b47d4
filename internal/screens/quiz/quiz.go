// Package quiz implements the drilling screen: one card at a time, a
// name field and a price field, feedback after every submit.
package quiz

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/mizuki/cardrill/internal/grading"
	"github.com/mizuki/cardrill/internal/screen"
	"github.com/mizuki/cardrill/internal/selector"
	"github.com/mizuki/cardrill/internal/session"
	"github.com/mizuki/cardrill/internal/store"
	"github.com/mizuki/cardrill/internal/ui/components"
	"github.com/mizuki/cardrill/internal/ui/layout"
)

// QuizScreen drives one Advance/Submit cycle per card.
type QuizScreen struct {
	state *session.State
	st    *store.Store

	nameInput  components.TextInput
	priceInput components.TextInput
	focusPrice bool

	showingFeedback bool
	outcome         *session.Outcome
	inputNotice     string // re-prompt notice for incomplete answers
	poolErr         string // empty-pool message, screen is inert
	saveWarn        string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates the quiz screen over the shared session state.
func New(state *session.State, st *store.Store) *QuizScreen {
	return &QuizScreen{
		state:      state,
		st:         st,
		nameInput:  components.NewTextInput("Name ", "card name...", 80),
		priceInput: components.NewTextInput("Price", "e.g. 58,000円", 20),
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return tea.Batch(s.drawCard(), s.nameInput.Focus())
}

func (s *QuizScreen) Title() string {
	return "Drill"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.poolErr != "" {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	if s.showingFeedback {
		return []layout.KeyHint{{Key: "any key", Description: "Next card"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Tab", Description: "Switch field"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case cardDrawnMsg:
		return s.handleCardDrawn(msg)
	case persistedMsg:
		if msg.Err != nil {
			s.saveWarn = "save failed: " + msg.Err.Error()
		}
		return s, nil
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s.forwardToInput(msg)
}

func (s *QuizScreen) handleCardDrawn(msg cardDrawnMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		if errors.Is(msg.Err, selector.ErrNoEligibleCards) {
			s.poolErr = "No cards match the current filter. Import cards or relax the grade filter."
		} else {
			s.poolErr = msg.Err.Error()
		}
		return s, nil
	}
	s.showingFeedback = false
	s.outcome = nil
	s.inputNotice = ""
	s.nameInput.Reset()
	s.priceInput.Reset()
	s.focusPrice = false
	s.priceInput.Blur()
	return s, s.nameInput.Focus()
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.poolErr != "" {
		return s, nil // only Esc (handled by the app) leaves this state
	}
	if s.showingFeedback {
		return s, s.drawCard()
	}

	switch msg.String() {
	case "enter":
		if !s.focusPrice {
			return s, s.setFocus(true)
		}
		return s.submit()
	case "tab", "down":
		return s, s.setFocus(true)
	case "shift+tab", "up":
		return s, s.setFocus(false)
	}
	return s.forwardToInput(msg)
}

// submit grades the typed answer. An incomplete answer re-prompts and,
// per the ledger atomicity rule, changes nothing.
func (s *QuizScreen) submit() (screen.Screen, tea.Cmd) {
	out, err := s.state.Submit(s.nameInput.Value(), s.priceInput.Value())
	if err != nil {
		if errors.Is(err, grading.ErrIncompleteAnswer) {
			s.inputNotice = "Enter both a name and a numeric price."
			return s, nil
		}
		s.poolErr = err.Error()
		return s, nil
	}

	s.outcome = &out
	s.inputNotice = ""
	s.showingFeedback = true
	s.nameInput.SetGraded(out.Verdict.NameMatch)
	s.priceInput.SetGraded(out.Verdict.PriceMatch)
	return s, s.persist()
}

// drawCard advances the session to the next miss-weighted card.
func (s *QuizScreen) drawCard() tea.Cmd {
	return func() tea.Msg {
		return cardDrawnMsg{Err: s.state.Advance()}
	}
}

// persist saves the full state blob without blocking the next draw.
// The snapshot must not alias the live miss map: the save runs on a
// background goroutine while the next Submit writes to it. History is
// safe as a header copy because RecordAttempt reallocates on prepend.
func (s *QuizScreen) persist() tea.Cmd {
	if s.st == nil {
		return nil
	}
	snap := store.Snapshot{
		User:     s.state.User,
		Settings: s.state.Settings,
		Cards:    s.state.Cards,
		Misses:   s.state.Ledger.MissesCopy(),
		History:  s.state.Ledger.History(),
	}
	return func() tea.Msg {
		return persistedMsg{Err: s.st.Save(context.Background(), snap)}
	}
}

func (s *QuizScreen) setFocus(price bool) tea.Cmd {
	s.focusPrice = price
	if price {
		s.nameInput.Blur()
		return s.priceInput.Focus()
	}
	s.priceInput.Blur()
	return s.nameInput.Focus()
}

func (s *QuizScreen) forwardToInput(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.showingFeedback || s.poolErr != "" {
		return s, nil
	}
	var cmd tea.Cmd
	if s.focusPrice {
		s.priceInput, cmd = s.priceInput.Update(msg)
	} else {
		s.nameInput, cmd = s.nameInput.Update(msg)
	}
	return s, cmd
}
