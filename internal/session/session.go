// Package session ties the selector, matcher and ledger together behind
// one explicit state struct. The presentation layer drives it with
// exactly two commands: Advance (draw the next card) and Submit (grade
// and record the typed answer). Everything runs on the calling goroutine;
// a RecordAttempt is fully applied before the next Advance reads the miss
// map, so no locking is needed.
package session

import (
	"errors"
	"math/rand"

	"github.com/mizuki/cardrill/internal/card"
	"github.com/mizuki/cardrill/internal/grading"
	"github.com/mizuki/cardrill/internal/ledger"
	"github.com/mizuki/cardrill/internal/selector"
)

// ErrNoActiveCard is returned by Submit when no card has been drawn yet.
var ErrNoActiveCard = errors.New("no active card")

// Tolerance bounds for the relative price check.
const (
	MinTolerancePct = 1
	MaxTolerancePct = 30
)

// DefaultTolerancePct is used when no setting has been saved.
const DefaultTolerancePct = 10

// Settings are the user-editable knobs. They affect future grading and
// selection calls only, never entries already recorded.
type Settings struct {
	TolerancePct int
	StrictName   bool
	GradeFilter  card.GradeFilter
}

// Normalize clamps the tolerance into [MinTolerancePct, MaxTolerancePct]
// and defaults an empty grade filter to FilterAll.
func (s *Settings) Normalize() {
	if s.TolerancePct < MinTolerancePct {
		s.TolerancePct = MinTolerancePct
	}
	if s.TolerancePct > MaxTolerancePct {
		s.TolerancePct = MaxTolerancePct
	}
	if s.GradeFilter == "" {
		s.GradeFilter = card.FilterAll
	}
}

// State is the full quiz state: who is playing, with which deck, under
// which settings, plus the ledger owning history and miss counts.
type State struct {
	User     string
	Cards    []card.Card
	Settings Settings
	Ledger   *ledger.Ledger

	// Current is the card being asked, nil before the first Advance.
	Current *card.Card

	picker *selector.Picker
}

// NewState builds a session. A nil src seeds the picker from the clock.
func NewState(user string, cards []card.Card, settings Settings, led *ledger.Ledger, src rand.Source) *State {
	settings.Normalize()
	if led == nil {
		led = ledger.New()
	}
	return &State{
		User:     user,
		Cards:    cards,
		Settings: settings,
		Ledger:   led,
		picker:   selector.New(src),
	}
}

// Outcome bundles what the presentation layer needs to show after a
// submit: the recorded entry and the verdict it came from.
type Outcome struct {
	Entry   ledger.ResultEntry
	Verdict grading.Verdict
}

// Advance draws the next card from the filtered pool, miss-weighted.
// Surfaces selector.ErrNoEligibleCards when the filter leaves nothing.
func (s *State) Advance() error {
	pool := selector.Pool(s.Cards, s.Settings.GradeFilter)
	c, err := s.picker.Next(pool, s.Ledger.Misses())
	if err != nil {
		return err
	}
	s.Current = &c
	return nil
}

// Submit grades the typed answer against the current card and records
// the result. On grading.ErrIncompleteAnswer no state changes at all;
// the caller re-prompts. The current card stays in place so the user can
// retry or advance explicitly.
func (s *State) Submit(nameText, priceText string) (Outcome, error) {
	if s.Current == nil {
		return Outcome{}, ErrNoActiveCard
	}
	v, err := grading.Grade(*s.Current, nameText, priceText, s.Settings.TolerancePct, s.Settings.StrictName)
	if err != nil {
		return Outcome{}, err
	}
	entry := s.Ledger.RecordAttempt(s.User, *s.Current, nameText, v.ParsedPrice, v)
	return Outcome{Entry: entry, Verdict: v}, nil
}

// ReplaceCardSet installs a freshly imported deck. Miss weights reset
// (identifiers are regenerated on import); history keeps its snapshots.
func (s *State) ReplaceCardSet(cards []card.Card) {
	s.Cards = cards
	s.Ledger.ReplaceCardSet()
	s.Current = nil
}

// ResetAll clears history and miss counts.
func (s *State) ResetAll() {
	s.Ledger.ResetAll()
}
