package session

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/mizuki/cardrill/internal/card"
	"github.com/mizuki/cardrill/internal/grading"
	"github.com/mizuki/cardrill/internal/selector"
)

func testDeck() []card.Card {
	return []card.Card{
		{ID: "chz", Name: "リザードン VMAX", Price: 58000, Active: true, Aliases: []string{"charizard"}},
		{ID: "pik", Name: "ピカチュウ プロモ", Price: 32000, Active: true, Aliases: []string{"pikachu"}},
	}
}

func newTestState() *State {
	settings := Settings{TolerancePct: 10, GradeFilter: card.FilterAll}
	return NewState("aki", testDeck(), settings, nil, rand.NewSource(1))
}

func TestSettingsNormalize(t *testing.T) {
	s := Settings{TolerancePct: 0}
	s.Normalize()
	if s.TolerancePct != MinTolerancePct {
		t.Errorf("TolerancePct = %d, want %d", s.TolerancePct, MinTolerancePct)
	}
	if s.GradeFilter != card.FilterAll {
		t.Errorf("GradeFilter = %q, want all", s.GradeFilter)
	}

	s = Settings{TolerancePct: 99}
	s.Normalize()
	if s.TolerancePct != MaxTolerancePct {
		t.Errorf("TolerancePct = %d, want %d", s.TolerancePct, MaxTolerancePct)
	}
}

func TestAdvance_DrawsFromDeck(t *testing.T) {
	s := newTestState()
	if s.Current != nil {
		t.Fatal("no card should be drawn before Advance")
	}
	if err := s.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if s.Current == nil {
		t.Fatal("Advance left no current card")
	}
	if s.Current.ID != "chz" && s.Current.ID != "pik" {
		t.Errorf("drew unknown card %q", s.Current.ID)
	}
}

func TestAdvance_EmptyPool(t *testing.T) {
	s := NewState("aki", nil, Settings{TolerancePct: 10}, nil, rand.NewSource(1))
	if err := s.Advance(); !errors.Is(err, selector.ErrNoEligibleCards) {
		t.Errorf("err = %v, want ErrNoEligibleCards", err)
	}
}

func TestSubmit_BeforeAdvance(t *testing.T) {
	s := newTestState()
	if _, err := s.Submit("pikachu", "30000"); !errors.Is(err, ErrNoActiveCard) {
		t.Errorf("err = %v, want ErrNoActiveCard", err)
	}
}

func TestSubmit_RecordsAttempt(t *testing.T) {
	s := newTestState()
	if err := s.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}

	// Wrong on both counts.
	out, err := s.Submit("completely wrong", "1")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if out.Verdict.OverallCorrect {
		t.Error("verdict should be incorrect")
	}
	if got := s.Ledger.MissCount(s.Current.ID); got != 1 {
		t.Errorf("miss count = %d, want 1", got)
	}
	if len(s.Ledger.History()) != 1 {
		t.Errorf("history length = %d, want 1", len(s.Ledger.History()))
	}
	if out.Entry.User != "aki" || out.Entry.CardID != s.Current.ID {
		t.Errorf("entry = %+v", out.Entry)
	}
}

func TestSubmit_IncompleteAnswerMutatesNothing(t *testing.T) {
	s := newTestState()
	if err := s.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}

	_, err := s.Submit("", "30000")
	if !errors.Is(err, grading.ErrIncompleteAnswer) {
		t.Fatalf("err = %v, want ErrIncompleteAnswer", err)
	}
	if len(s.Ledger.History()) != 0 {
		t.Error("incomplete answer must not touch the history")
	}
	if len(s.Ledger.Misses()) != 0 {
		t.Error("incomplete answer must not touch the miss map")
	}
	if s.Current == nil {
		t.Error("current card should stay in place for a retry")
	}
}

func TestSubmit_CorrectEndToEnd(t *testing.T) {
	s := newTestState()
	// Pin the current card instead of relying on the draw.
	s.Current = &s.Cards[1] // pikachu promo, 32000

	out, err := s.Submit("pikachu", "30000")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !out.Verdict.NameMatch || !out.Verdict.PriceMatch || !out.Verdict.OverallCorrect {
		t.Errorf("verdict = %+v, want full match", out.Verdict)
	}
	if got := s.Ledger.MissCount("pik"); got != 0 {
		t.Errorf("miss count = %d, want 0 after correct answer", got)
	}
}

func TestMissWeightFeedsNextDraw(t *testing.T) {
	// After heavy misses on one card its draw share must dominate.
	s := newTestState()
	s.Current = &s.Cards[0] // charizard
	for i := 0; i < 9; i++ {
		if _, err := s.Submit("wrong name", "1"); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	const draws = 2000
	heavy := 0
	for i := 0; i < draws; i++ {
		if err := s.Advance(); err != nil {
			t.Fatalf("Advance: %v", err)
		}
		if s.Current.ID == "chz" {
			heavy++
		}
	}
	// Weight 10 vs 1: expected share 10/11 ≈ 0.909. Allow a wide margin.
	if float64(heavy)/draws < 0.85 {
		t.Errorf("heavy card share = %.3f, want ≳0.909", float64(heavy)/draws)
	}
}

func TestReplaceCardSet(t *testing.T) {
	s := newTestState()
	s.Current = &s.Cards[0]
	if _, err := s.Submit("wrong", "1"); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	newDeck := []card.Card{{ID: "new", Name: "ミュウ", Price: 9000, Active: true}}
	s.ReplaceCardSet(newDeck)

	if len(s.Ledger.Misses()) != 0 {
		t.Error("miss map should reset with a new deck")
	}
	if len(s.Ledger.History()) != 1 {
		t.Error("history should survive a deck replacement")
	}
	if s.Current != nil {
		t.Error("current card should clear with a new deck")
	}
	if err := s.Advance(); err != nil {
		t.Fatalf("Advance on new deck: %v", err)
	}
	if s.Current.ID != "new" {
		t.Errorf("drew %q, want the only new card", s.Current.ID)
	}
}

func TestResetAll(t *testing.T) {
	s := newTestState()
	s.Current = &s.Cards[0]
	if _, err := s.Submit("wrong", "1"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	s.ResetAll()
	if len(s.Ledger.History()) != 0 || len(s.Ledger.Misses()) != 0 {
		t.Error("ResetAll should clear history and misses")
	}
}
