package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mizuki/cardrill/internal/card"
	"github.com/mizuki/cardrill/internal/grading"
	"github.com/mizuki/cardrill/internal/ledger"
	"github.com/mizuki/cardrill/internal/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cardrill.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleSnapshot() Snapshot {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return Snapshot{
		User: "aki",
		Settings: session.Settings{
			TolerancePct: 15,
			StrictName:   true,
			GradeFilter:  card.FilterBelowGrade10,
		},
		Cards: []card.Card{
			{ID: "c1", Name: "リザードン VMAX", GradeLabel: "10", Price: 58000, ImageRef: "img/chz.png", Active: true, Aliases: []string{"charizard", "リザバナ"}},
			{ID: "c2", Name: "ピカチュウ プロモ", Price: 32000, Active: false},
		},
		Misses: map[string]int{"c1": 4},
		History: []ledger.ResultEntry{
			{Timestamp: ts.Add(time.Minute), User: "aki", CardID: "c1", AnsweredName: "charizard", AnsweredPrice: 60000, Correct: true, NameMatch: true, PriceMatch: true, SnapshotName: "リザードン VMAX", SnapshotPrice: 58000},
			{Timestamp: ts, User: "aki", CardID: "c2", AnsweredName: "raichu", AnsweredPrice: 100, NameMatch: false, PriceMatch: false, SnapshotName: "ピカチュウ プロモ", SnapshotPrice: 32000},
		},
	}
}

func TestLoad_FreshDatabase(t *testing.T) {
	s := openTestStore(t)
	_, ok, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok, "fresh database should report no saved state")
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	want := sampleSnapshot()
	require.NoError(t, s.Save(ctx, want))

	got, ok, err := s.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, want.User, got.User)
	assert.Equal(t, want.Settings, got.Settings)
	require.Len(t, got.Cards, 2)
	assert.Equal(t, want.Cards[0], got.Cards[0])
	assert.Equal(t, want.Cards[1].ID, got.Cards[1].ID)
	assert.False(t, got.Cards[1].Active)
	assert.Equal(t, map[string]int{"c1": 4}, got.Misses)

	require.Len(t, got.History, 2)
	// Most-recent-first order survives the round trip.
	assert.Equal(t, "charizard", got.History[0].AnsweredName)
	assert.Equal(t, "raichu", got.History[1].AnsweredName)
	assert.True(t, got.History[0].Timestamp.After(got.History[1].Timestamp))
	assert.Equal(t, want.History[0], got.History[0])
}

func TestSave_Rewrites(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sampleSnapshot()))

	second := Snapshot{
		User:     "ren",
		Settings: session.Settings{TolerancePct: 10, GradeFilter: card.FilterAll},
		Cards:    []card.Card{{ID: "x1", Name: "ミュウ", Price: 9000, Active: true}},
	}
	require.NoError(t, s.Save(ctx, second))

	got, ok, err := s.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "ren", got.User)
	require.Len(t, got.Cards, 1)
	assert.Equal(t, "x1", got.Cards[0].ID)
	assert.Empty(t, got.Misses)
	assert.Empty(t, got.History)
}

// A save launched in the background must never alias the live miss
// map: the sequencing goroutine keeps grading while the save is in
// flight. Snapshots built from MissesCopy stay race-free under -race.
func TestSave_WhileRecordingAttempts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	c := card.Card{ID: "c1", Name: "リザードン VMAX", Price: 58000, Active: true}
	wrong := grading.Verdict{SnapshotName: c.Name, SnapshotPrice: c.Price}
	led := ledger.New()

	for round := 0; round < 10; round++ {
		snap := Snapshot{
			User:     "aki",
			Settings: session.Settings{TolerancePct: 10, GradeFilter: card.FilterAll},
			Cards:    []card.Card{c},
			Misses:   led.MissesCopy(),
			History:  led.History(),
		}
		done := make(chan error, 1)
		go func() { done <- s.Save(ctx, snap) }()
		for i := 0; i < 50; i++ {
			led.RecordAttempt("aki", c, "wrong", 1, wrong)
		}
		require.NoError(t, <-done)
	}

	got, ok, err := s.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	// The last save saw the miss counts as of its snapshot, not the
	// attempts recorded while it ran.
	assert.Equal(t, 9*50, got.Misses["c1"])
}

func TestSaveLoad_EmptyAliases(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	snap := Snapshot{
		User:     "aki",
		Settings: session.Settings{TolerancePct: 10, GradeFilter: card.FilterAll},
		Cards:    []card.Card{{ID: "c1", Name: "n", Price: 1, Active: true}},
	}
	require.NoError(t, s.Save(ctx, snap))

	got, _, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.Cards, 1)
	assert.Empty(t, got.Cards[0].Aliases)
}
