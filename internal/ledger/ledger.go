// Package ledger records graded attempts and maintains the per-card miss
// counts that drive selection weighting. The ledger is the only writer of
// both structures; the selector and stats aggregator read them.
package ledger

import (
	"time"

	"github.com/mizuki/cardrill/internal/card"
	"github.com/mizuki/cardrill/internal/grading"
)

// MaxHistory caps the result history. Older entries are silently dropped.
const MaxHistory = 2000

// ResultEntry is the immutable record of one graded attempt. The card's
// name and price are snapshotted at grading time: replacing the deck
// later never rewrites what was graded.
type ResultEntry struct {
	Timestamp     time.Time
	User          string
	CardID        string
	AnsweredName  string
	AnsweredPrice float64
	Correct       bool
	NameMatch     bool
	PriceMatch    bool
	SnapshotName  string
	SnapshotPrice float64
}

// Ledger owns the attempt history (most-recent-first) and the miss map.
type Ledger struct {
	history []ResultEntry
	misses  map[string]int
	now     func() time.Time
}

// New creates an empty Ledger.
func New() *Ledger {
	return &Ledger{misses: make(map[string]int), now: time.Now}
}

// Restore rebuilds a Ledger from persisted state. History must already be
// most-recent-first; anything beyond MaxHistory is dropped.
func Restore(history []ResultEntry, misses map[string]int) *Ledger {
	l := New()
	if len(history) > MaxHistory {
		history = history[:MaxHistory]
	}
	l.history = append(l.history, history...)
	for id, n := range misses {
		if n > 0 {
			l.misses[id] = n
		}
	}
	return l
}

// RecordAttempt appends a graded attempt and bumps the card's miss count
// when the verdict is overall-incorrect. Correct answers never decrease a
// miss count; only ResetAll or a deck replacement does. The update is
// atomic: the caller sees either the full entry-plus-miss update or, on a
// validation failure upstream, no call at all.
func (l *Ledger) RecordAttempt(user string, c card.Card, answeredName string, answeredPrice float64, v grading.Verdict) ResultEntry {
	entry := ResultEntry{
		Timestamp:     l.now(),
		User:          user,
		CardID:        c.ID,
		AnsweredName:  answeredName,
		AnsweredPrice: answeredPrice,
		Correct:       v.OverallCorrect,
		NameMatch:     v.NameMatch,
		PriceMatch:    v.PriceMatch,
		SnapshotName:  v.SnapshotName,
		SnapshotPrice: v.SnapshotPrice,
	}

	l.history = append([]ResultEntry{entry}, l.history...)
	if len(l.history) > MaxHistory {
		l.history = l.history[:MaxHistory]
	}

	if !v.OverallCorrect {
		l.misses[c.ID]++
	}
	return entry
}

// History returns the attempt history, most-recent-first. Callers must
// treat the slice as read-only.
func (l *Ledger) History() []ResultEntry {
	return l.history
}

// Misses returns the miss map for selector weighting. Read-only for
// callers; all mutation flows through RecordAttempt.
func (l *Ledger) Misses() map[string]int {
	return l.misses
}

// MissesCopy returns an independent copy of the miss map. Code that
// leaves the sequencing goroutine, such as an async save, must take a
// copy: the live map is written by the next RecordAttempt.
func (l *Ledger) MissesCopy() map[string]int {
	out := make(map[string]int, len(l.misses))
	for id, n := range l.misses {
		out[id] = n
	}
	return out
}

// MissCount returns the recorded miss count for one card.
func (l *Ledger) MissCount(cardID string) int {
	return l.misses[cardID]
}

// ResetAll clears the history and the miss map. The only way miss
// weights return to baseline.
func (l *Ledger) ResetAll() {
	l.history = nil
	l.misses = make(map[string]int)
}

// ReplaceCardSet clears the miss map but keeps the history: new cards get
// new identifiers, so accumulated weights are meaningless, while past
// entries remain valid snapshots of what was graded.
func (l *Ledger) ReplaceCardSet() {
	l.misses = make(map[string]int)
}
