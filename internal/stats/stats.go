// Package stats derives summary views from the attempt history. Pure
// reads; nothing here mutates ledger state.
package stats

import (
	"math"

	"github.com/mizuki/cardrill/internal/ledger"
)

// Summary aggregates one user's attempts.
type Summary struct {
	Total       int
	Correct     int
	RatePercent int

	// Entries holds the user's attempts, most-recent-first. The order is
	// inherited from the ledger's prepend invariant; no re-sort happens.
	Entries []ledger.ResultEntry
}

// Summarize filters the history down to one user and computes totals.
func Summarize(history []ledger.ResultEntry, user string) Summary {
	var s Summary
	for _, e := range history {
		if e.User != user {
			continue
		}
		s.Entries = append(s.Entries, e)
		s.Total++
		if e.Correct {
			s.Correct++
		}
	}
	if s.Total > 0 {
		s.RatePercent = int(math.Round(float64(s.Correct) / float64(s.Total) * 100))
	}
	return s
}

// Recent returns the n most recent entries of the summary.
func (s Summary) Recent(n int) []ledger.ResultEntry {
	if n > len(s.Entries) {
		n = len(s.Entries)
	}
	if n < 0 {
		n = 0
	}
	return s.Entries[:n]
}
