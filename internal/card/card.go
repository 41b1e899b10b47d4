// Package card defines the quiz deck model and CSV ingestion.
package card

import (
	"fmt"
	"math"

	"github.com/mizuki/cardrill/internal/normtext"
)

// Card is a single quiz item: a trading card with a canonical name, a
// market price and optional alias spellings accepted as answers.
type Card struct {
	ID         string   // assigned at import, regenerated on every import
	Name       string   // canonical display name
	GradeLabel string   // condition grade; only a bare "10" (or "１０") counts as grade ten
	Price      float64  // market price, non-negative
	ImageRef   string   // path or URL of the card image (may be empty)
	Active     bool     // inactive cards are excluded from selection
	Aliases    []string // alternate names accepted by the matcher
}

// Eligible reports whether the card carries the data the matcher and
// selector rely on: a non-empty name and a finite, non-negative price.
func (c Card) Eligible() bool {
	if normtext.Canonicalize(c.Name) == "" {
		return false
	}
	return !math.IsNaN(c.Price) && !math.IsInf(c.Price, 0) && c.Price >= 0
}

// IsGrade10 reports whether the card's grade label canonicalizes to "10".
// Full-width "１０" labels count.
func (c Card) IsGrade10() bool {
	return normtext.Canonicalize(c.GradeLabel) == "10"
}

// GradeFilter narrows the selectable pool by grade label.
type GradeFilter string

const (
	FilterAll          GradeFilter = "all"
	FilterGrade10Only  GradeFilter = "grade-10-only"
	FilterBelowGrade10 GradeFilter = "below-grade-10"
)

// ParseGradeFilter validates a grade filter string, defaulting empty
// input to FilterAll.
func ParseGradeFilter(s string) (GradeFilter, error) {
	switch GradeFilter(s) {
	case "":
		return FilterAll, nil
	case FilterAll, FilterGrade10Only, FilterBelowGrade10:
		return GradeFilter(s), nil
	}
	return "", fmt.Errorf("unknown grade filter %q", s)
}

// Matches reports whether the card passes the filter.
func (f GradeFilter) Matches(c Card) bool {
	switch f {
	case FilterGrade10Only:
		return c.IsGrade10()
	case FilterBelowGrade10:
		return !c.IsGrade10()
	default:
		return true
	}
}
