// Package grading compares a submitted answer against a card and produces
// a Verdict. Grading is pure; persisting the outcome is the ledger's job.
package grading

import (
	"errors"
	"math"
	"strings"

	"github.com/mizuki/cardrill/internal/card"
	"github.com/mizuki/cardrill/internal/normtext"
)

// ErrIncompleteAnswer signals that the name was empty or the price
// unparseable after normalization. This is a validation failure, not a
// wrong answer: nothing is graded and nothing may be recorded.
var ErrIncompleteAnswer = errors.New("incomplete answer")

// Verdict is the structured outcome of grading one answer against one
// card. SnapshotName and SnapshotPrice copy the card data at grading time
// so later deck changes cannot rewrite history.
type Verdict struct {
	NameMatch      bool
	PriceMatch     bool
	OverallCorrect bool
	ParsedPrice    float64 // the answered price as parsed
	SnapshotName   string
	SnapshotPrice  float64
}

// Grade checks the answered name and price against the card.
//
// The name candidate set is the canonicalized card name plus every
// canonicalized alias. In strict mode the answer must equal a candidate
// exactly; in lenient mode containment is checked in both directions, so
// partial or extra text on either side still matches. Short aliases are
// deliberately not special-cased even though they match permissively.
//
// The price matches when |answer − card.Price| ≤ card.Price ×
// tolerancePct/100. Tolerance is relative to the card's price, so a price
// of 0 accepts only 0.
func Grade(c card.Card, answeredName, answeredPriceRaw string, tolerancePct int, strictName bool) (Verdict, error) {
	answer := normtext.Canonicalize(answeredName)
	if answer == "" {
		return Verdict{}, ErrIncompleteAnswer
	}
	price, err := normtext.ParsePrice(answeredPriceRaw)
	if err != nil {
		return Verdict{}, ErrIncompleteAnswer
	}

	nameMatch := matchName(c, answer, strictName)
	priceMatch := math.Abs(price-c.Price) <= c.Price*float64(tolerancePct)/100

	return Verdict{
		NameMatch:      nameMatch,
		PriceMatch:     priceMatch,
		OverallCorrect: nameMatch && priceMatch,
		ParsedPrice:    price,
		SnapshotName:   c.Name,
		SnapshotPrice:  c.Price,
	}, nil
}

func matchName(c card.Card, answer string, strict bool) bool {
	for _, cand := range candidates(c) {
		if strict {
			if answer == cand {
				return true
			}
			continue
		}
		if strings.Contains(answer, cand) || strings.Contains(cand, answer) {
			return true
		}
	}
	return false
}

// candidates returns the canonicalized name and aliases. Aliases that
// canonicalize to nothing are skipped: an empty candidate is contained in
// every answer.
func candidates(c card.Card) []string {
	out := make([]string, 0, 1+len(c.Aliases))
	if n := normtext.Canonicalize(c.Name); n != "" {
		out = append(out, n)
	}
	for _, a := range c.Aliases {
		if ca := normtext.Canonicalize(a); ca != "" {
			out = append(out, ca)
		}
	}
	return out
}
