// Package selector draws the next quiz card, biased toward cards the
// user keeps getting wrong.
package selector

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/mizuki/cardrill/internal/card"
)

var (
	// ErrNoEligibleCards signals an empty filtered pool. A configuration
	// or data problem the caller must surface, not a crash.
	ErrNoEligibleCards = errors.New("no eligible cards")

	// ErrInvalidSelectorInput signals a broken weighting invariant. It
	// cannot occur with valid cards and miss counts.
	ErrInvalidSelectorInput = errors.New("invalid selector input")
)

// Pool returns the active cards passing the grade filter, in deck order.
func Pool(cards []card.Card, filter card.GradeFilter) []card.Card {
	var pool []card.Card
	for _, c := range cards {
		if c.Active && filter.Matches(c) {
			pool = append(pool, c)
		}
	}
	return pool
}

// Picker performs miss-weighted random draws. It keeps no memory of past
// selections; the weight distribution alone drives repetition.
type Picker struct {
	rng *rand.Rand
}

// New creates a Picker. A nil source seeds from the clock; tests inject a
// fixed source for deterministic draws.
func New(src rand.Source) *Picker {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Picker{rng: rand.New(src)}
}

// Next draws one card from the pool with probability proportional to
// 1 + misses[card.ID]. The baseline weight of 1 keeps every card
// selectable no matter how lopsided the miss counts grow.
func (p *Picker) Next(pool []card.Card, misses map[string]int) (card.Card, error) {
	if len(pool) == 0 {
		return card.Card{}, ErrNoEligibleCards
	}

	weights := make([]float64, len(pool))
	var total float64
	for i, c := range pool {
		m := misses[c.ID]
		if m < 0 {
			return card.Card{}, fmt.Errorf("%w: negative miss count %d for card %s", ErrInvalidSelectorInput, m, c.ID)
		}
		weights[i] = 1 + float64(m)
		total += weights[i]
	}
	if total <= 0 || math.IsInf(total, 0) || math.IsNaN(total) {
		return card.Card{}, fmt.Errorf("%w: total weight %v", ErrInvalidSelectorInput, total)
	}

	r := p.rng.Float64() * total
	for i, w := range weights {
		r -= w
		if r <= 0 {
			return pool[i], nil
		}
	}
	// Floating-point rounding can leave a sliver of r after the walk;
	// clamp to the last card rather than ever returning out-of-pool.
	return pool[len(pool)-1], nil
}
