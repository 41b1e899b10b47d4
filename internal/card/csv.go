package card

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/mizuki/cardrill/internal/normtext"
)

// csvHeader is the expected column order of an import file.
var csvHeader = []string{"name", "price", "grade", "aliases", "image", "active"}

// RowError describes a rejected import row. Rejected rows never make it
// into the deck; they are reported so the user can fix the file.
type RowError struct {
	Line   int
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// LoadCSV parses an import file into a deck of Cards. The first record
// must be the header "name,price,grade,aliases,image,active"; aliases are
// pipe-separated; prices accept full-width numerals and currency glyphs.
// Rows failing the Card eligibility invariant are rejected and returned
// as RowErrors alongside the cards that did load. IDs are assigned fresh
// on every import.
func LoadCSV(r io.Reader) ([]Card, []RowError, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // row length validated per record

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, errors.New("empty import file")
		}
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	if !headerMatches(header) {
		return nil, nil, fmt.Errorf("unexpected header %v, want %v", header, csvHeader)
	}

	var (
		cards    []Card
		rejected []RowError
		line     = 1
	)
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, nil, fmt.Errorf("read line %d: %w", line, err)
		}

		c, reason := cardFromRecord(record)
		if reason != "" {
			rejected = append(rejected, RowError{Line: line, Reason: reason})
			continue
		}
		cards = append(cards, c)
	}
	return cards, rejected, nil
}

func headerMatches(header []string) bool {
	if len(header) != len(csvHeader) {
		return false
	}
	for i, col := range header {
		if strings.TrimSpace(strings.ToLower(col)) != csvHeader[i] {
			return false
		}
	}
	return true
}

// cardFromRecord converts one CSV record into a Card, returning a
// non-empty reason when the row must be rejected.
func cardFromRecord(record []string) (Card, string) {
	if len(record) < 2 {
		return Card{}, "too few columns"
	}
	field := func(i int) string {
		if i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}

	name := field(0)
	if name == "" {
		return Card{}, "missing name"
	}

	price, err := normtext.ParsePrice(field(1))
	if err != nil {
		return Card{}, fmt.Sprintf("unparseable price %q", field(1))
	}
	if price < 0 {
		return Card{}, fmt.Sprintf("negative price %v", price)
	}

	var aliases []string
	for _, a := range strings.Split(field(3), "|") {
		a = strings.TrimSpace(a)
		if a != "" {
			aliases = append(aliases, a)
		}
	}

	active := true
	switch strings.ToLower(field(5)) {
	case "", "true", "1", "yes":
	case "false", "0", "no":
		active = false
	default:
		return Card{}, fmt.Sprintf("invalid active flag %q", field(5))
	}

	c := Card{
		ID:         uuid.New().String(),
		Name:       name,
		GradeLabel: field(2),
		Price:      price,
		ImageRef:   field(4),
		Active:     active,
		Aliases:    aliases,
	}
	if !c.Eligible() {
		return Card{}, "card fails eligibility invariant"
	}
	return c, ""
}
