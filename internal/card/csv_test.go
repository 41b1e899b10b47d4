package card

import (
	"strings"
	"testing"
)

const validCSV = `name,price,grade,aliases,image,active
リザードン VMAX,58000,PSA 10,リザバナ|charizard,img/charizard.png,true
ピカチュウ プロモ,32000,,pikachu,,
フシギバナ,12000,PSA 9,,img/venusaur.png,false
`

func TestLoadCSV_Valid(t *testing.T) {
	cards, rejected, err := LoadCSV(strings.NewReader(validCSV))
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if len(rejected) != 0 {
		t.Fatalf("rejected = %v, want none", rejected)
	}
	if len(cards) != 3 {
		t.Fatalf("len(cards) = %d, want 3", len(cards))
	}

	c := cards[0]
	if c.Name != "リザードン VMAX" || c.Price != 58000 || c.GradeLabel != "PSA 10" {
		t.Errorf("unexpected first card: %+v", c)
	}
	if len(c.Aliases) != 2 || c.Aliases[0] != "リザバナ" || c.Aliases[1] != "charizard" {
		t.Errorf("aliases = %v", c.Aliases)
	}
	if !c.Active {
		t.Error("first card should default to active")
	}
	if cards[2].Active {
		t.Error("third card should be inactive")
	}
	if cards[1].Aliases == nil || cards[1].Aliases[0] != "pikachu" {
		t.Errorf("second card aliases = %v", cards[1].Aliases)
	}

	// Every card gets a fresh unique ID.
	seen := make(map[string]bool)
	for _, c := range cards {
		if c.ID == "" || seen[c.ID] {
			t.Errorf("missing or duplicate ID %q", c.ID)
		}
		seen[c.ID] = true
	}
}

func TestLoadCSV_FullWidthPrice(t *testing.T) {
	in := "name,price,grade,aliases,image,active\nミュウ,５８，０００円,,,,\n"
	cards, rejected, err := LoadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if len(rejected) != 0 || len(cards) != 1 {
		t.Fatalf("cards = %d, rejected = %v", len(cards), rejected)
	}
	if cards[0].Price != 58000 {
		t.Errorf("Price = %v, want 58000", cards[0].Price)
	}
}

func TestLoadCSV_RejectsBadRows(t *testing.T) {
	in := `name,price,grade,aliases,image,active
,1000,,,,
good card,not-a-price,,,,
ok card,500,,,,
`
	cards, rejected, err := LoadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if len(cards) != 1 || cards[0].Name != "ok card" {
		t.Fatalf("cards = %+v, want only the valid row", cards)
	}
	if len(rejected) != 2 {
		t.Fatalf("rejected = %v, want 2 entries", rejected)
	}
	if rejected[0].Line != 2 || rejected[1].Line != 3 {
		t.Errorf("rejected lines = %d, %d", rejected[0].Line, rejected[1].Line)
	}
}

func TestLoadCSV_BadHeader(t *testing.T) {
	if _, _, err := LoadCSV(strings.NewReader("nome,preco\nx,1\n")); err == nil {
		t.Error("expected header error")
	}
	if _, _, err := LoadCSV(strings.NewReader("")); err == nil {
		t.Error("expected empty-file error")
	}
}

func TestGradeFilter(t *testing.T) {
	nine := Card{Name: "b", GradeLabel: "9", Price: 1}
	ungraded := Card{Name: "c", Price: 1}
	bareTen := Card{Name: "e", GradeLabel: "１０", Price: 1}

	// Only a label canonicalizing to exactly "10" counts as grade ten;
	// "PSA 10" canonicalizes to "psa10" and does not.
	if (Card{Name: "a", GradeLabel: "PSA 10", Price: 1}).IsGrade10() {
		t.Error("PSA 10 label should not canonicalize to \"10\"")
	}
	if !bareTen.IsGrade10() {
		t.Error("full-width 10 label should count as grade ten")
	}

	if !FilterAll.Matches(nine) || !FilterAll.Matches(ungraded) {
		t.Error("FilterAll should match everything")
	}
	if FilterGrade10Only.Matches(nine) {
		t.Error("FilterGrade10Only should reject grade 9")
	}
	if !FilterBelowGrade10.Matches(ungraded) {
		t.Error("FilterBelowGrade10 should keep ungraded cards")
	}
	if !FilterGrade10Only.Matches(bareTen) {
		t.Error("FilterGrade10Only should keep bare 10 labels")
	}
}

func TestParseGradeFilter(t *testing.T) {
	if f, err := ParseGradeFilter(""); err != nil || f != FilterAll {
		t.Errorf("empty filter: %v, %v", f, err)
	}
	if f, err := ParseGradeFilter("grade-10-only"); err != nil || f != FilterGrade10Only {
		t.Errorf("grade-10-only: %v, %v", f, err)
	}
	if _, err := ParseGradeFilter("nope"); err == nil {
		t.Error("expected error for unknown filter")
	}
}

func TestEligible(t *testing.T) {
	if (Card{Name: "", Price: 100}).Eligible() {
		t.Error("empty name should be ineligible")
	}
	if (Card{Name: "x", Price: -1}).Eligible() {
		t.Error("negative price should be ineligible")
	}
	if !(Card{Name: "x", Price: 0}).Eligible() {
		t.Error("zero price is valid")
	}
}
