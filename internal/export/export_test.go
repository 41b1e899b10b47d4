package export

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/mizuki/cardrill/internal/ledger"
)

func TestWriteHistory(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []ledger.ResultEntry{
		{
			Timestamp:     ts,
			User:          "aki",
			CardID:        "c1",
			AnsweredName:  "charizard",
			AnsweredPrice: 60000,
			Correct:       true,
			NameMatch:     true,
			PriceMatch:    true,
			SnapshotName:  "リザードン VMAX",
			SnapshotPrice: 58000,
		},
		{
			Timestamp:     ts.Add(-time.Hour),
			User:          "aki",
			CardID:        "c2",
			AnsweredName:  "mew, the original",
			AnsweredPrice: 99.5,
			SnapshotName:  "ミュウ",
			SnapshotPrice: 9000,
		},
	}

	var sb strings.Builder
	if err := WriteHistory(&sb, entries); err != nil {
		t.Fatalf("WriteHistory: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(sb.String())).ReadAll()
	if err != nil {
		t.Fatalf("re-parse output: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want header + 2 rows", len(records))
	}
	if records[0][0] != "timestamp" || len(records[0]) != 10 {
		t.Errorf("header = %v", records[0])
	}

	row := records[1]
	if row[1] != "aki" || row[3] != "charizard" || row[4] != "60000" || row[5] != "true" {
		t.Errorf("first row = %v", row)
	}
	// Commas inside answers survive CSV quoting.
	if records[2][3] != "mew, the original" {
		t.Errorf("quoted field = %q", records[2][3])
	}
	if records[2][4] != "99.5" {
		t.Errorf("decimal price = %q", records[2][4])
	}
}

func TestWriteHistory_Empty(t *testing.T) {
	var sb strings.Builder
	if err := WriteHistory(&sb, nil); err != nil {
		t.Fatalf("WriteHistory: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 1 {
		t.Errorf("expected only the header line, got %d lines", len(lines))
	}
}
