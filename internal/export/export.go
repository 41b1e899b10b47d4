// Package export renders the attempt history as a CSV report, one row
// per recorded entry with every entry field. Pure read over ledger data.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/mizuki/cardrill/internal/ledger"
)

var header = []string{
	"timestamp", "user", "card_id", "answered_name", "answered_price",
	"correct", "name_match", "price_match", "snapshot_name", "snapshot_price",
}

// WriteHistory writes the entries in the order given (the ledger hands
// them over most-recent-first).
func WriteHistory(w io.Writer, entries []ledger.ResultEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, e := range entries {
		record := []string{
			e.Timestamp.Format(time.RFC3339),
			e.User,
			e.CardID,
			e.AnsweredName,
			formatPrice(e.AnsweredPrice),
			strconv.FormatBool(e.Correct),
			strconv.FormatBool(e.NameMatch),
			strconv.FormatBool(e.PriceMatch),
			e.SnapshotName,
			formatPrice(e.SnapshotPrice),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
