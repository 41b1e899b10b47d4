package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mizuki/cardrill/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show drill statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		state, err := loadState(cmd, st, cfg)
		if err != nil {
			return err
		}

		sum := stats.Summarize(state.Ledger.History(), state.User)
		if sum.Total == 0 {
			fmt.Printf("no attempts recorded for %s\n", state.User)
			return nil
		}
		fmt.Printf("%s: %d / %d correct (%d%%)\n", state.User, sum.Correct, sum.Total, sum.RatePercent)
		for _, e := range sum.Recent(10) {
			mark := "✗"
			if e.Correct {
				mark = "✓"
			}
			fmt.Printf("  %s %s  %s @ %.0f円\n",
				e.Timestamp.Format("2006-01-02 15:04"), mark, e.SnapshotName, e.SnapshotPrice)
		}
		return nil
	},
}
