package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mizuki/cardrill/internal/card"
	"github.com/mizuki/cardrill/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Replace the card deck from a CSV file",
	Long: `Replace the card deck from a CSV file with the header
name,price,grade,aliases,image,active. Aliases are pipe-separated.
Importing clears miss counts (new cards get new identifiers) but keeps
the attempt history.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd, args[0])
	},
}

func runImport(cmd *cobra.Command, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	cards, rowErrs, err := card.LoadCSV(f)
	if err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}
	for _, re := range rowErrs {
		fmt.Fprintln(os.Stderr, "skipped:", re.Error())
	}

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
	state.ReplaceCardSet(cards)

	snap := store.Snapshot{
		User:     state.User,
		Settings: state.Settings,
		Cards:    state.Cards,
		Misses:   state.Ledger.Misses(),
		History:  state.Ledger.History(),
	}
	if err := st.Save(cmd.Context(), snap); err != nil {
		return fmt.Errorf("save state: %w", err)
	}

	fmt.Printf("imported %d cards (%d rows skipped)\n", len(cards), len(rowErrs))
	return nil
}
