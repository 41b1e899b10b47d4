package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mizuki/cardrill/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export [file.csv]",
	Short: "Write the attempt history as CSV",
	Long:  "Write the attempt history as a CSV report, one row per graded attempt. Writes to stdout when no file is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		snap, _, err := st.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("load state: %w", err)
		}

		out := os.Stdout
		if len(args) == 1 {
			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("create %s: %w", args[0], err)
			}
			defer f.Close()
			out = f
		}
		return export.WriteHistory(out, snap.History)
	},
}
