package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mizuki/cardrill/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear attempt history and miss counts",
	Long:  "Clear the attempt history and all miss counts. Cards and settings are kept.",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("refusing to reset without --yes")
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
		state.ResetAll()

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
		fmt.Println("history and miss counts cleared")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
