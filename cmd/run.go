package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mizuki/cardrill/internal/app"
	"github.com/mizuki/cardrill/internal/config"
	"github.com/mizuki/cardrill/internal/ledger"
	"github.com/mizuki/cardrill/internal/session"
	"github.com/mizuki/cardrill/internal/store"
)

// runApp opens the store, restores the saved state, and launches the TUI.
func runApp(cmd *cobra.Command) error {
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

	return app.Run(app.Options{State: state, Store: st})
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// loadState builds the session from the saved snapshot. Settings saved
// in the store win over the config file; the config supplies defaults
// on first run.
func loadState(cmd *cobra.Command, st *store.Store, cfg config.Config) (*session.State, error) {
	snap, found, err := st.Load(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}

	user := cfg.User
	settings := cfg.Settings()
	var led *ledger.Ledger
	var cards = snap.Cards
	if found {
		if snap.User != "" {
			user = snap.User
		}
		settings = snap.Settings
		settings.Normalize()
		led = ledger.Restore(snap.History, snap.Misses)
	}

	return session.NewState(user, cards, settings, led, nil), nil
}
