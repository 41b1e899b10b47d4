// Package store persists the full quiz state — settings, deck, miss
// counts and result history — in a local SQLite database. The core treats
// this as an opaque load/save boundary: Save rewrites the whole blob in
// one transaction, Load reconstructs it.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mizuki/cardrill/internal/card"
	"github.com/mizuki/cardrill/internal/ledger"
	"github.com/mizuki/cardrill/internal/session"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps SQLite access for the quiz state.
type Store struct {
	db *sql.DB
}

// Snapshot is the full persisted state blob.
type Snapshot struct {
	User     string
	Settings session.Settings
	Cards    []card.Card
	Misses   map[string]int
	History  []ledger.ResultEntry // most-recent-first
}

// Open creates a new Store connected to the SQLite database at path,
// applying pragmas and migrations.
func Open(path string) (*Store, error) {
	if err := EnsureDir(path); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s := &Store{db: db}
	if err := s.applyPragmas(); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) applyPragmas() error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := s.db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS settings (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			user TEXT NOT NULL,
			tolerance_pct INTEGER NOT NULL,
			strict_name INTEGER NOT NULL,
			grade_filter TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS cards (
			position INTEGER PRIMARY KEY,
			id TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			grade_label TEXT NOT NULL,
			price REAL NOT NULL,
			image_ref TEXT NOT NULL,
			active INTEGER NOT NULL,
			aliases TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS miss_counts (
			card_id TEXT PRIMARY KEY,
			misses INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS results (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			ts TEXT NOT NULL,
			user TEXT NOT NULL,
			card_id TEXT NOT NULL,
			answered_name TEXT NOT NULL,
			answered_price REAL NOT NULL,
			correct INTEGER NOT NULL,
			name_match INTEGER NOT NULL,
			price_match INTEGER NOT NULL,
			snapshot_name TEXT NOT NULL,
			snapshot_price REAL NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_results_user ON results(user);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Save rewrites the full state blob in one transaction. History entries
// are inserted oldest-first so the autoincrement sequence preserves
// recency order for Load.
func (s *Store) Save(ctx context.Context, snap Snapshot) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"settings", "cards", "miss_counts", "results"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO settings (id, user, tolerance_pct, strict_name, grade_filter) VALUES (1, ?, ?, ?, ?)`,
		snap.User, snap.Settings.TolerancePct, boolToInt(snap.Settings.StrictName), string(snap.Settings.GradeFilter),
	)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	for i, c := range snap.Cards {
		aliases, jerr := json.Marshal(c.Aliases)
		if jerr != nil {
			return fmt.Errorf("encode aliases for %s: %w", c.ID, jerr)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO cards (position, id, name, grade_label, price, image_ref, active, aliases)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			i, c.ID, c.Name, c.GradeLabel, c.Price, c.ImageRef, boolToInt(c.Active), string(aliases),
		)
		if err != nil {
			return fmt.Errorf("save card %s: %w", c.ID, err)
		}
	}

	for id, n := range snap.Misses {
		if n <= 0 {
			continue
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO miss_counts (card_id, misses) VALUES (?, ?)`, id, n)
		if err != nil {
			return fmt.Errorf("save miss count %s: %w", id, err)
		}
	}

	for i := len(snap.History) - 1; i >= 0; i-- {
		e := snap.History[i]
		_, err = tx.ExecContext(ctx,
			`INSERT INTO results (ts, user, card_id, answered_name, answered_price, correct, name_match, price_match, snapshot_name, snapshot_price)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.Timestamp.Format(time.RFC3339Nano), e.User, e.CardID, e.AnsweredName, e.AnsweredPrice,
			boolToInt(e.Correct), boolToInt(e.NameMatch), boolToInt(e.PriceMatch), e.SnapshotName, e.SnapshotPrice,
		)
		if err != nil {
			return fmt.Errorf("save result: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Load reconstructs the persisted state. The second return value is
// false when no state has ever been saved (fresh database).
func (s *Store) Load(ctx context.Context) (Snapshot, bool, error) {
	var snap Snapshot

	var strict int
	var filter string
	err := s.db.QueryRowContext(ctx,
		`SELECT user, tolerance_pct, strict_name, grade_filter FROM settings WHERE id = 1`,
	).Scan(&snap.User, &snap.Settings.TolerancePct, &strict, &filter)
	if err == sql.ErrNoRows {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("load settings: %w", err)
	}
	snap.Settings.StrictName = strict != 0
	gf, err := card.ParseGradeFilter(filter)
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("load settings: %w", err)
	}
	snap.Settings.GradeFilter = gf

	if snap.Cards, err = s.loadCards(ctx); err != nil {
		return Snapshot{}, false, err
	}
	if snap.Misses, err = s.loadMisses(ctx); err != nil {
		return Snapshot{}, false, err
	}
	if snap.History, err = s.loadHistory(ctx); err != nil {
		return Snapshot{}, false, err
	}
	return snap, true, nil
}

func (s *Store) loadCards(ctx context.Context) ([]card.Card, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, grade_label, price, image_ref, active, aliases FROM cards ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("load cards: %w", err)
	}
	defer rows.Close()

	var cards []card.Card
	for rows.Next() {
		var c card.Card
		var active int
		var aliases string
		if err := rows.Scan(&c.ID, &c.Name, &c.GradeLabel, &c.Price, &c.ImageRef, &active, &aliases); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		c.Active = active != 0
		if err := json.Unmarshal([]byte(aliases), &c.Aliases); err != nil {
			return nil, fmt.Errorf("decode aliases for %s: %w", c.ID, err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (s *Store) loadMisses(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT card_id, misses FROM miss_counts`)
	if err != nil {
		return nil, fmt.Errorf("load miss counts: %w", err)
	}
	defer rows.Close()

	misses := make(map[string]int)
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan miss count: %w", err)
		}
		misses[id] = n
	}
	return misses, rows.Err()
}

func (s *Store) loadHistory(ctx context.Context) ([]ledger.ResultEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ts, user, card_id, answered_name, answered_price, correct, name_match, price_match, snapshot_name, snapshot_price
		 FROM results ORDER BY seq DESC LIMIT ?`, ledger.MaxHistory)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	defer rows.Close()

	var history []ledger.ResultEntry
	for rows.Next() {
		var e ledger.ResultEntry
		var ts string
		var correct, nameMatch, priceMatch int
		if err := rows.Scan(&ts, &e.User, &e.CardID, &e.AnsweredName, &e.AnsweredPrice,
			&correct, &nameMatch, &priceMatch, &e.SnapshotName, &e.SnapshotPrice); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		if e.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("parse result timestamp: %w", err)
		}
		e.Correct = correct != 0
		e.NameMatch = nameMatch != 0
		e.PriceMatch = priceMatch != 0
		history = append(history, e)
	}
	return history, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// DefaultDBPath resolves the database file path in priority order:
// 1. CARDRILL_DB environment variable
// 2. $XDG_DATA_HOME/cardrill/cardrill.db
// 3. ~/.local/share/cardrill/cardrill.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("CARDRILL_DB"); p != "" {
		return p, nil
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "cardrill", "cardrill.db"), nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
