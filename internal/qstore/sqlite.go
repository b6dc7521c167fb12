package qstore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS qvalues (
	hand_bucket INTEGER NOT NULL,
	deck_bucket INTEGER NOT NULL,
	can_discard INTEGER NOT NULL,
	opp_bucket  INTEGER NOT NULL,
	action      TEXT    NOT NULL,
	value       REAL    NOT NULL,
	PRIMARY KEY (hand_bucket, deck_bucket, can_discard, opp_bucket, action)
);`

// SQLiteStore persists snapshots in a SQLite database: one row per learned
// (state, action) value plus a key/value meta table for the scalars. Each
// Save replaces the whole table in a single transaction.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and ensures
// the schema exists.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("qstore: creating database directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("qstore: opening %s: %w", path, err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("qstore: creating schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load() (*Snapshot, error) {
	version, err := s.metaInt("version")
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("qstore: reading snapshot version: %w", err)
	}
	if version > SchemaVersion {
		return nil, fmt.Errorf("qstore: database written by newer format version %d (supported: %d)", version, SchemaVersion)
	}

	snap := &Snapshot{Version: version}
	if snap.Epsilon, err = s.metaFloat("epsilon"); err != nil {
		return nil, fmt.Errorf("qstore: reading epsilon: %w", err)
	}
	if snap.ActionCount, err = s.metaInt("action_count"); err != nil {
		return nil, fmt.Errorf("qstore: reading action_count: %w", err)
	}
	if snap.ExplorationCount, err = s.metaInt("exploration_count"); err != nil {
		return nil, fmt.Errorf("qstore: reading exploration_count: %w", err)
	}
	if raw, err := s.metaString("saved_at"); err == nil {
		snap.SavedAt, _ = time.Parse(time.RFC3339, raw)
	}

	rows, err := s.db.Query(`SELECT hand_bucket, deck_bucket, can_discard, opp_bucket, action, value FROM qvalues`)
	if err != nil {
		return nil, fmt.Errorf("qstore: reading qvalues: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e Entry
		var canDiscard int
		if err := rows.Scan(&e.HandBucket, &e.DeckBucket, &canDiscard, &e.OppBucket, &e.Action, &e.Value); err != nil {
			return nil, fmt.Errorf("qstore: scanning qvalue row: %w", err)
		}
		e.CanDiscard = canDiscard != 0
		snap.Entries = append(snap.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("qstore: iterating qvalues: %w", err)
	}
	return snap, nil
}

func (s *SQLiteStore) Save(snap *Snapshot) error {
	snap.Version = SchemaVersion
	snap.SavedAt = time.Now().UTC()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("qstore: beginning save transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM qvalues`); err != nil {
		return fmt.Errorf("qstore: clearing qvalues: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO qvalues (hand_bucket, deck_bucket, can_discard, opp_bucket, action, value) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("qstore: preparing insert: %w", err)
	}
	defer stmt.Close()
	for _, e := range snap.Entries {
		canDiscard := 0
		if e.CanDiscard {
			canDiscard = 1
		}
		if _, err := stmt.Exec(e.HandBucket, e.DeckBucket, canDiscard, e.OppBucket, e.Action, e.Value); err != nil {
			return fmt.Errorf("qstore: inserting qvalue: %w", err)
		}
	}

	meta := map[string]string{
		"version":           strconv.Itoa(snap.Version),
		"epsilon":           strconv.FormatFloat(snap.Epsilon, 'g', -1, 64),
		"action_count":      strconv.Itoa(snap.ActionCount),
		"exploration_count": strconv.Itoa(snap.ExplorationCount),
		"saved_at":          snap.SavedAt.Format(time.RFC3339),
	}
	for key, value := range meta {
		if _, err := tx.Exec(`INSERT INTO meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value); err != nil {
			return fmt.Errorf("qstore: writing meta %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("qstore: committing save: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) metaString(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM meta WHERE key = ?`, key).Scan(&value)
	return value, err
}

func (s *SQLiteStore) metaInt(key string) (int, error) {
	raw, err := s.metaString(key)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(raw)
}

func (s *SQLiteStore) metaFloat(key string) (float64, error) {
	raw, err := s.metaString(key)
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(raw, 64)
}
