// Package storage provides SQLite-based persistence for save slots.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/veilgate/duskrealm/internal/application/sim"
	"github.com/veilgate/duskrealm/internal/domain/entity"
)

// Store manages the SQLite database connection for save persistence.
type Store struct {
	db *sql.DB
}

// SaveEntry is a named save slot. The world layout itself is not
// stored; Seed plus the dead-enemy list is enough to reconstruct it.
type SaveEntry struct {
	ID        int64
	Slot      string
	World     string
	Seed      int64
	Realm     int
	PlayerX   float64
	PlayerY   float64
	Health    int
	Gold      int
	UpdatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS saves (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			slot TEXT NOT NULL UNIQUE,
			world TEXT NOT NULL,
			seed INTEGER NOT NULL,
			realm INTEGER NOT NULL DEFAULT 0,
			player_x REAL NOT NULL,
			player_y REAL NOT NULL,
			health INTEGER NOT NULL,
			gold INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS save_enemies (
			save_id INTEGER NOT NULL REFERENCES saves(id) ON DELETE CASCADE,
			enemy_id INTEGER NOT NULL,
			PRIMARY KEY (save_id, enemy_id)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save writes a snapshot into the named slot, replacing any previous
// save in that slot.
func (s *Store) Save(slot, world string, snap sim.Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Clear the children explicitly: the cascade only fires when the
	// foreign_keys pragma is on, which the driver does not default to.
	if _, err := tx.Exec(
		"DELETE FROM save_enemies WHERE save_id IN (SELECT id FROM saves WHERE slot = ?)", slot,
	); err != nil {
		return fmt.Errorf("storage: cannot clear slot: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM saves WHERE slot = ?", slot); err != nil {
		return fmt.Errorf("storage: cannot clear slot: %w", err)
	}

	res, err := tx.Exec(
		`INSERT INTO saves (slot, world, seed, realm, player_x, player_y, health, gold, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		slot, world, snap.Seed, int(snap.Realm), snap.PlayerX, snap.PlayerY, snap.Health, snap.Gold,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save slot: %w", err)
	}
	saveID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	for _, id := range snap.DeadEnemies {
		if _, err := tx.Exec(
			"INSERT INTO save_enemies (save_id, enemy_id) VALUES (?, ?)",
			saveID, int64(id),
		); err != nil {
			return fmt.Errorf("storage: cannot save enemy state: %w", err)
		}
	}

	return tx.Commit()
}

// Load reads the named slot. Returns sql.ErrNoRows wrapped when the
// slot does not exist.
func (s *Store) Load(slot string) (sim.Snapshot, string, error) {
	var snap sim.Snapshot
	var world string
	var saveID int64
	var realm int

	err := s.db.QueryRow(
		`SELECT id, world, seed, realm, player_x, player_y, health, gold
		 FROM saves WHERE slot = ?`,
		slot,
	).Scan(&saveID, &world, &snap.Seed, &realm, &snap.PlayerX, &snap.PlayerY, &snap.Health, &snap.Gold)
	if err != nil {
		return sim.Snapshot{}, "", fmt.Errorf("storage: cannot load slot %q: %w", slot, err)
	}
	snap.Realm = entity.Realm(realm)

	rows, err := s.db.Query(
		"SELECT enemy_id FROM save_enemies WHERE save_id = ? ORDER BY enemy_id",
		saveID,
	)
	if err != nil {
		return sim.Snapshot{}, "", fmt.Errorf("storage: cannot load enemy state: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return sim.Snapshot{}, "", fmt.Errorf("storage: cannot scan enemy row: %w", err)
		}
		snap.DeadEnemies = append(snap.DeadEnemies, entity.EntityID(id))
	}
	if err := rows.Err(); err != nil {
		return sim.Snapshot{}, "", fmt.Errorf("storage: row iteration error: %w", err)
	}

	return snap, world, nil
}

// List returns all save slots, most recent first.
func (s *Store) List() ([]SaveEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, slot, world, seed, realm, player_x, player_y, health, gold, updated_at
		 FROM saves
		 ORDER BY updated_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query saves: %w", err)
	}
	defer rows.Close()

	var entries []SaveEntry
	for rows.Next() {
		var e SaveEntry
		var updatedAt any
		if err := rows.Scan(&e.ID, &e.Slot, &e.World, &e.Seed, &e.Realm,
			&e.PlayerX, &e.PlayerY, &e.Health, &e.Gold, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		// Parse the datetime - handle both time.Time and string
		switch v := updatedAt.(type) {
		case time.Time:
			e.UpdatedAt = v
		case string:
			parsed, err := time.Parse("2006-01-02 15:04:05", v)
			if err != nil {
				log.Warn("save slot has unparseable timestamp", "slot", e.Slot, "updated_at", v)
			} else {
				e.UpdatedAt = parsed
			}
		default:
			log.Warn("save slot has unexpected timestamp type", "slot", e.Slot, "updated_at", updatedAt)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// Delete removes the named slot. Deleting a missing slot is not an
// error.
func (s *Store) Delete(slot string) error {
	if _, err := s.db.Exec(
		"DELETE FROM save_enemies WHERE save_id IN (SELECT id FROM saves WHERE slot = ?)", slot,
	); err != nil {
		return fmt.Errorf("storage: cannot delete slot: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM saves WHERE slot = ?", slot); err != nil {
		return fmt.Errorf("storage: cannot delete slot: %w", err)
	}
	return nil
}
