package storage

import (
	"fmt"
	"sort"
)

// MigrationError signals that a migration unit's UP script failed. It is the
// only error kind that should abort startup.
type MigrationError struct {
	Version int
	Name    string
	Err     error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("storage: migration %d (%s) failed: %v", e.Version, e.Name, e.Err)
}

func (e *MigrationError) Unwrap() error {
	return e.Err
}

// migration is one forward-only schema step. down is advisory: it is
// exercised by tooling and tests, never by the running game.
type migration struct {
	version int
	name    string
	up      string
	down    string
}

var migrations = []migration{
	{
		version: 1,
		name:    "initial_schema",
		up: `
			CREATE TABLE player_profile (
				player_id INTEGER PRIMARY KEY,
				display_name TEXT NOT NULL DEFAULT 'Player',
				high_score INTEGER NOT NULL DEFAULT 0,
				money INTEGER NOT NULL DEFAULT 0,
				successful_deliveries INTEGER NOT NULL DEFAULT 0
			);

			-- Singleton: the CHECK pins the row id so there is exactly one
			-- global settings row.
			CREATE TABLE player_settings (
				id INTEGER PRIMARY KEY CHECK (id = 1),
				starting_money INTEGER NOT NULL DEFAULT 0,
				max_stock INTEGER NOT NULL DEFAULT 10,
				tutorial_mode INTEGER NOT NULL DEFAULT 1
			);

			CREATE TABLE starting_stock (
				food TEXT PRIMARY KEY,
				qty INTEGER NOT NULL DEFAULT 0
			);

			CREATE TABLE upgrades_owned (
				player_id INTEGER NOT NULL,
				upg_id TEXT NOT NULL,
				acquired_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				PRIMARY KEY (player_id, upg_id),
				FOREIGN KEY (player_id) REFERENCES player_profile(player_id)
			);

			CREATE TABLE run_history (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				player_id INTEGER NOT NULL,
				score INTEGER NOT NULL,
				money_earned INTEGER NOT NULL,
				missed INTEGER NOT NULL,
				duration_sec REAL NOT NULL,
				run_date DATETIME DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (player_id) REFERENCES player_profile(player_id)
			);
			CREATE INDEX idx_run_history_player ON run_history(player_id, run_date DESC);
			CREATE INDEX idx_run_history_score ON run_history(score DESC);

			INSERT INTO player_profile (player_id, display_name) VALUES (1, 'Player');
			INSERT INTO player_settings (id, starting_money, max_stock, tutorial_mode)
				VALUES (1, 0, 10, 1);
			INSERT INTO starting_stock (food, qty) VALUES
				('Tropical Pizza', 5),
				('Ska Smoothie', 5),
				('Island Ice Cream', 5),
				('Rasta Rice Pudding', 3);
		`,
		down: `
			DROP TABLE run_history;
			DROP TABLE upgrades_owned;
			DROP TABLE starting_stock;
			DROP TABLE player_settings;
			DROP TABLE player_profile;
		`,
	},
	{
		version: 2,
		name:    "add_tutorial_complete",
		up: `
			ALTER TABLE player_profile ADD COLUMN tutorial_complete INTEGER NOT NULL DEFAULT 0;
			CREATE INDEX idx_player_profile_tutorial ON player_profile(tutorial_complete);
		`,
		down: `
			DROP INDEX idx_player_profile_tutorial;
			ALTER TABLE player_profile DROP COLUMN tutorial_complete;
		`,
	},
	{
		version: 3,
		name:    "save_games",
		up: `
			CREATE TABLE save_games (
				slot_id INTEGER PRIMARY KEY AUTOINCREMENT,
				player_id INTEGER NOT NULL,
				slot_name TEXT NOT NULL DEFAULT '',
				state_json TEXT NOT NULL,
				save_date DATETIME DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (player_id) REFERENCES player_profile(player_id)
			);
			CREATE INDEX idx_save_games_recent ON save_games(player_id, save_date DESC);
		`,
		down: `
			DROP TABLE save_games;
		`,
	},
}

// ApplyPendingMigrations applies all migrations not yet recorded as applied,
// in strictly ascending version order. Each unit runs inside its own
// transaction: a failure rolls that unit back, leaves earlier migrations
// untouched, and is reported as *MigrationError.
func (s *Store) ApplyPendingMigrations() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return &MigrationError{Version: 0, Name: "schema_migrations", Err: err}
	}

	applied := make(map[int]bool)
	var versions []int
	if err := s.db.Select(&versions, `SELECT version FROM schema_migrations`); err != nil {
		return &MigrationError{Version: 0, Name: "schema_migrations", Err: err}
	}
	for _, v := range versions {
		applied[v] = true
	}

	pending := make([]migration, 0, len(migrations))
	for _, m := range migrations {
		if !applied[m.version] {
			pending = append(pending, m)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].version < pending[j].version })

	for _, m := range pending {
		if err := s.applyOne(m); err != nil {
			return err
		}
		s.logger.Debug("applied migration", "version", m.version, "name", m.name)
	}

	return nil
}

func (s *Store) applyOne(m migration) error {
	tx, err := s.db.Begin()
	if err != nil {
		return &MigrationError{Version: m.version, Name: m.name, Err: err}
	}

	if _, err := tx.Exec(m.up); err != nil {
		tx.Rollback()
		return &MigrationError{Version: m.version, Name: m.name, Err: err}
	}
	if _, err := tx.Exec(
		`INSERT INTO schema_migrations (version, name) VALUES (?, ?)`,
		m.version, m.name,
	); err != nil {
		tx.Rollback()
		return &MigrationError{Version: m.version, Name: m.name, Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &MigrationError{Version: m.version, Name: m.name, Err: err}
	}
	return nil
}

// RevertLastMigration runs the DOWN script of the most recently applied
// migration and removes its record. Tooling and tests only; the game never
// rolls the schema back.
func (s *Store) RevertLastMigration() error {
	version, err := s.SchemaVersion()
	if err != nil {
		return err
	}
	if version == 0 {
		return fmt.Errorf("storage: no migrations to revert")
	}

	var target migration
	found := false
	for _, m := range migrations {
		if m.version == version {
			target = m
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("storage: unknown migration version %d", version)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return &MigrationError{Version: version, Name: target.name, Err: err}
	}
	if _, err := tx.Exec(target.down); err != nil {
		tx.Rollback()
		return &MigrationError{Version: version, Name: target.name, Err: err}
	}
	if _, err := tx.Exec(`DELETE FROM schema_migrations WHERE version = ?`, version); err != nil {
		tx.Rollback()
		return &MigrationError{Version: version, Name: target.name, Err: err}
	}
	if err := tx.Commit(); err != nil {
		return &MigrationError{Version: version, Name: target.name, Err: err}
	}
	return nil
}
