// Package dal provides typed, validated access to the persistence store.
// It is the only component permitted to issue storage queries. All statements
// are parameterized; caller-controlled values (display names, food names)
// never reach SQL through interpolation.
package dal

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tropigo/beachbites/internal/storage"
)

// DefaultPlayerID identifies the single local profile seeded at migration
// time. All operations are keyed by player_id so a multi-profile build only
// needs to thread a different ID through.
const DefaultPlayerID int64 = 1

const timeLayout = "2006-01-02 15:04:05"

// Profile is one player_profile row.
type Profile struct {
	PlayerID             int64  `db:"player_id"`
	DisplayName          string `db:"display_name"`
	HighScore            int    `db:"high_score"`
	Money                int    `db:"money"`
	SuccessfulDeliveries int    `db:"successful_deliveries"`
	TutorialComplete     bool   `db:"tutorial_complete"`
}

// Settings is the singleton player_settings row.
type Settings struct {
	ID            int64 `db:"id"`
	StartingMoney int   `db:"starting_money"`
	MaxStock      int   `db:"max_stock"`
	TutorialMode  bool  `db:"tutorial_mode"`
}

// DefaultSettings are returned when the settings row cannot be read.
func DefaultSettings() Settings {
	return Settings{ID: 1, StartingMoney: 0, MaxStock: 10, TutorialMode: true}
}

// DAL wraps the store with typed operations.
type DAL struct {
	store  *storage.Store
	logger *log.Logger

	mu            sync.Mutex
	missingLogged map[int64]bool
}

// New creates a DAL over an opened store.
func New(store *storage.Store, logger *log.Logger) *DAL {
	if logger == nil {
		logger = log.New(os.Stderr)
	}
	return &DAL{
		store:         store,
		logger:        logger,
		missingLogged: make(map[int64]bool),
	}
}

// Live reports whether persistence is file-backed. When false, callers should
// warn the player that progress will not survive a restart.
func (d *DAL) Live() bool {
	return d.store.Live()
}

// SchemaVersion exposes the store's applied migration version for
// diagnostics.
func (d *DAL) SchemaVersion() (int, error) {
	return d.store.SchemaVersion()
}

// GetProfile returns the profile row for a player.
func (d *DAL) GetProfile(playerID int64) (Profile, error) {
	var p Profile
	err := d.store.DB().Get(&p, `
		SELECT player_id, display_name, high_score, money,
		       successful_deliveries, tutorial_complete
		FROM player_profile WHERE player_id = ?`, playerID)
	if errors.Is(err, sql.ErrNoRows) {
		d.logMissingOnce(playerID)
		return Profile{}, fmt.Errorf("%w: player %d", ErrMissingProfile, playerID)
	}
	if err != nil {
		return Profile{}, fmt.Errorf("%w: get profile: %v", ErrPersistenceUnavailable, err)
	}
	return p, nil
}

// IsTutorialComplete reports whether the player has graduated from the
// tutorial. A missing profile or a storage failure returns false (safer
// default: re-teach rather than silently skip) and never raises into the
// frame loop.
func (d *DAL) IsTutorialComplete(playerID int64) bool {
	var complete bool
	err := d.store.DB().Get(&complete,
		`SELECT tutorial_complete FROM player_profile WHERE player_id = ?`, playerID)
	if errors.Is(err, sql.ErrNoRows) {
		d.logMissingOnce(playerID)
		return false
	}
	if err != nil {
		d.logger.Warn("cannot read tutorial completion, assuming incomplete",
			"player", playerID, "error", err)
		return false
	}
	return complete
}

// MarkTutorialComplete records tutorial graduation. Idempotent: calling it
// when already complete is a no-op success. Nothing ever sets the flag back
// to false.
func (d *DAL) MarkTutorialComplete(playerID int64) error {
	res, err := d.store.DB().Exec(
		`UPDATE player_profile SET tutorial_complete = 1 WHERE player_id = ?`, playerID)
	if err != nil {
		return fmt.Errorf("%w: mark tutorial complete: %v", ErrPersistenceUnavailable, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: mark tutorial complete: %v", ErrPersistenceUnavailable, err)
	}
	if n == 0 {
		d.logMissingOnce(playerID)
		return fmt.Errorf("%w: player %d", ErrMissingProfile, playerID)
	}
	return nil
}

// UpdateHighScore applies the max-invariant server-side: the stored value
// only moves up, and the comparison happens inside the statement so a stale
// read on the caller's side cannot lower it. Returns the stored high score
// after the call.
func (d *DAL) UpdateHighScore(playerID int64, candidate int) (int, error) {
	if candidate < 0 {
		return 0, fmt.Errorf("%w: negative score %d", ErrValidation, candidate)
	}

	_, err := d.store.DB().Exec(
		`UPDATE player_profile SET high_score = ? WHERE player_id = ? AND high_score < ?`,
		candidate, playerID, candidate)
	if err != nil {
		return 0, fmt.Errorf("%w: update high score: %v", ErrPersistenceUnavailable, err)
	}

	var stored int
	err = d.store.DB().Get(&stored,
		`SELECT high_score FROM player_profile WHERE player_id = ?`, playerID)
	if errors.Is(err, sql.ErrNoRows) {
		d.logMissingOnce(playerID)
		return 0, fmt.Errorf("%w: player %d", ErrMissingProfile, playerID)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: read high score: %v", ErrPersistenceUnavailable, err)
	}
	return stored, nil
}

// Settings returns the global settings singleton, or defaults with a warning
// if the row cannot be read.
func (d *DAL) Settings() Settings {
	var s Settings
	err := d.store.DB().Get(&s, `
		SELECT id, starting_money, max_stock, tutorial_mode
		FROM player_settings WHERE id = 1`)
	if err != nil {
		d.logger.Warn("cannot read player settings, using defaults", "error", err)
		return DefaultSettings()
	}
	return s
}

// StartingStock returns the seeded food-to-quantity mapping.
func (d *DAL) StartingStock() (map[string]int, error) {
	rows, err := d.store.DB().Query(`SELECT food, qty FROM starting_stock`)
	if err != nil {
		return nil, fmt.Errorf("%w: starting stock: %v", ErrPersistenceUnavailable, err)
	}
	defer rows.Close()

	stock := make(map[string]int)
	for rows.Next() {
		var food string
		var qty int
		if err := rows.Scan(&food, &qty); err != nil {
			return nil, fmt.Errorf("%w: starting stock: %v", ErrPersistenceUnavailable, err)
		}
		stock[food] = qty
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: starting stock: %v", ErrPersistenceUnavailable, err)
	}
	return stock, nil
}

// UpdateLifetimeCounters folds a finished session into the profile's
// lifetime money and delivery totals.
func (d *DAL) UpdateLifetimeCounters(playerID int64, money, deliveries int) error {
	if deliveries < 0 {
		return fmt.Errorf("%w: negative deliveries %d", ErrValidation, deliveries)
	}
	res, err := d.store.DB().Exec(`
		UPDATE player_profile
		SET money = ?, successful_deliveries = successful_deliveries + ?
		WHERE player_id = ?`, money, deliveries, playerID)
	if err != nil {
		return fmt.Errorf("%w: update counters: %v", ErrPersistenceUnavailable, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		d.logMissingOnce(playerID)
		return fmt.Errorf("%w: player %d", ErrMissingProfile, playerID)
	}
	return nil
}

// ResetProgress implements "New Game" for a graduated player: run history,
// save slots, and economy are cleared, but tutorial graduation and the high
// score are profile-permanent and survive.
func (d *DAL) ResetProgress(playerID int64) error {
	tx, err := d.store.DB().Begin()
	if err != nil {
		return fmt.Errorf("%w: reset: %v", ErrPersistenceUnavailable, err)
	}

	stmts := []struct {
		query string
		args  []any
	}{
		{`DELETE FROM run_history WHERE player_id = ?`, []any{playerID}},
		{`DELETE FROM save_games WHERE player_id = ?`, []any{playerID}},
		{`DELETE FROM upgrades_owned WHERE player_id = ?`, []any{playerID}},
		{`UPDATE player_profile SET money = (SELECT starting_money FROM player_settings WHERE id = 1),
			successful_deliveries = 0 WHERE player_id = ?`, []any{playerID}},
	}
	for _, s := range stmts {
		if _, err := tx.Exec(s.query, s.args...); err != nil {
			tx.Rollback()
			return fmt.Errorf("%w: reset: %v", ErrPersistenceUnavailable, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: reset: %v", ErrPersistenceUnavailable, err)
	}
	return nil
}

// logMissingOnce reports a missing profile a single time per player; the
// condition is an anomaly worth a log line, not a per-frame flood.
func (d *DAL) logMissingOnce(playerID int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.missingLogged[playerID] {
		return
	}
	d.missingLogged[playerID] = true
	d.logger.Warn("no profile row for player", "player", playerID)
}

// parseTime converts a SQLite CURRENT_TIMESTAMP string to a time.Time.
// Returns the zero time on failure.
func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
