package dal

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SaveGame is one save_games slot: a named snapshot of world/economy state.
type SaveGame struct {
	SlotID    int64  `db:"slot_id"`
	PlayerID  int64  `db:"player_id"`
	SlotName  string `db:"slot_name"`
	StateJSON string `db:"state_json"`
	SaveDate  string `db:"save_date"`
}

// Date returns the parsed save timestamp.
func (s SaveGame) Date() time.Time {
	return parseTime(s.SaveDate)
}

// SaveSlot writes a new save slot and returns its ID.
func (d *DAL) SaveSlot(playerID int64, name, stateJSON string) (int64, error) {
	if stateJSON == "" {
		return 0, fmt.Errorf("%w: empty save state", ErrValidation)
	}

	res, err := d.store.DB().Exec(`
		INSERT INTO save_games (player_id, slot_name, state_json)
		VALUES (?, ?, ?)`, playerID, name, stateJSON)
	if err != nil {
		return 0, fmt.Errorf("%w: save slot: %v", ErrPersistenceUnavailable, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: save slot: %v", ErrPersistenceUnavailable, err)
	}
	return id, nil
}

// LatestSave returns the most recent save slot for "Continue", or nil if the
// player has never saved.
func (d *DAL) LatestSave(playerID int64) (*SaveGame, error) {
	var s SaveGame
	err := d.store.DB().Get(&s, `
		SELECT slot_id, player_id, slot_name, state_json, save_date
		FROM save_games
		WHERE player_id = ?
		ORDER BY save_date DESC, slot_id DESC
		LIMIT 1`, playerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: latest save: %v", ErrPersistenceUnavailable, err)
	}
	return &s, nil
}

// GetSave returns a single save slot by id, or nil when the slot does not
// exist or belongs to another player.
func (d *DAL) GetSave(playerID, slotID int64) (*SaveGame, error) {
	var s SaveGame
	err := d.store.DB().Get(&s, `
		SELECT slot_id, player_id, slot_name, state_json, save_date
		FROM save_games
		WHERE player_id = ? AND slot_id = ?`, playerID, slotID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get save: %v", ErrPersistenceUnavailable, err)
	}
	return &s, nil
}

// ListSaves returns the most recent save slots for the "Load" menu, newest
// first.
func (d *DAL) ListSaves(playerID int64, limit int) ([]SaveGame, error) {
	if limit <= 0 {
		limit = 10
	}
	var saves []SaveGame
	err := d.store.DB().Select(&saves, `
		SELECT slot_id, player_id, slot_name, state_json, save_date
		FROM save_games
		WHERE player_id = ?
		ORDER BY save_date DESC, slot_id DESC
		LIMIT ?`, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list saves: %v", ErrPersistenceUnavailable, err)
	}
	return saves, nil
}

// OwnedUpgrades returns the IDs of upgrades the player has purchased.
func (d *DAL) OwnedUpgrades(playerID int64) ([]string, error) {
	var ids []string
	err := d.store.DB().Select(&ids, `
		SELECT upg_id FROM upgrades_owned WHERE player_id = ? ORDER BY acquired_at`,
		playerID)
	if err != nil {
		return nil, fmt.Errorf("%w: owned upgrades: %v", ErrPersistenceUnavailable, err)
	}
	return ids, nil
}

// OwnUpgrade records an upgrade purchase. Returns false without error when
// the upgrade was already owned.
func (d *DAL) OwnUpgrade(playerID int64, upgradeID string) (bool, error) {
	if upgradeID == "" {
		return false, fmt.Errorf("%w: empty upgrade id", ErrValidation)
	}

	res, err := d.store.DB().Exec(`
		INSERT OR IGNORE INTO upgrades_owned (player_id, upg_id) VALUES (?, ?)`,
		playerID, upgradeID)
	if err != nil {
		return false, fmt.Errorf("%w: own upgrade: %v", ErrPersistenceUnavailable, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: own upgrade: %v", ErrPersistenceUnavailable, err)
	}
	return n > 0, nil
}
