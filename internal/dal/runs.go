package dal

import (
	"fmt"
	"time"
)

// RunRecord is one run_history row: an append-only log entry for a finished
// session.
type RunRecord struct {
	RunID       int64   `db:"run_id"`
	PlayerID    int64   `db:"player_id"`
	Score       int     `db:"score"`
	MoneyEarned int     `db:"money_earned"`
	Missed      int     `db:"missed"`
	DurationSec float64 `db:"duration_sec"`
	RunDate     string  `db:"run_date"`
}

// Date returns the parsed run timestamp.
func (r RunRecord) Date() time.Time {
	return parseTime(r.RunDate)
}

// LeaderboardEntry is a run joined with the owning profile's display name.
type LeaderboardEntry struct {
	RunRecord
	DisplayName string `db:"display_name"`
}

// RecordRun appends one run_history row. It never fails silently: a bad
// argument is ErrValidation, a storage failure is ErrPersistenceUnavailable.
// Rows are never mutated after insert.
func (d *DAL) RecordRun(playerID int64, score, moneyEarned, missed int, durationSec float64) (int64, error) {
	switch {
	case score < 0:
		return 0, fmt.Errorf("%w: negative score %d", ErrValidation, score)
	case moneyEarned < 0:
		return 0, fmt.Errorf("%w: negative money %d", ErrValidation, moneyEarned)
	case missed < 0:
		return 0, fmt.Errorf("%w: negative missed count %d", ErrValidation, missed)
	case durationSec < 0:
		return 0, fmt.Errorf("%w: negative duration %f", ErrValidation, durationSec)
	}

	res, err := d.store.DB().Exec(`
		INSERT INTO run_history (player_id, score, money_earned, missed, duration_sec)
		VALUES (?, ?, ?, ?, ?)`,
		playerID, score, moneyEarned, missed, durationSec)
	if err != nil {
		return 0, fmt.Errorf("%w: record run: %v", ErrPersistenceUnavailable, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: record run: %v", ErrPersistenceUnavailable, err)
	}
	return id, nil
}

// RecentRuns returns the player's most recent runs, newest first.
func (d *DAL) RecentRuns(playerID int64, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 5
	}
	var runs []RunRecord
	err := d.store.DB().Select(&runs, `
		SELECT run_id, player_id, score, money_earned, missed, duration_sec, run_date
		FROM run_history
		WHERE player_id = ?
		ORDER BY run_date DESC, run_id DESC
		LIMIT ?`, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: recent runs: %v", ErrPersistenceUnavailable, err)
	}
	return runs, nil
}

// Leaderboard returns the highest-scoring runs across all profiles.
func (d *DAL) Leaderboard(limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	var entries []LeaderboardEntry
	err := d.store.DB().Select(&entries, `
		SELECT rh.run_id, rh.player_id, rh.score, rh.money_earned, rh.missed,
		       rh.duration_sec, rh.run_date, pp.display_name
		FROM run_history rh
		JOIN player_profile pp ON rh.player_id = pp.player_id
		ORDER BY rh.score DESC, rh.run_id ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: leaderboard: %v", ErrPersistenceUnavailable, err)
	}
	return entries, nil
}
