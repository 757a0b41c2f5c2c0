package store

import (
	"database/sql"
	"time"
)

// InsertSnapshot inserts a new snapshot and returns its ID. TakenAt defaults
// to the current time when zero.
func (db *DB) InsertSnapshot(s *Snapshot) (int64, error) {
	takenAt := s.TakenAt
	if takenAt.IsZero() {
		takenAt = time.Now().UTC()
	}
	result, err := db.conn.Exec(
		`INSERT INTO snapshots
		(taken_at, year, version, sessions, messages, prompts, projects,
		 total_tokens, cost_usd, max_streak, current_streak)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		takenAt.Format(time.RFC3339), s.Year, s.Version,
		s.Sessions, s.Messages, s.Prompts, s.Projects,
		s.TotalTokens, s.CostUSD, s.MaxStreak, s.CurrentStreak,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// LatestSnapshot returns the most recent snapshot for a year, or nil if none
// exist.
func (db *DB) LatestSnapshot(year int) (*Snapshot, error) {
	row := db.conn.QueryRow(
		snapshotColumns+" WHERE year = ? ORDER BY id DESC LIMIT 1", year,
	)
	return scanSnapshot(row)
}

// SnapshotN returns the Nth most recent snapshot for a year (1 = latest,
// 2 = previous, and so on), or nil when there are fewer than n.
func (db *DB) SnapshotN(year, n int) (*Snapshot, error) {
	row := db.conn.QueryRow(
		snapshotColumns+" WHERE year = ? ORDER BY id DESC LIMIT 1 OFFSET ?",
		year, n-1,
	)
	return scanSnapshot(row)
}

// ListSnapshots returns all snapshots for a year, oldest first.
func (db *DB) ListSnapshots(year int) ([]Snapshot, error) {
	rows, err := db.conn.Query(snapshotColumns+" WHERE year = ? ORDER BY id ASC", year)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var snaps []Snapshot
	for rows.Next() {
		s, err := scanSnapshotRows(rows)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, *s)
	}
	return snaps, rows.Err()
}

const snapshotColumns = `SELECT id, taken_at, year, version, sessions, messages,
	prompts, projects, total_tokens, cost_usd, max_streak, current_streak
	FROM snapshots`

func scanSnapshot(row *sql.Row) (*Snapshot, error) {
	var s Snapshot
	var takenAt string
	err := row.Scan(&s.ID, &takenAt, &s.Year, &s.Version,
		&s.Sessions, &s.Messages, &s.Prompts, &s.Projects,
		&s.TotalTokens, &s.CostUSD, &s.MaxStreak, &s.CurrentStreak)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.TakenAt, _ = time.Parse(time.RFC3339, takenAt)
	return &s, nil
}

func scanSnapshotRows(rows *sql.Rows) (*Snapshot, error) {
	var s Snapshot
	var takenAt string
	if err := rows.Scan(&s.ID, &takenAt, &s.Year, &s.Version,
		&s.Sessions, &s.Messages, &s.Prompts, &s.Projects,
		&s.TotalTokens, &s.CostUSD, &s.MaxStreak, &s.CurrentStreak); err != nil {
		return nil, err
	}
	s.TakenAt, _ = time.Parse(time.RFC3339, takenAt)
	return &s, nil
}
