// Package store persists yearly usage snapshots in SQLite so that repeated
// runs of the tracker can report progress between them.
package store

import "time"

// Snapshot is one persisted capture of a yearly summary.
type Snapshot struct {
	ID            int64     `json:"id"`
	TakenAt       time.Time `json:"taken_at"`
	Year          int       `json:"year"`
	Version       string    `json:"version"`
	Sessions      int       `json:"sessions"`
	Messages      int       `json:"messages"`
	Prompts       int       `json:"prompts"`
	Projects      int       `json:"projects"`
	TotalTokens   int64     `json:"total_tokens"`
	CostUSD       float64   `json:"cost_usd"`
	MaxStreak     int       `json:"max_streak"`
	CurrentStreak int       `json:"current_streak"`
}

// Delta is the change in one metric between two snapshots of the same year.
type Delta struct {
	Name     string  `json:"name"`
	Previous float64 `json:"previous"`
	Current  float64 `json:"current"`
	Change   float64 `json:"change"`
}

// Diff compares a snapshot against an earlier one.
type Diff struct {
	Previous *Snapshot `json:"previous"`
	Current  *Snapshot `json:"current"`
	Deltas   []Delta   `json:"deltas"`
}

// ComputeDiff builds the metric-by-metric comparison between prev and cur.
// Metrics with no change are omitted.
func ComputeDiff(prev, cur *Snapshot) *Diff {
	diff := &Diff{Previous: prev, Current: cur}
	pairs := []struct {
		name       string
		prevV, cur float64
	}{
		{"sessions", float64(prev.Sessions), float64(cur.Sessions)},
		{"messages", float64(prev.Messages), float64(cur.Messages)},
		{"prompts", float64(prev.Prompts), float64(cur.Prompts)},
		{"projects", float64(prev.Projects), float64(cur.Projects)},
		{"total_tokens", float64(prev.TotalTokens), float64(cur.TotalTokens)},
		{"cost_usd", prev.CostUSD, cur.CostUSD},
		{"max_streak", float64(prev.MaxStreak), float64(cur.MaxStreak)},
		{"current_streak", float64(prev.CurrentStreak), float64(cur.CurrentStreak)},
	}
	for _, p := range pairs {
		if p.prevV == p.cur {
			continue
		}
		diff.Deltas = append(diff.Deltas, Delta{
			Name:     p.name,
			Previous: p.prevV,
			Current:  p.cur,
			Change:   p.cur - p.prevV,
		})
	}
	return diff
}
