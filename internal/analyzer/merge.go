package analyzer

import (
	"time"

	"github.com/blackwell-systems/wrapped/internal/claude"
	"github.com/blackwell-systems/wrapped/internal/collector"
)

// MergedDataset is the logical union of one local dataset and zero or more
// remote datasets. It is built fresh by Merge and never mutated afterwards.
type MergedDataset struct {
	Cache *claude.StatsCache
	// History is the union of all sources' entries. Duplicate-looking
	// entries across hosts are kept: the same session prompted from two
	// machines is historically valid and additive.
	History  []claude.HistoryEntry
	Projects []string
	// OldestTimestamp is the earliest transcript timestamp recovered from
	// any source.
	OldestTimestamp time.Time
}

// Merge folds the local dataset and each remote dataset into one consistent
// merged representation. Inputs are never mutated. The fold is
// order-independent apart from "first" tie-breaks, which always resolve to
// the minimum value seen across local-then-remote iteration.
func Merge(local *collector.LocalDataset, remotes []collector.RemoteDataset) MergedDataset {
	out := MergedDataset{
		History:         append([]claude.HistoryEntry(nil), local.History...),
		OldestTimestamp: local.OldestTimestamp,
	}

	seen := make(map[string]bool)
	for _, name := range local.Projects {
		if !seen[name] {
			seen[name] = true
			out.Projects = append(out.Projects, name)
		}
	}

	if len(remotes) == 0 {
		// No remote input: the local cache passes through untouched.
		out.Cache = local.Cache
		out.Cache = applyOldest(out.Cache, out.OldestTimestamp)
		return out
	}

	// Any remote data forces a synthetic cache rebuilt from scratch, so
	// downstream always consumes a single consistent representation.
	cache := claude.MergeCaches(nil, local.Cache)
	for _, r := range remotes {
		cache = claude.MergeCaches(cache, r.Cache)
		out.History = append(out.History, r.History...)
		for _, name := range r.Projects {
			if !seen[name] {
				seen[name] = true
				out.Projects = append(out.Projects, name)
			}
		}
		if !r.OldestTimestamp.IsZero() &&
			(out.OldestTimestamp.IsZero() || r.OldestTimestamp.Before(out.OldestTimestamp)) {
			out.OldestTimestamp = r.OldestTimestamp
		}
	}

	out.Cache = applyOldest(cache, out.OldestTimestamp)
	return out
}

// applyOldest resolves the first-session date: the cache's own field
// competes with any earlier raw-transcript timestamp, and the overall
// minimum wins. The cache field alone can be misleadingly recent when the
// cache was rebuilt after old sessions were pruned from it.
func applyOldest(cache *claude.StatsCache, oldest time.Time) *claude.StatsCache {
	if cache == nil || oldest.IsZero() {
		return cache
	}
	date := oldest.Format("2006-01-02")
	if cache.FirstSessionDate != "" && cache.FirstSessionDate <= date {
		return cache
	}
	updated := *cache
	updated.FirstSessionDate = date
	return &updated
}
