package collector

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/blackwell-systems/wrapped/internal/claude"
	"golang.org/x/sync/errgroup"
)

// ErrNoDataDir is returned when none of the candidate storage roots exists.
var ErrNoDataDir = errors.New("no data directory found")

// CollectLocal reads the cache, history, project names, and oldest transcript
// timestamp from every discoverable storage root. The four artifact reads run
// concurrently; none mutates shared state until its goroutine completes.
// Caches found in multiple roots are additively merged. Year filters history
// to the given calendar year (0 disables the filter).
func CollectLocal(ctx context.Context, candidates []string, year int) (*LocalDataset, error) {
	roots := claude.DataRoots(candidates)
	if len(roots) == 0 {
		return nil, ErrNoDataDir
	}

	ds := &LocalDataset{CacheState: SourceMissing}
	var mu sync.Mutex

	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		cache, state := readCaches(roots)
		mu.Lock()
		ds.Cache, ds.CacheState = cache, state
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		history := readHistories(roots, year)
		mu.Lock()
		ds.History = history
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		// Project names come from the full, unfiltered history so the
		// project-name set covers everything the user worked on.
		var all []claude.HistoryEntry
		for _, root := range roots {
			entries, err := claude.ParseHistory(root)
			if err != nil {
				continue
			}
			all = append(all, entries...)
		}
		names := claude.ProjectNames(all)
		mu.Lock()
		ds.Projects = names
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		oldest := oldestAcrossRoots(roots)
		mu.Lock()
		ds.OldestTimestamp = oldest
		mu.Unlock()
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ds, nil
}

// readCaches parses and additively merges the stats cache from every root.
func readCaches(roots []string) (*claude.StatsCache, SourceState) {
	var merged *claude.StatsCache
	state := SourceMissing
	for _, root := range roots {
		cache, err := claude.ParseStatsCache(root)
		if err != nil {
			// Unparseable cache in one root must not discard the others.
			if state == SourceMissing {
				state = SourceInvalid
			}
			continue
		}
		if cache == nil {
			continue
		}
		state = SourcePresent
		merged = claude.MergeCaches(merged, cache)
	}
	return merged, state
}

// readHistories concatenates history entries across roots, year-filtered.
// Unreadable files yield empty results rather than errors.
func readHistories(roots []string, year int) []claude.HistoryEntry {
	var all []claude.HistoryEntry
	for _, root := range roots {
		entries, err := claude.ParseHistory(root)
		if err != nil {
			continue
		}
		all = append(all, claude.FilterHistoryYear(entries, year)...)
	}
	return all
}

// oldestAcrossRoots scans transcripts in every root for the earliest
// recorded timestamp.
func oldestAcrossRoots(roots []string) time.Time {
	var oldest time.Time
	for _, root := range roots {
		ts, err := claude.OldestTranscriptTimestamp(root)
		if err != nil || ts.IsZero() {
			continue
		}
		if oldest.IsZero() || ts.Before(oldest) {
			oldest = ts
		}
	}
	return oldest
}
