package collector

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/blackwell-systems/wrapped/internal/claude"
	"github.com/blackwell-systems/wrapped/internal/config"
	"golang.org/x/sync/errgroup"
)

// RemoteCollector fetches usage artifacts from configured remote hosts.
// Hosts are processed through a bounded worker pool, one at a time by
// default, to bound concurrent load on the transport; within a host, the
// independent artifact fetches run concurrently.
type RemoteCollector struct {
	runner    Runner
	progress  ProgressFunc
	hostLimit int
}

// NewRemoteCollector returns a collector using the given runner. progress may
// be nil.
func NewRemoteCollector(runner Runner, progress ProgressFunc) *RemoteCollector {
	return &RemoteCollector{runner: runner, progress: progress, hostLimit: 1}
}

// SetHostLimit sets how many hosts may be collected at once. Values below 1
// are coerced to 1. With the default of 1, hosts run strictly in order and
// progress events never interleave.
func (c *RemoteCollector) SetHostLimit(n int) {
	if n < 1 {
		n = 1
	}
	c.hostLimit = n
}

// Collect fetches from every host, preserving input order in the result. A
// host whose fetches all fail is reported through the progress callback and
// skipped; it never fails the batch.
func (c *RemoteCollector) Collect(ctx context.Context, hosts []config.RemoteHost, year int) []RemoteDataset {
	results := make([]*RemoteDataset, len(hosts))

	var g errgroup.Group
	g.SetLimit(c.hostLimit)
	for i, host := range hosts {
		g.Go(func() error {
			c.emit(host.Label(), HostStarted, nil)
			ds, err := c.collectHost(ctx, host, year)
			if err != nil {
				c.emit(host.Label(), HostFailed, err)
				return nil
			}
			c.emit(host.Label(), HostDone, nil)
			results[i] = &ds
			return nil
		})
	}
	_ = g.Wait()

	var datasets []RemoteDataset
	for _, r := range results {
		if r != nil {
			datasets = append(datasets, *r)
		}
	}
	return datasets
}

func (c *RemoteCollector) emit(host string, event HostEvent, err error) {
	if c.progress != nil {
		c.progress(host, event, err)
	}
}

// collectHost fetches the three artifact types from one host. Individual
// fetch failures yield absent artifacts; the host itself fails only when no
// fetch succeeded (typically an unreachable host).
func (c *RemoteCollector) collectHost(ctx context.Context, host config.RemoteHost, year int) (RemoteDataset, error) {
	roots := claude.RemoteCandidateRoots()

	ds := RemoteDataset{Host: host.Label()}
	var fetchErrs [3]error

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		cache, err := c.fetchCaches(gctx, host, roots)
		ds.Cache, fetchErrs[0] = cache, err
		return nil
	})

	g.Go(func() error {
		history, err := c.fetchHistory(gctx, host, roots)
		fetchErrs[1] = err
		ds.History = claude.FilterHistoryYear(history, year)
		// Project names come from the fetched history rather than an
		// extra remote round-trip.
		ds.Projects = claude.ProjectNames(history)
		return nil
	})

	g.Go(func() error {
		ds.OldestTimestamp, fetchErrs[2] = c.fetchOldestTimestamp(gctx, host, roots)
		return nil
	})

	_ = g.Wait()

	if fetchErrs[0] != nil && fetchErrs[1] != nil && fetchErrs[2] != nil {
		return RemoteDataset{}, fmt.Errorf("host unreachable: %w", fetchErrs[0])
	}
	return ds, nil
}

// fetchCaches reads the stats cache from each remote storage root and merges
// them additively, mirroring the local collector's multi-root handling.
func (c *RemoteCollector) fetchCaches(ctx context.Context, host config.RemoteHost, roots []string) (*claude.StatsCache, error) {
	var merged *claude.StatsCache
	var lastErr error
	for _, root := range roots {
		out, err := c.runner.Run(ctx, host, fmt.Sprintf("cat %s/stats-cache.json 2>/dev/null || true", root))
		if err != nil {
			lastErr = err
			continue
		}
		cache, err := claude.DecodeStatsCache(out)
		if err != nil || cache == nil {
			continue
		}
		merged = claude.MergeCaches(merged, cache)
	}
	if merged == nil && lastErr != nil {
		return nil, lastErr
	}
	return merged, nil
}

// fetchHistory reads the history logs from all remote roots in one command;
// line-delimited logs concatenate safely.
func (c *RemoteCollector) fetchHistory(ctx context.Context, host config.RemoteHost, roots []string) ([]claude.HistoryEntry, error) {
	paths := make([]string, len(roots))
	for i, root := range roots {
		paths[i] = root + "/history.jsonl"
	}
	out, err := c.runner.Run(ctx, host,
		fmt.Sprintf("cat %s 2>/dev/null || true", strings.Join(paths, " ")))
	if err != nil {
		return nil, err
	}
	return claude.ReadHistory(bytes.NewReader(out))
}

// fetchOldestTimestamp asks the host for the head of every session transcript
// and scans the combined output for the earliest timestamp. The per-file
// prefix bound is applied server-side so only a few lines per session cross
// the wire.
func (c *RemoteCollector) fetchOldestTimestamp(ctx context.Context, host config.RemoteHost, roots []string) (time.Time, error) {
	dirs := make([]string, len(roots))
	for i, root := range roots {
		dirs[i] = root + "/projects"
	}
	cmd := fmt.Sprintf(
		"find %s -name '*.jsonl' ! -name 'agent-*' -exec head -n 10 {} + 2>/dev/null || true",
		strings.Join(dirs, " "))
	out, err := c.runner.Run(ctx, host, cmd)
	if err != nil {
		return time.Time{}, err
	}
	return claude.OldestTimestampInStream(bytes.NewReader(out)), nil
}
