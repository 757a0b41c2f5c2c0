// Package collector gathers Claude Code usage artifacts from local storage
// roots and remote hosts, producing best-effort datasets that never fail the
// run on partial unavailability.
package collector

import (
	"time"

	"github.com/blackwell-systems/wrapped/internal/claude"
)

// SourceState records how an artifact read resolved, so downstream logic and
// tests can tell which fallback path fired.
type SourceState int

const (
	// SourcePresent means the artifact was read and parsed.
	SourcePresent SourceState = iota
	// SourceMissing means the file (or directory) does not exist.
	SourceMissing
	// SourceInvalid means the artifact existed but could not be parsed.
	SourceInvalid
)

// String returns the state name for logs and test failures.
func (s SourceState) String() string {
	switch s {
	case SourcePresent:
		return "present"
	case SourceMissing:
		return "missing"
	case SourceInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// LocalDataset is the result of collecting from all local storage roots.
type LocalDataset struct {
	Cache      *claude.StatsCache
	CacheState SourceState
	History    []claude.HistoryEntry
	Projects   []string
	// OldestTimestamp is the earliest timestamp recovered by scanning raw
	// transcripts, used when the cache's first-session field is misleading.
	OldestTimestamp time.Time
}

// RemoteDataset holds the artifacts fetched from one remote host. Absence of
// any field (fetch failure, empty file) is a valid state.
type RemoteDataset struct {
	Host            string
	Cache           *claude.StatsCache
	History         []claude.HistoryEntry
	Projects        []string
	OldestTimestamp time.Time
}

// Empty reports whether the host contributed no data at all.
func (d RemoteDataset) Empty() bool {
	return d.Cache == nil && len(d.History) == 0 && d.OldestTimestamp.IsZero()
}

// HostEvent is a progress notification emitted while fetching from a host.
type HostEvent int

const (
	// HostStarted is emitted before the first fetch against a host.
	HostStarted HostEvent = iota
	// HostDone is emitted after all fetches for a host completed.
	HostDone
	// HostFailed is emitted when a host's fetch failed; the host is skipped.
	HostFailed
)

// ProgressFunc receives per-host progress during remote collection. err is
// non-nil only for HostFailed.
type ProgressFunc func(host string, event HostEvent, err error)
