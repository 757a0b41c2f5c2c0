package claude

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"time"
)

// ParseHistory reads history.jsonl from the given storage root and returns
// all entries. Missing files yield (nil, nil); malformed lines are skipped.
func ParseHistory(root string) ([]HistoryEntry, error) {
	path := filepath.Join(root, "history.jsonl")
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return ReadHistory(f)
}

// ReadHistory parses line-delimited history entries from r. It is used for
// both local files and captured remote command output. Malformed lines are
// dropped without aborting the read.
func ReadHistory(r io.Reader) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	scanner := bufio.NewScanner(r)
	// Allow lines up to 1MB for large pasted contents.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var entry HistoryEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			// Skip malformed lines.
			continue
		}
		entries = append(entries, entry)
	}
	return entries, scanner.Err()
}

// FilterHistoryYear returns the entries whose timestamp falls in the given
// calendar year (local time). A year of 0 disables the filter.
func FilterHistoryYear(entries []HistoryEntry, year int) []HistoryEntry {
	if year == 0 {
		return entries
	}
	var filtered []HistoryEntry
	for _, e := range entries {
		ts := time.UnixMilli(e.Timestamp)
		if ts.Year() == year {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// ProjectNames returns the distinct project names referenced by history
// entries. A project is identified by the final path segment of its project
// field, falling back to the whole field when it has no separator.
func ProjectNames(entries []HistoryEntry) []string {
	seen := make(map[string]bool)
	var names []string
	for _, e := range entries {
		if e.Project == "" {
			continue
		}
		name := filepath.Base(e.Project)
		if name == "" {
			name = e.Project
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}
