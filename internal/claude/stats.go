package claude

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
)

// ParseStatsCache reads stats-cache.json from the given storage root.
// A missing file yields (nil, nil).
func ParseStatsCache(root string) (*StatsCache, error) {
	path := filepath.Join(root, "stats-cache.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return DecodeStatsCache(data)
}

// DecodeStatsCache parses a stats cache document from raw bytes. It is used
// for both local files and captured remote command output. Empty input yields
// (nil, nil), matching a missing file.
func DecodeStatsCache(data []byte) (*StatsCache, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var stats StatsCache
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
