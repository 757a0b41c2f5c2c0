package claude

import (
	"os"
	"path/filepath"
)

// CandidateRoots returns the storage roots that may hold Claude Code data,
// in preference order. Claude Code migrated from ~/.claude to the XDG-style
// ~/.config/claude; during and after the migration either (or both) may
// contain a cache, history log, and transcripts.
func CandidateRoots() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(home, ".claude"),
		filepath.Join(home, ".config", "claude"),
	}
}

// DataRoots filters candidates down to directories that actually exist and
// can be listed. An unreadable candidate is silently skipped.
func DataRoots(candidates []string) []string {
	var roots []string
	for _, dir := range candidates {
		if _, err := os.ReadDir(dir); err != nil {
			continue
		}
		roots = append(roots, dir)
	}
	return roots
}

// RemoteCandidateRoots returns the storage roots relative to a remote user's
// home directory, for use in commands executed over SSH.
func RemoteCandidateRoots() []string {
	return []string{"$HOME/.claude", "$HOME/.config/claude"}
}
