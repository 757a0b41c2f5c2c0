package claude

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// subagentPrefix marks transcript files recorded by sub-agent tasks. They
// duplicate usage already attributed to the parent session, so transcript
// scans skip them.
const subagentPrefix = "agent-"

// oldestScanLines bounds how far into each transcript the oldest-timestamp
// scan reads. Session files are chronological from creation, so the first
// few lines carry the earliest timestamp.
const oldestScanLines = 10

// walkSessionFiles calls fn with the path of every per-session transcript
// file under root/projects/, excluding sub-agent transcripts. Unreadable
// project directories are skipped.
func walkSessionFiles(root string, fn func(path string) error) error {
	projectsDir := filepath.Join(root, "projects")
	projectDirs, err := os.ReadDir(projectsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, proj := range projectDirs {
		if !proj.IsDir() {
			continue
		}
		dirPath := filepath.Join(projectsDir, proj.Name())
		files, err := os.ReadDir(dirPath)
		if err != nil {
			continue
		}
		for _, f := range files {
			if f.IsDir() || !strings.HasSuffix(f.Name(), ".jsonl") {
				continue
			}
			if strings.HasPrefix(f.Name(), subagentPrefix) {
				continue
			}
			if err := fn(filepath.Join(dirPath, f.Name())); err != nil {
				return err
			}
		}
	}
	return nil
}

// ParseSessionMessages scans all session transcripts under the storage root
// and returns the user and assistant turns found in them. Malformed lines and
// unreadable files are skipped.
func ParseSessionMessages(root string) ([]SessionMessage, error) {
	var messages []SessionMessage
	err := walkSessionFiles(root, func(path string) error {
		f, err := os.Open(path)
		if err != nil {
			return nil
		}
		defer func() { _ = f.Close() }()

		sessionID := strings.TrimSuffix(filepath.Base(path), ".jsonl")

		scanner := bufio.NewScanner(f)
		// Transcript lines can carry whole tool results (up to 10MB).
		scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

		for scanner.Scan() {
			var line TranscriptLine
			if err := json.Unmarshal(scanner.Bytes(), &line); err != nil {
				continue
			}
			if line.Type != "user" && line.Type != "assistant" {
				continue
			}
			msg := SessionMessage{
				Type:      line.Type,
				SessionID: line.SessionID,
				Timestamp: line.Timestamp,
			}
			if msg.SessionID == "" {
				msg.SessionID = sessionID
			}
			if line.Message != nil {
				msg.Model = line.Message.Model
				msg.Usage = line.Message.Usage
			}
			messages = append(messages, msg)
		}
		return nil
	})
	return messages, err
}

// OldestTranscriptTimestamp returns the earliest timestamp recorded in any
// session transcript under the storage root, or the zero time when none is
// found. Only the first few lines of each file are inspected; session files
// are written chronologically, so the head of the file holds its oldest
// entry.
func OldestTranscriptTimestamp(root string) (time.Time, error) {
	var oldest time.Time
	err := walkSessionFiles(root, func(path string) error {
		f, err := os.Open(path)
		if err != nil {
			return nil
		}
		defer func() { _ = f.Close() }()

		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

		for i := 0; i < oldestScanLines && scanner.Scan(); i++ {
			var line TranscriptLine
			if err := json.Unmarshal(scanner.Bytes(), &line); err != nil {
				continue
			}
			ts := ParseTimestamp(line.Timestamp)
			if ts.IsZero() {
				continue
			}
			if oldest.IsZero() || ts.Before(oldest) {
				oldest = ts
			}
		}
		return nil
	})
	return oldest, err
}

// OldestTimestampInStream returns the earliest parseable timestamp among the
// transcript lines read from r, or the zero time when none is found. It is
// used on captured remote output where the per-file prefix bound has already
// been applied server-side.
func OldestTimestampInStream(r io.Reader) time.Time {
	var oldest time.Time
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	for scanner.Scan() {
		var line TranscriptLine
		if err := json.Unmarshal(scanner.Bytes(), &line); err != nil {
			continue
		}
		ts := ParseTimestamp(line.Timestamp)
		if ts.IsZero() {
			continue
		}
		if oldest.IsZero() || ts.Before(oldest) {
			oldest = ts
		}
	}
	return oldest
}

// ParseTimestamp parses an ISO 8601 timestamp string. It tries RFC3339Nano,
// RFC3339, and a plain datetime format without timezone. Returns the zero
// time if the string is empty or cannot be parsed by any supported format.
func ParseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			// Fallback for datetime strings without a timezone suffix.
			t, err = time.Parse("2006-01-02T15:04:05", s)
			if err != nil {
				return time.Time{}
			}
		}
	}
	return t
}
