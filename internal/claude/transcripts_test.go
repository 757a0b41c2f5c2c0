package claude

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeTranscript creates a session transcript file under root/projects/hash/.
func writeTranscript(t *testing.T, root, projectHash, name, data string) {
	t.Helper()
	dir := filepath.Join(root, "projects", projectHash)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestParseSessionMessages(t *testing.T) {
	dir := t.TempDir()
	data := `{"type":"user","sessionId":"s1","timestamp":"2026-03-01T10:00:00Z"}
{"type":"assistant","sessionId":"s1","timestamp":"2026-03-01T10:00:05Z","message":{"model":"claude-sonnet-4-20250514","usage":{"input_tokens":100,"output_tokens":50,"cache_read_input_tokens":20}}}
{"type":"progress","sessionId":"s1","timestamp":"2026-03-01T10:00:06Z"}
`
	writeTranscript(t, dir, "-home-user-proj", "s1.jsonl", data)

	msgs, err := ParseSessionMessages(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages (progress filtered), got %d", len(msgs))
	}
	if msgs[0].Type != "user" {
		t.Errorf("msgs[0].Type = %q, want user", msgs[0].Type)
	}
	if msgs[1].Model != "claude-sonnet-4-20250514" {
		t.Errorf("msgs[1].Model = %q, want claude-sonnet-4-20250514", msgs[1].Model)
	}
	if msgs[1].Usage == nil || msgs[1].Usage.InputTokens != 100 {
		t.Errorf("msgs[1].Usage = %+v, want input_tokens 100", msgs[1].Usage)
	}
}

func TestParseSessionMessages_SkipsSubagentFiles(t *testing.T) {
	dir := t.TempDir()
	writeTranscript(t, dir, "-proj", "s1.jsonl",
		`{"type":"user","sessionId":"s1","timestamp":"2026-03-01T10:00:00Z"}`+"\n")
	writeTranscript(t, dir, "-proj", "agent-abc.jsonl",
		`{"type":"assistant","sessionId":"agent-abc","timestamp":"2026-03-01T09:00:00Z"}`+"\n")

	msgs, err := ParseSessionMessages(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message (agent- file skipped), got %d", len(msgs))
	}
	if msgs[0].SessionID != "s1" {
		t.Errorf("SessionID = %q, want s1", msgs[0].SessionID)
	}
}

func TestParseSessionMessages_MissingProjectsDir(t *testing.T) {
	dir := t.TempDir()
	msgs, err := ParseSessionMessages(dir)
	if err != nil {
		t.Fatalf("expected nil error, got: %v", err)
	}
	if msgs != nil {
		t.Errorf("expected nil messages, got %v", msgs)
	}
}

func TestOldestTranscriptTimestamp(t *testing.T) {
	dir := t.TempDir()
	writeTranscript(t, dir, "-proj-a", "s1.jsonl",
		`{"type":"user","timestamp":"2025-06-01T08:00:00Z"}`+"\n")
	writeTranscript(t, dir, "-proj-b", "s2.jsonl",
		`{"type":"user","timestamp":"2024-11-20T22:15:00Z"}`+"\n")

	oldest, err := OldestTranscriptTimestamp(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 11, 20, 22, 15, 0, 0, time.UTC)
	if !oldest.Equal(want) {
		t.Errorf("oldest = %v, want %v", oldest, want)
	}
}

func TestOldestTranscriptTimestamp_OnlyScansFilePrefix(t *testing.T) {
	dir := t.TempDir()
	// An early timestamp buried past the scan window must not be found.
	var data string
	for i := 0; i < oldestScanLines; i++ {
		data += `{"type":"user","timestamp":"2026-01-15T10:00:00Z"}` + "\n"
	}
	data += `{"type":"user","timestamp":"2020-01-01T00:00:00Z"}` + "\n"
	writeTranscript(t, dir, "-proj", "s1.jsonl", data)

	oldest, err := OldestTranscriptTimestamp(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	if !oldest.Equal(want) {
		t.Errorf("oldest = %v, want %v (line past prefix should be ignored)", oldest, want)
	}
}

func TestOldestTranscriptTimestamp_Empty(t *testing.T) {
	dir := t.TempDir()
	oldest, err := OldestTranscriptTimestamp(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !oldest.IsZero() {
		t.Errorf("expected zero time, got %v", oldest)
	}
}

func TestParseTimestamp_Formats(t *testing.T) {
	cases := []struct {
		in   string
		zero bool
	}{
		{"2026-03-01T10:00:00Z", false},
		{"2026-03-01T10:00:00.123456Z", false},
		{"2026-03-01T10:00:00", false},
		{"not a timestamp", true},
		{"", true},
	}
	for _, c := range cases {
		got := ParseTimestamp(c.in)
		if got.IsZero() != c.zero {
			t.Errorf("ParseTimestamp(%q).IsZero() = %v, want %v", c.in, got.IsZero(), c.zero)
		}
	}
}
