package claude

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseHistory_ValidEntries(t *testing.T) {
	dir := t.TempDir()
	data := `{"display":"help me refactor","timestamp":1700000000000,"project":"/home/user/proj","sessionId":"s1"}
{"display":"fix the bug","timestamp":1700001000000,"project":"/home/user/proj","sessionId":"s2"}
{"display":"write tests","timestamp":1700002000000,"project":"/home/user/other","sessionId":"s3"}
`
	if err := os.WriteFile(filepath.Join(dir, "history.jsonl"), []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	entries, err := ParseHistory(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Display != "help me refactor" {
		t.Errorf("entries[0].Display = %q, want %q", entries[0].Display, "help me refactor")
	}
	if entries[1].SessionID != "s2" {
		t.Errorf("entries[1].SessionID = %q, want %q", entries[1].SessionID, "s2")
	}
	if entries[2].Timestamp != 1700002000000 {
		t.Errorf("entries[2].Timestamp = %d, want 1700002000000", entries[2].Timestamp)
	}
}

func TestParseHistory_MissingFile(t *testing.T) {
	dir := t.TempDir()
	entries, err := ParseHistory(dir)
	if err != nil {
		t.Fatalf("expected nil error for missing file, got: %v", err)
	}
	if entries != nil {
		t.Errorf("expected nil entries, got %v", entries)
	}
}

func TestParseHistory_SkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	data := `{"display":"good line","timestamp":1700000000000,"sessionId":"s1"}
not valid json
{"display":"another good","timestamp":1700001000000,"sessionId":"s2"}
`
	if err := os.WriteFile(filepath.Join(dir, "history.jsonl"), []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	entries, err := ParseHistory(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries (malformed skipped), got %d", len(entries))
	}
}

func TestFilterHistoryYear(t *testing.T) {
	in2024 := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local).UnixMilli()
	in2025 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local).UnixMilli()
	entries := []HistoryEntry{
		{Display: "a", Timestamp: in2024},
		{Display: "b", Timestamp: in2025},
		{Display: "c", Timestamp: in2025},
	}

	filtered := FilterHistoryYear(entries, 2025)
	if len(filtered) != 2 {
		t.Fatalf("expected 2 entries for 2025, got %d", len(filtered))
	}
	if filtered[0].Display != "b" {
		t.Errorf("filtered[0].Display = %q, want %q", filtered[0].Display, "b")
	}

	// Year 0 disables the filter.
	all := FilterHistoryYear(entries, 0)
	if len(all) != 3 {
		t.Errorf("expected 3 entries with filter disabled, got %d", len(all))
	}
}

func TestProjectNames_FinalPathSegment(t *testing.T) {
	entries := []HistoryEntry{
		{Project: "/home/user/proj-a"},
		{Project: "/home/user/proj-b"},
		{Project: "/home/user/proj-a"},
		{Project: "bare-name"},
		{Project: ""},
	}

	names := ProjectNames(entries)
	if len(names) != 3 {
		t.Fatalf("expected 3 distinct names, got %d: %v", len(names), names)
	}
	want := []string{"proj-a", "proj-b", "bare-name"}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("names[%d] = %q, want %q", i, names[i], n)
		}
	}
}
