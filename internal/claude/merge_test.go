package claude

import "testing"

func twoRootCaches() (*StatsCache, *StatsCache) {
	a := &StatsCache{
		Version: 1,
		DailyActivity: []DailyActivity{
			{Date: "2026-01-10", MessageCount: 10, SessionCount: 2, ToolCallCount: 5},
			{Date: "2026-01-11", MessageCount: 20, SessionCount: 1, ToolCallCount: 8},
		},
		ModelUsage: map[string]ModelUsage{
			"claude-sonnet-4-20250514": {InputTokens: 1000, OutputTokens: 500, CostUSD: 0.5},
		},
		TotalSessions:    3,
		TotalMessages:    30,
		FirstSessionDate: "2025-06-01",
		HourCounts:       map[string]int{"10": 4},
		LongestSession:   LongestSession{SessionID: "a", DurationMs: 1000, MessageCount: 5},
	}
	b := &StatsCache{
		Version: 1,
		DailyActivity: []DailyActivity{
			{Date: "2026-01-11", MessageCount: 5, SessionCount: 1, ToolCallCount: 2},
			{Date: "2026-01-12", MessageCount: 7, SessionCount: 1, ToolCallCount: 3},
		},
		ModelUsage: map[string]ModelUsage{
			"claude-sonnet-4-20250514": {InputTokens: 200, OutputTokens: 100},
			"claude-opus-4-20250514":   {OutputTokens: 50, CostUSD: 0.2},
		},
		TotalSessions:    2,
		TotalMessages:    12,
		FirstSessionDate: "2025-03-15",
		HourCounts:       map[string]int{"10": 1, "22": 2},
		LongestSession:   LongestSession{SessionID: "b", DurationMs: 9000, MessageCount: 40},
	}
	return a, b
}

func TestMergeCaches_AdditivePerDate(t *testing.T) {
	a, b := twoRootCaches()
	out := MergeCaches(a, b)

	if len(out.DailyActivity) != 3 {
		t.Fatalf("expected 3 daily entries, got %d", len(out.DailyActivity))
	}
	// Shared date sums, not overwrites.
	if out.DailyActivity[1].Date != "2026-01-11" || out.DailyActivity[1].MessageCount != 25 {
		t.Errorf("2026-01-11 = %+v, want messageCount 25", out.DailyActivity[1])
	}
	if out.DailyActivity[1].SessionCount != 2 || out.DailyActivity[1].ToolCallCount != 10 {
		t.Errorf("2026-01-11 counts = %+v, want sessions 2, toolCalls 10", out.DailyActivity[1])
	}
	// Novel date inserted as-is, after first-seen entries.
	if out.DailyActivity[2].Date != "2026-01-12" {
		t.Errorf("DailyActivity[2].Date = %q, want 2026-01-12", out.DailyActivity[2].Date)
	}
}

func TestMergeCaches_ModelUsageAndScalars(t *testing.T) {
	a, b := twoRootCaches()
	out := MergeCaches(a, b)

	sonnet := out.ModelUsage["claude-sonnet-4-20250514"]
	if sonnet.InputTokens != 1200 || sonnet.OutputTokens != 600 {
		t.Errorf("sonnet usage = %+v, want input 1200, output 600", sonnet)
	}
	if sonnet.CostUSD != 0.5 {
		t.Errorf("sonnet CostUSD = %f, want 0.5", sonnet.CostUSD)
	}
	if out.TotalSessions != 5 || out.TotalMessages != 42 {
		t.Errorf("totals = %d/%d, want 5/42", out.TotalSessions, out.TotalMessages)
	}
	if out.FirstSessionDate != "2025-03-15" {
		t.Errorf("FirstSessionDate = %q, want the earlier 2025-03-15", out.FirstSessionDate)
	}
	if out.HourCounts["10"] != 5 {
		t.Errorf("HourCounts[10] = %d, want 5", out.HourCounts["10"])
	}
	if out.LongestSession.SessionID != "b" {
		t.Errorf("LongestSession = %+v, want the longer record b", out.LongestSession)
	}
}

func TestMergeCaches_InputsNotMutated(t *testing.T) {
	a, b := twoRootCaches()
	_ = MergeCaches(a, b)

	if a.DailyActivity[1].MessageCount != 20 {
		t.Errorf("base input mutated: %+v", a.DailyActivity[1])
	}
	if b.ModelUsage["claude-sonnet-4-20250514"].InputTokens != 200 {
		t.Errorf("add input mutated: %+v", b.ModelUsage)
	}
}

func TestMergeCaches_NilHandling(t *testing.T) {
	a, _ := twoRootCaches()

	if MergeCaches(nil, nil) != nil {
		t.Error("expected nil for two nil caches")
	}

	out := MergeCaches(nil, a)
	if out == nil || out.TotalMessages != a.TotalMessages {
		t.Fatalf("expected copy of non-nil input, got %+v", out)
	}
	// The copy must be detached from the input.
	out.DailyActivity[0].MessageCount = 999
	if a.DailyActivity[0].MessageCount == 999 {
		t.Error("copy aliases input slice")
	}
}
