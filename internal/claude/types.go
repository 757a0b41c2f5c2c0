// Package claude provides types and parsers for Claude Code's local data files.
package claude

// HistoryEntry represents a single entry in history.jsonl: one user-submitted
// prompt, independent of session transcript detail.
type HistoryEntry struct {
	Display        string         `json:"display"`
	PastedContents map[string]any `json:"pastedContents"`
	Timestamp      int64          `json:"timestamp"`
	Project        string         `json:"project"`
	SessionID      string         `json:"sessionId"`
}

// StatsCache represents the precomputed aggregate stats in stats-cache.json.
// The file is authored by Claude Code itself and treated as read-only input;
// one instance may exist per storage root.
type StatsCache struct {
	Version          int                   `json:"version"`
	LastComputedDate string                `json:"lastComputedDate"`
	DailyActivity    []DailyActivity       `json:"dailyActivity"`
	DailyModelTokens []DailyModelTokens    `json:"dailyModelTokens"`
	ModelUsage       map[string]ModelUsage `json:"modelUsage"`
	TotalSessions    int                   `json:"totalSessions"`
	TotalMessages    int                   `json:"totalMessages"`
	LongestSession   LongestSession        `json:"longestSession"`
	FirstSessionDate string                `json:"firstSessionDate"`
	HourCounts       map[string]int        `json:"hourCounts"`
}

// DailyActivity represents a single day's activity metrics.
type DailyActivity struct {
	Date          string `json:"date"`
	MessageCount  int    `json:"messageCount"`
	SessionCount  int    `json:"sessionCount"`
	ToolCallCount int    `json:"toolCallCount"`
}

// DailyModelTokens represents token usage by model for a single day.
type DailyModelTokens struct {
	Date          string         `json:"date"`
	TokensByModel map[string]int `json:"tokensByModel"`
}

// ModelUsage represents cumulative usage stats for a single model.
type ModelUsage struct {
	InputTokens              int64   `json:"inputTokens"`
	OutputTokens             int64   `json:"outputTokens"`
	CacheReadInputTokens     int64   `json:"cacheReadInputTokens"`
	CacheCreationInputTokens int64   `json:"cacheCreationInputTokens"`
	WebSearchRequests        int     `json:"webSearchRequests"`
	CostUSD                  float64 `json:"costUSD"`
	ContextWindow            int     `json:"contextWindow"`
}

// LongestSession holds metadata about the longest recorded session.
type LongestSession struct {
	SessionID    string `json:"sessionId"`
	DurationMs   int64  `json:"duration"`
	MessageCount int    `json:"messageCount"`
	Timestamp    string `json:"timestamp"`
}

// TranscriptLine is the subset of a session transcript JSONL line this tool
// cares about. Lines of other shapes unmarshal with zero values and are
// filtered out by type.
type TranscriptLine struct {
	Type      string             `json:"type"`
	SessionID string             `json:"sessionId"`
	Timestamp string             `json:"timestamp"`
	Message   *TranscriptMessage `json:"message,omitempty"`
}

// TranscriptMessage carries the model and token usage of an assistant turn.
type TranscriptMessage struct {
	Model string           `json:"model,omitempty"`
	Usage *TranscriptUsage `json:"usage,omitempty"`
}

// TranscriptUsage holds per-turn token counts as written by the API.
type TranscriptUsage struct {
	InputTokens              int64 `json:"input_tokens"`
	OutputTokens             int64 `json:"output_tokens"`
	CacheReadInputTokens     int64 `json:"cache_read_input_tokens"`
	CacheCreationInputTokens int64 `json:"cache_creation_input_tokens"`
}

// SessionMessage is one assistant turn extracted from a session transcript.
type SessionMessage struct {
	Type      string
	SessionID string
	Timestamp string
	Model     string
	Usage     *TranscriptUsage
}
