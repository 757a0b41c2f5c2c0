package analyzer

import (
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/blackwell-systems/wrapped/internal/claude"
	"github.com/samber/lo"
)

// historyMessagesPerPrompt is the heuristic multiplier used when no cache is
// available: one recorded prompt corresponds to roughly twenty messages of
// conversation. Kept as-is to match the established output.
const historyMessagesPerPrompt = 20

// DayCount is one (date, count) pair of the daily activity map. Slice order
// is insertion order, which downstream tie-breaks depend on.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ModelRank is one entry of the top-models ranking.
type ModelRank struct {
	Model        string `json:"model"`
	OutputTokens int64  `json:"outputTokens"`
	Percent      int    `json:"percent"`
}

// ProjectRank is one entry of the top-projects ranking.
type ProjectRank struct {
	Name    string `json:"name"`
	Prompts int    `json:"prompts"`
	Percent int    `json:"percent"`
}

// SessionHighlight is the longest-session record surfaced in the summary.
type SessionHighlight struct {
	DurationMs   int64 `json:"durationMs"`
	MessageCount int   `json:"messageCount"`
}

// WrappedStats is the final yearly summary. It is immutable once computed
// and consumed only by rendering.
type WrappedStats struct {
	Year int `json:"year"`

	TotalSessions int `json:"totalSessions"`
	TotalMessages int `json:"totalMessages"`
	TotalPrompts  int `json:"totalPrompts"`
	TotalProjects int `json:"totalProjects"`

	InputTokens         int64 `json:"inputTokens"`
	OutputTokens        int64 `json:"outputTokens"`
	CacheReadTokens     int64 `json:"cacheReadTokens"`
	CacheCreationTokens int64 `json:"cacheCreationTokens"`
	TotalTokens         int64 `json:"totalTokens"`

	TotalCostUSD float64 `json:"totalCostUsd"`
	CostKnown    bool    `json:"costKnown"`

	TopModels   []ModelRank   `json:"topModels"`
	TopProjects []ProjectRank `json:"topProjects"`

	MaxStreak     int      `json:"maxStreak"`
	MaxStreakDays []string `json:"maxStreakDays"`
	CurrentStreak int      `json:"currentStreak"`

	DailyActivity []DayCount `json:"dailyActivity"`
	MostActiveDay *DayCount  `json:"mostActiveDay,omitempty"`
	// MostActiveDayDisplay is the human form of the most active date,
	// e.g. "March 14".
	MostActiveDayDisplay string `json:"mostActiveDayDisplay,omitempty"`

	WeekdayCounts       [7]int `json:"weekdayCounts"` // 0=Sunday
	BusiestWeekday      int    `json:"busiestWeekday"`
	BusiestWeekdayName  string `json:"busiestWeekdayName"`
	BusiestWeekdayCount int    `json:"busiestWeekdayCount"`

	// PeakHour is the hour of day (0-23) with the most recorded messages,
	// -1 when the cache carries no hour histogram.
	PeakHour      int `json:"peakHour"`
	PeakHourCount int `json:"peakHourCount"`

	FirstSessionDate string            `json:"firstSessionDate,omitempty"`
	LongestSession   *SessionHighlight `json:"longestSession,omitempty"`
}

var weekdayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// HasActivity reports whether the summary contains any sessions or prompts.
func (w *WrappedStats) HasActivity() bool {
	return w.TotalSessions > 0 || w.TotalPrompts > 0
}

// Compute builds the yearly summary from a merged dataset. It is
// deterministic given its inputs; now supplies the wall clock for the
// current-streak walk.
func Compute(year int, data MergedDataset, now time.Time) *WrappedStats {
	w := &WrappedStats{Year: year, PeakHour: -1}

	cache := data.Cache
	cacheHasDays := cache != nil && len(cache.DailyActivity) > 0

	// Daily activity map and weekday histogram, built in lock-step. The
	// cache's per-date message counts are authoritative; recounting from
	// raw history entries (one unit per prompt) is an approximation used
	// only when the cache is absent.
	if cacheHasDays {
		for _, day := range cache.DailyActivity {
			if yearOfDate(day.Date) != year {
				continue
			}
			w.DailyActivity = append(w.DailyActivity, DayCount{Date: day.Date, Count: day.MessageCount})
			if wd, ok := weekdayOfDate(day.Date); ok {
				w.WeekdayCounts[wd] += day.MessageCount
			}
			w.TotalMessages += day.MessageCount
			w.TotalSessions += day.SessionCount
		}
	} else {
		index := make(map[string]int)
		for _, entry := range data.History {
			date := time.UnixMilli(entry.Timestamp).Format("2006-01-02")
			if i, ok := index[date]; ok {
				w.DailyActivity[i].Count++
			} else {
				index[date] = len(w.DailyActivity)
				w.DailyActivity = append(w.DailyActivity, DayCount{Date: date, Count: 1})
			}
		}
		for _, day := range w.DailyActivity {
			if wd, ok := weekdayOfDate(day.Date); ok {
				w.WeekdayCounts[wd] += day.Count
			}
		}
	}

	// Message and session totals: the no-cache heuristic stands in when the
	// year-filtered daily entries sum to zero.
	if w.TotalMessages == 0 && w.TotalSessions == 0 && len(data.History) > 0 {
		w.TotalMessages = historyMessagesPerPrompt * len(data.History)
		w.TotalSessions = len(lo.UniqBy(data.History, func(e claude.HistoryEntry) string {
			return e.SessionID
		}))
	}

	w.TotalPrompts = len(data.History)
	w.TotalProjects = len(data.Projects)

	// Token totals span every per-model usage entry regardless of year:
	// model usage is not date-scoped in the cache. A cache covering several
	// years therefore leaks out-of-year tokens into these sums; that
	// matches the established behavior and is covered by a test.
	if cache != nil {
		for _, usage := range cache.ModelUsage {
			w.InputTokens += usage.InputTokens
			w.OutputTokens += usage.OutputTokens
			w.CacheReadTokens += usage.CacheReadInputTokens
			w.CacheCreationTokens += usage.CacheCreationInputTokens
		}
		w.TotalTokens = w.InputTokens + w.OutputTokens + w.CacheReadTokens + w.CacheCreationTokens
		w.TotalCostUSD = TotalCost(cache.ModelUsage)
		w.CostKnown = len(cache.ModelUsage) > 0
		w.FirstSessionDate = cache.FirstSessionDate
	}

	if cache != nil {
		w.TopModels = topModels(cache.ModelUsage)
		w.PeakHour, w.PeakHourCount = peakHour(cache.HourCounts)
	}
	w.TopProjects = topProjects(data.History)

	computeStreaks(w, now)
	computeMostActiveDay(w)
	computeBusiestWeekday(w)

	if cache != nil && (cache.LongestSession.DurationMs > 0 || cache.LongestSession.MessageCount > 0) {
		w.LongestSession = &SessionHighlight{
			DurationMs:   cache.LongestSession.DurationMs,
			MessageCount: cache.LongestSession.MessageCount,
		}
	}

	return w
}

// topModels ranks models by output tokens descending and keeps the top 3.
func topModels(usage map[string]claude.ModelUsage) []ModelRank {
	ranks := lo.MapToSlice(usage, func(model string, u claude.ModelUsage) ModelRank {
		return ModelRank{Model: model, OutputTokens: u.OutputTokens}
	})
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].OutputTokens != ranks[j].OutputTokens {
			return ranks[i].OutputTokens > ranks[j].OutputTokens
		}
		return ranks[i].Model < ranks[j].Model
	})

	total := lo.SumBy(ranks, func(r ModelRank) int64 { return r.OutputTokens })
	if len(ranks) > 3 {
		ranks = ranks[:3]
	}
	for i := range ranks {
		ranks[i].Percent = percent(float64(ranks[i].OutputTokens), float64(total))
	}
	return ranks
}

// topProjects groups history entries by project name and keeps the top 4.
// The percentage denominator is the total number of history entries.
func topProjects(history []claude.HistoryEntry) []ProjectRank {
	if len(history) == 0 {
		return nil
	}
	counts := make(map[string]int)
	var order []string
	for _, entry := range history {
		name := projectName(entry.Project)
		if name == "" {
			continue
		}
		if _, ok := counts[name]; !ok {
			order = append(order, name)
		}
		counts[name]++
	}

	ranks := lo.Map(order, func(name string, _ int) ProjectRank {
		return ProjectRank{Name: name, Prompts: counts[name]}
	})
	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].Prompts > ranks[j].Prompts
	})
	if len(ranks) > 4 {
		ranks = ranks[:4]
	}
	for i := range ranks {
		ranks[i].Percent = percent(float64(ranks[i].Prompts), float64(len(history)))
	}
	return ranks
}

// projectName reduces a project path to its final segment, falling back to
// the full field when it has no separator.
func projectName(project string) string {
	if project == "" {
		return ""
	}
	for i := len(project) - 1; i >= 0; i-- {
		if project[i] == '/' || project[i] == '\\' {
			if i == len(project)-1 {
				// Trailing separator; strip and retry.
				return projectName(project[:i])
			}
			return project[i+1:]
		}
	}
	return project
}

// computeStreaks fills the max historical streak (with its literal day set)
// and the still-active current streak.
func computeStreaks(w *WrappedStats, now time.Time) {
	dates := lo.Uniq(lo.Map(w.DailyActivity, func(d DayCount, _ int) string { return d.Date }))
	sort.Strings(dates)
	if len(dates) == 0 {
		return
	}

	bestStart, bestEnd := 0, 0
	runStart := 0
	for i := 1; i < len(dates); i++ {
		if dayGap(dates[i-1], dates[i]) == 1 {
			if i-runStart > bestEnd-bestStart {
				bestStart, bestEnd = runStart, i
			}
			continue
		}
		runStart = i
	}
	w.MaxStreak = bestEnd - bestStart + 1
	w.MaxStreakDays = append([]string(nil), dates[bestStart:bestEnd+1]...)

	active := make(map[string]bool, len(dates))
	for _, d := range dates {
		active[d] = true
	}

	day := now.Format("2006-01-02")
	if !active[day] {
		day = now.AddDate(0, 0, -1).Format("2006-01-02")
		if !active[day] {
			return
		}
	}
	for active[day] {
		w.CurrentStreak++
		day = prevDay(day)
	}
}

// computeMostActiveDay scans the activity map in insertion order; a tie keeps
// the first-encountered maximum.
func computeMostActiveDay(w *WrappedStats) {
	for i, day := range w.DailyActivity {
		if w.MostActiveDay == nil || day.Count > w.MostActiveDay.Count {
			w.MostActiveDay = &w.DailyActivity[i]
		}
	}
	if w.MostActiveDay != nil {
		if t, err := time.Parse("2006-01-02", w.MostActiveDay.Date); err == nil {
			w.MostActiveDayDisplay = t.Format("January 2")
		}
	}
}

// computeBusiestWeekday picks the first maximum bucket.
func computeBusiestWeekday(w *WrappedStats) {
	for i, count := range w.WeekdayCounts {
		if count > w.BusiestWeekdayCount {
			w.BusiestWeekday = i
			w.BusiestWeekdayCount = count
		}
	}
	w.BusiestWeekdayName = weekdayNames[w.BusiestWeekday]
}

// peakHour returns the busiest hour of day and its count, or (-1, 0) when
// the histogram is empty. Ties keep the earlier hour.
func peakHour(hourCounts map[string]int) (int, int) {
	best, bestCount := -1, 0
	for hour := 0; hour < 24; hour++ {
		count := hourCounts[strconv.Itoa(hour)]
		if count > bestCount {
			best, bestCount = hour, count
		}
	}
	return best, bestCount
}

// percent rounds a share to the nearest integer, returning 0 for a zero
// denominator.
func percent(part, total float64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(part / total * 100))
}

// yearOfDate extracts the year of an ISO date, 0 on malformed input.
func yearOfDate(date string) int {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0
	}
	return t.Year()
}

// weekdayOfDate returns the JS-style weekday index (0=Sunday) of an ISO date.
func weekdayOfDate(date string) (int, bool) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, false
	}
	return int(t.Weekday()), true
}

// dayGap returns the whole-day distance between two ISO dates.
func dayGap(a, b string) int {
	ta, errA := time.Parse("2006-01-02", a)
	tb, errB := time.Parse("2006-01-02", b)
	if errA != nil || errB != nil {
		return -1
	}
	return int(tb.Sub(ta).Hours() / 24)
}

// prevDay returns the ISO date one calendar day before date.
func prevDay(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format("2006-01-02")
}
