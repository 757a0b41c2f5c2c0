package claude

// MergeCaches additively combines two stats caches into a new value, leaving
// both inputs untouched. Per-date activity counts and per-model token sums
// are summed; the earliest first-session date and the longest of the two
// longest-session records win. Either input may be nil.
func MergeCaches(base, add *StatsCache) *StatsCache {
	if base == nil && add == nil {
		return nil
	}
	if base == nil {
		return MergeCaches(&StatsCache{}, add)
	}
	if add == nil {
		return MergeCaches(&StatsCache{}, base)
	}

	out := &StatsCache{
		Version:          maxInt(base.Version, add.Version),
		LastComputedDate: maxDate(base.LastComputedDate, add.LastComputedDate),
		TotalSessions:    base.TotalSessions + add.TotalSessions,
		TotalMessages:    base.TotalMessages + add.TotalMessages,
		FirstSessionDate: minDate(base.FirstSessionDate, add.FirstSessionDate),
	}

	// Per-date daily activity, preserving first-seen insertion order.
	dayIndex := make(map[string]int)
	for _, src := range [][]DailyActivity{base.DailyActivity, add.DailyActivity} {
		for _, day := range src {
			if i, ok := dayIndex[day.Date]; ok {
				out.DailyActivity[i].MessageCount += day.MessageCount
				out.DailyActivity[i].SessionCount += day.SessionCount
				out.DailyActivity[i].ToolCallCount += day.ToolCallCount
				continue
			}
			dayIndex[day.Date] = len(out.DailyActivity)
			out.DailyActivity = append(out.DailyActivity, day)
		}
	}

	// Per-date model tokens, same ordering rule.
	tokenIndex := make(map[string]int)
	for _, src := range [][]DailyModelTokens{base.DailyModelTokens, add.DailyModelTokens} {
		for _, day := range src {
			i, ok := tokenIndex[day.Date]
			if !ok {
				tokenIndex[day.Date] = len(out.DailyModelTokens)
				out.DailyModelTokens = append(out.DailyModelTokens, DailyModelTokens{
					Date:          day.Date,
					TokensByModel: make(map[string]int, len(day.TokensByModel)),
				})
				i = len(out.DailyModelTokens) - 1
			}
			for model, tokens := range day.TokensByModel {
				out.DailyModelTokens[i].TokensByModel[model] += tokens
			}
		}
	}

	// Per-model usage; numeric fields sum, zero defaults cover records a
	// source wrote only partially.
	if len(base.ModelUsage) > 0 || len(add.ModelUsage) > 0 {
		out.ModelUsage = make(map[string]ModelUsage, len(base.ModelUsage)+len(add.ModelUsage))
		for _, src := range []map[string]ModelUsage{base.ModelUsage, add.ModelUsage} {
			for model, usage := range src {
				cur := out.ModelUsage[model]
				cur.InputTokens += usage.InputTokens
				cur.OutputTokens += usage.OutputTokens
				cur.CacheReadInputTokens += usage.CacheReadInputTokens
				cur.CacheCreationInputTokens += usage.CacheCreationInputTokens
				cur.WebSearchRequests += usage.WebSearchRequests
				cur.CostUSD += usage.CostUSD
				if usage.ContextWindow > cur.ContextWindow {
					cur.ContextWindow = usage.ContextWindow
				}
				out.ModelUsage[model] = cur
			}
		}
	}

	// Hour-of-day histogram.
	if len(base.HourCounts) > 0 || len(add.HourCounts) > 0 {
		out.HourCounts = make(map[string]int, len(base.HourCounts)+len(add.HourCounts))
		for _, src := range []map[string]int{base.HourCounts, add.HourCounts} {
			for hour, count := range src {
				out.HourCounts[hour] += count
			}
		}
	}

	// Longest session: the longer run wins.
	out.LongestSession = base.LongestSession
	if add.LongestSession.DurationMs > out.LongestSession.DurationMs {
		out.LongestSession = add.LongestSession
	}

	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// minDate returns the earlier of two ISO dates, ignoring empty values.
func minDate(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	case a < b:
		return a
	default:
		return b
	}
}

// maxDate returns the later of two ISO dates, ignoring empty values.
func maxDate(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	case a > b:
		return a
	default:
		return b
	}
}
