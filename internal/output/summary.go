package output

import (
	"fmt"
	"io"

	"github.com/blackwell-systems/wrapped/internal/analyzer"
)

// PrintSummary writes the plain-text yearly summary to w.
func PrintSummary(w io.Writer, stats *analyzer.WrappedStats) {
	fmt.Fprintln(w, Section(fmt.Sprintf("Your %d with Claude Code", stats.Year)))

	fmt.Fprintf(w, "   %s sessions · %s messages · %s prompts · %d projects\n",
		StyleValue.Render(FormatCount(int64(stats.TotalSessions))),
		StyleValue.Render(FormatCount(int64(stats.TotalMessages))),
		StyleValue.Render(FormatCount(int64(stats.TotalPrompts))),
		stats.TotalProjects)

	fmt.Fprintf(w, "   %s tokens", StyleValue.Render(FormatTokens(stats.TotalTokens)))
	if stats.CostKnown {
		fmt.Fprintf(w, " · %s", StyleValue.Render(fmt.Sprintf("$%.2f", stats.TotalCostUSD)))
	}
	fmt.Fprintln(w)

	if len(stats.TopModels) > 0 {
		fmt.Fprintln(w, Section("Top models"))
		for _, m := range stats.TopModels {
			fmt.Fprintf(w, "   %-34s %s\n", m.Model, PercentBar(m.Percent, 20))
		}
	}

	if len(stats.TopProjects) > 0 {
		fmt.Fprintln(w, Section("Top projects"))
		for _, p := range stats.TopProjects {
			fmt.Fprintf(w, "   %-34s %s\n", p.Name, PercentBar(p.Percent, 20))
		}
	}

	fmt.Fprintln(w, Section("Habits"))
	if stats.MaxStreak > 0 {
		fmt.Fprintf(w, "   Longest streak      %s\n",
			StyleSuccess.Render(fmt.Sprintf("%d days", stats.MaxStreak)))
	}
	if stats.CurrentStreak > 0 {
		fmt.Fprintf(w, "   Current streak      %s\n",
			StyleSuccess.Render(fmt.Sprintf("%d days", stats.CurrentStreak)))
	}
	if stats.MostActiveDay != nil {
		fmt.Fprintf(w, "   Most active day     %s %s\n",
			StyleBold.Render(stats.MostActiveDayDisplay),
			StyleMuted.Render(fmt.Sprintf("(%s messages)", FormatCount(int64(stats.MostActiveDay.Count)))))
	}
	if stats.BusiestWeekdayCount > 0 {
		fmt.Fprintf(w, "   Busiest weekday     %s\n", StyleBold.Render(stats.BusiestWeekdayName))
	}
	if stats.PeakHour >= 0 {
		fmt.Fprintf(w, "   Peak hour           %s\n",
			StyleBold.Render(fmt.Sprintf("%02d:00", stats.PeakHour)))
	}
	if stats.LongestSession != nil {
		fmt.Fprintf(w, "   Longest session     %s %s\n",
			StyleBold.Render(FormatDuration(stats.LongestSession.DurationMs)),
			StyleMuted.Render(fmt.Sprintf("(%d messages)", stats.LongestSession.MessageCount)))
	}
	if stats.FirstSessionDate != "" {
		fmt.Fprintf(w, "   First session       %s\n", StyleMuted.Render(stats.FirstSessionDate))
	}
	fmt.Fprintln(w)
}
