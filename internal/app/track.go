package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/blackwell-systems/wrapped/internal/config"
	"github.com/blackwell-systems/wrapped/internal/output"
	"github.com/blackwell-systems/wrapped/internal/store"
	"github.com/spf13/cobra"
)

var trackYear int

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Snapshot the yearly summary and compare against the last run",
	Long: `Compute the yearly summary, store it as a snapshot in the local
database, and show what changed since the previous snapshot of the
same year.`,
	RunE: runTrack,
}

func init() {
	trackCmd.Flags().IntVar(&trackYear, "year", time.Now().Year(), "Year to summarize")
	rootCmd.AddCommand(trackCmd)
}

func runTrack(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	setupColor(cfg)

	stats, err := computeStats(cmd.Context(), cfg, trackYear)
	if err != nil {
		return err
	}

	db, err := store.Open(config.DBPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	previous, err := db.LatestSnapshot(trackYear)
	if err != nil {
		return fmt.Errorf("loading previous snapshot: %w", err)
	}

	current := &store.Snapshot{
		Year:          trackYear,
		Version:       appVersion,
		Sessions:      stats.TotalSessions,
		Messages:      stats.TotalMessages,
		Prompts:       stats.TotalPrompts,
		Projects:      stats.TotalProjects,
		TotalTokens:   stats.TotalTokens,
		CostUSD:       stats.TotalCostUSD,
		MaxStreak:     stats.MaxStreak,
		CurrentStreak: stats.CurrentStreak,
	}
	id, err := db.InsertSnapshot(current)
	if err != nil {
		return fmt.Errorf("storing snapshot: %w", err)
	}
	current.ID = id

	var diff *store.Diff
	if previous != nil {
		diff = store.ComputeDiff(previous, current)
	}

	if flagJSON {
		result := map[string]any{"snapshot": current}
		if diff != nil {
			result["diff"] = diff
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	renderTrack(current, diff)
	return nil
}

func renderTrack(current *store.Snapshot, diff *store.Diff) {
	fmt.Println(output.Section(fmt.Sprintf("Track: %d snapshot #%d", current.Year, current.ID)))

	if diff == nil {
		fmt.Println("   First snapshot recorded. Run 'wrapped track' again later to see changes.")
		return
	}

	fmt.Printf("   Comparing against snapshot #%d (%s)\n\n",
		diff.Previous.ID, diff.Previous.TakenAt.Format("2006-01-02 15:04"))

	if len(diff.Deltas) == 0 {
		fmt.Println("   No changes since the previous snapshot.")
		return
	}
	for _, d := range diff.Deltas {
		fmt.Printf("   %-16s %s\n", d.Name, output.StyleValue.Render(formatDelta(d)))
	}
}

func formatDelta(d store.Delta) string {
	if d.Name == "cost_usd" {
		return fmt.Sprintf("$%.2f → $%.2f (%+.2f)", d.Previous, d.Current, d.Change)
	}
	return fmt.Sprintf("%.0f → %.0f (%+.0f)", d.Previous, d.Current, d.Change)
}
