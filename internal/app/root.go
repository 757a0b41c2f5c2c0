// Package app contains the Cobra command tree for wrapped.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/blackwell-systems/wrapped/internal/analyzer"
	"github.com/blackwell-systems/wrapped/internal/collector"
	"github.com/blackwell-systems/wrapped/internal/config"
	"github.com/blackwell-systems/wrapped/internal/output"
	"github.com/spf13/cobra"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagYear    int
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "wrapped",
	Short: "Your year with Claude Code, wrapped",
	Long: `wrapped reads Claude Code usage data from local storage roots and any
configured remote hosts, merges it, and prints a yearly summary: totals,
top models, top projects, streaks, and usage habits.

Run 'wrapped' with no arguments to see the summary for the current year.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runWrapped,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "unexpected error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/wrapped/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
	rootCmd.Flags().IntVar(&flagYear, "year", time.Now().Year(), "Year to summarize")
}

func runWrapped(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	setupColor(cfg)

	stats, err := computeStats(cmd.Context(), cfg, flagYear)
	if err != nil {
		return err
	}

	if !stats.HasActivity() {
		fmt.Printf("no activity for %d\n", flagYear)
		return nil
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	output.PrintSummary(os.Stdout, stats)
	return nil
}

// computeStats runs the full collect-merge-compute pipeline shared by the
// root and track commands.
func computeStats(ctx context.Context, cfg *config.Config, year int) (*analyzer.WrappedStats, error) {
	local, err := collector.CollectLocal(ctx, cfg.DataDirs, year)
	if err != nil {
		// A machine without local Claude data can still summarize its
		// remotes; without either there is nothing to report.
		if !errors.Is(err, collector.ErrNoDataDir) || len(cfg.Remotes) == 0 {
			return nil, err
		}
		local = &collector.LocalDataset{CacheState: collector.SourceMissing}
	}

	var remotes []collector.RemoteDataset
	if len(cfg.Remotes) > 0 {
		runner := collector.NewSSHRunner(cfg.SSH.ConnectTimeout)
		rc := collector.NewRemoteCollector(runner, hostProgress)
		remotes = rc.Collect(ctx, cfg.Remotes, year)
	}

	merged := analyzer.Merge(local, remotes)
	return analyzer.Compute(year, merged, time.Now()), nil
}

// hostProgress reports remote collection progress on stderr. Failures are
// always surfaced; start/done chatter only with --verbose.
func hostProgress(host string, event collector.HostEvent, err error) {
	switch event {
	case collector.HostFailed:
		fmt.Fprintf(os.Stderr, "warning: skipping %s: %v\n", host, err)
	case collector.HostStarted:
		if flagVerbose {
			fmt.Fprintf(os.Stderr, "collecting from %s...\n", host)
		}
	case collector.HostDone:
		if flagVerbose {
			fmt.Fprintf(os.Stderr, "collected %s\n", host)
		}
	}
}

func setupColor(cfg *config.Config) {
	output.AutoDetect()
	if flagNoColor || !cfg.Output.Color {
		output.SetNoColor(true)
	}
}
