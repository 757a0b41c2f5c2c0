package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/blackwell-systems/wrapped/internal/collector"
	"github.com/blackwell-systems/wrapped/internal/config"
	"github.com/blackwell-systems/wrapped/internal/output"
	"github.com/spf13/cobra"
)

var hostsCheck bool

var hostsCmd = &cobra.Command{
	Use:   "hosts",
	Short: "List configured remote hosts",
	Long: `List the remote hosts configured for collection. With --check, open an
SSH connection to each host and report whether it is reachable.`,
	RunE: runHosts,
}

func init() {
	hostsCmd.Flags().BoolVar(&hostsCheck, "check", false, "Test SSH connectivity to each host")
	rootCmd.AddCommand(hostsCmd)
}

type hostStatus struct {
	Name  string `json:"name"`
	Host  string `json:"host"`
	OK    *bool  `json:"ok,omitempty"`
	Error string `json:"error,omitempty"`
}

func runHosts(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	setupColor(cfg)

	if len(cfg.Remotes) == 0 {
		fmt.Println("no remote hosts configured")
		return nil
	}

	var runner *collector.SSHRunner
	if hostsCheck {
		runner = collector.NewSSHRunner(cfg.SSH.ConnectTimeout)
	}

	var statuses []hostStatus
	for _, h := range cfg.Remotes {
		st := hostStatus{Name: h.Label(), Host: h.UserAtHost()}
		if runner != nil {
			err := runner.TestConnection(cmd.Context(), h)
			ok := err == nil
			st.OK = &ok
			if err != nil {
				st.Error = err.Error()
			}
		}
		statuses = append(statuses, st)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(statuses)
	}

	fmt.Println(output.Section("Remote hosts"))
	for _, st := range statuses {
		line := fmt.Sprintf("   %-20s %s", st.Name, output.StyleMuted.Render(st.Host))
		if st.OK != nil {
			if *st.OK {
				line += "  " + output.StyleSuccess.Render("reachable")
			} else {
				line += "  " + output.StyleBold.Render("unreachable") + " " + output.StyleMuted.Render(st.Error)
			}
		}
		fmt.Println(line)
	}
	fmt.Println()
	return nil
}
