package collector

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/blackwell-systems/wrapped/internal/config"
)

// Runner executes a single non-interactive command against a remote host and
// returns its captured stdout. It exists as an interface so remote collection
// can be tested without a live ssh transport.
type Runner interface {
	Run(ctx context.Context, host config.RemoteHost, command string) ([]byte, error)
}

// SSHRunner runs commands through the system ssh client.
type SSHRunner struct {
	// ConnectTimeoutSec bounds connection establishment; the remote channel
	// enforces no other timeout.
	ConnectTimeoutSec int
}

// NewSSHRunner returns a runner with the given connection timeout in seconds.
func NewSSHRunner(connectTimeoutSec int) *SSHRunner {
	if connectTimeoutSec <= 0 {
		connectTimeoutSec = config.DefaultSSHConnectTimeout
	}
	return &SSHRunner{ConnectTimeoutSec: connectTimeoutSec}
}

// sshArgs builds the common ssh arguments for a host.
func (r *SSHRunner) sshArgs(host config.RemoteHost) []string {
	args := []string{
		"-o", "BatchMode=yes",
		"-o", "StrictHostKeyChecking=accept-new",
		"-o", fmt.Sprintf("ConnectTimeout=%d", r.ConnectTimeoutSec),
	}
	if host.Port != 0 {
		args = append(args, "-p", fmt.Sprintf("%d", host.Port))
	}
	if host.Identity != "" {
		args = append(args, "-i", host.Identity)
	}
	return args
}

// Run executes command on the host and returns stdout. A nonzero exit status
// or transport error is returned as-is; callers treat it as absent data.
func (r *SSHRunner) Run(ctx context.Context, host config.RemoteHost, command string) ([]byte, error) {
	args := append(r.sshArgs(host), host.UserAtHost(), command)
	cmd := exec.CommandContext(ctx, "ssh", args...)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ssh %s: %w", host.UserAtHost(), err)
	}
	return out, nil
}

// TestConnection verifies ssh connectivity to the host.
func (r *SSHRunner) TestConnection(ctx context.Context, host config.RemoteHost) error {
	out, err := r.Run(ctx, host, "echo ok")
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	if strings.TrimSpace(string(out)) != "ok" {
		return fmt.Errorf("unexpected response from remote")
	}
	return nil
}
