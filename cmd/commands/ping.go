package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pluqqy/configviewer/internal/cli"
	"github.com/pluqqy/configviewer/pkg/probe"
)

// NewPingCommand creates the ping command
func NewPingCommand() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "ping [host:port]",
		Short: "Check whether the content server accepts connections",
		Long: `Open a TCP connection to the content server and report whether it
is reachable. The connection is closed immediately.

Without an argument the server.endpoint setting is used.

Examples:
  # Ping a server on the local network
  configviewer ping 192.168.1.254:5643

  # Give up after one second
  configviewer ping 192.168.1.254:5643 --timeout 1s`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPing(cmd, args, timeout)
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Connection timeout (default from probe.timeout_ms)")

	return cmd
}

func runPing(cmd *cobra.Command, args []string, timeout time.Duration) error {
	cli.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
	ctx := cli.NewCommandContext(cmd)
	defer ctx.Close()

	settings := ctx.LoadSettingsWithDefault()
	logger, err := ctx.Logger()
	if err != nil {
		return err
	}

	target := settings.Server.Endpoint
	if len(args) > 0 {
		target = args[0]
	}
	if target == "" {
		return fmt.Errorf("no endpoint given and server.endpoint is not set")
	}

	if timeout <= 0 {
		timeout = settings.ProbeTimeout()
	}

	result := probe.New(timeout).Check(cmd.Context(), target)
	switch {
	case result.Reachable:
		logger.Info("%s reachable in %v", result.Target, result.Latency)
	case result.TimedOut():
		logger.Info("%s timed out after %v", result.Target, result.Latency)
	default:
		logger.Info("%s not reachable: %v", result.Target, result.Err)
	}

	if !result.Reachable {
		cli.PrintError("Server is not reachable! (%s)", target)
		return fmt.Errorf("server %s is not reachable", target)
	}

	cli.PrintSuccess("Server is reachable! (%s, %v)", target, result.Latency.Round(time.Millisecond))
	return nil
}
