package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/configviewer/internal/cli"
	"github.com/pluqqy/configviewer/pkg/handoff"
)

// NewCopyCommand creates the copy command
func NewCopyCommand() *cobra.Command {
	var (
		tab      string
		noLaunch bool
	)

	cmd := &cobra.Command{
		Use:   "copy <host:port> <index>",
		Short: "Copy a fetched line and open the VPN app",
		Long: `Fetch a tab, copy the line at <index> to the clipboard and launch
the configured VPN client. A missing client is reported but the copy is
kept.

Run 'configviewer fetch' first to see the indices.

Examples:
  # Copy the first config and open the client
  configviewer copy 192.168.1.254:5643 0

  # Copy the second subscription without opening anything
  configviewer copy 192.168.1.254:5643 1 --tab subs --no-launch`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
			ctx := cli.NewCommandContext(cmd)
			defer ctx.Close()

			settings := ctx.LoadSettingsWithDefault()
			logger, err := ctx.Logger()
			if err != nil {
				return err
			}
			endpoint, err := ctx.ResolveEndpoint(args[:1])
			if err != nil {
				return err
			}
			selected, err := ctx.ResolveTab(tab)
			if err != nil {
				return err
			}

			selector, err := fetchTab(cmd.Context(), settings, logger, endpoint, selected)
			if err != nil {
				return err
			}
			lines := selector.State().Content

			index, err := cli.ValidateLineIndex(args[1], len(lines))
			if err != nil {
				return err
			}
			line := lines[index]

			handler := newHandler(settings.Launch, logger)
			if noLaunch {
				if err := handler.Clipboard.WriteText(handler.Label, line); err != nil {
					return fmt.Errorf("copy failed: %w", err)
				}
				cli.PrintSuccess("Copied line %d", index)
				return nil
			}

			outcome := handler.SelectLine(cmd.Context(), line)
			for _, n := range outcome.Notices {
				switch n.Kind {
				case handoff.NoticeSuccess:
					cli.PrintSuccess("%s", n.Message)
				case handoff.NoticeWarning:
					cli.PrintWarning("%s", n.Message)
				default:
					cli.PrintError("%s", n.Message)
				}
			}
			if outcome.CopyErr != nil {
				return fmt.Errorf("copy failed: %w", outcome.CopyErr)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&tab, "tab", "t", "", "Tab to fetch: configs or subs (default from server.default_tab)")
	cmd.Flags().BoolVar(&noLaunch, "no-launch", false, "Only copy, do not open the VPN app")

	return cmd
}
