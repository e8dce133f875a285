package commands

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pluqqy/configviewer/internal/cli"
)

// fetchOutput is the json/yaml shape of a fetched document
type fetchOutput struct {
	URL   string   `json:"url" yaml:"url"`
	Tab   string   `json:"tab" yaml:"tab"`
	Count int      `json:"count" yaml:"count"`
	Lines []string `json:"lines" yaml:"lines"`
}

// NewFetchCommand creates the fetch command
func NewFetchCommand() *cobra.Command {
	var (
		tab    string
		output string
		width  int
	)

	cmd := &cobra.Command{
		Use:   "fetch [host:port]",
		Short: "Download and list the lines of a tab",
		Long: `Fetch the configs or subscriptions document from the content
server and print its lines with their index. The index is what the copy
command expects.

Examples:
  # List configs
  configviewer fetch 192.168.1.254:5643

  # List subscriptions as JSON
  configviewer fetch 192.168.1.254:5643 --tab subs -o json

  # Shorten long lines to 60 columns
  configviewer fetch 192.168.1.254:5643 --width 60`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			output = strings.ToLower(output)
			return cli.ValidateOutputFormat(output)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cli.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
			ctx := cli.NewCommandContext(cmd)
			defer ctx.Close()

			settings := ctx.LoadSettingsWithDefault()
			logger, err := ctx.Logger()
			if err != nil {
				return err
			}
			endpoint, err := ctx.ResolveEndpoint(args)
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

			if cli.OutputFormat(output) != cli.FormatText {
				return cli.OutputResults(cmd.OutOrStdout(), output, fetchOutput{
					URL:   selector.URL(),
					Tab:   selected.Name(),
					Count: len(lines),
					Lines: lines,
				})
			}

			table := cli.NewTableFormatter(cmd.OutOrStdout())
			table.Header("#", "LINE")
			for i, line := range lines {
				if width > 0 {
					line = cli.TruncateString(line, width)
				}
				table.Row(strconv.Itoa(i), line)
			}
			table.Flush()
			return nil
		},
	}

	cmd.Flags().StringVarP(&tab, "tab", "t", "", "Tab to fetch: configs or subs (default from server.default_tab)")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text, json, or yaml")
	cmd.Flags().IntVar(&width, "width", 0, "Truncate lines to this many columns in text output")

	return cmd
}
