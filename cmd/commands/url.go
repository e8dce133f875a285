package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/configviewer/internal/cli"
	"github.com/pluqqy/configviewer/pkg/models"
)

// NewURLCommand creates the url command
func NewURLCommand() *cobra.Command {
	var tab string
	var all bool

	cmd := &cobra.Command{
		Use:   "url [host:port]",
		Short: "Print the resource URL of a tab",
		Long: `Print the address the viewer fetches for a tab.

Examples:
  configviewer url 192.168.1.254:5643
  configviewer url 192.168.1.254:5643 --tab subs
  configviewer url 192.168.1.254:5643 --all`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cli.NewCommandContext(cmd)
			endpoint, err := ctx.ResolveEndpoint(args)
			if err != nil {
				return err
			}

			if all {
				for _, t := range models.Tabs {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", t.Name(), models.ResourceURL(endpoint, t))
				}
				return nil
			}

			selected, err := ctx.ResolveTab(tab)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), models.ResourceURL(endpoint, selected))
			return nil
		},
	}

	cmd.Flags().StringVarP(&tab, "tab", "t", "", "Tab to resolve: configs or subs (default from server.default_tab)")
	cmd.Flags().BoolVar(&all, "all", false, "Print the URL of every tab")

	return cmd
}
