package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pluqqy/configviewer/cmd/commands"
	"github.com/pluqqy/configviewer/internal/cli"
	"github.com/pluqqy/configviewer/internal/logging"
	"github.com/pluqqy/configviewer/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

var (
	configPath string
	logFile    string
	verbose    bool
	quiet      bool
	noColor    bool
)

var rootCmd = &cobra.Command{
	Use:   "configviewer [host:port]",
	Short: "Browse VPN configs served on the local network",
	Long: `configviewer finds a content server on the local network, lists the
configs and subscriptions it serves, and hands the selected line to a VPN
client: the line is copied to the clipboard and the client is launched.

Without a subcommand the interactive viewer is started. An optional
host:port pre-fills the server address.`,
	Args: cobra.MaximumNArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cli.SetGlobalFlags(quiet, noColor)
	},
	RunE: runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx := cli.NewCommandContext(cmd)
	settings, err := ctx.LoadSettings()
	if err != nil {
		return err
	}
	if len(args) > 0 {
		settings.Server.Endpoint = args[0]
	}

	// The TUI owns the terminal; --verbose only raises the file log level
	level := logging.ParseLevel(settings.Log.Level)
	if verbose {
		level = logging.LogLevelDebug
	}
	logger, err := logging.NewFile(level, settings.Log.File)
	if err != nil {
		return err
	}
	defer logger.Close()

	logger.Info("configviewer %s starting", version)
	app := tui.NewApp(tui.DefaultOptions(settings, logger))
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to start the terminal user interface: %w", err)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Settings file (default $XDG_CONFIG_HOME/configviewer/settings.yaml)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write diagnostics to this file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress informational output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Plain text markers instead of symbols")

	rootCmd.AddCommand(commands.NewPingCommand())
	rootCmd.AddCommand(commands.NewFetchCommand())
	rootCmd.AddCommand(commands.NewCopyCommand())
	rootCmd.AddCommand(commands.NewURLCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(version))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
