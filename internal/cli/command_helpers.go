package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pluqqy/configviewer/internal/logging"
	"github.com/pluqqy/configviewer/pkg/files"
	"github.com/pluqqy/configviewer/pkg/models"
)

// CommandContext carries the settings and logger shared by subcommands
type CommandContext struct {
	ConfigPath string
	LogFile    string
	Verbose    bool
	Settings   *models.Settings

	logger *logging.Logger
	errOut io.Writer
}

// NewCommandContext reads the persistent flags of cmd. Flags that are not
// registered (a subcommand run on its own in tests) keep their zero value.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	configPath, _ := cmd.Flags().GetString("config")
	logFile, _ := cmd.Flags().GetString("log-file")
	verbose, _ := cmd.Flags().GetBool("verbose")

	return &CommandContext{
		ConfigPath: configPath,
		LogFile:    logFile,
		Verbose:    verbose,
		errOut:     cmd.ErrOrStderr(),
	}
}

// LoadSettings reads the settings file once
func (c *CommandContext) LoadSettings() (*models.Settings, error) {
	if c.Settings != nil {
		return c.Settings, nil
	}

	settings, err := files.ReadSettings(c.ConfigPath)
	if err != nil {
		return nil, err
	}
	if c.LogFile != "" {
		settings.Log.File = c.LogFile
	}

	c.Settings = settings
	return settings, nil
}

// LoadSettingsWithDefault loads settings or returns default if error
func (c *CommandContext) LoadSettingsWithDefault() *models.Settings {
	settings, err := c.LoadSettings()
	if err != nil {
		PrintWarning("using default settings: %v", err)
		settings = models.DefaultSettings()
		c.Settings = settings
	}
	return settings
}

// Logger returns the subcommand logger: debug output on stderr with
// --verbose, otherwise the --log-file flag or log.file from settings.
func (c *CommandContext) Logger() (*logging.Logger, error) {
	if c.logger != nil {
		return c.logger, nil
	}

	path := c.LogFile
	if path == "" && c.Settings != nil {
		path = c.Settings.Log.File
	}

	switch {
	case c.Verbose:
		c.logger = logging.New(logging.LogLevelDebug, c.errOut)
	case path != "":
		level := logging.LogLevelInfo
		if c.Settings != nil {
			level = logging.ParseLevel(c.Settings.Log.Level)
		}
		l, err := logging.NewFile(level, path)
		if err != nil {
			return nil, err
		}
		c.logger = l
	default:
		c.logger = logging.Discard()
	}
	return c.logger, nil
}

// Close releases the log file, if any
func (c *CommandContext) Close() error {
	if c.logger == nil {
		return nil
	}
	return c.logger.Close()
}

// ResolveTab picks the --tab value or falls back to the configured
// default tab.
func (c *CommandContext) ResolveTab(flag string) (models.Tab, error) {
	if strings.TrimSpace(flag) == "" {
		return c.LoadSettingsWithDefault().InitialTab(), nil
	}
	return ValidateTab(flag)
}

// ResolveEndpoint takes the endpoint argument, or the configured
// server.endpoint when no argument was given.
func (c *CommandContext) ResolveEndpoint(args []string) (models.Endpoint, error) {
	if len(args) > 0 && args[0] != "" {
		return ValidateEndpoint(args[0])
	}
	configured := c.LoadSettingsWithDefault().Server.Endpoint
	if configured == "" {
		return models.Endpoint{}, fmt.Errorf("no endpoint given and server.endpoint is not set")
	}
	return ValidateEndpoint(configured)
}
