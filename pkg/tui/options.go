package tui

import (
	"context"

	"github.com/pluqqy/configviewer/internal/logging"
	"github.com/pluqqy/configviewer/pkg/fetch"
	"github.com/pluqqy/configviewer/pkg/handoff"
	"github.com/pluqqy/configviewer/pkg/models"
	"github.com/pluqqy/configviewer/pkg/probe"
)

// Prober runs a reachability check
type Prober interface {
	Check(ctx context.Context, endpoint string) probe.Result
}

// Fetcher downloads the lines of a resource
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]string, error)
}

// LineHandler acts on a selected line
type LineHandler interface {
	SelectLine(ctx context.Context, line string) handoff.Outcome
}

// Options wires the collaborators of the TUI
type Options struct {
	Settings *models.Settings
	Prober   Prober
	Fetcher  Fetcher
	Handler  LineHandler
	Logger   *logging.Logger
}

// DefaultOptions builds the production collaborators from settings
func DefaultOptions(settings *models.Settings, logger *logging.Logger) Options {
	return Options{
		Settings: settings,
		Prober:   probe.New(settings.ProbeTimeout()),
		Fetcher:  fetch.New(settings.FetchTimeout()),
		Handler:  handoff.NewHandler(settings.Launch, logger),
		Logger:   logger,
	}
}

func (o Options) withDefaults() Options {
	if o.Settings == nil {
		o.Settings = models.DefaultSettings()
	}
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}
	if o.Prober == nil {
		o.Prober = probe.New(o.Settings.ProbeTimeout())
	}
	if o.Fetcher == nil {
		o.Fetcher = fetch.New(o.Settings.FetchTimeout())
	}
	if o.Handler == nil {
		o.Handler = handoff.NewHandler(o.Settings.Launch, o.Logger)
	}
	return o
}
