package commands

import (
	"context"
	"errors"

	"github.com/pluqqy/configviewer/internal/logging"
	"github.com/pluqqy/configviewer/pkg/fetch"
	"github.com/pluqqy/configviewer/pkg/flow"
	"github.com/pluqqy/configviewer/pkg/handoff"
	"github.com/pluqqy/configviewer/pkg/models"
)

// newHandler builds the clipboard and launcher pair for copy. Tests swap
// it for fakes.
var newHandler = handoff.NewHandler

// fetchTab runs one fetch through a Selector so the CLI goes through the
// same state transitions as the TUI.
func fetchTab(ctx context.Context, settings *models.Settings, logger *logging.Logger, endpoint models.Endpoint, tab models.Tab) (*flow.Selector, error) {
	selector := flow.NewSelector(endpoint, tab)
	req, ok := selector.BeginFetch()
	if !ok {
		return nil, errors.New("fetch already in progress")
	}

	logger.Info("fetching %s", req.URL)
	lines, err := fetch.New(settings.FetchTimeout()).Fetch(ctx, req.URL)
	selector.Apply(flow.FetchResult{Generation: req.Generation, Lines: lines, Err: err})

	state := selector.State()
	if state.Phase == models.FetchError {
		logger.Error("fetch %s failed: %v", req.URL, err)
		return selector, errors.New(state.Message)
	}
	logger.Debug("fetched %d lines", len(state.Content))
	return selector, nil
}
