package flow

import (
	"errors"

	"github.com/pluqqy/configviewer/pkg/fetch"
	"github.com/pluqqy/configviewer/pkg/models"
)

// FetchRequest describes a fetch the caller should run off the UI loop
type FetchRequest struct {
	Generation uint64
	URL        string
}

// FetchResult is posted back once a fetch finishes
type FetchResult struct {
	Generation uint64
	Lines      []string
	Err        error
}

// Selector owns the tab selection and the fetch state of the content
// screen. Like Gate it is single-writer.
type Selector struct {
	endpoint   models.Endpoint
	tab        models.Tab
	url        string
	state      models.FetchState
	generation uint64
}

// NewSelector creates an idle selector for a confirmed endpoint
func NewSelector(endpoint models.Endpoint, tab models.Tab) *Selector {
	s := &Selector{endpoint: endpoint}
	s.SelectTab(tab)
	return s
}

// Endpoint returns the confirmed server endpoint
func (s *Selector) Endpoint() models.Endpoint { return s.endpoint }

// Tab returns the selected tab
func (s *Selector) Tab() models.Tab { return s.tab }

// URL returns the resource URL of the selected tab
func (s *Selector) URL() string { return s.url }

// State returns the current fetch state
func (s *Selector) State() models.FetchState { return s.state }

// SelectTab switches tabs. The state always returns to idle and any
// result still in flight becomes stale.
func (s *Selector) SelectTab(tab models.Tab) {
	s.tab = tab
	s.url = models.ResourceURL(s.endpoint, tab)
	s.state = models.IdleState()
	s.generation++
}

// BeginFetch moves to loading when the current state allows a fetch
func (s *Selector) BeginFetch() (FetchRequest, bool) {
	if !s.state.CanFetch() {
		return FetchRequest{}, false
	}
	s.state = models.LoadingState()
	return FetchRequest{Generation: s.generation, URL: s.url}, true
}

// Apply lands a finished fetch. Stale results are discarded and false is
// returned.
func (s *Selector) Apply(result FetchResult) bool {
	if result.Generation != s.generation || s.state.Phase != models.FetchLoading {
		return false
	}
	if result.Err != nil {
		s.state = models.ErrorState(FetchErrorMessage(result.Err))
		return true
	}
	s.state = models.LoadedState(result.Lines)
	return true
}

// FetchErrorMessage renders a fetch failure the way the content screen
// shows it.
func FetchErrorMessage(err error) string {
	var statusErr *fetch.StatusError
	if errors.As(err, &statusErr) {
		return "Failed to fetch file : " + statusErr.Text
	}
	return err.Error()
}
