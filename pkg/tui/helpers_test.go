package tui

import (
	"context"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pluqqy/configviewer/pkg/handoff"
	"github.com/pluqqy/configviewer/pkg/models"
	"github.com/pluqqy/configviewer/pkg/probe"
)

type fakeProber struct {
	mu        sync.Mutex
	reachable bool
	calls     []string
}

func (f *fakeProber) Check(ctx context.Context, endpoint string) probe.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, endpoint)
	return probe.Result{Target: endpoint, Reachable: f.reachable}
}

type fakeFetcher struct {
	mu    sync.Mutex
	lines map[string][]string
	errs  map[string]error
	calls []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, url)
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	return f.lines[url], nil
}

type fakeHandler struct {
	mu      sync.Mutex
	lines   []string
	notices []handoff.Notice
}

func (f *fakeHandler) SelectLine(ctx context.Context, line string) handoff.Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lines = append(f.lines, line)
	return handoff.Outcome{Line: line, Notices: f.notices}
}

func testSettings() *models.Settings {
	s := models.DefaultSettings()
	s.Probe.ReachablePauseMs = 1
	return s
}

func testOptions(p *fakeProber, f *fakeFetcher, h *fakeHandler) Options {
	return Options{
		Settings: testSettings(),
		Prober:   p,
		Fetcher:  f,
		Handler:  h,
	}
}

// drain runs cmd and any batched commands, returning the produced messages
func drain(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(t, c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// findMsg returns the first message of type T produced by cmd
func findMsg[T tea.Msg](t *testing.T, cmd tea.Cmd) T {
	t.Helper()
	for _, msg := range drain(t, cmd) {
		if typed, ok := msg.(T); ok {
			return typed
		}
	}
	var zero T
	t.Fatalf("no %T produced", zero)
	return zero
}

func keyEnter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }
func keyEsc() tea.KeyMsg   { return tea.KeyMsg{Type: tea.KeyEsc} }
func keyTab() tea.KeyMsg   { return tea.KeyMsg{Type: tea.KeyTab} }
func keyDown() tea.KeyMsg  { return tea.KeyMsg{Type: tea.KeyDown} }

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
