package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pluqqy/configviewer/pkg/fetch"
	"github.com/pluqqy/configviewer/pkg/handoff"
	"github.com/pluqqy/configviewer/pkg/models"
)

var testEndpoint = models.Endpoint{Host: "10.0.0.5", Port: 8080}

func newTestContent(f *fakeFetcher, h *fakeHandler) *ContentModel {
	m := NewContentModel(testOptions(&fakeProber{}, f, h), testEndpoint)
	m.SetSize(100, 40)
	return m
}

func configsURL() string { return models.ResourceURL(testEndpoint, models.TabConfigs) }
func subsURL() string    { return models.ResourceURL(testEndpoint, models.TabSubscriptions) }

// loadContent presses enter and applies the fetch result
func loadContent(t *testing.T, m *ContentModel) {
	t.Helper()
	_, cmd := m.Update(keyEnter())
	if cmd == nil {
		t.Fatal("enter should start a fetch")
	}
	m.Update(findMsg[fetchResultMsg](t, cmd))
}

func TestContentStartsOnConfigsIdle(t *testing.T) {
	m := newTestContent(&fakeFetcher{}, &fakeHandler{})

	if m.Selector().Tab() != models.TabConfigs {
		t.Errorf("initial tab = %v, want configs", m.Selector().Tab())
	}
	if m.Selector().State().Phase != models.FetchIdle {
		t.Errorf("initial phase = %v, want idle", m.Selector().State().Phase)
	}
	view := m.View()
	if !strings.Contains(view, configsURL()) {
		t.Errorf("view missing url %q", configsURL())
	}
	if !strings.Contains(view, "Fetch File Content") {
		t.Error("view missing fetch trigger")
	}
}

func TestContentFetchAndSelectFirstLine(t *testing.T) {
	f := &fakeFetcher{lines: map[string][]string{
		configsURL(): fetch.SplitLines("vless://x\nvmess://y"),
	}}
	h := &fakeHandler{}
	m := newTestContent(f, h)

	_, cmd := m.Update(keyEnter())
	if m.Selector().State().Phase != models.FetchLoading {
		t.Fatalf("phase = %v, want loading", m.Selector().State().Phase)
	}
	if strings.Contains(m.View(), "Fetch File Content") {
		t.Error("fetch trigger should be hidden while loading")
	}

	m.Update(findMsg[fetchResultMsg](t, cmd))
	state := m.Selector().State()
	if state.Phase != models.FetchLoaded {
		t.Fatalf("phase = %v, want loaded", state.Phase)
	}
	if len(state.Content) != 2 {
		t.Fatalf("got %d lines, want 2", len(state.Content))
	}
	view := m.View()
	if !strings.Contains(view, "vless://x") || !strings.Contains(view, "vmess://y") {
		t.Error("view should list both entries")
	}

	_, cmd = m.Update(keyEnter())
	handled := findMsg[lineHandledMsg](t, cmd)
	if len(h.lines) != 1 || h.lines[0] != "vless://x" {
		t.Errorf("handler lines = %v, want [vless://x]", h.lines)
	}

	_, cmd = m.Update(handled)
	if _, ok := drain(t, cmd)[0].(NoticesMsg); !ok {
		t.Error("handled line should produce notices")
	}
	if len(f.calls) != 1 || f.calls[0] != configsURL() {
		t.Errorf("fetch calls = %v", f.calls)
	}
}

func TestContentCursorSelectsSecondLine(t *testing.T) {
	f := &fakeFetcher{lines: map[string][]string{
		configsURL(): {"vless://x", "vmess://y"},
	}}
	h := &fakeHandler{}
	m := newTestContent(f, h)
	loadContent(t, m)

	m.Update(keyDown())
	_, cmd := m.Update(keyEnter())
	drain(t, cmd)

	if len(h.lines) != 1 || h.lines[0] != "vmess://y" {
		t.Errorf("handler lines = %v, want [vmess://y]", h.lines)
	}
}

func TestContentNoRefetchWhileLoadingOrLoaded(t *testing.T) {
	f := &fakeFetcher{lines: map[string][]string{configsURL(): {"a"}}}
	m := newTestContent(f, &fakeHandler{})

	_, first := m.Update(keyEnter())
	if _, second := m.Update(keyEnter()); second != nil {
		t.Error("enter while loading should be ignored")
	}
	m.Update(findMsg[fetchResultMsg](t, first))

	if len(f.calls) != 1 {
		t.Errorf("fetcher called %d times, want 1", len(f.calls))
	}
}

func TestContentErrorShowsMessageAndRetry(t *testing.T) {
	f := &fakeFetcher{errs: map[string]error{
		configsURL(): &fetch.StatusError{Code: 404, Text: "Not Found"},
	}}
	m := newTestContent(f, &fakeHandler{})
	loadContent(t, m)

	state := m.Selector().State()
	if state.Phase != models.FetchError {
		t.Fatalf("phase = %v, want error", state.Phase)
	}
	view := m.View()
	if !strings.Contains(view, "Error : Failed to fetch file : Not Found") {
		t.Errorf("view missing error text, got:\n%s", view)
	}
	if !strings.Contains(view, "Fetch File Content") {
		t.Error("fetch trigger should be offered again after an error")
	}

	f.errs = nil
	f.lines = map[string][]string{configsURL(): {"ok"}}
	loadContent(t, m)
	if m.Selector().State().Phase != models.FetchLoaded {
		t.Errorf("retry phase = %v, want loaded", m.Selector().State().Phase)
	}
}

func TestContentTransportErrorMessage(t *testing.T) {
	f := &fakeFetcher{errs: map[string]error{configsURL(): errors.New("connection refused")}}
	m := newTestContent(f, &fakeHandler{})
	loadContent(t, m)

	if got := m.Selector().State().Message; got != "connection refused" {
		t.Errorf("message = %q, want %q", got, "connection refused")
	}
}

func TestContentTabSwitchDiscardsStaleFetch(t *testing.T) {
	f := &fakeFetcher{lines: map[string][]string{
		configsURL(): {"vless://x"},
		subsURL():    {"https://sub"},
	}}
	m := newTestContent(f, &fakeHandler{})

	_, cmd := m.Update(keyEnter())
	stale := findMsg[fetchResultMsg](t, cmd)

	m.Update(keyTab())
	if m.Selector().Tab() != models.TabSubscriptions {
		t.Fatalf("tab = %v, want subs", m.Selector().Tab())
	}
	if m.Selector().State().Phase != models.FetchIdle {
		t.Fatalf("phase after tab switch = %v, want idle", m.Selector().State().Phase)
	}

	m.Update(stale)
	if m.Selector().State().Phase != models.FetchIdle {
		t.Errorf("stale result changed phase to %v", m.Selector().State().Phase)
	}
	if strings.Contains(m.View(), "vless://x") {
		t.Error("stale content leaked into the subs tab")
	}
	if !strings.Contains(m.View(), subsURL()) {
		t.Errorf("view missing url %q", subsURL())
	}
}

func TestContentTabSwitchResetsLoadedContent(t *testing.T) {
	f := &fakeFetcher{lines: map[string][]string{configsURL(): {"vless://x"}}}
	m := newTestContent(f, &fakeHandler{})
	loadContent(t, m)

	m.Update(keyTab())
	m.Update(keyTab())

	if m.Selector().Tab() != models.TabConfigs {
		t.Errorf("tab = %v, want configs", m.Selector().Tab())
	}
	if m.Selector().State().Phase != models.FetchIdle {
		t.Errorf("phase = %v, want idle", m.Selector().State().Phase)
	}
}

func TestContentShiftTabSelectsPreviousTab(t *testing.T) {
	m := newTestContent(&fakeFetcher{}, &fakeHandler{})

	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.Selector().Tab() != models.TabSubscriptions {
		t.Errorf("tab = %v, want subs", m.Selector().Tab())
	}
	if !strings.Contains(m.View(), subsURL()) {
		t.Errorf("view missing url %q", subsURL())
	}
}

func TestContentFuzzyFilter(t *testing.T) {
	f := &fakeFetcher{lines: map[string][]string{
		configsURL(): {"vless://alpha", "vmess://beta", "trojan://gamma"},
	}}
	h := &fakeHandler{}
	m := newTestContent(f, h)
	loadContent(t, m)

	m.Update(keyRunes("/"))
	if !m.filtering {
		t.Fatal("slash should open the filter")
	}
	m.Update(keyRunes("trojan"))
	if len(m.visible) != 1 {
		t.Fatalf("visible = %d lines, want 1", len(m.visible))
	}

	// enter closes the filter, the second enter selects
	m.Update(keyEnter())
	_, cmd := m.Update(keyEnter())
	drain(t, cmd)

	if len(h.lines) != 1 || h.lines[0] != "trojan://gamma" {
		t.Errorf("handler lines = %v, want [trojan://gamma]", h.lines)
	}
}

func TestContentFilterEscRestoresAllLines(t *testing.T) {
	f := &fakeFetcher{lines: map[string][]string{configsURL(): {"a1", "b2", "c3"}}}
	m := newTestContent(f, &fakeHandler{})
	loadContent(t, m)

	m.Update(keyRunes("/"))
	m.Update(keyRunes("b2"))
	m.Update(keyEsc())

	if m.filtering {
		t.Error("esc should close the filter")
	}
	if len(m.visible) != 3 {
		t.Errorf("visible = %d lines, want 3", len(m.visible))
	}
}

func TestContentEmptyLinePlaceholder(t *testing.T) {
	f := &fakeFetcher{lines: map[string][]string{configsURL(): fetch.SplitLines("a\n")}}
	m := newTestContent(f, &fakeHandler{})
	loadContent(t, m)

	if !strings.Contains(m.View(), "(empty line)") {
		t.Error("empty trailing line should render a placeholder")
	}
}

func TestContentBackSwitchesToPing(t *testing.T) {
	m := newTestContent(&fakeFetcher{}, &fakeHandler{})

	_, cmd := m.Update(keyEsc())
	msg := findMsg[SwitchViewMsg](t, cmd)
	if msg.view != pingView {
		t.Errorf("view = %v, want ping", msg.view)
	}
}

func TestContentSelectIgnoredWhileHandling(t *testing.T) {
	f := &fakeFetcher{lines: map[string][]string{configsURL(): {"vless://x"}}}
	h := &fakeHandler{notices: []handoff.Notice{{Kind: handoff.NoticeSuccess, Message: "Copied"}}}
	m := newTestContent(f, h)
	loadContent(t, m)

	_, first := m.Update(keyEnter())
	if _, second := m.Update(keyEnter()); second != nil {
		t.Error("second enter before the first completes should be ignored")
	}
	m.Update(findMsg[lineHandledMsg](t, first))

	_, third := m.Update(keyEnter())
	if third == nil {
		t.Error("selection should be possible again once handled")
	}
}
