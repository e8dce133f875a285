package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"github.com/sahilm/fuzzy"

	"github.com/pluqqy/configviewer/internal/logging"
	"github.com/pluqqy/configviewer/pkg/flow"
	"github.com/pluqqy/configviewer/pkg/handoff"
	"github.com/pluqqy/configviewer/pkg/models"
)

const previewMaxLines = 4

// fetchResultMsg carries the selector that issued the fetch. Generations
// restart with every content screen, so the selector is what ties a
// result to the screen that asked for it.
type fetchResultMsg struct {
	selector *flow.Selector
	result   flow.FetchResult
}

type lineHandledMsg struct {
	outcome handoff.Outcome
}

// NoticesMsg carries toast notifications for the status bar
type NoticesMsg []handoff.Notice

// ContentModel is the tabbed screen that fetches and lists lines
type ContentModel struct {
	width    int
	height   int
	selector *flow.Selector
	fetcher  Fetcher
	handler  LineHandler
	logger   *logging.Logger
	spinner  spinner.Model
	help     help.Model
	keys     contentKeyMap

	// visible holds indices into the loaded lines, in display order
	visible   []int
	cursor    int
	offset    int
	filter    textinput.Model
	filtering bool
	handling  bool
}

// NewContentModel creates the content screen for a confirmed endpoint
func NewContentModel(opts Options, endpoint models.Endpoint) *ContentModel {
	opts = opts.withDefaults()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = CursorStyle

	fi := textinput.New()
	fi.Placeholder = "filter lines"
	fi.Prompt = "/ "
	fi.CharLimit = 128

	return &ContentModel{
		selector: flow.NewSelector(endpoint, opts.Settings.InitialTab()),
		fetcher:  opts.Fetcher,
		handler:  opts.Handler,
		logger:   opts.Logger,
		spinner:  sp,
		help:     help.New(),
		keys:     newContentKeyMap(),
		filter:   fi,
	}
}

func (m *ContentModel) Init() tea.Cmd {
	return nil
}

// SetSize updates the dimensions of the screen
func (m *ContentModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.filter.Width = max(width-6, 10)
	m.clampScroll()
}

// Selector exposes the fetch state holder
func (m *ContentModel) Selector() *flow.Selector {
	return m.selector
}

func (m *ContentModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m, m.updateFilter(msg)
		}
		return m, m.handleKey(msg)

	case fetchResultMsg:
		if msg.selector != m.selector {
			m.logger.Debug("discarded fetch result from a previous server")
			return m, nil
		}
		if !m.selector.Apply(msg.result) {
			m.logger.Debug("discarded stale fetch result (generation %d)", msg.result.Generation)
			return m, nil
		}
		state := m.selector.State()
		if state.Phase == models.FetchError {
			m.logger.Error("fetch %s failed: %s", m.selector.URL(), state.Message)
		} else {
			m.logger.Info("fetched %d lines from %s", len(state.Content), m.selector.URL())
		}
		m.resetList()
		return m, nil

	case lineHandledMsg:
		m.handling = false
		notices := NoticesMsg(msg.outcome.Notices)
		return m, func() tea.Msg { return notices }

	case spinner.TickMsg:
		if m.selector.State().Phase != models.FetchLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *ContentModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Back):
		return func() tea.Msg { return SwitchViewMsg{view: pingView} }
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	case key.Matches(msg, m.keys.NextTab):
		m.selectTab(m.selector.Tab().Next())
		return nil
	case key.Matches(msg, m.keys.PrevTab):
		m.selectTab(m.selector.Tab().Prev())
		return nil
	case key.Matches(msg, m.keys.Confirm):
		if m.selector.State().Phase == models.FetchLoaded {
			return m.selectCurrentLine()
		}
		return m.startFetch()
	}

	if m.selector.State().Phase != models.FetchLoaded {
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		return m.filter.Focus()
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-m.listHeight())
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(m.listHeight())
	case key.Matches(msg, m.keys.Home):
		m.moveCursor(-len(m.visible))
	case key.Matches(msg, m.keys.End):
		m.moveCursor(len(m.visible))
	}
	return nil
}

func (m *ContentModel) updateFilter(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.applyFilter()
		return nil
	case tea.KeyEnter:
		m.filtering = false
		m.filter.Blur()
		return nil
	case tea.KeyUp, tea.KeyDown:
		if msg.Type == tea.KeyUp {
			m.moveCursor(-1)
		} else {
			m.moveCursor(1)
		}
		return nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return cmd
}

func (m *ContentModel) selectTab(tab models.Tab) {
	m.selector.SelectTab(tab)
	m.filtering = false
	m.filter.Blur()
	m.filter.SetValue("")
	m.resetList()
}

func (m *ContentModel) startFetch() tea.Cmd {
	req, ok := m.selector.BeginFetch()
	if !ok {
		return nil
	}
	m.logger.Info("fetching %s", req.URL)
	return tea.Batch(m.spinner.Tick, m.fetchCmd(req))
}

func (m *ContentModel) fetchCmd(req flow.FetchRequest) tea.Cmd {
	fetcher := m.fetcher
	selector := m.selector
	return func() tea.Msg {
		lines, err := fetcher.Fetch(context.Background(), req.URL)
		return fetchResultMsg{selector: selector, result: flow.FetchResult{
			Generation: req.Generation,
			Lines:      lines,
			Err:        err,
		}}
	}
}

func (m *ContentModel) selectCurrentLine() tea.Cmd {
	line, ok := m.currentLine()
	if !ok || m.handling {
		return nil
	}
	m.handling = true
	handler := m.handler
	return func() tea.Msg {
		return lineHandledMsg{outcome: handler.SelectLine(context.Background(), line)}
	}
}

// currentLine returns the original line under the cursor
func (m *ContentModel) currentLine() (string, bool) {
	lines := m.selector.State().Content
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return "", false
	}
	idx := m.visible[m.cursor]
	if idx < 0 || idx >= len(lines) {
		return "", false
	}
	return lines[idx], true
}

func (m *ContentModel) resetList() {
	m.cursor = 0
	m.offset = 0
	m.applyFilter()
}

func (m *ContentModel) applyFilter() {
	lines := m.selector.State().Content
	query := m.filter.Value()

	m.visible = m.visible[:0]
	if query == "" {
		for i := range lines {
			m.visible = append(m.visible, i)
		}
	} else {
		for _, match := range fuzzy.Find(query, lines) {
			m.visible = append(m.visible, match.Index)
		}
	}
	m.clampScroll()
}

func (m *ContentModel) moveCursor(delta int) {
	m.cursor += delta
	m.clampScroll()
}

func (m *ContentModel) clampScroll() {
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	height := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+height {
		m.offset = m.cursor - height + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// listHeight is the number of rows left for lines after tabs, preview
// and help are laid out.
func (m *ContentModel) listHeight() int {
	// tab row (3) + url (1) + blank (1) + filter (1) + preview box + help (1)
	reserved := 3 + 1 + 1 + 1 + previewMaxLines + 2 + 1
	if m.help.ShowAll {
		reserved += 5
	}
	h := m.height - reserved
	if h < 3 {
		h = 3
	}
	return h
}

func (m *ContentModel) View() string {
	sections := []string{
		m.renderTabs(),
		DescriptionStyle.Render(m.selector.URL()),
		"",
		m.renderBody(),
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		ContentPaddingStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...)),
		ContentPaddingStyle.Render(m.help.View(m.keys)),
	)
}

func (m *ContentModel) renderTabs() string {
	var tabs []string
	for _, tab := range models.Tabs {
		style := InactiveTabStyle
		if tab == m.selector.Tab() {
			style = ActiveTabStyle
		}
		tabs = append(tabs, style.Render(tab.Name()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
}

func (m *ContentModel) renderBody() string {
	state := m.selector.State()
	fetchButton := ButtonStyle.Render("Fetch File Content")

	switch state.Phase {
	case models.FetchLoading:
		return m.spinner.View() + " " + DescriptionStyle.Render("Fetching...")
	case models.FetchError:
		return ErrorStyle.Render("Error : "+state.Message+" ") + "\n\n" + fetchButton
	case models.FetchLoaded:
		return m.renderLines()
	default:
		return fetchButton
	}
}

func (m *ContentModel) renderLines() string {
	var b strings.Builder
	lines := m.selector.State().Content

	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString(DescriptionStyle.Render(fmt.Sprintf("  %d/%d", len(m.visible), len(lines))))
	} else {
		b.WriteString(DescriptionStyle.Render(fmt.Sprintf("%d lines", len(lines))))
	}
	b.WriteString("\n")

	if len(m.visible) == 0 {
		b.WriteString(PlaceholderStyle.Render("No matching lines"))
		return b.String()
	}

	width := m.width - 6
	if width < 10 {
		width = 10
	}

	end := min(m.offset+m.listHeight(), len(m.visible))
	for i := m.offset; i < end; i++ {
		line := lines[m.visible[i]]
		text := truncate.StringWithTail(line, uint(width), "…")
		if line == "" {
			text = PlaceholderStyle.Render("(empty line)")
		}
		if i == m.cursor {
			b.WriteString(CursorStyle.Render("▸ ") + SelectedStyle.Render(text))
		} else {
			b.WriteString("  " + NormalStyle.Render(text))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	if current, ok := m.currentLine(); ok && current != "" {
		b.WriteString("\n")
		b.WriteString(m.renderPreview(current, width))
	}

	return b.String()
}

func (m *ContentModel) renderPreview(line string, width int) string {
	wrapped := wrap.String(wordwrap.String(line, width-2), width-2)
	rows := strings.Split(wrapped, "\n")
	if len(rows) > previewMaxLines {
		rows = rows[:previewMaxLines]
		rows[previewMaxLines-1] = truncate.StringWithTail(rows[previewMaxLines-1], uint(width-3), "…")
	}
	return PreviewStyle.Width(width).Render(strings.Join(rows, "\n"))
}
