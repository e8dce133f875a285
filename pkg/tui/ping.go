package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pluqqy/configviewer/internal/logging"
	"github.com/pluqqy/configviewer/pkg/flow"
	"github.com/pluqqy/configviewer/pkg/models"
	"github.com/pluqqy/configviewer/pkg/probe"
)

const (
	msgEnterAddress = "Enter an IP and click 'Ping Server'"
	msgReachable    = "Server is reachable!"
	msgUnreachable  = "Server is not reachable!"
)

type probeResultMsg struct {
	result flow.ProbeResult
	detail probe.Result
}

type probeCommitMsg struct {
	generation uint64
}

// EndpointConfirmedMsg is sent once a reachable endpoint has been shown
// for the display pause.
type EndpointConfirmedMsg struct {
	Endpoint models.Endpoint
}

// PingModel is the screen where the server address is entered and probed
type PingModel struct {
	width   int
	height  int
	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    pingKeyMap
	gate    *flow.Gate
	prober  Prober
	pause   time.Duration
	logger  *logging.Logger
}

// NewPingModel creates the ping screen
func NewPingModel(opts Options) *PingModel {
	opts = opts.withDefaults()

	ti := textinput.New()
	ti.Placeholder = "192.168.1.254:5643"
	ti.Prompt = "› "
	ti.CharLimit = 255
	ti.Width = 40
	ti.SetValue(opts.Settings.Server.Endpoint)
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = CursorStyle

	return &PingModel{
		input:   ti,
		spinner: sp,
		help:    help.New(),
		keys:    newPingKeyMap(),
		gate:    flow.NewGate(),
		prober:  opts.Prober,
		pause:   opts.Settings.ReachablePause(),
		logger:  opts.Logger,
	}
}

func (m *PingModel) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize updates the dimensions of the screen
func (m *PingModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
}

// Reset clears the previous probe so a different server can be entered
func (m *PingModel) Reset() {
	m.gate.Reset()
	m.input.Focus()
}

// Reachability exposes the gate state for rendering and tests
func (m *PingModel) Reachability() models.Reachability {
	return m.gate.Reachability()
}

func (m *PingModel) canPing() bool {
	return !m.gate.Probing() && m.gate.Reachability() != models.Reachable
}

func (m *PingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Ping):
			return m, m.startProbe()
		}
		if m.gate.Reachability() == models.Reachable {
			// Endpoint is about to be committed
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case probeResultMsg:
		if !m.gate.ApplyProbe(msg.result) {
			return m, nil
		}
		m.logProbe(msg.detail)
		if msg.result.Reachable {
			m.input.Blur()
			generation := msg.result.Generation
			return m, tea.Tick(m.pause, func(time.Time) tea.Msg {
				return probeCommitMsg{generation: generation}
			})
		}
		return m, nil

	case probeCommitMsg:
		endpoint, ok := m.gate.Commit(msg.generation)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return EndpointConfirmedMsg{Endpoint: endpoint}
		}

	case spinner.TickMsg:
		if !m.gate.Probing() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *PingModel) startProbe() tea.Cmd {
	if !m.canPing() {
		return nil
	}
	req, ok := m.gate.BeginProbe(strings.TrimSpace(m.input.Value()))
	if !ok {
		return nil
	}
	m.logger.Info("pinging %q", req.Endpoint)
	return tea.Batch(m.spinner.Tick, m.probeCmd(req))
}

func (m *PingModel) probeCmd(req flow.ProbeRequest) tea.Cmd {
	prober := m.prober
	return func() tea.Msg {
		detail := prober.Check(context.Background(), req.Endpoint)
		return probeResultMsg{
			result: flow.ProbeResult{Generation: req.Generation, Reachable: detail.Reachable},
			detail: detail,
		}
	}
}

func (m *PingModel) logProbe(r probe.Result) {
	switch {
	case r.Reachable:
		m.logger.Info("%s reachable in %v", r.Target, r.Latency)
	case r.TimedOut():
		m.logger.Info("%s timed out after %v", r.Target, r.Latency)
	default:
		m.logger.Info("%s not reachable: %v", r.Target, r.Err)
	}
}

func (m *PingModel) View() string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render("Enter IP Address"))
	b.WriteString("\n")
	b.WriteString(InputStyle.Render(m.input.View()))
	b.WriteString("\n\n")

	if m.canPing() {
		b.WriteString(ButtonStyle.Render("Ping Server"))
		b.WriteString("\n\n")
	}

	switch {
	case m.gate.Probing():
		b.WriteString(m.spinner.View() + " " + DescriptionStyle.Render("Pinging "+m.gate.Target()+"..."))
	case m.gate.Reachability() == models.Reachable:
		b.WriteString(SuccessStyle.Render(msgReachable))
	case m.gate.Reachability() == models.Unreachable:
		b.WriteString(ErrorStyle.Render(msgUnreachable))
	default:
		b.WriteString(DescriptionStyle.Render(msgEnterAddress))
	}

	body := lipgloss.NewStyle().
		Width(m.width).
		Align(lipgloss.Center).
		Render(b.String())

	helpView := m.help.View(m.keys)
	if m.height > 0 {
		gap := m.height - lipgloss.Height(body) - lipgloss.Height(helpView)
		if gap > 0 {
			top := gap / 2
			body = strings.Repeat("\n", top) + body + strings.Repeat("\n", gap-top)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, ContentPaddingStyle.Render(helpView))
}
