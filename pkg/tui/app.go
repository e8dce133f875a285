package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pluqqy/configviewer/pkg/handoff"
)

type sessionState int

const (
	pingView sessionState = iota
	contentView
)

// header and status bar rows
const appChromeHeight = 2

type App struct {
	state   sessionState
	opts    Options
	ping    *PingModel
	content *ContentModel
	status  *StatusManager
	width   int
	height  int
}

func NewApp(opts Options) *App {
	opts = opts.withDefaults()
	return &App{
		state:  pingView,
		opts:   opts,
		ping:   NewPingModel(opts),
		status: NewStatusManager(),
	}
}

func (a *App) Init() tea.Cmd {
	return a.ping.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ping.SetSize(msg.Width, msg.Height-appChromeHeight)
		if a.content != nil {
			a.content.SetSize(msg.Width, msg.Height-appChromeHeight)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}

	case ClearStatusMsg:
		a.status.HandleClear(msg)
		return a, nil

	case NoticesMsg:
		return a, a.showNotices(msg)

	case EndpointConfirmedMsg:
		a.opts.Logger.Info("endpoint %s confirmed", msg.Endpoint)
		a.content = NewContentModel(a.opts, msg.Endpoint)
		a.content.SetSize(a.width, a.height-appChromeHeight)
		a.state = contentView
		return a, tea.Batch(a.content.Init(), a.status.ShowInfo("Connected to "+msg.Endpoint.String()))

	case SwitchViewMsg:
		if msg.view == pingView {
			a.state = pingView
			a.content = nil
			a.status.Clear()
			a.ping.Reset()
			return a, a.ping.Init()
		}
	}

	// Route updates to the active view
	var cmd tea.Cmd
	switch a.state {
	case pingView:
		_, cmd = a.ping.Update(msg)
	case contentView:
		if a.content != nil {
			_, cmd = a.content.Update(msg)
		}
	}

	return a, cmd
}

// showNotices renders the notices of one action as a single toast. The
// most severe notice decides the colour.
func (a *App) showNotices(notices NoticesMsg) tea.Cmd {
	if len(notices) == 0 {
		return nil
	}

	messages := make([]string, 0, len(notices))
	worst := handoff.NoticeSuccess
	for _, n := range notices {
		messages = append(messages, n.Message)
		if n.Kind > worst {
			worst = n.Kind
		}
	}
	text := strings.Join(messages, " · ")

	switch worst {
	case handoff.NoticeError:
		return a.status.ShowError(text)
	case handoff.NoticeWarning:
		return a.status.ShowWarning(text)
	default:
		return a.status.ShowSuccess(text)
	}
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	var title, content string
	switch a.state {
	case contentView:
		title = a.content.Selector().Endpoint().String()
		content = a.content.View()
	default:
		content = a.ping.View()
	}

	statusBar := ""
	if text, statusType, ok := a.status.GetStatus(); ok {
		statusBar = GetStatusStyle(statusType).Render(text)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(a.width, title),
		content,
		statusBar,
	)
}

// SwitchViewMsg asks the app to change screens
type SwitchViewMsg struct {
	view sessionState
}
