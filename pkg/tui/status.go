package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// StatusFeedback represents a temporary status message
type StatusFeedback struct {
	Message   string
	Icon      string
	ShowUntil time.Time
	Type      StatusType
	seq       int
}

// StatusType represents the type of status message
type StatusType int

const (
	StatusTypeSuccess StatusType = iota
	StatusTypeWarning
	StatusTypeError
	StatusTypeInfo
)

// StatusManager manages the toast-style notifications of the status bar
type StatusManager struct {
	CurrentStatus   *StatusFeedback
	DefaultDuration time.Duration
	seq             int
}

// NewStatusManager creates a new status manager
func NewStatusManager() *StatusManager {
	return &StatusManager{
		DefaultDuration: 2 * time.Second,
	}
}

// ShowFeedback displays a status message with an icon
func (sm *StatusManager) ShowFeedback(icon, message string, statusType StatusType) tea.Cmd {
	sm.seq++
	seq := sm.seq
	sm.CurrentStatus = &StatusFeedback{
		Message:   message,
		Icon:      icon,
		ShowUntil: time.Now().Add(sm.DefaultDuration),
		Type:      statusType,
		seq:       seq,
	}

	return tea.Tick(sm.DefaultDuration, func(time.Time) tea.Msg {
		return ClearStatusMsg{seq: seq}
	})
}

// ShowSuccess shows a success message
func (sm *StatusManager) ShowSuccess(message string) tea.Cmd {
	return sm.ShowFeedback("✓", message, StatusTypeSuccess)
}

// ShowWarning shows a warning message
func (sm *StatusManager) ShowWarning(message string) tea.Cmd {
	return sm.ShowFeedback("⚠", message, StatusTypeWarning)
}

// ShowError shows an error message
func (sm *StatusManager) ShowError(message string) tea.Cmd {
	return sm.ShowFeedback("×", message, StatusTypeError)
}

// ShowInfo shows an info message
func (sm *StatusManager) ShowInfo(message string) tea.Cmd {
	return sm.ShowFeedback("ℹ", message, StatusTypeInfo)
}

// HandleClear clears the status if msg belongs to the message on screen.
// A clear scheduled by an older message leaves a newer one alone.
func (sm *StatusManager) HandleClear(msg ClearStatusMsg) {
	if sm.CurrentStatus != nil && sm.CurrentStatus.seq == msg.seq {
		sm.CurrentStatus = nil
	}
}

// Clear removes the current status
func (sm *StatusManager) Clear() {
	sm.CurrentStatus = nil
}

// IsActive checks if a status is currently showing
func (sm *StatusManager) IsActive() bool {
	if sm.CurrentStatus == nil {
		return false
	}

	if time.Now().After(sm.CurrentStatus.ShowUntil) {
		sm.CurrentStatus = nil
		return false
	}

	return true
}

// GetStatus returns the current status message if active
func (sm *StatusManager) GetStatus() (string, StatusType, bool) {
	if !sm.IsActive() {
		return "", StatusTypeInfo, false
	}
	return fmt.Sprintf("%s %s", sm.CurrentStatus.Icon, sm.CurrentStatus.Message), sm.CurrentStatus.Type, true
}

// ClearStatusMsg is sent to clear the status
type ClearStatusMsg struct {
	seq int
}
