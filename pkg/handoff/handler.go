package handoff

import (
	"context"
	"errors"

	"github.com/pluqqy/configviewer/internal/logging"
	"github.com/pluqqy/configviewer/pkg/models"
)

// NoticeKind classifies a transient notification
type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeWarning
	NoticeError
)

// Notice is a transient, toast-style message for the user
type Notice struct {
	Kind    NoticeKind
	Message string
}

// Outcome reports what selecting a line did
type Outcome struct {
	Line      string
	CopyErr   error
	LaunchErr error
	Notices   []Notice
}

// Launched reports whether the external app was started
func (o Outcome) Launched() bool {
	return o.LaunchErr == nil
}

// Handler copies a selected line and hands off to the VPN client
type Handler struct {
	Clipboard Clipboard
	Launcher  Launcher
	Package   string
	Label     string
	Logger    *logging.Logger
}

// NewHandler creates a handler using the system clipboard and the
// configured launch commands.
func NewHandler(s models.LaunchSettings, logger *logging.Logger) *Handler {
	return &Handler{
		Clipboard: SystemClipboard{},
		Launcher:  NewCommandLauncher(s),
		Package:   s.Package,
		Label:     s.ClipLabel,
		Logger:    logger,
	}
}

// SelectLine copies line verbatim and then launches the configured app.
// The copy always happens first; a missing app is not fatal.
func (h *Handler) SelectLine(ctx context.Context, line string) Outcome {
	out := Outcome{Line: line}

	label := h.Label
	if label == "" {
		label = models.DefaultClipLabel
	}
	pkg := h.Package
	if pkg == "" {
		pkg = models.DefaultLaunchPackage
	}

	if err := h.Clipboard.WriteText(label, line); err != nil {
		h.Logger.Error("clipboard write failed: %v", err)
		out.CopyErr = err
		out.Notices = append(out.Notices, Notice{Kind: NoticeError, Message: "Copy failed: " + err.Error()})
	} else {
		out.Notices = append(out.Notices, Notice{Kind: NoticeSuccess, Message: "Copied"})
	}

	err := h.Launcher.Launch(ctx, pkg)
	out.LaunchErr = err
	switch {
	case err == nil:
		h.Logger.Info("launched %s", pkg)
	case errors.Is(err, ErrAppNotFound):
		h.Logger.Info("launch skipped: %v", err)
		out.Notices = append(out.Notices, Notice{Kind: NoticeWarning, Message: "App not found"})
	default:
		h.Logger.Error("launch of %s failed: %v", pkg, err)
		out.Notices = append(out.Notices, Notice{Kind: NoticeError, Message: "Failed to open the app: " + err.Error()})
	}

	return out
}
