package handoff

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/pluqqy/configviewer/pkg/models"
)

// ErrAppNotFound is returned when the package cannot be resolved
var ErrAppNotFound = errors.New("app not found")

// Launcher starts an external application by package identifier
type Launcher interface {
	Launch(ctx context.Context, pkg string) error
}

// CommandLauncher resolves and starts packages through external commands.
// "{package}" in either command is replaced with the identifier.
type CommandLauncher struct {
	ResolveCommand []string
	StartCommand   []string

	lookPath func(file string) (string, error)
	run      func(ctx context.Context, name string, args ...string) error
}

// NewCommandLauncher creates a launcher from the launch settings
func NewCommandLauncher(s models.LaunchSettings) *CommandLauncher {
	return &CommandLauncher{
		ResolveCommand: s.ResolveCommand,
		StartCommand:   s.StartCommand,
		lookPath:       exec.LookPath,
		run:            runCommand,
	}
}

// Launch resolves pkg and starts it. A missing resolver or a failing
// resolve command is reported as ErrAppNotFound.
func (l *CommandLauncher) Launch(ctx context.Context, pkg string) error {
	if len(l.StartCommand) == 0 {
		return fmt.Errorf("no start command configured")
	}

	if len(l.ResolveCommand) > 0 {
		resolve := expand(l.ResolveCommand, pkg)
		if _, err := l.lookPath(resolve[0]); err != nil {
			return fmt.Errorf("%w: %s (resolver %s unavailable)", ErrAppNotFound, pkg, resolve[0])
		}
		if err := l.run(ctx, resolve[0], resolve[1:]...); err != nil {
			return fmt.Errorf("%w: %s", ErrAppNotFound, pkg)
		}
	}

	start := expand(l.StartCommand, pkg)
	if _, err := l.lookPath(start[0]); err != nil {
		if len(l.ResolveCommand) == 0 {
			return fmt.Errorf("%w: %s", ErrAppNotFound, pkg)
		}
		return fmt.Errorf("failed to start %s: %w", pkg, err)
	}
	if err := l.run(ctx, start[0], start[1:]...); err != nil {
		return fmt.Errorf("failed to start %s: %w", pkg, err)
	}
	return nil
}

func expand(command []string, pkg string) []string {
	out := make([]string, len(command))
	for i, arg := range command {
		out[i] = strings.ReplaceAll(arg, models.PackagePlaceholder, pkg)
	}
	return out
}

func runCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}
