package models

import "time"

// Settings represents the application configuration
type Settings struct {
	Server ServerSettings `yaml:"server"`
	Probe  ProbeSettings  `yaml:"probe"`
	Fetch  FetchSettings  `yaml:"fetch"`
	Launch LaunchSettings `yaml:"launch"`
	Log    LogSettings    `yaml:"log"`
}

// ServerSettings pre-fills the ping screen
type ServerSettings struct {
	Endpoint   string `yaml:"endpoint"`
	DefaultTab string `yaml:"default_tab"` // "subs" or "configs"
}

// ProbeSettings controls the reachability check
type ProbeSettings struct {
	TimeoutMs        int `yaml:"timeout_ms"`
	ReachablePauseMs int `yaml:"reachable_pause_ms"`
}

// FetchSettings controls the content download
type FetchSettings struct {
	TimeoutMs int `yaml:"timeout_ms"` // 0 disables the timeout
}

// LaunchSettings controls the clipboard label and the external app handoff
type LaunchSettings struct {
	Package        string   `yaml:"package"`
	ClipLabel      string   `yaml:"clip_label"`
	ResolveCommand []string `yaml:"resolve_command"`
	StartCommand   []string `yaml:"start_command"`
}

// LogSettings controls the diagnostic log
type LogSettings struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

const (
	DefaultLaunchPackage = "moe.nb4a"
	DefaultClipLabel     = "vpnConfig"
	PackagePlaceholder   = "{package}"
)

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		Server: ServerSettings{
			Endpoint:   "",
			DefaultTab: "configs",
		},
		Probe: ProbeSettings{
			TimeoutMs:        3000,
			ReachablePauseMs: 3000,
		},
		Fetch: FetchSettings{
			TimeoutMs: 0,
		},
		Launch: LaunchSettings{
			Package:        DefaultLaunchPackage,
			ClipLabel:      DefaultClipLabel,
			ResolveCommand: []string{"pm", "path", PackagePlaceholder},
			StartCommand:   []string{"monkey", "-p", PackagePlaceholder, "-c", "android.intent.category.LAUNCHER", "1"},
		},
		Log: LogSettings{
			File:  "",
			Level: "info",
		},
	}
}

// ProbeTimeout returns the probe timeout as a duration
func (s *Settings) ProbeTimeout() time.Duration {
	return time.Duration(s.Probe.TimeoutMs) * time.Millisecond
}

// ReachablePause returns how long "reachable" is shown before moving on
func (s *Settings) ReachablePause() time.Duration {
	return time.Duration(s.Probe.ReachablePauseMs) * time.Millisecond
}

// FetchTimeout returns the fetch timeout; zero means none
func (s *Settings) FetchTimeout() time.Duration {
	return time.Duration(s.Fetch.TimeoutMs) * time.Millisecond
}

// InitialTab returns the configured starting tab, falling back to Configs
func (s *Settings) InitialTab() Tab {
	tab, err := ParseTab(s.Server.DefaultTab)
	if err != nil {
		return TabConfigs
	}
	return tab
}
