package files

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pluqqy/configviewer/pkg/models"
)

func TestReadSettingsMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.yaml")

	settings, err := ReadSettings(path)
	if err != nil {
		t.Fatalf("ReadSettings error: %v", err)
	}
	if !reflect.DeepEqual(settings, models.DefaultSettings()) {
		t.Errorf("ReadSettings = %+v, want defaults", settings)
	}
}

func TestReadSettingsPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := `server:
  endpoint: 192.168.1.254:5643
  default_tab: subs
probe:
  timeout_ms: 1500
launch:
  package: com.v2ray.ang
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	settings, err := ReadSettings(path)
	if err != nil {
		t.Fatalf("ReadSettings error: %v", err)
	}

	if settings.Server.Endpoint != "192.168.1.254:5643" {
		t.Errorf("Endpoint = %q", settings.Server.Endpoint)
	}
	if settings.InitialTab() != models.TabSubscriptions {
		t.Errorf("InitialTab() = %v, want Subs", settings.InitialTab())
	}
	if settings.Probe.TimeoutMs != 1500 {
		t.Errorf("TimeoutMs = %d, want 1500", settings.Probe.TimeoutMs)
	}
	if settings.Probe.ReachablePauseMs != 3000 {
		t.Errorf("ReachablePauseMs = %d, want default 3000", settings.Probe.ReachablePauseMs)
	}
	if settings.Launch.Package != "com.v2ray.ang" {
		t.Errorf("Package = %q", settings.Launch.Package)
	}
	if settings.Launch.ClipLabel != "vpnConfig" {
		t.Errorf("ClipLabel = %q, want default", settings.Launch.ClipLabel)
	}
}

func TestReadSettingsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "server: [unterminated"},
		{"zero probe timeout", "probe:\n  timeout_ms: 0\n"},
		{"negative fetch timeout", "fetch:\n  timeout_ms: -1\n"},
		{"unknown tab", "server:\n  default_tab: rules\n"},
		{"empty start command", "launch:\n  start_command: []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := ReadSettings(path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
