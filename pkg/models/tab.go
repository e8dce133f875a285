package models

import (
	"fmt"
	"strings"
)

// Tab selects which of the two server resources is shown
type Tab int

const (
	TabSubscriptions Tab = iota
	TabConfigs
)

// Tabs lists every tab in display order
var Tabs = []Tab{TabSubscriptions, TabConfigs}

const (
	subsPath    = "/Subs/subs.txt"
	configsPath = "/Config/configs.txt"
)

// Name returns the label shown in the tab row
func (t Tab) Name() string {
	switch t {
	case TabSubscriptions:
		return "Subs"
	case TabConfigs:
		return "Configs"
	default:
		return fmt.Sprintf("Tab(%d)", int(t))
	}
}

// Path returns the server-relative resource path for the tab
func (t Tab) Path() string {
	if t == TabSubscriptions {
		return subsPath
	}
	return configsPath
}

// Next returns the tab after t, wrapping around
func (t Tab) Next() Tab {
	return Tabs[(int(t)+1)%len(Tabs)]
}

// Prev returns the tab before t, wrapping around
func (t Tab) Prev() Tab {
	return Tabs[(int(t)+len(Tabs)-1)%len(Tabs)]
}

func (t Tab) String() string {
	return t.Name()
}

// ParseTab converts a user-supplied tab name or index
func ParseTab(s string) (Tab, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "subs", "sub", "subscriptions", "0":
		return TabSubscriptions, nil
	case "configs", "config", "1":
		return TabConfigs, nil
	default:
		return TabConfigs, fmt.Errorf("invalid tab: %s (must be: subs or configs)", s)
	}
}

// ResourceURL derives the URL fetched for a tab on the given endpoint
func ResourceURL(endpoint Endpoint, tab Tab) string {
	return "http://" + endpoint.String() + tab.Path()
}
