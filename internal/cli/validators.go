package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pluqqy/configviewer/pkg/models"
)

// ValidateOutputFormat checks the --output flag
func ValidateOutputFormat(format string) error {
	switch OutputFormat(strings.ToLower(format)) {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	}
	return fmt.Errorf("invalid output format: %s (must be: text, json, or yaml)", format)
}

// ValidateEndpoint parses a host:port argument
func ValidateEndpoint(s string) (models.Endpoint, error) {
	endpoint, err := models.ParseEndpoint(strings.TrimSpace(s))
	if err != nil {
		return models.Endpoint{}, fmt.Errorf("invalid endpoint %q: %w", s, err)
	}
	return endpoint, nil
}

// ValidateTab parses the --tab flag
func ValidateTab(s string) (models.Tab, error) {
	tab, err := models.ParseTab(s)
	if err != nil {
		return tab, fmt.Errorf("invalid tab: %s (must be: configs or subs)", s)
	}
	return tab, nil
}

// ValidateLineIndex parses a 0-based line index and checks it against
// the number of fetched lines.
func ValidateLineIndex(s string, count int) (int, error) {
	index, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid line index %q: must be a number", s)
	}
	if count == 0 {
		return 0, fmt.Errorf("no lines to select")
	}
	if index < 0 || index >= count {
		return 0, fmt.Errorf("line index %d out of range (0-%d)", index, count-1)
	}
	return index, nil
}
