package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Endpoint-related errors
var (
	ErrMalformedEndpoint = errors.New("malformed endpoint")
)

// Endpoint is the host/port pair identifying the content server
type Endpoint struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`
}

// ParseEndpoint parses a "host:port" string. The input must split on ':'
// into exactly two parts and the port must be a non-negative integer.
// Host syntax is left to the dialer.
func ParseEndpoint(s string) (Endpoint, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return Endpoint{}, fmt.Errorf("%w: %q is not host:port", ErrMalformedEndpoint, s)
	}

	port, err := strconv.Atoi(parts[1])
	if err != nil {
		return Endpoint{}, fmt.Errorf("%w: invalid port %q", ErrMalformedEndpoint, parts[1])
	}
	if port < 0 {
		return Endpoint{}, fmt.Errorf("%w: negative port %d", ErrMalformedEndpoint, port)
	}

	return Endpoint{Host: parts[0], Port: port}, nil
}

// String returns the endpoint in host:port form
func (e Endpoint) String() string {
	return e.Host + ":" + strconv.Itoa(e.Port)
}
