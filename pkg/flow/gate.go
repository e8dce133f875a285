package flow

import (
	"github.com/pluqqy/configviewer/pkg/models"
)

// ProbeRequest describes a probe the caller should run off the UI loop
type ProbeRequest struct {
	Generation uint64
	Endpoint   string
}

// ProbeResult is posted back once a probe finishes
type ProbeResult struct {
	Generation uint64
	Reachable  bool
}

// Gate holds the reachability state of the ping screen. It must only be
// mutated from a single goroutine (the Bubble Tea update loop).
type Gate struct {
	reachability models.Reachability
	probing      bool
	generation   uint64
	target       string
}

// NewGate creates a gate with no probe run yet
func NewGate() *Gate {
	return &Gate{reachability: models.ReachabilityUnknown}
}

// Reachability returns the outcome of the latest probe
func (g *Gate) Reachability() models.Reachability {
	return g.reachability
}

// Probing reports whether a probe is in flight
func (g *Gate) Probing() bool {
	return g.probing
}

// Target returns the endpoint string of the latest probe
func (g *Gate) Target() string {
	return g.target
}

// BeginProbe starts a probe of input. It refuses while another probe is
// in flight.
func (g *Gate) BeginProbe(input string) (ProbeRequest, bool) {
	if g.probing {
		return ProbeRequest{}, false
	}
	g.generation++
	g.probing = true
	g.reachability = models.ReachabilityUnknown
	g.target = input
	return ProbeRequest{Generation: g.generation, Endpoint: input}, true
}

// ApplyProbe records a finished probe. Results from an older generation
// are dropped and false is returned.
func (g *Gate) ApplyProbe(result ProbeResult) bool {
	if result.Generation != g.generation || !g.probing {
		return false
	}
	g.probing = false
	if result.Reachable {
		g.reachability = models.Reachable
	} else {
		g.reachability = models.Unreachable
	}
	return true
}

// Commit confirms the reachable endpoint once the display pause for
// generation has elapsed.
func (g *Gate) Commit(generation uint64) (models.Endpoint, bool) {
	if generation != g.generation || g.reachability != models.Reachable {
		return models.Endpoint{}, false
	}
	ep, err := models.ParseEndpoint(g.target)
	if err != nil {
		return models.Endpoint{}, false
	}
	return ep, true
}

// Reset returns the gate to its initial state and invalidates anything
// still in flight.
func (g *Gate) Reset() {
	g.generation++
	g.probing = false
	g.reachability = models.ReachabilityUnknown
	g.target = ""
}
