package probe

import (
	"context"
	"errors"
	"net"
	"strconv"
	"time"

	"github.com/pluqqy/configviewer/pkg/models"
)

// DefaultTimeout bounds a single reachability check
const DefaultTimeout = 3000 * time.Millisecond

// Dialer opens the transient connection used to test liveness
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Result captures the outcome of a reachability check
type Result struct {
	Target    string
	Reachable bool
	Latency   time.Duration
	Err       error
	CheckedAt time.Time
}

// TimedOut reports whether the check failed because the timeout elapsed
func (r Result) TimedOut() bool {
	if r.Err == nil {
		return false
	}
	if errors.Is(r.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(r.Err, &netErr) && netErr.Timeout()
}

// Prober checks whether a host:port accepts TCP connections
type Prober struct {
	Timeout time.Duration
	Dialer  Dialer
}

// New creates a prober with the given timeout; zero selects DefaultTimeout
func New(timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Prober{
		Timeout: timeout,
		Dialer:  &net.Dialer{},
	}
}

// Probe reports whether the endpoint string is reachable. Malformed input
// is a failed probe, never an error.
func (p *Prober) Probe(ctx context.Context, endpoint string) bool {
	return p.Check(ctx, endpoint).Reachable
}

// Check runs a single bounded connection attempt and closes the
// connection on success.
func (p *Prober) Check(ctx context.Context, endpoint string) Result {
	result := Result{Target: endpoint, CheckedAt: time.Now()}

	ep, err := models.ParseEndpoint(endpoint)
	if err != nil {
		result.Err = err
		return result
	}

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	dialer := p.Dialer
	if dialer == nil {
		dialer = &net.Dialer{}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(ep.Host, strconv.Itoa(ep.Port)))
	result.Latency = time.Since(start)
	if err != nil {
		result.Err = err
		return result
	}
	conn.Close()

	result.Reachable = true
	return result
}
