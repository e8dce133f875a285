package probe

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"
)

func listen(t *testing.T) net.Listener {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()
	return ln
}

// closedAddr returns an address that was listening a moment ago and now refuses connections
func closedAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()
	return addr
}

type blockingDialer struct{}

func (blockingDialer) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

type recordingDialer struct {
	calls int
}

func (d *recordingDialer) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	d.calls++
	return nil, errors.New("should not be called")
}

func TestProbeReachable(t *testing.T) {
	ln := listen(t)
	p := New(time.Second)

	result := p.Check(context.Background(), ln.Addr().String())
	if !result.Reachable {
		t.Fatalf("expected reachable, got error %v", result.Err)
	}
	if result.Target != ln.Addr().String() {
		t.Errorf("Target = %q, want %q", result.Target, ln.Addr().String())
	}
}

func TestProbeRefused(t *testing.T) {
	p := New(DefaultTimeout)
	addr := closedAddr(t)

	start := time.Now()
	ok := p.Probe(context.Background(), addr)
	elapsed := time.Since(start)

	if ok {
		t.Fatal("expected refused connection to be unreachable")
	}
	if elapsed > DefaultTimeout+500*time.Millisecond {
		t.Errorf("probe took %v, want at most ~%v", elapsed, DefaultTimeout)
	}
}

func TestProbeTimeout(t *testing.T) {
	p := &Prober{Timeout: 50 * time.Millisecond, Dialer: blockingDialer{}}

	start := time.Now()
	result := p.Check(context.Background(), "10.0.0.5:8080")
	elapsed := time.Since(start)

	if result.Reachable {
		t.Fatal("expected timeout to be unreachable")
	}
	if !result.TimedOut() {
		t.Errorf("TimedOut() = false, err = %v", result.Err)
	}
	if elapsed > time.Second {
		t.Errorf("probe took %v, want about 50ms", elapsed)
	}
}

func TestProbeMalformedInput(t *testing.T) {
	inputs := []string{"", "10.0.0.5", "10.0.0.5:http", "host:", "a:b:c", "host:-3"}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			dialer := &recordingDialer{}
			p := &Prober{Timeout: time.Second, Dialer: dialer}

			if p.Probe(context.Background(), input) {
				t.Errorf("Probe(%q) = true, want false", input)
			}
			if dialer.calls != 0 {
				t.Errorf("Probe(%q) dialed %d times, want 0", input, dialer.calls)
			}
		})
	}
}

func TestNewDefaultsTimeout(t *testing.T) {
	if p := New(0); p.Timeout != DefaultTimeout {
		t.Errorf("New(0).Timeout = %v, want %v", p.Timeout, DefaultTimeout)
	}
}
