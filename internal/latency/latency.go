// Package latency measures round-trip time to each region's service host.
//
// A probe is one TCP handshake; connect time approximates one round trip
// without the raw-socket privileges ICMP needs.
package latency

import (
	"context"
	"net"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/make-your-choice/choice-ctl/internal/logging"
	"github.com/make-your-choice/choice-ctl/internal/region"
)

const (
	DefaultTimeout     = 2 * time.Second
	DefaultPort        = "443"
	DefaultConcurrency = 8
)

// DialFunc opens a connection; net.Dialer.DialContext satisfies it.
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// Result is the outcome of probing one region.
type Result struct {
	Region  string
	Host    string
	Latency time.Duration
	Err     error
}

// OK reports whether the probe connected.
func (r Result) OK() bool {
	return r.Err == nil
}

// Millis returns the latency in whole milliseconds, or -1 if the probe failed.
func (r Result) Millis() int64 {
	if r.Err != nil {
		return -1
	}
	return r.Latency.Milliseconds()
}

// Prober times TCP connects.
type Prober struct {
	Timeout     time.Duration
	Port        string
	Concurrency int
	Dial        DialFunc
}

// NewProber returns a prober with default port and concurrency.
func NewProber(timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	d := &net.Dialer{}
	return &Prober{
		Timeout:     timeout,
		Port:        DefaultPort,
		Concurrency: DefaultConcurrency,
		Dial:        d.DialContext,
	}
}

// Probe connects to host once and returns the elapsed time.
func (p *Prober) Probe(ctx context.Context, host string) (time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	start := time.Now()
	conn, err := p.Dial(ctx, "tcp", net.JoinHostPort(host, p.Port))
	if err != nil {
		return 0, err
	}
	elapsed := time.Since(start)
	conn.Close()
	return elapsed, nil
}

// ProbeRegions probes every region's service host concurrently. The ping
// beacon only answers UDP, so it is not dialled. Results are
// in input order; a failed probe is reported in its Result, never returned.
func (p *Prober) ProbeRegions(ctx context.Context, regions []region.Region) []Result {
	results := make([]Result, len(regions))

	var g errgroup.Group
	limit := p.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	g.SetLimit(limit)

	for i, r := range regions {
		g.Go(func() error {
			host := r.ServiceHost()
			d, err := p.Probe(ctx, host)
			results[i] = Result{Region: r.ID, Host: host, Latency: d, Err: err}
			if err != nil {
				logging.Debug("probe failed", "region", r.ID, "host", host, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// ByRegion indexes results by region identifier.
func ByRegion(results []Result) map[string]Result {
	out := make(map[string]Result, len(results))
	for _, r := range results {
		out[r.Region] = r
	}
	return out
}
