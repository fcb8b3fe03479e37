package latency

import (
	"context"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/make-your-choice/choice-ctl/internal/region"
)

// fakeDialer returns in-memory connections, failing for listed hosts.
type fakeDialer struct {
	mu      sync.Mutex
	fail    map[string]bool
	delay   time.Duration
	dialed  []string
	active  int
	maxSeen int
}

func (f *fakeDialer) dial(ctx context.Context, network, address string) (net.Conn, error) {
	f.mu.Lock()
	f.dialed = append(f.dialed, address)
	f.active++
	if f.active > f.maxSeen {
		f.maxSeen = f.active
	}
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.active--
		f.mu.Unlock()
	}()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	host, _, _ := net.SplitHostPort(address)
	if f.fail[host] {
		return nil, fmt.Errorf("connection refused")
	}
	client, server := net.Pipe()
	server.Close()
	return client, nil
}

func testRegions() []region.Region {
	return []region.Region{
		{ID: "A", Hosts: []string{"a-svc", "a-ping"}},
		{ID: "B", Hosts: []string{"b-svc", "b-ping"}},
		{ID: "C", Hosts: []string{"c-svc"}},
	}
}

func TestProbeRegions(t *testing.T) {
	fd := &fakeDialer{fail: map[string]bool{"b-svc": true}}
	p := NewProber(time.Second)
	p.Dial = fd.dial

	results := p.ProbeRegions(context.Background(), testRegions())

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, id := range []string{"A", "B", "C"} {
		if results[i].Region != id {
			t.Errorf("result %d region = %q, want %q", i, results[i].Region, id)
		}
	}
	if !results[0].OK() || results[0].Host != "a-svc" {
		t.Errorf("A = %+v, want success on a-svc", results[0])
	}
	if results[1].OK() || results[1].Millis() != -1 {
		t.Errorf("B = %+v, want failure with -1ms", results[1])
	}
	if results[2].Host != "c-svc" {
		t.Errorf("C host = %q, want c-svc", results[2].Host)
	}

	for _, addr := range fd.dialed {
		if _, port, _ := net.SplitHostPort(addr); port != DefaultPort {
			t.Errorf("dialed %q, want port %s", addr, DefaultPort)
		}
	}
}

func TestProbeRegions_DialsServiceHost(t *testing.T) {
	fd := &fakeDialer{}
	p := NewProber(time.Second)
	p.Dial = fd.dial

	london := region.Region{
		ID:    "Europe (London)",
		Hosts: []string{"gamelift.eu-west-2.amazonaws.com", "gamelift-ping.eu-west-2.api.aws"},
	}
	results := p.ProbeRegions(context.Background(), []region.Region{london})

	want := "gamelift.eu-west-2.amazonaws.com:443"
	if len(fd.dialed) != 1 || fd.dialed[0] != want {
		t.Errorf("dialed %v, want [%s]", fd.dialed, want)
	}
	if results[0].Host != "gamelift.eu-west-2.amazonaws.com" {
		t.Errorf("Host = %q, want service host", results[0].Host)
	}
}

func TestProbe_Timeout(t *testing.T) {
	fd := &fakeDialer{delay: time.Second}
	p := NewProber(20 * time.Millisecond)
	p.Dial = fd.dial

	if _, err := p.Probe(context.Background(), "slow.example"); err == nil {
		t.Error("expected timeout error")
	}
}

func TestProbeRegions_ConcurrencyLimit(t *testing.T) {
	fd := &fakeDialer{delay: 10 * time.Millisecond}
	p := NewProber(time.Second)
	p.Dial = fd.dial
	p.Concurrency = 2

	var regions []region.Region
	for i := 0; i < 6; i++ {
		regions = append(regions, region.Region{ID: fmt.Sprintf("R%d", i), Hosts: []string{fmt.Sprintf("r%d", i)}})
	}
	p.ProbeRegions(context.Background(), regions)

	if fd.maxSeen > 2 {
		t.Errorf("max concurrent dials = %d, want <= 2", fd.maxSeen)
	}
	if len(fd.dialed) != 6 {
		t.Errorf("dialed %d hosts, want 6", len(fd.dialed))
	}
}

func TestByRegion(t *testing.T) {
	m := ByRegion([]Result{{Region: "A", Latency: time.Millisecond}, {Region: "B", Err: fmt.Errorf("x")}})
	if m["A"].Millis() != 1 || m["B"].Millis() != -1 {
		t.Errorf("ByRegion = %+v", m)
	}
}
