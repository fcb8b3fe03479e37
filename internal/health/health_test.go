package health

import (
	"context"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/make-your-choice/choice-ctl/internal/hosts"
	"github.com/make-your-choice/choice-ctl/internal/latency"
	"github.com/make-your-choice/choice-ctl/internal/resolver"
	"github.com/make-your-choice/choice-ctl/internal/system"
	"github.com/make-your-choice/choice-ctl/internal/testutil"
)

func newTable(content string, exists bool) *hosts.Table {
	fs := system.NewMockFS()
	if exists {
		fs.AddFile("/etc/hosts", []byte(content), 0644)
	}
	return &hosts.Table{
		Path:     "/etc/hosts",
		FS:       fs,
		Executor: system.NewMockExecutor(),
		Flushers: []hosts.FlushCommand{{Name: "resolvectl", Args: []string{"flush-caches"}}, {Name: "nscd", Args: []string{"-i", "hosts"}}},
	}
}

func TestStatusConstants(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusHealthy, "healthy"},
		{StatusDegraded, "degraded"},
		{StatusUnhealthy, "unhealthy"},
	}

	for _, tt := range tests {
		if string(tt.status) != tt.want {
			t.Errorf("Status %v = %q, want %q", tt.status, tt.status, tt.want)
		}
	}
}

func TestCheckTable(t *testing.T) {
	tests := []struct {
		name    string
		content string
		exists  bool
		want    Status
		detail  string
	}{
		{"no block", testutil.PlainHosts(), true, StatusHealthy, "no block"},
		{"block intact", testutil.AppliedHosts(), true, StatusHealthy, "block intact"},
		{"dangling marker", testutil.DamagedHosts(), true, StatusDegraded, "1 markers"},
		{"missing", "", false, StatusDegraded, "does not exist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckTable(newTable(tt.content, tt.exists))
			if got.Status != tt.want {
				t.Errorf("Status = %q, want %q (%s)", got.Status, tt.want, got.Detail)
			}
			if !strings.Contains(got.Detail, tt.detail) {
				t.Errorf("Detail = %q, should contain %q", got.Detail, tt.detail)
			}
		})
	}
}

func TestCheckTable_ReadError(t *testing.T) {
	table := newTable(testutil.PlainHosts(), true)
	table.FS.(*system.MockFS).ReadFileErr = fmt.Errorf("input/output error")

	if got := CheckTable(table); got.Status != StatusUnhealthy {
		t.Errorf("Status = %q, want unhealthy", got.Status)
	}
}

func TestCheckFlushers(t *testing.T) {
	flushers := newTable("", false).Flushers

	only := func(name string) func(string) (string, error) {
		return func(file string) (string, error) {
			if file == name {
				return "/usr/bin/" + file, nil
			}
			return "", fmt.Errorf("%s: not found", file)
		}
	}

	got := CheckFlushers(flushers, only("nscd"))
	if got.Status != StatusHealthy || got.Detail != "available: nscd" {
		t.Errorf("one installed = %+v", got)
	}

	got = CheckFlushers(flushers, only("dscacheutil"))
	if got.Status != StatusDegraded {
		t.Errorf("none installed: Status = %q, want degraded", got.Status)
	}

	if got := CheckFlushers(nil, nil); got.Status != StatusHealthy {
		t.Errorf("none configured: Status = %q, want healthy", got.Status)
	}
}

func TestCheckResolution(t *testing.T) {
	cat := testutil.Catalog()

	got := CheckResolution(context.Background(), cat, resolver.Static{testutil.LondonService: "10.0.0.1"})
	if got.Status != StatusHealthy || !strings.Contains(got.Detail, "10.0.0.1") {
		t.Errorf("resolvable = %+v", got)
	}

	got = CheckResolution(context.Background(), cat, resolver.Static{})
	if got.Status != StatusDegraded || !strings.Contains(got.Detail, "Universal Redirect") {
		t.Errorf("unresolvable = %+v", got)
	}
}

func TestCheckReachability(t *testing.T) {
	prober := &latency.Prober{Timeout: time.Second, Port: latency.DefaultPort, Concurrency: 2, Dial: testutil.FakeDial}

	got := CheckReachability(context.Background(), testutil.Catalog(), prober)
	if got.Status != StatusDegraded {
		t.Errorf("Status = %q, want degraded with Paris refusing", got.Status)
	}
	if !strings.Contains(got.Detail, "2 of 3") {
		t.Errorf("Detail = %q, should count reachable regions", got.Detail)
	}

	prober.Dial = func(context.Context, string, string) (net.Conn, error) {
		return nil, fmt.Errorf("network unreachable")
	}
	if got := CheckReachability(context.Background(), testutil.Catalog(), prober); got.Status != StatusUnhealthy {
		t.Errorf("Status = %q, want unhealthy when nothing answers", got.Status)
	}
}

func TestRun(t *testing.T) {
	opts := CheckOptions{
		Table:    newTable(testutil.PlainHosts(), true),
		Catalog:  testutil.Catalog(),
		Resolver: resolver.Static{testutil.LondonService: "10.0.0.1"},
		LookPath: func(file string) (string, error) { return "/usr/bin/" + file, nil },
	}

	result := Run(context.Background(), opts)
	if len(result.Checks) != 3 {
		t.Fatalf("got %d checks, want 3 without a prober", len(result.Checks))
	}
	if result.Summary() != StatusHealthy {
		t.Errorf("Summary() = %q, want healthy: %+v", result.Summary(), result.Checks)
	}

	opts.Table = newTable(testutil.DamagedHosts(), true)
	if got := Run(context.Background(), opts).Summary(); got != StatusDegraded {
		t.Errorf("Summary() = %q, want degraded", got)
	}
}

func TestCheckResult_Summary(t *testing.T) {
	r := &CheckResult{Checks: []Check{
		{Status: StatusHealthy},
		{Status: StatusUnhealthy},
		{Status: StatusDegraded},
	}}
	if r.Summary() != StatusUnhealthy {
		t.Errorf("Summary() = %q, want unhealthy", r.Summary())
	}
	if (&CheckResult{}).Summary() != StatusHealthy {
		t.Error("empty result should be healthy")
	}
}
