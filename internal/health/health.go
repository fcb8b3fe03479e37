package health

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/make-your-choice/choice-ctl/internal/hosts"
	"github.com/make-your-choice/choice-ctl/internal/latency"
	"github.com/make-your-choice/choice-ctl/internal/region"
	"github.com/make-your-choice/choice-ctl/internal/resolver"
)

// Status represents the outcome of a check
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// rank orders statuses from best to worst.
func (s Status) rank() int {
	switch s {
	case StatusHealthy:
		return 0
	case StatusDegraded:
		return 1
	default:
		return 2
	}
}

// CheckOptions holds options for health checking.
type CheckOptions struct {
	Table    *hosts.Table
	Catalog  *region.Catalog
	Resolver resolver.Resolver
	// Prober is optional; without it reachability is not checked.
	Prober *latency.Prober
	// LookPath finds flush commands. Defaults to exec.LookPath.
	LookPath func(file string) (string, error)
}

// Check is the result of one named check
type Check struct {
	Name   string `json:"name" yaml:"name"`
	Status Status `json:"status" yaml:"status"`
	Detail string `json:"detail" yaml:"detail"`
}

// CheckResult contains the results of all checks
type CheckResult struct {
	Checks []Check `json:"checks" yaml:"checks"`
}

// Summary returns the worst status across all checks.
func (r *CheckResult) Summary() Status {
	worst := StatusHealthy
	for _, c := range r.Checks {
		if c.Status.rank() > worst.rank() {
			worst = c.Status
		}
	}
	return worst
}

// CheckTable verifies the hosts table can be read and its block is intact.
func CheckTable(t *hosts.Table) Check {
	c := Check{Name: "hosts file"}

	if !t.FS.Exists(t.Path) {
		c.Status = StatusDegraded
		c.Detail = fmt.Sprintf("%s does not exist, it will be created on apply", t.Path)
		return c
	}

	doc, err := t.Read()
	if err != nil {
		c.Status = StatusUnhealthy
		c.Detail = err.Error()
		return c
	}

	switch n := hosts.CountMarkers(doc); n {
	case 0:
		c.Status = StatusHealthy
		c.Detail = fmt.Sprintf("%s readable, no block", t.Path)
	case 2:
		c.Status = StatusHealthy
		c.Detail = fmt.Sprintf("%s readable, block intact", t.Path)
	default:
		c.Status = StatusDegraded
		c.Detail = fmt.Sprintf("%s has %d markers, repaired on next apply", t.Path, n)
	}
	return c
}

// CheckFlushers reports which cache flush commands are installed.
func CheckFlushers(flushers []hosts.FlushCommand, lookPath func(string) (string, error)) Check {
	c := Check{Name: "dns cache flush"}
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	if len(flushers) == 0 {
		c.Status = StatusHealthy
		c.Detail = "no flush commands configured"
		return c
	}

	var found []string
	for _, f := range flushers {
		if _, err := lookPath(f.Name); err == nil {
			found = append(found, f.Name)
		}
	}

	if len(found) == 0 {
		c.Status = StatusDegraded
		c.Detail = "no flush command installed, changes apply once cached entries expire"
		return c
	}
	c.Status = StatusHealthy
	c.Detail = "available: " + strings.Join(found, ", ")
	return c
}

// CheckResolution resolves the first region's service hostname, which
// Universal Redirect depends on.
func CheckResolution(ctx context.Context, cat *region.Catalog, res resolver.Resolver) Check {
	c := Check{Name: "name resolution"}

	regions := cat.Regions()
	if len(regions) == 0 || res == nil {
		c.Status = StatusDegraded
		c.Detail = "nothing to resolve"
		return c
	}

	host := regions[0].ServiceHost()
	addr, err := res.Resolve(ctx, host)
	if err != nil {
		c.Status = StatusDegraded
		c.Detail = fmt.Sprintf("%v (Universal Redirect unavailable)", err)
		return c
	}
	c.Status = StatusHealthy
	c.Detail = fmt.Sprintf("%s -> %s", host, addr)
	return c
}

// CheckReachability probes every region and reports how many answered.
func CheckReachability(ctx context.Context, cat *region.Catalog, p *latency.Prober) Check {
	c := Check{Name: "reachability"}

	results := p.ProbeRegions(ctx, cat.Regions())
	var best *latency.Result
	ok := 0
	for i := range results {
		if !results[i].OK() {
			continue
		}
		ok++
		if best == nil || results[i].Latency < best.Latency {
			best = &results[i]
		}
	}

	switch {
	case ok == 0:
		c.Status = StatusUnhealthy
		c.Detail = fmt.Sprintf("none of %d regions reachable", len(results))
	case ok < len(results):
		c.Status = StatusDegraded
		c.Detail = fmt.Sprintf("%d of %d regions reachable, fastest %s (%d ms)", ok, len(results), best.Region, best.Millis())
	default:
		c.Status = StatusHealthy
		c.Detail = fmt.Sprintf("all %d regions reachable, fastest %s (%d ms)", ok, best.Region, best.Millis())
	}
	return c
}

// Run performs all checks.
func Run(ctx context.Context, opts CheckOptions) *CheckResult {
	result := &CheckResult{}

	result.Checks = append(result.Checks,
		CheckTable(opts.Table),
		CheckFlushers(opts.Table.Flushers, opts.LookPath),
		CheckResolution(ctx, opts.Catalog, opts.Resolver),
	)
	if opts.Prober != nil {
		result.Checks = append(result.Checks, CheckReachability(ctx, opts.Catalog, opts.Prober))
	}

	return result
}
