// Package health checks that the machine is ready for choice-ctl to steer
// traffic.
//
// # Health Status
//
// Each check reports a Status:
//
//	StatusHealthy   - Works as expected
//	StatusDegraded  - Works with a caveat, e.g. no DNS cache flush tool
//	StatusUnhealthy - Blocks choice-ctl from working
//
// # Check Functions
//
// Individual checks:
//
//	health.CheckTable(table)                  // hosts file readable, block intact
//	health.CheckFlushers(flushers, lookPath)  // cache flush tools installed
//	health.CheckResolution(ctx, catalog, res) // DNS for Universal Redirect
//	health.CheckReachability(ctx, catalog, p) // regions answer a TCP probe
//
// Combined checks:
//
//	result := health.Run(ctx, health.CheckOptions{...})
//	status := result.Summary() // worst status across checks
package health
