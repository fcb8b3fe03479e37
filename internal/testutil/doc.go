// Package testutil provides shared fixtures for choice-ctl tests.
//
// # Test Environment
//
// NewTestEnv builds an app.App over a mock filesystem, a mock executor, a
// static resolver and an instant latency prober, and installs it as
// app.Default for the duration of the test:
//
//	env := testutil.NewTestEnv(t, testutil.PlainHosts())
//	// run commands against env.App
//	doc := env.Hosts()
//
// # Fixtures
//
// Hosts files and settings files are embedded from fixtures/:
//
//	plain.hosts            - no Make Your Choice block
//	applied.hosts          - Gatekeep block allowing London
//	damaged.hosts          - a single dangling marker
//	valid_settings.toml    - a complete settings file
//	invalid_settings.toml  - fails validation
//
// Catalog returns the three-region catalog the fixtures are written for.
package testutil
