// Package testutil provides test utilities for command tests
package testutil

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/make-your-choice/choice-ctl/internal/app"
	"github.com/make-your-choice/choice-ctl/internal/config"
	"github.com/make-your-choice/choice-ctl/internal/latency"
	"github.com/make-your-choice/choice-ctl/internal/resolver"
	"github.com/make-your-choice/choice-ctl/internal/system"
)

// HostsPath is where the test environment keeps its hosts file.
const HostsPath = "/etc/hosts"

// TestEnv holds the test environment
type TestEnv struct {
	T        *testing.T
	TmpDir   string
	Paths    *config.Paths
	FS       *system.MockFS
	Executor *system.MockExecutor
	App      *app.App
}

// Addresses returned by the test resolver for Ohio.
const (
	OhioServiceAddr = "1.2.3.4"
	OhioPingAddr    = "5.6.7.8"
)

// FakeDial connects instantly to every host except the unstable Paris
// region, which refuses.
func FakeDial(_ context.Context, _, address string) (net.Conn, error) {
	if strings.Contains(address, "eu-west-3") {
		return nil, fmt.Errorf("connection refused")
	}
	client, server := net.Pipe()
	server.Close()
	return client, nil
}

// NewTestEnv creates a test environment backed by a mock filesystem holding
// hostsContent at HostsPath, and installs it as app.Default until the test
// ends. Extra options are applied after the defaults.
func NewTestEnv(t *testing.T, hostsContent string, opts ...app.Option) *TestEnv {
	t.Helper()

	tmpDir := t.TempDir()
	paths := &config.Paths{
		ConfigDir:    filepath.Join(tmpDir, "config"),
		StateDir:     filepath.Join(tmpDir, "state"),
		SettingsFile: filepath.Join(tmpDir, "config", config.SettingsFileName),
		HistoryFile:  filepath.Join(tmpDir, "state", config.HistoryFileName),
	}
	for _, dir := range []string{paths.ConfigDir, paths.StateDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}

	fs := system.NewMockFS()
	fs.AddFile(HostsPath, []byte(hostsContent), 0644)
	executor := system.NewMockExecutor()

	base := []app.Option{
		app.WithPaths(paths),
		app.WithFS(fs),
		app.WithExecutor(executor),
		app.WithCatalog(Catalog()),
		app.WithResolver(resolver.Static{OhioService: OhioServiceAddr, OhioPing: OhioPingAddr}),
		app.WithProber(&latency.Prober{Timeout: time.Second, Port: latency.DefaultPort, Concurrency: 2, Dial: FakeDial}),
	}
	testApp := app.New(append(base, opts...)...)

	originalDefault := app.Default
	app.SetDefault(testApp)
	t.Cleanup(func() { app.SetDefault(originalDefault) })

	return &TestEnv{
		T:        t,
		TmpDir:   tmpDir,
		Paths:    paths,
		FS:       fs,
		Executor: executor,
		App:      testApp,
	}
}

// Hosts returns the current hosts file content.
func (e *TestEnv) Hosts() string {
	e.T.Helper()

	data, ok := e.FS.GetFile(HostsPath)
	if !ok {
		e.T.Fatalf("%s missing", HostsPath)
	}
	return string(data)
}

// WriteSettings writes a settings file.
func (e *TestEnv) WriteSettings(content string) {
	e.T.Helper()

	if err := os.WriteFile(e.Paths.SettingsFile, []byte(content), 0644); err != nil {
		e.T.Fatalf("Failed to write settings: %v", err)
	}
}

// WriteSettingsFixture copies a settings fixture into place.
func (e *TestEnv) WriteSettingsFixture(name string) {
	e.T.Helper()

	data, err := LoadFixture(name)
	if err != nil {
		e.T.Fatalf("Failed to load fixture %s: %v", name, err)
	}
	e.WriteSettings(string(data))
}
