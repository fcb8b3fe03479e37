// Package app provides the application context for choice-ctl.
// It allows dependency injection for testing.
package app

import (
	"github.com/make-your-choice/choice-ctl/internal/audit"
	"github.com/make-your-choice/choice-ctl/internal/config"
	"github.com/make-your-choice/choice-ctl/internal/errors"
	"github.com/make-your-choice/choice-ctl/internal/hosts"
	"github.com/make-your-choice/choice-ctl/internal/latency"
	"github.com/make-your-choice/choice-ctl/internal/logging"
	"github.com/make-your-choice/choice-ctl/internal/manager"
	"github.com/make-your-choice/choice-ctl/internal/policy"
	"github.com/make-your-choice/choice-ctl/internal/region"
	"github.com/make-your-choice/choice-ctl/internal/resolver"
	"github.com/make-your-choice/choice-ctl/internal/system"
)

// App holds the application dependencies
type App struct {
	// Paths holds the configured paths
	Paths *config.Paths

	// Settings are the loaded user preferences
	Settings *config.Settings

	// Catalog is the region table
	Catalog *region.Catalog

	// FS and Executor back the hosts table
	FS       system.FileSystem
	Executor system.CommandExecutor

	// Resolver overrides the one built from Settings.Nameserver
	Resolver resolver.Resolver

	// History records applied changes; nil disables it
	History *audit.Logger

	// Prober overrides the one built from Settings.PingTimeout
	Prober *latency.Prober
}

// Option is a function that configures the App
type Option func(*App)

// WithPaths sets custom paths
func WithPaths(paths *config.Paths) Option {
	return func(a *App) {
		a.Paths = paths
	}
}

// WithSettings sets preloaded settings
func WithSettings(s *config.Settings) Option {
	return func(a *App) {
		a.Settings = s
	}
}

// WithCatalog sets a custom region catalog
func WithCatalog(c *region.Catalog) Option {
	return func(a *App) {
		a.Catalog = c
	}
}

// WithFS sets the filesystem used for the hosts table
func WithFS(fs system.FileSystem) Option {
	return func(a *App) {
		a.FS = fs
	}
}

// WithExecutor sets the executor used for cache flushes
func WithExecutor(exec system.CommandExecutor) Option {
	return func(a *App) {
		a.Executor = exec
	}
}

// WithResolver sets a custom resolver
func WithResolver(r resolver.Resolver) Option {
	return func(a *App) {
		a.Resolver = r
	}
}

// WithHistory sets the history logger
func WithHistory(l *audit.Logger) Option {
	return func(a *App) {
		a.History = l
	}
}

// WithProber sets a custom latency prober
func WithProber(p *latency.Prober) Option {
	return func(a *App) {
		a.Prober = p
	}
}

// New creates a new App with the given options.
// History defaults to the history file under Paths.
func New(opts ...Option) *App {
	app := &App{
		Paths:    config.DefaultPaths(),
		Settings: config.DefaultSettings(),
		Catalog:  region.Default(),
		FS:       system.DefaultFS(),
		Executor: system.DefaultExecutor(),
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.History == nil && app.Paths.HistoryFile != "" {
		app.History = audit.NewLogger(app.Paths.HistoryFile)
	}

	return app
}

// LoadSettings replaces Settings with the contents of the settings file.
func (a *App) LoadSettings() error {
	s, err := config.LoadSettings(a.Paths.SettingsFile)
	if err != nil {
		return errors.ConfigError("failed to load "+a.Paths.SettingsFile, err)
	}
	a.Settings = s
	return nil
}

// SaveSettings writes Settings to the settings file.
func (a *App) SaveSettings() error {
	if err := config.SaveSettings(a.Paths.SettingsFile, a.Settings); err != nil {
		return errors.ConfigError("failed to save "+a.Paths.SettingsFile, err)
	}
	logging.Debug("settings saved", "path", a.Paths.SettingsFile)
	return nil
}

// HostsPath returns the hosts table location after applying the root.
func (a *App) HostsPath() (string, error) {
	path := a.Settings.HostsFile
	if path == "" {
		path = hosts.DefaultPath()
	}
	resolved, err := hosts.ResolvePath(a.Settings.Root, path)
	if err != nil {
		return "", errors.ConfigError("invalid hosts path", err)
	}
	return resolved, nil
}

// Table builds the hosts table from Settings.
func (a *App) Table() (*hosts.Table, error) {
	path, err := a.HostsPath()
	if err != nil {
		return nil, err
	}

	t := hosts.NewTable(path)
	t.FS = a.FS
	t.Executor = a.Executor

	if len(a.Settings.FlushCommands) > 0 {
		flushers, err := hosts.ParseFlushCommands(a.Settings.FlushCommands)
		if err != nil {
			return nil, errors.ConfigError("invalid flush_commands", err)
		}
		t.Flushers = flushers
	}

	return t, nil
}

// DNS returns the resolver used for Universal Redirect.
func (a *App) DNS() resolver.Resolver {
	if a.Resolver != nil {
		return a.Resolver
	}
	return resolver.New(a.Settings.Nameserver, resolver.DefaultTimeout)
}

// Manager builds a policy manager over the configured table.
func (a *App) Manager() (*manager.Manager, error) {
	t, err := a.Table()
	if err != nil {
		return nil, err
	}

	m := manager.New(t, a.DNS(), policy.Header{SupportURL: a.Settings.SupportURL})
	if a.History != nil {
		m.History = a.History
	}
	return m, nil
}

// LatencyProber returns the prober used by ping and the picker.
func (a *App) LatencyProber() *latency.Prober {
	if a.Prober != nil {
		return a.Prober
	}
	return latency.NewProber(a.Settings.PingTimeoutDuration())
}

// Default is the default application instance
var Default = New()

// SetDefault sets the default application instance (used for testing)
func SetDefault(app *App) {
	Default = app
}

// ResetDefault resets to the default application instance
func ResetDefault() {
	Default = New()
}
