// Package app provides the application context for choice-ctl.
//
// This package manages application-wide dependencies using the functional
// options pattern, enabling easy testing through dependency injection.
//
// # App Context
//
// The App struct holds core dependencies:
//
//	type App struct {
//	    Paths    *config.Paths          // Settings and history locations
//	    Settings *config.Settings       // Loaded preferences
//	    Catalog  *region.Catalog        // Known regions
//	    FS       system.FileSystem      // Hosts table I/O
//	    Executor system.CommandExecutor // Cache flush commands
//	    Resolver resolver.Resolver      // Optional DNS override
//	    History  *audit.Logger          // Change history
//	    Prober   *latency.Prober        // Optional latency override
//	}
//
// # Creating an App
//
//	// Production usage
//	a := app.New()
//	if err := a.LoadSettings(); err != nil { ... }
//	m, err := a.Manager()
//
//	// Testing with custom dependencies
//	a := app.New(
//	    app.WithPaths(testPaths),
//	    app.WithFS(system.NewMockFS()),
//	    app.WithResolver(resolver.Static{...}),
//	)
package app
