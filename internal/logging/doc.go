// Package logging provides logging utilities for choice-ctl.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("resolved hostname", "host", host, "addr", addr)
//	logging.Warn("cache flush failed", "command", name, "error", err)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Resolving %s...", region)
//	logging.UserSuccess("The hosts file was updated successfully (%s mode)", mode)
//	logging.UserWarning("%s is marked unstable", region)
//	logging.UserError("Failed to write hosts file: %v", err)
//
// Output destinations default to stdout (info, success) and stderr
// (warning, error) and can be redirected with SetUserOutput.
//
// # Status Indicators
//
// User functions prepend status indicators:
//   - ℹ (info)
//   - ✓ (success)
//   - ⚠ (warning)
//   - ✗ (error)
package logging
