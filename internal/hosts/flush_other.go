//go:build !linux && !darwin && !windows

package hosts

// DefaultPath is the hosts table location on this platform.
func DefaultPath() string {
	return "/etc/hosts"
}

// DefaultTemplate is the loopback-only table written by restore-default.
const DefaultTemplate = `127.0.0.1	localhost
::1		localhost
`

// DefaultFlushCommands is empty; these systems do not cache hosts lookups.
func DefaultFlushCommands() []FlushCommand {
	return nil
}
