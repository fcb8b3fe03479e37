package hosts

// DefaultPath is the hosts table location on this platform.
func DefaultPath() string {
	return "/etc/hosts"
}

// DefaultTemplate is the loopback-only table written by restore-default.
const DefaultTemplate = `# Static table lookup for hostnames.
# See hosts(5) for details.
127.0.0.1        localhost
::1              localhost
`

// DefaultFlushCommands covers systemd-resolved, both CLI generations, and nscd.
func DefaultFlushCommands() []FlushCommand {
	return []FlushCommand{
		{Name: "systemd-resolve", Args: []string{"--flush-caches"}},
		{Name: "resolvectl", Args: []string{"flush-caches"}},
		{Name: "nscd", Args: []string{"-i", "hosts"}},
	}
}
