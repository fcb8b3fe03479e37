package hosts

import (
	"os"
	"path/filepath"
)

// DefaultPath is the hosts table location on this platform.
func DefaultPath() string {
	root := os.Getenv("SystemRoot")
	if root == "" {
		root = `C:\Windows`
	}
	return filepath.Join(root, "System32", "drivers", "etc", "hosts")
}

// DefaultTemplate is the loopback-only table written by restore-default.
const DefaultTemplate = "# localhost name resolution is handled within DNS itself.\r\n" +
	"#\t127.0.0.1       localhost\r\n" +
	"#\t::1             localhost\r\n"

func DefaultFlushCommands() []FlushCommand {
	return []FlushCommand{
		{Name: "ipconfig", Args: []string{"/flushdns"}},
	}
}
