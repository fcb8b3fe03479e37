package hosts

// DefaultPath is the hosts table location on this platform.
func DefaultPath() string {
	return "/etc/hosts"
}

// DefaultTemplate is the loopback-only table written by restore-default.
const DefaultTemplate = `##
# Host Database
#
# localhost is used to configure the loopback interface
# when the system is booting.  Do not change this entry.
##
127.0.0.1	localhost
255.255.255.255	broadcasthost
::1             localhost
`

func DefaultFlushCommands() []FlushCommand {
	return []FlushCommand{
		{Name: "dscacheutil", Args: []string{"-flushcache"}},
		{Name: "killall", Args: []string{"-HUP", "mDNSResponder"}},
	}
}
