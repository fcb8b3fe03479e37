// Package resolver turns game hostnames into routable addresses for the
// universal redirect policy.
package resolver

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/make-your-choice/choice-ctl/internal/errors"
	"github.com/make-your-choice/choice-ctl/internal/logging"
)

// Resolver resolves a hostname to one textual IPv4 or IPv6 address.
// Implementations block and do not retry or cache.
type Resolver interface {
	Resolve(ctx context.Context, hostname string) (string, error)
}

// HostsReader is implemented by resolvers whose answers can come from the
// local hosts table.
type HostsReader interface {
	ReadsHosts() bool
}

// DefaultTimeout bounds a single lookup when the caller's context has no deadline.
const DefaultTimeout = 5 * time.Second

// New returns a DNS resolver querying nameserver directly, or the system
// resolver when nameserver is empty.
func New(nameserver string, timeout time.Duration) Resolver {
	if nameserver != "" {
		return NewDNS(nameserver, timeout)
	}
	return NewSystem()
}

// System resolves through the operating system, hosts table included.
type System struct {
	lookup func(ctx context.Context, host string) ([]string, error)
}

// NewSystem returns a resolver backed by net.DefaultResolver.
func NewSystem() *System {
	return &System{lookup: net.DefaultResolver.LookupHost}
}

// ReadsHosts reports true: the OS answers from the hosts table first.
func (s *System) ReadsHosts() bool {
	return true
}

// Resolve returns the first address in resolver order.
func (s *System) Resolve(ctx context.Context, hostname string) (string, error) {
	addrs, err := s.lookup(ctx, hostname)
	if err != nil {
		return "", errors.ResolutionFailure(hostname, err)
	}
	if len(addrs) == 0 {
		return "", errors.ResolutionFailure(hostname, fmt.Errorf("no addresses found"))
	}
	logging.Debug("resolved hostname", "host", hostname, "addr", addrs[0], "via", "system")
	return accept(hostname, addrs[0])
}

// accept rejects answers that cannot carry traffic. An unspecified address
// is what a null-route hosts entry yields; redirecting every region to it
// would black-hole the game.
func accept(hostname, addr string) (string, error) {
	ip := net.ParseIP(addr)
	if ip == nil {
		return "", errors.ResolutionFailure(hostname, fmt.Errorf("invalid address %q", addr))
	}
	if ip.IsUnspecified() {
		return "", errors.ResolutionFailure(hostname,
			fmt.Errorf("resolved to %s, the region is blocked by the hosts file; revert first or set a nameserver", addr))
	}
	return ip.String(), nil
}

// Static is a fixed hostname to address table.
type Static map[string]string

// Resolve looks hostname up in the table.
func (s Static) Resolve(_ context.Context, hostname string) (string, error) {
	addr, ok := s[hostname]
	if !ok {
		return "", errors.ResolutionFailure(hostname, fmt.Errorf("no addresses found"))
	}
	return accept(hostname, addr)
}
