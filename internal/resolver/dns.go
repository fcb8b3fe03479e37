package resolver

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/miekg/dns"

	"github.com/make-your-choice/choice-ctl/internal/errors"
	"github.com/make-your-choice/choice-ctl/internal/logging"
)

// exchanger is the part of *dns.Client the resolver uses.
type exchanger interface {
	ExchangeContext(ctx context.Context, m *dns.Msg, address string) (*dns.Msg, time.Duration, error)
}

// DNS queries one nameserver directly, bypassing the local hosts table.
type DNS struct {
	Server  string
	Timeout time.Duration
	client  exchanger
}

// NewDNS creates a resolver for server ("1.1.1.1" or "1.1.1.1:53").
func NewDNS(server string, timeout time.Duration) *DNS {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &DNS{
		Server:  withDefaultPort(server),
		Timeout: timeout,
		client:  &dns.Client{Net: "udp", Timeout: timeout},
	}
}

func withDefaultPort(server string) string {
	if _, _, err := net.SplitHostPort(server); err == nil {
		return server
	}
	return net.JoinHostPort(server, "53")
}

// Resolve asks for A records, then AAAA, and returns the first address
// found in the answer section. CNAME records in the answer are skipped.
func (d *DNS) Resolve(ctx context.Context, hostname string) (string, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	var lastErr error
	for _, qtype := range []uint16{dns.TypeA, dns.TypeAAAA} {
		m := new(dns.Msg)
		m.SetQuestion(dns.Fqdn(hostname), qtype)
		m.RecursionDesired = true

		in, _, err := d.client.ExchangeContext(ctx, m, d.Server)
		if err != nil {
			lastErr = err
			continue
		}
		if in.Rcode != dns.RcodeSuccess {
			lastErr = fmt.Errorf("%s answered %s", d.Server, dns.RcodeToString[in.Rcode])
			continue
		}

		for _, rr := range in.Answer {
			var addr string
			switch v := rr.(type) {
			case *dns.A:
				addr = v.A.String()
			case *dns.AAAA:
				addr = v.AAAA.String()
			default:
				continue
			}
			logging.Debug("resolved hostname", "host", hostname, "addr", addr, "via", d.Server)
			return accept(hostname, addr)
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no addresses found")
	}
	return "", errors.ResolutionFailure(hostname, lastErr)
}
