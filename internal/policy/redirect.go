package policy

import (
	"context"
	"fmt"
	"strings"

	"github.com/make-your-choice/choice-ctl/internal/errors"
	"github.com/make-your-choice/choice-ctl/internal/region"
	"github.com/make-your-choice/choice-ctl/internal/resolver"
)

// Target holds the two addresses every hostname is redirected to.
type Target struct {
	Region  string
	Service string
	Ping    string
}

// ResolveTarget checks that sel names exactly one region and resolves its
// service and ping hostnames. Cardinality is checked before any lookup.
func ResolveTarget(ctx context.Context, c *region.Catalog, sel region.Selection, res resolver.Resolver) (Target, error) {
	switch len(sel) {
	case 0:
		return Target{}, errors.EmptySelection()
	case 1:
	default:
		return Target{}, errors.InvalidSelection(
			fmt.Sprintf("universal redirect needs exactly one region, got %d", len(sel)))
	}

	r, ok := c.Get(sel[0])
	if !ok {
		return Target{}, errors.RegionNotFound(sel[0])
	}

	service, err := res.Resolve(ctx, r.ServiceHost())
	if err != nil {
		return Target{}, err
	}
	ping, err := res.Resolve(ctx, r.PingHost())
	if err != nil {
		return Target{}, err
	}
	return Target{Region: r.ID, Service: service, Ping: ping}, nil
}

// RenderRedirect renders the block mapping every catalog hostname to the
// target's ping or service address.
func RenderRedirect(c *region.Catalog, target Target, header Header) string {
	var b strings.Builder
	header.write(&b, headerRedirect)

	for _, r := range c.Regions() {
		for _, host := range r.Hosts {
			addr := target.Service
			if region.IsPingHost(host) {
				addr = target.Ping
			}
			fmt.Fprintf(&b, "%s %s\n", addr, host)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderUniversalRedirect resolves the single selected region and renders
// the redirect block for the whole catalog.
func RenderUniversalRedirect(ctx context.Context, c *region.Catalog, sel region.Selection, res resolver.Resolver, header Header) (string, error) {
	target, err := ResolveTarget(ctx, c, sel, res)
	if err != nil {
		return "", err
	}
	return RenderRedirect(c, target, header), nil
}
