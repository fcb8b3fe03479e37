package policy

import (
	"fmt"
	"strings"

	"github.com/make-your-choice/choice-ctl/internal/errors"
	"github.com/make-your-choice/choice-ctl/internal/region"
)

const (
	allowPrefix = "#"
	blockPrefix = "0.0.0.0"
)

// GatekeepOptions configures RenderGatekeep.
type GatekeepOptions struct {
	Block         BlockMode
	MergeUnstable bool
	Header        Header
}

// EffectiveAllowSet returns the regions Gatekeep leaves reachable. It is the
// selection itself unless merge is set and only unstable regions were
// picked; then each one gains the first stable region of its group.
func EffectiveAllowSet(c *region.Catalog, sel region.Selection, merge bool) (region.Selection, error) {
	if len(sel) == 0 {
		return nil, errors.EmptySelection()
	}
	if err := c.Validate(sel); err != nil {
		return nil, err
	}

	allowed := append(region.Selection(nil), sel...)
	if !merge {
		return allowed, nil
	}

	for _, id := range sel {
		if r, _ := c.Get(id); r.Stable {
			return allowed, nil
		}
	}

	for _, id := range sel {
		r, _ := c.Get(id)
		alt, ok := c.StableInGroup(r.Group())
		if ok && !allowed.Contains(alt.ID) {
			allowed = append(allowed, alt.ID)
		}
	}
	return allowed, nil
}

// RenderGatekeep renders the block that comments out the allowed regions'
// hostnames and null-routes every other region's.
func RenderGatekeep(c *region.Catalog, sel region.Selection, opts GatekeepOptions) (string, error) {
	allowed, err := EffectiveAllowSet(c, sel, opts.MergeUnstable)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	opts.Header.write(&b, headerGatekeep)

	for _, r := range c.Regions() {
		prefix := blockPrefix
		if allowed.Contains(r.ID) {
			prefix = allowPrefix
		}
		for _, host := range r.Hosts {
			if !opts.Block.includes(region.IsPingHost(host)) {
				continue
			}
			fmt.Fprintf(&b, "%-9s %s\n", prefix, host)
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}
