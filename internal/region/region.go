// Package region holds the built-in catalog of game server regions and the
// rules that classify their hostnames.
package region

import (
	"fmt"
	"strings"

	"github.com/make-your-choice/choice-ctl/internal/errors"
)

// Region is one server location. Hosts[0] is the service endpoint; Hosts[1],
// when present, is the UDP ping beacon.
type Region struct {
	ID     string
	Code   string
	Hosts  []string
	Stable bool
}

// Group returns the region's group label.
func (r Region) Group() string {
	return GroupOf(r.ID)
}

// ServiceHost returns the service endpoint hostname.
func (r Region) ServiceHost() string {
	if len(r.Hosts) == 0 {
		return ""
	}
	return r.Hosts[0]
}

// PingHost returns the beacon hostname, falling back to the service
// hostname for single-host regions.
func (r Region) PingHost() string {
	if len(r.Hosts) > 1 {
		return r.Hosts[1]
	}
	return r.ServiceHost()
}

// IsPingHost reports whether hostname is a latency beacon endpoint.
func IsPingHost(hostname string) bool {
	return strings.Contains(strings.ToLower(hostname), "ping")
}

// Catalog is an ordered, read-only set of regions. Iteration order is
// insertion order.
type Catalog struct {
	regions []Region
	index   map[string]int
}

// NewCatalog builds a catalog, rejecting duplicate identifiers and regions
// without hostnames.
func NewCatalog(regions ...Region) (*Catalog, error) {
	c := &Catalog{
		regions: make([]Region, 0, len(regions)),
		index:   make(map[string]int, len(regions)),
	}
	for _, r := range regions {
		if r.ID == "" {
			return nil, fmt.Errorf("region identifier cannot be empty")
		}
		if len(r.Hosts) == 0 {
			return nil, fmt.Errorf("region %s has no hostnames", r.ID)
		}
		if _, dup := c.index[r.ID]; dup {
			return nil, fmt.Errorf("duplicate region %s", r.ID)
		}
		r.Hosts = append([]string(nil), r.Hosts...)
		c.index[r.ID] = len(c.regions)
		c.regions = append(c.regions, r)
	}
	return c, nil
}

// MustCatalog is NewCatalog for static tables; it panics on error.
func MustCatalog(regions ...Region) *Catalog {
	c, err := NewCatalog(regions...)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of regions.
func (c *Catalog) Len() int {
	return len(c.regions)
}

// Regions returns the regions in catalog order.
func (c *Catalog) Regions() []Region {
	out := make([]Region, len(c.regions))
	copy(out, c.regions)
	return out
}

// IDs returns the region identifiers in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.regions))
	for i, r := range c.regions {
		ids[i] = r.ID
	}
	return ids
}

// Get returns the region with the exact identifier id.
func (c *Catalog) Get(id string) (Region, bool) {
	i, ok := c.index[id]
	if !ok {
		return Region{}, false
	}
	return c.regions[i], true
}

// Find resolves user input to a region: exact identifier, then
// case-insensitive identifier, then provider code (e.g. "eu-west-2").
func (c *Catalog) Find(query string) (Region, bool) {
	query = strings.TrimSpace(query)
	if r, ok := c.Get(query); ok {
		return r, true
	}
	for _, r := range c.regions {
		if strings.EqualFold(r.ID, query) {
			return r, true
		}
	}
	for _, r := range c.regions {
		if r.Code != "" && strings.EqualFold(r.Code, query) {
			return r, true
		}
	}
	return Region{}, false
}

// StableInGroup returns the first stable region carrying the group label.
func (c *Catalog) StableInGroup(group string) (Region, bool) {
	for _, r := range c.regions {
		if r.Stable && GroupOf(r.ID) == group {
			return r, true
		}
	}
	return Region{}, false
}

// Validate checks that every identifier in sel exists in the catalog.
func (c *Catalog) Validate(sel Selection) error {
	for _, id := range sel {
		if _, ok := c.index[id]; !ok {
			return errors.RegionNotFound(id)
		}
	}
	return nil
}

// Resolve maps free-form user input onto catalog identifiers via Find.
func (c *Catalog) Resolve(inputs []string) (Selection, error) {
	ids := make([]string, 0, len(inputs))
	for _, in := range inputs {
		r, ok := c.Find(in)
		if !ok {
			return nil, errors.RegionNotFound(in)
		}
		ids = append(ids, r.ID)
	}
	return NewSelection(ids...), nil
}

// Selection is the set of region identifiers an operator picked, kept in
// first-seen order without duplicates.
type Selection []string

// NewSelection builds a Selection, dropping blanks and duplicates.
func NewSelection(ids ...string) Selection {
	seen := make(map[string]bool, len(ids))
	sel := make(Selection, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		sel = append(sel, id)
	}
	return sel
}

// Contains reports whether id is selected.
func (s Selection) Contains(id string) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}
