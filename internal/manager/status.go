package manager

import (
	"fmt"

	"github.com/txn2/txeh"

	"github.com/make-your-choice/choice-ctl/internal/hosts"
	"github.com/make-your-choice/choice-ctl/internal/policy"
	"github.com/make-your-choice/choice-ctl/internal/region"
)

// Region states reported by Status.
const (
	StateAllowed    = "allowed"
	StateBlocked    = "blocked"
	StatePartial    = "partial"
	StateRedirected = "redirected"
)

// HostStatus is the effective mapping of one hostname inside the block.
type HostStatus struct {
	Host    string `json:"host" yaml:"host"`
	Address string `json:"address,omitempty" yaml:"address,omitempty"`
}

// RegionStatus summarizes one region's hostnames.
type RegionStatus struct {
	ID    string       `json:"id" yaml:"id"`
	Group string       `json:"group" yaml:"group"`
	State string       `json:"state" yaml:"state"`
	Hosts []HostStatus `json:"hosts" yaml:"hosts"`
}

// Status describes the owned block as currently written.
type Status struct {
	Path    string         `json:"path" yaml:"path"`
	Markers int            `json:"markers" yaml:"markers"`
	Active  bool           `json:"active" yaml:"active"`
	Damaged bool           `json:"damaged" yaml:"damaged"`
	Mode    policy.Mode    `json:"mode,omitempty" yaml:"mode,omitempty"`
	Regions []RegionStatus `json:"regions,omitempty" yaml:"regions,omitempty"`
}

// Status reads the table and reports what the owned block does to each
// catalog region. Lines outside the block are ignored.
func (m *Manager) Status(c *region.Catalog) (Status, error) {
	doc, err := m.Table.Read()
	if err != nil {
		return Status{}, err
	}

	st := Status{
		Path:    m.Table.Path,
		Markers: hosts.CountMarkers(doc),
	}
	st.Damaged = st.Markers != 0 && st.Markers != 2

	inner, ok := hosts.InnerContent(doc)
	if !ok {
		return st, nil
	}
	st.Active = true
	st.Mode, _ = policy.DetectMode(inner)

	table, err := parseBlock(inner)
	if err != nil {
		return st, err
	}

	for _, r := range c.Regions() {
		rs := RegionStatus{ID: r.ID, Group: region.GroupLabel(r.Group())}
		blocked, mapped := 0, 0
		for _, host := range r.Hosts {
			hs := HostStatus{Host: host}
			if hits := table.ListAddressesByHost(host, true); len(hits) > 0 {
				hs.Address = hits[0][0]
				mapped++
				if hs.Address == "0.0.0.0" {
					blocked++
				}
			}
			rs.Hosts = append(rs.Hosts, hs)
		}

		switch {
		case mapped == 0:
			rs.State = StateAllowed
		case blocked == len(r.Hosts):
			rs.State = StateBlocked
		case blocked == 0 && mapped == len(r.Hosts):
			rs.State = StateRedirected
		default:
			rs.State = StatePartial
		}
		st.Regions = append(st.Regions, rs)
	}
	return st, nil
}

// parseBlock reads the owned block's entries. Commented lines are skipped.
func parseBlock(inner string) (*txeh.Hosts, error) {
	table, err := txeh.NewHosts(&txeh.HostsConfig{RawText: &inner})
	if err != nil {
		return nil, fmt.Errorf("failed to parse hosts block: %w", err)
	}
	return table, nil
}
