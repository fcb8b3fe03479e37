// Package manager ties the policy engine to the hosts table. Every entry
// point validates and resolves first, so a failure never touches the table.
package manager

import (
	"context"
	"fmt"
	"strings"

	"github.com/make-your-choice/choice-ctl/internal/audit"
	"github.com/make-your-choice/choice-ctl/internal/errors"
	"github.com/make-your-choice/choice-ctl/internal/hosts"
	"github.com/make-your-choice/choice-ctl/internal/logging"
	"github.com/make-your-choice/choice-ctl/internal/policy"
	"github.com/make-your-choice/choice-ctl/internal/region"
	"github.com/make-your-choice/choice-ctl/internal/resolver"
)

// History receives one event per successful table change.
type History interface {
	Log(event audit.Event) error
}

// Manager applies steering policies to a hosts table.
type Manager struct {
	Table    *hosts.Table
	Resolver resolver.Resolver
	Header   policy.Header
	History  History

	// Template replaces the whole table on RestoreDefault.
	// Empty means hosts.DefaultTemplate.
	Template string
}

// New creates a manager without history.
func New(table *hosts.Table, res resolver.Resolver, header policy.Header) *Manager {
	return &Manager{
		Table:    table,
		Resolver: res,
		Header:   header,
	}
}

// PreviewGatekeep returns the table ApplyGatekeep would write.
func (m *Manager) PreviewGatekeep(ctx context.Context, c *region.Catalog, sel region.Selection, block policy.BlockMode, merge bool) (string, error) {
	inner, err := policy.RenderGatekeep(c, sel, policy.GatekeepOptions{
		Block:         block,
		MergeUnstable: merge,
		Header:        m.Header,
	})
	if err != nil {
		return "", err
	}
	return m.splice(inner)
}

// ApplyGatekeep leaves the selected regions reachable and null-routes the rest.
func (m *Manager) ApplyGatekeep(ctx context.Context, c *region.Catalog, sel region.Selection, block policy.BlockMode, merge bool) error {
	doc, err := m.PreviewGatekeep(ctx, c, sel, block, merge)
	if err != nil {
		return err
	}
	if err := m.Table.Persist(ctx, doc); err != nil {
		return err
	}

	logging.Info("gatekeep applied", "regions", strings.Join(sel, ", "), "block", block.String(), "merge_unstable", merge)
	m.record(audit.Event{
		Type:    audit.EventApply,
		Mode:    string(policy.ModeGatekeep),
		Regions: sel,
		Details: fmt.Sprintf("block=%s merge_unstable=%t", block, merge),
	})
	return nil
}

// PreviewUniversalRedirect returns the table ApplyUniversalRedirect would
// write. The selected region's hostnames are resolved.
func (m *Manager) PreviewUniversalRedirect(ctx context.Context, c *region.Catalog, sel region.Selection) (string, error) {
	target, err := m.resolveTarget(ctx, c, sel)
	if err != nil {
		return "", err
	}
	return m.splice(policy.RenderRedirect(c, target, m.Header))
}

// ApplyUniversalRedirect points every region's hostnames at the single
// selected region.
func (m *Manager) ApplyUniversalRedirect(ctx context.Context, c *region.Catalog, sel region.Selection) error {
	target, err := m.resolveTarget(ctx, c, sel)
	if err != nil {
		return err
	}
	doc, err := m.splice(policy.RenderRedirect(c, target, m.Header))
	if err != nil {
		return err
	}
	if err := m.Table.Persist(ctx, doc); err != nil {
		return err
	}

	logging.Info("universal redirect applied", "region", target.Region, "service", target.Service, "ping", target.Ping)
	m.record(audit.Event{
		Type:    audit.EventApply,
		Mode:    string(policy.ModeUniversalRedirect),
		Regions: sel,
		Details: fmt.Sprintf("service=%s ping=%s", target.Service, target.Ping),
	})
	return nil
}

// PreviewRevert returns the table with the owned block removed.
func (m *Manager) PreviewRevert() (string, error) {
	return m.splice("")
}

// Revert removes the owned block and leaves everything else as it was.
func (m *Manager) Revert(ctx context.Context) error {
	doc, err := m.PreviewRevert()
	if err != nil {
		return err
	}
	if err := m.Table.Persist(ctx, doc); err != nil {
		return err
	}

	logging.Info("hosts block removed", "path", m.Table.Path)
	m.record(audit.Event{Type: audit.EventRevert})
	return nil
}

// RestoreDefault overwrites the whole table with the loopback-only template.
func (m *Manager) RestoreDefault(ctx context.Context) error {
	tmpl := m.Template
	if tmpl == "" {
		tmpl = hosts.DefaultTemplate
	}
	if err := m.Table.Persist(ctx, tmpl); err != nil {
		return err
	}

	logging.Info("hosts table restored to default", "path", m.Table.Path, "backup", m.Table.BackupPath)
	m.record(audit.Event{Type: audit.EventRestore, Details: "backup=" + m.Table.BackupPath})
	return nil
}

// resolveTarget resolves the redirect target. A resolver that reads the
// hosts table would answer from the current block for any hostname it maps,
// so that case is refused before the first lookup.
func (m *Manager) resolveTarget(ctx context.Context, c *region.Catalog, sel region.Selection) (policy.Target, error) {
	if hr, ok := m.Resolver.(resolver.HostsReader); ok && hr.ReadsHosts() {
		if err := m.checkShadowed(c, sel); err != nil {
			return policy.Target{}, err
		}
	}
	return policy.ResolveTarget(ctx, c, sel, m.Resolver)
}

// checkShadowed fails if the owned block maps one of the selected region's
// hostnames. Cardinality and lookup errors are left to policy.ResolveTarget.
func (m *Manager) checkShadowed(c *region.Catalog, sel region.Selection) error {
	if len(sel) != 1 {
		return nil
	}
	r, ok := c.Get(sel[0])
	if !ok {
		return nil
	}

	doc, err := m.Table.Read()
	if err != nil {
		return err
	}
	inner, ok := hosts.InnerContent(doc)
	if !ok {
		return nil
	}
	block, err := parseBlock(inner)
	if err != nil {
		return err
	}

	for _, host := range []string{r.ServiceHost(), r.PingHost()} {
		if hits := block.ListAddressesByHost(host, true); len(hits) > 0 {
			return errors.ResolutionFailure(host, fmt.Errorf(
				"the system resolver would return %s from the current block; run revert first or pass --nameserver", hits[0][0]))
		}
	}
	return nil
}

func (m *Manager) splice(inner string) (string, error) {
	doc, err := m.Table.Read()
	if err != nil {
		return "", err
	}
	return hosts.ReplaceSection(doc, inner), nil
}

// record appends to history. The table is already written, so a history
// failure is only logged.
func (m *Manager) record(event audit.Event) {
	if m.History == nil {
		return
	}
	event.HostsPath = m.Table.Path
	if err := m.History.Log(event); err != nil {
		logging.Warn("failed to record history", "error", err)
	}
}
