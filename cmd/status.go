package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/make-your-choice/choice-ctl/internal/app"
	"github.com/make-your-choice/choice-ctl/internal/audit"
	"github.com/make-your-choice/choice-ctl/internal/errors"
	"github.com/make-your-choice/choice-ctl/internal/logging"
	"github.com/make-your-choice/choice-ctl/internal/manager"
)

var statusOutput string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what the hosts file currently does to each region",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().StringVarP(&statusOutput, "output", "o", "text", "Output format: text, json or yaml")
	rootCmd.AddCommand(statusCmd)
}

// statusReport is the machine-readable status document.
type statusReport struct {
	manager.Status `yaml:",inline"`
	LastChange     *time.Time `json:"last_change,omitempty" yaml:"last_change,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	a := app.Default
	m, err := a.Manager()
	if err != nil {
		return err
	}

	st, err := m.Status(a.Catalog)
	if err != nil {
		return err
	}

	report := statusReport{Status: st}
	if last, ok := lastChange(a.History); ok {
		report.LastChange = &last.Timestamp
	}

	out := cmd.OutOrStdout()
	switch statusOutput {
	case "json":
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	case "yaml":
		data, err := yaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		fmt.Fprint(out, string(data))
		return nil
	case "text", "":
		return printStatus(out, report)
	default:
		return errors.ValidationError(fmt.Sprintf("unknown output format %q (want text, json or yaml)", statusOutput))
	}
}

func printStatus(out io.Writer, r statusReport) error {
	fmt.Fprintf(out, "Hosts file: %s\n", r.Path)

	switch {
	case r.Damaged:
		fmt.Fprintf(out, "Block:      ⚠ damaged (%d marker), repaired on next apply\n", r.Markers)
	case !r.Active:
		fmt.Fprintln(out, "Block:      ○ none, all regions reachable")
	case r.Mode != "":
		fmt.Fprintf(out, "Block:      ✓ %s\n", modeLabel(r.Mode))
	default:
		fmt.Fprintln(out, "Block:      ✓ active")
	}

	if r.LastChange != nil {
		fmt.Fprintf(out, "Changed:    %s\n", humanize.Time(*r.LastChange))
	}

	if !r.Active {
		return nil
	}

	fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GROUP\tREGION\tSTATE")
	fmt.Fprintln(w, "-----\t------\t-----")
	for _, rs := range r.Regions {
		fmt.Fprintf(w, "%s\t%s\t%s\n", rs.Group, rs.ID, formatState(rs.State))
	}
	return w.Flush()
}

func formatState(state string) string {
	switch state {
	case manager.StateAllowed:
		return "✓ allowed"
	case manager.StateBlocked:
		return "✗ blocked"
	case manager.StatePartial:
		return "◐ partial"
	case manager.StateRedirected:
		return "→ redirected"
	default:
		return state
	}
}

// lastChange returns the newest history event. History is best-effort, so a
// read failure only reads as no history.
func lastChange(h *audit.Logger) (audit.Event, bool) {
	if h == nil {
		return audit.Event{}, false
	}
	events, err := h.Recent(1)
	if err != nil {
		logging.Debug("history unavailable", "path", h.Path(), "error", err)
		return audit.Event{}, false
	}
	if len(events) == 0 {
		return audit.Event{}, false
	}
	return events[0], true
}
