package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/make-your-choice/choice-ctl/internal/app"
	"github.com/make-your-choice/choice-ctl/internal/latency"
	"github.com/make-your-choice/choice-ctl/internal/logging"
	"github.com/make-your-choice/choice-ctl/internal/region"
	"github.com/make-your-choice/choice-ctl/internal/tui"
)

var legendStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

var regionsPing bool

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List the known server regions",
	Args:  cobra.NoArgs,
	RunE:  runRegions,
}

var pingTimeout time.Duration

var pingCmd = &cobra.Command{
	Use:   "ping [regions...]",
	Short: "Measure latency to server regions",
	Long: `Ping times a TCP connection to each region's service endpoint.
With no regions every known region is measured.`,
	RunE: runPing,
}

func init() {
	regionsCmd.Flags().BoolVar(&regionsPing, "ping", false, "Measure latency to each region")
	pingCmd.Flags().DurationVarP(&pingTimeout, "timeout", "t", 0, "Per-region timeout (default from settings, 2s)")
	rootCmd.AddCommand(regionsCmd)
	rootCmd.AddCommand(pingCmd)
}

func runRegions(cmd *cobra.Command, args []string) error {
	a := app.Default

	var probes map[string]latency.Result
	if regionsPing {
		probes = latency.ByRegion(a.LatencyProber().ProbeRegions(cmd.Context(), a.Catalog.Regions()))
	}

	saved, _ := a.Catalog.Resolve(a.Settings.Selection)
	out := cmd.OutOrStdout()
	fmt.Fprint(out, tui.SimplePicker(a.Catalog, saved, probes))
	fmt.Fprintln(out)
	fmt.Fprintln(out, legendStyle.Render("* saved selection   ⚠ unstable, merged with a stable region by default"))
	return nil
}

func runPing(cmd *cobra.Command, args []string) error {
	regions, err := regionsOrAll(args)
	if err != nil {
		return err
	}

	prober := app.Default.LatencyProber()
	if pingTimeout > 0 {
		p := *prober
		p.Timeout = pingTimeout
		prober = &p
	}

	logging.Debug("probing regions", "regions", regionIDs(regions), "timeout", prober.Timeout)
	results := prober.ProbeRegions(cmd.Context(), regions)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "REGION\tCODE\tHOST\tLATENCY")
	fmt.Fprintln(w, "------\t----\t----\t-------")
	for i, res := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", res.Region, regions[i].Code, res.Host, formatLatency(res))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if best, ok := fastest(results); ok {
		logInfo("Fastest: %s (%d ms)", best.Region, best.Millis())
	}
	return nil
}

func formatLatency(r latency.Result) string {
	if !r.OK() {
		return "✗ unreachable"
	}
	return fmt.Sprintf("%d ms", r.Millis())
}

// fastest returns the reachable result with the lowest latency.
func fastest(results []latency.Result) (latency.Result, bool) {
	var best latency.Result
	found := false
	for _, r := range results {
		if !r.OK() {
			continue
		}
		if !found || r.Latency < best.Latency {
			best, found = r, true
		}
	}
	return best, found
}

// regionIDs lists the identifiers of regions.
func regionIDs(rs []region.Region) []string {
	ids := make([]string, len(rs))
	for i, r := range rs {
		ids[i] = r.ID
	}
	return ids
}
