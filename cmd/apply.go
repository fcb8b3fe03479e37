package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/make-your-choice/choice-ctl/internal/app"
	"github.com/make-your-choice/choice-ctl/internal/latency"
	"github.com/make-your-choice/choice-ctl/internal/logging"
	"github.com/make-your-choice/choice-ctl/internal/policy"
	"github.com/make-your-choice/choice-ctl/internal/region"
	"github.com/make-your-choice/choice-ctl/internal/tui"
)

var applyCmd = &cobra.Command{
	Use:   "apply [regions...]",
	Short: "Apply a server selection to the hosts file",
	Long: `Apply writes the Make Your Choice block for the given regions.

Regions may be given by name ("Europe (London)") or code (eu-west-2),
case-insensitively. With no regions the saved selection is used.

Methods:
  gatekeep  Block every region you did not select (default)
  redirect  Send all traffic to the one selected region

Redirect resolves the selected region through the system resolver, which
reads the hosts file. If the current block already maps that region, run
revert first or pass --nameserver.`,
	Example: `  choice-ctl apply eu-west-2 eu-central-1
  choice-ctl apply "US East (Ohio)" --mode redirect
  choice-ctl apply --pick --ping
  choice-ctl apply eu-west-2 --dry-run`,
	RunE: runApply,
}

var (
	applyMode     string
	applyBlock    string
	applyMerge    bool
	applyPick     bool
	applyPickPing bool
	applyDryRun   bool
	applySave     bool
)

func init() {
	applyCmd.Flags().StringVarP(&applyMode, "mode", "m", "", "Method: gatekeep or redirect (default from settings)")
	applyCmd.Flags().StringVarP(&applyBlock, "block", "b", "", "Gatekeep endpoints to block: both, ping or service (default from settings)")
	applyCmd.Flags().BoolVar(&applyMerge, "merge-unstable", true, "Also allow a stable region from each unstable region's group")
	applyCmd.Flags().BoolVarP(&applyPick, "pick", "p", false, "Choose regions interactively")
	applyCmd.Flags().BoolVar(&applyPickPing, "ping", false, "Show latency in the interactive picker")
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Print the resulting hosts file instead of writing it")
	applyCmd.Flags().BoolVar(&applySave, "save", false, "Remember this selection and options in settings")
	rootCmd.AddCommand(applyCmd)
}

// applyRequest is a resolved apply invocation.
type applyRequest struct {
	selection region.Selection
	mode      policy.Mode
	block     policy.BlockMode
	merge     bool
}

func runApply(cmd *cobra.Command, args []string) error {
	req, ok, err := buildApplyRequest(cmd, args)
	if err != nil || !ok {
		return err
	}

	a := app.Default
	m, err := a.Manager()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	logging.Debug("applying selection", "mode", req.mode, "regions", strings.Join(req.selection, ", "), "block", req.block.String(), "merge_unstable", req.merge)

	if applyDryRun {
		var doc string
		switch req.mode {
		case policy.ModeUniversalRedirect:
			doc, err = m.PreviewUniversalRedirect(ctx, a.Catalog, req.selection)
		default:
			doc, err = m.PreviewGatekeep(ctx, a.Catalog, req.selection, req.block, req.merge)
		}
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), doc)
		return nil
	}

	switch req.mode {
	case policy.ModeUniversalRedirect:
		err = m.ApplyUniversalRedirect(ctx, a.Catalog, req.selection)
	default:
		err = m.ApplyGatekeep(ctx, a.Catalog, req.selection, req.block, req.merge)
	}
	if err != nil {
		return err
	}

	logSuccess("%s applied to %s", modeLabel(req.mode), m.Table.Path)
	fmt.Fprintf(cmd.OutOrStdout(), "  Regions: %s\n", strings.Join(req.selection, ", "))
	if req.mode == policy.ModeGatekeep && req.merge {
		if extra := mergedRegions(a.Catalog, req.selection); len(extra) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "  Also allowed (stable fallback): %s\n", strings.Join(extra, ", "))
		}
	}
	logInfo("Restart the game for the change to take effect.")

	if applySave {
		s := a.Settings
		s.Selection = req.selection
		s.Mode = string(req.mode)
		s.BlockMode = req.block.String()
		s.MergeUnstable = req.merge
		if err := a.SaveSettings(); err != nil {
			return err
		}
		logInfo("Selection saved to %s", a.Paths.SettingsFile)
	}

	return nil
}

// buildApplyRequest collects regions and options from flags, settings or
// the picker. ok is false when the picker was dismissed.
func buildApplyRequest(cmd *cobra.Command, args []string) (applyRequest, bool, error) {
	mode, err := parseMode(applyMode)
	if err != nil {
		return applyRequest{}, false, err
	}
	block, err := parseBlockMode(applyBlock)
	if err != nil {
		return applyRequest{}, false, err
	}
	merge := settings().MergeUnstable
	if cmd.Flags().Changed("merge-unstable") {
		merge = applyMerge
	}

	if !applyPick {
		sel, err := selectRegions(args)
		if err != nil {
			return applyRequest{}, false, err
		}
		return applyRequest{selection: sel, mode: mode, block: block, merge: merge}, true, nil
	}

	a := app.Default
	preselected, _ := selectRegions(args)
	opts := tui.PickerOptions{
		Selected: preselected,
		Defaults: tui.Options{Mode: mode, Block: block, MergeUnstable: merge},
	}
	if applyPickPing {
		logInfo("Measuring latency...")
		opts.Probes = latency.ByRegion(a.LatencyProber().ProbeRegions(cmd.Context(), a.Catalog.Regions()))
	}

	result, err := tui.RunPicker(a.Catalog, opts)
	if err != nil {
		return applyRequest{}, false, fmt.Errorf("picker error: %w", err)
	}
	logging.Debug("picker result", "action", result.Action)

	if result.Action != tui.ActionApply {
		logInfo("No changes made.")
		return applyRequest{}, false, nil
	}

	return applyRequest{
		selection: result.Selection,
		mode:      result.Options.Mode,
		block:     result.Options.Block,
		merge:     result.Options.MergeUnstable,
	}, true, nil
}

// mergedRegions lists the regions the merge rule added to sel.
func mergedRegions(c *region.Catalog, sel region.Selection) []string {
	allowed, err := policy.EffectiveAllowSet(c, sel, true)
	if err != nil {
		return nil
	}
	var extra []string
	for _, id := range allowed {
		if !sel.Contains(id) {
			extra = append(extra, id)
		}
	}
	return extra
}
