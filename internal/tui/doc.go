// Package tui provides terminal user interface components for choice-ctl.
//
// This package uses the Bubble Tea framework for the interactive region
// picker behind `choice-ctl apply --pick`.
//
// # Region Picker
//
// The picker lists the catalog grouped by continent and lets the user check
// any number of regions, then choose the policy options:
//
//	result, err := tui.RunPicker(catalog, tui.PickerOptions{
//	    Selected: settings.Selection,
//	    Defaults: tui.Options{Mode: policy.ModeGatekeep, MergeUnstable: true},
//	})
//	switch result.Action {
//	case tui.ActionApply:
//	    // Apply result.Options to result.Selection
//	case tui.ActionQuit:
//	    // Exit without changes
//	}
//
// # Picker Features
//
//   - Regions grouped in display order, headers auto-skipped
//   - Space toggles, c clears, / filters, Enter continues
//   - Unstable regions are marked with ⚠
//   - Optional latency column from a latency probe
//   - Options step for method, block mode and unstable merging
//
// # Dependencies
//
// Uses the Charm libraries:
//   - github.com/charmbracelet/bubbletea - TUI framework
//   - github.com/charmbracelet/bubbles - UI components
//   - github.com/charmbracelet/lipgloss - Styling
package tui
