package cmd

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/make-your-choice/choice-ctl/internal/app"
	"github.com/make-your-choice/choice-ctl/internal/audit"
)

var (
	historyLimit int
	historyClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent changes to the hosts file",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Number of events to show (0 for all)")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Delete the history file")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	h := app.Default.History
	if h == nil {
		logInfo("History is disabled.")
		return nil
	}

	if historyClear {
		if err := h.Clear(); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		logSuccess("History cleared")
		return nil
	}

	events, err := h.Recent(historyLimit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if len(events) == 0 {
		logInfo("No changes recorded yet.")
		return nil
	}

	out := cmd.OutOrStdout()
	for _, e := range events {
		ts := e.Timestamp.Local().Format("2006-01-02 15:04:05")
		fmt.Fprintf(out, "[%s] %-15s %s (%s)\n", ts, e.Type, describeEvent(e), humanize.Time(e.Timestamp))
	}

	return nil
}

func describeEvent(e audit.Event) string {
	var parts []string
	if e.Mode != "" {
		parts = append(parts, e.Mode)
	}
	if len(e.Regions) > 0 {
		parts = append(parts, strings.Join(e.Regions, ", "))
	}
	if e.Details != "" {
		parts = append(parts, e.Details)
	}
	if len(parts) == 0 {
		return e.HostsPath
	}
	return strings.Join(parts, " | ")
}
