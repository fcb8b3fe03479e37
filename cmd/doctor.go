package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/make-your-choice/choice-ctl/internal/app"
	"github.com/make-your-choice/choice-ctl/internal/errors"
	"github.com/make-your-choice/choice-ctl/internal/health"
)

var (
	doctorPing   bool
	doctorOutput string
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that this machine is ready to steer traffic",
	Long: `Doctor checks the hosts file, DNS cache flush tools and name resolution,
and optionally whether each region answers.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorPing, "ping", false, "Also probe every region")
	doctorCmd.Flags().StringVarP(&doctorOutput, "output", "o", "text", "Output format: text or json")
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	a := app.Default
	table, err := a.Table()
	if err != nil {
		return err
	}

	opts := health.CheckOptions{
		Table:    table,
		Catalog:  a.Catalog,
		Resolver: a.DNS(),
	}
	if doctorPing {
		opts.Prober = a.LatencyProber()
	}
	result := health.Run(cmd.Context(), opts)

	out := cmd.OutOrStdout()
	switch doctorOutput {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal checks: %w", err)
		}
		fmt.Fprintln(out, string(data))
	case "text", "":
		for _, c := range result.Checks {
			fmt.Fprintf(out, "%s %-16s %s\n", formatHealth(c.Status), c.Name, c.Detail)
		}
	default:
		return errors.ValidationError(fmt.Sprintf("unknown output format %q (want text or json)", doctorOutput))
	}

	if result.Summary() == health.StatusUnhealthy {
		return errors.New(errors.ExitGeneralError, "one or more checks failed")
	}
	return nil
}

func formatHealth(s health.Status) string {
	switch s {
	case health.StatusHealthy:
		return "✓"
	case health.StatusDegraded:
		return "⚠"
	default:
		return "✗"
	}
}
