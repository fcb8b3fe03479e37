package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/make-your-choice/choice-ctl/internal/app"
	"github.com/make-your-choice/choice-ctl/internal/errors"
)

var settingsCmd = &cobra.Command{
	Use:       "settings [show|path]",
	Short:     "Show the effective settings or where they are stored",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"show", "path"},
	RunE:      runSettings,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
}

func runSettings(cmd *cobra.Command, args []string) error {
	action := "show"
	if len(args) == 1 {
		action = args[0]
	}

	a := app.Default
	out := cmd.OutOrStdout()

	switch action {
	case "path":
		fmt.Fprintln(out, a.Paths.SettingsFile)
	case "show":
		text, err := a.Settings.Encode()
		if err != nil {
			return fmt.Errorf("failed to encode settings: %w", err)
		}
		fmt.Fprint(out, text)
	default:
		return errors.ValidationError(fmt.Sprintf("unknown settings action %q (want show or path)", action))
	}
	return nil
}
