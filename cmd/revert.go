package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/make-your-choice/choice-ctl/internal/app"
	"github.com/make-your-choice/choice-ctl/internal/errors"
	"github.com/make-your-choice/choice-ctl/internal/hosts"
)

var revertCmd = &cobra.Command{
	Use:   "revert",
	Short: "Remove the Make Your Choice block from the hosts file",
	Long: `Revert removes the marked block written by apply and leaves every other
line of the hosts file as it was.`,
	Args: cobra.NoArgs,
	RunE: runRevert,
}

var restoreYes bool

var restoreCmd = &cobra.Command{
	Use:   "restore-default",
	Short: "Reset the whole hosts file to the platform default",
	Long: `Restore-default replaces the entire hosts file with the loopback-only
platform default. The previous file is kept next to it with a .bak suffix.

This also discards entries other programs added, so it asks first.`,
	Args: cobra.NoArgs,
	RunE: runRestoreDefault,
}

func init() {
	restoreCmd.Flags().BoolVarP(&restoreYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(revertCmd)
	rootCmd.AddCommand(restoreCmd)
}

func runRevert(cmd *cobra.Command, args []string) error {
	m, err := app.Default.Manager()
	if err != nil {
		return err
	}

	doc, err := m.Table.Read()
	if err != nil {
		return err
	}
	if hosts.CountMarkers(doc) == 0 {
		logInfo("No Make Your Choice block in %s, nothing to revert.", m.Table.Path)
		return nil
	}

	if err := m.Revert(cmd.Context()); err != nil {
		return err
	}

	logSuccess("Removed the Make Your Choice block from %s", m.Table.Path)
	return nil
}

func runRestoreDefault(cmd *cobra.Command, args []string) error {
	m, err := app.Default.Manager()
	if err != nil {
		return err
	}

	if !restoreYes {
		question := fmt.Sprintf("Replace all of %s with the default?", m.Table.Path)
		if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), question) {
			return errors.ValidationError("restore-default cancelled")
		}
	}

	if err := m.RestoreDefault(cmd.Context()); err != nil {
		return err
	}

	logSuccess("Restored %s to the default", m.Table.Path)
	logInfo("Previous file saved as %s", m.Table.BackupPath)
	return nil
}
