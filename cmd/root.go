package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/make-your-choice/choice-ctl/internal/app"
	"github.com/make-your-choice/choice-ctl/internal/errors"
	"github.com/make-your-choice/choice-ctl/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
	configFile string
	hostsFile  string
	rootDir    string
	nameserver string
)

var rootCmd = &cobra.Command{
	Use:   "choice-ctl",
	Short: "Dead by Daylight server region selector",
	Long: `choice-ctl steers matchmaking traffic toward the server regions you pick
by editing the system hosts file.

Two methods are available:
  - Gatekeep: null-route every region you did not select
  - Universal Redirect: point every region's endpoints at one selected region

All changes live in a single marked block, so the rest of the hosts
file is never touched. Writing the hosts file needs elevated privileges.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Setup(verbose, jsonOutput, os.Stderr)
		logging.SetUserOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
		return loadSettings()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Settings file (default $XDG_CONFIG_HOME/make-your-choice/settings.toml)")
	rootCmd.PersistentFlags().StringVar(&hostsFile, "hosts-file", "", "Hosts file to edit (default is the platform hosts file)")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "Treat this directory as the filesystem root for the hosts file")
	rootCmd.PersistentFlags().StringVar(&nameserver, "nameserver", "", "Resolve through this DNS server instead of the system resolver")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// loadSettings reads the settings file into the default app and applies
// global flag overrides on top.
func loadSettings() error {
	a := app.Default
	if configFile != "" {
		a.Paths = a.Paths.WithSettingsFile(configFile)
	}
	if err := a.LoadSettings(); err != nil {
		return err
	}

	s := a.Settings
	if hostsFile != "" {
		s.HostsFile = hostsFile
	}
	if rootDir != "" {
		s.Root = rootDir
	}
	if nameserver != "" {
		s.Nameserver = nameserver
	}
	if err := s.Validate(); err != nil {
		return errors.ConfigError("invalid options", err)
	}

	logging.Debug("settings loaded", "path", a.Paths.SettingsFile, "hosts_file", s.HostsFile, "root", s.Root)
	return nil
}
