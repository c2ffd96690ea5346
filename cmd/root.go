package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/anyshake/prisma/internal/logging"
	"github.com/anyshake/prisma/internal/output"
)

var (
	verbose    bool
	jsonOutput bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "prisma",
	Short: "AnyShake Observer configuration generator",
	Long: `prisma builds the configuration document for AnyShake Observer (v4.2.0+).

The document has six sections:
  - location, hardware and database
  - ntpclient, server and logger

Run without a command in a terminal to open the interactive wizard. When
input or output is redirected, the default document is printed instead.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Setup(verbose, jsonOutput, os.Stderr)
		return loadSettings()
	},
	RunE: runRoot,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Settings file (default $XDG_CONFIG_HOME/prisma/prisma.toml)")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
)

// isInteractive reports whether the wizard can take over the terminal.
var isInteractive = func() bool {
	return output.IsTerminal(os.Stdin) && output.IsTerminal(os.Stdout)
}

func runRoot(cmd *cobra.Command, args []string) error {
	if isInteractive() {
		return runWizard(cmd, args)
	}
	logging.Debug("not a terminal, printing the default document")
	s := settings()
	return printDocument(cmd, newSession().Document(), s.Format)
}
