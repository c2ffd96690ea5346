package cmd

import (
	"github.com/spf13/cobra"

	"github.com/anyshake/prisma/internal/app"
	"github.com/anyshake/prisma/internal/errors"
	"github.com/anyshake/prisma/internal/logging"
	"github.com/anyshake/prisma/internal/output"
	"github.com/anyshake/prisma/internal/tui"
)

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Edit the configuration interactively",
	Long: `Open the interactive configuration wizard.

Sections are shown one at a time. Press w to write the document to the
configured output path and q to quit.`,
	Args: cobra.NoArgs,
	RunE: runWizard,
}

func init() {
	rootCmd.AddCommand(wizardCmd)
}

func runWizard(cmd *cobra.Command, args []string) error {
	s := settings()

	// Structured logs would draw over the alternate screen.
	logging.Discard()
	defer logging.Setup(verbose, jsonOutput, cmd.ErrOrStderr())

	result, err := tui.Run(tui.Options{
		SerialPort:  s.SerialPort,
		Journal:     app.Default.Journal(),
		Format:      s.Format,
		Style:       s.Style,
		Highlight:   s.Highlight,
		AutoConfirm: s.AutoConfirm,
		Save: func(data []byte) (string, error) {
			return output.Write(s.OutputDir, s.FileName, data)
		},
	})
	if err != nil {
		return errors.Wrap(errors.ExitGeneralError, "wizard failed", err)
	}

	if len(result.Saved) == 0 {
		logInfo("Nothing written")
		return nil
	}
	for _, path := range result.Saved {
		logSuccess("Wrote %s", path)
	}
	return nil
}
