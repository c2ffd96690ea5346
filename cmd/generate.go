package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/anyshake/prisma/internal/errors"
	"github.com/anyshake/prisma/internal/output"
	"github.com/anyshake/prisma/internal/script"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build the configuration document without the wizard",
	Long: `Build the configuration document from the defaults, an optional edit
script and --set assignments, then write it to the configured output path.

Script commands run first, then each --set in order. Rejected values are
reported and nothing is written, unless --keep-going is given.`,
	Example: `  prisma generate --set server.port=8080 --set logger.level=error
  prisma generate --script station.prisma -o /etc/observer/config.json
  prisma generate --script - --stdout < station.prisma
  prisma generate --set hardware.transport=tcp --query hardware.endpoint`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

var (
	generateSets      []string
	generateScript    string
	generateFormat    string
	generateOutput    string
	generateStdout    bool
	generateQuery     string
	generateKeepGoing bool
	generateYes       bool
)

func init() {
	generateCmd.Flags().StringArrayVar(&generateSets, "set", nil, "Assign a field (section.field=value), repeatable")
	generateCmd.Flags().StringVar(&generateScript, "script", "", "Edit script to apply (- for stdin)")
	generateCmd.Flags().StringVar(&generateFormat, "format", "", "Output format: json, yaml or toml")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output file (default from settings)")
	generateCmd.Flags().BoolVar(&generateStdout, "stdout", false, "Print the document instead of writing it")
	generateCmd.Flags().StringVar(&generateQuery, "query", "", "Print one value of the document (gjson path)")
	generateCmd.Flags().BoolVar(&generateKeepGoing, "keep-going", false, "Apply remaining edits and write even if some were rejected")
	generateCmd.Flags().BoolVarP(&generateYes, "yes", "y", false, "Answer yes to confirmations")
	generateCmd.MarkFlagsMutuallyExclusive("output", "stdout")
	generateCmd.MarkFlagsMutuallyExclusive("output", "query")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cmds, err := collectCommands(cmd.InOrStdin())
	if err != nil {
		return err
	}

	if generateYes {
		settings().AutoConfirm = true
	}
	session := newSession()

	rejected, err := session.ApplyAll(cmds, generateKeepGoing)
	if err != nil {
		return err
	}
	if rejected > 0 {
		if !generateKeepGoing {
			return errors.ValidationFailed(rejected)
		}
		logWarning("%d edits rejected, continuing with the last accepted values", rejected)
	}

	doc := session.Document()
	if generateQuery != "" {
		res, err := doc.Query(generateQuery)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.String())
		return nil
	}

	format := formatFor(generateFormat, generateOutput)
	if generateStdout {
		return printDocument(cmd, doc, format)
	}

	data, err := output.Render(doc, format)
	if err != nil {
		return err
	}
	path, err := writeDocument(session, data, generateOutput)
	if err != nil {
		return err
	}
	logSuccess("Wrote %s (%d commands applied)", path, len(cmds)-rejected)
	return nil
}

// collectCommands parses the script followed by every --set assignment.
func collectCommands(stdin io.Reader) ([]script.Command, error) {
	var cmds []script.Command

	if generateScript != "" {
		r := stdin
		if generateScript != "-" {
			f, err := os.Open(generateScript)
			if err != nil {
				return nil, errors.ScriptError("failed to open script", err)
			}
			defer f.Close()
			r = f
		}
		parsed, err := script.Parse(r)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, parsed...)
	}

	for _, s := range generateSets {
		c, err := script.ParseAssignment(s)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, c)
	}
	return cmds, nil
}
