package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anyshake/prisma/internal/notify"
	"github.com/anyshake/prisma/internal/section"
	"github.com/anyshake/prisma/internal/wizard"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections [section]",
	Short: "List the document sections and their fields",
	Long: `Without arguments, list every section in document order.
With a section key, list its editable fields and their default values.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSections,
}

func init() {
	rootCmd.AddCommand(sectionsCmd)
}

func runSections(cmd *cobra.Command, args []string) error {
	// A throwaway session shows defaults without touching the journal.
	session := wizard.New(wizard.Options{
		Notifier:   notify.Discard,
		SerialPort: settings().SerialPort,
	})
	session.Start()

	if len(args) == 1 {
		sec, err := session.Section(args[0])
		if err != nil {
			return err
		}
		info, _ := section.Lookup(sec.Key())
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", info.Title, info.Description)
		fmt.Fprintln(cmd.OutOrStdout(), renderTable(
			[]string{"FIELD", "LABEL", "KIND", "DEFAULT"},
			fieldRows(sec),
		))
		return nil
	}

	rows := make([][]string, 0, len(section.Registry))
	for _, sec := range session.Sections() {
		info, _ := section.Lookup(sec.Key())
		names := make([]string, 0)
		for _, f := range sec.Fields() {
			names = append(names, f.Name)
		}
		rows = append(rows, []string{string(sec.Key()), info.Title, strings.Join(names, ", ")})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"SECTION", "TITLE", "FIELDS"}, rows))
	return nil
}

func fieldRows(sec section.Section) [][]string {
	fields := sec.Fields()
	rows := make([][]string, 0, len(fields))
	for _, f := range fields {
		kind := f.Kind.String()
		if len(f.Options) > 0 {
			kind = strings.Join(f.Options, "|")
		}
		value, _ := sec.Value(f.Name)
		if f.Name == "password" && value != "" {
			value = "********"
		}
		rows = append(rows, []string{f.Name, f.Label, kind, value})
	}
	return rows
}
