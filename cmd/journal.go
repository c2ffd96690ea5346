package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anyshake/prisma/internal/app"
	"github.com/anyshake/prisma/internal/audit"
	"github.com/anyshake/prisma/internal/errors"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Display the publication journal",
	Long: `Display the section publications recorded by earlier runs.

The journal is written only when the journal setting (or PRISMA_JOURNAL)
names a file.`,
	Args: cobra.NoArgs,
	RunE: runJournal,
}

var (
	journalSession string
	journalRaw     bool
)

func init() {
	journalCmd.Flags().StringVar(&journalSession, "session", "", "Only show events of this session")
	journalCmd.Flags().BoolVar(&journalRaw, "raw", false, "Output events as JSON lines")
	rootCmd.AddCommand(journalCmd)
}

func runJournal(cmd *cobra.Command, args []string) error {
	j := app.Default.Journal()
	if j == nil {
		return errors.New(errors.ExitConfigError, "journal is disabled (set journal in the settings file or PRISMA_JOURNAL)")
	}

	events, err := j.Events()
	if err != nil {
		return fmt.Errorf("failed to read journal: %w", err)
	}
	if journalSession != "" {
		filtered := events[:0]
		for _, e := range events {
			if e.Session == journalSession {
				filtered = append(filtered, e)
			}
		}
		events = filtered
	}

	if len(events) == 0 {
		logInfo("No events found in %s", j.Path())
		return nil
	}

	out := cmd.OutOrStdout()
	for _, e := range events {
		if journalRaw {
			data, err := json.Marshal(e)
			if err != nil {
				return fmt.Errorf("failed to marshal event: %w", err)
			}
			fmt.Fprintln(out, string(data))
			continue
		}
		fmt.Fprintln(out, formatEvent(e))
	}
	return nil
}

func formatEvent(e audit.Event) string {
	ts := e.Timestamp.Local().Format("2006-01-02 15:04:05")
	session := e.Session
	if len(session) > 8 {
		session = session[:8]
	}
	switch {
	case e.Details != "":
		return fmt.Sprintf("[%s] %s %-6s %s", ts, session, e.Type, e.Details)
	case len(e.Draft) > 0:
		return fmt.Sprintf("[%s] %s %-6s %-9s %s", ts, session, e.Type, e.Section, e.Draft)
	}
	return fmt.Sprintf("[%s] %s %-6s %s", ts, session, e.Type, e.Section)
}
