package cmd

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anyshake/prisma/internal/aggregate"
	"github.com/anyshake/prisma/internal/app"
	"github.com/anyshake/prisma/internal/audit"
	"github.com/anyshake/prisma/internal/config"
	"github.com/anyshake/prisma/internal/errors"
	"github.com/anyshake/prisma/internal/logging"
	"github.com/anyshake/prisma/internal/output"
	"github.com/anyshake/prisma/internal/wizard"
)

// settings returns the resolved tool settings.
func settings() *config.Settings {
	return app.Default.Settings
}

// loadSettings resolves --config (or the default settings path) plus the
// environment and installs the result on the default app.
func loadSettings() error {
	path, required := configPath, true
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			logging.Debug("no default settings path", "error", err)
		}
		path, required = p, false
	}

	s, err := config.Load(path, required)
	if err != nil {
		return errors.ConfigError("failed to load settings", err)
	}
	logging.Debug("settings loaded", "path", path, "format", s.Format, "output", s.OutputPath())
	app.Default.Settings = s
	return nil
}

// newSession returns a started session using the default app.
func newSession() *wizard.Session {
	return app.Default.NewSession()
}

// formatFor picks the output format: the explicit flag, then the extension
// of the output file, then the settings.
func formatFor(flag, outputPath string) string {
	if flag != "" {
		return flag
	}
	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".yaml", ".yml":
		return config.FormatYAML
	case ".toml":
		return config.FormatTOML
	case ".json":
		return config.FormatJSON
	}
	return settings().Format
}

// outputTarget splits the document destination into directory and file name.
func outputTarget(outputPath string) (string, string) {
	if outputPath == "" {
		s := settings()
		return s.OutputDir, s.FileName
	}
	return filepath.Dir(outputPath), filepath.Base(outputPath)
}

// printDocument renders the document to the command's output.
func printDocument(cmd *cobra.Command, doc *aggregate.Aggregator, format string) error {
	data, err := output.Render(doc, format)
	if err != nil {
		return err
	}
	s := settings()
	return output.Print(cmd.OutOrStdout(), data, format, s.Highlight, s.Style)
}

// writeDocument stores data and records the write in the session journal.
func writeDocument(session *wizard.Session, data []byte, outputPath string) (string, error) {
	dir, name := outputTarget(outputPath)
	path, err := output.Write(dir, name, data)
	if err != nil {
		return "", err
	}
	if j := session.Journal(); j != nil {
		if err := j.LogEvent(audit.EventWrite, "", path); err != nil {
			logging.Warn("failed to journal write", "error", err)
		}
	}
	return path, nil
}
