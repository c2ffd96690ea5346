package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/anyshake/prisma/internal/section"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "PRISMA_"

	// FileName is the settings file looked up under the user config directory.
	FileName = "prisma.toml"

	DefaultStyle = "monokai"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// Formats lists the supported output formats.
var Formats = []string{FormatJSON, FormatYAML, FormatTOML}

// Settings controls how prisma renders and writes the document. It does not
// hold any document values; those come from the sections.
type Settings struct {
	FileName    string `toml:"file_name" env:"FILE_NAME"`
	OutputDir   string `toml:"output_dir" env:"OUTPUT_DIR"`
	Format      string `toml:"format" env:"FORMAT"`
	Highlight   bool   `toml:"highlight" env:"HIGHLIGHT"`
	Style       string `toml:"style" env:"STYLE"`
	SerialPort  string `toml:"serial_port" env:"SERIAL_PORT"`
	Journal     string `toml:"journal" env:"JOURNAL"`
	AutoConfirm bool   `toml:"auto_confirm" env:"AUTO_CONFIRM"`
}

// Default returns the built-in settings.
func Default() *Settings {
	return &Settings{
		FileName:   section.FileName,
		OutputDir:  ".",
		Format:     FormatJSON,
		Highlight:  true,
		Style:      DefaultStyle,
		SerialPort: section.DefaultSerialPort,
	}
}

// Validate checks that the Settings are usable.
func (s *Settings) Validate() error {
	if s.FileName == "" {
		return fmt.Errorf("file_name is required")
	}
	if filepath.Base(s.FileName) != s.FileName {
		return fmt.Errorf("file_name must not contain path separators (got %q)", s.FileName)
	}
	if !slices.Contains(Formats, s.Format) {
		return fmt.Errorf("invalid format: %s (must be %s)", s.Format, strings.Join(Formats, ", "))
	}
	if s.SerialPort == "" {
		return fmt.Errorf("serial_port is required")
	}
	return nil
}

// OutputPath returns the configured document path.
func (s *Settings) OutputPath() string {
	return filepath.Join(s.OutputDir, s.FileName)
}

// DefaultPath returns $XDG_CONFIG_HOME/prisma/prisma.toml or the platform
// equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "prisma", FileName), nil
}

// Load builds Settings from defaults, the TOML file at path and PRISMA_*
// environment variables, in that order. A missing file is not an error
// unless required is set.
func Load(path string, required bool) (*Settings, error) {
	s := Default()

	if path != "" {
		md, err := toml.DecodeFile(path, s)
		switch {
		case os.IsNotExist(err) && !required:
		case err != nil:
			return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
		default:
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				return nil, fmt.Errorf("unknown settings in %s: %v", path, undecoded)
			}
		}
	}

	if err := env.ParseWithOptions(s, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}
