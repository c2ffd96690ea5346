// Package config loads the tool settings for prisma.
//
// Settings never hold document values. They describe where and how the
// document is written:
//
//	type Settings struct {
//	    FileName    string // document file name, config.json
//	    OutputDir   string // directory the document is confined to
//	    Format      string // "json", "yaml" or "toml"
//	    Highlight   bool   // colorize previews on a terminal
//	    Style       string // chroma style name
//	    SerialPort  string // default hardware serial port
//	    Journal     string // JSONL publication journal, empty disables it
//	    AutoConfirm bool   // answer confirmations without asking
//	}
//
// # Sources
//
// Later sources override earlier ones:
//
//   - Default()
//   - the TOML file, $XDG_CONFIG_HOME/prisma/prisma.toml unless --config is given
//   - PRISMA_* environment variables (PRISMA_FORMAT, PRISMA_OUTPUT_DIR, ...)
//   - command line flags, applied by cmd
//
// # Validation
//
// Load validates the merged result. Unknown keys in the TOML file are
// rejected.
package config
