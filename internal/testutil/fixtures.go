package testutil

import (
	"bytes"
	"embed"
	"os"
	"path/filepath"

	"github.com/anyshake/prisma/internal/config"
	"github.com/anyshake/prisma/internal/script"
)

//go:embed fixtures/*
var fixturesFS embed.FS

// LoadFixture loads a fixture file by name.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// LoadSettingsFixture writes a settings fixture into dir and loads it the
// way the CLI does.
func LoadSettingsFixture(dir, name string) (*config.Settings, error) {
	data, err := LoadFixture(name)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, err
	}
	return config.Load(path, true)
}

// LoadScriptFixture parses an edit script fixture.
func LoadScriptFixture(name string) ([]script.Command, error) {
	data, err := LoadFixture(name)
	if err != nil {
		return nil, err
	}
	return script.Parse(bytes.NewReader(data))
}

// StationScript returns the commands of the station fixture.
func StationScript() ([]script.Command, error) {
	return LoadScriptFixture("station.prisma")
}

// RejectedScript returns commands that every controller rejects except the
// last one.
func RejectedScript() ([]script.Command, error) {
	return LoadScriptFixture("rejected.prisma")
}
