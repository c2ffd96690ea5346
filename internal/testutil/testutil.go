// Package testutil provides test utilities for command tests
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/anyshake/prisma/internal/app"
	"github.com/anyshake/prisma/internal/config"
	"github.com/anyshake/prisma/internal/notify"
)

// TestEnv holds the test environment
type TestEnv struct {
	T          *testing.T
	TmpDir     string
	ConfigPath string
	Settings   *config.Settings
	Notifier   *notify.Recorder
	App        *app.App
	cleanup    func()
}

// NewTestEnv creates a test environment whose output directory lives under a
// temporary directory and whose notifications are recorded. The settings are
// also written to ConfigPath for commands that load them from disk.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	tmpDir := t.TempDir()

	settings := config.Default()
	settings.OutputDir = filepath.Join(tmpDir, "out")
	settings.SerialPort = "/dev/ttyUSB0"
	settings.Highlight = false

	rec := &notify.Recorder{}
	testApp := app.New(
		app.WithSettings(settings),
		app.WithNotifier(rec),
	)

	// Save original default and set test app
	originalDefault := app.Default
	app.SetDefault(testApp)

	env := &TestEnv{
		T:          t,
		TmpDir:     tmpDir,
		ConfigPath: filepath.Join(tmpDir, config.FileName),
		Settings:   settings,
		Notifier:   rec,
		App:        testApp,
		cleanup: func() {
			app.SetDefault(originalDefault)
		},
	}
	t.Cleanup(env.Cleanup)
	env.SaveSettings()

	return env
}

// Cleanup restores the original app default
func (e *TestEnv) Cleanup() {
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
}

// SaveSettings writes the current settings to ConfigPath.
func (e *TestEnv) SaveSettings() {
	e.T.Helper()

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(e.Settings); err != nil {
		e.T.Fatalf("Failed to encode settings: %v", err)
	}
	if err := os.WriteFile(e.ConfigPath, buf.Bytes(), 0644); err != nil {
		e.T.Fatalf("Failed to write settings: %v", err)
	}
}

// EnableJournal points the settings at a journal file inside the test
// directory and returns its path.
func (e *TestEnv) EnableJournal() string {
	e.T.Helper()

	path := filepath.Join(e.TmpDir, "journal.jsonl")
	e.Settings.Journal = path
	e.SaveSettings()
	return path
}

// WriteFile writes a file relative to the test directory and returns its path.
func (e *TestEnv) WriteFile(name, content string) string {
	e.T.Helper()

	path := filepath.Join(e.TmpDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		e.T.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		e.T.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

// OutputPath returns where the document is written.
func (e *TestEnv) OutputPath() string {
	return e.App.Settings.OutputPath()
}

// ReadOutput reads the written document.
func (e *TestEnv) ReadOutput() string {
	e.T.Helper()

	data, err := os.ReadFile(e.OutputPath())
	if err != nil {
		e.T.Fatalf("Failed to read output: %v", err)
	}
	return string(data)
}

// OutputExists reports whether the document was written.
func (e *TestEnv) OutputExists() bool {
	_, err := os.Stat(e.OutputPath())
	return err == nil
}
