package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name        string
		verbose     bool
		json        bool
		wantDebug   bool
		wantJSONObj bool
	}{
		{"text", false, false, false, false},
		{"text verbose", true, false, true, false},
		{"json", false, true, false, true},
		{"json verbose", true, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Setup(tt.verbose, tt.json, &buf)

			Debug("section published", "section", "hardware")
			Warn("settings loaded", "format", "json")

			output := buf.String()
			if got := strings.Contains(output, "section published"); got != tt.wantDebug {
				t.Errorf("debug line present = %v, want %v: %s", got, tt.wantDebug, output)
			}
			if !strings.Contains(output, "settings loaded") {
				t.Errorf("warn line missing: %s", output)
			}

			if tt.wantJSONObj {
				lines := strings.Split(strings.TrimSpace(output), "\n")
				var rec map[string]any
				if err := json.Unmarshal([]byte(lines[len(lines)-1]), &rec); err != nil {
					t.Fatalf("last line is not JSON: %v", err)
				}
				if rec["format"] != "json" {
					t.Errorf("format attribute = %v", rec["format"])
				}
			}
		})
	}
}

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	Setup(true, false, &buf)

	Debug("applying command", "command", "set server.port 8080")
	Warn("failed to release output lock")

	output := buf.String()
	for _, want := range []string{
		"level=DEBUG", "applying command",
		"level=WARN", "output lock",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, false, &buf)

	logger := With("session", "3f2a")
	if logger == nil {
		t.Fatal("With() returned nil")
	}
	logger.Warn("failed to journal event")

	output := buf.String()
	if !strings.Contains(output, "failed to journal event") || !strings.Contains(output, "session=3f2a") {
		t.Errorf("output = %s", output)
	}
}

func TestSetup_NilWriter(t *testing.T) {
	// Falls back to stderr
	Setup(false, false, nil)

	if Logger == nil {
		t.Error("Logger should not be nil after Setup with nil writer")
	}
}

func TestUserOutput(t *testing.T) {
	var out, errOut bytes.Buffer
	origOut, origErr := Stdout, Stderr
	Stdout, Stderr = &out, &errOut
	defer func() { Stdout, Stderr = origOut, origErr }()

	UserInfo("info %d", 1)
	UserSuccess("wrote %s", "config.json")
	UserWarning("careful")
	UserError("Port must be between %d and %d", 0, 65535)

	if got := out.String(); got != "ℹ info 1\n✓ wrote config.json\n" {
		t.Errorf("stdout = %q", got)
	}
	if got := errOut.String(); got != "⚠ careful\n✗ Port must be between 0 and 65535\n" {
		t.Errorf("stderr = %q", got)
	}
}

func TestDiscard(t *testing.T) {
	var buf bytes.Buffer
	Setup(true, false, &buf)
	Discard()

	Warn("should vanish")

	if buf.Len() != 0 {
		t.Errorf("expected no output after Discard, got: %s", buf.String())
	}
}
