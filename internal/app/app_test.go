package app

import (
	"path/filepath"
	"testing"

	"github.com/anyshake/prisma/internal/config"
	"github.com/anyshake/prisma/internal/notify"
	"github.com/anyshake/prisma/internal/script"
)

func TestNew(t *testing.T) {
	app := New()

	if app == nil {
		t.Fatal("New() returned nil")
	}
	if app.Settings == nil {
		t.Error("Settings should not be nil")
	}
	if _, ok := app.Notifier.(*notify.Console); !ok {
		t.Errorf("Notifier = %T, want *notify.Console", app.Notifier)
	}
	if app.confirmer() != notify.AutoConfirm(false) {
		t.Errorf("confirmer() = %v, want AutoConfirm(false)", app.confirmer())
	}
	if app.Journal() != nil {
		t.Error("journal should be disabled by default")
	}
}

func TestNew_WithSettings(t *testing.T) {
	settings := config.Default()
	settings.AutoConfirm = true

	app := New(WithSettings(settings))

	if app.Settings != settings {
		t.Error("WithSettings did not set settings")
	}
	if app.confirmer() != notify.AutoConfirm(true) {
		t.Error("confirmer should follow auto_confirm")
	}

	settings.AutoConfirm = false
	if app.confirmer() != notify.AutoConfirm(false) {
		t.Error("confirmer should follow settings changed after New")
	}
}

func TestNew_WithNotifierAndConfirmer(t *testing.T) {
	rec := &notify.Recorder{}
	confirmer := notify.AutoConfirm(true)

	app := New(WithNotifier(rec), WithConfirmer(confirmer))

	if app.Notifier != rec {
		t.Error("WithNotifier did not set notifier")
	}
	if app.Confirmer != confirmer {
		t.Error("WithConfirmer did not set confirmer")
	}
}

type fakeMap struct{ lat, lon float64 }

func (m *fakeMap) Center(lat, lon float64) { m.lat, m.lon = lat, lon }

func TestNewSession(t *testing.T) {
	rec := &notify.Recorder{}
	m := &fakeMap{}
	settings := config.Default()
	settings.SerialPort = "/dev/ttyACM0"
	settings.Journal = filepath.Join(t.TempDir(), "journal.jsonl")

	app := New(WithSettings(settings), WithNotifier(rec), WithMap(m))
	s := app.NewSession()

	if !s.Document().Complete() {
		t.Fatal("session should be started")
	}
	if m.lat != 40.844184 {
		t.Errorf("map centered at %v, want the default latitude", m.lat)
	}

	res, err := s.Document().Query("hardware.endpoint")
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	if res.String() != "serial:///dev/ttyACM0?baudrate=57600" {
		t.Errorf("endpoint = %q", res.String())
	}

	if _, err := s.Apply(script.Command{Op: script.OpSet, Section: "server", Field: "port", Args: []string{"0"}}); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if rec.Errors() != 1 {
		t.Errorf("recorded %d errors, want 1", rec.Errors())
	}

	events, err := s.Journal().Events()
	if err != nil {
		t.Fatalf("Events() error: %v", err)
	}
	if len(events) != 6 {
		t.Errorf("journal has %d events, want 6 create events", len(events))
	}
}

func TestSetDefault(t *testing.T) {
	original := Default
	defer func() { Default = original }()

	custom := New(WithNotifier(notify.Discard))
	SetDefault(custom)

	if Default != custom {
		t.Error("SetDefault did not set default")
	}

	ResetDefault()
	if Default == custom {
		t.Error("ResetDefault did not reset default")
	}
}
