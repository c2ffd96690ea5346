package section

import (
	stderrors "errors"
	"reflect"
	"testing"

	"github.com/anyshake/prisma/internal/errors"
	"github.com/anyshake/prisma/internal/notify"
)

// recorder captures published events.
type recorder struct {
	events []Event
}

func (r *recorder) Publish(ev Event) { r.events = append(r.events, ev) }

func (r *recorder) kinds() []EventKind {
	kinds := make([]EventKind, len(r.events))
	for i, ev := range r.events {
		kinds[i] = ev.Kind
	}
	return kinds
}

func newTestOptions() (Options, *recorder, *notify.Recorder) {
	pub := &recorder{}
	rec := &notify.Recorder{}
	return Options{Publisher: pub, Notifier: rec, SerialPort: "/dev/ttyUSB0"}, pub, rec
}

func TestActivatePublishesCreateOnce(t *testing.T) {
	for _, info := range Registry {
		t.Run(string(info.Key), func(t *testing.T) {
			opts, pub, _ := newTestOptions()
			s, err := New(info.Key, opts)
			if err != nil {
				t.Fatalf("New(%s) error: %v", info.Key, err)
			}
			if s.State() != StateUninitialized {
				t.Fatalf("initial state = %v, want uninitialized", s.State())
			}

			s.Activate()
			s.Activate()

			if len(pub.events) != 1 {
				t.Fatalf("got %d events after double Activate, want 1", len(pub.events))
			}
			ev := pub.events[0]
			if ev.Kind != EventCreate || ev.Section != info.Key {
				t.Errorf("event = %v/%s, want create/%s", ev.Kind, ev.Section, info.Key)
			}
			if s.State() != StateSeeded {
				t.Errorf("state = %v, want seeded", s.State())
			}
			if !reflect.DeepEqual(ev.Draft, s.Draft()) {
				t.Errorf("published draft %+v differs from controller draft %+v", ev.Draft, s.Draft())
			}
		})
	}
}

func TestEditBeforeActivate(t *testing.T) {
	opts, pub, _ := newTestOptions()
	s := NewLogger(opts)

	ok, err := s.Edit("level", "warn")
	if ok || !stderrors.Is(err, ErrInactive) {
		t.Errorf("Edit before Activate = %v, %v; want false, ErrInactive", ok, err)
	}
	if len(pub.events) != 0 {
		t.Errorf("got %d events, want 0", len(pub.events))
	}
}

func TestEditUnknownField(t *testing.T) {
	opts, _, _ := newTestOptions()
	s := NewDatabase(opts)
	s.Activate()

	_, err := s.Edit("engine2", "mysql")
	var prismaErr *errors.PrismaError
	if !errors.As(err, &prismaErr) || prismaErr.Code != errors.ExitScriptError {
		t.Errorf("err = %v, want UnknownField", err)
	}
}

func TestUpdatesFollowCreate(t *testing.T) {
	opts, pub, _ := newTestOptions()
	s := NewServer(opts)
	s.Activate()

	for _, edit := range []struct{ name, raw string }{
		{"port", "8080"},
		{"debug", "true"},
		{"port", "8080"},
	} {
		if ok, err := s.Edit(edit.name, edit.raw); !ok || err != nil {
			t.Fatalf("Edit(%s, %s) = %v, %v", edit.name, edit.raw, ok, err)
		}
	}

	want := []EventKind{EventCreate, EventUpdate, EventUpdate, EventUpdate}
	if got := pub.kinds(); !reflect.DeepEqual(got, want) {
		t.Errorf("event kinds = %v, want %v", got, want)
	}
	if s.State() != StateActive {
		t.Errorf("state = %v, want active", s.State())
	}

	last := pub.events[len(pub.events)-1].Draft.(ServerDraft)
	if last.Listen != "0.0.0.0:8080" || !last.Debug || !last.CORS {
		t.Errorf("last draft = %+v", last)
	}
}

func TestRejectedNumericEditKeepsDraft(t *testing.T) {
	tests := []struct {
		key   Key
		field string
		raw   string
	}{
		{KeyLocation, "latitude", "91"},
		{KeyLocation, "latitude", "-90.5"},
		{KeyLocation, "longitude", "180.01"},
		{KeyLocation, "elevation", "-1"},
		{KeyHardware, "timeout", "-5"},
		{KeyHardware, "tcp_port", "70000"},
		{KeyHardware, "baudrate", "-9600"},
		{KeyDatabase, "port", "65536"},
		{KeyDatabase, "timeout", "-0.1"},
		{KeyNTPClient, "timeout", "-1"},
		{KeyNTPClient, "retry", "-3"},
		{KeyNTPClient, "servers.0.port", "99999"},
		{KeyServer, "port", "-1"},
		{KeyLogger, "rotation", "-1"},
		{KeyLogger, "lifecycle", "-2"},
		{KeyLogger, "size", "-10"},
	}

	for _, tt := range tests {
		t.Run(string(tt.key)+"."+tt.field+"="+tt.raw, func(t *testing.T) {
			opts, pub, rec := newTestOptions()
			s, _ := New(tt.key, opts)
			s.Activate()

			before := s.Draft()
			beforeValue, _ := s.Value(tt.field)

			ok, err := s.Edit(tt.field, tt.raw)
			if err != nil {
				t.Fatalf("Edit error: %v", err)
			}
			if ok {
				t.Fatal("out-of-range edit was committed")
			}
			if !reflect.DeepEqual(s.Draft(), before) {
				t.Errorf("draft changed: %+v -> %+v", before, s.Draft())
			}
			if v, _ := s.Value(tt.field); v != beforeValue {
				t.Errorf("value changed: %q -> %q", beforeValue, v)
			}
			if len(rec.Messages) != 1 || !rec.Messages[0].IsError {
				t.Errorf("notifications = %+v, want exactly one error", rec.Messages)
			}
			if len(pub.events) != 1 {
				t.Errorf("got %d events, want only the create", len(pub.events))
			}
			if s.State() != StateSeeded {
				t.Errorf("state = %v, want seeded", s.State())
			}
		})
	}
}

func TestDerivationDoesNotNotify(t *testing.T) {
	opts, _, rec := newTestOptions()
	for _, s := range NewAll(opts) {
		s.Activate()
	}
	if len(rec.Messages) != 0 {
		t.Errorf("seeding produced notifications: %+v", rec.Messages)
	}
}

func TestNewUnknownSection(t *testing.T) {
	if _, err := New("gnss", Options{}); err == nil {
		t.Error("New(gnss) should fail")
	}
}

func TestKeysFollowRegistry(t *testing.T) {
	want := []Key{KeyLocation, KeyHardware, KeyDatabase, KeyNTPClient, KeyServer, KeyLogger}
	if got := Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}

	sections := NewAll(Options{})
	for i, s := range sections {
		if s.Key() != want[i] {
			t.Errorf("NewAll()[%d].Key() = %s, want %s", i, s.Key(), want[i])
		}
	}
}

func TestDefaultSerialPort(t *testing.T) {
	if got := defaultSerialPort("windows"); got != "COM3" {
		t.Errorf("windows default = %q", got)
	}
	if got := defaultSerialPort("linux"); got != "/dev/ttyUSB0" {
		t.Errorf("linux default = %q", got)
	}
}

func TestFieldsHaveValues(t *testing.T) {
	opts, _, _ := newTestOptions()
	for _, s := range NewAll(opts) {
		s.Activate()
		for _, f := range s.Fields() {
			if _, ok := s.Value(f.Name); !ok {
				t.Errorf("%s: field %q has no value", s.Key(), f.Name)
			}
		}
	}
}
