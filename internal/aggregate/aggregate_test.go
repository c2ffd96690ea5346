package aggregate

import (
	"reflect"
	"strings"
	"testing"

	"github.com/anyshake/prisma/internal/section"
)

const defaultDocument = `{
    "location": {
        "latitude": 40.844184,
        "longitude": -73.863995,
        "elevation": 100
    },
    "hardware": {
        "endpoint": "serial:///dev/ttyUSB0?baudrate=57600",
        "protocol": "v3",
        "model": "E-C111G",
        "timeout": 5
    },
    "database": {
        "endpoint": "sqlite://",
        "username": "",
        "password": "",
        "database": "",
        "prefix": "as_",
        "timeout": 5
    },
    "ntpclient": {
        "pool": [
            "ntp://pool.ntp.org:123"
        ],
        "timeout": 5,
        "retry": 5
    },
    "server": {
        "listen": "0.0.0.0:8073",
        "debug": false,
        "cors": true
    },
    "logger": {
        "level": "info",
        "rotation": 5,
        "lifecycle": 3,
        "size": 0,
        "path": "./logs/observer.log"
    }
}`

func seeded(t *testing.T) (*Aggregator, []section.Section) {
	t.Helper()
	agg := New()
	sections := section.NewAll(section.Options{Publisher: agg, SerialPort: "/dev/ttyUSB0"})
	for _, s := range sections {
		s.Activate()
	}
	return agg, sections
}

func TestKeysInRegistryOrder(t *testing.T) {
	agg := New()
	if agg.Complete() || len(agg.Keys()) != 0 {
		t.Fatal("new aggregator should be empty")
	}

	sections := section.NewAll(section.Options{Publisher: agg})
	// Activation order must not affect document order.
	for i := len(sections) - 1; i >= 0; i-- {
		sections[i].Activate()
		if i > 0 && agg.Complete() {
			t.Fatalf("complete after %d sections", len(sections)-i)
		}
	}

	want := []section.Key{"location", "hardware", "database", "ntpclient", "server", "logger"}
	if got := agg.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	if !agg.Complete() {
		t.Error("Complete() = false after all sections activated")
	}
}

func TestDefaultDocument(t *testing.T) {
	agg, _ := seeded(t)

	got, err := agg.JSON()
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	if string(got) != defaultDocument {
		t.Errorf("JSON() =\n%s\nwant\n%s", got, defaultDocument)
	}
}

func TestPartialDocument(t *testing.T) {
	agg := New()
	section.NewServer(section.Options{Publisher: agg}).Activate()

	got, err := agg.JSON()
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	want := "{\n    \"server\": {\n        \"listen\": \"0.0.0.0:8073\",\n        \"debug\": false,\n        \"cors\": true\n    }\n}"
	if string(got) != want {
		t.Errorf("JSON() = %s", got)
	}
}

func TestJSONDoesNotEscapeHTML(t *testing.T) {
	agg, sections := seeded(t)
	if _, err := sections[2].Edit("password", "a<b>&c"); err != nil {
		t.Fatal(err)
	}

	got, _ := agg.JSON()
	if !strings.Contains(string(got), `"password": "a<b>&c"`) {
		t.Errorf("password was escaped:\n%s", got)
	}
}

func TestUpdatesReplaceDraft(t *testing.T) {
	agg, sections := seeded(t)
	before := agg.Revision()

	hw := sections[1]
	hw.Edit("transport", "tcp")
	hw.Edit("tcp_host", "10.0.0.7")

	d, ok := agg.Get(section.KeyHardware)
	if !ok {
		t.Fatal("hardware missing")
	}
	if ep := d.(section.HardwareDraft).Endpoint; ep != "tcp://10.0.0.7:12345" {
		t.Errorf("endpoint = %q", ep)
	}
	if agg.Revision() != before+2 {
		t.Errorf("revision = %d, want %d", agg.Revision(), before+2)
	}
}

func TestIdenticalPublicationKeepsDocument(t *testing.T) {
	agg, sections := seeded(t)
	first, _ := agg.JSON()
	rev := agg.Revision()

	sections[4].Edit("port", "8073")

	second, _ := agg.JSON()
	if string(first) != string(second) {
		t.Error("republishing the same draft changed the document")
	}
	if agg.Revision() != rev+1 {
		t.Errorf("revision = %d, want %d", agg.Revision(), rev+1)
	}
}

func TestStoredDraftIsPrivate(t *testing.T) {
	agg := New()
	pool := []string{"ntp://a:123"}
	agg.Publish(section.Event{
		Kind:    section.EventCreate,
		Section: section.KeyNTPClient,
		Draft:   section.NTPClientDraft{Pool: pool},
	})
	pool[0] = "ntp://changed:123"

	d, _ := agg.Get(section.KeyNTPClient)
	got := d.(section.NTPClientDraft)
	if got.Pool[0] != "ntp://a:123" {
		t.Errorf("stored pool aliased publisher memory: %q", got.Pool)
	}

	got.Pool[0] = "ntp://mutated:123"
	again, _ := agg.Get(section.KeyNTPClient)
	if again.(section.NTPClientDraft).Pool[0] != "ntp://a:123" {
		t.Error("Get returned shared memory")
	}
}

func TestYAML(t *testing.T) {
	agg, _ := seeded(t)
	got, err := agg.YAML()
	if err != nil {
		t.Fatalf("YAML() error: %v", err)
	}

	for _, want := range []string{
		"location:\n    latitude: 40.844184\n",
		"hardware:\n    endpoint: ",
		"ntpclient:\n    pool:\n",
		"server:\n    listen: ",
	} {
		if !strings.Contains(string(got), want) {
			t.Errorf("YAML() missing %q:\n%s", want, got)
		}
	}
	if strings.Index(string(got), "logger:") < strings.Index(string(got), "server:") {
		t.Error("YAML sections out of order")
	}
}

func TestTOML(t *testing.T) {
	agg, _ := seeded(t)
	got, err := agg.TOML()
	if err != nil {
		t.Fatalf("TOML() error: %v", err)
	}

	s := string(got)
	for _, want := range []string{
		"[location]\n",
		"[hardware]\nendpoint = \"serial:///dev/ttyUSB0?baudrate=57600\"\n",
		`pool = ["ntp://pool.ntp.org:123"]`,
		"[logger]\n",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("TOML() missing %q:\n%s", want, s)
		}
	}
	if strings.Index(s, "[location]") > strings.Index(s, "[hardware]") {
		t.Error("TOML tables out of order")
	}
}

func TestQuery(t *testing.T) {
	agg, _ := seeded(t)

	tests := []struct {
		path string
		want string
	}{
		{"hardware.endpoint", "serial:///dev/ttyUSB0?baudrate=57600"},
		{"database.endpoint", "sqlite://"},
		{"ntpclient.pool.0", "ntp://pool.ntp.org:123"},
		{"ntpclient.pool.#", "1"},
		{"location.elevation", "100"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			res, err := agg.Query(tt.path)
			if err != nil {
				t.Fatalf("Query error: %v", err)
			}
			if res.String() != tt.want {
				t.Errorf("Query(%q) = %q, want %q", tt.path, res.String(), tt.want)
			}
		})
	}

	if _, err := agg.Query("gnss.enabled"); err == nil {
		t.Error("Query for a missing path should fail")
	}
}
