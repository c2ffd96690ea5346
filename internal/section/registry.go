package section

import (
	"runtime"

	"github.com/anyshake/prisma/internal/errors"
)

// Document metadata for the rendered configuration.
const (
	FileName      = "config.json"
	Language      = "json"
	Compatibility = "v4.2.0+"
)

// DefaultSerialPort is the serial identifier offered before the user picks one.
var DefaultSerialPort = defaultSerialPort(runtime.GOOS)

func defaultSerialPort(goos string) string {
	if goos == "windows" {
		return "COM3"
	}
	return "/dev/ttyUSB0"
}

// Info describes a registered section.
type Info struct {
	Key         Key
	Title       string
	Description string
	build       func(Options) Section
}

// Registry lists every section in document order. The set is fixed.
var Registry = []Info{
	{
		Key:         KeyLocation,
		Title:       "Location",
		Description: "The geographic coordinates of the AnyShake Explorer device. This setting serves as a fallback when GNSS location is unavailable.",
		build:       func(o Options) Section { return NewLocation(o) },
	},
	{
		Key:         KeyHardware,
		Title:       "Hardware",
		Description: "Settings for the AnyShake Explorer hardware connection, including transport, data protocol and product model.",
		build:       func(o Options) Section { return NewHardware(o) },
	},
	{
		Key:         KeyDatabase,
		Title:       "Database",
		Description: "Parameters for database connectivity, including type, address, and credentials.",
		build:       func(o Options) Section { return NewDatabase(o) },
	},
	{
		Key:         KeyNTPClient,
		Title:       "NTP Client",
		Description: "Configuration for the NTP client, which is used as a secondary time source when GNSS time data is not available.",
		build:       func(o Options) Section { return NewNTPClient(o) },
	},
	{
		Key:         KeyServer,
		Title:       "Server",
		Description: "Settings related to the built-in web server, including host, port, and debug mode.",
		build:       func(o Options) Section { return NewServer(o) },
	},
	{
		Key:         KeyLogger,
		Title:       "Logger",
		Description: "Specifies how logs are recorded, including log level, output format, and file path.",
		build:       func(o Options) Section { return NewLogger(o) },
	},
}

// Keys returns the registered keys in document order.
func Keys() []Key {
	keys := make([]Key, len(Registry))
	for i, info := range Registry {
		keys[i] = info.Key
	}
	return keys
}

// Lookup finds the registry entry for key.
func Lookup(key Key) (Info, bool) {
	for _, info := range Registry {
		if info.Key == key {
			return info, true
		}
	}
	return Info{}, false
}

// New builds the controller for key.
func New(key Key, opts Options) (Section, error) {
	info, ok := Lookup(key)
	if !ok {
		return nil, errors.UnknownSection(string(key))
	}
	return info.build(opts), nil
}

// NewAll builds one controller per registered section, in document order.
func NewAll(opts Options) []Section {
	sections := make([]Section, len(Registry))
	for i, info := range Registry {
		sections[i] = info.build(opts)
	}
	return sections
}
