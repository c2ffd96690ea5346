package section

import (
	"github.com/anyshake/prisma/internal/field"
)

var loggerLevels = []string{"info", "warn", "error"}

// LoggerDraft holds the log file settings.
type LoggerDraft struct {
	Level     string  `json:"level" yaml:"level" toml:"level"`
	Rotation  float64 `json:"rotation" yaml:"rotation" toml:"rotation"`
	Lifecycle float64 `json:"lifecycle" yaml:"lifecycle" toml:"lifecycle"`
	Size      float64 `json:"size" yaml:"size" toml:"size"`
	Path      string  `json:"path" yaml:"path" toml:"path"`
}

// Logger controls the logger section. It has no derived fields.
type Logger struct {
	controller[LoggerDraft]
	editors map[string]editor
}

// NewLogger creates an inactive logger controller.
func NewLogger(opts Options) *Logger {
	opts = opts.withDefaults()
	l := &Logger{controller: newController[LoggerDraft](KeyLogger, opts, nil, nil)}
	l.editors = map[string]editor{
		"level": func(raw string) bool {
			v, ok := field.Choice(l.notifier, "Log level", raw, loggerLevels)
			if !ok {
				return false
			}
			return l.commit(func(d *LoggerDraft) { d.Level = v })
		},
		"rotation":  l.count("Rotation", func(d *LoggerDraft, v float64) { d.Rotation = v }),
		"lifecycle": l.count("Life cycle", func(d *LoggerDraft, v float64) { d.Lifecycle = v }),
		"size":      l.count("Archive size", func(d *LoggerDraft, v float64) { d.Size = v }),
		"path": func(raw string) bool {
			return l.commit(func(d *LoggerDraft) { d.Path = raw })
		},
	}
	return l
}

func (l *Logger) count(label string, set func(*LoggerDraft, float64)) editor {
	return func(raw string) bool {
		v, ok := field.Number(l.notifier, label, raw, field.AtLeast(0))
		if !ok {
			return false
		}
		return l.commit(func(d *LoggerDraft) { set(d, v) })
	}
}

func (l *Logger) Activate() {
	l.seed(LoggerDraft{
		Level:     "info",
		Rotation:  5,
		Lifecycle: 3,
		Size:      0,
		Path:      "./logs/observer.log",
	})
}

func (l *Logger) Fields() []Field {
	return []Field{
		{Name: "level", Label: "Log level", Kind: KindChoice, Options: loggerLevels},
		{Name: "rotation", Label: "Rotation (files)", Kind: KindNumber},
		{Name: "lifecycle", Label: "Life cycle (days)", Kind: KindNumber},
		{Name: "size", Label: "Archive size (MB)", Kind: KindNumber, Help: "0 disables size based rotation"},
		{Name: "path", Label: "Log file path", Kind: KindString},
	}
}

func (l *Logger) Value(name string) (string, bool) {
	switch name {
	case "level":
		return l.draft.Level, true
	case "rotation":
		return formatNumber(l.draft.Rotation), true
	case "lifecycle":
		return formatNumber(l.draft.Lifecycle), true
	case "size":
		return formatNumber(l.draft.Size), true
	case "path":
		return l.draft.Path, true
	}
	return "", false
}

func (l *Logger) Edit(name, raw string) (bool, error) {
	return l.edit(l.editors, name, raw)
}
