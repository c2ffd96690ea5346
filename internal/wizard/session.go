// Package wizard wires the section controllers to the aggregated document.
// A Session is what the CLI and the terminal UI drive.
package wizard

import (
	"fmt"
	"strconv"

	"github.com/anyshake/prisma/internal/aggregate"
	"github.com/anyshake/prisma/internal/audit"
	"github.com/anyshake/prisma/internal/errors"
	"github.com/anyshake/prisma/internal/logging"
	"github.com/anyshake/prisma/internal/notify"
	"github.com/anyshake/prisma/internal/script"
	"github.com/anyshake/prisma/internal/section"
)

// Options configures a Session.
type Options struct {
	Notifier   notify.Notifier
	Confirmer  notify.Confirmer
	Map        section.MapView
	SerialPort string

	// Journal, when set, receives every publication.
	Journal *audit.Journal
}

// Session owns one controller per section and the aggregator they publish to.
type Session struct {
	doc      *aggregate.Aggregator
	sections []section.Section
	byKey    map[section.Key]section.Section
	journal  *audit.Journal
	started  bool
}

// New builds every section. Nothing is published until Start.
func New(opts Options) *Session {
	s := &Session{
		doc:     aggregate.New(),
		byKey:   make(map[section.Key]section.Section),
		journal: opts.Journal,
	}

	publishers := []section.Publisher{s.doc, section.PublisherFunc(logPublication)}
	if opts.Journal != nil {
		publishers = append(publishers, opts.Journal)
	}

	s.sections = section.NewAll(section.Options{
		Publisher:  section.Fanout(publishers...),
		Notifier:   opts.Notifier,
		Confirmer:  opts.Confirmer,
		Map:        opts.Map,
		SerialPort: opts.SerialPort,
	})
	for _, sec := range s.sections {
		s.byKey[sec.Key()] = sec
	}
	return s
}

func logPublication(ev section.Event) {
	logging.Debug("section published", "section", ev.Section, "kind", ev.Kind)
}

// Start activates every section in registry order. Calling it again has no
// effect.
func (s *Session) Start() {
	if s.started {
		return
	}
	s.started = true
	for _, sec := range s.sections {
		sec.Activate()
	}
	logging.Debug("session started", "sections", len(s.sections), "revision", s.doc.Revision())
}

// Document returns the aggregated document.
func (s *Session) Document() *aggregate.Aggregator {
	return s.doc
}

// Journal returns the publication journal, or nil.
func (s *Session) Journal() *audit.Journal {
	return s.journal
}

// Sections returns the controllers in registry order.
func (s *Session) Sections() []section.Section {
	return s.sections
}

// Section looks up a controller by key.
func (s *Session) Section(key string) (section.Section, error) {
	sec, ok := s.byKey[section.Key(key)]
	if !ok {
		return nil, errors.UnknownSection(key)
	}
	return sec, nil
}

// Apply runs one script command. It reports false when a controller rejected
// the value; malformed commands return an error instead.
func (s *Session) Apply(cmd script.Command) (bool, error) {
	sec, err := s.Section(cmd.Section)
	if err != nil {
		return false, err
	}
	logging.Debug("applying command", "command", cmd.String())

	switch cmd.Op {
	case script.OpSet:
		return sec.Edit(cmd.Field, cmd.Args[0])

	case script.OpPick:
		loc, ok := sec.(*section.Location)
		if !ok {
			return false, errors.ScriptError(fmt.Sprintf("%s has no map", cmd.Section), nil)
		}
		lat, err := strconv.ParseFloat(cmd.Args[0], 64)
		if err != nil {
			return false, errors.ScriptError("invalid latitude", err)
		}
		lon, err := strconv.ParseFloat(cmd.Args[1], 64)
		if err != nil {
			return false, errors.ScriptError("invalid longitude", err)
		}
		return loc.PickOnMap(lat, lon)
	}

	list, ok := sec.(section.ListEditor)
	if !ok {
		return false, errors.ScriptError(fmt.Sprintf("%s has no list entries", cmd.Section), nil)
	}
	if sec.State() == section.StateUninitialized {
		return false, section.ErrInactive
	}

	switch cmd.Op {
	case script.OpAdd:
		return list.AddEntry(), nil
	case script.OpRemove:
		i, err := strconv.Atoi(cmd.Args[0])
		if err != nil {
			return false, errors.ScriptError("invalid entry index", err)
		}
		return list.RemoveEntry(i), nil
	case script.OpPreset:
		return list.ApplyPreset(cmd.Args[0]), nil
	}
	return false, errors.ScriptError(fmt.Sprintf("unsupported command %q", cmd.Op), nil)
}

// ApplyAll runs commands in order and returns how many were rejected. With
// keepGoing unset it stops at the first rejection.
func (s *Session) ApplyAll(cmds []script.Command, keepGoing bool) (int, error) {
	rejected := 0
	for _, cmd := range cmds {
		ok, err := s.Apply(cmd)
		if err != nil {
			if cmd.Line > 0 {
				return rejected, errors.ScriptError(fmt.Sprintf("line %d", cmd.Line), err)
			}
			return rejected, err
		}
		if !ok {
			rejected++
			logging.Debug("command rejected", "command", cmd.String())
			if !keepGoing {
				return rejected, nil
			}
		}
	}
	return rejected, nil
}
