package section

import (
	stderrors "errors"
	"strconv"

	"github.com/anyshake/prisma/internal/errors"
	"github.com/anyshake/prisma/internal/notify"
)

// ErrInactive is returned when a section is edited before Activate.
var ErrInactive = stderrors.New("section is not active")

// Key identifies a section in the configuration tree.
type Key string

const (
	KeyLocation  Key = "location"
	KeyHardware  Key = "hardware"
	KeyDatabase  Key = "database"
	KeyNTPClient Key = "ntpclient"
	KeyServer    Key = "server"
	KeyLogger    Key = "logger"
)

// State is the controller lifecycle tag.
type State int

const (
	StateUninitialized State = iota
	StateSeeded
	StateActive
)

func (s State) String() string {
	switch s {
	case StateSeeded:
		return "seeded"
	case StateActive:
		return "active"
	default:
		return "uninitialized"
	}
}

// EventKind distinguishes the one-time seed from later changes.
type EventKind int

const (
	EventCreate EventKind = iota
	EventUpdate
)

func (k EventKind) String() string {
	if k == EventCreate {
		return "create"
	}
	return "update"
}

// Event carries a full copy of a section draft. The receiver owns Draft.
type Event struct {
	Kind    EventKind
	Section Key
	Draft   any
}

// Publisher receives section events. Controllers publish and never read back.
type Publisher interface {
	Publish(ev Event)
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(ev Event)

func (f PublisherFunc) Publish(ev Event) { f(ev) }

// Fanout delivers each event to every publisher in order.
func Fanout(publishers ...Publisher) Publisher {
	return PublisherFunc(func(ev Event) {
		for _, p := range publishers {
			p.Publish(ev)
		}
	})
}

// Kind is the input kind of an editable field.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindPort
	KindBool
	KindChoice
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindPort:
		return "port"
	case KindBool:
		return "bool"
	case KindChoice:
		return "choice"
	}
	return "string"
}

// Field describes one editable field of a section.
type Field struct {
	Name    string
	Label   string
	Kind    Kind
	Options []string
	Help    string
}

// Section is a settings controller owning one draft.
type Section interface {
	Key() Key
	State() State

	// Activate seeds the draft from defaults and publishes it once.
	Activate()

	// Fields lists the fields relevant to the current draft, in display order.
	Fields() []Field

	// Value returns the committed text of a field.
	Value(name string) (string, bool)

	// Edit validates raw and commits it. A rejected value reports through
	// the notifier and returns false; err is only set for unknown fields or
	// an inactive section.
	Edit(name, raw string) (bool, error)

	// Draft returns a copy of the current draft.
	Draft() any
}

// MapView is the map widget collaborator of the location section.
type MapView interface {
	Center(latitude, longitude float64)
}

// Options carries the collaborators every controller is built with.
type Options struct {
	Publisher Publisher
	Notifier  notify.Notifier
	Confirmer notify.Confirmer
	Map       MapView

	// SerialPort is the default serial identifier for the hardware section.
	SerialPort string
}

func (o Options) withDefaults() Options {
	if o.Publisher == nil {
		o.Publisher = PublisherFunc(func(Event) {})
	}
	if o.Notifier == nil {
		o.Notifier = notify.Discard
	}
	if o.SerialPort == "" {
		o.SerialPort = DefaultSerialPort
	}
	return o
}

// editor validates and commits one field.
type editor func(raw string) bool

// controller is the state machine shared by every section. derive runs after
// every seed and commit and must only compute fields from the controller's
// constituents; it never notifies.
type controller[D any] struct {
	key       Key
	state     State
	draft     D
	derive    func(d *D)
	clone     func(d D) D
	publisher Publisher
	notifier  notify.Notifier
}

func newController[D any](key Key, opts Options, derive func(*D), clone func(D) D) controller[D] {
	if derive == nil {
		derive = func(*D) {}
	}
	if clone == nil {
		clone = func(d D) D { return d }
	}
	return controller[D]{
		key:       key,
		derive:    derive,
		clone:     clone,
		publisher: opts.Publisher,
		notifier:  opts.Notifier,
	}
}

func (c *controller[D]) Key() Key     { return c.key }
func (c *controller[D]) State() State { return c.state }
func (c *controller[D]) Draft() any   { return c.clone(c.draft) }

// seed installs the defaults and emits the single create event. It reports
// false when the controller was already seeded.
func (c *controller[D]) seed(defaults D) bool {
	if c.state != StateUninitialized {
		return false
	}
	c.draft = defaults
	c.derive(&c.draft)
	c.state = StateSeeded
	c.emit(EventCreate)
	return true
}

// commit applies mutate, re-derives and emits an update.
func (c *controller[D]) commit(mutate func(d *D)) bool {
	mutate(&c.draft)
	c.derive(&c.draft)
	c.state = StateActive
	c.emit(EventUpdate)
	return true
}

func (c *controller[D]) emit(kind EventKind) {
	c.publisher.Publish(Event{Kind: kind, Section: c.key, Draft: c.clone(c.draft)})
}

func (c *controller[D]) edit(editors map[string]editor, name, raw string) (bool, error) {
	if c.state == StateUninitialized {
		return false, ErrInactive
	}
	ed, ok := editors[name]
	if !ok {
		return false, errors.UnknownField(string(c.key), name)
	}
	return ed(raw), nil
}

// reject reports a structural violation that field parsers cannot see.
func (c *controller[D]) reject(message string) bool {
	c.notifier.Notify(message, true)
	return false
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatBool(v bool) string {
	return strconv.FormatBool(v)
}

// CloneDraft returns a copy of a published draft that shares no memory with
// the controller that produced it.
func CloneDraft(d any) any {
	if n, ok := d.(NTPClientDraft); ok {
		return cloneNTPClient(n)
	}
	return d
}
