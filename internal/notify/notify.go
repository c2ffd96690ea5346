// Package notify defines the notification and confirmation sinks that
// section controllers report to, plus the implementations used by the CLI,
// the TUI and tests.
package notify

import (
	"github.com/anyshake/prisma/internal/logging"
)

// Notifier receives transient, non-blocking user notifications.
type Notifier interface {
	Notify(message string, isError bool)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string, isError bool)

func (f NotifierFunc) Notify(message string, isError bool) { f(message, isError) }

// ConfirmOptions configures a confirmation dialog.
type ConfirmOptions struct {
	Title          string
	CancelBtnText  string
	ConfirmBtnText string
	OnConfirmed    func()
	OnCancelled    func()
}

// Confirmer asks the user to confirm an action. Implementations call exactly
// one of OnConfirmed or OnCancelled, possibly later than Confirm returns.
type Confirmer interface {
	Confirm(message string, opts ConfirmOptions)
}

// Resolve invokes the callback matching the decision, if it is set.
func (o ConfirmOptions) Resolve(confirmed bool) {
	if confirmed {
		if o.OnConfirmed != nil {
			o.OnConfirmed()
		}
		return
	}
	if o.OnCancelled != nil {
		o.OnCancelled()
	}
}

// AutoConfirm answers every confirmation immediately with a fixed decision.
// Non-interactive runs use it.
type AutoConfirm bool

func (a AutoConfirm) Confirm(message string, opts ConfirmOptions) {
	logging.Debug("auto-answered confirmation", "title", opts.Title, "confirmed", bool(a))
	opts.Resolve(bool(a))
}

// Discard drops every notification.
var Discard Notifier = NotifierFunc(func(string, bool) {})

// Message is a single recorded notification.
type Message struct {
	Text    string
	IsError bool
}

// Recorder keeps every notification in order.
type Recorder struct {
	Messages []Message
}

func (r *Recorder) Notify(message string, isError bool) {
	r.Messages = append(r.Messages, Message{Text: message, IsError: isError})
}

// Errors returns the number of error notifications recorded.
func (r *Recorder) Errors() int {
	n := 0
	for _, m := range r.Messages {
		if m.IsError {
			n++
		}
	}
	return n
}

// Last returns the most recent notification.
func (r *Recorder) Last() (Message, bool) {
	if len(r.Messages) == 0 {
		return Message{}, false
	}
	return r.Messages[len(r.Messages)-1], true
}

// Reset forgets all recorded notifications.
func (r *Recorder) Reset() {
	r.Messages = nil
}

// Console prints notifications through the user output helpers and counts
// rejections so the CLI can decide its exit status.
type Console struct {
	Rejected int
}

func (c *Console) Notify(message string, isError bool) {
	if isError {
		c.Rejected++
		logging.UserError("%s", message)
		return
	}
	logging.UserInfo("%s", message)
}

// Tee fans a notification out to several notifiers.
func Tee(notifiers ...Notifier) Notifier {
	return NotifierFunc(func(message string, isError bool) {
		for _, n := range notifiers {
			n.Notify(message, isError)
		}
	})
}
