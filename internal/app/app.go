// Package app provides the application context for prisma.
// It allows dependency injection for testing.
package app

import (
	"github.com/anyshake/prisma/internal/audit"
	"github.com/anyshake/prisma/internal/config"
	"github.com/anyshake/prisma/internal/logging"
	"github.com/anyshake/prisma/internal/notify"
	"github.com/anyshake/prisma/internal/section"
	"github.com/anyshake/prisma/internal/wizard"
)

// App holds the application dependencies
type App struct {
	// Settings holds the resolved tool settings
	Settings *config.Settings

	// Notifier receives section notifications in non-interactive runs
	Notifier notify.Notifier

	// Confirmer answers section confirmations in non-interactive runs.
	// When nil, Settings.AutoConfirm decides.
	Confirmer notify.Confirmer

	// Map is the optional map widget for the location section
	Map section.MapView
}

// Option is a function that configures the App
type Option func(*App)

// WithSettings sets custom settings
func WithSettings(s *config.Settings) Option {
	return func(a *App) {
		a.Settings = s
	}
}

// WithNotifier sets a custom notifier
func WithNotifier(n notify.Notifier) Option {
	return func(a *App) {
		a.Notifier = n
	}
}

// WithConfirmer sets a custom confirmer
func WithConfirmer(c notify.Confirmer) Option {
	return func(a *App) {
		a.Confirmer = c
	}
}

// WithMap sets the map widget
func WithMap(m section.MapView) Option {
	return func(a *App) {
		a.Map = m
	}
}

// New creates a new App with the given options.
// Missing settings fall back to config.Default.
func New(opts ...Option) *App {
	app := &App{}

	for _, opt := range opts {
		opt(app)
	}

	if app.Settings == nil {
		app.Settings = config.Default()
	}
	if app.Notifier == nil {
		app.Notifier = &notify.Console{}
	}
	return app
}

func (a *App) confirmer() notify.Confirmer {
	if a.Confirmer != nil {
		return a.Confirmer
	}
	return notify.AutoConfirm(a.Settings.AutoConfirm)
}

// Journal returns the publication journal configured in the settings, or nil
// when journaling is disabled.
func (a *App) Journal() *audit.Journal {
	if a.Settings.Journal == "" {
		return nil
	}
	j := audit.NewJournal(a.Settings.Journal)
	logging.Debug("journal enabled", "path", j.Path(), "session", j.Session())
	return j
}

// NewSession builds a started wizard session wired to the app's collaborators.
func (a *App) NewSession() *wizard.Session {
	s := wizard.New(wizard.Options{
		Notifier:   a.Notifier,
		Confirmer:  a.confirmer(),
		Map:        a.Map,
		SerialPort: a.Settings.SerialPort,
		Journal:    a.Journal(),
	})
	s.Start()
	return s
}

// Default is the default application instance
var Default = New()

// SetDefault sets the default application instance (used for testing)
func SetDefault(app *App) {
	Default = app
}

// ResetDefault resets to the default application instance
func ResetDefault() {
	Default = New()
}
