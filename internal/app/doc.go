// Package app provides the application context for prisma.
//
// This package manages application-wide dependencies using the functional
// options pattern, enabling easy testing through dependency injection.
//
// # App Context
//
// The App struct holds core dependencies:
//
//	type App struct {
//	    Settings  *config.Settings  // Resolved tool settings
//	    Notifier  notify.Notifier   // Where section notifications go
//	    Confirmer notify.Confirmer  // Who answers confirmations
//	    Map       section.MapView   // Optional map widget
//	}
//
// # Creating an App
//
// Use New with functional options:
//
//	// Production usage
//	a := app.New(app.WithSettings(settings))
//
//	// Testing with custom dependencies
//	rec := &notify.Recorder{}
//	a := app.New(
//	    app.WithNotifier(rec),
//	    app.WithConfirmer(notify.AutoConfirm(false)),
//	)
//
// A session built with NewSession is already started, so its document is
// complete.
package app
