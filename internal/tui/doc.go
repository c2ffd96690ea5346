// Package tui provides the interactive configuration wizard for prisma.
//
// The wizard uses the Bubble Tea framework. It drives a wizard.Session and
// is the session's notifier and confirmer, so rejected values appear as
// toasts and confirmations as dialogs:
//
//	result, err := tui.Run(tui.Options{
//	    SerialPort: settings.SerialPort,
//	    Format:     settings.Format,
//	    Save:       func(data []byte) (string, error) { return output.Write(dir, name, data) },
//	})
//
// # Keys
//
//   - Tab/Shift+Tab (or h/l): switch section, shown as a progress bar
//   - j/k or arrows: move between fields
//   - Enter: edit a text field, toggle a switch or cycle a choice
//   - a/x/P: add, remove or pick a preset for NTP servers
//   - p: toggle the highlighted document preview
//   - w: write the document, q: quit
//
// # Dependencies
//
// Uses the Charm libraries:
//   - github.com/charmbracelet/bubbletea - TUI framework
//   - github.com/charmbracelet/bubbles - UI components
//   - github.com/charmbracelet/lipgloss - Styling
package tui
