package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/anyshake/prisma/internal/notify"
	"github.com/anyshake/prisma/internal/section"
)

// fieldEditor edits one free-text field.
type fieldEditor struct {
	field section.Field
	input textinput.Model
}

func newFieldEditor(f section.Field, value string) *fieldEditor {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 48
	ti.SetValue(value)
	ti.CursorEnd()
	ti.Focus()

	switch f.Kind {
	case section.KindNumber:
		ti.Placeholder = "0"
	case section.KindPort:
		ti.Placeholder = "port"
	}
	if f.Name == "password" {
		ti.EchoMode = textinput.EchoPassword
	}
	return &fieldEditor{field: f, input: ti}
}

// Update processes a message and returns (done, value, cmd).
// done=true with a nil value means editing was cancelled.
func (e *fieldEditor) Update(msg tea.Msg) (bool, *string, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter:
			value := e.input.Value()
			return true, &value, nil
		case tea.KeyEsc:
			return true, nil, nil
		}
	}

	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	return false, nil, cmd
}

func (e *fieldEditor) View() string {
	return e.input.View()
}

// confirmDialog asks a yes/no question on behalf of a section.
type confirmDialog struct {
	message string
	opts    notify.ConfirmOptions
}

// Update returns (done, confirmed).
func (d *confirmDialog) Update(msg tea.Msg) (bool, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, false
	}
	switch keyMsg.String() {
	case "y", "enter":
		return true, true
	case "n", "esc":
		return true, false
	}
	return false, false
}

func (d *confirmDialog) confirmText() string {
	if d.opts.ConfirmBtnText != "" {
		return d.opts.ConfirmBtnText
	}
	return "Confirm"
}

func (d *confirmDialog) cancelText() string {
	if d.opts.CancelBtnText != "" {
		return d.opts.CancelBtnText
	}
	return "Cancel"
}

func (d *confirmDialog) View() string {
	var b strings.Builder
	if d.opts.Title != "" {
		b.WriteString(wizardLabelStyle.Render(d.opts.Title))
		b.WriteString("\n\n")
	}
	b.WriteString(d.message)
	b.WriteString("\n\n")
	b.WriteString(wizardValueStyle.Render("[y] " + d.confirmText()))
	b.WriteString("   ")
	b.WriteString(wizardDimStyle.Render("[n] " + d.cancelText()))
	return dialogStyle.Render(b.String())
}
