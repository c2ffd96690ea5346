package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/anyshake/prisma/internal/audit"
	"github.com/anyshake/prisma/internal/config"
	"github.com/anyshake/prisma/internal/logging"
	"github.com/anyshake/prisma/internal/notify"
	"github.com/anyshake/prisma/internal/output"
	"github.com/anyshake/prisma/internal/section"
	"github.com/anyshake/prisma/internal/wizard"
)

// maxToasts bounds the notifications shown at once.
const maxToasts = 3

// Options configures the wizard.
type Options struct {
	SerialPort  string
	Journal     *audit.Journal
	Format      string
	Style       string
	Highlight   bool
	AutoConfirm bool

	// Save stores the rendered document and returns where it went.
	Save func(data []byte) (string, error)
}

// Result holds the outcome of a wizard run.
type Result struct {
	Saved []string
}

// wizardStyles
var (
	wizardTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39"))

	wizardStepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	wizardActiveStepStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39"))

	wizardLabelStyle = lipgloss.NewStyle().
				Bold(true)

	wizardValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39"))

	wizardDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	toastInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	toastErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(1, 2)
)

// Model is the bubbletea model for the configuration wizard. It is also the
// notifier and confirmer of its session.
type Model struct {
	opts    Options
	session *wizard.Session

	current int
	cursor  int

	editor *fieldEditor
	picker *presetPicker
	dialog *confirmDialog

	toasts   []notify.Message
	preview  bool
	saved    []string
	quitting bool

	width  int
	height int
}

// New builds a wizard with every section activated.
func New(opts Options) *Model {
	if opts.Format == "" {
		opts.Format = config.FormatJSON
	}
	if opts.Style == "" {
		opts.Style = config.DefaultStyle
	}
	if opts.Save == nil {
		opts.Save = func(data []byte) (string, error) {
			return output.Write(".", section.FileName, data)
		}
	}

	m := &Model{opts: opts}
	var confirmer notify.Confirmer = m
	if opts.AutoConfirm {
		confirmer = notify.AutoConfirm(true)
	}
	m.session = wizard.New(wizard.Options{
		Notifier:   m,
		Confirmer:  confirmer,
		SerialPort: opts.SerialPort,
		Journal:    opts.Journal,
	})
	m.session.Start()
	return m
}

// Notify queues a toast.
func (m *Model) Notify(message string, isError bool) {
	m.toasts = append(m.toasts, notify.Message{Text: message, IsError: isError})
	if len(m.toasts) > maxToasts {
		m.toasts = m.toasts[len(m.toasts)-maxToasts:]
	}
}

// Confirm opens a dialog. The decision is delivered on a later key press.
func (m *Model) Confirm(message string, opts notify.ConfirmOptions) {
	m.dialog = &confirmDialog{message: message, opts: opts}
}

// Session returns the underlying session.
func (m *Model) Session() *wizard.Session {
	return m.session
}

// Result returns the wizard result.
func (m *Model) Result() Result {
	return Result{Saved: m.saved}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.picker != nil {
			m.picker.setSize(msg.Width, msg.Height)
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		m.toasts = nil
	}

	switch {
	case m.dialog != nil:
		m.updateDialog(msg)
		return m, nil
	case m.picker != nil:
		return m, m.updatePicker(msg)
	case m.editor != nil:
		return m, m.updateEditor(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	return m, m.handleKey(keyMsg)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "esc":
		m.quitting = true
		return tea.Quit
	case "tab", "right", "l":
		m.moveSection(1)
	case "shift+tab", "left", "h":
		m.moveSection(-1)
	case "down", "j":
		m.moveCursor(1)
	case "up", "k":
		m.moveCursor(-1)
	case "enter", " ":
		return m.activateField()
	case "a":
		if list, ok := m.section().(section.ListEditor); ok {
			list.AddEntry()
		}
	case "x":
		m.removeEntry()
	case "P":
		if _, ok := m.section().(section.ListEditor); ok {
			m.picker = newPresetPicker(m.width, m.height)
		}
	case "p":
		m.preview = !m.preview
	case "w":
		m.save()
	}
	return nil
}

func (m *Model) section() section.Section {
	return m.session.Sections()[m.current]
}

func (m *Model) field() (section.Field, bool) {
	fields := m.section().Fields()
	if m.cursor < 0 || m.cursor >= len(fields) {
		return section.Field{}, false
	}
	return fields[m.cursor], true
}

func (m *Model) moveSection(delta int) {
	n := len(m.session.Sections())
	m.current = (m.current + delta + n) % n
	m.cursor = 0
}

func (m *Model) moveCursor(delta int) {
	n := len(m.section().Fields())
	if n == 0 {
		return
	}
	m.cursor = (m.cursor + delta + n) % n
}

// clampCursor keeps the cursor on a field after the field list changed.
func (m *Model) clampCursor() {
	n := len(m.section().Fields())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) edit(name, raw string) bool {
	ok, err := m.section().Edit(name, raw)
	if err != nil {
		m.Notify(err.Error(), true)
		return false
	}
	m.clampCursor()
	return ok
}

func (m *Model) activateField() tea.Cmd {
	f, ok := m.field()
	if !ok {
		return nil
	}
	current, _ := m.section().Value(f.Name)

	switch f.Kind {
	case section.KindBool:
		m.edit(f.Name, strconv.FormatBool(current != "true"))
		return nil
	case section.KindChoice:
		m.edit(f.Name, nextOption(f.Options, current))
		return nil
	}

	m.editor = newFieldEditor(f, current)
	return textinput.Blink
}

func nextOption(options []string, current string) string {
	for i, o := range options {
		if o == current {
			return options[(i+1)%len(options)]
		}
	}
	if len(options) > 0 {
		return options[0]
	}
	return current
}

func (m *Model) updateEditor(msg tea.Msg) tea.Cmd {
	done, value, cmd := m.editor.Update(msg)
	if !done {
		return cmd
	}
	if value == nil {
		m.editor = nil
		return nil
	}
	// A rejected value keeps the editor open for correction.
	if m.edit(m.editor.field.Name, *value) {
		m.editor = nil
	}
	return nil
}

func (m *Model) updatePicker(msg tea.Msg) tea.Cmd {
	done, preset, cmd := m.picker.Update(msg)
	if !done {
		return cmd
	}
	m.picker = nil
	if preset == nil {
		return nil
	}
	if list, ok := m.section().(section.ListEditor); ok {
		list.ApplyPreset(preset.Name)
		m.clampCursor()
	}
	return nil
}

func (m *Model) updateDialog(msg tea.Msg) {
	done, confirmed := m.dialog.Update(msg)
	if !done {
		return
	}
	d := m.dialog
	m.dialog = nil
	d.opts.Resolve(confirmed)
	m.clampCursor()
}

func (m *Model) removeEntry() {
	list, ok := m.section().(section.ListEditor)
	if !ok {
		return
	}
	f, ok := m.field()
	if !ok || !strings.HasPrefix(f.Name, "servers.") {
		m.Notify("Select a server to remove", true)
		return
	}
	var i int
	if _, err := fmt.Sscanf(f.Name, "servers.%d.", &i); err != nil {
		return
	}
	if list.RemoveEntry(i) {
		m.clampCursor()
	}
}

func (m *Model) render() ([]byte, error) {
	return output.Render(m.session.Document(), m.opts.Format)
}

func (m *Model) save() {
	data, err := m.render()
	if err != nil {
		m.Notify(err.Error(), true)
		return
	}
	path, err := m.opts.Save(data)
	if err != nil {
		m.Notify(err.Error(), true)
		return
	}
	m.saved = append(m.saved, path)
	if j := m.session.Journal(); j != nil {
		if err := j.LogEvent(audit.EventWrite, "", path); err != nil {
			logging.Warn("failed to journal write", "error", err)
		}
	}
	m.Notify("Saved "+path, false)
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(wizardTitleStyle.Render("AnyShake Prisma"))
	b.WriteString(" ")
	b.WriteString(wizardDimStyle.Render(fmt.Sprintf("%s | %s | %s", section.FileName, section.Language, section.Compatibility)))
	b.WriteString("\n")
	b.WriteString(m.progressBar())
	b.WriteString("\n\n")

	switch {
	case m.dialog != nil:
		b.WriteString(m.dialog.View())
	case m.picker != nil:
		b.WriteString(m.picker.View())
	default:
		b.WriteString(m.sectionView())
	}

	if len(m.toasts) > 0 {
		b.WriteString("\n")
		for _, t := range m.toasts {
			if t.IsError {
				b.WriteString(toastErrorStyle.Render("✗ " + t.Text))
			} else {
				b.WriteString(toastInfoStyle.Render("✓ " + t.Text))
			}
			b.WriteString("\n")
		}
	}

	if m.preview && m.dialog == nil && m.picker == nil {
		b.WriteString("\n")
		b.WriteString(m.previewView())
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.helpLine()))
	return b.String()
}

func (m *Model) sectionView() string {
	var b strings.Builder
	info := section.Registry[m.current]

	b.WriteString(wizardDimStyle.Render(info.Description))
	b.WriteString("\n\n")

	for i, f := range m.section().Fields() {
		cursor := " "
		if i == m.cursor {
			cursor = ">"
		}

		if m.editor != nil && i == m.cursor {
			b.WriteString(selectedStyle.Render(fmt.Sprintf("  %s %s: ", cursor, f.Label)))
			b.WriteString(m.editor.View())
			b.WriteString("\n")
			continue
		}

		value, _ := m.section().Value(f.Name)
		label := fmt.Sprintf("  %s %s: ", cursor, f.Label)
		if i == m.cursor {
			label = selectedStyle.Render(label)
		}
		b.WriteString(label)
		b.WriteString(wizardValueStyle.Render(displayValue(f, value)))
		b.WriteString("\n")
		if i == m.cursor && f.Help != "" {
			b.WriteString(wizardDimStyle.Render("      " + f.Help))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func displayValue(f section.Field, value string) string {
	switch {
	case f.Name == "password" && value != "":
		return strings.Repeat("•", len(value))
	case value == "":
		return "(not set)"
	case f.Kind == section.KindChoice:
		return value + " ▾"
	}
	return value
}

func (m *Model) previewView() string {
	data, err := m.render()
	if err != nil {
		return toastErrorStyle.Render(err.Error())
	}
	if !m.opts.Highlight {
		return string(data)
	}
	var b strings.Builder
	if err := output.Highlight(&b, data, m.opts.Format, m.opts.Style); err != nil {
		return string(data)
	}
	return b.String()
}

func (m *Model) progressBar() string {
	var parts []string
	for i, info := range section.Registry {
		label := fmt.Sprintf("%d. %s", i+1, info.Title)
		if i == m.current {
			parts = append(parts, wizardActiveStepStyle.Render(label))
		} else {
			parts = append(parts, wizardStepStyle.Render(label))
		}
	}
	return strings.Join(parts, wizardDimStyle.Render(" > "))
}

func (m *Model) helpLine() string {
	switch {
	case m.dialog != nil:
		return "[y] " + m.dialog.confirmText() + "  [n] " + m.dialog.cancelText()
	case m.picker != nil:
		return "[enter] Apply preset  [esc] Back"
	case m.editor != nil:
		return "[enter] Save  [esc] Cancel"
	}
	help := "[tab] Next section  [enter] Edit  [p] Preview  [w] Write  [q] Quit"
	if _, ok := m.section().(section.ListEditor); ok {
		help = "[a] Add server  [x] Remove server  [P] Preset  " + help
	}
	return help
}

// Run runs the interactive wizard until the user quits.
func Run(opts Options) (Result, error) {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return m.Result(), err
	}
	return m.Result(), nil
}
