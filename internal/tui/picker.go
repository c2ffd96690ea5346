package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/anyshake/prisma/internal/section"
)

// presetItem implements list.Item for NTP preset display
type presetItem struct {
	preset section.Preset
}

func (i presetItem) Title() string {
	return i.preset.Name
}

func (i presetItem) Description() string {
	hosts := make([]string, len(i.preset.Servers))
	for j, s := range i.preset.Servers {
		hosts[j] = s.Address
	}
	return fmt.Sprintf("%s | %s", i.preset.Description, truncate(strings.Join(hosts, ", "), 48))
}

func (i presetItem) FilterValue() string {
	return i.preset.Name
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)
)

// presetPicker lists the NTP presets.
type presetPicker struct {
	list list.Model
}

func newPresetPicker(width, height int) *presetPicker {
	items := make([]list.Item, len(section.Presets))
	for i, p := range section.Presets {
		items[i] = presetItem{preset: p}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	l := list.New(items, delegate, 72, 16)
	l.Title = "NTP server presets"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Styles.Title = titleStyle

	p := &presetPicker{list: l}
	p.setSize(width, height)
	return p
}

func (p *presetPicker) setSize(width, height int) {
	if width > 0 {
		p.list.SetWidth(width - 4)
	}
	if height > 0 {
		p.list.SetHeight(height - 10)
	}
}

// Update processes a message and returns (done, preset, cmd).
// done=true with a nil preset means the picker was dismissed.
func (p *presetPicker) Update(msg tea.Msg) (bool, *section.Preset, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			if item, ok := p.list.SelectedItem().(presetItem); ok {
				preset := item.preset
				return true, &preset, nil
			}
			return false, nil, nil
		case "q", "esc":
			return true, nil, nil
		}
	}

	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return false, nil, cmd
}

func (p *presetPicker) View() string {
	return p.list.View()
}
