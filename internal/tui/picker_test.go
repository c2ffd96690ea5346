package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/anyshake/prisma/internal/endpoint"
	"github.com/anyshake/prisma/internal/section"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		s      string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"time1.google.com, time2.google.com", 20, "time1.google.com,..."},
		{"", 10, ""},
	}

	for _, tt := range tests {
		t.Run(tt.s, func(t *testing.T) {
			if got := truncate(tt.s, tt.maxLen); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.s, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestPresetItemMethods(t *testing.T) {
	item := presetItem{preset: section.Preset{
		Name:        "nict",
		Description: "NICT, Japan",
		Servers: []endpoint.Server{
			{Address: "ntp-a2.nict.go.jp", Port: "123"},
			{Address: "ntp-b2.nict.go.jp", Port: "123"},
		},
	}}

	if got := item.Title(); got != "nict" {
		t.Errorf("Title() = %q", got)
	}
	if got := item.FilterValue(); got != "nict" {
		t.Errorf("FilterValue() = %q", got)
	}
	desc := item.Description()
	if !strings.Contains(desc, "NICT, Japan") || !strings.Contains(desc, "ntp-b2.nict.go.jp") {
		t.Errorf("Description() = %q", desc)
	}
}

func TestPresetPicker(t *testing.T) {
	t.Run("enter selects", func(t *testing.T) {
		p := newPresetPicker(0, 0)
		p.Update(tea.KeyMsg{Type: tea.KeyDown})

		done, preset, _ := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if !done || preset == nil {
			t.Fatalf("Update(enter) = %v, %v", done, preset)
		}
		if preset.Name != section.Presets[1].Name {
			t.Errorf("selected %q, want %q", preset.Name, section.Presets[1].Name)
		}
	})

	t.Run("esc dismisses", func(t *testing.T) {
		p := newPresetPicker(80, 24)
		done, preset, _ := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
		if !done || preset != nil {
			t.Errorf("Update(esc) = %v, %v", done, preset)
		}
	})

	t.Run("view lists presets", func(t *testing.T) {
		view := newPresetPicker(100, 40).View()
		for _, p := range section.Presets[:3] {
			if !strings.Contains(view, p.Name) {
				t.Errorf("view missing preset %q", p.Name)
			}
		}
	})
}

func TestConfirmDialog(t *testing.T) {
	tests := []struct {
		key           tea.KeyMsg
		wantDone      bool
		wantConfirmed bool
	}{
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}}, true, true},
		{tea.KeyMsg{Type: tea.KeyEnter}, true, true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}}, true, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, true, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			d := &confirmDialog{message: "Replace?"}
			done, confirmed := d.Update(tt.key)
			if done != tt.wantDone || confirmed != tt.wantConfirmed {
				t.Errorf("Update(%s) = %v, %v; want %v, %v", tt.key, done, confirmed, tt.wantDone, tt.wantConfirmed)
			}
		})
	}
}

func TestFieldEditor(t *testing.T) {
	e := newFieldEditor(section.Field{Name: "host", Kind: section.KindString}, "0.0.0.0")

	done, value, _ := e.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if done || value != nil {
		t.Fatal("typing should not finish editing")
	}

	done, value, _ = e.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !done || value == nil || *value != "0.0.0." {
		t.Errorf("Update(enter) = %v, %v", done, value)
	}

	pw := newFieldEditor(section.Field{Name: "password", Kind: section.KindString}, "secret")
	if strings.Contains(pw.View(), "secret") {
		t.Error("password editor should mask input")
	}
}
