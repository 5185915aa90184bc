package theme

import (
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		themeName string
		wantName  string
	}{
		{name: "load mocha theme", themeName: "mocha", wantName: "mocha"},
		{name: "load macchiato theme", themeName: "macchiato", wantName: "macchiato"},
		{name: "load frappe theme", themeName: "frappe", wantName: "frappe"},
		{name: "load latte theme", themeName: "latte", wantName: "latte"},
		{name: "load light theme", themeName: "light", wantName: "light"},
		{name: "case and space insensitive", themeName: " Latte ", wantName: "latte"},
		{name: "empty name defaults to mocha", themeName: "", wantName: "mocha"},
		{name: "invalid theme falls back to mocha", themeName: "nonexistent", wantName: "mocha"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theme, err := Load(tt.themeName)
			if err != nil {
				t.Fatalf("Load(%q) unexpected error: %v", tt.themeName, err)
			}
			if theme.Name != tt.wantName {
				t.Errorf("Load(%q).Name = %q, want %q", tt.themeName, theme.Name, tt.wantName)
			}
		})
	}
}

func TestLoad_ThemeColors(t *testing.T) {
	for _, name := range Available() {
		t.Run(name, func(t *testing.T) {
			theme := MustLoad(name)

			// Every color must be a 7-char hex string once defaults apply.
			colors := map[string]string{
				"Bg":          theme.Bg,
				"BgHighlight": theme.BgHighlight,
				"BgSelection": theme.BgSelection,
				"Fg":          theme.Fg,
				"FgMuted":     theme.FgMuted,
				"Accent":      theme.Accent,
				"High":        theme.High,
				"Medium":      theme.Medium,
				"Low":         theme.Low,
				"Today":       theme.Today,
				"Overflow":    theme.Overflow,
				"BaseBg":      theme.BaseBg,
				"ModalBorder": theme.ModalBorder,
				"TextPrimary": theme.TextPrimary,
				"TextMuted":   theme.TextMuted,
				"Highlight":   theme.Highlight,
			}

			for field, hex := range colors {
				if _, _, _, ok := parseHexColor(hex); !ok {
					t.Errorf("theme.%s = %q, want #rrggbb", field, hex)
				}
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	theme := &Theme{
		Bg:          "#000000",
		BgHighlight: "#111111",
		BgSelection: "#222222",
		Fg:          "#eeeeee",
		FgMuted:     "#999999",
		Accent:      "#0000ff",
		Medium:      "#ffff00",
	}
	theme.applyDefaults()

	if theme.BaseBg != "#111111" {
		t.Errorf("BaseBg = %q, want bg_highlight", theme.BaseBg)
	}
	if theme.Highlight != "#222222" {
		t.Errorf("Highlight = %q, want bg_selection", theme.Highlight)
	}
	if theme.Today != "#0000ff" {
		t.Errorf("Today = %q, want accent", theme.Today)
	}
	if theme.Overflow != "#ffff00" {
		t.Errorf("Overflow = %q, want medium", theme.Overflow)
	}
}

func TestAvailable(t *testing.T) {
	available := Available()

	expected := []string{"mocha", "macchiato", "frappe", "latte", "light"}
	if len(available) != len(expected) {
		t.Fatalf("Available() returned %d themes, want %d", len(available), len(expected))
	}
	for i, want := range expected {
		if available[i] != want {
			t.Errorf("Available()[%d] = %q, want %q", i, available[i], want)
		}
	}
}

func TestIsAvailable(t *testing.T) {
	tests := []struct {
		name     string
		theme    string
		expected bool
	}{
		{name: "exact match", theme: "mocha", expected: true},
		{name: "case insensitive", theme: "Mocha", expected: true},
		{name: "missing theme", theme: "unknown", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAvailable(tt.theme); got != tt.expected {
				t.Errorf("IsAvailable(%q) = %t, want %t", tt.theme, got, tt.expected)
			}
		})
	}
}

func TestColor(t *testing.T) {
	hex := "#89b4fa"
	if c := Color(hex); string(c) != hex {
		t.Errorf("Color(%q) = %q, want %q", hex, string(c), hex)
	}
}
