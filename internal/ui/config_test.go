package ui

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/javiermolinar/rocinante/internal/config"
)

func TestEditConfig_CreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	var out bytes.Buffer

	if err := editConfig(strings.NewReader("n\n"), &out, path); err != nil {
		t.Fatalf("editConfig failed: %v", err)
	}
	if !strings.Contains(out.String(), "Created "+path) {
		t.Errorf("expected a created notice, got:\n%s", out.String())
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Calendar.OverflowLimit != 3 {
		t.Errorf("expected default overflow limit, got %d", cfg.Calendar.OverflowLimit)
	}
}

func TestEditConfig_Edits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	dbPath := filepath.Join(t.TempDir(), "cal.db")

	answers := strings.Join([]string{
		"y",
		"four", "4", // invalid number, then a valid one
		"sunday",
		"work",
		dbPath,
		"",
		"",
		"",
		"",
		"neon", "latte", // unknown theme, then a known one
	}, "\n") + "\n"

	var out bytes.Buffer
	if err := editConfig(strings.NewReader(answers), &out, path); err != nil {
		t.Fatalf("editConfig failed: %v\n%s", err, out.String())
	}

	for _, want := range []string{`Invalid number "four"`, `Invalid theme "neon"`, "Configuration saved!"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected %q in output:\n%s", want, out.String())
		}
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Calendar.OverflowLimit != 4 || cfg.Calendar.WeekStart != "sunday" {
		t.Errorf("unexpected calendar section %+v", cfg.Calendar)
	}
	if cfg.Project.Default != "work" || cfg.Storage.DBPath != dbPath || cfg.UI.Theme != "latte" {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestEditConfig_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	answers := "y\n0\n\n\n\n\n\n\n\n\n"

	err := editConfig(strings.NewReader(answers), &bytes.Buffer{}, path)
	if err == nil || !strings.Contains(err.Error(), "invalid config") {
		t.Errorf("expected a validation error for overflow limit 0, got %v", err)
	}
}
