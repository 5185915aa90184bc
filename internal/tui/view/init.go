package view

import "strings"

// InitModel describes what the first run will create.
type InitModel struct {
	ConfigPath    string
	DBPath        string
	ConfigMissing bool
	DBMissing     bool
	Error         string
}

// RenderInitBody renders the startup initialization prompt.
func RenderInitBody(m InitModel, styles ModalStyles) string {
	lines := []string{styles.ModalBodyStyle.Render("Rocinante needs to create:")}
	if m.ConfigMissing {
		lines = append(lines, styles.ModalMetaStyle.Render("  config   "+m.ConfigPath))
	}
	if m.DBMissing {
		lines = append(lines, styles.ModalMetaStyle.Render("  database "+m.DBPath))
	}
	if m.Error != "" {
		lines = append(lines, "", styles.ModalSelectedStyle.Render("Error: "+m.Error))
	}
	return strings.Join(lines, "\n")
}
