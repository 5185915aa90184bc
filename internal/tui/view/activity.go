package view

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// ActivityGroup is one day of the activity timeline.
type ActivityGroup struct {
	Label string
	Lines []ActivityLine
}

// ActivityLine is one entry of the activity timeline.
type ActivityLine struct {
	Time string
	Text string
}

// ActivityModel is everything the activity body shows.
type ActivityModel struct {
	Groups    []ActivityGroup
	PageLabel string
	Width     int
	Loading   bool
}

// RenderActivityBody renders an activity page as a timeline grouped by day.
func RenderActivityBody(m ActivityModel, styles ModalStyles) string {
	if m.Loading {
		return styles.ModalMetaStyle.Render("Loading...")
	}
	if len(m.Groups) == 0 {
		return styles.ModalMetaStyle.Render("No activity yet.")
	}

	var lines []string
	for i, g := range m.Groups {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, styles.ModalSectionStyle.Render(g.Label))
		for _, l := range g.Lines {
			text := ansi.Truncate(l.Text, max(8, m.Width-8), "…")
			lines = append(lines, styles.ModalMetaStyle.Render(l.Time)+"  "+styles.ModalBodyStyle.Render(text))
		}
	}
	if m.PageLabel != "" {
		lines = append(lines, "", styles.ModalMetaStyle.Render(m.PageLabel))
	}
	return strings.Join(lines, "\n")
}
