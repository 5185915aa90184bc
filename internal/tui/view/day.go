package view

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// DayRow is one task line of the day detail modal.
type DayRow struct {
	Status   string // Status symbol
	Title    string
	Meta     string // Range, priority and status words
	Selected bool
	Done     bool
}

// DayModel is everything the day detail body shows.
type DayModel struct {
	Rows      []DayRow
	Width     int    // Content width
	Input     string // Rendered title input, empty when not adding
	Priority  string // Priority of the task being added
	EmptyText string
}

// RenderDayBody renders the task list of a day, and the add form below it.
func RenderDayBody(m DayModel, styles ModalStyles) string {
	var lines []string

	if len(m.Rows) == 0 {
		lines = append(lines, styles.ModalMetaStyle.Render(m.EmptyText))
	}
	for _, row := range m.Rows {
		title := ansi.Truncate(row.Title, max(8, m.Width-4), "…")
		line := row.Status + " " + title
		style := styles.ModalBodyStyle
		if row.Done {
			style = styles.ModalMetaStyle
		}
		if row.Selected {
			style = styles.ModalSelectedStyle
		}
		lines = append(lines, style.Render(line))
		if row.Meta != "" {
			lines = append(lines, styles.ModalMetaStyle.Render("  "+row.Meta))
		}
	}

	if m.Input != "" {
		lines = append(lines, "",
			styles.ModalSectionStyle.Render("New task"),
			m.Input,
			styles.ModalMetaStyle.Render("priority: "+m.Priority),
		)
	}

	return strings.Join(lines, "\n")
}
