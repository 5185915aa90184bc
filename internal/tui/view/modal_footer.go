package view

// DayDetailFooter renders the footer for the day detail modal.
func DayDetailFooter(adding bool, styles ModalStyles) string {
	if adding {
		return RenderModalButtons(styles, "[Enter] Save", "[Tab] Priority", "[Esc] Cancel")
	}
	return RenderModalButtons(styles, "[n] New", "[x] Done", "[y] Copy", "[Esc] Close")
}

// ActivityFooter renders the footer for the activity modal.
func ActivityFooter(hasPrev, hasNext bool, styles ModalStyles) string {
	labels := make([]string, 0, 3)
	if hasNext {
		labels = append(labels, "[n] Older")
	}
	if hasPrev {
		labels = append(labels, "[p] Newer")
	}
	labels = append(labels, "[Esc] Close")
	return RenderModalButtons(styles, labels...)
}

// InitFooter renders the footer for the init modal.
func InitFooter(styles ModalStyles) string {
	return RenderModalButtons(styles, "[Enter] Allow", "[Esc] Quit")
}
