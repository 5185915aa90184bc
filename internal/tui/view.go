package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/rocinante/internal/tui/view"
)

// View renders the month grid with any open modal on top.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading calendar..."
	}

	base := m.renderAppContent()
	if m.mode != ModeModal || m.modalType == ModalNone {
		return base
	}
	m.overlay.SetActive(true)
	m.overlay.SetBackground(m.styles.palette.Modal.Bg)
	return m.overlay.Render(base, m.width, m.height, m.renderModal())
}

func (m Model) renderAppContent() string {
	innerW := m.width - 2
	if innerW < cellWidth(0)*7 || m.height < 4 {
		return "Terminal too small"
	}

	footer := m.renderFooter(innerW)
	bodyH := max(1, m.height-lipgloss.Height(footer))

	body := lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(innerW), m.renderGrid(innerW))
	body = view.PadLinesWithBackground(body, innerW, bodyH, m.styles.colorBg)

	app := m.styles.AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left, body, footer))
	return view.PadLinesWithBackground(app, m.width, m.height, m.styles.colorBg)
}

func (m Model) renderHeader(width int) string {
	title := m.styles.TitleStyle.Render(fmt.Sprintf("%s %d", m.month, m.year))
	project := m.styles.ProjectStyle.Render("  " + m.projectName)
	if m.loading {
		project += m.styles.ProjectStyle.Render("  loading...")
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Left, title+project,
		lipgloss.WithWhitespaceBackground(m.styles.colorBg))
}

func (m Model) renderFooter(width int) string {
	status := m.styles.HelpStyle.Render(m.cursor.Format("Mon Jan 2, 2006"))
	if m.statusMsg != "" {
		style := m.styles.StatusStyle
		if m.err != nil {
			style = m.styles.ErrorStyle
		}
		status = style.Render(m.statusMsg)
	}

	m.help.Width = width
	return lipgloss.JoinVertical(lipgloss.Left, status, m.help.View(m.keys))
}
