package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/rocinante/internal/task"
	"github.com/javiermolinar/rocinante/internal/tui/theme"
	"github.com/javiermolinar/rocinante/internal/tui/view"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	colorBg     lipgloss.Color
	colorFg     lipgloss.Color
	colorMuted  lipgloss.Color
	colorAccent lipgloss.Color

	// Header
	TitleStyle   lipgloss.Style
	ProjectStyle lipgloss.Style
	WeekdayStyle lipgloss.Style

	// Day numbers
	DayNumStyle      lipgloss.Style
	DayNumTodayStyle lipgloss.Style
	DayNumOtherStyle lipgloss.Style // Padding days of adjacent months
	CursorStyle      lipgloss.Style

	// Cell content
	EmptyCellStyle lipgloss.Style
	OverflowStyle  lipgloss.Style
	SeparatorStyle lipgloss.Style

	// Footer
	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style
	HelpStyle   lipgloss.Style

	// App container
	AppStyle lipgloss.Style

	// Modal styles
	ModalStyle             lipgloss.Style
	ModalBackdropColor     lipgloss.Color
	ModalHeaderStyle       lipgloss.Style
	ModalFooterStyle       lipgloss.Style
	ModalTitleStyle        lipgloss.Style
	ModalBodyStyle         lipgloss.Style
	ModalMetaStyle         lipgloss.Style
	ModalSectionStyle      lipgloss.Style
	ModalSelectedStyle     lipgloss.Style
	ModalInputTextStyle    lipgloss.Style
	ModalPlaceholderStyle  lipgloss.Style
	ModalButtonStyle       lipgloss.Style
	ModalButtonActiveStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	s := &Styles{
		palette:     p,
		colorBg:     p.Bg,
		colorFg:     p.Fg,
		colorMuted:  p.FgMuted,
		colorAccent: p.Accent,
	}

	base := lipgloss.NewStyle().Background(p.Bg)

	s.TitleStyle = base.Bold(true).Foreground(p.Accent)
	s.ProjectStyle = base.Foreground(p.FgMuted)
	s.WeekdayStyle = base.Bold(true).Foreground(p.Fg)

	s.DayNumStyle = base.Foreground(p.Fg)
	s.DayNumTodayStyle = base.Bold(true).Underline(true).Foreground(p.Today)
	s.DayNumOtherStyle = base.Foreground(p.FgMuted).Faint(true)
	s.CursorStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Fg).Background(p.BgSelection)

	s.EmptyCellStyle = base
	s.OverflowStyle = base.Italic(true).Foreground(p.Overflow)
	s.SeparatorStyle = base.Foreground(p.BgSelection)

	s.StatusStyle = base.Foreground(p.Accent)
	s.ErrorStyle = base.Bold(true).Foreground(p.Overflow)
	s.HelpStyle = base.Foreground(p.FgMuted)

	s.AppStyle = base.Foreground(p.Fg).Padding(0, 1)

	// Modal
	modalBg := p.Modal.Bg
	modalText := lipgloss.NewStyle().Background(modalBg)
	s.ModalBackdropColor = p.Modal.Backdrop
	s.ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Modal.Border).
		BorderBackground(modalBg).
		Background(modalBg).
		Foreground(p.Modal.Text).
		Padding(1, 2)
	s.ModalHeaderStyle = modalText
	s.ModalTitleStyle = modalText.Bold(true).Foreground(p.Modal.Border)
	s.ModalFooterStyle = modalText.Foreground(p.Modal.Muted)
	s.ModalBodyStyle = modalText.Foreground(p.Modal.Text)
	s.ModalMetaStyle = modalText.Foreground(p.Modal.Muted)
	s.ModalSectionStyle = modalText.Bold(true).Foreground(p.Accent)
	s.ModalSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(p.TextOnAccent).Background(p.Accent)
	s.ModalInputTextStyle = modalText.Foreground(p.Modal.Text)
	s.ModalPlaceholderStyle = modalText.Foreground(p.Modal.Muted)
	s.ModalButtonStyle = modalText.Foreground(p.Modal.Muted)
	s.ModalButtonActiveStyle = modalText.Bold(true).Foreground(p.Modal.Highlight)

	return s
}

// Bar returns the style of a task bar: priority colors, muted when done.
func (s *Styles) Bar(t *task.Task) lipgloss.Style {
	bg, fg := s.palette.BarColors(t)
	style := lipgloss.NewStyle().Background(bg).Foreground(fg)
	if t.IsDone() {
		return style.Strikethrough(true)
	}
	return style
}

// Continuation returns the style of lanes under a bar drawn elsewhere.
func (s *Styles) Continuation(t *task.Task) lipgloss.Style {
	bg, _ := s.palette.BarColors(t)
	return lipgloss.NewStyle().Background(bg)
}

func (s *Styles) modalStyles() view.ModalStyles {
	return view.ModalStyles{
		ModalHeaderStyle:       s.ModalHeaderStyle,
		ModalTitleStyle:        s.ModalTitleStyle,
		ModalFooterStyle:       s.ModalFooterStyle,
		ModalStyle:             s.ModalStyle,
		ModalButtonStyle:       s.ModalButtonStyle,
		ModalButtonActiveStyle: s.ModalButtonActiveStyle,
		ModalBodyStyle:         s.ModalBodyStyle,
		ModalMetaStyle:         s.ModalMetaStyle,
		ModalSectionStyle:      s.ModalSectionStyle,
		ModalSelectedStyle:     s.ModalSelectedStyle,
	}
}
