package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// OverlayModel splices a modal box over the month grid.
type OverlayModel struct {
	active  bool
	bgColor lipgloss.Color
}

// NewOverlayModel initializes an overlay model.
func NewOverlayModel() OverlayModel {
	return OverlayModel{}
}

// SetActive shows or hides the overlay.
func (o *OverlayModel) SetActive(active bool) {
	o.active = active
}

// Active reports whether the overlay is visible.
func (o OverlayModel) Active() bool {
	return o.active
}

// SetBackground updates the color filling reset gaps inside the modal.
func (o *OverlayModel) SetBackground(color lipgloss.Color) {
	o.bgColor = color
}

// Render centers content over base, which is normalized to width x height.
func (o OverlayModel) Render(base string, width, height int, content string) string {
	if !o.active || width <= 0 || height <= 0 || content == "" {
		return base
	}

	boxLines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	boxW := 0
	for _, line := range boxLines {
		boxW = max(boxW, lipgloss.Width(line))
	}
	boxW = min(boxW, width)
	if len(boxLines) > height {
		boxLines = boxLines[:height]
	}

	top := max(0, (height-len(boxLines))/2)
	left := max(0, (width-boxW)/2)
	bgSeq := o.backgroundSeq()

	lines := o.normalizeBase(base, width, height)
	for i, boxLine := range boxLines {
		if n := lipgloss.Width(boxLine); n > boxW {
			boxLine = ansi.Cut(boxLine, 0, boxW)
		} else if n < boxW {
			boxLine += strings.Repeat(" ", boxW-n)
		}
		if bgSeq != "" {
			boxLine = bgSeq + strings.ReplaceAll(boxLine, ansi.ResetStyle, ansi.ResetStyle+bgSeq) + ansi.ResetStyle
		}

		row := top + i
		lines[row] = ansi.Cut(lines[row], 0, left) + boxLine + ansi.Cut(lines[row], left+boxW, width)
	}
	return strings.Join(lines, "\n")
}

func (o OverlayModel) backgroundSeq() string {
	if o.bgColor == "" {
		return ""
	}
	return ansi.Style{}.BackgroundColor(ansi.HexColor(string(o.bgColor))).String()
}

// normalizeBase pads or cuts base to exactly height lines of width cells.
func (o OverlayModel) normalizeBase(base string, width, height int) []string {
	lines := strings.Split(base, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	lines = lines[:height]

	for i, line := range lines {
		n := lipgloss.Width(line)
		switch {
		case n > width:
			lines[i] = ansi.Cut(line, 0, width)
		case n < width:
			lines[i] = line + strings.Repeat(" ", width-n)
		}
	}
	return lines
}
