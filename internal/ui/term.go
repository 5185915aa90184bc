package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/javiermolinar/rocinante/internal/task"
)

// Color definitions for consistent styling across the UI.
var (
	// Priorities: red, yellow and blue from most to least urgent
	colorHigh   = color.New(color.FgRed, color.Bold)
	colorMedium = color.New(color.FgYellow)
	colorLow    = color.New(color.FgBlue)

	// Tasks without a priority
	colorPlain = color.New(color.FgWhite)

	// Today's day number
	colorToday = color.New(color.FgCyan, color.Bold, color.Underline)

	// "+N more"
	colorOverflow = color.New(color.FgMagenta)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Muted: for secondary information and done tasks
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

// painter applies colors, or nothing when plain output is wanted
// (clipboard copies, tests).
type painter struct {
	plain bool
}

func (p painter) paint(c *color.Color, s string) string {
	if p.plain || s == "" {
		return s
	}
	return c.Sprint(s)
}

// taskColor picks the color of a task label.
func taskColor(t *task.Task) *color.Color {
	if t.IsDone() {
		return colorMuted
	}
	switch t.Priority {
	case task.PriorityHigh:
		return colorHigh
	case task.PriorityMedium:
		return colorMedium
	case task.PriorityLow:
		return colorLow
	default:
		return colorPlain
	}
}

func (p painter) header(s string) string {
	return p.paint(colorHeader, s)
}

func (p painter) muted(s string) string {
	return p.paint(colorMuted, s)
}

func (p painter) task(t *task.Task, s string) string {
	return p.paint(taskColor(t), s)
}
