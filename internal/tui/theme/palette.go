package theme

import (
	"math"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/rocinante/internal/task"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Today       lipgloss.Color
	Overflow    lipgloss.Color

	// Bar backgrounds per priority, plus one for done tasks.
	HighBg   lipgloss.Color
	MediumBg lipgloss.Color
	LowBg    lipgloss.Color
	NoneBg   lipgloss.Color
	DoneBg   lipgloss.Color

	TextOnAccent lipgloss.Color
	TextOnHigh   lipgloss.Color
	TextOnMedium lipgloss.Color
	TextOnLow    lipgloss.Color
	TextOnNone   lipgloss.Color

	Modal ModalColors
}

// ModalColors holds modal-specific colors derived from a Theme.
type ModalColors struct {
	Bg        lipgloss.Color
	Border    lipgloss.AdaptiveColor
	Text      lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Backdrop  lipgloss.Color
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t = MustLoad(DefaultName)
	}

	light := isLightTheme(t.Bg)
	highBg := barBg(t.High, t.Bg, light)
	mediumBg := barBg(t.Medium, t.Bg, light)
	lowBg := barBg(t.Low, t.Bg, light)
	noneBg := barBg(t.Accent, t.Bg, light)
	doneBg := mutedBg(t.FgMuted, t.Bg, light)

	modalBg := coalesce(t.BaseBg, t.BgHighlight, t.Bg)

	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Today:       lipgloss.Color(t.Today),
		Overflow:    lipgloss.Color(t.Overflow),

		HighBg:   lipgloss.Color(highBg),
		MediumBg: lipgloss.Color(mediumBg),
		LowBg:    lipgloss.Color(lowBg),
		NoneBg:   lipgloss.Color(noneBg),
		DoneBg:   lipgloss.Color(doneBg),

		TextOnAccent: lipgloss.Color(chooseTextColor(t.Accent, t.Bg, t.Fg)),
		TextOnHigh:   lipgloss.Color(chooseTextColor(highBg, t.Bg, t.Fg)),
		TextOnMedium: lipgloss.Color(chooseTextColor(mediumBg, t.Bg, t.Fg)),
		TextOnLow:    lipgloss.Color(chooseTextColor(lowBg, t.Bg, t.Fg)),
		TextOnNone:   lipgloss.Color(chooseTextColor(noneBg, t.Bg, t.Fg)),

		Modal: ModalColors{
			Bg:        lipgloss.Color(modalBg),
			Border:    adaptiveColor(t.ModalBorder),
			Text:      adaptiveColor(t.TextPrimary),
			Muted:     adaptiveColor(t.TextMuted),
			Highlight: adaptiveColor(t.Highlight),
			Backdrop:  lipgloss.Color(coalesce(t.BgSelection, t.BgHighlight, t.Bg)),
		},
	}
}

// BarColors returns the background and text color of a task bar.
func (p *Palette) BarColors(t *task.Task) (bg, fg lipgloss.Color) {
	if t.IsDone() {
		return p.DoneBg, p.FgMuted
	}
	switch t.Priority {
	case task.PriorityHigh:
		return p.HighBg, p.TextOnHigh
	case task.PriorityMedium:
		return p.MediumBg, p.TextOnMedium
	case task.PriorityLow:
		return p.LowBg, p.TextOnLow
	default:
		return p.NoneBg, p.TextOnNone
	}
}

func isLightTheme(bg string) bool {
	return relativeLuminance(bg) > 0.55
}

// barBg softens an accent so labels stay readable on top of it.
func barBg(accent, bg string, light bool) string {
	if light {
		return blendColors(accent, bg, 0.70)
	}
	return scaleColor(accent, 0.50, 40)
}

func mutedBg(accent, bg string, light bool) string {
	if light {
		return blendColors(accent, bg, 0.85)
	}
	return scaleColor(accent, 0.30, 30)
}

// scaleColor multiplies each channel by factor, keeping it above floor.
func scaleColor(hex string, factor float64, floor int) string {
	r, g, b, ok := parseHexColor(hex)
	if !ok {
		return hex
	}
	scale := func(c int) int {
		return max(floor, int(float64(c)*factor))
	}
	return formatHexColor(scale(r), scale(g), scale(b))
}

func blendColors(a, b string, ratio float64) string {
	ar, ag, ab, okA := parseHexColor(a)
	br, bg, bb, okB := parseHexColor(b)
	if !okA || !okB {
		return a
	}
	ratio = math.Max(0, math.Min(1, ratio))
	mix := func(x, y int) int {
		return int(float64(x)*(1-ratio) + float64(y)*ratio)
	}
	return formatHexColor(mix(ar, br), mix(ag, bg), mix(ab, bb))
}

// parseHexColor splits "#rrggbb" into channels.
func parseHexColor(hex string) (r, g, b int, ok bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, false
	}
	var vals [3]int
	for i := range vals {
		for _, c := range []byte(hex[1+2*i : 3+2*i]) {
			vals[i] *= 16
			switch {
			case c >= '0' && c <= '9':
				vals[i] += int(c - '0')
			case c >= 'a' && c <= 'f':
				vals[i] += int(c-'a') + 10
			case c >= 'A' && c <= 'F':
				vals[i] += int(c-'A') + 10
			default:
				return 0, 0, 0, false
			}
		}
	}
	return vals[0], vals[1], vals[2], true
}

func formatHexColor(r, g, b int) string {
	const digits = "0123456789abcdef"
	out := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, c := range []int{r, g, b} {
		c = max(0, min(255, c))
		out[1+2*i] = digits[c>>4]
		out[2+2*i] = digits[c&0xf]
	}
	return string(out)
}

func adaptiveColor(hex string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: hex, Light: hex}
}

func chooseTextColor(bg, lightText, darkText string) string {
	if contrastRatio(bg, lightText) >= contrastRatio(bg, darkText) {
		return lightText
	}
	return darkText
}

func contrastRatio(a, b string) float64 {
	l1, l2 := relativeLuminance(a), relativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func relativeLuminance(hex string) float64 {
	r, g, b, ok := parseHexColor(hex)
	if !ok {
		return 0
	}
	return 0.2126*srgbToLinear(r) + 0.7152*srgbToLinear(g) + 0.0722*srgbToLinear(b)
}

func srgbToLinear(c int) float64 {
	v := float64(c) / 255.0
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}
