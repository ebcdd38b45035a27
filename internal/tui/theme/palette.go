package theme

import (
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// Palette holds lipgloss colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Ok          lipgloss.Color
	Warning     lipgloss.Color
	Error       lipgloss.Color

	// Border is the accent blended toward the background.
	Border lipgloss.Color

	TextOnAccent lipgloss.Color
	TextOnError  lipgloss.Color
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load(DefaultName)
	}

	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Ok:          lipgloss.Color(t.Ok),
		Warning:     lipgloss.Color(t.Warning),
		Error:       lipgloss.Color(t.Error),

		Border: lipgloss.Color(blendColors(t.Accent, t.Bg, borderBlend(t.Bg))),

		TextOnAccent: lipgloss.Color(chooseTextColor(t.Accent, t.Bg, t.Fg)),
		TextOnError:  lipgloss.Color(chooseTextColor(t.Error, t.Bg, t.Fg)),
	}
}

// IsLight reports whether the theme has a light background.
func (t *Theme) IsLight() bool {
	return relativeLuminance(t.Bg) > 0.55
}

func borderBlend(bg string) float64 {
	if relativeLuminance(bg) > 0.55 {
		return 0.25
	}
	return 0.40
}

// rgb splits a "#rrggbb" color. ok is false for anything else.
func rgb(hex string) (r, g, b int, ok bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}

func hexColor(r, g, b int) string {
	clamp := func(v int) int { return max(0, min(255, v)) }
	return "#" + hex2(clamp(r)) + hex2(clamp(g)) + hex2(clamp(b))
}

func hex2(v int) string {
	s := strconv.FormatInt(int64(v), 16)
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

func chooseTextColor(bg, lightText, darkText string) string {
	if contrastRatio(bg, lightText) >= contrastRatio(bg, darkText) {
		return lightText
	}
	return darkText
}

func contrastRatio(a, b string) float64 {
	l1 := relativeLuminance(a)
	l2 := relativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func relativeLuminance(hex string) float64 {
	r, g, b, ok := rgb(hex)
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

// blendColors mixes a toward b; ratio 0 is a, 1 is b.
func blendColors(a, b string, ratio float64) string {
	ar, ag, ab, okA := rgb(a)
	br, bg, bb, okB := rgb(b)
	if !okA || !okB {
		return a
	}
	ratio = max(0, min(1, ratio))
	mix := func(x, y int) int { return int(float64(x)*(1-ratio) + float64(y)*ratio) }
	return hexColor(mix(ar, br), mix(ag, bg), mix(ab, bb))
}
