package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// neutral stands in for colors without a fixed RGB value, such as ANSI
// palette indexes.
var neutral = colorful.Color{R: 0.5, G: 0.5, B: 0.5}

// Ramp is a two-stop color gradient, blended in HCL space.
type Ramp struct {
	from, to colorful.Color
}

// NewRamp returns the gradient from one color to another.
func NewRamp(from, to lipgloss.Color) Ramp {
	return Ramp{from: toColorful(from), to: toColorful(to)}
}

// ThemeRamp runs from the theme's primary to its secondary color.
func ThemeRamp() Ramp {
	t := T()
	return NewRamp(t.Primary, t.Secondary)
}

// At returns the color at position t in [0, 1].
func (r Ramp) At(t float64) lipgloss.Color {
	t = min(max(t, 0), 1)
	return lipgloss.Color(r.from.BlendHcl(r.to, t).Clamped().Hex())
}

// Step returns the color of the i-th of n evenly spaced stops.
func (r Ramp) Step(i, n int) lipgloss.Color {
	if n < 2 {
		return r.At(0)
	}
	return r.At(float64(i) / float64(n-1))
}

// Render shades text grapheme by grapheme along the ramp.
func (r Ramp) Render(text string, bold bool) string {
	clusters := graphemes(text)
	var b strings.Builder
	for i, cluster := range clusters {
		style := lipgloss.NewStyle().Foreground(r.Step(i, len(clusters))).Bold(bold)
		b.WriteString(style.Render(cluster))
	}
	return b.String()
}

// Banner renders the application title in bold along the theme ramp.
func Banner(text string) string {
	return ThemeRamp().Render(text, true)
}

// FamilyColor gives each of n families its own color on the theme ramp,
// so a family keeps the same color on both screens.
func FamilyColor(i, n int) lipgloss.Color {
	return ThemeRamp().Step(i, n)
}

// graphemes splits text into user-perceived characters so accented
// names such as "Hygiène" get one color per letter.
func graphemes(text string) []string {
	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}
	return clusters
}

func toColorful(c lipgloss.Color) colorful.Color {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return neutral
	}
	return col
}
