package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Sample picks n evenly spaced colours. Shorter inputs are returned as is.
func Sample(colours []colorful.Color, n int) []colorful.Color {
	if n <= 0 || len(colours) <= n {
		return colours
	}
	out := make([]colorful.Color, n)
	step := float64(len(colours)) / float64(n)
	for i := range out {
		out[i] = colours[int(float64(i)*step)]
	}
	return out
}

// RenderSwatch renders one coloured cell
func RenderSwatch(c colorful.Color, symbol rune) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Clamped().Hex()))
	return style.Render(string(symbol))
}

// RenderStrip renders colours in rows of at most width cells, at most rows
// rows. Pixels beyond width*rows are sampled down to fit.
func RenderStrip(colours []colorful.Color, width, rows int, symbol rune) string {
	if width <= 0 || rows <= 0 || len(colours) == 0 {
		return ""
	}
	colours = Sample(colours, width*rows)

	var lines []string
	for start := 0; start < len(colours); start += width {
		end := min(start+width, len(colours))
		var line strings.Builder
		for _, c := range colours[start:end] {
			line.WriteString(RenderSwatch(c, symbol))
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}
