package theme

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	Swatch  rune // █ one pixel in the strip
	On      rune // ● transmit enabled
	Off     rune // ○ transmit paused
	Warning rune // ! invalid settings
}

func New(palette *Palette) *Theme {
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			Swatch:  '█',
			On:      '●',
			Off:     '○',
			Warning: '!',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0
	RoleMuted   = 0.25
	RoleFG      = 0.45
	RoleAccent  = 0.55
	RoleActive  = 0.7
	RoleWarning = 0.8
	RoleSuccess = 1.0
)

func (t *Theme) BG() lipgloss.Color      { return t.Color(RoleBG) }
func (t *Theme) FG() lipgloss.Color      { return t.Color(RoleFG) }
func (t *Theme) Accent() lipgloss.Color  { return t.Color(RoleAccent) }
func (t *Theme) Muted() lipgloss.Color   { return t.Color(RoleMuted) }
func (t *Theme) Active() lipgloss.Color  { return t.Color(RoleActive) }
func (t *Theme) Warning() lipgloss.Color { return t.Color(RoleWarning) }
func (t *Theme) Success() lipgloss.Color { return t.Color(RoleSuccess) }

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return Lipgloss(t.Palette.Lookup(norm))
}

// Lipgloss converts a colour to a terminal colour.
func Lipgloss(c colorful.Color) lipgloss.Color {
	return lipgloss.Color(c.Clamped().Hex())
}
