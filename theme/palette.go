package theme

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

type Palette struct {
	Name   string
	Colors []colorful.Color
}

// defaultStops is a dusk gradient, dark blue through magenta to amber.
var defaultStops = []string{"#0d0887", "#5c01a6", "#9c179e", "#cc4778", "#ed7953", "#fdb42f", "#f0f921"}

// DefaultPalette is used when no palette file is configured
func DefaultPalette() *Palette {
	p := &Palette{Name: "Dusk"}
	for _, hex := range defaultStops {
		c, _ := colorful.Hex(hex)
		p.Colors = append(p.Colors, c)
	}
	return p
}

// LoadGPL reads a GIMP palette file
func LoadGPL(path string) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p := &Palette{}
	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if name, ok := strings.CutPrefix(line, "Name:"); ok {
			p.Name = strings.TrimSpace(name)
			continue
		}
		if line == "" || line[0] == '#' || strings.HasPrefix(line, "GIMP") || strings.HasPrefix(line, "Columns") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		var rgb [3]uint8
		ok := true
		for i := range rgb {
			v, err := strconv.ParseUint(fields[i], 10, 8)
			if err != nil {
				ok = false
				break
			}
			rgb[i] = uint8(v)
		}
		if ok {
			p.Colors = append(p.Colors, colorful.Color{
				R: float64(rgb[0]) / 255,
				G: float64(rgb[1]) / 255,
				B: float64(rgb[2]) / 255,
			})
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(p.Colors) == 0 {
		return nil, fmt.Errorf("no colors found in palette %s", path)
	}
	return p, nil
}

// LoadOrDefault loads path, falling back to the default palette when path
// is empty.
func LoadOrDefault(path string) (*Palette, error) {
	if path == "" {
		return DefaultPalette(), nil
	}
	return LoadGPL(path)
}

// Lookup returns the colour at norm (0-1), blended in Lab space between the
// two nearest palette entries.
func (p *Palette) Lookup(norm float64) colorful.Color {
	if norm <= 0 || len(p.Colors) == 1 {
		return p.Colors[0]
	}
	if norm >= 1 {
		return p.Colors[len(p.Colors)-1]
	}

	pos := norm * float64(len(p.Colors)-1)
	i := int(pos)
	return p.Colors[i].BlendLab(p.Colors[i+1], pos-float64(i)).Clamped()
}
