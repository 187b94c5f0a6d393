package pixel

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go-ledfield/geom"
)

// Entry is one parsed layout record
type Entry struct {
	Index    int
	Position geom.Vec3
}

// Layout is the static list of pixel positions for a fixture.
type Layout struct {
	Entries []Entry
	Skipped int // malformed lines that were ignored
}

// IndexError is returned when a layout addresses a pixel the buffer does not have.
type IndexError struct {
	Index int
	Count int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("layout references pixel %d but only %d pixels are configured", e.Index, e.Count)
}

// LoadLayout reads a layout file from disk.
func LoadLayout(path string) (Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return Layout{}, err
	}
	defer f.Close()

	l, err := ParseLayout(f)
	if err != nil {
		return Layout{}, fmt.Errorf("layout %s: %w", path, err)
	}
	return l, nil
}

// ParseLayout reads records of the form "<index>: <x> <y> <z>".
// Blank lines are ignored; malformed lines are skipped and counted.
func ParseLayout(r io.Reader) (Layout, error) {
	var l Layout
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		e, ok := parseEntry(line)
		if !ok {
			l.Skipped++
			continue
		}
		l.Entries = append(l.Entries, e)
	}

	if err := scanner.Err(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

func parseEntry(line string) (Entry, bool) {
	idx, rest, found := strings.Cut(line, ":")
	if !found {
		return Entry{}, false
	}

	index, err := strconv.Atoi(strings.TrimSpace(idx))
	if err != nil || index < 0 {
		return Entry{}, false
	}

	fields := strings.Fields(rest)
	if len(fields) != 3 {
		return Entry{}, false
	}

	var xyz [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return Entry{}, false
		}
		xyz[i] = v
	}

	return Entry{Index: index, Position: geom.V(xyz[0], xyz[1], xyz[2])}, true
}

// Apply overwrites pixel positions by index. Any index outside the buffer is
// a configuration error and leaves the buffer untouched.
func (l Layout) Apply(pixels []Pixel) error {
	for _, e := range l.Entries {
		if e.Index >= len(pixels) {
			return &IndexError{Index: e.Index, Count: len(pixels)}
		}
	}
	for _, e := range l.Entries {
		pixels[e.Index].Position = e.Position
	}
	return nil
}

// Bounds returns the smallest box holding every entry.
func (l Layout) Bounds() geom.Box {
	if len(l.Entries) == 0 {
		return geom.Box{}
	}
	b := geom.Box{Min: l.Entries[0].Position, Max: l.Entries[0].Position}
	for _, e := range l.Entries[1:] {
		b = b.Extend(e.Position)
	}
	return b
}
