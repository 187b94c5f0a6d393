package widgets

import (
	"fmt"
	"strings"
)

// ParamRow is one adjustable parameter line
type ParamRow struct {
	Label string
	Value string
	Down  string
	Up    string
}

// RenderParams formats rows as "Label  value  [down/up]" with aligned columns.
func RenderParams(rows []ParamRow) string {
	if len(rows) == 0 {
		return "  (no parameters)"
	}

	labelW, valueW := 0, 0
	for _, r := range rows {
		labelW = max(labelW, len(r.Label))
		valueW = max(valueW, len(r.Value))
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		keys := ""
		if r.Down != "" || r.Up != "" {
			keys = fmt.Sprintf("  [%s/%s]", r.Down, r.Up)
		}
		lines = append(lines, fmt.Sprintf("  %-*s  %*s%s", labelW, r.Label, valueW, r.Value, keys))
	}
	return strings.Join(lines, "\n")
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// RenderKeyLine formats bindings on a single line: "key:desc  key:desc"
func RenderKeyLine(keys []KeyBinding) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k.Key + ":" + k.Desc
	}
	return strings.Join(parts, "  ")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}
