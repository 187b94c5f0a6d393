package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"go-ledfield/animation"
	"go-ledfield/debug"
	"go-ledfield/led"
	"go-ledfield/theme"
	"go-ledfield/widgets"
)

// RefreshInterval is how often the view re-reads controller state
const RefreshInterval = 100 * time.Millisecond

const (
	brightnessStep = 0.05
	stripRows      = 4
)

var helpKeys = []widgets.KeyBinding{
	{Key: "←/→", Desc: "effect"},
	{Key: "+/-", Desc: "brightness"},
	{Key: "t", Desc: "transmit"},
	{Key: "r", Desc: "reset"},
	{Key: "w", Desc: "save"},
	{Key: "?", Desc: "help"},
	{Key: "q", Desc: "quit"},
}

var globalKeys = widgets.KeySection{
	Title: "Controls",
	Keys: []widgets.KeyBinding{
		{Key: "← / →", Desc: "previous / next effect"},
		{Key: "+ / -", Desc: "brightness up / down"},
		{Key: "t", Desc: "toggle transmit"},
		{Key: "r", Desc: "reset effect to defaults"},
		{Key: "w", Desc: "write settings"},
		{Key: "?", Desc: "toggle this help"},
		{Key: "q", Desc: "quit"},
	},
}

type Model struct {
	Engine *animation.Engine
	Theme  *theme.Theme

	width      int
	showHelp   bool
	confirming bool
	quitting   bool
	status     string
	err        error

	lastFrames int64
	lastAt     time.Time
	fps        float64
}

type TickMsg time.Time

// FatalMsg carries an unrecoverable engine error
type FatalMsg struct{ Err error }

func NewModel(engine *animation.Engine, th *theme.Theme) Model {
	return Model{
		Engine: engine,
		Theme:  th,
		width:  80,
		lastAt: time.Now(),
	}
}

// Err is the fatal error that ended the program, if any.
func (m Model) Err() error {
	return m.err
}

func Tick() tea.Cmd {
	return tea.Tick(RefreshInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func ListenForFatal(engine *animation.Engine) tea.Cmd {
	return func() tea.Msg {
		return FatalMsg{Err: <-engine.Fatal()}
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(Tick(), ListenForFatal(m.Engine))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirming {
			return m.confirm(msg.String())
		}
		return m.handleKey(msg.String())

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case TickMsg:
		now := time.Time(msg)
		frames := m.Engine.Stats().Frames
		if dt := now.Sub(m.lastAt).Seconds(); dt > 0 {
			m.fps = float64(frames-m.lastFrames) / dt
		}
		m.lastFrames, m.lastAt = frames, now
		return m, Tick()

	case FatalMsg:
		m.err = msg.Err
		m.save()
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) confirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y":
		m.save()
		m.quitting = true
		return m, tea.Quit
	case "n", "N", "esc":
		m.confirming = false
	}
	return m, nil
}

func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	m.status = ""

	switch key {
	case "q", "ctrl+c":
		m.confirming = true

	case "?":
		m.showHelp = !m.showHelp

	case "left":
		m.Engine.Mutate(func(c *led.Controller) { c.CycleEffect(-1) })

	case "right":
		m.Engine.Mutate(func(c *led.Controller) { c.CycleEffect(1) })

	case "+", "=":
		m.Engine.Mutate(func(c *led.Controller) { c.AdjustBrightness(brightnessStep) })

	case "-", "_":
		m.Engine.Mutate(func(c *led.Controller) { c.AdjustBrightness(-brightnessStep) })

	case "t":
		if m.Engine.ToggleTransmit() {
			m.status = "transmit on"
		} else {
			m.status = "transmit paused"
		}

	case "r":
		m.Engine.Mutate(func(c *led.Controller) { c.ResetEffect() })
		m.status = "effect reset"

	case "w":
		if err := m.save(); err != nil {
			m.status = err.Error()
		} else {
			m.status = "settings saved"
		}

	default:
		m.Engine.Mutate(func(c *led.Controller) { c.HandleKey(key) })
	}

	return m, nil
}

func (m Model) save() error {
	var err error
	m.Engine.Mutate(func(c *led.Controller) { err = c.Save() })
	if err != nil {
		debug.Error("settings", err)
	}
	return err
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var snap led.Snapshot
	m.Engine.Read(func(c *led.Controller) { snap = c.Snapshot() })
	stats := m.Engine.Stats()

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent()).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	warnStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())
	promptStyle := lipgloss.NewStyle().
		Foreground(m.Theme.BG()).
		Background(m.Theme.Success()).
		Padding(0, 1)

	tx := fmt.Sprintf("%c tx", m.Theme.Symbols.Off)
	if stats.TransmitEnabled {
		tx = fmt.Sprintf("%c tx", m.Theme.Symbols.On)
	}
	header := headerStyle.Render(fmt.Sprintf("go-ledfield  %s  bright %.2f  %s  %5.1ffps  fail %d",
		snap.Effect, snap.Brightness, tx, m.fps, stats.Failures))

	colours := make([]colorful.Color, len(snap.Colours))
	for i, c := range snap.Colours {
		colours[i] = c.Colorful()
	}
	strip := widgets.RenderStrip(colours, max(m.width-2, 1), stripRows, m.Theme.Symbols.Swatch)

	rows := make([]widgets.ParamRow, len(snap.Params))
	for i, p := range snap.Params {
		rows[i] = widgets.ParamRow{Label: p.Label, Value: p.Value, Down: p.Down, Up: p.Up}
	}

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(strip)
	out.WriteString("\n\n")
	if m.showHelp {
		out.WriteString(widgets.RenderKeyHelp(helpSections(snap)))
	} else {
		out.WriteString(widgets.RenderParams(rows))
	}
	out.WriteString("\n\n")

	if snap.Invalid > 0 {
		out.WriteString(warnStyle.Render(fmt.Sprintf("%c %d invalid settings ignored, see debug log", m.Theme.Symbols.Warning, snap.Invalid)))
		out.WriteString("\n")
	}
	if m.status != "" {
		out.WriteString(dimStyle.Render(m.status))
		out.WriteString("\n")
	}

	if m.confirming {
		out.WriteString(promptStyle.Render("Save settings and quit? (y/n)"))
	} else {
		out.WriteString(dimStyle.Render(widgets.RenderKeyLine(helpKeys)))
	}

	return out.String()
}

// helpSections lists the global keys and the active effect's parameter keys.
func helpSections(snap led.Snapshot) []widgets.KeySection {
	effectKeys := widgets.KeySection{Title: snap.Effect.String()}
	for _, p := range snap.Params {
		effectKeys.Keys = append(effectKeys.Keys, widgets.KeyBinding{
			Key:  p.Down + " / " + p.Up,
			Desc: p.Label + " down / up",
		})
	}
	return []widgets.KeySection{globalKeys, effectKeys}
}
