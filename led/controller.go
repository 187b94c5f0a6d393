package led

import (
	"errors"
	"fmt"
	"math"

	"go-ledfield/color"
	"go-ledfield/debug"
	"go-ledfield/effect"
	"go-ledfield/pixel"
	"go-ledfield/settings"
)

// DefaultBrightness is used when no brightness has been persisted
const DefaultBrightness = 1.0

// BytesPerPixel is the frame encoding width (R, G, B)
const BytesPerPixel = 3

// Options configures a Controller
type Options struct {
	Env      effect.Env
	Settings settings.Source // may be nil
}

// Controller owns the pixel buffer, the active effect and the global
// brightness. It does no locking of its own; the animation engine guards it.
type Controller struct {
	pixels     []pixel.Pixel
	effect     effect.Effect
	brightness float64

	env      effect.Env
	settings settings.Source

	// settings that could not be applied, kept for display
	invalid []error
}

// NewController allocates count pixels, restores the persisted effect and
// brightness, and applies layout. A layout index outside the buffer is
// returned as a *pixel.IndexError.
func NewController(count int, layout pixel.Layout, opts Options) (*Controller, error) {
	if count <= 0 {
		return nil, fmt.Errorf("pixel count must be positive, got %d", count)
	}

	c := &Controller{
		pixels:     pixel.NewBuffer(count),
		brightness: DefaultBrightness,
		env:        opts.Env,
		settings:   opts.Settings,
	}

	if err := layout.Apply(c.pixels); err != nil {
		return nil, err
	}
	if layout.Skipped > 0 {
		debug.Log("layout", "skipped %d malformed layout lines", layout.Skipped)
	}

	kind := effect.KindSolidColour
	if c.settings != nil {
		idx := int(kind)
		c.note(settings.Int(c.settings, settings.General, settings.KeyCurrentEffect, &idx, 0, effect.Count-1))
		kind = effect.Kind(idx)
		c.note(settings.Float(c.settings, settings.General, settings.KeyBrightness, &c.brightness, 0, 1))
	}

	e, err := effect.Restored(kind, c.env, c.settings)
	c.note(err)
	c.effect = e

	return c, nil
}

// note records a settings problem once; the controller keeps running on defaults.
func (c *Controller) note(err error) {
	if err == nil {
		return
	}
	debug.Log("settings", "%v", err)
	c.invalid = append(c.invalid, err)
}

// Tick renders the current frame and then advances the effect.
func (c *Controller) Tick(delta float64) {
	c.effect.Render(c.pixels)
	c.effect.Update(delta, c.pixels)
}

// FrameSize is the length of every frame this controller produces.
func (c *Controller) FrameSize() int {
	return len(c.pixels) * BytesPerPixel
}

// AppendFrame appends the RGB bytes of every pixel, in buffer order, with
// brightness applied to the value channel. Stored colours are not modified.
func (c *Controller) AppendFrame(dst []byte) []byte {
	for _, p := range c.pixels {
		r, g, b := p.Colour.Scale(c.brightness).RGB()
		dst = append(dst, r, g, b)
	}
	return dst
}

// FrameBytes returns a freshly allocated frame.
func (c *Controller) FrameBytes() []byte {
	return c.AppendFrame(make([]byte, 0, c.FrameSize()))
}

func (c *Controller) Brightness() float64 { return c.brightness }

// SetBrightness sets brightness, clamped to [0,1].
func (c *Controller) SetBrightness(b float64) {
	c.brightness = math.Max(0, math.Min(1, b))
}

// AdjustBrightness nudges brightness by delta, clamped to [0,1].
func (c *Controller) AdjustBrightness(delta float64) {
	c.SetBrightness(c.brightness + delta)
}

func (c *Controller) Effect() effect.Effect { return c.effect }

// CycleEffect switches to the adjacent effect variant.
func (c *Controller) CycleEffect(offset int) {
	e, err := effect.Switch(c.effect, offset, c.env, c.settings)
	c.note(err)
	debug.Log("effect", "%s -> %s", c.effect.Kind(), e.Kind())
	c.effect = e
}

// ResetEffect replaces the active effect with its compiled-in defaults.
func (c *Controller) ResetEffect() {
	c.effect = effect.New(c.effect.Kind(), c.env)
}

// HandleKey forwards a parameter edit to the active effect.
func (c *Controller) HandleKey(key string) bool {
	return c.effect.HandleKey(key)
}

// Persist writes global settings and the active effect's tunables.
func (c *Controller) Persist(src settings.Source) {
	settings.SetInt(src, settings.General, settings.KeyCurrentEffect, int(c.effect.Kind()))
	settings.SetFloat(src, settings.General, settings.KeyBrightness, c.brightness)
	c.effect.Persist(src)
}

// Save persists into the controller's own settings store.
func (c *Controller) Save() error {
	if c.settings == nil {
		return nil
	}
	c.Persist(c.settings)
	if s, ok := c.settings.(interface{ Save() error }); ok {
		return s.Save()
	}
	return nil
}

// InvalidSettings returns every settings problem seen so far.
func (c *Controller) InvalidSettings() error {
	return errors.Join(c.invalid...)
}

// Snapshot is a self-consistent copy of controller state for display.
type Snapshot struct {
	Effect     effect.Kind
	Params     []effect.Param
	Brightness float64
	Colours    []color.HSV
	Invalid    int
}

// Snapshot copies the state a display needs.
func (c *Controller) Snapshot() Snapshot {
	colours := make([]color.HSV, len(c.pixels))
	for i, p := range c.pixels {
		colours[i] = p.Colour.Scale(c.brightness)
	}
	return Snapshot{
		Effect:     c.effect.Kind(),
		Params:     c.effect.Params(),
		Brightness: c.brightness,
		Colours:    colours,
		Invalid:    len(c.invalid),
	}
}

// Len is the fixed pixel count.
func (c *Controller) Len() int { return len(c.pixels) }

// Pixel returns a copy of pixel i.
func (c *Controller) Pixel(i int) pixel.Pixel { return c.pixels[i] }
