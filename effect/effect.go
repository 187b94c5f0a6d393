package effect

import (
	"math/rand/v2"
	"strings"
	"time"

	"go-ledfield/geom"
	"go-ledfield/pixel"
	"go-ledfield/settings"
)

// Kind identifies an effect variant. Values are stable and double as the
// persisted current_effect index.
type Kind int

const (
	KindSolidColour Kind = iota
	KindStationaryPlane
	KindMovingPlane
	KindRainbowPlane
	KindRandomMovingPlane
	KindExpandingCircle
	KindNoiseField

	numKinds
)

var kindNames = [numKinds]string{
	"Solid Colour",
	"Stationary Plane",
	"Moving Plane",
	"Rainbow Plane",
	"Random Moving Plane",
	"Expanding Circle",
	"Noise Field",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "Unknown"
	}
	return kindNames[k]
}

// Section is the settings section holding this variant's tunables.
func (k Kind) Section() string {
	return "Effect." + strings.ReplaceAll(k.String(), " ", "")
}

// Count is the number of effect variants
const Count = int(numKinds)

// Kinds lists every variant in cycling order
func Kinds() []Kind {
	out := make([]Kind, 0, numKinds)
	for k := Kind(0); k < numKinds; k++ {
		out = append(out, k)
	}
	return out
}

// Effect is one animation variant. Implementations are owned by a single
// controller and are not safe for concurrent use on their own.
type Effect interface {
	Kind() Kind

	// Update advances time dependent state. pixels is read-only here.
	Update(delta float64, pixels []pixel.Pixel)
	// Render writes a colour into every pixel. Calling it twice without an
	// Update in between produces the same buffer.
	Render(pixels []pixel.Pixel)

	// HandleKey applies a parameter edit; it reports false for keys the
	// effect does not use.
	HandleKey(key string) bool
	Params() []Param

	Persist(src settings.Source)
	Restore(src settings.Source) error
}

// Param is one tunable as shown to the user
type Param struct {
	Label string
	Value string
	Down  string // keys that decrease it
	Up    string // keys that increase it
}

// Env is the configuration every effect is constructed with.
type Env struct {
	Bounds geom.Box
	Rand   *rand.Rand
	Seed   int64
}

// NewEnv builds an Env for the given fixture bounds seeded from seed.
func NewEnv(bounds geom.Box, seed int64) Env {
	return Env{
		Bounds: bounds,
		Rand:   rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1)),
		Seed:   seed,
	}
}

func (e Env) withDefaults() Env {
	if e.Bounds.IsZero() {
		e.Bounds = geom.DefaultBox
	}
	if e.Rand == nil {
		seed := e.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		e = NewEnv(e.Bounds, seed)
	}
	return e
}

// New builds the variant k with its compiled-in defaults.
func New(k Kind, env Env) Effect {
	env = env.withDefaults()

	switch Cycle(k, 0) {
	case KindStationaryPlane:
		return DefaultStationaryPlane(env)
	case KindMovingPlane:
		return DefaultMovingPlane(env)
	case KindRainbowPlane:
		return DefaultRainbowPlane(env)
	case KindRandomMovingPlane:
		return DefaultRandomMovingPlane(env)
	case KindExpandingCircle:
		return DefaultExpandingCircle(env)
	case KindNoiseField:
		return DefaultNoiseField(env)
	default:
		return DefaultSolidColour()
	}
}

// Restored builds k with defaults and then overlays persisted tunables.
// A returned error describes settings that were ignored; the effect is
// always usable.
func Restored(k Kind, env Env, src settings.Source) (Effect, error) {
	e := New(k, env)
	if src == nil {
		return e, nil
	}
	return e, e.Restore(src)
}

// Cycle returns the variant offset steps away from k, wrapping in both
// directions.
func Cycle(k Kind, offset int) Kind {
	n := int(numKinds)
	return Kind(((int(k)+offset)%n + n) % n)
}

// Switch replaces cur with the adjacent variant. The outgoing tunables are
// persisted first so cycling back restores them.
func Switch(cur Effect, offset int, env Env, src settings.Source) (Effect, error) {
	if src != nil {
		cur.Persist(src)
	}
	return Restored(Cycle(cur.Kind(), offset), env, src)
}
