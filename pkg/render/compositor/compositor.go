// Package compositor paints an avatar onto a [surface.Surface].
//
// Rendering is a fixed stack of layers drawn back to front:
//
//	background → clothing → face → hair → eyebrows → eyes → nose →
//	mouth → facial hair → accessories
//
// Each layer is a pure function of the configuration and the surface size,
// positioned by an anchor expressed as a fraction of the surface height and
// an absolute base size in pixels. Shape variants dispatch through one lookup
// table per slot, so every catalog entry maps to exactly one draw function.
//
// Two layers consume randomness: clothing picks its color from a fixed
// palette once per render (unless pinned with [WithClothingColor]) and the
// stubble variant scatters twenty dots. Supply [WithSeed] or [WithRand] for
// reproducible output.
//
// The clothing fill and its outline share that single sample. The editor
// this renderer replaces drew them independently, so a shirt could get an
// outline from a different palette color; here both always match.
package compositor

import (
	"math/rand/v2"
	"sync"

	"github.com/matzehuels/avatarkit/pkg/avatar"
	"github.com/matzehuels/avatarkit/pkg/errors"
	"github.com/matzehuels/avatarkit/pkg/render/surface"
)

// Conventional canvas size for the base sizes in the layer table.
const (
	DefaultWidth  = 400
	DefaultHeight = 400
)

// ClothingPalette lists the colors clothing is sampled from.
var ClothingPalette = []string{"#4169e1", "#dc143c", "#228b22", "#ff8c00", "#8a2be2", "#20b2aa"}

// Compositor renders avatar configurations. It is safe for concurrent use;
// renders sharing a random source are serialized.
type Compositor struct {
	mu            sync.Mutex
	rng           *rand.Rand
	clothingColor string
}

// Option configures a Compositor.
type Option func(*Compositor)

// WithRand sets the random source used for clothing color and stubble.
// A nil source uses the global generator.
func WithRand(r *rand.Rand) Option {
	return func(c *Compositor) { c.rng = r }
}

// WithSeed makes rendering deterministic for the given seed.
// Seed 0 keeps the global generator.
func WithSeed(seed uint64) Option {
	return func(c *Compositor) {
		if seed != 0 {
			c.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		}
	}
}

// WithClothingColor pins the clothing color instead of sampling it.
// An empty string restores sampling.
func WithClothingColor(hex string) Option {
	return func(c *Compositor) { c.clothingColor = hex }
}

// New returns a Compositor.
func New(opts ...Option) *Compositor {
	c := &Compositor{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Validate checks the options a Compositor was built with.
func (c *Compositor) Validate() error {
	if c.clothingColor == "" {
		return nil
	}
	return errors.ValidateHexColor(c.clothingColor)
}

// Render paints cfg onto s. An invalid configuration or an empty surface is
// rejected before anything is drawn.
func (c *Compositor) Render(s surface.Surface, cfg avatar.Config) error {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return errors.New(errors.ErrCodeInvalidSize, "surface is %dx%d", w, h)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}

	if c.rng != nil {
		c.mu.Lock()
		defer c.mu.Unlock()
	}

	p := &painter{s: s, cfg: cfg, rng: c.rng, w: float64(w), h: float64(h)}
	p.clothing = c.clothingColor
	if p.clothing == "" {
		p.clothing = ClothingPalette[p.intN(len(ClothingPalette))]
	}

	for _, l := range layers {
		l.draw(p, p.w/2, p.h*l.fy, l.size)
	}
	return nil
}

// layer is one entry of the paint stack. fy positions the anchor as a
// fraction of the surface height; size is in pixels.
type layer struct {
	name string
	fy   float64
	size float64
	draw func(p *painter, x, y, size float64)
}

var layers = []layer{
	{"background", 0, 0, drawBackground},
	{"clothing", 0.85, 120, drawClothing},
	{"face", 0.5, 80, drawFace},
	{"hair", 0.35, 85, drawHair},
	{"eyebrows", 0.42, 60, drawEyebrows},
	{"eyes", 0.46, 50, drawEyes},
	{"nose", 0.52, 25, drawNose},
	{"mouth", 0.6, 40, drawMouth},
	{"facial_hair", 0.65, 70, drawFacialHair},
	{"accessories", 0.5, 100, drawAccessories},
}

// Layers returns the names of the paint stack, back to front.
func Layers() []string {
	out := make([]string, len(layers))
	for i, l := range layers {
		out[i] = l.name
	}
	return out
}

type painter struct {
	s        surface.Surface
	cfg      avatar.Config
	rng      *rand.Rand
	w, h     float64
	clothing string
}

func (p *painter) float64() float64 {
	if p.rng == nil {
		return rand.Float64()
	}
	return p.rng.Float64()
}

func (p *painter) intN(n int) int {
	if p.rng == nil {
		return rand.IntN(n)
	}
	return p.rng.IntN(n)
}
