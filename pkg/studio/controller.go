package studio

import (
	"context"
	"image"
	"io"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/avatarkit/pkg/avatar"
	"github.com/matzehuels/avatarkit/pkg/errors"
	"github.com/matzehuels/avatarkit/pkg/observability"
	"github.com/matzehuels/avatarkit/pkg/render/compositor"
	"github.com/matzehuels/avatarkit/pkg/render/sink"
	"github.com/matzehuels/avatarkit/pkg/render/surface"
)

// Controller owns the current avatar configuration and its latest frame.
// It is safe for concurrent use.
type Controller struct {
	mu     sync.RWMutex
	cfg    avatar.Config
	frame  *surface.Raster
	rng    *rand.Rand
	width  int
	height int
	scale  float64
	comp   *compositor.Compositor
	logger *log.Logger

	generating atomic.Bool
	listeners  []func()
}

// Option configures a Controller.
type Option func(*Controller)

// WithConfig sets the initial configuration (default [avatar.Default]).
func WithConfig(cfg avatar.Config) Option {
	return func(c *Controller) { c.cfg = cfg }
}

// WithSize sets the frame size in logical pixels.
func WithSize(w, h int) Option {
	return func(c *Controller) { c.width, c.height = w, h }
}

// WithScale sets the frame's device pixel ratio.
func WithScale(s float64) Option {
	return func(c *Controller) { c.scale = s }
}

// WithRand sets the source used by [Controller.Randomize].
func WithRand(r *rand.Rand) Option {
	return func(c *Controller) { c.rng = r }
}

// WithCompositor sets the compositor frames are painted with.
func WithCompositor(comp *compositor.Compositor) Option {
	return func(c *Controller) { c.comp = comp }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// New returns a Controller holding the default avatar.
func New(opts ...Option) (*Controller, error) {
	c := &Controller{
		cfg:    avatar.Default(),
		width:  compositor.DefaultWidth,
		height: compositor.DefaultHeight,
		scale:  1,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.comp == nil {
		c.comp = compositor.New()
	}
	if c.logger == nil {
		c.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if err := errors.ValidateSize(c.width, c.height); err != nil {
		return nil, err
	}
	if err := errors.ValidateScale(c.scale); err != nil {
		return nil, err
	}
	if err := errors.ValidateSize(surface.DeviceSize(c.width, c.height, c.scale)); err != nil {
		return nil, err
	}
	if err := c.comp.Validate(); err != nil {
		return nil, err
	}
	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Config returns a copy of the current configuration.
func (c *Controller) Config() avatar.Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg
}

// Set changes one slot. On error the configuration is unchanged.
func (c *Controller) Set(s avatar.Slot, value string) error {
	c.mu.Lock()
	next, err := c.cfg.With(s, value)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.cfg = next
	c.mu.Unlock()

	c.logger.Debug("set feature", "slot", s.Key(), "value", value)
	c.changed()
	return nil
}

// Randomize re-samples every slot and returns the new configuration.
func (c *Controller) Randomize() avatar.Config {
	c.mu.Lock()
	c.cfg = avatar.Random(c.rng)
	cfg := c.cfg
	c.mu.Unlock()

	c.logger.Debug("randomized", "avatar", cfg.Fingerprint()[:12])
	c.changed()
	return cfg
}

// Reset restores the default configuration.
func (c *Controller) Reset() {
	_ = c.Load(avatar.Default())
}

// Load replaces the whole configuration. Invalid configurations are
// rejected and leave the current one in place.
func (c *Controller) Load(cfg avatar.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	c.cfg = cfg
	c.mu.Unlock()
	c.changed()
	return nil
}

// OnChange registers fn to run after every configuration change.
func (c *Controller) OnChange(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

func (c *Controller) changed() {
	c.mu.RLock()
	ls := c.listeners
	c.mu.RUnlock()
	for _, fn := range ls {
		fn()
	}
}

// Generate paints the current configuration into a new frame. When another
// pass is still running the request is dropped and Generate returns false.
func (c *Controller) Generate(ctx context.Context) (bool, error) {
	if !c.generating.CompareAndSwap(false, true) {
		observability.Render().OnFrameDropped(ctx)
		return false, nil
	}
	defer c.generating.Store(false)

	cfg := c.Config()
	fp := cfg.Fingerprint()
	formats := []string{"frame"}
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, fp, formats)
	start := time.Now()

	r, err := sink.Raster(cfg,
		sink.WithSize(c.width, c.height),
		sink.WithScale(c.scale),
		sink.WithCompositor(c.comp),
	)
	hooks.OnRenderComplete(ctx, fp, formats, time.Since(start), err)
	if err != nil {
		return false, err
	}

	c.mu.Lock()
	c.frame = r
	c.mu.Unlock()
	return true, nil
}

// Frame returns the latest painted frame, or nil before the first
// [Controller.Generate].
func (c *Controller) Frame() image.Image {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.frame == nil {
		return nil
	}
	return c.frame.Image()
}

// Export writes the latest frame as PNG, painting one first if none exists.
func (c *Controller) Export(ctx context.Context, w io.Writer) error {
	c.mu.RLock()
	r := c.frame
	c.mu.RUnlock()

	if r == nil {
		ok, err := c.Generate(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return errors.New(errors.ErrCodeBusy, "a frame is being painted, try again")
		}
		c.mu.RLock()
		r = c.frame
		c.mu.RUnlock()
	}
	return r.EncodePNG(w)
}

// ExportFilename names an exported image after the UTC time t, for example
// "avatar-2024-03-01T09-30-00.png".
func ExportFilename(t time.Time) string {
	return "avatar-" + t.UTC().Format("2006-01-02T15-04-05") + ".png"
}
