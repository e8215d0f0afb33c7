package sink

import (
	"github.com/matzehuels/avatarkit/pkg/render/compositor"
)

// Option configures a sink.
type Option func(*options)

type options struct {
	width, height int
	scale         float64
	comp          *compositor.Compositor
	seed          uint64
}

func newOptions(opts []Option) options {
	o := options{
		width:  compositor.DefaultWidth,
		height: compositor.DefaultHeight,
		scale:  1,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.comp == nil {
		o.comp = compositor.New(compositor.WithSeed(o.seed))
	}
	return o
}

// WithSize sets the logical surface size in pixels (default 400×400).
func WithSize(w, h int) Option {
	return func(o *options) { o.width, o.height = w, h }
}

// WithScale sets the raster scale factor (default 1). Vector output ignores it.
func WithScale(s float64) Option {
	return func(o *options) { o.scale = s }
}

// WithCompositor renders with c instead of a fresh compositor.
func WithCompositor(c *compositor.Compositor) Option {
	return func(o *options) { o.comp = c }
}

// WithSeed seeds the default compositor and is recorded in JSON output.
// It has no effect on rendering when [WithCompositor] is also given.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed = seed }
}
