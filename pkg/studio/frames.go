package studio

import (
	"context"
	"time"
)

// Frames coalesces frame requests so that any number of requests between two
// ticks produce a single [Controller.Generate] call.
type Frames struct {
	ctrl    *Controller
	pending chan struct{}
	painted func(ok bool, err error)
}

// NewFrames returns a scheduler for ctrl and subscribes it to ctrl's
// configuration changes.
func NewFrames(ctrl *Controller) *Frames {
	f := &Frames{ctrl: ctrl, pending: make(chan struct{}, 1)}
	ctrl.OnChange(f.Request)
	return f
}

// OnPaint registers fn to receive the outcome of every scheduled pass.
// It must be called before Run.
func (f *Frames) OnPaint(fn func(ok bool, err error)) {
	f.painted = fn
}

// Request schedules a frame. It never blocks.
func (f *Frames) Request() {
	select {
	case f.pending <- struct{}{}:
	default:
	}
}

// Run paints at most one frame per tick until ctx is done.
func (f *Frames) Run(ctx context.Context, tick time.Duration) error {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
		select {
		case <-f.pending:
		default:
			continue
		}
		ok, err := f.ctrl.Generate(ctx)
		if !ok && err == nil {
			// Dropped; try again next tick.
			f.Request()
		}
		if f.painted != nil {
			f.painted(ok, err)
		}
	}
}
