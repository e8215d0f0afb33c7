// Package sheet renders contact sheets: one labelled cell per variant of a
// slot, every other slot taken from a base avatar.
//
// Cells are rendered concurrently at twice their size and downsampled, which
// gives smoother edges than rendering at cell size directly.
package sheet

import (
	"context"
	"image"
	"image/color"
	"io"
	"math/rand/v2"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/avatarkit/pkg/avatar"
	"github.com/matzehuels/avatarkit/pkg/errors"
	"github.com/matzehuels/avatarkit/pkg/fonts"
	"github.com/matzehuels/avatarkit/pkg/render/compositor"
	"github.com/matzehuels/avatarkit/pkg/render/sink"
)

// Defaults.
const (
	DefaultCell    = 160
	DefaultColumns = 4

	labelHeight = 24
	supersample = 2
)

// Options controls the sheet layout.
type Options struct {
	Cell    int    // cell edge in pixels
	Columns int    // cells per row
	Seed    uint64 // zero draws a fresh seed
}

func (o *Options) setDefaults() error {
	if o.Cell == 0 {
		o.Cell = DefaultCell
	}
	if o.Columns == 0 {
		o.Columns = DefaultColumns
	}
	if o.Columns < 0 {
		return errors.New(errors.ErrCodeInvalidSize, "columns must be positive, got %d", o.Columns)
	}
	if err := errors.ValidateSize(o.Cell*supersample, o.Cell*supersample); err != nil {
		return err
	}
	for o.Seed == 0 {
		o.Seed = rand.Uint64()
	}
	return nil
}

// Render draws every variant of slot on base. All cells share one seed, so
// they wear the same clothing color.
func Render(ctx context.Context, base avatar.Config, slot avatar.Slot, opts Options) (image.Image, error) {
	if err := opts.setDefaults(); err != nil {
		return nil, err
	}
	if _, err := avatar.ParseSlot(slot.Key()); err != nil {
		return nil, err
	}
	if err := base.Validate(); err != nil {
		return nil, err
	}

	variants := avatar.Variants(slot)
	cells := make([]image.Image, len(variants))

	g, ctx := errgroup.WithContext(ctx)
	for i, v := range variants {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cfg, err := base.With(slot, v)
			if err != nil {
				return err
			}
			img, err := sink.RenderImage(cfg,
				sink.WithSize(opts.Cell, opts.Cell),
				sink.WithScale(supersample),
				sink.WithCompositor(compositor.New(compositor.WithSeed(opts.Seed))),
			)
			if err != nil {
				return err
			}
			cells[i] = imaging.Resize(img, opts.Cell, opts.Cell, imaging.Lanczos)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return compose(cells, variants, opts), nil
}

func compose(cells []image.Image, labels []string, opts Options) image.Image {
	cols := min(opts.Columns, len(cells))
	rows := (len(cells) + cols - 1) / cols
	rowHeight := opts.Cell + labelHeight

	canvas := imaging.New(cols*opts.Cell, rows*rowHeight, color.White)
	for i, cell := range cells {
		x, y := (i%cols)*opts.Cell, (i/cols)*rowHeight
		canvas = imaging.Paste(canvas, cell, image.Pt(x, y))
	}

	dc := gg.NewContextForImage(canvas)
	dc.SetFontFace(fonts.Face(13))
	dc.SetRGB(0.2, 0.2, 0.2)
	for i, label := range labels {
		x := float64((i%cols)*opts.Cell) + float64(opts.Cell)/2
		y := float64((i/cols)*rowHeight+opts.Cell) + labelHeight/2
		dc.DrawStringAnchored(label, x, y, 0.5, 0.35)
	}
	return dc.Image()
}

// Encode writes img as PNG.
func Encode(w io.Writer, img image.Image) error {
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "encode sheet")
	}
	return nil
}
