package surface

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/avatarkit/pkg/errors"
)

// Raster is a [Surface] backed by an in-memory RGBA image.
//
// Drawing happens in logical pixels; the backing image is scale times
// larger in each dimension, rounded up to whole pixels. The logical surface
// is stretched over the rounded image so a full-size FillRect covers every
// device pixel.
type Raster struct {
	tracer
	dc     *gg.Context
	rgba   *image.RGBA
	fill   gg.Pattern
	w, h   int
	scale  float64
	sx, sy float64
}

// NewRaster allocates a transparent w×h surface rendered at scale.
func NewRaster(w, h int, scale float64) (*Raster, error) {
	if err := errors.ValidateSize(w, h); err != nil {
		return nil, err
	}
	if err := errors.ValidateScale(scale); err != nil {
		return nil, err
	}
	pw, ph := DeviceSize(w, h, scale)
	if err := errors.ValidateSize(pw, ph); err != nil {
		return nil, err
	}

	rgba := image.NewRGBA(image.Rect(0, 0, pw, ph))
	r := &Raster{
		dc:    gg.NewContextForRGBA(rgba),
		rgba:  rgba,
		w:     w,
		h:     h,
		scale: scale,
		sx:    float64(pw) / float64(w),
		sy:    float64(ph) / float64(h),
	}
	r.tracer.seg = r
	r.dc.Scale(r.sx, r.sy)
	r.SetLineWidth(1)
	r.SetFillColor(color.Black)
	r.SetStrokeColor(color.Black)
	return r, nil
}

// DeviceSize returns the pixel dimensions of a w×h surface at scale.
func DeviceSize(w, h int, scale float64) (int, int) {
	return int(math.Ceil(float64(w) * scale)), int(math.Ceil(float64(h) * scale))
}

func (r *Raster) Size() (int, int) { return r.w, r.h }

// Scale returns the device pixels per logical pixel.
func (r *Raster) Scale() float64 { return r.scale }

func (r *Raster) SetFillColor(c color.Color) {
	r.setFill(gg.NewSolidPattern(c))
}

func (r *Raster) setFill(p gg.Pattern) {
	r.fill = p
	r.dc.SetFillStyle(p)
}

// SetFillGradient sets a linear gradient fill. gg evaluates gradients in
// device space, so the endpoints are scaled here.
func (r *Raster) SetFillGradient(g LinearGradient) {
	lg := gg.NewLinearGradient(g.X0*r.sx, g.Y0*r.sy, g.X1*r.sx, g.Y1*r.sy)
	for _, st := range g.Stops {
		lg.AddColorStop(st.Offset, st.Color)
	}
	r.setFill(lg)
}

func (r *Raster) SetStrokeColor(c color.Color) {
	r.dc.SetStrokeStyle(gg.NewSolidPattern(c))
}

// SetLineWidth sets the stroke width in logical pixels.
func (r *Raster) SetLineWidth(w float64) {
	r.dc.SetLineWidth(w * r.scale)
}

func (r *Raster) BeginPath() {
	r.dc.ClearPath()
	r.tracer.reset()
}

func (r *Raster) Fill()   { r.dc.FillPreserve() }
func (r *Raster) Stroke() { r.dc.StrokePreserve() }

// FillRect paints through a second context over the same pixels so the
// open path of the main context survives.
func (r *Raster) FillRect(x, y, w, h float64) {
	dc := gg.NewContextForRGBA(r.rgba)
	dc.Scale(r.sx, r.sy)
	dc.SetFillStyle(r.fill)
	dc.DrawRectangle(x, y, w, h)
	dc.Fill()
}

// Image returns the backing image. It aliases the surface's pixels.
func (r *Raster) Image() image.Image { return r.rgba }

// EncodePNG writes the surface as a PNG image.
func (r *Raster) EncodePNG(w io.Writer) error {
	if err := r.dc.EncodePNG(w); err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "encode png")
	}
	return nil
}

func (r *Raster) moveTo(x, y float64) { r.dc.MoveTo(x, y) }
func (r *Raster) lineTo(x, y float64) { r.dc.LineTo(x, y) }
func (r *Raster) closePath()          { r.dc.ClosePath() }

func (r *Raster) cubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	r.dc.CubicTo(c1x, c1y, c2x, c2y, x, y)
}
