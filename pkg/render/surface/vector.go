package surface

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/avatarkit/pkg/errors"
	"github.com/matzehuels/avatarkit/pkg/render/colors"
)

// Vector is a [Surface] that records an SVG document.
//
// Every Fill, Stroke and FillRect call emits one <path> element, so the
// document preserves the painter's order of the composition.
type Vector struct {
	tracer
	buf    bytes.Buffer
	canvas *svg.SVG
	w, h   int

	d         strings.Builder
	fill      string
	stroke    string
	lineWidth float64
	gradients int
	ended     bool
}

// NewVector starts a w×h SVG document.
func NewVector(w, h int) (*Vector, error) {
	if err := errors.ValidateSize(w, h); err != nil {
		return nil, err
	}
	v := &Vector{w: w, h: h, lineWidth: 1}
	v.tracer.seg = v
	v.canvas = svg.New(&v.buf)
	v.canvas.Start(w, h)
	v.fill = paint(color.Black)
	v.stroke = "stroke:#000000"
	return v, nil
}

func (v *Vector) Size() (int, int) { return v.w, v.h }

func (v *Vector) SetFillColor(c color.Color) { v.fill = paint(c) }

// SetFillGradient defines a gradient in the document. svgo expresses
// gradient endpoints as percentages of the filled shape's bounding box; they
// are computed against the full surface.
func (v *Vector) SetFillGradient(g LinearGradient) {
	v.gradients++
	id := fmt.Sprintf("g%d", v.gradients)
	stops := make([]svg.Offcolor, 0, len(g.Stops))
	for _, st := range g.Stops {
		hex, a := hexAlpha(st.Color)
		stops = append(stops, svg.Offcolor{Offset: percent(st.Offset, 1), Color: hex, Opacity: a})
	}
	fw, fh := float64(v.w), float64(v.h)
	v.canvas.Def()
	v.canvas.LinearGradient(id, percent(g.X0, fw), percent(g.Y0, fh), percent(g.X1, fw), percent(g.Y1, fh), stops)
	v.canvas.DefEnd()
	v.fill = "fill:url(#" + id + ")"
}

func (v *Vector) SetStrokeColor(c color.Color) {
	hex, a := hexAlpha(c)
	v.stroke = "stroke:" + hex
	if a < 1 {
		v.stroke += ";stroke-opacity:" + num(a)
	}
}

func (v *Vector) SetLineWidth(w float64) { v.lineWidth = w }

func (v *Vector) BeginPath() {
	v.d.Reset()
	v.tracer.reset()
}

func (v *Vector) Fill() {
	if v.d.Len() == 0 {
		return
	}
	v.canvas.Path(v.d.String(), v.fill+";stroke:none")
}

func (v *Vector) Stroke() {
	if v.d.Len() == 0 {
		return
	}
	v.canvas.Path(v.d.String(), "fill:none;"+v.stroke+";stroke-width:"+num(v.lineWidth))
}

func (v *Vector) FillRect(x, y, w, h float64) {
	d := fmt.Sprintf("M%s %sh%sv%sh%sZ", num(x), num(y), num(w), num(h), num(-w))
	v.canvas.Path(d, v.fill+";stroke:none")
}

// Bytes finishes the document and returns it. Drawing after Bytes has no
// effect on the returned document.
func (v *Vector) Bytes() []byte {
	if !v.ended {
		v.canvas.End()
		v.ended = true
	}
	return v.buf.Bytes()
}

func (v *Vector) moveTo(x, y float64) {
	fmt.Fprintf(&v.d, "M%s %s", num(x), num(y))
}

func (v *Vector) lineTo(x, y float64) {
	fmt.Fprintf(&v.d, "L%s %s", num(x), num(y))
}

func (v *Vector) cubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	fmt.Fprintf(&v.d, "C%s %s %s %s %s %s", num(c1x), num(c1y), num(c2x), num(c2y), num(x), num(y))
}

func (v *Vector) closePath() { v.d.WriteString("Z") }

func paint(c color.Color) string {
	hex, a := hexAlpha(c)
	s := "fill:" + hex
	if a < 1 {
		s += ";fill-opacity:" + num(a)
	}
	return s
}

func hexAlpha(c color.Color) (string, float64) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return colors.Hex(n), float64(n.A) / 255
}

func percent(x, of float64) uint8 {
	if of <= 0 {
		return 0
	}
	return uint8(math.Round(math.Max(0, math.Min(100, x/of*100))))
}

func num(f float64) string {
	return strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
}
