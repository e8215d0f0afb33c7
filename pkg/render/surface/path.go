package surface

import "math"

// segmenter is the minimal path vocabulary a backend implements natively.
type segmenter interface {
	moveTo(x, y float64)
	lineTo(x, y float64)
	cubicTo(c1x, c1y, c2x, c2y, x, y float64)
	closePath()
}

// tracer tracks the current point and lowers ellipses, arcs and rectangles
// into the primitive segments of a backend.
type tracer struct {
	seg            segmenter
	has            bool
	curX, curY     float64
	startX, startY float64
}

func (t *tracer) reset() {
	t.has = false
}

func (t *tracer) MoveTo(x, y float64) {
	t.seg.moveTo(x, y)
	t.has = true
	t.curX, t.curY = x, y
	t.startX, t.startY = x, y
}

func (t *tracer) LineTo(x, y float64) {
	if !t.has {
		t.MoveTo(x, y)
		return
	}
	t.seg.lineTo(x, y)
	t.curX, t.curY = x, y
}

func (t *tracer) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	if !t.has {
		t.MoveTo(c1x, c1y)
	}
	t.seg.cubicTo(c1x, c1y, c2x, c2y, x, y)
	t.curX, t.curY = x, y
}

func (t *tracer) ClosePath() {
	if !t.has {
		return
	}
	t.seg.closePath()
	t.curX, t.curY = t.startX, t.startY
}

func (t *tracer) Rect(x, y, w, h float64) {
	t.MoveTo(x, y)
	t.seg.lineTo(x+w, y)
	t.seg.lineTo(x+w, y+h)
	t.seg.lineTo(x, y+h)
	t.ClosePath()
	t.MoveTo(x, y)
}

func (t *tracer) Arc(x, y, r, start, end float64) {
	t.Ellipse(x, y, r, r, 0, start, end)
}

// maxSegment bounds the sweep of a single cubic approximation.
const maxSegment = math.Pi / 2

func (t *tracer) Ellipse(x, y, rx, ry, rotation, start, end float64) {
	if rx < 0 || ry < 0 {
		return
	}
	sweep := clockwiseSweep(start, end)
	sin, cos := math.Sincos(rotation)

	point := func(a float64) (float64, float64) {
		ex, ey := rx*math.Cos(a), ry*math.Sin(a)
		return x + ex*cos - ey*sin, y + ex*sin + ey*cos
	}
	tangent := func(a float64) (float64, float64) {
		dx, dy := -rx*math.Sin(a), ry*math.Cos(a)
		return dx*cos - dy*sin, dx*sin + dy*cos
	}

	x0, y0 := point(start)
	if t.has {
		t.LineTo(x0, y0)
	} else {
		t.MoveTo(x0, y0)
	}
	if sweep == 0 {
		return
	}

	n := int(math.Ceil(sweep/maxSegment - 1e-9))
	step := sweep / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)
	a := start
	for i := 0; i < n; i++ {
		b := a + step
		px, py := point(a)
		qx, qy := point(b)
		tax, tay := tangent(a)
		tbx, tby := tangent(b)
		t.CubicTo(px+k*tax, py+k*tay, qx-k*tbx, qy-k*tby, qx, qy)
		a = b
	}
}

// clockwiseSweep returns the non-negative angle swept from start to end,
// capped at a full turn.
func clockwiseSweep(start, end float64) float64 {
	d := end - start
	if d >= 2*math.Pi {
		return 2 * math.Pi
	}
	if d < 0 {
		d = math.Mod(d, 2*math.Pi) + 2*math.Pi
	}
	return d
}
