package compositor

import (
	"math"

	"github.com/matzehuels/avatarkit/pkg/avatar"
	"github.com/matzehuels/avatarkit/pkg/render/colors"
	"github.com/matzehuels/avatarkit/pkg/render/surface"
)

const (
	fullTurn = 2 * math.Pi
	halfTurn = math.Pi
)

// Fixed palette.
const (
	gradientStart = "#ff6b6b"
	gradientEnd   = "#4ecdc4"
	lipFill       = "#ff6b9d"
	lipStroke     = "#d63384"
	hatBrown      = "#8b4513"
	capBlue       = "#4169e1"
	gold          = "#ffd700"
	scarfRed      = "#dc143c"
)

type drawFunc func(p *painter, x, y, size float64)

func (p *painter) fill(hex string)   { p.s.SetFillColor(colors.MustParse(hex)) }
func (p *painter) stroke(hex string) { p.s.SetStrokeColor(colors.MustParse(hex)) }

func (p *painter) fillStroke() {
	p.s.Fill()
	p.s.Stroke()
}

func (p *painter) ellipse(x, y, rx, ry float64) {
	p.s.Ellipse(x, y, rx, ry, 0, 0, fullTurn)
}

// lowerHalf traces the half ellipse below the center line.
func (p *painter) lowerHalf(x, y, rx, ry float64) {
	p.s.Ellipse(x, y, rx, ry, 0, 0, halfTurn)
}

func (p *painter) circle(x, y, r float64) {
	p.s.Arc(x, y, r, 0, fullTurn)
}

// Background

func drawBackground(p *painter, _, _, _ float64) {
	if p.cfg.Background == avatar.BackgroundGradient {
		p.s.SetFillGradient(surface.LinearGradient{
			X1: p.w, Y1: p.h,
			Stops: []surface.Stop{
				{Offset: 0, Color: colors.MustParse(gradientStart)},
				{Offset: 1, Color: colors.MustParse(gradientEnd)},
			},
		})
	} else {
		p.fill(string(p.cfg.Background))
	}
	p.s.FillRect(0, 0, p.w, p.h)
}

// Face

var faces = map[avatar.FaceShape]drawFunc{
	avatar.FaceCircle: func(p *painter, x, y, s float64) {
		p.circle(x, y, s)
	},
	avatar.FaceOval: func(p *painter, x, y, s float64) {
		p.ellipse(x, y, s*0.8, s)
	},
	avatar.FaceSquare: func(p *painter, x, y, s float64) {
		p.s.Rect(x-s*0.7, y-s*0.8, s*1.4, s*1.6)
	},
	avatar.FaceHeart:   heart,
	avatar.FaceDiamond: diamond,
}

func drawFace(p *painter, x, y, size float64) {
	skin := string(p.cfg.SkinTone)
	p.fill(skin)
	p.stroke(colors.Darken(skin, 20))
	p.s.SetLineWidth(2)

	p.s.BeginPath()
	faces[p.cfg.FaceShape](p, x, y, size)
	p.fillStroke()
}

func heart(p *painter, x, y, size float64) {
	w := size * 1.2
	h := size * 1.1
	s := p.s
	s.MoveTo(x, y+h/4)
	s.CubicTo(x, y-h/2, x-w/2, y-h/2, x-w/2, y)
	s.CubicTo(x-w/2, y+h/4, x, y+h/2, x, y+h)
	s.CubicTo(x, y+h/2, x+w/2, y+h/4, x+w/2, y)
	s.CubicTo(x+w/2, y-h/2, x, y-h/2, x, y+h/4)
}

func diamond(p *painter, x, y, size float64) {
	s := p.s
	s.MoveTo(x, y-size)
	s.LineTo(x+size*0.7, y)
	s.LineTo(x, y+size)
	s.LineTo(x-size*0.7, y)
	s.ClosePath()
}

// Hair

func defaultHair(p *painter, x, y, s float64) {
	p.ellipse(x, y, s*0.9, s*0.7)
}

var hairStyles = map[avatar.HairStyle]drawFunc{
	avatar.HairBald: nil,
	avatar.HairShort: func(p *painter, x, y, s float64) {
		p.ellipse(x, y, s*0.9, s*0.6)
	},
	avatar.HairMedium: func(p *painter, x, y, s float64) {
		p.ellipse(x, y, s, s*0.8)
	},
	avatar.HairLong: func(p *painter, x, y, s float64) {
		p.ellipse(x, y+20, s*1.1, s*1.2)
	},
	avatar.HairCurly: curls,
	avatar.HairAfro: func(p *painter, x, y, s float64) {
		p.ellipse(x, y, s*1.3, s*1.2)
	},
	avatar.HairPonytail: func(p *painter, x, y, s float64) {
		p.ellipse(x, y, s*0.8, s*0.6)
		p.ellipse(x+s*0.8, y+20, 15, 30)
	},
	avatar.HairMohawk: func(p *painter, x, y, s float64) {
		p.s.Rect(x-15, y-20, 30, s)
	},
	avatar.HairStraight: defaultHair,
	avatar.HairWavy:     defaultHair,
	avatar.HairBuzzCut:  defaultHair,
	avatar.HairBraids:   defaultHair,
}

// curls rings the crown with eight rotated ellipses in a single path.
func curls(p *painter, x, y, size float64) {
	for i := 0; i < 8; i++ {
		a := float64(i) / 8 * math.Pi * 2
		cx := x + math.Cos(a)*size*0.7
		cy := y + math.Sin(a)*size*0.5
		p.s.Ellipse(cx, cy, 12, 15, a, 0, fullTurn)
	}
}

func drawHair(p *painter, x, y, size float64) {
	draw := hairStyles[p.cfg.HairStyle]
	if draw == nil {
		return
	}
	hair := string(p.cfg.HairColor)
	p.fill(hair)
	p.stroke(colors.Darken(hair, 30))
	p.s.SetLineWidth(1)

	p.s.BeginPath()
	draw(p, x, y, size)
	p.fillStroke()
}

// Eyebrows

var browHeights = map[avatar.EyebrowStyle]float64{
	avatar.BrowThin:   3,
	avatar.BrowNormal: 5,
	avatar.BrowThick:  8,
	avatar.BrowBushy:  10,
	avatar.BrowArched: 5,
}

func plainBrow(p *painter, x, y, w, h float64) {
	p.s.Rect(x-w/2, y, w, h)
}

var brows = map[avatar.EyebrowStyle]func(p *painter, x, y, w, h float64){
	avatar.BrowThin: func(p *painter, x, y, w, h float64) {
		p.s.Rect(x-w/2, y, w, h*0.5)
	},
	avatar.BrowThick: func(p *painter, x, y, w, h float64) {
		p.s.Rect(x-w/2, y, w, h*1.5)
	},
	avatar.BrowBushy: func(p *painter, x, y, w, h float64) {
		p.ellipse(x, y+h/2, w/2, h)
	},
	avatar.BrowArched: func(p *painter, x, y, w, h float64) {
		p.lowerHalf(x, y+h/2, w/2, h*0.7)
	},
	avatar.BrowNormal: plainBrow,
}

func drawEyebrows(p *painter, x, y, size float64) {
	w := size * 0.8
	h := browHeights[p.cfg.Eyebrows]
	spacing := size * 0.6
	hair := string(p.cfg.HairColor)

	p.fill(colors.Darken(hair, 20))
	p.stroke(colors.Darken(hair, 40))
	p.s.SetLineWidth(1)

	draw := brows[p.cfg.Eyebrows]
	for _, bx := range []float64{x - spacing/2, x + spacing/2} {
		p.s.BeginPath()
		draw(p, bx, y-size*0.3, w, h)
		p.fillStroke()
	}
}

// Eyes

// eyeSizes holds the sclera radii as fractions of the base size.
var eyeSizes = map[avatar.EyeShape][2]float64{
	avatar.EyeNormal: {0.35, 0.25},
	avatar.EyeLarge:  {0.5, 0.35},
	avatar.EyeSmall:  {0.25, 0.15},
	avatar.EyeNarrow: {0.2, 0.15},
	avatar.EyeRound:  {0.4, 0.4},
	avatar.EyeAlmond: {0.35, 0.25},
}

func drawEyes(p *painter, x, y, size float64) {
	f := eyeSizes[p.cfg.EyeShape]
	w, h := size*f[0], size*f[1]
	spacing := size * 0.6
	eye(p, x-spacing/2, y, w, h)
	eye(p, x+spacing/2, y, w, h)
}

func eye(p *painter, x, y, w, h float64) {
	p.fill(colors.White)
	p.stroke(colors.Black)
	p.s.SetLineWidth(1)
	p.s.BeginPath()
	p.ellipse(x, y, w, h)
	p.fillStroke()

	p.fill(string(p.cfg.EyeColor))
	p.s.BeginPath()
	p.ellipse(x, y, w*0.6, h*0.6)
	p.s.Fill()

	p.fill(colors.Black)
	p.s.BeginPath()
	p.ellipse(x, y, w*0.3, h*0.3)
	p.s.Fill()

	p.fill(colors.White)
	p.s.BeginPath()
	p.ellipse(x-w*0.15, y-h*0.15, w*0.1, h*0.1)
	p.s.Fill()
}

// Nose

// noseScales multiplies the base nose radii (0.4 and 0.6 of the size).
var noseScales = map[avatar.NoseShape][2]float64{
	avatar.NoseSmall:  {0.6, 0.8},
	avatar.NoseNormal: {1, 1},
	avatar.NoseLarge:  {1.3, 1.2},
	avatar.NoseWide:   {1.5, 1},
}

func drawNose(p *painter, x, y, size float64) {
	skin := string(p.cfg.SkinTone)
	p.fill(colors.Darken(skin, 10))
	p.stroke(colors.Darken(skin, 30))
	p.s.SetLineWidth(1)

	w, h := size*0.4, size*0.6
	k := noseScales[p.cfg.Nose]

	p.s.BeginPath()
	p.ellipse(x, y, w*k[0], h*k[1])
	p.fillStroke()
}

// Mouth

var mouthWidths = map[avatar.MouthShape]float64{
	avatar.MouthSmall:   0.4,
	avatar.MouthNormal:  0.6,
	avatar.MouthWide:    0.8,
	avatar.MouthSmile:   0.6,
	avatar.MouthFrown:   0.6,
	avatar.MouthNeutral: 0.6,
}

var mouths = map[avatar.MouthShape]func(p *painter, x, y, w, h float64){
	avatar.MouthSmall: func(p *painter, x, y, w, h float64) {
		p.lowerHalf(x, y, w*0.6, h*0.6)
	},
	avatar.MouthWide: func(p *painter, x, y, w, h float64) {
		p.lowerHalf(x, y, w*1.4, h)
	},
	avatar.MouthSmile: func(p *painter, x, y, w, h float64) {
		p.s.Arc(x, y-h*0.5, w, 0, halfTurn)
	},
	avatar.MouthFrown: func(p *painter, x, y, w, h float64) {
		p.s.Arc(x, y+h*0.5, w, halfTurn, fullTurn)
	},
	avatar.MouthNeutral: func(p *painter, x, y, w, _ float64) {
		p.s.Rect(x-w/2, y, w, 2)
	},
	avatar.MouthNormal: func(p *painter, x, y, w, h float64) {
		p.lowerHalf(x, y, w, h)
	},
}

func drawMouth(p *painter, x, y, size float64) {
	p.fill(lipFill)
	p.stroke(lipStroke)
	p.s.SetLineWidth(2)

	w := size * mouthWidths[p.cfg.Mouth]
	h := size * 0.3

	p.s.BeginPath()
	mouths[p.cfg.Mouth](p, x, y, w, h)
	p.fillStroke()
}

// Facial hair

func mustache(p *painter, x, y, s float64) {
	p.ellipse(x, y-s*0.2, s*0.6, s*0.15)
}

var facialHair = map[avatar.FacialHair]drawFunc{
	avatar.FacialHairNone:     nil,
	avatar.FacialHairMustache: mustache,
	avatar.FacialHairBeard: func(p *painter, x, y, s float64) {
		p.ellipse(x, y+s*0.3, s*0.8, s*0.5)
	},
	avatar.FacialHairGoatee: func(p *painter, x, y, s float64) {
		p.ellipse(x, y+s*0.2, s*0.4, s*0.3)
	},
	avatar.FacialHairStubble: stubble,
	avatar.FacialHairFullBeard: func(p *painter, x, y, s float64) {
		mustache(p, x, y, s)
		p.ellipse(x, y+s*0.3, s*0.9, s*0.6)
	},
}

// stubbleDots is the number of 1×1 dots scattered by the stubble variant.
const stubbleDots = 20

func stubble(p *painter, x, y, size float64) {
	p.fill(colors.Darken(string(p.cfg.HairColor), 30))
	for i := 0; i < stubbleDots; i++ {
		sx := x + (p.float64()-0.5)*size
		sy := y + (p.float64()-0.5)*size*0.6
		p.s.FillRect(sx, sy, 1, 1)
	}
}

func drawFacialHair(p *painter, x, y, size float64) {
	draw := facialHair[p.cfg.FacialHair]
	if draw == nil {
		return
	}
	hair := string(p.cfg.HairColor)
	p.fill(colors.Darken(hair, 20))
	p.stroke(colors.Darken(hair, 40))
	p.s.SetLineWidth(1)

	p.s.BeginPath()
	draw(p, x, y, size)
	p.fillStroke()
}

// Accessories

var accessories = map[avatar.Accessory]drawFunc{
	avatar.AccessoryNone: nil,
	avatar.AccessoryGlasses: func(p *painter, x, y, s float64) {
		p.s.SetFillColor(colors.WithAlpha(colors.MustParse(colors.White), 0.3))
		lenses(p, x, y-s*0.1, s*0.8)
	},
	avatar.AccessorySunglasses: func(p *painter, x, y, s float64) {
		p.fill(colors.Black)
		lenses(p, x, y-s*0.1, s*0.8)
	},
	avatar.AccessoryHat: func(p *painter, x, y, s float64) {
		p.fill(hatBrown)
		p.s.BeginPath()
		p.ellipse(x, y-s*0.8, s, s*0.3)
		p.fillStroke()
	},
	avatar.AccessoryCap: func(p *painter, x, y, s float64) {
		y -= s * 0.8
		p.fill(capBlue)
		p.s.BeginPath()
		p.lowerHalf(x, y, s*0.8, s*0.5)
		p.fillStroke()

		p.s.BeginPath()
		p.lowerHalf(x, y+s*0.2, s*0.6, s*0.2)
		p.fillStroke()
	},
	avatar.AccessoryEarrings: func(p *painter, x, y, s float64) {
		p.fill(gold)
		for _, ex := range []float64{x - s*0.8, x + s*0.8} {
			p.s.BeginPath()
			p.circle(ex, y, 5)
			p.fillStroke()
		}
	},
	avatar.AccessoryNecklace: func(p *painter, x, y, s float64) {
		y += s * 0.8
		p.fill(gold)
		p.s.BeginPath()
		p.lowerHalf(x, y, s*0.8, s*0.1)
		p.fillStroke()

		p.s.BeginPath()
		p.circle(x, y+s*0.1, 8)
		p.fillStroke()
	},
	avatar.AccessoryScarf: func(p *painter, x, y, s float64) {
		p.fill(scarfRed)
		p.s.BeginPath()
		p.ellipse(x, y+s*0.6, s, s*0.15)
		p.fillStroke()
	},
}

func lenses(p *painter, x, y, s float64) {
	for _, lx := range []float64{x - s*0.3, x + s*0.3} {
		p.s.BeginPath()
		p.ellipse(lx, y, s*0.25, s*0.2)
		p.fillStroke()
	}
	p.s.BeginPath()
	p.s.MoveTo(x-s*0.05, y)
	p.s.LineTo(x+s*0.05, y)
	p.s.Stroke()
}

func drawAccessories(p *painter, x, y, size float64) {
	draw := accessories[p.cfg.Accessories]
	if draw == nil {
		return
	}
	p.stroke(colors.Black)
	p.s.SetLineWidth(2)
	draw(p, x, y, size)
}

// Clothing

func torso(p *painter, x, y, s float64) {
	p.s.Rect(x-s*0.6, y-s/3, s*1.2, s/2)
}

var clothes = map[avatar.Clothing]drawFunc{
	avatar.ClothingShirt: func(p *painter, x, y, s float64) {
		p.s.Rect(x-s/2, y-s/4, s, s/2)
	},
	avatar.ClothingTShirt: func(p *painter, x, y, s float64) {
		p.s.Rect(x-s/2, y-s/4, s, s/2)
		p.s.Rect(x-s*0.7, y-s/4, s*0.2, s/3)
		p.s.Rect(x+s*0.5, y-s/4, s*0.2, s/3)
	},
	avatar.ClothingSweater: torso,
	avatar.ClothingJacket: func(p *painter, x, y, s float64) {
		torso(p, x, y, s)
		p.s.MoveTo(x-s*0.2, y-s/3)
		p.s.LineTo(x, y-s/2)
		p.s.LineTo(x+s*0.2, y-s/3)
	},
	avatar.ClothingDress: func(p *painter, x, y, s float64) {
		p.ellipse(x, y, s*0.8, s*0.6)
	},
	avatar.ClothingHoodie: func(p *painter, x, y, s float64) {
		torso(p, x, y, s)
		p.s.Arc(x, y-s/2, s*0.4, 0, halfTurn)
	},
}

func drawClothing(p *painter, x, y, size float64) {
	p.fill(p.clothing)
	p.stroke(colors.Darken(p.clothing, 30))
	p.s.SetLineWidth(2)

	p.s.BeginPath()
	clothes[p.cfg.Clothing](p, x, y, size)
	p.fillStroke()
}
