// Package colors provides the hex color arithmetic used by the compositor.
//
// [Darken] applies the editor's darkening rule, including its floating-point
// rounding. [Parse] converts hex literals into [color.NRGBA] values for the
// drawing surfaces.
package colors

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/avatarkit/pkg/errors"
)

// Fixed colors shared by several layers.
const (
	White = "#ffffff"
	Black = "#000000"
)

// Darken subtracts round(2.55 × percent) from each channel of a #rrggbb
// color and returns the result as a lowercase #rrggbb literal.
//
// Channels are clamped to [0, 255]; any intermediate value below 1 becomes 0.
// Negative percentages lighten. Input that does not parse as hex is treated
// as black.
func Darken(hex string, percent float64) string {
	num, err := strconv.ParseUint(strings.TrimPrefix(hex, "#"), 16, 32)
	if err != nil {
		num = 0
	}
	// The explicit conversion forces the product to be rounded before the
	// addition so the compiler cannot fuse it into an FMA.
	amt := int(math.Floor(float64(2.55*percent) + 0.5))

	r := clamp(int(num>>16) - amt)
	g := clamp(int(num>>8&0xff) - amt)
	b := clamp(int(num&0xff) - amt)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func clamp(v int) int {
	if v < 255 {
		if v < 1 {
			return 0
		}
		return v
	}
	return 255
}

// Parse converts a #rrggbb literal into an opaque color.
func Parse(hex string) (color.NRGBA, error) {
	if err := errors.ValidateHexColor(hex); err != nil {
		return color.NRGBA{}, err
	}
	c, err := colorful.Hex(strings.ToLower(hex))
	if err != nil {
		return color.NRGBA{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "parse %q", hex)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// MustParse is like [Parse] but panics on malformed input.
// It is intended for package-level palette constants.
func MustParse(hex string) color.NRGBA {
	c, err := Parse(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// WithAlpha returns c with its alpha set from an opacity in [0, 1].
func WithAlpha(c color.NRGBA, opacity float64) color.NRGBA {
	c.A = uint8(math.Round(math.Max(0, math.Min(1, opacity)) * 255))
	return c
}

// Hex encodes c as a lowercase #rrggbb literal, ignoring alpha.
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
