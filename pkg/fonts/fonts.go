// Package fonts provides the font used for labels on raster output.
//
// The Go Regular typeface ships inside golang.org/x/image, so labels render
// the same on every machine without looking up system fonts.
package fonts

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

// Parsed font (computed once on first access).
var (
	regular     *truetype.Font
	regularErr  error
	regularOnce sync.Once
)

// Regular returns the parsed Go Regular font.
func Regular() (*truetype.Font, error) {
	regularOnce.Do(func() {
		regular, regularErr = truetype.Parse(goregular.TTF)
	})
	return regular, regularErr
}

var (
	facesMu sync.Mutex
	faces   = map[float64]font.Face{}
)

// Face returns a Go Regular face of the given pixel size. Faces are shared
// per size and are not safe for concurrent drawing. If the font cannot be
// parsed, the fixed 7x13 bitmap face is returned instead.
func Face(size float64) font.Face {
	f, err := Regular()
	if err != nil {
		return basicfont.Face7x13
	}
	facesMu.Lock()
	defer facesMu.Unlock()
	if face, ok := faces[size]; ok {
		return face
	}
	face := truetype.NewFace(f, &truetype.Options{Size: size, Hinting: font.HintingFull})
	faces[size] = face
	return face
}
