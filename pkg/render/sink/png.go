package sink

import (
	"bytes"
	"image"

	"github.com/matzehuels/avatarkit/pkg/avatar"
	"github.com/matzehuels/avatarkit/pkg/render/surface"
)

// Raster paints cfg onto a new raster surface and returns it.
func Raster(cfg avatar.Config, opts ...Option) (*surface.Raster, error) {
	o := newOptions(opts)
	r, err := surface.NewRaster(o.width, o.height, o.scale)
	if err != nil {
		return nil, err
	}
	if err := o.comp.Render(r, cfg); err != nil {
		return nil, err
	}
	return r, nil
}

// RenderImage renders cfg and returns the painted image.
func RenderImage(cfg avatar.Config, opts ...Option) (image.Image, error) {
	r, err := Raster(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return r.Image(), nil
}

// RenderPNG renders cfg as a PNG image.
func RenderPNG(cfg avatar.Config, opts ...Option) ([]byte, error) {
	r, err := Raster(cfg, opts...)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
