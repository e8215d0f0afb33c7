package sink

import (
	"github.com/matzehuels/avatarkit/pkg/avatar"
	"github.com/matzehuels/avatarkit/pkg/render/surface"
)

// RenderSVG renders cfg as an SVG document.
func RenderSVG(cfg avatar.Config, opts ...Option) ([]byte, error) {
	o := newOptions(opts)
	v, err := surface.NewVector(o.width, o.height)
	if err != nil {
		return nil, err
	}
	if err := o.comp.Render(v, cfg); err != nil {
		return nil, err
	}
	return v.Bytes(), nil
}
