package pipeline

import (
	"github.com/matzehuels/avatarkit/pkg/avatar"
	"github.com/matzehuels/avatarkit/pkg/errors"
	"github.com/matzehuels/avatarkit/pkg/render/compositor"
	"github.com/matzehuels/avatarkit/pkg/render/sink"
)

var renderers = map[string]func(avatar.Config, ...sink.Option) ([]byte, error){
	FormatPNG:  sink.RenderPNG,
	FormatSVG:  sink.RenderSVG,
	FormatPDF:  sink.RenderPDF,
	FormatJSON: sink.RenderJSON,
}

// Render produces one format. opts must already be validated and carry a
// non-zero seed.
func Render(format string, opts Options) ([]byte, error) {
	render, ok := renderers[format]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
	}
	comp := compositor.New(
		compositor.WithSeed(opts.Seed),
		compositor.WithClothingColor(opts.ClothingColor),
	)
	return render(opts.Config,
		sink.WithSize(opts.Width, opts.Height),
		sink.WithScale(opts.Scale),
		sink.WithSeed(opts.Seed),
		sink.WithCompositor(comp),
	)
}
