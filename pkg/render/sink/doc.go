// Package sink renders avatar configurations into output formats.
//
// # Overview
//
// A "sink" runs the compositor against a surface and encodes the result.
// This package provides renderers for:
//
//   - PNG: raster output via [surface.Raster]
//   - SVG: vector output via [surface.Vector]
//   - PDF: a single page sized to the avatar with the PNG embedded
//   - JSON: the configuration document with catalog metadata
//
// Basic usage:
//
//	png, err := sink.RenderPNG(cfg,
//	    sink.WithSize(400, 400),
//	    sink.WithScale(2),
//	    sink.WithCompositor(compositor.New(compositor.WithSeed(42))),
//	)
//
// Every sink validates the configuration before drawing; an invalid avatar
// returns the INVALID_CONFIG error from [avatar.Config.Validate].
//
// [surface.Raster]: github.com/matzehuels/avatarkit/pkg/render/surface.Raster
// [surface.Vector]: github.com/matzehuels/avatarkit/pkg/render/surface.Vector
// [avatar.Config.Validate]: github.com/matzehuels/avatarkit/pkg/avatar.Config.Validate
package sink
