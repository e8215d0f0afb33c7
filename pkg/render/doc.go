// Package render groups the avatar rendering packages.
//
// Rendering is split into three layers:
//
//   - [surface]: a canvas-like drawing API (paths, arcs, ellipses, fills,
//     strokes, gradients) with a raster implementation on gg and a vector
//     implementation on svgo.
//   - [compositor]: paints an [avatar.Config] onto any surface, layer by
//     layer, back to front.
//   - [sink]: turns a configuration into encoded bytes (PNG, SVG, PDF,
//     JSON).
//
// [colors] holds the hex parsing and shading helpers shared by the layers.
//
//	png, err := sink.RenderPNG(cfg, sink.WithSize(400, 400), sink.WithScale(2))
//
// [surface]: github.com/matzehuels/avatarkit/pkg/render/surface
// [compositor]: github.com/matzehuels/avatarkit/pkg/render/compositor
// [sink]: github.com/matzehuels/avatarkit/pkg/render/sink
// [colors]: github.com/matzehuels/avatarkit/pkg/render/colors
// [avatar.Config]: github.com/matzehuels/avatarkit/pkg/avatar#Config
package render
