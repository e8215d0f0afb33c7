// Package pkg provides the core libraries for avatarkit, a layered 2D avatar
// compositor.
//
// # Overview
//
// An avatar is a [avatar.Config]: one value per feature slot (face shape,
// skin tone, hair, eyes, eyebrows, nose, mouth, facial hair, accessories,
// clothing, background), each drawn from a fixed catalog. The libraries turn
// a configuration into pixels:
//
//	avatar.Config
//	     ↓
//	[render/compositor] paints the layer stack onto a surface
//	     ↓
//	[render/surface] raster (gg) or vector (svgo) canvas
//	     ↓
//	[render/sink] PNG, SVG, PDF or JSON bytes
//
// [pipeline] wraps the sinks with validation, concurrency and caching and is
// shared by the CLI and the HTTP server. [studio] is the stateful editing
// model behind the interactive editor.
//
// # Quick Start
//
//	cfg, _ := avatar.Default().With(avatar.SlotHairStyle, "afro")
//	png, err := sink.RenderPNG(cfg, sink.WithSize(256, 256), sink.WithSeed(42))
//
// Or through the pipeline, with caching:
//
//	r := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	res, err := r.Execute(ctx, pipeline.Options{
//	    Config:  cfg,
//	    Formats: []string{"png", "svg"},
//	    Seed:    42,
//	})
//
// # Main Packages
//
// [avatar] - Slots, the variant catalog, configurations and random sampling.
//
// [render/colors] - Hex parsing and the darken/lighten helpers used for
// shading.
//
// [render/surface] - The canvas-like drawing surface and its raster and
// vector implementations.
//
// [render/compositor] - The layer stack and per-variant draw functions.
//
// [render/sink] - Encoders for every output format.
//
// [pipeline] - Multi-format rendering with artifact caching.
//
// [studio] - Editing controller with single-flight frame generation and a
// coalescing frame scheduler.
//
// [sheet] - Contact sheets showing every variant of one slot.
//
// [io] - Reading and writing configurations as JSON, TOML or YAML.
//
// ## Infrastructure
//
// [cache] - Artifact caches (file, redis, null) and cache key derivation.
//
// [session] - Avatar sessions for the HTTP server (memory, redis) and the
// CLI's current avatar (file).
//
// [observability] - Hooks for render, cache and HTTP events.
//
// [errors] - Coded errors and input validation.
//
// [fonts] - The embedded label font.
//
// [buildinfo] - Version information set at build time.
//
// [avatar]: https://pkg.go.dev/github.com/matzehuels/avatarkit/pkg/avatar
// [render/colors]: https://pkg.go.dev/github.com/matzehuels/avatarkit/pkg/render/colors
// [render/surface]: https://pkg.go.dev/github.com/matzehuels/avatarkit/pkg/render/surface
// [render/compositor]: https://pkg.go.dev/github.com/matzehuels/avatarkit/pkg/render/compositor
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/avatarkit/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/avatarkit/pkg/pipeline
// [studio]: https://pkg.go.dev/github.com/matzehuels/avatarkit/pkg/studio
// [sheet]: https://pkg.go.dev/github.com/matzehuels/avatarkit/pkg/sheet
// [io]: https://pkg.go.dev/github.com/matzehuels/avatarkit/pkg/io
// [cache]: https://pkg.go.dev/github.com/matzehuels/avatarkit/pkg/cache
// [session]: https://pkg.go.dev/github.com/matzehuels/avatarkit/pkg/session
// [observability]: https://pkg.go.dev/github.com/matzehuels/avatarkit/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/avatarkit/pkg/errors
// [fonts]: https://pkg.go.dev/github.com/matzehuels/avatarkit/pkg/fonts
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/avatarkit/pkg/buildinfo
package pkg
