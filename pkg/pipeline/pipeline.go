// Package pipeline renders avatar configurations to output artifacts.
//
// This package is the single render entry point shared by the CLI and the
// HTTP server, so both apply the same defaults, validation and caching.
//
// # Usage
//
// Create a Runner and execute:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Config:  cfg,
//	    Formats: []string{"png", "svg"},
//	    Seed:    42,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts["png"]
//
// Formats are rendered concurrently. Every format of one run shares the same
// seed, so a PNG and an SVG of the same run show the same clothing color and
// the same stubble.
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/avatarkit/pkg/avatar"
	"github.com/matzehuels/avatarkit/pkg/cache"
	"github.com/matzehuels/avatarkit/pkg/errors"
	"github.com/matzehuels/avatarkit/pkg/render/compositor"
	"github.com/matzehuels/avatarkit/pkg/render/surface"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the default surface width in pixels.
	DefaultWidth = compositor.DefaultWidth

	// DefaultHeight is the default surface height in pixels.
	DefaultHeight = compositor.DefaultHeight

	// DefaultScale is the default raster scale factor.
	DefaultScale = 1.0
)

// Format constants for output formats.
const (
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatSVG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ContentTypes maps formats to their MIME types.
var ContentTypes = map[string]string{
	FormatPNG:  "image/png",
	FormatSVG:  "image/svg+xml",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (must be one of: png, svg, pdf, json)", format)
	}
	return nil
}

// ParseFormats splits a comma-separated list and validates each entry.
func ParseFormats(s string) ([]string, error) {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out, nil
}

// =============================================================================
// Options
// =============================================================================

// Options contains everything that determines a render.
type Options struct {
	Config  avatar.Config `json:"avatar"`
	Width   int           `json:"width,omitempty"`
	Height  int           `json:"height,omitempty"`
	Scale   float64       `json:"scale,omitempty"`
	Formats []string      `json:"formats,omitempty"`

	// Seed makes the render deterministic. Zero picks a fresh seed per run,
	// reported in Result.Seed, and disables caching.
	Seed uint64 `json:"seed,omitempty"`

	// ClothingColor pins the clothing color instead of sampling it.
	ClothingColor string `json:"clothing_color,omitempty"`

	// Refresh bypasses cached artifacts (they are still rewritten).
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults applies defaults and validates every field.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPNG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	if err := errors.ValidateSize(o.Width, o.Height); err != nil {
		return err
	}
	if err := errors.ValidateScale(o.Scale); err != nil {
		return err
	}
	if err := errors.ValidateSize(surface.DeviceSize(o.Width, o.Height, o.Scale)); err != nil {
		return err
	}
	for _, f := range o.Formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	if o.ClothingColor != "" {
		if err := errors.ValidateHexColor(o.ClothingColor); err != nil {
			return err
		}
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// Cacheable reports whether the output is a pure function of the options.
func (o *Options) Cacheable() bool {
	return o.Seed != 0
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:        format,
		Width:         o.Width,
		Height:        o.Height,
		Seed:          o.Seed,
		ClothingColor: o.ClothingColor,
	}
	// Scale only affects raster output.
	if format == FormatPNG || format == FormatPDF {
		opts.Scale = o.Scale
	}
	return opts
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Config is the rendered configuration.
	Config avatar.Config

	// Fingerprint is Config's content hash.
	Fingerprint string

	// Seed is the seed every format was rendered with.
	Seed uint64

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit is true when every artifact came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RenderTime time.Duration
	Bytes      int
	CacheHits  int
}
