package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/avatarkit/pkg/avatar"
	"github.com/matzehuels/avatarkit/pkg/errors"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestParseFormats(t *testing.T) {
	got, err := ParseFormats(" PNG, svg,,png ")
	if err != nil {
		t.Fatalf("ParseFormats() error: %v", err)
	}
	if len(got) != 2 || got[0] != "png" || got[1] != "svg" {
		t.Errorf("ParseFormats() = %v, want [png svg]", got)
	}
	if _, err := ParseFormats("png,gif"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ParseFormats(gif) error = %v", err)
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{Config: avatar.Default()}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}
	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("size = %dx%d", opts.Width, opts.Height)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v", opts.Scale)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatPNG {
		t.Errorf("Formats = %v", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestValidateAndSetDefaultsErrors(t *testing.T) {
	bad := avatar.Default()
	bad.Nose = "roman"

	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"negative width", Options{Config: avatar.Default(), Width: -1}, errors.ErrCodeInvalidSize},
		{"bad scale", Options{Config: avatar.Default(), Scale: -2}, errors.ErrCodeInvalidSize},
		{"oversized device", Options{Config: avatar.Default(), Width: 4096, Height: 4096, Scale: 8}, errors.ErrCodeInvalidSize},
		{"oversized height", Options{Config: avatar.Default(), Width: 100, Height: 2049, Scale: 2}, errors.ErrCodeInvalidSize},
		{"bad format", Options{Config: avatar.Default(), Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"bad clothing", Options{Config: avatar.Default(), ClothingColor: "blue"}, errors.ErrCodeInvalidColor},
		{"bad config", Options{Config: bad}, errors.ErrCodeInvalidConfig},
		{"zero config", Options{}, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestArtifactKeyOptsIgnoresScaleForVector(t *testing.T) {
	opts := Options{Scale: 3}
	if got := opts.ArtifactKeyOpts(FormatSVG).Scale; got != 0 {
		t.Errorf("svg key scale = %v, want 0", got)
	}
	if got := opts.ArtifactKeyOpts(FormatPNG).Scale; got != 3 {
		t.Errorf("png key scale = %v, want 3", got)
	}
}

func TestExecuteAllFormats(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Config:  avatar.Default(),
		Formats: []string{FormatPNG, FormatSVG, FormatPDF, FormatJSON},
		Seed:    9,
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(res.Artifacts) != 4 {
		t.Fatalf("Artifacts = %d, want 4", len(res.Artifacts))
	}
	if !bytes.HasPrefix(res.Artifacts[FormatPNG], []byte("\x89PNG")) {
		t.Error("png artifact should be a PNG")
	}
	if !bytes.HasPrefix(res.Artifacts[FormatPDF], []byte("%PDF-")) {
		t.Error("pdf artifact should be a PDF")
	}
	if !json.Valid(res.Artifacts[FormatJSON]) {
		t.Error("json artifact should be valid JSON")
	}
	if res.Fingerprint != avatar.Default().Fingerprint() {
		t.Error("Fingerprint mismatch")
	}
	if res.Seed != 9 {
		t.Errorf("Seed = %d, want 9", res.Seed)
	}
	if res.CacheHit {
		t.Error("NullCache should never hit")
	}
}

func TestExecuteRejectsInvalid(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	cfg := avatar.Default()
	cfg.Clothing = "kilt"
	if _, err := r.Execute(context.Background(), Options{Config: cfg}); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

func TestExecuteCachesSeededRuns(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	opts := Options{Config: avatar.Default(), Formats: []string{FormatPNG, FormatSVG}, Seed: 3}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheHit || c.sets != 2 {
		t.Fatalf("first run: hit=%v sets=%d", first.CacheHit, c.sets)
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheHit {
		t.Error("second run should be served from the cache")
	}
	if !bytes.Equal(first.Artifacts[FormatPNG], second.Artifacts[FormatPNG]) {
		t.Error("cached PNG differs")
	}

	opts.Refresh = true
	third, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheHit {
		t.Error("Refresh should bypass the cache")
	}
}

func TestExecuteUnseededSkipsCache(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	res, err := r.Execute(context.Background(), Options{Config: avatar.Default(), Formats: []string{FormatJSON}})
	if err != nil {
		t.Fatal(err)
	}
	if c.sets != 0 || c.gets != 0 {
		t.Errorf("unseeded run touched the cache: gets=%d sets=%d", c.gets, c.sets)
	}
	if res.Seed == 0 {
		t.Error("unseeded run should report the seed it used")
	}

	// The reported seed reproduces the run.
	again, err := r.Execute(context.Background(), Options{Config: avatar.Default(), Formats: []string{FormatJSON}, Seed: res.Seed})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(res.Artifacts[FormatJSON], again.Artifacts[FormatJSON]) {
		t.Error("reported seed should reproduce the artifact")
	}
}

func TestExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(ctx, Options{Config: avatar.Default(), Seed: 1}); err == nil {
		t.Error("cancelled context should fail")
	}
}

type memCache struct {
	mu         sync.Mutex
	data       map[string][]byte
	gets, sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.data[key] = data
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }
