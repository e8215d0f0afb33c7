package studio

import (
	"bytes"
	"context"
	"image/png"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/avatarkit/pkg/avatar"
	"github.com/matzehuels/avatarkit/pkg/errors"
	"github.com/matzehuels/avatarkit/pkg/observability"
	"github.com/matzehuels/avatarkit/pkg/render/compositor"
)

func newController(t *testing.T, opts ...Option) *Controller {
	t.Helper()
	opts = append([]Option{WithSize(100, 100)}, opts...)
	c, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return c
}

func TestNewDefaults(t *testing.T) {
	c := newController(t)
	if c.Config() != avatar.Default() {
		t.Error("new controller should hold the default avatar")
	}
	if c.Frame() != nil {
		t.Error("Frame() should be nil before Generate")
	}
}

func TestNewRejects(t *testing.T) {
	bad := avatar.Default()
	bad.EyeColor = "#000000"
	tests := []struct {
		name string
		opt  Option
		code errors.Code
	}{
		{"size", WithSize(0, 10), errors.ErrCodeInvalidSize},
		{"scale", WithScale(0), errors.ErrCodeInvalidSize},
		{"config", WithConfig(bad), errors.ErrCodeInvalidConfig},
		{"clothing", WithCompositor(compositor.New(compositor.WithClothingColor("red"))), errors.ErrCodeInvalidColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opt); !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}

	if _, err := New(WithSize(1024, 1024), WithScale(8)); !errors.Is(err, errors.ErrCodeInvalidSize) {
		t.Errorf("oversized frame error = %v, want INVALID_SIZE", err)
	}
}

func TestSet(t *testing.T) {
	c := newController(t)
	if err := c.Set(avatar.SlotHairStyle, "mohawk"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if got := c.Config().HairStyle; got != avatar.HairMohawk {
		t.Errorf("HairStyle = %q", got)
	}

	before := c.Config()
	if err := c.Set(avatar.SlotHairStyle, "mullet"); !errors.Is(err, errors.ErrCodeInvalidVariant) {
		t.Errorf("error = %v, want INVALID_VARIANT", err)
	}
	if c.Config() != before {
		t.Error("failed Set should leave the config unchanged")
	}
}

func TestConfigIsACopy(t *testing.T) {
	c := newController(t)
	cfg := c.Config()
	cfg.Mouth = avatar.MouthFrown
	if c.Config().Mouth == avatar.MouthFrown {
		t.Error("mutating the returned config should not affect the controller")
	}
}

func TestRandomizeAndReset(t *testing.T) {
	c := newController(t, WithRand(rand.New(rand.NewPCG(1, 2))))
	cfg := c.Randomize()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("randomized config invalid: %v", err)
	}
	if c.Config() != cfg {
		t.Error("Randomize should store the returned config")
	}

	c2 := newController(t, WithRand(rand.New(rand.NewPCG(1, 2))))
	if c2.Randomize() != cfg {
		t.Error("same source should sample the same avatar")
	}

	c.Reset()
	if c.Config() != avatar.Default() {
		t.Error("Reset should restore the default avatar")
	}
}

func TestLoad(t *testing.T) {
	c := newController(t)
	bad := avatar.Default()
	bad.FaceShape = "triangle"
	if err := c.Load(bad); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Load(bad) error = %v", err)
	}
	if c.Config() != avatar.Default() {
		t.Error("failed Load should keep the current config")
	}
}

func TestOnChange(t *testing.T) {
	c := newController(t)
	var n atomic.Int32
	c.OnChange(func() { n.Add(1) })

	_ = c.Set(avatar.SlotNose, "wide")
	_ = c.Set(avatar.SlotNose, "bogus") // rejected, no notification
	c.Randomize()
	c.Reset()
	if got := n.Load(); got != 3 {
		t.Errorf("notifications = %d, want 3", got)
	}
}

func TestGenerate(t *testing.T) {
	c := newController(t, WithScale(2))
	ok, err := c.Generate(context.Background())
	if err != nil || !ok {
		t.Fatalf("Generate() = %v, %v", ok, err)
	}
	img := c.Frame()
	if img == nil {
		t.Fatal("Frame() should be set after Generate")
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 200 {
		t.Errorf("frame bounds = %v, want 200x200", b)
	}
}

func TestGenerateDropsOverlappingPasses(t *testing.T) {
	observability.Reset()
	defer observability.Reset()
	hooks := &dropCounter{}
	observability.SetRenderHooks(hooks)

	c := newController(t)
	c.generating.Store(true) // a pass is in flight
	ok, err := c.Generate(context.Background())
	if ok || err != nil {
		t.Errorf("Generate() during a pass = %v, %v; want false, nil", ok, err)
	}
	if hooks.dropped.Load() != 1 {
		t.Error("dropped frame should be reported")
	}
	c.generating.Store(false)

	// Concurrent callers never overlap; at least one succeeds.
	var wg sync.WaitGroup
	var painted atomic.Int32
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := c.Generate(context.Background()); ok {
				painted.Add(1)
			}
		}()
	}
	wg.Wait()
	if painted.Load() == 0 {
		t.Error("at least one concurrent Generate should paint")
	}
}

func TestExport(t *testing.T) {
	c := newController(t)
	var buf bytes.Buffer
	if err := c.Export(context.Background(), &buf); err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 100 {
		t.Errorf("exported width = %d", b.Dx())
	}
	if c.Frame() == nil {
		t.Error("Export should have painted a frame")
	}
}

func TestExportBusy(t *testing.T) {
	c := newController(t)
	c.generating.Store(true)
	defer c.generating.Store(false)
	if err := c.Export(context.Background(), &bytes.Buffer{}); !errors.Is(err, errors.ErrCodeBusy) {
		t.Errorf("error = %v, want RENDER_BUSY", err)
	}
}

func TestExportFilename(t *testing.T) {
	ts := time.Date(2024, 3, 1, 10, 30, 5, 0, time.FixedZone("CET", 3600))
	if got, want := ExportFilename(ts), "avatar-2024-03-01T09-30-05.png"; got != want {
		t.Errorf("ExportFilename() = %q, want %q", got, want)
	}
}

func TestFramesCoalesce(t *testing.T) {
	c := newController(t)
	f := NewFrames(c)

	var passes atomic.Int32
	done := make(chan struct{}, 16)
	f.OnPaint(func(ok bool, err error) {
		if ok && err == nil {
			passes.Add(1)
		}
		done <- struct{}{}
	})

	// Queue a burst before the loop starts.
	for _, v := range []string{"short", "long", "afro", "wavy"} {
		if err := c.Set(avatar.SlotHairStyle, v); err != nil {
			t.Fatal(err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- f.Run(ctx, time.Millisecond) }()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("no frame painted")
	}
	time.Sleep(20 * time.Millisecond)
	cancel()
	if err := <-errc; err != context.Canceled {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
	if got := passes.Load(); got != 1 {
		t.Errorf("passes = %d, want 1 for one burst", got)
	}
	if c.Frame() == nil {
		t.Error("frame should be painted")
	}
}

func TestFramesRequestNeverBlocks(t *testing.T) {
	f := NewFrames(newController(t))
	for range 100 {
		f.Request()
	}
	if len(f.pending) != 1 {
		t.Errorf("pending = %d, want 1", len(f.pending))
	}
}

type dropCounter struct {
	observability.NoopRenderHooks
	dropped atomic.Int32
}

func (d *dropCounter) OnFrameDropped(context.Context) { d.dropped.Add(1) }
