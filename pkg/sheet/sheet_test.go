package sheet

import (
	"bytes"
	"context"
	"image/png"
	"testing"

	"github.com/matzehuels/avatarkit/pkg/avatar"
	"github.com/matzehuels/avatarkit/pkg/errors"
)

func TestRenderLayout(t *testing.T) {
	tests := []struct {
		slot         avatar.Slot
		columns      int
		wantW, wantH int
	}{
		{avatar.SlotFaceShape, 4, 4 * 40, 2 * (40 + labelHeight)}, // 5 variants
		{avatar.SlotNose, 4, 4 * 40, 1 * (40 + labelHeight)},      // 4 variants
		{avatar.SlotNose, 10, 4 * 40, 1 * (40 + labelHeight)},     // columns clamp to variants
		{avatar.SlotHairStyle, 3, 3 * 40, 4 * (40 + labelHeight)}, // 12 variants
	}
	for _, tt := range tests {
		t.Run(tt.slot.Key(), func(t *testing.T) {
			img, err := Render(context.Background(), avatar.Default(), tt.slot, Options{Cell: 40, Columns: tt.columns, Seed: 1})
			if err != nil {
				t.Fatalf("Render() error: %v", err)
			}
			if b := img.Bounds(); b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("bounds = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestRenderDeterministic(t *testing.T) {
	render := func() []byte {
		img, err := Render(context.Background(), avatar.Default(), avatar.SlotFacialHair, Options{Cell: 48, Seed: 5})
		if err != nil {
			t.Fatal(err)
		}
		var buf bytes.Buffer
		if err := Encode(&buf, img); err != nil {
			t.Fatal(err)
		}
		return buf.Bytes()
	}
	a, b := render(), render()
	if !bytes.Equal(a, b) {
		t.Error("seeded sheets differ")
	}
	if _, err := png.Decode(bytes.NewReader(a)); err != nil {
		t.Errorf("png.Decode() error: %v", err)
	}
}

func TestRenderErrors(t *testing.T) {
	bad := avatar.Default()
	bad.Background = "#000001"

	if _, err := Render(context.Background(), bad, avatar.SlotNose, Options{}); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("bad base error = %v", err)
	}
	if _, err := Render(context.Background(), avatar.Default(), avatar.Slot(99), Options{}); !errors.Is(err, errors.ErrCodeInvalidSlot) {
		t.Errorf("bad slot error = %v", err)
	}
	if _, err := Render(context.Background(), avatar.Default(), avatar.SlotNose, Options{Cell: -4}); !errors.Is(err, errors.ErrCodeInvalidSize) {
		t.Errorf("bad cell error = %v", err)
	}
	if _, err := Render(context.Background(), avatar.Default(), avatar.SlotNose, Options{Columns: -1}); !errors.Is(err, errors.ErrCodeInvalidSize) {
		t.Errorf("bad columns error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Render(ctx, avatar.Default(), avatar.SlotNose, Options{Cell: 40}); err == nil {
		t.Error("cancelled context should fail")
	}
}
