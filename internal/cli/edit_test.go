package cli

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/avatarkit/pkg/avatar"
	"github.com/matzehuels/avatarkit/pkg/studio"
)

func newTestEditor(t *testing.T) (editModel, *studio.Controller) {
	t.Helper()
	ctrl, err := studio.New(studio.WithSize(64, 64))
	if err != nil {
		t.Fatal(err)
	}
	m := newEditModel(context.Background(), ctrl, t.TempDir())
	m.now = func() time.Time { return time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC) }
	return m, ctrl
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m editModel, keys ...string) (editModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(editModel)
	}
	return m, cmd
}

func TestEditCyclesVariants(t *testing.T) {
	m, ctrl := newTestEditor(t)

	// face_shape is the first slot; oval is index 1.
	m, _ = press(m, "right")
	if got := ctrl.Config().FaceShape; got != "square" {
		t.Errorf("FaceShape = %q, want square", got)
	}
	m, _ = press(m, "left", "left", "left")
	if got := ctrl.Config().FaceShape; got != "diamond" {
		t.Errorf("FaceShape = %q, want diamond after wrapping", got)
	}

	m, _ = press(m, "down", "down", "right")
	if m.cursor != 2 {
		t.Fatalf("cursor = %d, want 2", m.cursor)
	}
	if got := ctrl.Config().HairStyle; got != "long" {
		t.Errorf("HairStyle = %q, want long", got)
	}
}

func TestEditCursorBounds(t *testing.T) {
	m, _ := newTestEditor(t)
	m, _ = press(m, "up")
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}
	for range avatar.Slots() {
		m, _ = press(m, "j")
	}
	if m.cursor != len(avatar.Slots())-1 {
		t.Errorf("cursor = %d, want last slot", m.cursor)
	}
}

func TestEditRandomizeReset(t *testing.T) {
	m, ctrl := newTestEditor(t)
	m, _ = press(m, "right", "R")
	if ctrl.Config() != avatar.Default() {
		t.Error("R should reset to the default avatar")
	}
	_, _ = press(m, "r")
	if err := ctrl.Config().Validate(); err != nil {
		t.Errorf("randomized avatar invalid: %v", err)
	}
}

func TestEditSavePNG(t *testing.T) {
	m, _ := newTestEditor(t)
	m, _ = press(m, "s")
	want := filepath.Join(m.dir, "avatar-2024-03-01T09-30-00.png")
	if len(m.exported) != 1 || m.exported[0] != want {
		t.Fatalf("exported = %v, want [%s]", m.exported, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("png not written: %v", err)
	}
}

func TestEditQuit(t *testing.T) {
	m, _ := newTestEditor(t)
	m, cmd := press(m, "q")
	if cmd == nil || !m.save {
		t.Error("q should quit and save")
	}
	m, _ = newTestEditor(t)
	m, cmd = press(m, "esc")
	if cmd == nil || m.save {
		t.Error("esc should quit without saving")
	}
}

func TestEditFramePreview(t *testing.T) {
	m, ctrl := newTestEditor(t)
	if _, err := ctrl.Generate(context.Background()); err != nil {
		t.Fatal(err)
	}
	next, _ := m.Update(frameMsg{})
	m = next.(editModel)
	if m.preview == "" {
		t.Fatal("frame should produce a preview")
	}
	if rows := strings.Count(m.preview, "\n") + 1; rows != previewCols/2 {
		t.Errorf("preview rows = %d, want %d", rows, previewCols/2)
	}
	if !strings.Contains(m.View(), "Avatar Editor") {
		t.Error("view should carry the title")
	}
}

func TestHalfBlocks(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{0xff, 0, 0, 0xff})
		}
	}
	out := halfBlocks(img, 4)
	if got := strings.Count(out, "▀"); got != 8 {
		t.Errorf("cells = %d, want 8", got)
	}
}
