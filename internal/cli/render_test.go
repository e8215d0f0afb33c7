package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/avatarkit/pkg/avatar"
	"github.com/matzehuels/avatarkit/pkg/errors"
)

func TestApplySets(t *testing.T) {
	cfg, err := applySets(avatar.Default(), []string{"hair_style=afro", " eyeColor = #228b22"})
	if err != nil {
		t.Fatalf("applySets() error: %v", err)
	}
	if cfg.HairStyle != "afro" || cfg.EyeColor != "#228b22" {
		t.Errorf("cfg = %+v", cfg)
	}

	tests := []struct {
		name string
		set  string
		code errors.Code
	}{
		{"missing equals", "hair_style", errors.ErrCodeInvalidInput},
		{"unknown slot", "tail=long", errors.ErrCodeInvalidSlot},
		{"unknown variant", "mouth=grin", errors.ErrCodeInvalidVariant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := applySets(avatar.Default(), []string{tt.set}); !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		input   string
		formats []string
		want    map[string]string
	}{
		{"single explicit", "me.png", "", []string{"png"}, map[string]string{"png": "me.png"}},
		{"single stdout", "-", "", []string{"svg"}, map[string]string{"svg": "-"}},
		{"single default", "", "", []string{"png"}, map[string]string{"png": "avatar.png"}},
		{"from input", "", "cfg/me.toml", []string{"png", "svg"}, map[string]string{"png": "me.png", "svg": "me.svg"}},
		{"strip known ext", "out/a.png", "", []string{"png", "pdf"}, map[string]string{"png": "out/a.png", "pdf": "out/a.pdf"}},
		{"keep unknown ext", "a.v2", "", []string{"png", "json"}, map[string]string{"png": "a.v2.png", "json": "a.v2.json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := outputPaths(tt.output, tt.input, tt.formats)
			if err != nil {
				t.Fatalf("outputPaths() error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("outputPaths() = %v, want %v", got, tt.want)
			}
			for f, p := range tt.want {
				if got[f] != p {
					t.Errorf("path[%s] = %q, want %q", f, got[f], p)
				}
			}
		})
	}

	if _, err := outputPaths("-", "", []string{"png", "svg"}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("several formats to stdout: error = %v", err)
	}
}

func TestRenderCommand(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	base := filepath.Join(dir, "afro")

	_, err := execute(t, "render", "--no-cache", "--set", "hair_style=afro", "-f", "png,svg", "--seed", "5", "--width", "120", "--height", "120", "-o", base)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	png, err := os.ReadFile(base + ".png")
	if err != nil {
		t.Fatalf("png not written: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("png output is not a PNG")
	}
	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatalf("svg not written: %v", err)
	}
	if !bytes.Contains(svg, []byte(`width="120"`)) {
		t.Error("svg should use the requested width")
	}
}

func TestRenderCommandConfigFileToStdout(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "me.yaml")
	if err := os.WriteFile(path, []byte("hair_style: braids\nmouth: smile\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "render", path, "-f", "json", "-o", "-", "--seed", "11")
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	var doc struct {
		Avatar avatar.Config `json:"avatar"`
		Seed   uint64        `json:"seed"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("stdout is not JSON: %v", err)
	}
	if doc.Avatar.HairStyle != "braids" || doc.Avatar.Mouth != "smile" || doc.Seed != 11 {
		t.Errorf("doc = %+v", doc)
	}
	if doc.Avatar.FaceShape != avatar.Default().FaceShape {
		t.Error("slots missing from the file should keep their defaults")
	}
}

func TestRenderCommandSettingsDefaults(t *testing.T) {
	isolate(t)
	settings := writeSettings(t, "[render]\nformats = [\"json\"]\nwidth = 64\nheight = 32\n[cache]\nbackend = \"none\"\n")

	out, err := execute(t, "--config", settings, "render", "-o", "-")
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	var doc struct{ Width, Height int }
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("stdout is not JSON: %v", err)
	}
	if doc.Width != 64 || doc.Height != 32 {
		t.Errorf("size = %dx%d, want 64x32 from settings", doc.Width, doc.Height)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	isolate(t)
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"missing file", []string{"render", "nope.toml"}, errors.ErrCodeFileNotFound},
		{"bad format", []string{"render", "-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"bad color", []string{"render", "--clothing-color", "red"}, errors.ErrCodeInvalidColor},
		{"bad size", []string{"render", "--width", "99999"}, errors.ErrCodeInvalidSize},
		{"bad set", []string{"render", "--set", "eye_shape=square"}, errors.ErrCodeInvalidVariant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}
