package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/avatarkit/pkg/cache"
)

func TestCacheClear(t *testing.T) {
	isolate(t)
	dir, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, k := range []string{"artifact:a", "artifact:b", "sheet:hair_style:c"} {
		if err := fc.Set(ctx, k, []byte("x"), time.Hour); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := execute(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}
	if _, ok, _ := fc.Get(ctx, "artifact:a"); ok {
		t.Error("entries should be gone after cache clear")
	}
}

func TestCacheClearEmpty(t *testing.T) {
	isolate(t)
	if _, err := execute(t, "cache", "clear"); err != nil {
		t.Errorf("clearing a missing cache should succeed, got %v", err)
	}
}

func TestCachePath(t *testing.T) {
	isolate(t)
	out, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path error: %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "avatarkit") {
		t.Errorf("cache path = %q", out)
	}
}

func TestRenderUsesFileCache(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	args := []string{"render", "-f", "json", "--seed", "3", "-o", dir + "/a.json"}
	if _, err := execute(t, args...); err != nil {
		t.Fatalf("render error: %v", err)
	}

	cdir, _ := cacheDir()
	fc, _ := cache.NewFileCache(cdir)
	n, err := fc.Clear()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("seeded render cached %d entries, want 1", n)
	}
}
