package theme

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultTheme(t *testing.T) {
	th, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if th.SquarePx != 64 {
		t.Fatalf("expected square_px 64, got %d", th.SquarePx)
	}
	if !th.DrawLabels {
		t.Fatal("expected labels enabled by default")
	}
}

func TestOverrideDir(t *testing.T) {
	dir := t.TempDir()
	override := []byte("square_px: 32\ndark_square: \"#112233\"\n")
	if err := os.WriteFile(filepath.Join(dir, "theme.yaml"), override, 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}

	th, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if th.SquarePx != 32 {
		t.Fatalf("override square_px not applied, got %d", th.SquarePx)
	}
	if th.DarkSquare != "#112233" {
		t.Fatalf("override dark_square not applied, got %q", th.DarkSquare)
	}
	// Untouched keys keep their embedded values.
	if th.LightSquare != "#f0d9b5" {
		t.Fatalf("unexpected light_square %q", th.LightSquare)
	}
}

func TestOverrideRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "theme.yaml"), []byte("square_px: -1\n"), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("expected validation error for negative square size")
	}
}

func TestParseHex(t *testing.T) {
	got, err := ParseHex("#f0d9b5")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != (color.RGBA{R: 0xf0, G: 0xd9, B: 0xb5, A: 0xff}) {
		t.Fatalf("unexpected color %+v", got)
	}

	got, err = ParseHex("#3a994cb4")
	if err != nil {
		t.Fatalf("parse with alpha: %v", err)
	}
	if got.A != 0xb4 {
		t.Fatalf("expected alpha b4, got %02x", got.A)
	}

	for _, bad := range []string{"f0d9b5", "#12345", "#zzzzzz", ""} {
		if _, err := ParseHex(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
