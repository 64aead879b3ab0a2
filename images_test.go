package pagemill

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestThumbnails(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	f, err := os.Create(filepath.Join(src, "wide.png"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 1200, 600))); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	if err := Thumbnails(src, dst, 800); err != nil {
		t.Fatalf("Thumbnails failed: %v", err)
	}

	out, err := os.Open(filepath.Join(dst, "wide.jpg"))
	if err != nil {
		t.Fatalf("thumbnail not written: %v", err)
	}
	defer out.Close()

	cfg, _, err := image.DecodeConfig(out)
	if err != nil {
		t.Fatalf("decode thumbnail: %v", err)
	}
	if cfg.Width != 800 || cfg.Height != 400 {
		t.Errorf("thumbnail = %dx%d, want 800x400", cfg.Width, cfg.Height)
	}
}

func TestThumbnailsSkipsNarrow(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	f, err := os.Create(filepath.Join(src, "small.png"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 100, 50))); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	if err := Thumbnails(src, dst, 800); err != nil {
		t.Fatalf("Thumbnails failed: %v", err)
	}

	out, err := os.Open(filepath.Join(dst, "small.jpg"))
	if err != nil {
		t.Fatalf("thumbnail not written: %v", err)
	}
	defer out.Close()

	cfg, _, err := image.DecodeConfig(out)
	if err != nil {
		t.Fatalf("decode thumbnail: %v", err)
	}
	if cfg.Width != 100 || cfg.Height != 50 {
		t.Errorf("narrow image resized to %dx%d, want untouched 100x50", cfg.Width, cfg.Height)
	}
}
