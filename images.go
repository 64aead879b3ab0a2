package pagemill

import (
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

const jpegQuality = 80

// Thumbnails walks srcDir, downscales every image wider than maxWidth, and
// writes JPEG copies into dstDir under the same relative paths (extension
// swapped to .jpg). Listing pages link the thumbnails instead of the
// originals.
func Thumbnails(srcDir, dstDir string, maxWidth int) error {
	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isImage(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		out := filepath.Join(dstDir, strings.TrimSuffix(rel, filepath.Ext(rel))+".jpg")
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return err
		}
		return thumbnailFile(path, out, maxWidth)
	})
	if err != nil {
		return fmt.Errorf("pagemill: thumbnails: %w", err)
	}
	return nil
}

func isImage(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png", ".gif":
		return true
	}
	return false
}

func thumbnailFile(src, dst string, maxWidth int) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := thumbnail(in, out, maxWidth); err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}
	return nil
}

// thumbnail decodes an image from src, downscales it to maxWidth if wider,
// and encodes it as JPEG to dst.
func thumbnail(src io.Reader, dst io.Writer, maxWidth int) error {
	img, _, err := image.Decode(src)
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxWidth {
		newH := h * maxWidth / w
		scaled := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, bounds, draw.Over, nil)
		img = scaled
	}

	if err := jpeg.Encode(dst, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return fmt.Errorf("encode jpeg: %w", err)
	}
	return nil
}
