// Package image flattens, encodes and writes rendered frames, and keeps the
// output manifest for a directory of generated images.
package image

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/webp"
	"golang.org/x/image/draw"
)

// Format is an output encoding.
type Format string

const (
	JPEG Format = "jpeg"
	PNG  Format = "png"
	WebP Format = "webp"
)

// ParseFormat maps a config value ("jpg", "jpeg", "png", "webp") to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "jpg", "jpeg", "":
		return JPEG, nil
	case "png":
		return PNG, nil
	case "webp":
		return WebP, nil
	}
	return "", fmt.Errorf("unsupported image format %q", s)
}

// Ext returns the file extension without the dot.
func (f Format) Ext() string {
	switch f {
	case PNG:
		return "png"
	case WebP:
		return "webp"
	default:
		return "jpg"
	}
}

// FileName returns the two-digit per-hour file name, e.g. "07.jpg".
func FileName(hour int, f Format) string {
	return fmt.Sprintf("%02d.%s", hour, f.Ext())
}

// OutputPath returns {dir}/{HH}.{ext}.
func OutputPath(dir string, hour int, f Format) string {
	return filepath.Join(dir, FileName(hour, f))
}

// Flatten composites img over opaque black and returns an image with no
// transparency left.
func Flatten(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(b)
	draw.Copy(dst, b.Min, image.Black, b, draw.Src, nil)
	draw.Draw(dst, b, img, b.Min, draw.Over)
	return dst
}

// Fit scales img to w×h, cropping from the centre to keep the aspect ratio.
// A zero size returns img unchanged.
func Fit(img image.Image, w, h int) image.Image {
	if w <= 0 || h <= 0 {
		return img
	}
	if b := img.Bounds(); b.Dx() == w && b.Dy() == h {
		return img
	}
	return imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos)
}

// Open decodes the image at path, honouring EXIF orientation.
func Open(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("opening image %s: %w", path, err)
	}
	return img, nil
}

// Encode flattens img and writes it to w in format f. Quality applies to
// JPEG and WebP.
func Encode(w io.Writer, img image.Image, f Format, quality int) error {
	flat := Flatten(img)
	switch f {
	case WebP:
		if err := webp.Encode(w, flat, webp.Options{Quality: quality}); err != nil {
			return fmt.Errorf("encoding webp: %w", err)
		}
	case PNG:
		if err := png.Encode(w, flat); err != nil {
			return fmt.Errorf("encoding png: %w", err)
		}
	default:
		if err := imaging.Encode(w, flat, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
			return fmt.Errorf("encoding jpeg: %w", err)
		}
	}
	return nil
}

// WriteFile encodes img to path, creating parent directories.
func WriteFile(path string, img image.Image, f Format, quality int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	bw := bufio.NewWriter(out)
	if err := Encode(bw, img, f, quality); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return out.Close()
}
