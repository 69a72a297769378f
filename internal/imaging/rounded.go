// Package imaging rounds the corners of raster images.
package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var ErrNegativeRadius = errors.New("radius must not be negative")

// EffectiveRadius returns radius, or a quarter of the shorter side when radius is nil.
func EffectiveRadius(bounds image.Rectangle, radius *int) (int, error) {
	if radius == nil {
		return min(bounds.Dx(), bounds.Dy()) / 4, nil
	}
	if *radius < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativeRadius, *radius)
	}
	return *radius, nil
}

// RoundedMask returns a w×h mask that is 255 inside a rounded rectangle
// covering the full bounds and 0 outside. There are no partial values.
func RoundedMask(w, h, r int) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 {
		return mask
	}

	r = min(r, min(w, h)/2)
	if r <= 0 {
		draw.Draw(mask, mask.Bounds(), image.Opaque, image.Point{}, draw.Src)
		return mask
	}

	scanner := rasterx.NewScannerGV(w, h, mask, mask.Bounds())
	filler := rasterx.NewFiller(w, h, scanner)
	filler.SetColor(color.Alpha{A: 0xff})
	rasterx.AddRoundRect(0, 0, float64(w), float64(h), float64(r), float64(r), 0, rasterx.RoundGap, filler)
	filler.Draw()

	// rasterx anti-aliases; snap coverage to fully in or out
	for i, a := range mask.Pix {
		if a > 0x80 {
			mask.Pix[i] = 0xff
		} else {
			mask.Pix[i] = 0
		}
	}

	// Copy the top-left quadrant onto the other three so all four corners match.
	for y := 0; y < h; y++ {
		sy := min(y, h-1-y)
		for x := 0; x < w; x++ {
			sx := min(x, w-1-x)
			mask.Pix[y*mask.Stride+x] = mask.Pix[sy*mask.Stride+sx]
		}
	}

	return mask
}

// Round composites src through a rounded mask onto a transparent canvas.
func Round(src image.Image, radius *int) (*image.NRGBA, error) {
	b := src.Bounds()
	r, err := EffectiveRadius(b, radius)
	if err != nil {
		return nil, err
	}

	w, h := b.Dx(), b.Dy()
	mask := RoundedMask(w, h, r)
	canvas := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.DrawMask(canvas, canvas.Bounds(), src, b.Min, mask, image.Point{}, draw.Src)

	return canvas, nil
}

// MakeRounded reads inputPath, rounds its corners and writes a PNG to outputPath.
// A nil radius derives one from the image size.
func MakeRounded(inputPath, outputPath string, radius *int) error {
	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	defer in.Close()

	src, format, err := image.Decode(in)
	if err != nil {
		log.Printf("Error decoding %s: %v", inputPath, err)
		return fmt.Errorf("failed to decode image: %w", err)
	}
	log.Printf("Rounding %s image %s (%dx%d)", format, inputPath, src.Bounds().Dx(), src.Bounds().Dy())

	rounded, err := Round(src, radius)
	if err != nil {
		return err
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}

	if err := png.Encode(out, rounded); err != nil {
		out.Close()
		return fmt.Errorf("failed to encode image to PNG: %w", err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}
