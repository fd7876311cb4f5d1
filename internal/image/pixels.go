package image

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/jmylchreest/swatch/internal/colour"
)

const (
	// MaxWidth is the widest image analysed; larger images are downscaled.
	MaxWidth = 1920
	// MaxHeight is the tallest image analysed.
	MaxHeight = 1080
)

// FitWithin scales img down, preserving aspect ratio, until it fits inside
// maxWidth x maxHeight. Images that already fit are returned unchanged.
func FitWithin(img image.Image, maxWidth, maxHeight int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxWidth && h <= maxHeight {
		return img
	}

	scale := min(float64(maxWidth)/float64(w), float64(maxHeight)/float64(h))
	nw := max(1, int(float64(w)*scale))
	nh := max(1, int(float64(h)*scale))

	dst := image.NewNRGBA(image.Rect(0, 0, nw, nh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// ToNRGBA returns img as a zero-origin NRGBA image, converting if needed.
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// ToPixelBuffer flattens img into a row-major pixel buffer with straight
// (non-premultiplied) alpha.
func ToPixelBuffer(img image.Image) colour.PixelBuffer {
	n := ToNRGBA(img)
	w, h := n.Rect.Dx(), n.Rect.Dy()

	pixels := make([]colour.PixelSample, 0, w*h)
	for y := range h {
		row := n.Pix[y*n.Stride : y*n.Stride+w*4]
		for x := 0; x < len(row); x += 4 {
			pixels = append(pixels, colour.PixelSample{
				Colour: colour.RGB{R: row[x], G: row[x+1], B: row[x+2]},
				A:      row[x+3],
			})
		}
	}
	return colour.PixelBuffer{Width: w, Height: h, Pixels: pixels}
}
