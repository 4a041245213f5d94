package imaging

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
)

// BufferOptions selects which pixels end up in a Buffer.
type BufferOptions struct {
	// Region restricts the buffer to part of the image. Nil means the whole image.
	Region *Region

	// Scale resizes the cropped area before extraction (Lanczos).
	// 0 and 1 leave it unchanged.
	Scale float64

	// Denoise applies a median filter of this radius before extraction.
	// JPEG thumbnails carry per-pixel noise that splits one visual colour
	// into many exact RGB values; a small radius (1-2) merges them.
	// 0 disables the filter. At most MaxDenoiseRadius.
	Denoise float64
}

// MaxDenoiseRadius is the largest median radius PixelBuffer accepts.
const MaxDenoiseRadius = 10

// Buffer is a flat RGBA8888 pixel block, row-major, with no row padding.
// Alpha is straight (not premultiplied).
type Buffer struct {
	Pix    []byte `json:"-"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// PixelBuffer extracts the pixels of img described by opts.
//
// Parameters:
//   - img: The decoded source image.
//   - opts: Region, scale and denoise settings.
//
// Returns:
//   - *Buffer: len(Pix) == 4*Width*Height.
//   - error: Non-nil if the region is invalid or the scale is negative.
func PixelBuffer(img image.Image, opts BufferOptions) (*Buffer, error) {
	if opts.Denoise < 0 || opts.Denoise > MaxDenoiseRadius {
		return nil, fmt.Errorf("denoise radius must be between 0 and %d, got %g", MaxDenoiseRadius, opts.Denoise)
	}

	nrgba, err := CropRegion(img, opts.Region)
	if err != nil {
		return nil, err
	}
	nrgba, err = scaleImage(nrgba, opts.Scale)
	if err != nil {
		return nil, err
	}
	if opts.Denoise > 0 {
		nrgba = medianRGB(nrgba, opts.Denoise)
	}

	b := nrgba.Bounds()
	return &Buffer{Pix: nrgba.Pix, Width: b.Dx(), Height: b.Dy()}, nil
}

// medianRGB median-filters the colour channels of img and keeps its alpha.
// bild works on premultiplied RGBA, so the filter runs on an opaque copy;
// otherwise transparent pixels would lose their colour.
func medianRGB(img *image.NRGBA, radius float64) *image.NRGBA {
	opaque := imaging.Clone(img)
	for i := 3; i < len(opaque.Pix); i += 4 {
		opaque.Pix[i] = 255
	}
	out := imaging.Clone(effect.Median(opaque, radius))
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = img.Pix[i]
	}
	return out
}
