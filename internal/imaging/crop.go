package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// Region represents a rectangular region within an image.
//
// Coordinates follow the standard image convention:
//   - (X1, Y1) is the top-left corner (inclusive)
//   - (X2, Y2) is the bottom-right corner (exclusive)
//   - Width = X2 - X1, Height = Y2 - Y1
type Region struct {
	X1 int `json:"x1"` // Left edge X coordinate (inclusive)
	Y1 int `json:"y1"` // Top edge Y coordinate (inclusive)
	X2 int `json:"x2"` // Right edge X coordinate (exclusive)
	Y2 int `json:"y2"` // Bottom edge Y coordinate (exclusive)
}

// Rect converts the region to an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

// validate checks that r is non-empty and lies inside bounds.
func (r Region) validate(bounds image.Rectangle) error {
	if r.X1 < bounds.Min.X || r.Y1 < bounds.Min.Y || r.X2 > bounds.Max.X || r.Y2 > bounds.Max.Y {
		return fmt.Errorf("region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			r.X1, r.Y1, r.X2, r.Y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if r.X1 >= r.X2 || r.Y1 >= r.Y2 {
		return fmt.Errorf("invalid region: x1 must be < x2, y1 must be < y2")
	}
	return nil
}

// RegionNames lists the names accepted by NamedRegion.
var RegionNames = []string{
	"top-left", "top-right", "bottom-left", "bottom-right",
	"top-half", "bottom-half", "left-half", "right-half", "center",
}

// NamedRegion resolves a named area of an image with the given bounds.
//
// "center" is the middle 50% in both directions. The halves and quadrants
// split at the integer midpoint, so odd sizes give the extra row or column
// to the right or bottom part.
func NamedRegion(bounds image.Rectangle, name string) (Region, error) {
	w := bounds.Dx()
	h := bounds.Dy()
	midX := w / 2
	midY := h / 2

	var x1, y1, x2, y2 int

	switch name {
	case "top-left":
		x1, y1, x2, y2 = 0, 0, midX, midY
	case "top-right":
		x1, y1, x2, y2 = midX, 0, w, midY
	case "bottom-left":
		x1, y1, x2, y2 = 0, midY, midX, h
	case "bottom-right":
		x1, y1, x2, y2 = midX, midY, w, h
	case "top-half":
		x1, y1, x2, y2 = 0, 0, w, midY
	case "bottom-half":
		x1, y1, x2, y2 = 0, midY, w, h
	case "left-half":
		x1, y1, x2, y2 = 0, 0, midX, h
	case "right-half":
		x1, y1, x2, y2 = midX, 0, w, h
	case "center":
		qW := w / 4
		qH := h / 4
		x1, y1, x2, y2 = qW, qH, w-qW, h-qH
	default:
		return Region{}, fmt.Errorf("unknown region: %s", name)
	}

	min := bounds.Min
	return Region{X1: min.X + x1, Y1: min.Y + y1, X2: min.X + x2, Y2: min.Y + y2}, nil
}

// CropRegion returns a non-premultiplied copy of region, or of the whole
// image when region is nil. The result always has its origin at (0,0).
func CropRegion(img image.Image, region *Region) (*image.NRGBA, error) {
	if region == nil {
		return imaging.Clone(img), nil
	}
	if err := region.validate(img.Bounds()); err != nil {
		return nil, err
	}
	return imaging.Crop(img, region.Rect()), nil
}

// CropResult contains the cropped image data
type CropResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Crop extracts a region as a base64 PNG, optionally scaled.
//
// This shows exactly which pixels a theme or palette call with the same
// region and scale would read.
func Crop(img image.Image, region Region, scale float64) (*CropResult, error) {
	cropped, err := CropRegion(img, &region)
	if err != nil {
		return nil, err
	}
	cropped, err = scaleImage(cropped, scale)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, cropped); err != nil {
		return nil, fmt.Errorf("failed to encode cropped image: %w", err)
	}

	return &CropResult{
		Width:       cropped.Bounds().Dx(),
		Height:      cropped.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// MaxScaledPixels bounds the area of a resized image.
const MaxScaledPixels = 4096 * 4096

// scaleImage resizes img by scale with Lanczos resampling. A scale of 0 or
// 1 returns img unchanged. Results larger than MaxScaledPixels are rejected.
func scaleImage(img *image.NRGBA, scale float64) (*image.NRGBA, error) {
	if scale == 0 || scale == 1 {
		return img, nil
	}
	if scale < 0 {
		return nil, fmt.Errorf("scale must be positive, got %g", scale)
	}
	fw := float64(img.Bounds().Dx()) * scale
	fh := float64(img.Bounds().Dy()) * scale
	if fw*fh > MaxScaledPixels {
		return nil, fmt.Errorf("scale %g would produce %.0fx%.0f pixels, limit is %d", scale, fw, fh, MaxScaledPixels)
	}
	w := int(fw)
	h := int(fh)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return imaging.Resize(img, w, h, imaging.Lanczos), nil
}
