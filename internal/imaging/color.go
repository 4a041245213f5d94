package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/EdlinOrg/prominentcolor"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/image-theme-mcp/internal/palette"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// RGBAColor represents an RGBA color with 8-bit components including alpha.
type RGBAColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in multiple representations.
type ColorResult struct {
	Hex        palette.Key        `json:"hex"`            // "#rrggbb" (no alpha)
	RGB        RGBColor           `json:"rgb"`            // RGB components
	RGBA       *RGBAColor         `json:"rgba,omitempty"` // Only for colours read from an image
	HSL        HSLColor           `json:"hsl"`            // HSL representation
	Brightness palette.Brightness `json:"brightness"`     // Mean and perceptual brightness
}

// DescribeColor expands a Key into its RGB, HSL and brightness forms.
func DescribeColor(k palette.Key) ColorResult {
	r, g, b := k.RGB()
	return ColorResult{
		Hex:        k,
		RGB:        RGBColor{R: r, G: g, B: b},
		HSL:        rgbToHSL(r, g, b),
		Brightness: palette.BrightnessOf(k),
	}
}

// SampleColor extracts the color value at a specific pixel coordinate.
//
// Parameters:
//   - img: The source image to sample from.
//   - x: X coordinate (0-based, 0 = leftmost pixel).
//   - y: Y coordinate (0-based, 0 = topmost pixel).
//
// Returns:
//   - *ColorResult: The color at (x, y) in multiple formats.
//   - error: Non-nil if coordinates are outside the image bounds.
//
// The colour is converted to non-premultiplied 8-bit components, the same
// values a Buffer would hold for that pixel.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	res := DescribeColor(palette.RGBKey(c.R, c.G, c.B))
	res.RGBA = &RGBAColor{R: c.R, G: c.G, B: c.B, A: c.A}
	return &res, nil
}

// ColorFrequency represents a color and its share of the analysed pixels.
type ColorFrequency struct {
	Hex        palette.Key `json:"hex"`        // "#rrggbb"
	Percentage float64     `json:"percentage"` // Share of pixels (0-100)
	RGB        RGBColor    `json:"rgb"`        // RGB components
}

// PaletteResult contains the most common colors of an image or region,
// sorted by frequency in descending order.
type PaletteResult struct {
	Method string           `json:"method"`
	Colors []ColorFrequency `json:"colors"`
}

// Palette methods.
const (
	PaletteHistogram = "histogram"
	PaletteKMeans    = "kmeans"
)

// Palette extracts up to count representative colours from img or a region of it.
//
// Parameters:
//   - img: The source image to analyze.
//   - count: Maximum number of colors to return (must be >= 1).
//   - region: Optional region to analyze. If nil, the entire image is analyzed.
//   - method: PaletteHistogram (default when empty) or PaletteKMeans.
//
// # Methods
//
// histogram quantizes every pixel to multiples of 16 per channel and counts
// the buckets, so #F0F0F0 and #FAFAFA land in the same bucket.
//
// kmeans clusters the region with k=count using prominentcolor. Its default
// background masks drop near-white, near-black and chroma-green pixels.
//
// Unlike palette.Sample, neither method subsamples or applies the 30..220
// brightness gate; a palette is meant to describe the whole area.
func Palette(img image.Image, count int, region *Region, method string) (*PaletteResult, error) {
	if count < 1 {
		return nil, fmt.Errorf("count must be at least 1, got %d", count)
	}
	cropped, err := CropRegion(img, region)
	if err != nil {
		return nil, err
	}

	var colors []ColorFrequency
	switch method {
	case "", PaletteHistogram:
		method = PaletteHistogram
		colors = histogramPalette(cropped, count)
	case PaletteKMeans:
		colors, err = kmeansPalette(cropped, count)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown palette method: %s", method)
	}

	return &PaletteResult{Method: method, Colors: colors}, nil
}

func histogramPalette(img *image.NRGBA, count int) []ColorFrequency {
	counts := make(map[palette.Key]int)
	total := 0
	for i := 0; i+3 < len(img.Pix); i += 4 {
		key := palette.RGBKey(img.Pix[i]/16*16, img.Pix[i+1]/16*16, img.Pix[i+2]/16*16)
		counts[key]++
		total++
	}

	keys := make([]palette.Key, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > count {
		keys = keys[:count]
	}

	colors := make([]ColorFrequency, 0, len(keys))
	for _, k := range keys {
		colors = append(colors, frequency(k, counts[k], total))
	}
	return colors
}

func kmeansPalette(img *image.NRGBA, count int) ([]ColorFrequency, error) {
	items, err := prominentcolor.KmeansWithAll(count, img,
		prominentcolor.ArgumentNoCropping, prominentcolor.DefaultSize, prominentcolor.GetDefaultMasks())
	if err != nil {
		return nil, fmt.Errorf("kmeans palette: %w", err)
	}

	total := 0
	for _, it := range items {
		total += it.Cnt
	}

	colors := make([]ColorFrequency, 0, len(items))
	for _, it := range items {
		k := palette.RGBKey(uint8(it.Color.R), uint8(it.Color.G), uint8(it.Color.B))
		colors = append(colors, frequency(k, it.Cnt, total))
	}
	sort.SliceStable(colors, func(i, j int) bool {
		return colors[i].Percentage > colors[j].Percentage
	})
	return colors, nil
}

func frequency(k palette.Key, n, total int) ColorFrequency {
	r, g, b := k.RGB()
	pct := 0.0
	if total > 0 {
		pct = float64(n) / float64(total) * 100
	}
	return ColorFrequency{
		Hex:        k,
		Percentage: math.Round(pct*100) / 100,
		RGB:        RGBColor{R: r, G: g, B: b},
	}
}

// rgbToHSL converts 8-bit RGB values to rounded HSL using go-colorful.
func rgbToHSL(r, g, b uint8) HSLColor {
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	h, s, l := c.Hsl()
	return HSLColor{
		H: int(math.Round(h)) % 360,
		S: int(math.Round(s * 100)),
		L: int(math.Round(l * 100)),
	}
}
