package imaging

import (
	"image"

	"github.com/ironsheep/image-theme-mcp/internal/palette"
)

// DominantResult is the sampler output for an image region.
type DominantResult struct {
	Color  ColorResult        `json:"color"`
	Scan   palette.ScanResult `json:"scan"`
	Width  int                `json:"width"`  // Width of the sampled buffer
	Height int                `json:"height"` // Height of the sampled buffer
}

// DominantColor runs the strided sampler over the pixels selected by opts.
func DominantColor(img image.Image, opts BufferOptions, fallback palette.Key) (*DominantResult, error) {
	buf, err := PixelBuffer(img, opts)
	if err != nil {
		return nil, err
	}
	scan := palette.Sampler{Fallback: fallback}.Scan(buf.Pix)
	debugf("dominant %s: visited=%d filtered=%d distinct=%d", scan.Color, scan.Visited, scan.Filtered, scan.Distinct)
	return &DominantResult{
		Color:  DescribeColor(scan.Color),
		Scan:   scan,
		Width:  buf.Width,
		Height: buf.Height,
	}, nil
}

// ThemeColorResult is a theme colour with both the raw and adjusted forms expanded.
type ThemeColorResult struct {
	Theme     ColorResult        `json:"theme"`
	Dominant  ColorResult        `json:"dominant"`
	Lightened bool               `json:"lightened"`
	Scan      palette.ScanResult `json:"scan"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
}

// ThemeColor extracts a buffer from img and applies palette.Theme to it.
func ThemeColor(img image.Image, opts BufferOptions, theme palette.ThemeOptions) (*ThemeColorResult, error) {
	buf, err := PixelBuffer(img, opts)
	if err != nil {
		return nil, err
	}
	res := palette.Theme(buf.Pix, theme)
	debugf("theme %s from %s (lightened=%v, luma=%.1f)", res.Color, res.Dominant, res.Lightened, res.Brightness.Perceptual)
	return &ThemeColorResult{
		Theme:     DescribeColor(res.Color),
		Dominant:  DescribeColor(res.Dominant),
		Lightened: res.Lightened,
		Scan:      res.Scan,
		Width:     buf.Width,
		Height:    buf.Height,
	}, nil
}
