package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/image-theme-mcp/internal/palette"
)

func TestDominantColor_PatternImage(t *testing.T) {
	// Width 100 is a multiple of 4, so every row samples x = 0, 4, ..., 96:
	// 13 red and 12 green per top row, 13 blue and 12 (filtered) white per
	// bottom row. Red reaches 650 before blue does and wins the tie.
	img := createPatternImage(100, 100)

	res, err := DominantColor(img, BufferOptions{}, palette.DefaultFallback)
	if err != nil {
		t.Fatalf("DominantColor failed: %v", err)
	}

	if res.Color.Hex.String() != "#ff0000" {
		t.Errorf("Color: got %s, want #ff0000", res.Color.Hex)
	}
	want := palette.ScanResult{Color: 0xFF0000, Count: 650, Visited: 2500, Filtered: 600, Distinct: 3}
	if res.Scan != want {
		t.Errorf("Scan: got %+v, want %+v", res.Scan, want)
	}
}

func TestDominantColor_RegionFallback(t *testing.T) {
	img := createPatternImage(40, 40)

	// The bottom-right quadrant is pure white and entirely filtered.
	region, _ := NamedRegion(img.Bounds(), "bottom-right")
	res, err := DominantColor(img, BufferOptions{Region: &region}, 0x336699)
	if err != nil {
		t.Fatalf("DominantColor failed: %v", err)
	}
	if !res.Scan.Fallback || res.Color.Hex.String() != "#336699" {
		t.Errorf("expected fallback #336699, got %s (fallback=%v)", res.Color.Hex, res.Scan.Fallback)
	}
	if res.Width != 20 || res.Height != 20 {
		t.Errorf("buffer size: got %dx%d, want 20x20", res.Width, res.Height)
	}
}

func TestDominantColor_DenoiseKeepsTransparentColour(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 200, 60, 60, 0
	}

	for _, denoise := range []float64{0, 1, 2} {
		res, err := DominantColor(img, BufferOptions{Denoise: denoise}, palette.DefaultFallback)
		if err != nil {
			t.Fatalf("DominantColor(denoise=%g) failed: %v", denoise, err)
		}
		if res.Color.Hex.String() != "#c83c3c" || res.Scan.Fallback {
			t.Errorf("denoise=%g: got %s (fallback=%v), want #c83c3c", denoise, res.Color.Hex, res.Scan.Fallback)
		}
	}
}

func TestThemeColor_LightensDarkThumbnail(t *testing.T) {
	img := createInMemoryImage(16, 16, color.RGBA{40, 40, 40, 255})

	res, err := ThemeColor(img, BufferOptions{}, palette.DefaultThemeOptions())
	if err != nil {
		t.Fatalf("ThemeColor failed: %v", err)
	}

	if res.Dominant.Hex.String() != "#282828" {
		t.Errorf("Dominant: got %s, want #282828", res.Dominant.Hex)
	}
	if res.Theme.Hex.String() != "#8e8e8e" {
		t.Errorf("Theme: got %s, want #8e8e8e", res.Theme.Hex)
	}
	if !res.Lightened {
		t.Error("expected Lightened")
	}
}

func TestThemeColor_KeepsBrightThumbnail(t *testing.T) {
	img := createInMemoryImage(16, 16, color.RGBA{200, 100, 50, 255})

	res, err := ThemeColor(img, BufferOptions{}, palette.DefaultThemeOptions())
	if err != nil {
		t.Fatalf("ThemeColor failed: %v", err)
	}
	if res.Lightened || res.Theme.Hex != res.Dominant.Hex {
		t.Errorf("bright colour should pass through, got %+v", res)
	}
}

func TestThemeColor_InvalidRegion(t *testing.T) {
	img := createInMemoryImage(8, 8, color.RGBA{200, 100, 50, 255})
	_, err := ThemeColor(img, BufferOptions{Region: &Region{X1: 0, Y1: 0, X2: 9, Y2: 9}}, palette.DefaultThemeOptions())
	if err == nil {
		t.Error("ThemeColor should fail for invalid region")
	}
}
