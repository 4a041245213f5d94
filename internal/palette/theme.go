package palette

// Defaults for the lightening policy applied by Theme.
const (
	DefaultLightenBelow   = 100.0
	DefaultLightenPercent = 40
)

// ThemeOptions configures Theme.
type ThemeOptions struct {
	// Fallback is returned by the sampler when no pixel qualifies.
	Fallback Key

	// LightenBelow is the perceptual brightness under which the dominant
	// colour is lightened. Zero or negative disables lightening.
	LightenBelow float64

	// LightenPercent is passed to Adjust when lightening.
	LightenPercent int
}

// DefaultThemeOptions returns the stock policy: fallback #ff6eb4, lighten by
// 40% when perceptual brightness is under 100.
func DefaultThemeOptions() ThemeOptions {
	return ThemeOptions{
		Fallback:       DefaultFallback,
		LightenBelow:   DefaultLightenBelow,
		LightenPercent: DefaultLightenPercent,
	}
}

// ThemeResult is the outcome of Theme. It is a plain value owned by the
// caller; downstream drawing code should take Color from here.
type ThemeResult struct {
	Dominant   Key        `json:"dominant"`   // Sampler output before adjustment
	Color      Key        `json:"color"`      // Colour to use for highlights
	Lightened  bool       `json:"lightened"`  // Whether Color differs from Dominant by policy
	Brightness Brightness `json:"brightness"` // Measures of Dominant
	Scan       ScanResult `json:"scan"`
}

// Theme samples buf and applies the lightening policy.
func Theme(buf []byte, opts ThemeOptions) ThemeResult {
	scan := Sampler{Fallback: opts.Fallback}.Scan(buf)
	res := ThemeResult{
		Dominant:   scan.Color,
		Color:      scan.Color,
		Brightness: BrightnessOf(scan.Color),
		Scan:       scan,
	}
	if opts.LightenBelow > 0 && res.Brightness.Perceptual < opts.LightenBelow {
		res.Color = Adjust(scan.Color, opts.LightenPercent)
		res.Lightened = true
	}
	return res
}
