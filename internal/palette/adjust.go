package palette

import "math"

// AdjustBrightness shifts every channel of color by percent of the full
// 0-255 range and returns the result as "#rrggbb".
//
// The per-channel delta is round(percent * 2.55), rounding halves up. Each
// channel is clamped to [0, 255], so percent may lie outside [-100, 100].
// A malformed color yields an error wrapping ErrInvalidColorFormat.
func AdjustBrightness(color string, percent int) (string, error) {
	k, err := ParseKey(color)
	if err != nil {
		return "", err
	}
	return Adjust(k, percent).String(), nil
}

// Adjust is AdjustBrightness on an already parsed Key.
func Adjust(k Key, percent int) Key {
	// Anything beyond +-255 saturates every channel anyway.
	d := math.Floor(float64(percent)*2.55 + 0.5)
	delta := int(math.Max(-255, math.Min(255, d)))
	r, g, b := k.RGB()
	return RGBKey(shift(r, delta), shift(g, delta), shift(b, delta))
}

func shift(c uint8, delta int) uint8 {
	v := int(c) + delta
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
