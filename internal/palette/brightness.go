package palette

// MeanBrightness is the unweighted channel mean used to gate samples.
func MeanBrightness(r, g, b uint8) float64 {
	return float64(int(r)+int(g)+int(b)) / 3
}

// PerceptualBrightness is the ITU-R BT.601 luma approximation
// (r*299 + g*587 + b*114) / 1000, in the range 0-255.
func PerceptualBrightness(r, g, b uint8) float64 {
	return float64(int(r)*299+int(g)*587+int(b)*114) / 1000
}

// Brightness reports both measures for a colour.
type Brightness struct {
	Mean       float64 `json:"mean"`
	Perceptual float64 `json:"perceptual"`
}

// BrightnessOf returns the mean and perceptual brightness of k.
func BrightnessOf(k Key) Brightness {
	r, g, b := k.RGB()
	return Brightness{
		Mean:       MeanBrightness(r, g, b),
		Perceptual: PerceptualBrightness(r, g, b),
	}
}
