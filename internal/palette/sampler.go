package palette

// Sampling constants.
const (
	// SampleStride is the byte distance between visited samples: every
	// fourth RGBA pixel.
	SampleStride = 16

	// MinMeanBrightness and MaxMeanBrightness bound the unweighted mean a
	// sample must fall inside (inclusive) to be counted.
	MinMeanBrightness = 30
	MaxMeanBrightness = 220
)

// ScanResult describes one pass of the sampler over a buffer.
type ScanResult struct {
	Color    Key  `json:"color"`    // Dominant colour, or the fallback
	Count    int  `json:"count"`    // Occurrences of Color among counted samples (0 on fallback)
	Visited  int  `json:"visited"`  // Pixels read at SampleStride
	Filtered int  `json:"filtered"` // Visited pixels rejected as too dark or too bright
	Distinct int  `json:"distinct"` // Distinct colours in the frequency table
	Fallback bool `json:"fallback"` // True when no sample survived filtering
}

// Sampler picks the most frequent mid-tone colour in a pixel buffer.
//
// The zero value falls back to black; use DefaultSampler or set Fallback.
type Sampler struct {
	Fallback Key
}

// DefaultSampler falls back to DefaultFallback.
var DefaultSampler = Sampler{Fallback: DefaultFallback}

// Sample runs DefaultSampler over buf.
func Sample(buf []byte) Key {
	return DefaultSampler.Sample(buf)
}

// Sample returns the dominant colour of buf. See Scan.
func (s Sampler) Sample(buf []byte) Key {
	return s.Scan(buf).Color
}

// Scan walks buf and returns the dominant colour with scan statistics.
//
// buf holds RGBA quadruples. Only every fourth pixel is read (byte offsets
// 0, 16, 32, ...), alpha is ignored, and a pixel is skipped when the mean of
// its channels is below MinMeanBrightness or above MaxMeanBrightness. The
// remaining pixels are tallied by exact RGB value.
//
// The running winner changes only when a colour's count becomes strictly
// greater than the current maximum, so on a tie the colour that reached the
// maximum first wins. If nothing is tallied, Color is s.Fallback.
//
// A trailing partial quadruple (len(buf) not a multiple of 4) is ignored.
func (s Sampler) Scan(buf []byte) ScanResult {
	n := len(buf) - len(buf)%4

	counts := make(map[Key]int)
	res := ScanResult{Color: s.Fallback, Fallback: true}
	maxCount := 0

	for i := 0; i < n; i += SampleStride {
		r, g, b := buf[i], buf[i+1], buf[i+2]
		res.Visited++

		// Integer form of mean < 30 || mean > 220.
		sum := int(r) + int(g) + int(b)
		if sum < 3*MinMeanBrightness || sum > 3*MaxMeanBrightness {
			res.Filtered++
			continue
		}

		key := RGBKey(r, g, b)
		counts[key]++
		if c := counts[key]; c > maxCount {
			maxCount = c
			res.Color = key
			res.Fallback = false
		}
	}

	res.Count = maxCount
	res.Distinct = len(counts)
	return res
}
