// Package palette derives a single accent ("theme") colour from raw pixel data.
//
// The package works on flat RGBA8888 buffers, the layout produced by
// image.NRGBA.Pix when the stride equals 4*width. Nothing in here touches
// image decoding or drawing; callers hand over bytes and get a Key back.
//
// # Pipeline
//
//	buf := img.Pix                     // RGBA quadruples, row-major
//	dominant := palette.Sample(buf)    // most frequent mid-tone colour
//	theme := palette.Theme(buf, palette.DefaultThemeOptions())
//	// theme.Color is dominant, lightened by 40% when it is too dark
//
// # Two Brightness Measures
//
// Two different formulas are used on purpose:
//   - MeanBrightness (r+g+b)/3 gates samples inside the sampler (30..220).
//   - PerceptualBrightness (r*299 + g*587 + b*114)/1000 decides whether the
//     chosen colour needs lightening (< 100).
//
// They are kept separate; folding them together changes which colours are
// filtered versus which are lightened.
//
// # Thread Safety
//
// Every function is pure. A Sampler value may be shared between goroutines.
package palette
