// Package imaging turns image files and URLs into the pixel buffers that
// package palette samples, and reports colours in a form clients can read.
//
// All operations work with standard Go image.Image types and use a coordinate
// system where (0,0) is at the top-left corner, X increases rightward, and Y
// increases downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Sources
//
// ImageCache.Load accepts a local path or an http(s) URL. PNG, JPEG, GIF,
// WebP and BMP are decoded; the format is detected from the content, not the
// file name. Remote downloads are bounded by FetchConfig.
//
// # Pixel Buffers
//
// PixelBuffer crops, optionally resizes and denoises, and returns a
// non-premultiplied RGBA8888 copy. Straight alpha means a half-transparent
// red pixel still reads as 255,0,0; the sampler ignores alpha entirely.
//
// # Color Representation
//
// Colors are returned in multiple formats for flexibility:
//   - Hex: "#rrggbb", lowercase (alpha excluded)
//   - RGB: 8-bit components (0-255)
//   - RGBA: 8-bit components with alpha, for colours read from an image
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
//   - Brightness: the mean and perceptual measures from package palette
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. The other functions are
// stateless and never modify the image they are given.
//
// # Performance Considerations
//
// Decoded images stay in the cache until Evict or Clear. Large images may
// consume significant memory in long-running processes. For a quick theme
// colour from a large image, a Scale below 1 shrinks the buffer before
// sampling.
package imaging
