package imaging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// FetchConfig controls how remote images are downloaded.
type FetchConfig struct {
	// Timeout bounds a single Load of a remote image, retries included.
	Timeout time.Duration

	// MaxBytes caps the response body. Larger bodies are rejected.
	MaxBytes int64

	// Attempts is the number of tries for transport errors and 5xx
	// responses. Values below 1 are treated as 1.
	Attempts int

	// Client is the HTTP client to use. Nil means a client with Timeout.
	Client *http.Client
}

// DefaultFetchConfig returns the settings used by NewImageCache.
func DefaultFetchConfig() FetchConfig {
	return FetchConfig{
		Timeout:  10 * time.Second,
		MaxBytes: 20 << 20,
		Attempts: 3,
	}
}

// cachedImage is a decoded image plus what is known about its encoded form.
type cachedImage struct {
	img    image.Image
	format string
	size   int64
}

// ImageCache provides thread-safe caching of decoded images.
//
// Images are keyed by the source string passed to Load: either a file path
// or an http(s) URL. Once an image is loaded, later Load calls for the same
// source return the cached copy without disk or network I/O.
//
// ImageCache is safe for concurrent use by multiple goroutines.
//
// # Memory Management
//
// Cached images remain in memory until explicitly removed via Evict() or Clear().
// Thumbnails are small, but long-running servers that see many distinct URLs
// should clear the cache periodically.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]*cachedImage
	fetch  FetchConfig
}

// NewImageCache creates an empty cache with DefaultFetchConfig.
func NewImageCache() *ImageCache {
	return NewImageCacheWithConfig(DefaultFetchConfig())
}

// NewImageCacheWithConfig creates an empty cache that fetches remote images
// using cfg.
func NewImageCacheWithConfig(cfg FetchConfig) *ImageCache {
	if cfg.Attempts < 1 {
		cfg.Attempts = 1
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: cfg.Timeout}
	}
	return &ImageCache{
		images: make(map[string]*cachedImage),
		fetch:  cfg,
	}
}

// Load retrieves an image from the cache or reads and decodes it.
//
// Parameters:
//   - source: A file path, or an http:// or https:// URL. Supported formats
//     are PNG, JPEG, GIF, WebP and BMP.
//
// Returns:
//   - image.Image: The decoded image. The concrete type depends on the image format
//     and color model (e.g., *image.RGBA, *image.NRGBA, *image.YCbCr).
//   - error: Non-nil if the source cannot be read or decoded.
//
// The image is cached using the exact source string provided. Different
// spellings of the same file or URL result in separate cache entries.
func (c *ImageCache) Load(source string) (image.Image, error) {
	return c.LoadContext(context.Background(), source)
}

// LoadContext is Load with a caller-supplied context for remote fetches.
func (c *ImageCache) LoadContext(ctx context.Context, source string) (image.Image, error) {
	entry, err := c.entry(ctx, source)
	if err != nil {
		return nil, err
	}
	return entry.img, nil
}

func (c *ImageCache) entry(ctx context.Context, source string) (*cachedImage, error) {
	c.mu.RLock()
	if e, ok := c.images[source]; ok {
		c.mu.RUnlock()
		return e, nil
	}
	c.mu.RUnlock()

	var (
		data []byte
		err  error
	)
	if isRemote(source) {
		data, err = c.download(ctx, source)
	} else {
		data, err = os.ReadFile(source)
		if err != nil {
			err = fmt.Errorf("failed to open image: %w", err)
		}
	}
	if err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	e := &cachedImage{img: img, format: format, size: int64(len(data))}
	c.mu.Lock()
	c.images[source] = e
	c.mu.Unlock()

	return e, nil
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// download fetches a remote image, retrying transport errors and 5xx
// responses up to Attempts times.
func (c *ImageCache) download(ctx context.Context, url string) ([]byte, error) {
	if c.fetch.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.fetch.Timeout)
		defer cancel()
	}

	var lastErr error
	for attempt := 0; attempt < c.fetch.Attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("fetch image %s: %w", url, ctx.Err())
			case <-time.After(200 * time.Millisecond):
			}
			debugf("retrying %s (attempt %d): %v", url, attempt+1, lastErr)
		}

		data, retry, err := c.fetchOnce(ctx, url)
		if err == nil {
			return data, nil
		}
		if !retry {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("fetch image %s failed after %d attempts: %w", url, c.fetch.Attempts, lastErr)
}

// errTooLarge marks a body that exceeded FetchConfig.MaxBytes.
var errTooLarge = errors.New("image exceeds size limit")

func (c *ImageCache) fetchOnce(ctx context.Context, url string) (data []byte, retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("create image request: %w", err)
	}

	resp, err := c.fetch.Client.Do(req)
	if err != nil {
		return nil, ctx.Err() == nil, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, resp.StatusCode >= 500, fmt.Errorf("image http status %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	reader := io.Reader(resp.Body)
	if c.fetch.MaxBytes > 0 {
		reader = io.LimitReader(resp.Body, c.fetch.MaxBytes+1)
	}
	data, err = io.ReadAll(reader)
	if err != nil {
		return nil, true, fmt.Errorf("read image body: %w", err)
	}
	if c.fetch.MaxBytes > 0 && int64(len(data)) > c.fetch.MaxBytes {
		return nil, false, fmt.Errorf("%w: more than %d bytes", errTooLarge, c.fetch.MaxBytes)
	}
	return data, false, nil
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]*cachedImage)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its source.
//
// If the source is not in the cache, this method does nothing.
func (c *ImageCache) Evict(source string) {
	c.mu.Lock()
	delete(c.images, source)
	c.mu.Unlock()
}

// ImageInfo contains metadata about a loaded image.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the decoder that accepted the data: "png", "jpeg", "gif",
	// "webp" or "bmp".
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the image has an alpha (transparency) channel.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the encoded image in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`

	// Remote is true when the image was fetched over HTTP.
	Remote bool `json:"remote"`
}

// LoadImageInfo loads an image and returns metadata about it.
//
// # Color Depth Detection
//
// Color depth is determined by the Go image type:
//   - *image.RGBA64, *image.NRGBA64, *image.Gray16 -> "16-bit"
//   - All other types -> "8-bit"
func LoadImageInfo(cache *ImageCache, source string) (*ImageInfo, error) {
	e, err := cache.entry(context.Background(), source)
	if err != nil {
		return nil, err
	}

	bounds := e.img.Bounds()

	hasAlpha := false
	colorDepth := "8-bit"
	switch e.img.(type) {
	case *image.RGBA, *image.NRGBA:
		hasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
		colorDepth = "16-bit"
	case *image.Gray16:
		colorDepth = "16-bit"
	}

	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        e.format,
		ColorDepth:    colorDepth,
		HasAlpha:      hasAlpha,
		FileSizeBytes: e.size,
		Remote:        isRemote(source),
	}, nil
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of an image without additional metadata.
func GetDimensions(cache *ImageCache, source string) (*DimensionsResult, error) {
	img, err := cache.Load(source)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &DimensionsResult{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}

var debugLogging atomic.Bool

// SetDebugLogging enables or disables verbose logging inside the imaging package.
func SetDebugLogging(enabled bool) {
	debugLogging.Store(enabled)
}

func debugf(format string, args ...interface{}) {
	if debugLogging.Load() {
		log.Printf(format, args...)
	}
}
