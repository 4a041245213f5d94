package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// createTestImage writes a uniform PNG into the test's temp dir and returns its path.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "thumb.png")
	if err := os.WriteFile(path, encodePNG(t, createInMemoryImage(width, height, c)), 0o644); err != nil {
		t.Fatalf("failed to write image: %v", err)
	}
	return path
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return buf.Bytes()
}

// thumbnailServer serves a PNG at /thumb.png and counts requests.
func thumbnailServer(t *testing.T, payload []byte) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/thumb.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(payload)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestNewImageCache(t *testing.T) {
	cache := NewImageCache()
	if cache == nil {
		t.Fatal("NewImageCache returned nil")
	}
	if cache.images == nil {
		t.Fatal("NewImageCache did not initialize images map")
	}
	if cache.fetch.Client == nil {
		t.Fatal("NewImageCache did not create an HTTP client")
	}
}

func TestImageCache_Load(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 100, 100, color.RGBA{255, 0, 0, 255})

	img1, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	bounds := img1.Bounds()
	if bounds.Dx() != 100 || bounds.Dy() != 100 {
		t.Errorf("unexpected dimensions: got %dx%d, want 100x100", bounds.Dx(), bounds.Dy())
	}

	// Second load should return cached image
	img2, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if img1 != img2 {
		t.Error("second Load did not return cached image")
	}
}

func TestImageCache_Load_NonExistent(t *testing.T) {
	cache := NewImageCache()
	if _, err := cache.Load("/nonexistent/path/to/image.png"); err == nil {
		t.Error("Load should fail for non-existent file")
	}
}

func TestImageCache_Load_InvalidImage(t *testing.T) {
	cache := NewImageCache()
	path := filepath.Join(t.TempDir(), "broken.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if _, err := cache.Load(path); err == nil {
		t.Error("Load should fail for invalid image data")
	}
}

func TestImageCache_LoadURL(t *testing.T) {
	srv, hits := thumbnailServer(t, encodePNG(t, createInMemoryImage(40, 30, color.RGBA{70, 130, 180, 255})))
	cache := NewImageCache()
	url := srv.URL + "/thumb.png"

	img, err := cache.Load(url)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 30 {
		t.Errorf("unexpected dimensions: %v", img.Bounds())
	}

	if _, err := cache.Load(url); err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("expected 1 request, got %d", n)
	}
}

func TestImageCache_LoadURL_NotFound(t *testing.T) {
	srv, hits := thumbnailServer(t, nil)
	cache := NewImageCache()

	if _, err := cache.Load(srv.URL + "/missing.png"); err == nil {
		t.Fatal("Load should fail for 404")
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("404 should not be retried, got %d requests", n)
	}
}

func TestImageCache_LoadURL_RetriesServerErrors(t *testing.T) {
	payload := encodePNG(t, createInMemoryImage(8, 8, color.RGBA{128, 128, 128, 255}))
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		w.Write(payload)
	}))
	defer srv.Close()

	cache := NewImageCacheWithConfig(FetchConfig{Timeout: 5 * time.Second, Attempts: 3})
	if _, err := cache.Load(srv.URL + "/thumb.png"); err != nil {
		t.Fatalf("Load should succeed after retry: %v", err)
	}
	if n := hits.Load(); n != 2 {
		t.Errorf("expected 2 requests, got %d", n)
	}
}

func TestImageCache_LoadURL_TooLarge(t *testing.T) {
	payload := encodePNG(t, createInMemoryImage(64, 64, color.RGBA{1, 2, 3, 255}))
	srv, _ := thumbnailServer(t, payload)

	cache := NewImageCacheWithConfig(FetchConfig{Timeout: 5 * time.Second, MaxBytes: 16, Attempts: 3})
	_, err := cache.Load(srv.URL + "/thumb.png")
	if !errors.Is(err, errTooLarge) {
		t.Fatalf("expected errTooLarge, got %v", err)
	}
}

func TestImageCache_Clear(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 50, 50, color.RGBA{0, 255, 0, 255})

	if _, err := cache.Load(imgPath); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cache.Clear()

	cache.mu.RLock()
	count := len(cache.images)
	cache.mu.RUnlock()

	if count != 0 {
		t.Errorf("Clear did not empty cache: %d images remain", count)
	}
}

func TestImageCache_Evict(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 50, 50, color.RGBA{0, 0, 255, 255})

	if _, err := cache.Load(imgPath); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cache.Evict(imgPath)
	// Should not panic
	cache.Evict("/nonexistent/path")

	cache.mu.RLock()
	_, exists := cache.images[imgPath]
	cache.mu.RUnlock()

	if exists {
		t.Error("Evict did not remove image from cache")
	}
}

func TestImageCache_ConcurrentAccess(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 50, 50, color.RGBA{128, 128, 128, 255})

	var wg sync.WaitGroup
	errs := make(chan error, 100)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Load(imgPath); err != nil {
				errs <- err
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent Load error: %v", err)
	}
}

func TestLoadImageInfo(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 200, 150, color.RGBA{255, 128, 64, 255})

	info, err := LoadImageInfo(cache, imgPath)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}

	if info.Width != 200 || info.Height != 150 {
		t.Errorf("size: got %dx%d, want 200x150", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %s, want png", info.Format)
	}
	if info.FileSizeBytes <= 0 {
		t.Error("FileSizeBytes should be positive")
	}
	if info.Remote {
		t.Error("local file reported as remote")
	}
}

func TestLoadImageInfo_FormatFromContent(t *testing.T) {
	src := createInMemoryImage(10, 10, color.RGBA{200, 100, 50, 255})

	tests := []struct {
		name   string
		encode func(*bytes.Buffer) error
		want   string
	}{
		{"png", func(b *bytes.Buffer) error { return png.Encode(b, src) }, "png"},
		{"jpeg", func(b *bytes.Buffer) error { return jpeg.Encode(b, src, nil) }, "jpeg"},
		{"gif", func(b *bytes.Buffer) error { return gif.Encode(b, src, nil) }, "gif"},
	}

	cache := NewImageCache()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.encode(&buf); err != nil {
				t.Fatalf("encode failed: %v", err)
			}
			// The extension is deliberately misleading.
			path := filepath.Join(t.TempDir(), "thumbnail.xyz")
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				t.Fatalf("write failed: %v", err)
			}

			info, err := LoadImageInfo(cache, path)
			if err != nil {
				t.Fatalf("LoadImageInfo failed: %v", err)
			}
			if info.Format != tt.want {
				t.Errorf("Format: got %s, want %s", info.Format, tt.want)
			}
		})
	}
}

func TestLoadImageInfo_Remote(t *testing.T) {
	srv, _ := thumbnailServer(t, encodePNG(t, createInMemoryImage(12, 6, color.RGBA{9, 9, 9, 255})))

	info, err := LoadImageInfo(NewImageCache(), srv.URL+"/thumb.png")
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}
	if !info.Remote || info.Format != "png" || info.Width != 12 {
		t.Errorf("unexpected info: %+v", info)
	}
}

func TestGetDimensions(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 300, 200, color.RGBA{100, 100, 100, 255})

	dims, err := GetDimensions(cache, imgPath)
	if err != nil {
		t.Fatalf("GetDimensions failed: %v", err)
	}

	if dims.Width != 300 || dims.Height != 200 {
		t.Errorf("got %dx%d, want 300x200", dims.Width, dims.Height)
	}
}

func TestGetDimensions_NonExistent(t *testing.T) {
	if _, err := GetDimensions(NewImageCache(), "/nonexistent/image.png"); err == nil {
		t.Error("GetDimensions should fail for non-existent file")
	}
}
