package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/ironsheep/image-theme-mcp/internal/imaging"
	"github.com/ironsheep/image-theme-mcp/internal/palette"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_theme_color").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		if s.config.Debug {
			log.Printf("tool %s failed: %v", params.Name, err)
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls the appropriate imaging/palette function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_crop":
		return s.handleImageCrop(args)

	// Image Colour Operations
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_dominant_color":
		return s.handleImageDominantColor(args)
	case "image_theme_color":
		return s.handleImageThemeColor(args)
	case "image_palette":
		return s.handleImagePalette(args)

	// Colour Value Operations
	case "color_adjust_brightness":
		return s.handleColorAdjustBrightness(args)
	case "color_brightness":
		return s.handleColorBrightness(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// regionArgs is embedded by tools that work on part of an image. At most one
// of Region and RegionName may be set.
type regionArgs struct {
	Region     *imaging.Region `json:"region,omitempty"`
	RegionName string          `json:"region_name,omitempty"`
}

// resolve returns the region to use on img, or nil for the whole image.
func (r regionArgs) resolve(img image.Image) (*imaging.Region, error) {
	if r.Region != nil && r.RegionName != "" {
		return nil, errors.New("specify either region or region_name, not both")
	}
	if r.RegionName != "" {
		region, err := imaging.NamedRegion(img.Bounds(), r.RegionName)
		if err != nil {
			return nil, err
		}
		return &region, nil
	}
	return r.Region, nil
}

// fallbackOrDefault parses an optional per-call fallback colour.
func (s *Server) fallbackOrDefault(value string) (palette.Key, error) {
	if value == "" {
		return s.config.Fallback, nil
	}
	k, err := palette.ParseKey(value)
	if err != nil {
		return 0, fmt.Errorf("fallback: %w", err)
	}
	return k, nil
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

type imageCropArgs struct {
	Path string `json:"path"`
	regionArgs
	Scale float64 `json:"scale"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	region, err := a.resolve(img)
	if err != nil {
		return nil, err
	}
	if region == nil {
		return nil, errors.New("image_crop requires region or region_name")
	}
	return imaging.Crop(img, *region, a.Scale)
}

// === Image Colour Handlers ===

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

// imageDominantColorArgs are shared by image_dominant_color and image_theme_color.
type imageDominantColorArgs struct {
	Path string `json:"path"`
	regionArgs
	Scale    float64 `json:"scale"`
	Denoise  float64 `json:"denoise"`
	Fallback string  `json:"fallback"`
}

// bufferOptions loads the image and resolves the sampling settings.
func (s *Server) bufferOptions(a imageDominantColorArgs) (image.Image, imaging.BufferOptions, palette.Key, error) {
	fallback, err := s.fallbackOrDefault(a.Fallback)
	if err != nil {
		return nil, imaging.BufferOptions{}, 0, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, imaging.BufferOptions{}, 0, err
	}
	region, err := a.resolve(img)
	if err != nil {
		return nil, imaging.BufferOptions{}, 0, err
	}
	return img, imaging.BufferOptions{Region: region, Scale: a.Scale, Denoise: a.Denoise}, fallback, nil
}

func (s *Server) handleImageDominantColor(args json.RawMessage) (interface{}, error) {
	var a imageDominantColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, opts, fallback, err := s.bufferOptions(a)
	if err != nil {
		return nil, err
	}
	return imaging.DominantColor(img, opts, fallback)
}

type imageThemeColorArgs struct {
	imageDominantColorArgs
	LightenBelow   *float64 `json:"lighten_below,omitempty"`
	LightenPercent *int     `json:"lighten_percent,omitempty"`
}

func (s *Server) handleImageThemeColor(args json.RawMessage) (interface{}, error) {
	var a imageThemeColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, opts, fallback, err := s.bufferOptions(a.imageDominantColorArgs)
	if err != nil {
		return nil, err
	}

	theme := palette.DefaultThemeOptions()
	theme.Fallback = fallback
	if a.LightenBelow != nil {
		theme.LightenBelow = *a.LightenBelow
	}
	if a.LightenPercent != nil {
		theme.LightenPercent = *a.LightenPercent
	}
	return imaging.ThemeColor(img, opts, theme)
}

type imagePaletteArgs struct {
	Path string `json:"path"`
	regionArgs
	Count  int    `json:"count"`
	Method string `json:"method"`
}

func (s *Server) handleImagePalette(args json.RawMessage) (interface{}, error) {
	var a imagePaletteArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 5
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	region, err := a.resolve(img)
	if err != nil {
		return nil, err
	}
	return imaging.Palette(img, a.Count, region, a.Method)
}

// === Colour Value Handlers ===

type colorAdjustBrightnessArgs struct {
	Color   string `json:"color"`
	Percent *int   `json:"percent"`
}

// AdjustBrightnessResult is returned by color_adjust_brightness.
type AdjustBrightnessResult struct {
	Input   string              `json:"input"`
	Percent int                 `json:"percent"`
	Color   string              `json:"color"`
	Details imaging.ColorResult `json:"details"`
}

func (s *Server) handleColorAdjustBrightness(args json.RawMessage) (interface{}, error) {
	var a colorAdjustBrightnessArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Percent == nil {
		return nil, errors.New("percent is required")
	}

	k, err := palette.ParseKey(a.Color)
	if err != nil {
		return nil, err
	}
	adjusted := palette.Adjust(k, *a.Percent)
	return &AdjustBrightnessResult{
		Input:   a.Color,
		Percent: *a.Percent,
		Color:   adjusted.String(),
		Details: imaging.DescribeColor(adjusted),
	}, nil
}

type colorBrightnessArgs struct {
	Color string `json:"color"`
}

// BrightnessResult is returned by color_brightness.
type BrightnessResult struct {
	imaging.ColorResult

	// WouldLighten reports whether the default theme policy would lighten
	// this colour if the sampler picked it.
	WouldLighten bool `json:"would_lighten"`

	// Filtered reports whether the sampler would skip this colour.
	Filtered bool `json:"filtered"`
}

func (s *Server) handleColorBrightness(args json.RawMessage) (interface{}, error) {
	var a colorBrightnessArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	k, err := palette.ParseKey(a.Color)
	if err != nil {
		return nil, err
	}
	res := imaging.DescribeColor(k)
	mean := res.Brightness.Mean
	return &BrightnessResult{
		ColorResult:  res,
		WouldLighten: res.Brightness.Perceptual < palette.DefaultLightenBelow,
		Filtered:     mean < palette.MinMeanBrightness || mean > palette.MaxMeanBrightness,
	}, nil
}
