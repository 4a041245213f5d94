package server

import "github.com/ironsheep/image-theme-mcp/internal/imaging"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file, or an http(s) URL",
	}
}

func regionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"x1": map[string]interface{}{"type": "integer"},
			"y1": map[string]interface{}{"type": "integer"},
			"x2": map[string]interface{}{"type": "integer"},
			"y2": map[string]interface{}{"type": "integer"},
		},
		"description": "Optional region (x2/y2 exclusive). If omitted, uses the entire image.",
	}
}

func regionNameProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"enum":        imaging.RegionNames,
		"description": "Optional named region. Cannot be combined with region.",
	}
}

// samplingProperties are the arguments shared by the sampler-backed tools.
func samplingProperties() map[string]interface{} {
	return map[string]interface{}{
		"path":        pathProperty(),
		"region":      regionProperty(),
		"region_name": regionNameProperty(),
		"scale": map[string]interface{}{
			"type":        "number",
			"description": "Optional resize factor applied before sampling (e.g. 0.25 for a quick pass). The result may not exceed 4096x4096 pixels. Default 1.0",
			"default":     1.0,
		},
		"denoise": map[string]interface{}{
			"type":        "number",
			"description": "Optional median filter radius (0-10) applied before sampling. Merges JPEG noise into one colour. Default 0 (off)",
			"default":     0,
		},
		"fallback": map[string]interface{}{
			"type":        "string",
			"description": "Colour returned when no pixel passes the brightness filter. Defaults to the server's configured fallback",
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	themeProps := samplingProperties()
	themeProps["lighten_below"] = map[string]interface{}{
		"type":        "number",
		"description": "Perceptual brightness (0-255) under which the dominant colour is lightened. 0 disables. Default 100",
		"default":     100.0,
	}
	themeProps["lighten_percent"] = map[string]interface{}{
		"type":        "integer",
		"description": "Brightness adjustment applied to dark colours. Default 40",
		"default":     40,
	}

	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image from a file or URL and return its dimensions, format and size. The decoded image is cached for subsequent calls.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_crop",
			Description: "Crop a region of an image and return it as base64-encoded PNG. With the same region and scale, this shows exactly the pixels the colour tools read.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":        pathProperty(),
					"region":      regionProperty(),
					"region_name": regionNameProperty(),
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path"},
			},
		},

		// Image Colour Operations
		{
			Name:        "image_sample_color",
			Description: "Get the exact color value at a specific pixel coordinate.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "image_dominant_color",
			Description: "Find the most frequent colour in an image. Every 4th pixel is sampled and pixels that are too dark or too bright (mean channel outside 30-220) are skipped. Returns the colour and scan statistics.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": samplingProperties(),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_theme_color",
			Description: "Derive a theme colour from an image: the dominant colour, lightened when it is too dark to use as an accent. Returns both the raw and the adjusted colour.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": themeProps,
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_palette",
			Description: "Return the N most common colours of an image or region (colour palette extraction).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":        pathProperty(),
					"region":      regionProperty(),
					"region_name": regionNameProperty(),
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of colours to return (default 5)",
						"default":     5,
					},
					"method": map[string]interface{}{
						"type":        "string",
						"enum":        []string{imaging.PaletteHistogram, imaging.PaletteKMeans},
						"description": "histogram counts quantised colours; kmeans clusters them. Default histogram",
						"default":     imaging.PaletteHistogram,
					},
				},
				"required": []string{"path"},
			},
		},

		// Colour Value Operations
		{
			Name:        "color_adjust_brightness",
			Description: "Lighten or darken a hex colour. Each channel moves by round(percent * 2.55) and is clamped to 0-255.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Colour as 6 hex digits, with or without a leading #",
					},
					"percent": map[string]interface{}{
						"type":        "integer",
						"description": "Positive to lighten, negative to darken",
					},
				},
				"required": []string{"color", "percent"},
			},
		},
		{
			Name:        "color_brightness",
			Description: "Report the mean and perceptual brightness of a hex colour, and whether the theme policy would filter or lighten it.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Colour as 6 hex digits, with or without a leading #",
					},
				},
				"required": []string{"color"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
