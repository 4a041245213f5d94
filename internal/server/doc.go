// Package server implements the MCP (Model Context Protocol) server for image theme colours.
//
// This package provides a JSON-RPC 2.0 server that exposes theme colour
// extraction through the MCP protocol, so a client can ask for the accent
// colour of a thumbnail before it draws a card around it.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//   - image_crop: Preview a region at a given scale
//
// Image Colour Operations:
//   - image_sample_color: Get color at pixel
//   - image_dominant_color: Most frequent colour, with scan statistics
//   - image_theme_color: Dominant colour lightened for use as an accent
//   - image_palette: Histogram or k-means palette
//
// Colour Value Operations:
//   - color_adjust_brightness: Shift a hex colour by a percentage
//   - color_brightness: Mean and perceptual brightness of a hex colour
//
// # Image Caching
//
// Images are cached by path or URL and reused across tool calls. Remote
// images are downloaded once with the limits in Config.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string, e.g. "invalid color format: ..."
//
// # Usage
//
//	cfg, err := server.ConfigFromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := server.NewWithConfig(cfg).Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
