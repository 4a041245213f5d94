package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/image-theme-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-theme-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("image-theme-mcp - MCP server for image theme colours")
			fmt.Println()
			fmt.Println("Usage: image-theme-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  IMAGE_THEME_LOG_LEVEL=debug         Enable debug logging")
			fmt.Println("  IMAGE_THEME_FALLBACK=#ff6eb4        Colour used when nothing can be sampled")
			fmt.Println("  IMAGE_THEME_FETCH_TIMEOUT=10s       Timeout for downloading image URLs")
			fmt.Println("  IMAGE_THEME_MAX_FETCH_BYTES=20971520  Size limit for downloaded images")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := server.ConfigFromEnv()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.Debug {
		log.Printf("Image Theme MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("fallback=%s fetch_timeout=%s max_fetch_bytes=%d", cfg.Fallback, cfg.FetchTimeout, cfg.MaxFetchBytes)
	}

	srv := server.NewWithConfig(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
