package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"

	"github.com/courtdata-tw/foreclosure-notices/internal/config"
	"github.com/courtdata-tw/foreclosure-notices/internal/site"
	"github.com/courtdata-tw/foreclosure-notices/internal/store"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.IsDebug() {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	ctx := context.Background()

	st, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	if closer, ok := st.(io.Closer); ok {
		defer closer.Close()
	}

	counts, err := site.NewGenerator(st, cfg).Run(ctx)
	if err != nil {
		log.Fatalf("Site generation failed: %v", err)
	}

	log.Printf("Done: %d pages written, %d cases skipped", counts.Rendered, counts.Skipped)
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("Foreclosure Notice Site Generator\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
