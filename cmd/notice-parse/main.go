package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/courtdata-tw/foreclosure-notices/internal/batch"
	"github.com/courtdata-tw/foreclosure-notices/internal/config"
	"github.com/courtdata-tw/foreclosure-notices/internal/fetch"
	"github.com/courtdata-tw/foreclosure-notices/internal/notice"
	"github.com/courtdata-tw/foreclosure-notices/internal/store"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging configures logging verbosity
func setupLogging(cfg *config.Config) {
	if cfg.IsDebug() {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
}

// runSingleFile parses one local PDF and prints the details JSON to
// stdout. Parse failures are printed as an error payload, the way the
// batch records them.
func runSingleFile(cfg *config.Config) {
	policy := notice.DefaultLayoutPolicy()
	if cfg.LabelLeftMax > 0 {
		policy.LabelLeftMax = cfg.LabelLeftMax
	}

	details, err := notice.ParseFile(cfg.PDFPath, cfg.MaxFileSize, policy)
	if err != nil {
		var parseErr *notice.ParseError
		if !errors.As(err, &parseErr) {
			log.Fatalf("Failed to parse %s: %v", cfg.PDFPath, err)
		}
		details = notice.DetailsForError(err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(details); err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
}

// runBatch executes the batch with signal handling so an interrupt stops
// the run between cases and keeps the progress saved.
func runBatch(ctx context.Context, cancel context.CancelFunc, cfg *config.Config) {
	st, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	if closer, ok := st.(io.Closer); ok {
		defer closer.Close()
	}

	runner := batch.NewRunner(st, fetch.NewDownloader(cfg), cfg)

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	errCh := make(chan error, 1)
	go func() {
		_, err := runner.Run(ctx)
		errCh <- err
	}()

	select {
	case sig := <-signalCh:
		log.Printf("Received signal: %s", sig)
		log.Println("Stopping after the current case...")
		cancel()

		if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Batch stopped with error: %v", err)
			os.Exit(1)
		}

	case err := <-errCh:
		if err != nil {
			log.Printf("Batch error: %v", err)
			os.Exit(1)
		}
	}

	log.Println("Batch finished")
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	// Load configuration from flags first
	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg)

	if cfg.IsDebug() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	// Single-file mode parses one document and exits
	if cfg.PDFPath != "" {
		runSingleFile(cfg)
		return
	}

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runBatch(ctx, cancel, cfg)
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("Foreclosure Notice Parser\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
