package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Default values
	DefaultLogLevel      = "info"
	DefaultMaxFileSize   = 100 * 1024 * 1024 // 100MB
	DefaultSourceObject  = "auctionData.json"
	DefaultDetailsObject = "auctionDataWithDetails.json"
	DefaultUserAgent     = "Mozilla/5.0 (compatible; foreclosure-notices/1.0)"

	// Batch pacing defaults
	DefaultCheckpointEvery = 25
	DefaultRetryAttempts   = 3
	DefaultRetryMinDelay   = 2 * time.Second
	DefaultRetryMaxDelay   = 4 * time.Second
	DefaultPauseMin        = 500 * time.Millisecond
	DefaultPauseMax        = 1500 * time.Millisecond

	// DefaultLabelLeftMax is the horizontal cutoff of the label column on
	// the standard notice form.
	DefaultLabelLeftMax = 100.0

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the foreclosure notice pipeline.
type Config struct {
	// Storage configuration. An empty bucket selects the local data
	// directory; a non-empty bucket selects Google Cloud Storage.
	Bucket        string
	DataDir       string
	SourceObject  string
	DetailsObject string

	// Download configuration
	UserAgent     string
	RetryAttempts int
	RetryMinDelay time.Duration
	RetryMaxDelay time.Duration

	// Batch configuration
	CheckpointEvery int
	PauseMin        time.Duration
	PauseMax        time.Duration

	// Parsing configuration
	MaxFileSize  int64 // Maximum PDF file size in bytes
	LabelLeftMax float64
	PDFPath      string // Single-file mode: parse this PDF and exit

	// Site configuration
	OutputDir    string
	TemplatePath string

	// Application configuration
	LogLevel string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Bucket:          "",
		DataDir:         "data",
		SourceObject:    DefaultSourceObject,
		DetailsObject:   DefaultDetailsObject,
		UserAgent:       DefaultUserAgent,
		RetryAttempts:   DefaultRetryAttempts,
		RetryMinDelay:   DefaultRetryMinDelay,
		RetryMaxDelay:   DefaultRetryMaxDelay,
		CheckpointEvery: DefaultCheckpointEvery,
		PauseMin:        DefaultPauseMin,
		PauseMax:        DefaultPauseMax,
		MaxFileSize:     DefaultMaxFileSize,
		LabelLeftMax:    DefaultLabelLeftMax,
		OutputDir:       "site",
		LogLevel:        DefaultLogLevel,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	// Check for version flag before parsing
	if err := checkVersionFlag(); err != nil {
		return nil, err
	}

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	if cfg.DataDir != "" {
		if expandedPath, err := filepath.Abs(cfg.DataDir); err == nil {
			cfg.DataDir = expandedPath
		}
	}
	if cfg.OutputDir != "" {
		if expandedPath, err := filepath.Abs(cfg.OutputDir); err == nil {
			cfg.OutputDir = expandedPath
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	// Set environment variable prefix
	viper.SetEnvPrefix("FORECLOSURE")
	viper.AutomaticEnv()

	// Define flags with Viper
	viper.SetDefault("bucket", cfg.Bucket)
	viper.SetDefault("datadir", cfg.DataDir)
	viper.SetDefault("sourceobject", cfg.SourceObject)
	viper.SetDefault("detailsobject", cfg.DetailsObject)
	viper.SetDefault("useragent", cfg.UserAgent)
	viper.SetDefault("retries", cfg.RetryAttempts)
	viper.SetDefault("retrymin", cfg.RetryMinDelay)
	viper.SetDefault("retrymax", cfg.RetryMaxDelay)
	viper.SetDefault("checkpoint", cfg.CheckpointEvery)
	viper.SetDefault("pausemin", cfg.PauseMin)
	viper.SetDefault("pausemax", cfg.PauseMax)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
	viper.SetDefault("labelleft", cfg.LabelLeftMax)
	viper.SetDefault("pdf", cfg.PDFPath)
	viper.SetDefault("outputdir", cfg.OutputDir)
	viper.SetDefault("template", cfg.TemplatePath)
	viper.SetDefault("loglevel", cfg.LogLevel)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("bucket", cfg.Bucket, "Google Cloud Storage bucket for case data (empty for local files)")
	pflag.String("datadir", cfg.DataDir, "Local directory holding case data files")
	pflag.String("sourceobject", cfg.SourceObject, "Name of the case list object")
	pflag.String("detailsobject", cfg.DetailsObject, "Name of the parsed details object")
	pflag.String("useragent", cfg.UserAgent, "User-Agent header sent when downloading notices")
	pflag.Int("retries", cfg.RetryAttempts, "Download attempts per notice")
	pflag.Duration("retrymin", cfg.RetryMinDelay, "Minimum delay before a download retry")
	pflag.Duration("retrymax", cfg.RetryMaxDelay, "Maximum delay before a download retry")
	pflag.Int("checkpoint", cfg.CheckpointEvery, "Write intermediate results every N parsed cases")
	pflag.Duration("pausemin", cfg.PauseMin, "Minimum pause between notice downloads")
	pflag.Duration("pausemax", cfg.PauseMax, "Maximum pause between notice downloads")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
	pflag.Float64("labelleft", cfg.LabelLeftMax, "Largest horizontal origin at which a section label is a heading")
	pflag.String("pdf", cfg.PDFPath, "Parse a single PDF file and print the result as JSON")
	pflag.String("outputdir", cfg.OutputDir, "Directory the generated site is written to")
	pflag.String("template", cfg.TemplatePath, "Case page template file (empty for the built-in template)")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("bucket", pflag.Lookup("bucket"))
	_ = viper.BindPFlag("datadir", pflag.Lookup("datadir"))
	_ = viper.BindPFlag("sourceobject", pflag.Lookup("sourceobject"))
	_ = viper.BindPFlag("detailsobject", pflag.Lookup("detailsobject"))
	_ = viper.BindPFlag("useragent", pflag.Lookup("useragent"))
	_ = viper.BindPFlag("retries", pflag.Lookup("retries"))
	_ = viper.BindPFlag("retrymin", pflag.Lookup("retrymin"))
	_ = viper.BindPFlag("retrymax", pflag.Lookup("retrymax"))
	_ = viper.BindPFlag("checkpoint", pflag.Lookup("checkpoint"))
	_ = viper.BindPFlag("pausemin", pflag.Lookup("pausemin"))
	_ = viper.BindPFlag("pausemax", pflag.Lookup("pausemax"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
	_ = viper.BindPFlag("labelleft", pflag.Lookup("labelleft"))
	_ = viper.BindPFlag("pdf", pflag.Lookup("pdf"))
	_ = viper.BindPFlag("outputdir", pflag.Lookup("outputdir"))
	_ = viper.BindPFlag("template", pflag.Lookup("template"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nForeclosure notice parser for Taiwanese judicial auction announcements\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                  # parse pending cases under ./data\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --bucket=court-auction-data      # case data in Cloud Storage\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --pdf=notice.pdf                 # parse one file, print JSON\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  FORECLOSURE_BUCKET        Cloud Storage bucket\n")
		fmt.Fprintf(os.Stderr, "  FORECLOSURE_DATADIR       Local data directory\n")
		fmt.Fprintf(os.Stderr, "  FORECLOSURE_SOURCEOBJECT  Case list object name\n")
		fmt.Fprintf(os.Stderr, "  FORECLOSURE_DETAILSOBJECT Parsed details object name\n")
		fmt.Fprintf(os.Stderr, "  FORECLOSURE_USERAGENT     Download User-Agent header\n")
		fmt.Fprintf(os.Stderr, "  FORECLOSURE_RETRIES       Download attempts per notice\n")
		fmt.Fprintf(os.Stderr, "  FORECLOSURE_CHECKPOINT    Checkpoint interval\n")
		fmt.Fprintf(os.Stderr, "  FORECLOSURE_MAXFILESIZE   Maximum file size\n")
		fmt.Fprintf(os.Stderr, "  FORECLOSURE_OUTPUTDIR     Generated site directory\n")
		fmt.Fprintf(os.Stderr, "  FORECLOSURE_LOGLEVEL      Log level\n")
	}
}

// checkVersionFlag checks if version flag was requested
func checkVersionFlag() error {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return fmt.Errorf("version requested")
		}
	}
	return nil
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Bucket = viper.GetString("bucket")
	cfg.DataDir = viper.GetString("datadir")
	cfg.SourceObject = viper.GetString("sourceobject")
	cfg.DetailsObject = viper.GetString("detailsobject")
	cfg.UserAgent = viper.GetString("useragent")
	cfg.RetryAttempts = viper.GetInt("retries")
	cfg.RetryMinDelay = viper.GetDuration("retrymin")
	cfg.RetryMaxDelay = viper.GetDuration("retrymax")
	cfg.CheckpointEvery = viper.GetInt("checkpoint")
	cfg.PauseMin = viper.GetDuration("pausemin")
	cfg.PauseMax = viper.GetDuration("pausemax")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
	cfg.LabelLeftMax = viper.GetFloat64("labelleft")
	cfg.PDFPath = viper.GetString("pdf")
	cfg.OutputDir = viper.GetString("outputdir")
	cfg.TemplatePath = viper.GetString("template")
	cfg.LogLevel = viper.GetString("loglevel")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return errors.New("data directory cannot be empty")
	}

	if c.SourceObject == "" {
		return errors.New("source object name cannot be empty")
	}
	if c.DetailsObject == "" {
		return errors.New("details object name cannot be empty")
	}

	if c.OutputDir == "" {
		return errors.New("output directory cannot be empty")
	}

	// Validate max file size
	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	if c.LabelLeftMax <= 0 {
		return errors.New("label column cutoff must be positive")
	}

	if c.CheckpointEvery < 1 {
		return errors.New("checkpoint interval must be at least 1")
	}

	if c.RetryAttempts < 1 {
		return errors.New("retry attempts must be at least 1")
	}
	if c.RetryMinDelay < 0 || c.RetryMaxDelay < c.RetryMinDelay {
		return errors.New("retry delay range is inverted")
	}
	if c.PauseMin < 0 || c.PauseMax < c.PauseMin {
		return errors.New("pause range is inverted")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// UseGCS returns true if case data lives in Google Cloud Storage
func (c *Config) UseGCS() bool {
	return c.Bucket != ""
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Bucket: %s, DataDir: %s, SourceObject: %s, DetailsObject: %s, OutputDir: %s, LogLevel: %s, MaxFileSize: %d}",
		c.Bucket, c.DataDir, c.SourceObject, c.DetailsObject, c.OutputDir, c.LogLevel, c.MaxFileSize)
}
