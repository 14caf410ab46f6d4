package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config contains every tunable of the service. Model coefficients are not here,
// they are fixed in the engine.
type Config struct {
	// Storage
	DatabasePath string `yaml:"databasePath"` // sqlite file holding imported team profiles

	// Logging
	LogLevel  string `yaml:"logLevel"`  // debug, info, warn, error
	LogOutput string `yaml:"logOutput"` // console, file or both
	LogPath   string `yaml:"logPath"`

	// HTTP surface
	HTTPAddr       string        `yaml:"httpAddr"`
	CORSOrigins    []string      `yaml:"corsOrigins"`
	RequestTimeout time.Duration `yaml:"requestTimeout"`

	// === Outbound fetching ===
	FetchTimeout  time.Duration `yaml:"fetchTimeout"`
	FetchRate     float64       `yaml:"fetchRate"`  // requests per second across all hosts
	FetchBurst    int           `yaml:"fetchBurst"` // token bucket size
	UserAgent     string        `yaml:"userAgent"`
	CABundlePath  string        `yaml:"caBundlePath"`  // extra PEM roots, e.g. a corporate proxy
	RenderedFetch bool          `yaml:"renderedFetch"` // use headless chromium for JS heavy stat pages

	// Circuit breaker around outbound fetches
	BreakerMaxRequests  uint32        `yaml:"breakerMaxRequests"` // probes allowed while half-open
	BreakerInterval     time.Duration `yaml:"breakerInterval"`
	BreakerTimeout      time.Duration `yaml:"breakerTimeout"` // open -> half-open
	BreakerMinRequests  uint32        `yaml:"breakerMinRequests"`
	BreakerFailureRatio float64       `yaml:"breakerFailureRatio"`

	// Tools
	MarkdownMaxLength int    `yaml:"markdownMaxLength"`
	BatchLimit        int    `yaml:"batchLimit"` // concurrent predictions per batch, 0 means GOMAXPROCS
	PromptsDir        string `yaml:"promptsDir"` // optional *.json prompt overrides
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		DatabasePath: "hoops.db",

		LogLevel:  "info",
		LogOutput: "console",
		LogPath:   "/tmp/hoops.log",

		HTTPAddr:       ":8080",
		CORSOrigins:    []string{"*"},
		RequestTimeout: 30 * time.Second,

		FetchTimeout: 30 * time.Second,
		FetchRate:    2,
		FetchBurst:   4,
		UserAgent:    "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",

		BreakerMaxRequests:  3,
		BreakerInterval:     time.Minute,
		BreakerTimeout:      30 * time.Second,
		BreakerMinRequests:  3,
		BreakerFailureRatio: 0.6,

		MarkdownMaxLength: 10000,
		BatchLimit:        0,
	}
}

// Load builds the configuration from defaults, then the optional YAML file at path,
// then a .env file in the working directory, then HOOPS_* environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	// .env is optional
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	var errs []error
	c.DatabasePath = envStr("HOOPS_DB_PATH", c.DatabasePath)
	c.LogLevel = envStr("HOOPS_LOG_LEVEL", c.LogLevel)
	c.LogOutput = envStr("HOOPS_LOG_OUTPUT", c.LogOutput)
	c.LogPath = envStr("HOOPS_LOG_PATH", c.LogPath)
	c.HTTPAddr = envStr("HOOPS_HTTP_ADDR", c.HTTPAddr)
	if v := os.Getenv("HOOPS_CORS_ORIGINS"); v != "" {
		c.CORSOrigins = splitList(v)
	}
	c.UserAgent = envStr("HOOPS_USER_AGENT", c.UserAgent)
	c.CABundlePath = envStr("HOOPS_CA_BUNDLE", c.CABundlePath)
	c.PromptsDir = envStr("HOOPS_PROMPTS_DIR", c.PromptsDir)

	c.RequestTimeout = envDuration("HOOPS_REQUEST_TIMEOUT", c.RequestTimeout, &errs)
	c.FetchTimeout = envDuration("HOOPS_FETCH_TIMEOUT", c.FetchTimeout, &errs)
	c.BreakerTimeout = envDuration("HOOPS_BREAKER_TIMEOUT", c.BreakerTimeout, &errs)
	c.FetchRate = envFloat("HOOPS_FETCH_RATE", c.FetchRate, &errs)
	c.BreakerFailureRatio = envFloat("HOOPS_BREAKER_FAILURE_RATIO", c.BreakerFailureRatio, &errs)
	c.FetchBurst = envInt("HOOPS_FETCH_BURST", c.FetchBurst, &errs)
	c.MarkdownMaxLength = envInt("HOOPS_MARKDOWN_MAX_LENGTH", c.MarkdownMaxLength, &errs)
	c.BatchLimit = envInt("HOOPS_BATCH_LIMIT", c.BatchLimit, &errs)
	c.RenderedFetch = envBool("HOOPS_RENDERED_FETCH", c.RenderedFetch, &errs)
	return errors.Join(errs...)
}

// Validate range checks the configuration
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("databasePath must be set")
	}
	switch strings.ToLower(c.LogOutput) {
	case "console", "file", "both":
	default:
		return fmt.Errorf("logOutput must be console, file or both, got %q", c.LogOutput)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetchTimeout must be positive, got %s", c.FetchTimeout)
	}
	if c.FetchRate <= 0 {
		return fmt.Errorf("fetchRate must be positive, got %v", c.FetchRate)
	}
	if c.FetchBurst < 1 {
		return fmt.Errorf("fetchBurst must be at least 1, got %d", c.FetchBurst)
	}
	if c.BreakerFailureRatio <= 0 || c.BreakerFailureRatio > 1 {
		return fmt.Errorf("breakerFailureRatio must be in (0, 1], got %v", c.BreakerFailureRatio)
	}
	if c.MarkdownMaxLength < 100 {
		return fmt.Errorf("markdownMaxLength must be at least 100, got %d", c.MarkdownMaxLength)
	}
	if c.BatchLimit < 0 {
		return fmt.Errorf("batchLimit must not be negative, got %d", c.BatchLimit)
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int, errs *[]error) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64, errs *[]error) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return f
}

func envDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return d
}

func envBool(key string, fallback bool, errs *[]error) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return b
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
