package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Tagger backends.
const (
	BackendRule = "rule"
	BackendHTTP = "http"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Tagger
	TaggerBackend     string
	TaggerURL         string
	TaggerAPIKey      string
	TaggerTimeout     time.Duration
	TaggerMaxChars    int
	TaggerLexiconFile string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Request limits
	MaxTextBytes   int64
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		APIKey: os.Getenv("LINETAG_API_KEY"),

		TaggerBackend:     envOr("TAGGER_BACKEND", BackendRule),
		TaggerURL:         os.Getenv("TAGGER_URL"),
		TaggerAPIKey:      os.Getenv("TAGGER_API_KEY"),
		TaggerTimeout:     envDuration("TAGGER_TIMEOUT", 30*time.Second),
		TaggerMaxChars:    envInt("TAGGER_MAX_CHARS", 100000),
		TaggerLexiconFile: os.Getenv("TAGGER_LEXICON_FILE"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxTextBytes:   envInt64("MAX_TEXT_BYTES", 1048576),    // 1MB
		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.TaggerTimeout <= 0 {
		cfg.TaggerTimeout = 30 * time.Second
	}
	if cfg.TaggerMaxChars <= 0 {
		cfg.TaggerMaxChars = 100000
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxTextBytes <= 0 {
		cfg.MaxTextBytes = 1048576
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	switch c.TaggerBackend {
	case BackendRule:
	case BackendHTTP:
		if c.TaggerURL == "" {
			return fmt.Errorf("TAGGER_URL is required when TAGGER_BACKEND=%s", BackendHTTP)
		}
	default:
		return fmt.Errorf("unknown TAGGER_BACKEND %q (want %q or %q)", c.TaggerBackend, BackendRule, BackendHTTP)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
