// Package config loads runtime settings for the photo color server.
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

// EnvPrefix is prepended to every environment variable this package reads.
const EnvPrefix = "PHOTO_MCP_"

// Config aggregates runtime configuration used across the service.
//
// Classification thresholds and correction gains are not part of it: they are
// fixed for every run.
type Config struct {
	LogLevel string `yaml:"logLevel"`

	// JPEGQuality is used when writing corrected JPEG images.
	JPEGQuality int `yaml:"jpegQuality"`

	// AutoOrient applies EXIF orientation when decoding JPEG input.
	AutoOrient bool `yaml:"autoOrient"`

	// OutputDir is where photo_correct writes images when the caller gives no
	// output path. Empty means return the image inline.
	OutputDir string `yaml:"outputDir"`

	// BatchConcurrency bounds parallel work in photo_analyze_batch.
	BatchConcurrency int `yaml:"batchConcurrency"`

	HTTP HTTPConfig `yaml:"http"`
}

// HTTPConfig controls the upload server.
type HTTPConfig struct {
	Address        string        `yaml:"address"`
	MaxUploadBytes int64         `yaml:"maxUploadBytes"`
	ReadTimeout    time.Duration `yaml:"readTimeout"`
	WriteTimeout   time.Duration `yaml:"writeTimeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:         "info",
		JPEGQuality:      95,
		BatchConcurrency: 4,
		HTTP: HTTPConfig{
			Address:        ":8080",
			MaxUploadBytes: 20 * 1024 * 1024,
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   60 * time.Second,
		},
	}
}

// Load builds the configuration in this order: defaults, a .env file in the
// working directory (if present), the YAML file at path (or at
// $PHOTO_MCP_CONFIG when path is empty), then PHOTO_MCP_* environment
// variables.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvPrefix + "CONFIG")
	}
	if path != "" {
		if err := hydrateFromFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.JPEGQuality = getEnvInt("JPEG_QUALITY", cfg.JPEGQuality)
	cfg.AutoOrient = getEnvBool("AUTO_ORIENT", cfg.AutoOrient)
	cfg.OutputDir = getEnv("OUTPUT_DIR", cfg.OutputDir)
	cfg.BatchConcurrency = getEnvInt("BATCH_CONCURRENCY", cfg.BatchConcurrency)
	cfg.HTTP.Address = getEnv("HTTP_ADDR", cfg.HTTP.Address)
	cfg.HTTP.MaxUploadBytes = getEnvInt64("MAX_UPLOAD_BYTES", cfg.HTTP.MaxUploadBytes)
	cfg.HTTP.ReadTimeout = getEnvDuration("HTTP_READ_TIMEOUT", cfg.HTTP.ReadTimeout)
	cfg.HTTP.WriteTimeout = getEnvDuration("HTTP_WRITE_TIMEOUT", cfg.HTTP.WriteTimeout)
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return errors.New("jpeg quality must be between 1 and 100")
	}
	if c.BatchConcurrency <= 0 {
		return errors.New("batch concurrency must be > 0")
	}
	if c.HTTP.MaxUploadBytes <= 0 {
		return errors.New("max upload bytes must be > 0")
	}
	if strings.TrimSpace(c.HTTP.Address) == "" {
		return errors.New("http address must not be empty")
	}
	if c.HTTP.ReadTimeout <= 0 || c.HTTP.WriteTimeout <= 0 {
		return errors.New("http timeouts must be > 0")
	}
	return nil
}

func getEnv(key, fallback string) string {
	v := os.Getenv(EnvPrefix + key)
	if v == "" {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(EnvPrefix + key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(EnvPrefix + key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(EnvPrefix + key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(EnvPrefix + key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
