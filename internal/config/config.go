// =============================================================================
// Backer CSV to Shopify Orders - Configuration Module
// =============================================================================
//
// Loads the application configuration: a YAML file for paths and behavior,
// plus the Shopify credentials from the process environment.
//
// PRECEDENCE:
//   Credential values written in the YAML file win over the environment;
//   the file is the explicit choice, the environment the ambient one. The
//   usual deployment leaves credentials out of the file entirely and sets
//   SHOPIFY_STORE_HANDLE / SHOPIFY_API_KEY / SHOPIFY_API_PASSWORD.
//
// Missing credentials are deliberately not an error here: the remote API
// answers with an authentication failure, and the validate command warns.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/backercamp/csv-to-shopify-orders/internal/csvparser"
)

// Environment variable names for the store credentials.
const (
	EnvStoreHandle = "SHOPIFY_STORE_HANDLE"
	EnvAPIKey      = "SHOPIFY_API_KEY"
	EnvAPIPassword = "SHOPIFY_API_PASSWORD"
)

// Config holds the full application configuration.
type Config struct {
	// InputDir is scanned for backer exports when no --file is given.
	InputDir string `yaml:"input_dir" validate:"required"`

	// OutputDir receives failed-order logs.
	OutputDir string `yaml:"output_dir" validate:"required"`

	// ArchiveDir receives fully imported export files.
	ArchiveDir string `yaml:"archive_dir" validate:"required"`

	// LedgerFile is the append-only record of imported identity keys.
	// Leaving the key out of the file selects the default path; writing
	// an explicitly empty value disables the ledger: every order is
	// pending every run and nothing is persisted after upload.
	LedgerFile *string `yaml:"ledger_file"`

	// CSV controls parsing of .csv exports.
	CSV csvparser.Settings `yaml:"csv_settings"`

	Shopify ShopifyConfig `yaml:"shopify"`
	Upload  UploadConfig  `yaml:"upload"`
	Log     LogConfig     `yaml:"log"`
}

// ShopifyConfig identifies and authenticates against the target store.
type ShopifyConfig struct {
	StoreHandle string `yaml:"store_handle"`
	APIKey      string `yaml:"api_key"`
	APIPassword string `yaml:"api_password"`

	// APIVersion is the admin API version path segment.
	APIVersion string `yaml:"api_version" validate:"required"`

	// TimeoutSeconds bounds each order-creation call.
	TimeoutSeconds int `yaml:"timeout_seconds" validate:"min=1"`
}

// UploadConfig controls the pacing of the sequential upload loop.
type UploadConfig struct {
	// DelayMS is the pause after every upload attempt, successful or not.
	// Leaving the key out selects the default; an explicit 0 means no
	// pacing between uploads.
	DelayMS *int `yaml:"delay_ms" validate:"omitempty,min=0"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=console json"`
}

// HasCredentials reports whether all three credential values are set.
func (c *ShopifyConfig) HasCredentials() bool {
	return c.StoreHandle != "" && c.APIKey != "" && c.APIPassword != ""
}

// Timeout is TimeoutSeconds as a duration.
func (c *ShopifyConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Delay is DelayMS as a duration.
func (c *UploadConfig) Delay() time.Duration {
	if c.DelayMS == nil {
		return 0
	}
	return time.Duration(*c.DelayMS) * time.Millisecond
}

// LedgerPath is the ledger file location, empty when the ledger is
// disabled.
func (c *Config) LedgerPath() string {
	if c.LedgerFile == nil {
		return ""
	}
	return *c.LedgerFile
}

// Load reads the configuration file, overlays environment credentials,
// applies defaults, and validates the result. A missing file is not an
// error: everything then comes from defaults and the environment.
func Load(configPath string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
		}
	case os.IsNotExist(err):
		// Defaults plus environment only.
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	applyDefaults(&cfg)
	applyEnvironment(&cfg)

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills unset options with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.InputDir == "" {
		cfg.InputDir = "./input"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.ArchiveDir == "" {
		cfg.ArchiveDir = "./input_archive"
	}
	if cfg.LedgerFile == nil {
		path := "./imported.ledger"
		cfg.LedgerFile = &path
	}
	if cfg.CSV.Delimiter == "" {
		cfg.CSV.Delimiter = ","
	}
	if cfg.Shopify.APIVersion == "" {
		cfg.Shopify.APIVersion = "2019-07"
	}
	if cfg.Shopify.TimeoutSeconds == 0 {
		cfg.Shopify.TimeoutSeconds = 30
	}
	if cfg.Upload.DelayMS == nil {
		ms := 1000
		cfg.Upload.DelayMS = &ms
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
}

// applyEnvironment fills credential values still empty after the file.
func applyEnvironment(cfg *Config) {
	if cfg.Shopify.StoreHandle == "" {
		cfg.Shopify.StoreHandle = os.Getenv(EnvStoreHandle)
	}
	if cfg.Shopify.APIKey == "" {
		cfg.Shopify.APIKey = os.Getenv(EnvAPIKey)
	}
	if cfg.Shopify.APIPassword == "" {
		cfg.Shopify.APIPassword = os.Getenv(EnvAPIPassword)
	}
}
