package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"

	"github.com/veronicaguo/electricitymap-contrib/internal/models"
)

// Config holds all configuration for the zone mix graph service
type Config struct {
	// Server configuration
	Port string `env:"PORT,default=8781"`

	// Upstream data API
	DataAPIURL   string `env:"DATA_API_URL,default=https://app-backend.electricitymaps.com"`
	DataAPIToken string `env:"DATA_API_TOKEN"`
	DefaultZone  string `env:"DEFAULT_ZONE,default=DE"`

	// Display defaults; per-request query parameters override these
	MixMode            string `env:"ELECTRICITY_MIX_MODE,default=consumption"`
	ColorBlindMode     bool   `env:"COLORBLIND_MODE,default=false"`
	DisplayByEmissions bool   `env:"DISPLAY_BY_EMISSIONS,default=false"`
	MobileMode         bool   `env:"MOBILE_MODE,default=false"`

	// Snapshot storage (optional for local testing)
	Deployment       string `env:"DEPLOYMENT,default=local"`
	LocalSnapshotDir string `env:"LOCAL_SNAPSHOT_DIR,default=./snapshots"`
	GCSBucket        string `env:"GCS_BUCKET"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=text"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if cfg.MixMode != string(models.MixModeProduction) && cfg.MixMode != string(models.MixModeConsumption) {
		return nil, fmt.Errorf("invalid ELECTRICITY_MIX_MODE %q", cfg.MixMode)
	}
	return &cfg, nil
}

// ElectricityMixMode returns the configured default mix accounting mode.
func (c *Config) ElectricityMixMode() models.ElectricityMixMode {
	return models.ElectricityMixMode(c.MixMode)
}
