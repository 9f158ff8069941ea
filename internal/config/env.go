package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envOverrides lists the settings that may be overridden from the environment.
// Pointer fields stay nil when the variable is unset.
type envOverrides struct {
	LogLevel       *string `env:"EMBERFALL_LOG_LEVEL"`
	Seed           *uint64 `env:"EMBERFALL_SEED"`
	Ticks          *int    `env:"EMBERFALL_TICKS"`
	Language       *string `env:"EMBERFALL_LANGUAGE"`
	CampaignDriver *string `env:"EMBERFALL_CAMPAIGN_DRIVER"`
	CampaignDSN    *string `env:"EMBERFALL_CAMPAIGN_DSN"`
	SQLitePath     *string `env:"EMBERFALL_SQLITE_PATH"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ApplyEnv overlays EMBERFALL_* environment variables onto cfg.
func ApplyEnv(cfg *Engine) error {
	var o envOverrides
	if err := ParseEnv(&o); err != nil {
		return err
	}

	if o.LogLevel != nil {
		cfg.LogLevel = *o.LogLevel
	}
	if o.Seed != nil {
		cfg.Seed = *o.Seed
	}
	if o.Ticks != nil {
		cfg.Ticks = *o.Ticks
	}
	if o.Language != nil {
		cfg.Language = *o.Language
	}
	if o.CampaignDriver != nil {
		cfg.Campaign.Driver = *o.CampaignDriver
	}
	if o.CampaignDSN != nil {
		cfg.Campaign.Database.DSNOverride = *o.CampaignDSN
	}
	if o.SQLitePath != nil {
		cfg.Campaign.SQLitePath = *o.SQLitePath
	}
	return nil
}
