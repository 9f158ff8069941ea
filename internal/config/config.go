package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Engine holds all configuration for a simulation run.
type Engine struct {
	// Logging: debug | info | warn | error
	LogLevel string `yaml:"log_level"`

	// Seed of the shared combat RNG; 0 draws a random seed at startup.
	Seed uint64 `yaml:"seed"`

	// Data files
	PowersPath   string `yaml:"powers_path"`
	MapPath      string `yaml:"map_path"`
	ScenarioPath string `yaml:"scenario_path"`

	// Reload the power catalog when PowersPath changes on disk.
	WatchPowers bool `yaml:"watch_powers"`

	// Frames to simulate.
	Ticks int `yaml:"ticks"`

	// Pace frames at Combat.MaxFramesPerSec instead of running flat out.
	Realtime bool `yaml:"realtime"`

	// Combat text language (BCP 47 tag).
	Language string `yaml:"language"`

	// Campaign status persistence
	Campaign CampaignConfig `yaml:"campaign"`

	// Combat tunables
	Combat Combat `yaml:"combat"`

	// CombatPath names a standalone combat tunables file (see LoadCombat).
	// When set, it replaces the combat section.
	CombatPath string `yaml:"combat_path"`
}

// CampaignConfig selects where campaign statuses are stored.
type CampaignConfig struct {
	Driver     string         `yaml:"driver"` // memory | sqlite | postgres
	Slot       int            `yaml:"slot"`
	SQLitePath string         `yaml:"sqlite_path"`
	Database   DatabaseConfig `yaml:"database"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
	MaxConns int32  `yaml:"max_conns"`

	// DSNOverride replaces the assembled DSN when set.
	DSNOverride string `yaml:"dsn"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	if d.DSNOverride != "" {
		return d.DSNOverride
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultEngine returns Engine config with sensible defaults.
func DefaultEngine() Engine {
	return Engine{
		LogLevel:     "info",
		PowersPath:   "data/powers.yaml",
		MapPath:      "data/map.yaml",
		ScenarioPath: "data/scenario.yaml",
		Ticks:        600,
		Language:     "en",
		Campaign: CampaignConfig{
			Driver:     "memory",
			Slot:       1,
			SQLitePath: "save/campaign.db",
			Database: DatabaseConfig{
				Host:     "127.0.0.1",
				Port:     5432,
				User:     "emberfall",
				Password: "emberfall",
				DBName:   "emberfall",
				SSLMode:  "disable",
				MaxConns: 4,
			},
		},
		Combat: DefaultCombat(),
	}
}

// LoadEngine loads engine config from a YAML file, then applies env overrides.
// If the file doesn't exist, returns defaults (with overrides).
func LoadEngine(path string) (Engine, error) {
	cfg := DefaultEngine()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	if cfg.CombatPath != "" {
		combat, err := LoadCombat(cfg.CombatPath)
		if err != nil {
			return cfg, err
		}
		cfg.Combat = combat
	}
	if err := cfg.Combat.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}
