package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. RPTAX_LOGGING_LEVEL.
const EnvPrefix = "RPTAX"

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// Settings are the application-level defaults of the CLI. An empty
// Configuration defers to the regulatory registry's default, and a zero
// CapitalLossCap keeps the filing configuration's own cap.
type Settings struct {
	Configuration  string        `mapstructure:"configuration"`
	RegulatoryFile string        `mapstructure:"regulatory_file"`
	CapitalLossCap float64       `mapstructure:"capital_loss_cap"`
	OutputFormat   string        `mapstructure:"output_format"`
	SeedPrefix     string        `mapstructure:"seed_prefix"`
	Logging        LoggingConfig `mapstructure:"logging"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		OutputFormat: "console",
		SeedPrefix:   "scenario:",
		Logging:      LoggingConfig{Level: "warn", Format: "console"},
	}
}

// LoadSettings reads settings from an optional YAML file with RPTAX_*
// environment overrides. A missing file is not an error.
func LoadSettings(path string) (*Settings, error) {
	def := DefaultSettings()
	v := viper.New()
	v.SetDefault("configuration", def.Configuration)
	v.SetDefault("regulatory_file", def.RegulatoryFile)
	v.SetDefault("capital_loss_cap", def.CapitalLossCap)
	v.SetDefault("output_format", def.OutputFormat)
	v.SetDefault("seed_prefix", def.SeedPrefix)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading settings file %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}
	if s.CapitalLossCap < 0 {
		return nil, fmt.Errorf("capital_loss_cap must be non-negative, got %v", s.CapitalLossCap)
	}
	s.Configuration = strings.TrimSpace(s.Configuration)
	s.OutputFormat = strings.ToLower(strings.TrimSpace(s.OutputFormat))
	s.Logging.Level = strings.ToLower(strings.TrimSpace(s.Logging.Level))
	s.Logging.Format = strings.ToLower(strings.TrimSpace(s.Logging.Format))
	return &s, nil
}

// Apply copies the parser-facing settings onto p.
func (s *Settings) Apply(p *InputParser) {
	p.DefaultConfiguration = s.Configuration
	if s.CapitalLossCap > 0 {
		p.CapitalLossCap = decimal.NewFromFloat(s.CapitalLossCap)
	}
}
