package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/envresolve/internal/dotenv"
)

const (
	defaultPort           = "8080"
	defaultFormat         = FormatJSON
	defaultRateLimitRPS   = 25.0
	defaultRateLimitBurst = 50
)

// Output formats accepted by Config.Format.
const (
	FormatJSON   = "json"
	FormatYAML   = "yaml"
	FormatDotenv = "dotenv"
)

var formats = []string{FormatJSON, FormatYAML, FormatDotenv}

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > YAML config > Environment variables > Defaults
type Config struct {
	Dir                  string
	ModeVar              string
	Merge                bool
	Format               string
	LogLevel             string
	Port                 string
	ShutdownGracePeriod  time.Duration
	ReadHeaderTimeout    time.Duration
	WriteTimeout         time.Duration
	IdleTimeout          time.Duration
	EnableRequestLogging bool
	RateLimitRPS         float64
	RateLimitBurst       int
	// CORSOrigins lists browser origins allowed to read the HTTP surface.
	// Empty means no cross-origin access.
	CORSOrigins []string
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	Dir                  string        `yaml:"dir"`
	ModeVar              string        `yaml:"mode_var"`
	Merge                *bool         `yaml:"merge"`
	Format               string        `yaml:"format"`
	LogLevel             string        `yaml:"log_level"`
	Port                 string        `yaml:"port"`
	ShutdownGracePeriod  string        `yaml:"shutdown_grace_period"`
	ReadHeaderTimeout    string        `yaml:"read_header_timeout"`
	WriteTimeout         string        `yaml:"write_timeout"`
	IdleTimeout          string        `yaml:"idle_timeout"`
	EnableRequestLogging *bool         `yaml:"enable_request_logging"`
	RateLimit            yamlRateLimit `yaml:"rate_limit"`
	CORSOrigins          []string      `yaml:"cors_origins"`
}

// yamlRateLimit represents the rate limit section in YAML.
type yamlRateLimit struct {
	RPS   *float64 `yaml:"rps"`
	Burst *int     `yaml:"burst"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile     string
	Dir            *string
	ModeVar        *string
	Merge          *bool
	Format         *string
	LogLevel       *string
	Port           *string
	RateLimitRPS   *float64
	RateLimitBurst *int
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > YAML config > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	applyEnvConfig(&cfg)

	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		if err := applyYAMLConfig(&cfg, yamlCfg); err != nil {
			return Config{}, fmt.Errorf("apply YAML config: %w", err)
		}
	}

	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		ModeVar:              dotenv.DefaultModeVar,
		Format:               defaultFormat,
		LogLevel:             "info",
		Port:                 defaultPort,
		ShutdownGracePeriod:  10 * time.Second,
		ReadHeaderTimeout:    5 * time.Second,
		WriteTimeout:         15 * time.Second,
		IdleTimeout:          60 * time.Second,
		EnableRequestLogging: true,
		RateLimitRPS:         defaultRateLimitRPS,
		RateLimitBurst:       defaultRateLimitBurst,
	}
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) error {
	if yamlCfg.Dir != "" {
		cfg.Dir = yamlCfg.Dir
	}
	if yamlCfg.ModeVar != "" {
		cfg.ModeVar = yamlCfg.ModeVar
	}
	if yamlCfg.Merge != nil {
		cfg.Merge = *yamlCfg.Merge
	}
	if yamlCfg.Format != "" {
		cfg.Format = yamlCfg.Format
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.Port != "" {
		cfg.Port = yamlCfg.Port
	}

	durations := []struct {
		raw string
		dst *time.Duration
		key string
	}{
		{yamlCfg.ShutdownGracePeriod, &cfg.ShutdownGracePeriod, "shutdown_grace_period"},
		{yamlCfg.ReadHeaderTimeout, &cfg.ReadHeaderTimeout, "read_header_timeout"},
		{yamlCfg.WriteTimeout, &cfg.WriteTimeout, "write_timeout"},
		{yamlCfg.IdleTimeout, &cfg.IdleTimeout, "idle_timeout"},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("parse %s: %w", d.key, err)
		}
		*d.dst = parsed
	}

	if yamlCfg.EnableRequestLogging != nil {
		cfg.EnableRequestLogging = *yamlCfg.EnableRequestLogging
	}
	if yamlCfg.RateLimit.RPS != nil {
		cfg.RateLimitRPS = *yamlCfg.RateLimit.RPS
	}
	if yamlCfg.RateLimit.Burst != nil {
		cfg.RateLimitBurst = *yamlCfg.RateLimit.Burst
	}
	if len(yamlCfg.CORSOrigins) > 0 {
		cfg.CORSOrigins = yamlCfg.CORSOrigins
	}

	return nil
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *Config) {
	if dir := strings.TrimSpace(os.Getenv("ENVRESOLVE_DIR")); dir != "" {
		cfg.Dir = dir
	}

	if modeVar := strings.TrimSpace(os.Getenv("ENVRESOLVE_MODE_VAR")); modeVar != "" {
		cfg.ModeVar = modeVar
	}

	if merge := strings.TrimSpace(os.Getenv("ENVRESOLVE_MERGE")); merge != "" {
		if value, err := strconv.ParseBool(merge); err == nil {
			cfg.Merge = value
		}
	}

	if format := strings.TrimSpace(os.Getenv("ENVRESOLVE_FORMAT")); format != "" {
		cfg.Format = strings.ToLower(format)
	}

	if level := strings.TrimSpace(os.Getenv("LOG_LEVEL")); level != "" {
		cfg.LogLevel = level
	}

	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.Port = port
	}

	if rps := strings.TrimSpace(os.Getenv("RATE_LIMIT_RPS")); rps != "" {
		if value, err := strconv.ParseFloat(rps, 64); err == nil && value >= 0 {
			cfg.RateLimitRPS = value
		}
	}

	if burst := strings.TrimSpace(os.Getenv("RATE_LIMIT_BURST")); burst != "" {
		if value, err := strconv.Atoi(burst); err == nil && value >= 0 {
			cfg.RateLimitBurst = value
		}
	}

	if origins := strings.TrimSpace(os.Getenv("CORS_ORIGINS")); origins != "" {
		cfg.CORSOrigins = splitList(origins)
	}
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if overrides.Dir != nil && *overrides.Dir != "" {
		cfg.Dir = *overrides.Dir
	}
	if overrides.ModeVar != nil && *overrides.ModeVar != "" {
		cfg.ModeVar = *overrides.ModeVar
	}
	if overrides.Merge != nil {
		cfg.Merge = *overrides.Merge
	}
	if overrides.Format != nil && *overrides.Format != "" {
		cfg.Format = strings.ToLower(*overrides.Format)
	}
	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}
	if overrides.Port != nil && *overrides.Port != "" {
		cfg.Port = *overrides.Port
	}
	if overrides.RateLimitRPS != nil && *overrides.RateLimitRPS >= 0 {
		cfg.RateLimitRPS = *overrides.RateLimitRPS
	}
	if overrides.RateLimitBurst != nil && *overrides.RateLimitBurst >= 0 {
		cfg.RateLimitBurst = *overrides.RateLimitBurst
	}
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if !slices.Contains(formats, cfg.Format) {
		return fmt.Errorf("format must be one of %s, got %q", strings.Join(formats, ", "), cfg.Format)
	}
	if cfg.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be >= 0")
	}
	if cfg.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be >= 0")
	}
	if strings.TrimSpace(cfg.ModeVar) == "" {
		return fmt.Errorf("mode variable cannot be empty")
	}
	if slices.Contains(cfg.CORSOrigins, "*") {
		return fmt.Errorf("cors_origins must list explicit origins, not *")
	}
	return nil
}

// splitList parses a comma-separated list, dropping empty entries.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// DotenvOptions translates the configuration into loader options.
func (c Config) DotenvOptions() []dotenv.Option {
	return []dotenv.Option{
		dotenv.WithModeVar(c.ModeVar),
		dotenv.WithMerge(c.Merge),
	}
}
