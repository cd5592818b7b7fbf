// Package config loads semtree settings from a config file, SEMTREE_*
// environment variables and defaults.
package config

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidWorkers     = errors.New("workers must be positive")
	ErrInvalidFormat      = errors.New("unknown output format")
	ErrInvalidSampleRatio = errors.New("sample ratio must be within [0, 1]")
	ErrInvalidExtension   = errors.New("invalid extension override")
	ErrInvalidCacheSize   = errors.New("invalid cache size")
)

// Output formats.
const (
	FormatXML   = "xml"
	FormatJSON  = "json"
	FormatLines = "lines"
	FormatCount = "count"
)

const (
	envPrefix         = "SEMTREE"
	defaultConfigName = ".semtree"
	defaultCacheSize  = "64MB"
)

// Config holds all semtree settings.
type Config struct {
	Workers   int             `mapstructure:"workers"`
	Languages LanguagesConfig `mapstructure:"languages"`
	Output    OutputConfig    `mapstructure:"output"`
	Log       LogConfig       `mapstructure:"log"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	MCP       MCPConfig       `mapstructure:"mcp"`
}

// LanguagesConfig customizes language detection and rule tables.
type LanguagesConfig struct {
	// Extensions maps file extensions, written without the leading dot
	// (viper splits keys on dots), to language names.
	Extensions map[string]string `mapstructure:"extensions"`
	// Rules lists YAML rule table files loaded next to the built-ins.
	Rules []string `mapstructure:"rules"`
}

// OutputConfig holds rendering defaults.
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Pretty bool   `mapstructure:"pretty"`
	Spans  bool   `mapstructure:"spans"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// TelemetryConfig holds OpenTelemetry export settings.
type TelemetryConfig struct {
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	OTLPHeaders  string  `mapstructure:"otlp_headers"`
	Insecure     bool    `mapstructure:"insecure"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
	Environment  string  `mapstructure:"environment"`
}

// MCPConfig holds MCP server settings.
type MCPConfig struct {
	// MetricsAddr serves /metrics and health endpoints when set.
	MetricsAddr string `mapstructure:"metrics_addr"`
	// CacheSize bounds the tree cache, in humanized bytes such as "64MB".
	// "0" disables caching.
	CacheSize string `mapstructure:"cache_size"`
}

// LoadConfig loads configuration from configPath, or from .semtree.yaml in
// the working or home directory when configPath is empty. A missing default
// file is not an error.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(defaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config

	_ = v.Unmarshal(&cfg) //nolint:errcheck // defaults always decode.

	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("output.format", FormatXML)
	v.SetDefault("output.pretty", false)
	v.SetDefault("output.spans", false)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.json", false)
	v.SetDefault("telemetry.otlp_endpoint", "")
	v.SetDefault("telemetry.otlp_headers", "")
	v.SetDefault("telemetry.insecure", false)
	v.SetDefault("telemetry.sample_ratio", 0.0)
	v.SetDefault("telemetry.environment", "")
	v.SetDefault("mcp.metrics_addr", "")
	v.SetDefault("mcp.cache_size", defaultCacheSize)
}

// Validate checks the configuration for values the commands cannot use.
func (c *Config) Validate() error {
	var errs []error

	if c.Workers <= 0 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidWorkers, c.Workers))
	}

	switch c.Output.Format {
	case FormatXML, FormatJSON, FormatLines, FormatCount:
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidFormat, c.Output.Format))
	}

	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidSampleRatio, c.Telemetry.SampleRatio))
	}

	for ext, language := range c.Languages.Extensions {
		if ext == "" || language == "" {
			errs = append(errs, fmt.Errorf("%w: %q -> %q", ErrInvalidExtension, ext, language))
		}
	}

	if _, err := c.MCP.CacheBytes(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// CacheBytes parses CacheSize. Zero means caching is disabled.
func (m MCPConfig) CacheBytes() (int64, error) {
	if m.CacheSize == "" {
		return 0, nil
	}

	n, err := humanize.ParseBytes(m.CacheSize)
	if err != nil || n > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCacheSize, m.CacheSize)
	}

	return int64(n), nil
}

// ExtensionOverrides returns the extension overrides keyed by ".ext".
func (c *Config) ExtensionOverrides() map[string]string {
	out := make(map[string]string, len(c.Languages.Extensions))
	for ext, language := range c.Languages.Extensions {
		out["."+strings.TrimPrefix(ext, ".")] = language
	}

	return out
}
