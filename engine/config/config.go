package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// FileName is the configuration file looked up in the config directory.
const FileName = "oxy_backdrop.cfg.json"

// EnvPrefix prefixes environment overrides, e.g. OXY_BACKDROP_ASSET_PATH.
const EnvPrefix = "OXY_BACKDROP"

// Renderer backends accepted by renderer.backend.
const (
	BackendWGPU     = "wgpu"
	BackendHeadless = "headless"
)

// AssetConfig holds the model reference.
type AssetConfig struct {
	Path    string `json:"path" mapstructure:"path"`
	Preload bool   `json:"preload" mapstructure:"preload"`
}

// LoaderConfig holds asset loader settings.
type LoaderConfig struct {
	Workers int           `json:"workers" mapstructure:"workers"`
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
}

// WindowConfig holds native window settings.
type WindowConfig struct {
	Title  string `json:"title" mapstructure:"title"`
	Width  int    `json:"width" mapstructure:"width"`
	Height int    `json:"height" mapstructure:"height"`
}

// RendererConfig holds renderer settings.
type RendererConfig struct {
	Backend       string  `json:"backend" mapstructure:"backend"`
	VSync         bool    `json:"vsync" mapstructure:"vsync"`
	FrameLimit    float64 `json:"frameLimit" mapstructure:"frameLimit"`
	ForceSoftware bool    `json:"forceSoftware" mapstructure:"forceSoftware"`
	Profile       bool    `json:"profile" mapstructure:"profile"`
}

// GraylogConfig holds the optional GELF log sink settings.
type GraylogConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Address string `json:"address" mapstructure:"address"`
}

// Config is the decoded configuration.
type Config struct {
	LogLevel string `json:"logLevel" mapstructure:"logLevel"`
	LogsDir  string `json:"logsDir" mapstructure:"logsDir"`

	// ErrorKeywords overrides the substrings that attribute host errors to the backdrop.
	ErrorKeywords []string `json:"errorKeywords" mapstructure:"errorKeywords"`

	Asset    AssetConfig    `json:"asset" mapstructure:"asset"`
	Loader   LoaderConfig   `json:"loader" mapstructure:"loader"`
	Window   WindowConfig   `json:"window" mapstructure:"window"`
	Renderer RendererConfig `json:"renderer" mapstructure:"renderer"`
	Graylog  GraylogConfig  `json:"graylog" mapstructure:"graylog"`
}

// setDefaults registers every key with its default value.
func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("logsDir", "")
	v.SetDefault("errorKeywords", []string{})

	v.SetDefault("asset.path", "jellyfish.glb")
	v.SetDefault("asset.preload", true)

	v.SetDefault("loader.workers", 2)
	v.SetDefault("loader.timeout", "0s")

	v.SetDefault("window.title", "oxy-backdrop")
	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)

	v.SetDefault("renderer.backend", BackendWGPU)
	v.SetDefault("renderer.vsync", true)
	v.SetDefault("renderer.frameLimit", 0)
	v.SetDefault("renderer.forceSoftware", false)
	v.SetDefault("renderer.profile", false)

	v.SetDefault("graylog.enabled", false)
	v.SetDefault("graylog.address", "localhost:12201")
}

// Load reads configuration from the JSON file in configDir, applies defaults and
// OXY_BACKDROP_* environment overrides, and decodes the result.
// A missing file is not an error; a malformed one is.
//
// Parameters:
//   - configDir: the directory containing oxy_backdrop.cfg.json (may be empty)
//
// Returns:
//   - *Config: the decoded configuration
//   - error: if the file cannot be parsed or a value cannot be decoded
func Load(configDir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configDir != "" {
		v.SetConfigName(FileName)
		v.SetConfigType("json")
		v.AddConfigPath(configDir)

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be expressed as defaults.
//
// Returns:
//   - error: describing the first invalid value
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Asset.Path) == "" {
		return errors.New("config: asset.path is empty")
	}
	if c.Loader.Workers < 1 {
		return fmt.Errorf("config: loader.workers must be at least 1, got %d", c.Loader.Workers)
	}
	if c.Loader.Timeout < 0 {
		return fmt.Errorf("config: loader.timeout must not be negative, got %s", c.Loader.Timeout)
	}
	switch strings.ToLower(c.Renderer.Backend) {
	case BackendWGPU, BackendHeadless:
	default:
		return fmt.Errorf("config: unknown renderer.backend %q", c.Renderer.Backend)
	}
	return nil
}
