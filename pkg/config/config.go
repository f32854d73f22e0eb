package config

import (
	"fmt"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"routarr/pkg/models"
)

// DefaultConfigPaths lists the paths where the config file is searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/routarr/config.yaml",
	"/etc/routarr/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Overseerr OverseerrConfig `koanf:"overseerr"`
	Trakt     TraktConfig     `koanf:"trakt"`
	Metadata  MetadataConfig  `koanf:"metadata"`
	Logging   LoggingConfig   `koanf:"logging"`
	DataDir   string          `koanf:"data_dir"`
	APIKey    string          `koanf:"api_key"`
	Instances []Instance      `koanf:"instances"`

	// Filters is the ordered routing rule list. It is decoded through the
	// models JSON logic rather than koanf so the condition and apply
	// payload shapes survive loading.
	Filters []models.Filter `koanf:"-"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
}

// OverseerrConfig holds request manager API settings, used by the
// overseerr metadata provider.
type OverseerrConfig struct {
	URL    string `koanf:"url"`
	APIKey string `koanf:"api_key"`
}

// TraktConfig holds Trakt API settings, used by the trakt metadata provider.
type TraktConfig struct {
	APIKey string `koanf:"api_key"`
}

// MetadataConfig selects the metadata provider: "overseerr", "trakt" or
// "none".
type MetadataConfig struct {
	Provider string `koanf:"provider"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `koanf:"level"`
}

// Instance is one downstream routing target the dispatcher can forward a
// webhook to. Filter apply payloads reference instances by ID.
type Instance struct {
	ID     string `koanf:"id"`
	URL    string `koanf:"url"`
	APIKey string `koanf:"api_key"`
}

// Metadata provider names accepted by MetadataConfig.
const (
	ProviderOverseerr = "overseerr"
	ProviderTrakt     = "trakt"
	ProviderNone      = "none"
)

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 3939,
		},
		Metadata: MetadataConfig{
			Provider: ProviderNone,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		DataDir: "./data",
	}
}

// Load reads configuration in layers: defaults, then the YAML config file
// (if one exists), then environment variables.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling configuration: %w", err)
	}

	filters, err := decodeFilters(k.Get("filters"))
	if err != nil {
		return nil, err
	}
	cfg.Filters = filters

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return cfg, nil
}

// decodeFilters routes the raw filter list through JSON so the tagged
// condition and apply shapes are resolved by the models package.
func decodeFilters(raw any) ([]models.Filter, error) {
	if raw == nil {
		return nil, nil
	}
	buf, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("encoding filter list: %w", err)
	}
	var filters []models.Filter
	if err := json.Unmarshal(buf, &filters); err != nil {
		return nil, fmt.Errorf("decoding filter list: %w", err)
	}
	return filters, nil
}

// GetServerAddress returns the full server address.
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// InstanceByID returns the configured instance with the given ID.
func (c *Config) InstanceByID(id string) (Instance, bool) {
	for _, inst := range c.Instances {
		if inst.ID == id {
			return inst, true
		}
	}
	return Instance{}, false
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d is out of range", c.Server.Port)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data directory is required")
	}

	switch c.Metadata.Provider {
	case ProviderOverseerr:
		if c.Overseerr.URL == "" || c.Overseerr.APIKey == "" {
			return fmt.Errorf("overseerr metadata provider requires overseerr url and api key")
		}
	case ProviderTrakt:
		if c.Trakt.APIKey == "" {
			return fmt.Errorf("trakt metadata provider requires a trakt api key")
		}
	case ProviderNone:
	default:
		return fmt.Errorf("unknown metadata provider %q", c.Metadata.Provider)
	}

	seen := make(map[string]bool, len(c.Instances))
	for _, inst := range c.Instances {
		if inst.ID == "" || inst.URL == "" {
			return fmt.Errorf("every instance needs an id and a url")
		}
		if seen[inst.ID] {
			return fmt.Errorf("duplicate instance id %q", inst.ID)
		}
		seen[inst.ID] = true
	}

	for i := range c.Filters {
		if err := c.Filters[i].Validate(); err != nil {
			return fmt.Errorf("filter %d: %w", i, err)
		}
		for _, id := range c.Filters[i].Apply.IDs() {
			if !seen[id] {
				return fmt.Errorf("filter %d applies unknown instance %q", i, id)
			}
		}
	}

	return nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransform maps environment variable names to koanf config paths.
// Unmapped variables are skipped so unrelated environment noise never
// pollutes the configuration.
func envTransform(key string) string {
	mappings := map[string]string{
		"HTTP_HOST":         "server.host",
		"HTTP_PORT":         "server.port",
		"OVERSEERR_URL":     "overseerr.url",
		"OVERSEERR_API_KEY": "overseerr.api_key",
		"TRAKT_API_KEY":     "trakt.api_key",
		"METADATA_PROVIDER": "metadata.provider",
		"LOG_LEVEL":         "logging.level",
		"DATA_DIR":          "data_dir",
		"ROUTARR_API_KEY":   "api_key",
	}
	key = strings.ToUpper(key)
	if mapped, ok := mappings[key]; ok {
		return mapped
	}
	return ""
}
