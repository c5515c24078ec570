package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string            `toml:"environment"` // "development" or "production"
	Server      ServerConfig      `toml:"server"`
	Storage     StorageConfig     `toml:"storage"`
	Logging     LoggingConfig     `toml:"logging"`
	Catalog     CatalogConfig     `toml:"catalog"`
	Disclosures DisclosureConfig  `toml:"disclosures"`
	Weather     WeatherConfig     `toml:"weather"`
	WebSocket   WebSocketConfig   `toml:"websocket"`
	Scheduler   SchedulerConfig   `toml:"scheduler"`
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

// CatalogConfig configures the security catalog sync.
type CatalogConfig struct {
	BaseURL      string `toml:"base_url"`      // Exchange listing feed base URL
	SyncSchedule string `toml:"sync_schedule"` // Cron schedule for the catalog sync job
	RateLimit    int    `toml:"rate_limit"`    // Requests per second to the feed
}

// DisclosureConfig configures the disclosure source and cache.
type DisclosureConfig struct {
	BaseURL      string `toml:"base_url"`      // DART-style open API base URL
	APIKey       string `toml:"api_key"`       // API key for the disclosure source
	LookbackDays int    `toml:"lookback_days"` // Filing lookback window (default 30)
	PageSize     int    `toml:"page_size"`     // Max filings per fetch (default 100)
	CacheTTL     string `toml:"cache_ttl"`     // TTL for the fetched batch, e.g. "5m"
	RateLimit    int    `toml:"rate_limit"`    // Requests per second to the source
}

// WeatherConfig configures the analysis pipeline surface.
type WeatherConfig struct {
	MaxInsights int `toml:"max_insights"` // Cap on generated insight strings (default 4)
}

// WebSocketConfig configures the realtime search exchange.
type WebSocketConfig struct {
	DefaultSearchLimit int `toml:"default_search_limit"` // Result cap when the client omits one (default 20)
	MaxSearchLimit     int `toml:"max_search_limit"`     // Hard cap on client-requested limits (default 50)
}

// SchedulerConfig configures background jobs.
type SchedulerConfig struct {
	Enabled bool `toml:"enabled"`
}

// NewDefaultConfig returns a config populated with defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8090,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data/stockweather",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
		},
		Catalog: CatalogConfig{
			BaseURL:      "https://kind.krx.co.kr/api",
			SyncSchedule: "0 */6 * * *",
			RateLimit:    5,
		},
		Disclosures: DisclosureConfig{
			BaseURL:      "https://opendart.fss.or.kr/api",
			LookbackDays: 30,
			PageSize:     100,
			CacheTTL:     "5m",
			RateLimit:    5,
		},
		Weather: WeatherConfig{
			MaxInsights: 4,
		},
		WebSocket: WebSocketConfig{
			DefaultSearchLimit: 20,
			MaxSearchLimit:     50,
		},
		Scheduler: SchedulerConfig{
			Enabled: true,
		},
	}
}

// LoadFromFiles loads configuration by merging defaults, the given TOML
// files in order (later files override earlier ones), and environment
// variable overrides.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("STOCKWEATHER_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	if port := os.Getenv("STOCKWEATHER_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("STOCKWEATHER_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	if badgerPath := os.Getenv("STOCKWEATHER_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}

	if level := os.Getenv("STOCKWEATHER_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("STOCKWEATHER_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	if key := os.Getenv("STOCKWEATHER_DART_API_KEY"); key != "" {
		config.Disclosures.APIKey = key
	}
	if url := os.Getenv("STOCKWEATHER_DART_BASE_URL"); url != "" {
		config.Disclosures.BaseURL = url
	}
	if url := os.Getenv("STOCKWEATHER_CATALOG_BASE_URL"); url != "" {
		config.Catalog.BaseURL = url
	}
}

// ApplyFlagOverrides applies command-line flag overrides (highest priority).
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}
