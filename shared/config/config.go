package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	DefaultBaseURL               = "http://127.0.0.1:9999"
	DefaultConnectTimeout        = 30 * time.Second
	DefaultMaxConcurrentRequests = 64
	DefaultSlowAPIAddr           = ":9999"
	DefaultSlowAPIDelay          = 1 * time.Second
	DefaultMetricsJob            = "post_aggregator"
	DefaultServiceName           = "post-aggregator"
)

type Config struct {
	BaseURL               string        `yaml:"base_url" validate:"required,url"`
	ConnectTimeout        time.Duration `yaml:"connect_timeout" validate:"gte=0"`
	MaxConcurrentRequests int           `yaml:"max_concurrent_requests" validate:"min=1"`
	Log                   Log           `yaml:"log"`
	Metrics               Metrics       `yaml:"metrics"`
	Tracing               Tracing       `yaml:"tracing"`
	SlowAPI               SlowAPI       `yaml:"slowapi"`
}

type Log struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

type Metrics struct {
	PushgatewayURL string `yaml:"pushgateway_url" validate:"omitempty,url"`
	Job            string `yaml:"job"`
}

// Tracing is disabled while OTLPEndpoint is empty.
type Tracing struct {
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	ServiceName  string `yaml:"service_name"`
}

// SlowAPI configures the fixture server that stands in for the remote service.
type SlowAPI struct {
	Addr           string        `yaml:"addr"`
	Delay          time.Duration `yaml:"delay" validate:"gte=0"` // applied to /api/slow/* only
	FixturePath    string        `yaml:"fixture_path"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
}

// Default returns the configuration used when no file sets a key.
func Default() *Config {
	return &Config{
		BaseURL:               DefaultBaseURL,
		ConnectTimeout:        DefaultConnectTimeout,
		MaxConcurrentRequests: DefaultMaxConcurrentRequests,
		Log:                   Log{Level: "info"},
		Metrics:               Metrics{Job: DefaultMetricsJob},
		Tracing:               Tracing{ServiceName: DefaultServiceName},
		SlowAPI: SlowAPI{
			Addr:           DefaultSlowAPIAddr,
			Delay:          DefaultSlowAPIDelay,
			AllowedOrigins: []string{"*"},
		},
	}
}

// Load reads configPath over the defaults, then applies .env and environment overrides.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("can't read config file %s: %w", configPath, err)
	}
	if err := yaml.Unmarshal(configFile, cfg); err != nil {
		return nil, fmt.Errorf("can't unmarshal config file %s: %w", configPath, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("can't load .env: %w", err)
	}
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(err.Error())
	}
	return cfg
}

func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.BaseURL = envOr("AGGREGATOR_BASE_URL", cfg.BaseURL)
	cfg.Log.Level = envOr("LOG_LEVEL", cfg.Log.Level)
	cfg.Metrics.PushgatewayURL = envOr("PUSHGATEWAY_URL", cfg.Metrics.PushgatewayURL)
	cfg.Tracing.OTLPEndpoint = envOr("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Tracing.OTLPEndpoint)
	cfg.SlowAPI.Addr = envOr("SLOWAPI_ADDR", cfg.SlowAPI.Addr)
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
