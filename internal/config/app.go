package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type App struct {
	Version string `mapstructure:"version"`
}

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type RateProvider struct {
	BaseURL      string `mapstructure:"base_url"`
	APIKey       string `mapstructure:"api_key"`
	BaseCurrency string `mapstructure:"base_currency"`
}

type RateCache struct {
	TTLSeconds int   `mapstructure:"ttl_seconds"`
	MaxItems   int64 `mapstructure:"max_items"`
}

type Scheduler struct {
	// RefreshIntervalSec <= 0 disables the background refresh job.
	RefreshIntervalSec int `mapstructure:"refresh_interval_sec"`
}

type Currencies struct {
	Supported []string `mapstructure:"supported"`
}

type AppConfig struct {
	App          App          `mapstructure:"app"`
	HTTPServer   HTTPServer   `mapstructure:"http_server"`
	DbServer     DbServer     `mapstructure:"db_server"`
	HTTPClient   HTTPClient   `mapstructure:"http_client"`
	Logging      Logging      `mapstructure:"logging"`
	RateProvider RateProvider `mapstructure:"rate_provider"`
	RateCache    RateCache    `mapstructure:"rate_cache"`
	Scheduler    Scheduler    `mapstructure:"scheduler"`
	Currencies   Currencies   `mapstructure:"currencies"`
}

// Validate normalizes currency codes and checks the values the rate pipeline depends on.
func (cfg *AppConfig) Validate() error {
	codes := make([]string, 0, len(cfg.Currencies.Supported))
	for _, c := range cfg.Currencies.Supported {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c != "" && !slices.Contains(codes, c) {
			codes = append(codes, c)
		}
	}
	if len(codes) == 0 {
		return errors.New("at least one supported currency is required")
	}
	cfg.Currencies.Supported = codes

	cfg.RateProvider.BaseCurrency = strings.ToUpper(strings.TrimSpace(cfg.RateProvider.BaseCurrency))
	if !slices.Contains(codes, cfg.RateProvider.BaseCurrency) {
		return fmt.Errorf("base currency %q is not in the supported currencies %v", cfg.RateProvider.BaseCurrency, codes)
	}
	if cfg.RateProvider.BaseURL == "" {
		return errors.New("rate provider base url is required")
	}
	if cfg.RateCache.TTLSeconds <= 0 {
		return fmt.Errorf("rate cache ttl must be positive, got %d", cfg.RateCache.TTLSeconds)
	}
	return nil
}

func Init() (*AppConfig, error) {
	return load(viper.New(), "config.yaml")
}

func load(v *viper.Viper, configFile string) (*AppConfig, error) {
	var cfg AppConfig

	// .env is optional, real environment variables win anyway
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("No .env file loaded: %v", err)
	}

	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("http_server.port", "8080")
	v.SetDefault("db_server.max_conns", 10)
	v.SetDefault("http_client.timeout_seconds", 10)
	v.SetDefault("logging.level", "info")
	v.SetDefault("rate_provider.base_url", "http://api.exchangeratesapi.io/latest")
	v.SetDefault("rate_provider.base_currency", "EUR")
	v.SetDefault("rate_cache.ttl_seconds", 3600)
	v.SetDefault("rate_cache.max_items", 64)
	v.SetDefault("scheduler.refresh_interval_sec", 0)
	v.SetDefault("currencies.supported", []string{"USD", "EUR", "JPY", "BRL"})

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !isMissingFile(err) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
			logrus.Infof("Config file %s not found, using defaults and environment", configFile)
		}
	}

	_ = v.BindEnv("app.version", "APP_VERSION")

	_ = v.BindEnv("http_server.port", "HTTP_PORT")

	// db server env vars
	_ = v.BindEnv("db_server.host", "DB_HOST")
	_ = v.BindEnv("db_server.port", "DB_PORT")
	_ = v.BindEnv("db_server.user", "DB_USER")
	_ = v.BindEnv("db_server.pass", "DB_PASS")
	_ = v.BindEnv("db_server.name", "DB_NAME")
	_ = v.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	// http client env vars
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	_ = v.BindEnv("logging.level", "LOG_LEVEL")

	// rate provider env vars
	_ = v.BindEnv("rate_provider.base_url", "RATE_PROVIDER_BASE_URL")
	_ = v.BindEnv("rate_provider.api_key", "EXCHANGE_RATE_API_KEY")
	_ = v.BindEnv("rate_provider.base_currency", "RATE_PROVIDER_BASE_CURRENCY")

	_ = v.BindEnv("rate_cache.ttl_seconds", "RATE_CACHE_TTL_SECONDS")
	_ = v.BindEnv("rate_cache.max_items", "RATE_CACHE_MAX_ITEMS")
	_ = v.BindEnv("scheduler.refresh_interval_sec", "SCHEDULER_REFRESH_INTERVAL_SEC")
	_ = v.BindEnv("currencies.supported", "SUPPORTED_CURRENCIES")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// viper reports a missing explicit config file as a plain fs error
func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
