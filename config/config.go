package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log      Logger       `mapstructure:"logger"`
	DB       Database     `mapstructure:"database"`
	API      API          `mapstructure:"api"`
	Auth     Auth         `mapstructure:"auth"`
	Pipeline Pipeline     `mapstructure:"pipeline"`
	Yahoo    YahooFinance `mapstructure:"yahoo_finance"`
	Cache    Cache        `mapstructure:"cache"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type Database struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	TimeZone        string `mapstructure:"time_zone"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

type API struct {
	Port int `mapstructure:"port"`
}

type Auth struct {
	JWTSecret   string        `mapstructure:"jwt_secret"`
	TokenExpiry time.Duration `mapstructure:"token_expiry"`
}

// Pipeline controls the rating batch run: symbol fan-out width, the per-symbol
// deadline for ingest+train, and the cron expression for scheduled runs.
type Pipeline struct {
	MaxConcurrency int           `mapstructure:"max_concurrency"`
	SymbolTimeout  time.Duration `mapstructure:"symbol_timeout"`
	LookbackDays   int           `mapstructure:"lookback_days"`
	CronSchedule   string        `mapstructure:"cron_schedule"`
}

type YahooFinance struct {
	BaseURL             string        `mapstructure:"base_url"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
	RatingPoolTTL     time.Duration `mapstructure:"rating_pool_ttl"`
}

func Load() (*Config, error) {
	// .env is optional, real deployments inject the environment directly.
	_ = godotenv.Load()

	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	setDefaults()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")
	viper.SetDefault("api.port", 8080)
	viper.SetDefault("auth.token_expiry", 30*time.Minute)
	viper.SetDefault("pipeline.max_concurrency", 4)
	viper.SetDefault("pipeline.symbol_timeout", 2*time.Minute)
	viper.SetDefault("pipeline.lookback_days", 3650)
	viper.SetDefault("yahoo_finance.base_url", "https://query1.finance.yahoo.com/v8/finance/chart")
	viper.SetDefault("yahoo_finance.timeout", 30*time.Second)
	viper.SetDefault("yahoo_finance.max_request_per_minute", 60)
	viper.SetDefault("cache.default_expiration", 5*time.Minute)
	viper.SetDefault("cache.cleanup_interval", 10*time.Minute)
	viper.SetDefault("cache.rating_pool_ttl", 5*time.Minute)
}
