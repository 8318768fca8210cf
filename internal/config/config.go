package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	MealDBBaseURL        string        `mapstructure:"mealdb_base_url"`
	MealDBTimeoutSeconds int64         `mapstructure:"mealdb_timeout_seconds"`
	MealDBUserAgent      string        `mapstructure:"mealdb_user_agent"`
	MealDBTimeout        time.Duration `mapstructure:"-"`

	SourcesFile         string        `mapstructure:"sources_file"`
	PublishersFile      string        `mapstructure:"publishers_file"`
	FeedIntervalSeconds int64         `mapstructure:"feed_interval"`
	FeedInterval        time.Duration `mapstructure:"-"`
	EnrichSourcePages   bool          `mapstructure:"enrich_source_pages"`

	StorageType            string        `mapstructure:"storage_type"`
	BBoltPath              string        `mapstructure:"bbolt_path"`
	StorageTTLSeconds      int64         `mapstructure:"storage_ttl_seconds"`
	StorageCleanupSeconds  int64         `mapstructure:"storage_cleanup_interval_seconds"`
	StorageTTL             time.Duration `mapstructure:"-"`
	StorageCleanupInterval time.Duration `mapstructure:"-"`
}

// Load reads configuration from configs/.env and the environment.
func Load() (*Config, error) {
	return LoadFrom("configs/.env")
}

// LoadFrom is Load with an explicit dotenv path. A missing file is not an error.
func LoadFrom(envFile string) (*Config, error) {
	if envFile != "" {
		_ = godotenv.Load(envFile)
	}

	v := viper.New()

	v.SetDefault("app_name", "mealdb")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("mealdb_base_url", "https://themealdb.com/api/json/v1/1/")
	v.SetDefault("mealdb_timeout_seconds", 15)
	v.SetDefault("mealdb_user_agent", "mealdb-go")
	v.SetDefault("sources_file", "./configs/sources.yaml")
	v.SetDefault("publishers_file", "./configs/publishers.yaml")
	v.SetDefault("feed_interval", 3600) // seconds
	v.SetDefault("enrich_source_pages", false)
	v.SetDefault("storage_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/meals.db")
	v.SetDefault("storage_ttl_seconds", int64((30*24*time.Hour)/time.Second))
	v.SetDefault("storage_cleanup_interval_seconds", int64((12*time.Hour)/time.Second))

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.MealDBTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid mealdb_timeout_seconds (must be positive seconds)")
	}
	cfg.MealDBTimeout = time.Duration(cfg.MealDBTimeoutSeconds) * time.Second

	if cfg.FeedIntervalSeconds <= 0 {
		return nil, fmt.Errorf("invalid feed_interval (must be positive seconds)")
	}
	cfg.FeedInterval = time.Duration(cfg.FeedIntervalSeconds) * time.Second

	if cfg.StorageTTLSeconds <= 0 {
		return nil, fmt.Errorf("invalid storage_ttl_seconds (must be positive seconds)")
	}
	if cfg.StorageCleanupSeconds <= 0 {
		return nil, fmt.Errorf("invalid storage_cleanup_interval_seconds (must be positive seconds)")
	}
	cfg.StorageTTL = time.Duration(cfg.StorageTTLSeconds) * time.Second
	cfg.StorageCleanupInterval = time.Duration(cfg.StorageCleanupSeconds) * time.Second

	return &cfg, nil
}
