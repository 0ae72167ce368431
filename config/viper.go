package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

type Config struct {
	Lang         string `toml:"lang" mapstructure:"lang" json:"lang"`
	SuperAdminID int64  `toml:"super_admin_id" mapstructure:"super_admin_id" json:"super_admin_id"`
	SupportLink  string `toml:"support_link" mapstructure:"support_link" json:"support_link"`
	GroupLink    string `toml:"group_link" mapstructure:"group_link" json:"group_link"`

	Bot           BotConfig           `toml:"bot" mapstructure:"bot"`
	Telegram      TelegramConfig      `toml:"telegram" mapstructure:"telegram"`
	MongoDB       MongoConfig         `toml:"mongodb" mapstructure:"mongodb"`
	Redis         RedisConfig         `toml:"redis" mapstructure:"redis"`
	Cache         CacheConfig         `toml:"cache" mapstructure:"cache"`
	Search        SearchConfig        `toml:"search" mapstructure:"search"`
	Elasticsearch ElasticsearchConfig `toml:"elasticsearch" mapstructure:"elasticsearch"`
	Media         MediaConfig         `toml:"media" mapstructure:"media"`
	RateLimit     RateLimitConfig     `toml:"rate_limit" mapstructure:"rate_limit" json:"rate_limit"`
	Unsplash      UnsplashConfig      `toml:"unsplash" mapstructure:"unsplash"`
	Sentry        SentryConfig        `toml:"sentry" mapstructure:"sentry"`
	TMDB          APIKeyConfig        `toml:"tmdb" mapstructure:"tmdb"`
	OMDB          APIKeyConfig        `toml:"omdb" mapstructure:"omdb"`
	Prometheus    PrometheusConfig    `toml:"prometheus" mapstructure:"prometheus"`
	Log           LogConfig           `toml:"log" mapstructure:"log"`
}

type LogConfig struct {
	Level string `toml:"level" mapstructure:"level"`
	File  string `toml:"file" mapstructure:"file"`
}

type PrometheusConfig struct {
	Enabled bool `toml:"enabled" mapstructure:"enabled"`
	Port    int  `toml:"port" mapstructure:"port"`
}

// New returns a viper instance with every known key defaulted, so that
// environment variables such as BOT_TOKEN or MONGODB_URI are picked up by
// Unmarshal even when no config file exists.
func New() *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/mediaindex/")
	v.SetConfigType("toml")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("lang", "en")
	v.SetDefault("super_admin_id", 0)
	v.SetDefault("support_link", "https://t.me/support")
	v.SetDefault("group_link", "https://t.me/updates")

	v.SetDefault("bot.token", "")

	v.SetDefault("telegram.app_id", 1025907)
	v.SetDefault("telegram.app_hash", "452b0359b988148995f22ff0f4229750")
	v.SetDefault("telegram.session", "data/session.db")
	v.SetDefault("telegram.rpc_retry", 5)
	v.SetDefault("telegram.proxy_url", "")

	v.SetDefault("mongodb.uri", "")

	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.url", "")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.password", "")

	v.SetDefault("cache.max_entries", 1000)
	v.SetDefault("cache.num_counters", int64(100000))
	v.SetDefault("cache.max_cost", int64(1000000))

	v.SetDefault("search.engine", "mongodb_text")
	v.SetDefault("search.results_limit", 50)
	v.SetDefault("search.cache_ttl", 3600)
	v.SetDefault("search.index_path", "data/search_index")

	v.SetDefault("elasticsearch.enabled", false)
	v.SetDefault("elasticsearch.url", "")
	v.SetDefault("elasticsearch.host", "localhost")
	v.SetDefault("elasticsearch.port", 9200)
	v.SetDefault("elasticsearch.index", "media_files")
	v.SetDefault("elasticsearch.username", "")
	v.SetDefault("elasticsearch.password", "")

	v.SetDefault("media.storage_path", "data/media")
	v.SetDefault("media.temp_storage_path", "data/temp")
	v.SetDefault("media.max_file_size", int64(2147483648))
	v.SetDefault("media.allowed_extensions", DefaultAllowedExtensions)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 30)
	v.SetDefault("rate_limit.window", 60)

	v.SetDefault("unsplash.access_key", "")
	v.SetDefault("unsplash.proxy_url", "")
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("tmdb.api_key", "")
	v.SetDefault("omdb.api_key", "")

	v.SetDefault("prometheus.enabled", false)
	v.SetDefault("prometheus.port", 8000)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	// historical variable name for the local index directory
	_ = v.BindEnv("search.index_path", "SEARCH_INDEX_PATH", "WHOOSH_INDEX_PATH")
	return v
}

// Load reads the optional config file and .env file, unmarshals everything
// into a Config and validates it. An empty configFile searches the default
// locations; a missing default file is not an error.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if err := gotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	cfg.Media.AllowedExtensions = normalizeExtensions(cfg.Media.AllowedExtensions)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
