package config

import (
	"fmt"
	"time"
)

type SearchConfig struct {
	Engine       string `toml:"engine" mapstructure:"engine"`
	ResultsLimit int    `toml:"results_limit" mapstructure:"results_limit" json:"results_limit"`
	CacheTTL     int64  `toml:"cache_ttl" mapstructure:"cache_ttl" json:"cache_ttl"` // seconds
	IndexPath    string `toml:"index_path" mapstructure:"index_path" json:"index_path"`
}

func (c SearchConfig) CacheDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

type ElasticsearchConfig struct {
	Enabled  bool   `toml:"enabled" mapstructure:"enabled"`
	URL      string `toml:"url" mapstructure:"url"`
	Host     string `toml:"host" mapstructure:"host"`
	Port     int    `toml:"port" mapstructure:"port"`
	Index    string `toml:"index" mapstructure:"index"`
	Username string `toml:"username" mapstructure:"username"`
	Password string `toml:"password" mapstructure:"password"`
}

func (c ElasticsearchConfig) Address() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("http://%s:%d", c.Host, c.Port)
}
