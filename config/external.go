package config

type UnsplashConfig struct {
	AccessKey string `toml:"access_key" mapstructure:"access_key" json:"access_key"`
	ProxyURL  string `toml:"proxy_url" mapstructure:"proxy_url" json:"proxy_url"`
}

// SentryConfig and the metadata API keys are accepted so existing
// deployments keep a valid configuration; nothing reports to them yet.
type SentryConfig struct {
	DSN string `toml:"dsn" mapstructure:"dsn"`
}

type APIKeyConfig struct {
	APIKey string `toml:"api_key" mapstructure:"api_key" json:"api_key"`
}
