package config

type BotConfig struct {
	Token string `toml:"token" mapstructure:"token"`
}

type TelegramConfig struct {
	AppID    int    `toml:"app_id" mapstructure:"app_id" json:"app_id"`
	AppHash  string `toml:"app_hash" mapstructure:"app_hash" json:"app_hash"`
	Session  string `toml:"session" mapstructure:"session"`
	RpcRetry int    `toml:"rpc_retry" mapstructure:"rpc_retry" json:"rpc_retry"`
	ProxyURL string `toml:"proxy_url" mapstructure:"proxy_url" json:"proxy_url"`
}
