package config

import (
	"net"
	"strconv"
)

type MongoConfig struct {
	URI string `toml:"uri" mapstructure:"uri"`
}

// RedisConfig describes the optional cache service. URL takes precedence
// over the individual host/port/db/password fields.
type RedisConfig struct {
	Enabled  bool   `toml:"enabled" mapstructure:"enabled"`
	URL      string `toml:"url" mapstructure:"url"`
	Host     string `toml:"host" mapstructure:"host"`
	Port     int    `toml:"port" mapstructure:"port"`
	DB       int    `toml:"db" mapstructure:"db"`
	Password string `toml:"password" mapstructure:"password"`
}

func (c RedisConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
