package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func RegisterFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringP("config", "c", "", "config file path")
	flags.StringP("lang", "l", "", "language (e.g., en)")
	flags.Int64("super-admin-id", 0, "telegram id of the super admin")

	flags.String("bot-token", "", "telegram bot token")
	flags.Int("telegram-app-id", 0, "telegram app id")
	flags.String("telegram-app-hash", "", "telegram app hash")
	flags.String("telegram-proxy-url", "", "telegram proxy URL (socks5, http)")

	flags.String("mongodb-uri", "", "mongodb connection uri")
	flags.Bool("redis-enabled", true, "use redis for caching when reachable")
	flags.String("redis-url", "", "redis connection url")

	flags.String("search-engine", "", "search backend (mongodb_text, fileindex, elasticsearch)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
}

// BindFlags binds the flags registered by RegisterFlags to v. Only flags the
// user actually set override other sources.
func BindFlags(cmd *cobra.Command, v *viper.Viper) {
	flags := cmd.PersistentFlags()

	v.BindPFlag("lang", flags.Lookup("lang"))
	v.BindPFlag("super_admin_id", flags.Lookup("super-admin-id"))

	v.BindPFlag("bot.token", flags.Lookup("bot-token"))
	v.BindPFlag("telegram.app_id", flags.Lookup("telegram-app-id"))
	v.BindPFlag("telegram.app_hash", flags.Lookup("telegram-app-hash"))
	v.BindPFlag("telegram.proxy_url", flags.Lookup("telegram-proxy-url"))

	v.BindPFlag("mongodb.uri", flags.Lookup("mongodb-uri"))
	v.BindPFlag("redis.enabled", flags.Lookup("redis-enabled"))
	v.BindPFlag("redis.url", flags.Lookup("redis-url"))

	v.BindPFlag("search.engine", flags.Lookup("search-engine"))
	v.BindPFlag("log.level", flags.Lookup("log-level"))
}

func GetConfigFile(cmd *cobra.Command) string {
	configFile, _ := cmd.Flags().GetString("config")
	return configFile
}
