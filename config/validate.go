package config

import (
	"errors"
	"fmt"
)

// Validate reports every missing or out of range option at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Bot.Token == "" {
		errs = append(errs, errors.New("bot token is required (BOT_TOKEN or bot.token)"))
	}
	if c.SuperAdminID <= 0 {
		errs = append(errs, errors.New("super admin id is required (SUPER_ADMIN_ID or super_admin_id)"))
	}
	if c.MongoDB.URI == "" {
		errs = append(errs, errors.New("mongodb uri is required (MONGODB_URI or mongodb.uri)"))
	}
	if c.Search.ResultsLimit <= 0 {
		errs = append(errs, fmt.Errorf("search.results_limit must be positive, got %d", c.Search.ResultsLimit))
	}
	if c.Cache.MaxEntries <= 100 {
		errs = append(errs, fmt.Errorf("cache.max_entries must be greater than 100, got %d", c.Cache.MaxEntries))
	}
	if c.RateLimit.Enabled && (c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0) {
		errs = append(errs, fmt.Errorf("rate_limit requests and window must be positive, got requests=%d window=%d",
			c.RateLimit.Requests, c.RateLimit.Window))
	}
	if c.Media.MaxFileSize <= 0 {
		errs = append(errs, fmt.Errorf("media.max_file_size must be positive, got %d", c.Media.MaxFileSize))
	}
	return errors.Join(errs...)
}
