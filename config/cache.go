package config

type CacheConfig struct {
	// capacity of the in-process fallback store
	MaxEntries int `toml:"max_entries" mapstructure:"max_entries" json:"max_entries"`

	// sizing of the search result memo
	NumCounters int64 `toml:"num_counters" mapstructure:"num_counters" json:"num_counters"`
	MaxCost     int64 `toml:"max_cost" mapstructure:"max_cost" json:"max_cost"`
}
