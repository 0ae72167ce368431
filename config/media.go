package config

import (
	"strings"
	"time"

	"github.com/duke-git/lancet/v2/slice"
)

var DefaultAllowedExtensions = []string{
	"mp4", "mkv", "avi", "mov", "wmv", "flv", "webm", "m4v",
	"mp3", "flac", "wav", "aac", "ogg", "m4a",
	"pdf", "zip", "rar", "7z", "srt",
	"jpg", "jpeg", "png", "webp",
}

type MediaConfig struct {
	StoragePath       string   `toml:"storage_path" mapstructure:"storage_path" json:"storage_path"`
	TempStoragePath   string   `toml:"temp_storage_path" mapstructure:"temp_storage_path" json:"temp_storage_path"`
	MaxFileSize       int64    `toml:"max_file_size" mapstructure:"max_file_size" json:"max_file_size"`
	AllowedExtensions []string `toml:"allowed_extensions" mapstructure:"allowed_extensions" json:"allowed_extensions"`
}

// ExtensionAllowed reports whether a file extension, with or without the
// leading dot, is in the allow list.
func (c MediaConfig) ExtensionAllowed(ext string) bool {
	return slice.Contain(c.AllowedExtensions, strings.ToLower(strings.TrimPrefix(ext, ".")))
}

type RateLimitConfig struct {
	Enabled  bool `toml:"enabled" mapstructure:"enabled"`
	Requests int  `toml:"requests" mapstructure:"requests"`
	Window   int  `toml:"window" mapstructure:"window"` // seconds
}

func (c RateLimitConfig) WindowDuration() time.Duration {
	return time.Duration(c.Window) * time.Second
}

func normalizeExtensions(exts []string) []string {
	exts = slice.Map(exts, func(_ int, ext string) string {
		return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	})
	exts = slice.Filter(exts, func(_ int, ext string) bool { return ext != "" })
	return slice.Unique(exts)
}
