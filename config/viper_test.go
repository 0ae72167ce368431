package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("SUPER_ADMIN_ID", "42")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017/media_bot")
}

func TestLoadFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	setRequired(t)
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("SEARCH_ENGINE", "elasticsearch")
	t.Setenv("ELASTICSEARCH_ENABLED", "true")
	t.Setenv("MEDIA_ALLOWED_EXTENSIONS", ".MP4, mkv,,mkv")
	t.Setenv("WHOOSH_INDEX_PATH", "/var/lib/index")

	cfg, err := Load(New(), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Bot.Token != "123:abc" || cfg.SuperAdminID != 42 {
		t.Fatalf("unexpected bot settings: %+v %d", cfg.Bot, cfg.SuperAdminID)
	}
	if cfg.Redis.Enabled {
		t.Fatal("expected redis to be disabled")
	}
	if cfg.Search.Engine != "elasticsearch" || !cfg.Elasticsearch.Enabled {
		t.Fatalf("unexpected search settings: %+v %+v", cfg.Search, cfg.Elasticsearch)
	}
	if want := []string{"mp4", "mkv"}; !reflect.DeepEqual(cfg.Media.AllowedExtensions, want) {
		t.Fatalf("AllowedExtensions = %v, want %v", cfg.Media.AllowedExtensions, want)
	}
	if cfg.Search.IndexPath != "/var/lib/index" {
		t.Fatalf("IndexPath = %q", cfg.Search.IndexPath)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	setRequired(t)

	cfg, err := Load(New(), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Redis.Enabled || cfg.Redis.Addr() != "localhost:6379" {
		t.Fatalf("unexpected redis defaults: %+v", cfg.Redis)
	}
	if cfg.Search.ResultsLimit != 50 || cfg.Search.CacheTTL != 3600 {
		t.Fatalf("unexpected search defaults: %+v", cfg.Search)
	}
	if cfg.Media.MaxFileSize != 2147483648 {
		t.Fatalf("MaxFileSize = %d", cfg.Media.MaxFileSize)
	}
	if cfg.Elasticsearch.Address() != "http://localhost:9200" || cfg.Elasticsearch.Index != "media_files" {
		t.Fatalf("unexpected elasticsearch defaults: %+v", cfg.Elasticsearch)
	}
	if cfg.Cache.MaxEntries != 1000 {
		t.Fatalf("MaxEntries = %d", cfg.Cache.MaxEntries)
	}
	if cfg.RateLimit.WindowDuration().Seconds() != 60 {
		t.Fatalf("unexpected rate limit window %v", cfg.RateLimit.WindowDuration())
	}
}

func TestLoadMissingRequired(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("SUPER_ADMIN_ID", "")
	t.Setenv("MONGODB_URI", "")

	_, err := Load(New(), "")
	if err == nil {
		t.Fatal("expected an error for missing required options")
	}
	for _, want := range []string{"BOT_TOKEN", "SUPER_ADMIN_ID", "MONGODB_URI"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "bot.toml")
	content := `
super_admin_id = 7
[bot]
token = "from-file"
[mongodb]
uri = "mongodb://db:27017/catalog"
[search]
engine = "fileindex"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(New(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Bot.Token != "from-file" || cfg.SuperAdminID != 7 || cfg.Search.Engine != "fileindex" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	setRequired(t)
	if _, err := Load(New(), "does-not-exist.toml"); err == nil {
		t.Fatal("expected an error for an explicit config path that does not exist")
	}
}

func TestExtensionAllowed(t *testing.T) {
	m := MediaConfig{AllowedExtensions: []string{"mp4", "mkv"}}
	if !m.ExtensionAllowed(".MP4") || !m.ExtensionAllowed("mkv") {
		t.Fatal("expected mp4 and mkv to be allowed")
	}
	if m.ExtensionAllowed("exe") {
		t.Fatal("exe must not be allowed")
	}
}
