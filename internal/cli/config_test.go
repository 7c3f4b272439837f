package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[cache]
dir = "/tmp/wayfinder-cache"
ttl = "30m"

[redis]
addr = "localhost:6379"
prefix = "wf"

[mongo]
uri = "mongodb://localhost:27017"
database = "graphs"

[search]
max_iterations = 1000
max_cost = 99.5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Cache.Dir != "/tmp/wayfinder-cache" {
		t.Errorf("Cache.Dir = %q", cfg.Cache.Dir)
	}
	if got := cfg.cacheTTL(); got != 30*time.Minute {
		t.Errorf("cacheTTL() = %v, want 30m", got)
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.Redis.Prefix != "wf" {
		t.Errorf("Redis = %+v", cfg.Redis)
	}
	if cfg.Mongo.Database != "graphs" {
		t.Errorf("Mongo.Database = %q", cfg.Mongo.Database)
	}
	if cfg.Search.MaxIterations != 1000 || cfg.Search.MaxCost != 99.5 {
		t.Errorf("Search = %+v", cfg.Search)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	var cfg Config

	if got := cfg.cacheTTL(); got != defaultCacheTTL {
		t.Errorf("cacheTTL() = %v, want %v", got, defaultCacheTTL)
	}
	if got := cfg.httpTimeout(); got != 10*time.Second {
		t.Errorf("httpTimeout() = %v, want 10s", got)
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("LoadConfig() error = nil, want error for missing explicit file")
	}
}

func TestLoadConfigMissingDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v, want zero config", err)
	}
	if cfg != (Config{}) {
		t.Errorf("LoadConfig() = %+v, want zero config", cfg)
	}
}

func TestLoadConfigRejectsBadTTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[cache]\nttl = \"soon\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() error = nil, want duration parse error")
	}
}
