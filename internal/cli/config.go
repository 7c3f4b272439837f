package cli

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/wayfinder/pkg/errors"
)

// Config holds the CLI configuration, read from a TOML file. All fields are
// optional; zero values fall back to built-in defaults.
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Redis  RedisConfig  `toml:"redis"`
	Mongo  MongoConfig  `toml:"mongo"`
	HTTP   HTTPConfig   `toml:"http"`
	Search SearchConfig `toml:"search"`
}

// CacheConfig controls the expansion cache.
type CacheConfig struct {
	Dir string       `toml:"dir"`
	TTL tomlDuration `toml:"ttl"`
}

// RedisConfig locates the Redis graph source.
type RedisConfig struct {
	Addr   string `toml:"addr"`
	Prefix string `toml:"prefix"`
}

// MongoConfig locates the MongoDB graph source.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// HTTPConfig configures the HTTP graph source.
type HTTPConfig struct {
	Timeout tomlDuration `toml:"timeout"`
}

// SearchConfig carries default search limits applied when the command-line
// flags are left at zero.
type SearchConfig struct {
	MaxIterations int     `toml:"max_iterations"`
	MaxCost       float64 `toml:"max_cost"`
}

// tomlDuration parses durations from strings like "15m" or "10s".
type tomlDuration time.Duration

func (d *tomlDuration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = tomlDuration(parsed)
	return nil
}

// LoadConfig reads the config file at path. An empty path means the default
// location (~/.config/wayfinder/config.toml); a missing default file yields
// a zero config, while an explicitly named file must exist.
func LoadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		def, err := defaultConfigPath()
		if err != nil {
			return Config{}, nil
		}
		path = def
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return Config{}, nil
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load config %s", path)
	}
	return cfg, nil
}

// defaultConfigPath returns the XDG config location for the CLI.
func defaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// cacheTTL returns the configured cache TTL or the built-in default.
func (cfg Config) cacheTTL() time.Duration {
	if cfg.Cache.TTL > 0 {
		return time.Duration(cfg.Cache.TTL)
	}
	return defaultCacheTTL
}

// httpTimeout returns the configured HTTP source timeout or a default.
func (cfg Config) httpTimeout() time.Duration {
	if cfg.HTTP.Timeout > 0 {
		return time.Duration(cfg.HTTP.Timeout)
	}
	return 10 * time.Second
}
