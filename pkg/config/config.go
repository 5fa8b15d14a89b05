// Package config loads familytower settings from a TOML file.
//
// A missing file is not an error: every field has a default, and the file
// only needs the keys that differ. Paths follow the XDG base directory
// convention:
//
//	config: $XDG_CONFIG_HOME/familytower/config.toml (~/.config/familytower)
//	data:   $XDG_CONFIG_HOME/familytower             (file store snapshots)
//	cache:  $XDG_CACHE_HOME/familytower              (~/.cache/familytower)
//
// Example file:
//
//	[store]
//	backend = "redis"
//	key = "family-canvas-data"
//
//	[store.redis]
//	addr = "localhost:6379"
//
//	[layout]
//	node_width = 220
//
//	[server]
//	addr = ":8080"
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/familytower/pkg/cache"
	"github.com/matzehuels/familytower/pkg/layout"
	"github.com/matzehuels/familytower/pkg/store"
)

// AppName names the config, data and cache directories.
const AppName = "familytower"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config is the full configuration.
type Config struct {
	Store  store.Config   `toml:"store"`
	Cache  CacheConfig    `toml:"cache"`
	Layout layout.Options `toml:"layout"`
	Server ServerConfig   `toml:"server"`
}

// CacheConfig selects the cache for positions and rendered diagrams.
type CacheConfig struct {
	Backend string            `toml:"backend"`
	Dir     string            `toml:"dir"`
	// TTL bounds how long rendered diagrams are kept.
	TTL   time.Duration     `toml:"ttl"`
	Redis cache.RedisConfig `toml:"redis"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string        `toml:"addr"`
	ReadTimeout     time.Duration `toml:"read_timeout"`
	WriteTimeout    time.Duration `toml:"write_timeout"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Store:  store.Config{Backend: store.BackendFile, Key: store.DefaultKey},
		Cache:  CacheConfig{Backend: CacheFile, TTL: 7 * 24 * time.Hour, Redis: cache.RedisConfig{Addr: "localhost:6379", Prefix: AppName + ":"}},
		Layout: layout.DefaultOptions(),
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
	}
}

// Load reads path over the defaults. An empty path uses [DefaultPath]; a
// missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}
	md, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("config %s: unknown keys %v", path, undecoded)
	}
	return cfg, cfg.Validate()
}

// Validate checks backend names.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case "", store.BackendFile, store.BackendMemory, store.BackendRedis, store.BackendMongo:
	default:
		return fmt.Errorf("store.backend: unknown backend %q", c.Store.Backend)
	}
	switch c.Cache.Backend {
	case "", CacheFile, CacheRedis, CacheNone:
	default:
		return fmt.Errorf("cache.backend: unknown backend %q", c.Cache.Backend)
	}
	if c.Store.Backend == store.BackendMongo && c.Store.Mongo.URI == "" {
		return fmt.Errorf("store.mongo.uri is required for the mongo backend")
	}
	return nil
}

// Write saves cfg as TOML, creating parent directories.
func Write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return f.Close()
}

// OpenStore opens the configured snapshot store. The file store defaults to
// [DataDir].
func (c Config) OpenStore(ctx context.Context) (store.Store, error) {
	sc := c.Store
	if (sc.Backend == "" || sc.Backend == store.BackendFile) && sc.Dir == "" {
		dir, err := DataDir()
		if err != nil {
			return nil, err
		}
		sc.Dir = dir
	}
	return store.Open(ctx, sc)
}

// OpenCache opens the configured cache. A file cache that cannot be created
// degrades to no caching.
func (c Config) OpenCache(ctx context.Context) (cache.Cache, error) {
	switch c.Cache.Backend {
	case CacheNone:
		return cache.NewNullCache(), nil
	case CacheRedis:
		return cache.NewRedisCache(ctx, c.Cache.Redis)
	default:
		dir := c.Cache.Dir
		if dir == "" {
			d, err := CacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	}
}

// DefaultPath returns the config file location.
func DefaultPath() (string, error) {
	dir, err := configHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName, "config.toml"), nil
}

// DataDir returns the directory of file store snapshots.
func DataDir() (string, error) {
	dir, err := configHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName), nil
}

// CacheDir returns the cache directory using XDG standard (~/.cache/familytower/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

func configHome() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config"), nil
}
