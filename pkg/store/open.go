package store

import (
	"context"
	"fmt"
)

// Backend names.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Config selects and configures a backend.
type Config struct {
	Backend string      `toml:"backend"`
	Dir     string      `toml:"dir"`
	Key     string      `toml:"key"`
	Redis   RedisConfig `toml:"redis"`
	Mongo   MongoConfig `toml:"mongo"`
}

// Open creates the store named by cfg.Backend. An empty backend means file.
func Open(ctx context.Context, cfg Config) (Store, error) {
	key := cfg.Key
	if key == "" {
		key = DefaultKey
	}
	switch cfg.Backend {
	case "", BackendFile:
		return NewFileStore(cfg.Dir, key)
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendRedis:
		rc := cfg.Redis
		rc.Key = key
		return NewRedisStore(ctx, rc)
	case BackendMongo:
		mc := cfg.Mongo
		mc.Key = key
		return NewMongoStore(ctx, mc)
	default:
		return nil, fmt.Errorf("unknown store backend %q (want file, memory, redis or mongo)", cfg.Backend)
	}
}
