package session

import (
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds connection parameters for the redis driver.
type RedisConfig struct {
	Addr     string `json:"addr,omitempty"`
	Password string `json:"password,omitempty"`
	DB       int    `json:"db,omitempty"`
	// TTLSeconds is the idle expiry for conversations; 0 means no expiry.
	TTLSeconds int `json:"ttl_seconds,omitempty"`
}

// Config holds session store initialization parameters.
type Config struct {
	Driver Driver      `json:"driver,omitempty"`
	Redis  RedisConfig `json:"redis,omitempty"`
}

// DefaultConfig returns the default session configuration: the in-process
// memory driver.
func DefaultConfig() Config {
	return Config{Driver: DriverMemory}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Driver != "" {
		c.Driver = source.Driver
	}
	if source.Redis.Addr != "" {
		c.Redis.Addr = source.Redis.Addr
	}
	if source.Redis.Password != "" {
		c.Redis.Password = source.Redis.Password
	}
	if source.Redis.DB != 0 {
		c.Redis.DB = source.Redis.DB
	}
	if source.Redis.TTLSeconds != 0 {
		c.Redis.TTLSeconds = source.Redis.TTLSeconds
	}
}

// New creates a Store from configuration. The redis driver dials the
// configured address; connection health surfaces on first use.
func New(cfg *Config) (Store, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverMemory
	}

	if driver != DriverRedis {
		return NewStore(driver)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	return NewStore(DriverRedis,
		WithRedisClient(client),
		WithRedisTTL(time.Duration(cfg.Redis.TTLSeconds)*time.Second),
	)
}
