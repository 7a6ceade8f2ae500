package session

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Driver identifies a session store backend.
type Driver string

const (
	DriverMemory Driver = "memory"
	DriverRedis  Driver = "redis"
)

// StoreOption configures store construction.
type StoreOption func(*storeConfig)

type storeConfig struct {
	redisClient *redis.Client
	redisTTL    time.Duration
}

// WithRedisClient sets the redis client used by the redis driver.
func WithRedisClient(client *redis.Client) StoreOption {
	return func(c *storeConfig) {
		c.redisClient = client
	}
}

// WithRedisTTL sets an idle expiry on conversations in the redis driver.
// Zero (the default) keeps conversations until explicitly deleted —
// slot lifecycle stays turn-driven.
func WithRedisTTL(ttl time.Duration) StoreOption {
	return func(c *storeConfig) {
		c.redisTTL = ttl
	}
}

// NewStore creates a Store for the given driver. The redis driver requires
// WithRedisClient.
func NewStore(driver Driver, opts ...StoreOption) (Store, error) {
	config := &storeConfig{}
	for _, opt := range opts {
		opt(config)
	}

	switch driver {
	case DriverMemory:
		return NewMemoryStore(), nil

	case DriverRedis:
		if config.redisClient == nil {
			return nil, fmt.Errorf("%w: redis driver requires a client", ErrInvalidConfig)
		}
		return &redisStore{
			client: config.redisClient,
			ttl:    config.redisTTL,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidDriver, driver)
	}
}
