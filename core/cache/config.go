package cache

import "time"

// Config holds configuration for the provider response cache.
type Config struct {
	// Driver selects the backend (memory, redis, none).
	Driver string `mapstructure:"driver" default:"memory"`
	// Address is the redis host:port.
	Address string `mapstructure:"address" default:"localhost:6379"`
	// Password is the redis password.
	Password string `mapstructure:"password" default:""`
	// DB is the redis logical database.
	DB int `mapstructure:"db" default:"0"`
	// Prefix namespaces every key written by the exporter.
	Prefix string `mapstructure:"prefix" default:"catalog-export:"`
	// TTLSeconds is how long a cached provider response stays valid.
	TTLSeconds int `mapstructure:"ttl_seconds" default:"86400"`
	// TimeoutSeconds bounds dialing and the initial ping.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"5"`
}

const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverNone   = "none"
)

// TTL returns the configured entry lifetime.
func (c Config) TTL() time.Duration {
	if c.TTLSeconds <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.TTLSeconds) * time.Second
}

func (c Config) timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
