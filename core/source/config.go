package source

import "time"

// Config holds configuration for the source-of-truth document store.
type Config struct {
	// Driver selects the loader (mongo, storage).
	Driver string `mapstructure:"driver" default:"mongo"`
	// URI is the MongoDB connection string.
	URI string `mapstructure:"uri" default:"mongodb://localhost:27017"`
	// Database is the MongoDB database holding one collection per content type.
	Database string `mapstructure:"database" default:"popcorn"`
	// Bucket holds JSON exports for the storage driver. Defaults to the asset bucket.
	Bucket string `mapstructure:"bucket" default:""`
	// Prefix is the key prefix of JSON exports: <prefix>/<content type>.json.
	Prefix string `mapstructure:"prefix" default:"exports"`
	// TimeoutSeconds bounds connecting to the store.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

const (
	DriverMongo   = "mongo"
	DriverStorage = "storage"
)

func (c Config) timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
