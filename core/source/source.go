package source

import (
	"context"
	"fmt"

	"catalog-export/core/storage"
)

// Document is one raw, schema-flexible record as read from the source store.
type Document map[string]any

// Loader reads the full batch of raw documents of a content type.
type Loader interface {
	LoadBatch(ctx context.Context, contentType string) ([]Document, error)
	Close(ctx context.Context) error
}

// New builds the loader selected by cfg.Driver. The storage client and its
// configuration are only used by the storage driver.
func New(ctx context.Context, cfg Config, client storage.Client, storageCfg storage.Config) (Loader, error) {
	switch cfg.Driver {
	case DriverMongo, "":
		return NewMongo(ctx, cfg)
	case DriverStorage:
		bucket := cfg.Bucket
		if bucket == "" {
			bucket = storageCfg.Bucket
		}
		return NewObjectLoader(client, bucket, cfg.Prefix), nil
	default:
		return nil, fmt.Errorf("unsupported source driver %q", cfg.Driver)
	}
}

// Static serves fixed batches, keyed by content type.
type Static map[string][]Document

func (s Static) LoadBatch(_ context.Context, contentType string) ([]Document, error) {
	docs, ok := s[contentType]
	if !ok {
		return nil, fmt.Errorf("no documents for content type %q", contentType)
	}
	return docs, nil
}

func (Static) Close(context.Context) error { return nil }
