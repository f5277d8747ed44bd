package reconcile

import (
	"context"

	"catalog-export/core/source"
)

// Adapter defines the content-type specific part of a reconciliation.
// Each adapter knows how to decode, enrich and merge one record type
// (e.g., movies, shows). The engine drives the rest.
type Adapter[R any] interface {
	// Name returns the content type handled by this adapter (e.g., "movies").
	Name() string

	// Decode turns a raw document into a validated record. A document missing
	// its natural key or another mandatory field must be rejected with an error.
	Decode(doc source.Document) (R, error)

	// Key returns the natural key of a record.
	Key(record R) string

	// Label returns a human readable name for telemetry.
	Label(record R) string

	// Enrich prepares a record that is about to be inserted for the first time:
	// provider lookups, best candidate selection and media relocation.
	// It must not fail when the provider has nothing to offer.
	Enrich(ctx context.Context, record R) (R, error)

	// Merge applies the fixed merge rules of incoming onto existing and returns
	// the record to save. Existing children are never removed.
	Merge(ctx context.Context, existing, incoming R) (R, error)
}

// Store persists records of one type by natural key.
type Store[R any] interface {
	// FindExisting loads the record with its complete child graph.
	FindExisting(ctx context.Context, key string) (R, bool, error)

	// Save inserts or updates the record and its children atomically.
	Save(ctx context.Context, record R) error

	// Close releases the session.
	Close() error
}

// Opener opens a persistence session for one content-type run.
type Opener[R any] func(ctx context.Context) (Store[R], error)
