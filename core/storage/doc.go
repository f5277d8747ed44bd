// Package storage provides an abstraction layer for the asset store.
//
// It wraps the MinIO Go client behind a narrow Client interface covering what the
// exporter needs: bucket bootstrap, uploads of relocated media, reads of JSON
// export objects and existence checks that keep relocation idempotent. Both AWS S3
// and self-hosted MinIO are supported.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider so storage
// interactions can be mocked in unit tests (see core/storage/mocks).
//
// # Helpers
//
//   - EnsureBucket: creates the configured bucket on first use.
//   - Exists: StatObject wrapped into a found/not-found answer.
//   - PublicURL: the long-lived address of a stored key.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage)
//	url := storage.PublicURL(cfg.Storage, "images/tt0944947/poster/poster.jpg")
package storage
