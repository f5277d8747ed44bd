package source

import (
	"context"
	"encoding/json"
	"fmt"

	"catalog-export/core/relocate"
	"catalog-export/core/storage"

	"github.com/minio/minio-go/v7"
)

// ObjectLoader reads JSON array exports from the asset store.
type ObjectLoader struct {
	client storage.Client
	bucket string
	prefix string
}

// NewObjectLoader reads <prefix>/<content type>.json from bucket.
func NewObjectLoader(client storage.Client, bucket, prefix string) *ObjectLoader {
	return &ObjectLoader{client: client, bucket: bucket, prefix: prefix}
}

// Key returns the object key holding the export of contentType.
func (l *ObjectLoader) Key(contentType string) string {
	return relocate.Join(l.prefix, contentType+".json")
}

func (l *ObjectLoader) LoadBatch(ctx context.Context, contentType string) ([]Document, error) {
	key := l.Key(contentType)
	obj, err := l.client.GetObject(ctx, l.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", key, err)
	}
	defer obj.Close()

	dec := json.NewDecoder(obj)
	dec.UseNumber()

	var docs []Document
	if err := dec.Decode(&docs); err != nil {
		if storage.IsNotFound(err) {
			return nil, fmt.Errorf("export %s not found: %w", key, storage.ErrObjectNotFound)
		}
		return nil, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return docs, nil
}

func (l *ObjectLoader) Close(context.Context) error { return nil }
