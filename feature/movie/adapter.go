package movie

import (
	"context"

	"catalog-export/core/reconcile"
	"catalog-export/core/source"
)

// ContentType is the name of the movie batch in the source store.
const ContentType = "movies"

// Adapter plugs movies into the reconciliation engine.
type Adapter struct {
	enricher *Enricher
}

var _ reconcile.Adapter[*Movie] = (*Adapter)(nil)

// NewAdapter creates the movie adapter.
func NewAdapter(enricher *Enricher) *Adapter {
	return &Adapter{enricher: enricher}
}

func (a *Adapter) Name() string { return ContentType }
func (a *Adapter) Decode(doc source.Document) (*Movie, error) { return Decode(doc) }
func (a *Adapter) Key(m *Movie) string { return m.ImdbCode }
func (a *Adapter) Label(m *Movie) string { return m.Title }

func (a *Adapter) Enrich(ctx context.Context, m *Movie) (*Movie, error) {
	if err := a.enricher.Enrich(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (a *Adapter) Merge(ctx context.Context, existing, incoming *Movie) (*Movie, error) {
	added := merge(existing, incoming)
	if added.empty() {
		return existing, nil
	}
	torrents, cast := added.resolve(existing)
	if err := a.enricher.relocate(ctx, existing, false, torrents, cast); err != nil {
		return nil, err
	}
	return existing, nil
}
