package show

import (
	"context"

	"catalog-export/core/reconcile"
	"catalog-export/core/source"
)

// ContentType is the name of the show batch in the source store.
const ContentType = "shows"

// Adapter plugs shows into the reconciliation engine.
type Adapter struct {
	enricher *Enricher
}

var _ reconcile.Adapter[*Show] = (*Adapter)(nil)

// NewAdapter creates the show adapter.
func NewAdapter(enricher *Enricher) *Adapter {
	return &Adapter{enricher: enricher}
}

func (a *Adapter) Name() string {
	return ContentType
}

func (a *Adapter) Decode(doc source.Document) (*Show, error) {
	return Decode(doc)
}

func (a *Adapter) Key(s *Show) string {
	return s.ImdbID
}

func (a *Adapter) Label(s *Show) string {
	return s.Title
}

func (a *Adapter) Enrich(ctx context.Context, s *Show) (*Show, error) {
	if err := a.enricher.Enrich(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (a *Adapter) Merge(ctx context.Context, existing, incoming *Show) (*Show, error) {
	appended := merge(existing, incoming)
	if len(appended) > 0 {
		if err := a.enricher.relocate(ctx, existing, false, slots(existing, appended)); err != nil {
			return nil, err
		}
	}
	return existing, nil
}
