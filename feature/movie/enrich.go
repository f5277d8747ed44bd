package movie

import (
	"context"
	"errors"
	"fmt"

	"catalog-export/core/database"
	"catalog-export/core/provider"
	"catalog-export/core/relocate"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Enricher improves new movies with provider artwork and relocates their media.
type Enricher struct {
	provider  provider.Provider
	relocator relocate.Relocator
	log       *zap.Logger
}

// NewEnricher creates an Enricher.
func NewEnricher(p provider.Provider, r relocate.Relocator, log *zap.Logger) *Enricher {
	if p == nil {
		p = provider.Disabled{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Enricher{provider: p, relocator: r, log: log}
}

// Enrich fetches backdrop and poster from the provider, then relocates every
// media reference of m. Provider problems are logged and ignored.
func (e *Enricher) Enrich(ctx context.Context, m *Movie) error {
	e.lookup(ctx, m)
	return e.relocate(ctx, m, true, database.Refs(m.Torrents, nil), database.Refs(m.Cast, nil))
}

func (e *Enricher) lookup(ctx context.Context, m *Movie) {
	if !e.provider.Available() {
		return
	}
	log := e.log.With(zap.String("imdb_code", m.ImdbCode), zap.String("title", m.Title))

	details, err := e.provider.FetchDetails(ctx, provider.KindMovie, m.ImdbCode, true, false)
	if err != nil {
		if errors.Is(err, provider.ErrNotFound) {
			log.Debug("No provider match")
		} else {
			log.Warn("Provider details failed, keeping source media", zap.Error(err))
		}
		return
	}

	// Backdrops go by resolution, posters by votes.
	if backdrop := provider.BestImageURL(e.provider, details.Images.Backdrops, provider.ByWidth); backdrop != "" {
		m.Media.BackdropImage = backdrop
	}
	if poster := provider.BestImageURL(e.provider, details.Images.Posters, provider.ByVoteAverage); poster != "" {
		m.Media.PosterImage = poster
	}
}

// relocate moves the images of m (when withImages is set), the given torrents
// and the given cast pictures to the asset store, concurrently. The first
// error cancels the others and is returned.
func (e *Enricher) relocate(ctx context.Context, m *Movie, withImages bool, torrents []*Torrent, cast []*Cast) error {
	g, ctx := errgroup.WithContext(ctx)

	move := func(field *string, key, what string) {
		if !relocate.IsRemote(*field) || key == "" {
			return
		}
		src := *field
		g.Go(func() error {
			dst, err := e.relocator.Relocate(ctx, key, src)
			if err != nil {
				return fmt.Errorf("failed to relocate %s: %w", what, err)
			}
			*field = dst
			return nil
		})
	}

	if withImages {
		for _, s := range m.Media.slots() {
			move(s.field, relocate.ImagePath(m.ImdbCode, *s.field, s.subkinds...), relocate.Join(s.subkinds...))
		}
	}
	for _, t := range torrents {
		key := relocate.Join(relocate.KindTorrents, m.ImdbCode, t.Quality, m.ImdbCode+".torrent")
		move(&t.URL, key, t.Quality+" torrent")
	}
	for _, c := range cast {
		move(&c.SmallImage, relocate.ImagePath(m.ImdbCode, c.SmallImage, "cast", c.ImdbCode), "cast "+c.ImdbCode)
	}

	return g.Wait()
}
