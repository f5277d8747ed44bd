package show

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"catalog-export/core/parallel"
	"catalog-export/core/provider"
	"catalog-export/core/relocate"
	"catalog-export/core/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultSimilarConcurrency bounds concurrent similar-show lookups.
const DefaultSimilarConcurrency = 5

// Enricher improves new shows with provider artwork and relocates their media.
type Enricher struct {
	provider           provider.Provider
	relocator          relocate.Relocator
	log                *zap.Logger
	similarConcurrency int
}

// NewEnricher creates an Enricher. A concurrency of zero or less uses the default.
func NewEnricher(p provider.Provider, r relocate.Relocator, log *zap.Logger, similarConcurrency int) *Enricher {
	if p == nil {
		p = provider.Disabled{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	if similarConcurrency <= 0 {
		similarConcurrency = DefaultSimilarConcurrency
	}
	return &Enricher{provider: p, relocator: r, log: log, similarConcurrency: similarConcurrency}
}

// Enrich runs the provider lookup, then relocates every media reference of s.
// Provider problems are logged and ignored; relocation errors are returned.
func (e *Enricher) Enrich(ctx context.Context, s *Show) error {
	e.lookup(ctx, s)
	return e.relocate(ctx, s, true, allTorrents(s))
}

// lookup replaces fanart and poster with the best provider candidates and
// collects similar shows. Shows without a numeric tvdb id are not looked up.
func (e *Enricher) lookup(ctx context.Context, s *Show) {
	if !e.provider.Available() {
		return
	}
	if _, ok := utils.ParseInt64(s.TvdbID); !ok {
		return
	}

	log := e.log.With(zap.String("imdb_id", s.ImdbID), zap.String("title", s.Title))

	results, err := e.provider.SearchByTitle(ctx, provider.KindTV, s.Title)
	if err != nil {
		log.Warn("Provider search failed, keeping source media", zap.Error(err))
		return
	}
	if len(results) == 0 {
		log.Debug("No provider match")
		return
	}

	details, err := e.provider.FetchDetails(ctx, provider.KindTV, strconv.Itoa(results[0].ID), true, true)
	if err != nil {
		if errors.Is(err, provider.ErrNotFound) {
			log.Debug("Provider match has no details")
		} else {
			log.Warn("Provider details failed, keeping source media", zap.Error(err))
		}
		return
	}

	if fanart := provider.BestImageURL(e.provider, details.Images.Backdrops, provider.ByVoteAverage); fanart != "" {
		s.Images.Fanart = fanart
	}
	if poster := provider.BestImageURL(e.provider, details.Images.Posters, provider.ByVoteAverage); poster != "" {
		s.Images.Poster = poster
	}

	s.Similars = e.resolveSimilars(ctx, log, details.Similar.Results)
}

func (e *Enricher) resolveSimilars(ctx context.Context, log *zap.Logger, similar []provider.SearchResult) []Similar {
	var (
		mu  sync.Mutex
		out []Similar
	)
	seen := make(map[string]struct{})

	res := parallel.ForEach(ctx, similar, e.similarConcurrency, func(ctx context.Context, r provider.SearchResult) error {
		ids, err := e.provider.ExternalIDs(ctx, provider.KindTV, r.ID)
		if err != nil {
			return err
		}
		if ids.ImdbID == "" {
			return nil
		}

		mu.Lock()
		defer mu.Unlock()
		if _, dup := seen[ids.ImdbID]; !dup {
			seen[ids.ImdbID] = struct{}{}
			out = append(out, Similar{ImdbID: ids.ImdbID})
		}
		return nil
	}, func(r provider.SearchResult, err error) {
		log.Warn("Failed to resolve similar show", zap.Int("tmdb_id", r.ID), zap.Error(err))
	})

	if res.Failed > 0 {
		log.Debug("Similar shows partially resolved", zap.Int("attempted", res.Attempted), zap.Int("failed", res.Failed))
	}
	return out
}

// torrentSlot is a torrent together with the episode it belongs to.
type torrentSlot struct {
	episode int
	torrent *EpisodeTorrent
}

// relocate moves the artwork of s (when withImages is set) and the given
// torrents to the asset store. All references are relocated concurrently; the
// first error wins and the show must not be committed.
func (e *Enricher) relocate(ctx context.Context, s *Show, withImages bool, torrents []torrentSlot) error {
	g, ctx := errgroup.WithContext(ctx)

	slot := func(field *string, subkind string) {
		if !relocate.IsRemote(*field) {
			return
		}
		src := *field
		g.Go(func() error {
			dst, err := e.relocator.Relocate(ctx, relocate.ImagePath(s.ImdbID, src, subkind), src)
			if err != nil {
				return fmt.Errorf("failed to relocate %s: %w", subkind, err)
			}
			*field = dst
			return nil
		})
	}

	if withImages {
		slot(&s.Images.Banner, "banner")
		slot(&s.Images.Fanart, "fanart")
		slot(&s.Images.Poster, "poster")
	}

	for _, ts := range torrents {
		t := ts.torrent
		if !relocate.IsRemote(t.URL) {
			continue
		}
		src := t.URL
		key := relocate.Path(relocate.KindTorrents, s.ImdbID, src, strconv.Itoa(ts.episode), t.Quality)
		g.Go(func() error {
			dst, err := e.relocator.Relocate(ctx, key, src)
			if err != nil {
				return fmt.Errorf("failed to relocate episode %d %s torrent: %w", ts.episode, t.Quality, err)
			}
			t.URL = dst
			return nil
		})
	}

	return g.Wait()
}

func allTorrents(s *Show) []torrentSlot {
	var out []torrentSlot
	for i := range s.Episodes {
		ep := &s.Episodes[i]
		for j := range ep.Torrents {
			out = append(out, torrentSlot{episode: ep.TvdbID, torrent: &ep.Torrents[j]})
		}
	}
	return out
}
