package show

import (
	"context"
	"errors"
	"fmt"

	"catalog-export/core/database"
	"catalog-export/core/reconcile"
	"catalog-export/core/relocate"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists shows with their full child graph.
type Repository struct {
	db *gorm.DB
}

const scanBatchSize = 200

var _ reconcile.Store[*Show] = (*Repository)(nil)

// NewRepository creates a repository on db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Opener returns a reconcile.Opener opening one session per run.
func Opener(db *gorm.DB) reconcile.Opener[*Show] {
	return func(ctx context.Context) (reconcile.Store[*Show], error) {
		if db == nil {
			return nil, errors.New("no catalog database configured")
		}
		return NewRepository(db.Session(&gorm.Session{NewDB: true})), nil
	}
}

func (r *Repository) FindExisting(ctx context.Context, imdbID string) (*Show, bool, error) {
	var s Show
	err := r.db.WithContext(ctx).
		Preload("Genres").
		Preload("Episodes", func(db *gorm.DB) *gorm.DB { return db.Order("season, episode_number") }).
		Preload("Episodes.Torrents").
		Preload("Similars").
		Where("imdb_id = ?", imdbID).
		Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load show %s: %w", imdbID, err)
	}
	return &s, true, nil
}

// Save writes the show and every level of children in one transaction.
func (r *Repository) Save(ctx context.Context, s *Show) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(s).Error; err != nil {
			return err
		}

		genres := database.Refs(s.Genres, func(g *Genre) { g.ShowID = s.ID })
		if err := database.Upsert(tx, genres, func(g *Genre) bool { return g.ID != 0 }); err != nil {
			return err
		}
		similars := database.Refs(s.Similars, func(x *Similar) { x.ShowID = s.ID })
		if err := database.Upsert(tx, similars, func(x *Similar) bool { return x.ID != 0 }); err != nil {
			return err
		}

		episodes := database.Refs(s.Episodes, func(e *Episode) { e.ShowID = s.ID })
		if err := database.Upsert(tx, episodes, func(e *Episode) bool { return e.ID != 0 }); err != nil {
			return err
		}
		var torrents []*EpisodeTorrent
		for _, e := range episodes {
			torrents = append(torrents, database.Refs(e.Torrents, func(t *EpisodeTorrent) { t.EpisodeID = e.ID })...)
		}
		return database.Upsert(tx, torrents, func(t *EpisodeTorrent) bool { return t.ID != 0 })
	})
	if err != nil {
		return fmt.Errorf("failed to save show %s: %w", s.ImdbID, err)
	}
	return nil
}

// ScanMedia calls fn with the media references of every persisted show, in batches.
func (r *Repository) ScanMedia(ctx context.Context, fn func(key string, refs []relocate.Ref) error) error {
	var batch []*Show
	err := r.db.WithContext(ctx).
		Preload("Episodes.Torrents").
		FindInBatches(&batch, scanBatchSize, func(tx *gorm.DB, _ int) error {
			for _, s := range batch {
				if err := fn(s.ImdbID, s.MediaRefs()); err != nil {
					return err
				}
			}
			return nil
		}).Error
	if err != nil {
		return fmt.Errorf("failed to scan shows: %w", err)
	}
	return nil
}

// Name returns the content type stored by the repository.
func (r *Repository) Name() string {
	return ContentType
}

// Close ends the session. The connection pool is owned by the caller.
func (r *Repository) Close() error {
	return nil
}
