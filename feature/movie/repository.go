package movie

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

// Repository persists movies with torrents, cast, genres and similars.
type Repository struct {
	db *gorm.DB
}

const scanBatchSize = 200

var _ reconcile.Store[*Movie] = (*Repository)(nil)

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Opener returns a reconcile.Opener opening one session per run.
func Opener(db *gorm.DB) reconcile.Opener[*Movie] {
	return func(ctx context.Context) (reconcile.Store[*Movie], error) {
		if db == nil {
			return nil, errors.New("no catalog database configured")
		}
		return NewRepository(db.Session(&gorm.Session{NewDB: true})), nil
	}
}

func (r *Repository) FindExisting(ctx context.Context, imdbCode string) (*Movie, bool, error) {
	var m Movie
	err := r.db.WithContext(ctx).
		Preload(clause.Associations).
		Where("imdb_code = ?", imdbCode).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load movie %s: %w", imdbCode, err)
	}
	return &m, true, nil
}

func (r *Repository) Save(ctx context.Context, m *Movie) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(m).Error; err != nil {
			return err
		}
		link := func(id *uint) { *id = m.ID }

		if err := database.Upsert(tx, database.Refs(m.Genres, func(g *Genre) { link(&g.MovieID) }),
			func(g *Genre) bool { return g.ID != 0 }); err != nil {
			return err
		}
		if err := database.Upsert(tx, database.Refs(m.Torrents, func(t *Torrent) { link(&t.MovieID) }),
			func(t *Torrent) bool { return t.ID != 0 }); err != nil {
			return err
		}
		if err := database.Upsert(tx, database.Refs(m.Cast, func(c *Cast) { link(&c.MovieID) }),
			func(c *Cast) bool { return c.ID != 0 }); err != nil {
			return err
		}
		return database.Upsert(tx, database.Refs(m.Similars, func(s *Similar) { link(&s.MovieID) }),
			func(s *Similar) bool { return s.ID != 0 })
	})
	if err != nil {
		return fmt.Errorf("failed to save movie %s: %w", m.ImdbCode, err)
	}
	return nil
}

// ScanMedia calls fn with the media references of every persisted movie, in batches.
func (r *Repository) ScanMedia(ctx context.Context, fn func(key string, refs []relocate.Ref) error) error {
	var batch []*Movie
	err := r.db.WithContext(ctx).
		Preload("Torrents").
		Preload("Cast").
		FindInBatches(&batch, scanBatchSize, func(tx *gorm.DB, _ int) error {
			for _, m := range batch {
				if err := fn(m.ImdbCode, m.MediaRefs()); err != nil {
					return err
				}
			}
			return nil
		}).Error
	if err != nil {
		return fmt.Errorf("failed to scan movies: %w", err)
	}
	return nil
}

func (r *Repository) Name() string {
	return ContentType
}

func (r *Repository) Close() error {
	return nil
}
