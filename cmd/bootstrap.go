package cmd

import (
	"context"
	"fmt"

	"catalog-export/core/cache"
	"catalog-export/core/config"
	"catalog-export/core/database"
	"catalog-export/core/export"
	"catalog-export/core/provider"
	"catalog-export/core/reconcile"
	"catalog-export/core/relocate"
	"catalog-export/core/source"
	"catalog-export/core/storage"
	"catalog-export/core/telemetry"
	"catalog-export/feature/movie"
	"catalog-export/feature/show"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// services holds everything an export run needs.
type services struct {
	db           *gorm.DB
	storage      storage.Client
	cache        cache.Cache
	loader       source.Loader
	orchestrator *export.Orchestrator
}

// bootstrap connects every backing service and wires the export jobs.
func bootstrap(ctx context.Context, cfg *config.Config, l *zap.Logger) (*services, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db, append(show.Models(), movie.Models()...)...); err != nil {
			return nil, err
		}
	}
	l.Info("Connected to catalog database", zap.String("driver", cfg.Database.Driver))

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to storage: %w", err)
	}
	if err := storage.EnsureBucket(ctx, client, cfg.Storage); err != nil {
		return nil, err
	}

	c, err := cache.New(cfg.Cache)
	if err != nil {
		l.Warn("Provider cache unavailable, continuing without it", zap.Error(err))
		c = cache.Noop{}
	}

	loader, err := source.New(ctx, cfg.Source, client, cfg.Storage)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to open source store: %w", err)
	}

	newProvider := provider.NewFactory(cfg.Provider, l, provider.WithCache(c, cfg.Cache.TTL()))
	reloc := relocate.NewStore(client, cfg.Storage, l)
	sink := telemetry.NewZapSink(l)

	jobs, err := buildJobs(cfg.Export, db, newProvider, reloc, loader, sink, l)
	if err != nil {
		_ = loader.Close(ctx)
		_ = c.Close()
		return nil, err
	}

	return &services{
		db:           db,
		storage:      client,
		cache:        c,
		loader:       loader,
		orchestrator: export.NewOrchestrator(sink, l, jobs...),
	}, nil
}

// buildJobs creates one export job per configured content type. Each run of a job
// builds its own provider, so its configuration is fetched once per run.
func buildJobs(cfg export.Config, db *gorm.DB, newProvider provider.Factory, r relocate.Relocator, loader source.Loader, sink telemetry.Sink, l *zap.Logger) ([]export.Job, error) {
	jobs := make([]export.Job, 0, len(cfg.Types))
	for _, t := range cfg.Types {
		var runner export.Runner
		switch t {
		case show.ContentType:
			runner = export.PerRun(t, func(ctx context.Context) export.Runner {
				adapter := show.NewAdapter(show.NewEnricher(newProvider(ctx), r, l, cfg.SimilarConcurrency))
				return reconcile.NewEngine[*show.Show](adapter, show.Opener(db), sink, l)
			})
		case movie.ContentType:
			runner = export.PerRun(t, func(ctx context.Context) export.Runner {
				adapter := movie.NewAdapter(movie.NewEnricher(newProvider(ctx), r, l))
				return reconcile.NewEngine[*movie.Movie](adapter, movie.Opener(db), sink, l)
			})
		default:
			return nil, fmt.Errorf("%w: %s", export.ErrUnknownType, t)
		}
		jobs = append(jobs, export.NewJob(runner, loader, sink))
	}
	return jobs, nil
}

// Close releases the backing services.
func (s *services) Close(ctx context.Context) {
	if err := s.loader.Close(ctx); err != nil {
		zap.L().Warn("Failed to close source store", zap.Error(err))
	}
	if err := s.cache.Close(); err != nil {
		zap.L().Warn("Failed to close cache", zap.Error(err))
	}
	if sqlDB, err := s.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
