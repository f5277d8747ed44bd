package integrity

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"catalog-export/core/storage"
	"catalog-export/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrUnknownCatalog is returned when a media check names an unregistered content type.
var ErrUnknownCatalog = errors.New("unknown content type")

// Service handles integrity checks.
type Service struct {
	client   storage.Client
	cfg      storage.Config
	logger   *zap.Logger
	db       *gorm.DB
	models   []any
	catalogs map[string]checks.Catalog
}

// NewService creates a new integrity service over the catalog tables described by models.
func NewService(client storage.Client, cfg storage.Config, logger *zap.Logger, db *gorm.DB, models []any, catalogs ...checks.Catalog) *Service {
	byName := make(map[string]checks.Catalog, len(catalogs))
	for _, c := range catalogs {
		byName[c.Name()] = c
	}
	return &Service{
		client:   client,
		cfg:      cfg,
		logger:   logger,
		db:       db,
		models:   models,
		catalogs: byName,
	}
}

// CheckSchema compares the catalog tables with their models.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db, s.models...)
}

// CheckMedia checks the media references of the named content types, or of all
// registered ones when names is empty.
func (s *Service) CheckMedia(ctx context.Context, names []string, verify bool) ([]*checks.MediaReport, error) {
	if len(names) == 0 {
		names = s.CatalogNames()
	}

	reports := make([]*checks.MediaReport, 0, len(names))
	for _, name := range names {
		catalog, ok := s.catalogs[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCatalog, name)
		}
		report, err := checks.CheckMedia(ctx, catalog, s.client, s.cfg, verify)
		if err != nil {
			return nil, err
		}
		if report.Transient > 0 || report.Missing > 0 {
			s.logger.Warn("Media references outside the asset store",
				zap.String("type", name),
				zap.Int("transient", report.Transient),
				zap.Int("missing", report.Missing))
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// CatalogNames returns the registered content types, sorted.
func (s *Service) CatalogNames() []string {
	names := make([]string, 0, len(s.catalogs))
	for name := range s.catalogs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
