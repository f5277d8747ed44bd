package integrity

import (
	"context"
	"testing"

	"catalog-export/core/relocate"
	"catalog-export/core/storage"
	"catalog-export/core/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type emptyCatalog string

func (c emptyCatalog) Name() string { return string(c) }

func (c emptyCatalog) ScanMedia(context.Context, func(string, []relocate.Ref) error) error {
	return nil
}

func TestService_CheckMedia(t *testing.T) {
	svc := NewService(new(mocks.Client), storage.Config{Bucket: "catalog"}, zap.NewNop(), nil, nil,
		emptyCatalog("shows"), emptyCatalog("movies"))

	assert.Equal(t, []string{"movies", "shows"}, svc.CatalogNames())

	reports, err := svc.CheckMedia(context.Background(), nil, false)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "movies", reports[0].ContentType)

	_, err = svc.CheckMedia(context.Background(), []string{"games"}, false)
	assert.ErrorIs(t, err, ErrUnknownCatalog)
}
