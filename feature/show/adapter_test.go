package show

import (
	"context"
	"testing"

	"catalog-export/core/provider"
	"catalog-export/core/reconcile"
	relocatemocks "catalog-export/core/relocate/mocks"
	"catalog-export/core/source"
	"catalog-export/core/telemetry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) (*reconcile.Engine[*Show], *relocatemocks.Relocator, *Repository) {
	t.Helper()
	db := setupDB(t)
	r := &relocatemocks.Relocator{}
	adapter := NewAdapter(NewEnricher(provider.Disabled{}, r, nil, 0))
	engine := reconcile.NewEngine[*Show](adapter, Opener(db), &telemetry.Recorder{}, nil)
	return engine, r, NewRepository(db)
}

func TestAdapter_Idempotent(t *testing.T) {
	engine, _, repo := newTestEngine(t)
	ctx := context.Background()
	batch := []source.Document{sampleDoc()}

	summary, err := engine.Run(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Inserted)

	first, _, err := repo.FindExisting(ctx, "tt0944947")
	require.NoError(t, err)

	summary, err = engine.Run(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Updated)
	assert.Zero(t, summary.Skipped)

	second, _, err := repo.FindExisting(ctx, "tt0944947")
	require.NoError(t, err)

	first.UpdatedAt = second.UpdatedAt
	assert.Equal(t, first, second)
}

func TestAdapter_RelocatesAppendedTorrents(t *testing.T) {
	engine, r, repo := newTestEngine(t)
	ctx := context.Background()

	_, err := engine.Run(ctx, []source.Document{sampleDoc()})
	require.NoError(t, err)

	inserted, _, err := repo.FindExisting(ctx, "tt0944947")
	require.NoError(t, err)
	assert.Equal(t, relocatemocks.PublicBase+"images/tt0944947/banner/got.jpg", inserted.Images.Banner)

	doc := sampleDoc()
	episodes := doc["episodes"].([]any)
	episodes[1].(map[string]any)["torrents"] = map[string]any{
		"480p": map[string]any{"url": "https://source.test/t/s01e02-480.torrent"},
	}
	summary, err := engine.Run(ctx, []source.Document{doc})
	require.NoError(t, err)
	require.Equal(t, 1, summary.Updated)

	got, _, err := repo.FindExisting(ctx, "tt0944947")
	require.NoError(t, err)
	sd := got.Episode(3436411).Torrent("480p")
	require.NotNil(t, sd)
	assert.Equal(t, relocatemocks.PublicBase+"torrents/tt0944947/3436411/480p/s01e02-480.torrent", sd.URL)
	assert.Contains(t, r.Paths(), "torrents/tt0944947/3436411/480p/s01e02-480.torrent")
}

func TestAdapter_SkipsInvalidDocuments(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	bad := sampleDoc()
	delete(bad, "imdb_id")
	summary, err := engine.Run(context.Background(), []source.Document{bad, sampleDoc()})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 1, summary.Inserted)
	require.Len(t, summary.Failures, 1)
	assert.Equal(t, reconcile.StageDecode, summary.Failures[0].Stage)
}
