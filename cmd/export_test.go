package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"catalog-export/core/database"
	"catalog-export/core/export"
	"catalog-export/core/provider"
	"catalog-export/core/reconcile"
	"catalog-export/core/source"
	"catalog-export/core/telemetry"
	relocatemocks "catalog-export/core/relocate/mocks"
	"catalog-export/feature/show"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestBuildJobs(t *testing.T) {
	cfg := export.Config{Types: []string{"movies", "shows"}, SimilarConcurrency: 5}
	disabled := func(context.Context) provider.Provider { return provider.Disabled{} }
	jobs, err := buildJobs(cfg, nil, disabled, &relocatemocks.Relocator{}, source.Static{}, &telemetry.Recorder{}, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "movies", jobs[0].Name())
	assert.Equal(t, "shows", jobs[1].Name())

	_, err = buildJobs(export.Config{Types: []string{"anime"}}, nil, nil, nil, nil, nil, zap.NewNop())
	assert.ErrorIs(t, err, export.ErrUnknownType)
}

func TestBuildJobs_ProviderPerRun(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"images":{"secure_base_url":"https://img.test/t/p/"}}`))
	}))
	t.Cleanup(server.Close)

	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: "file::memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, show.Models()...))

	var built []provider.Provider
	newProvider := func(ctx context.Context) provider.Provider {
		p := provider.New(ctx, provider.Config{APIKey: "secret", BaseURL: server.URL}, zap.NewNop())
		built = append(built, p)
		return p
	}

	cfg := export.Config{Types: []string{"shows"}}
	jobs, err := buildJobs(cfg, db, newProvider, &relocatemocks.Relocator{}, source.Static{"shows": nil}, &telemetry.Recorder{}, zap.NewNop())
	require.NoError(t, err)
	require.Empty(t, built)

	for range 2 {
		_, err := jobs[0].Run(context.Background())
		require.NoError(t, err)
	}

	require.Len(t, built, 2)
	assert.False(t, built[0].Available())
	assert.True(t, built[1].Available())
}

func TestPrintExportReport(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	failures := make([]reconcile.Failure, 7)
	for i := range failures {
		failures[i] = reconcile.Failure{Index: i, Stage: reconcile.StageDecode, Reason: "missing imdb_id"}
	}
	printExportReport(zap.New(core), export.RunReport{Jobs: []export.JobReport{
		{Name: "shows", Summary: reconcile.Summary{Total: 9, Inserted: 2, Skipped: 7, Failures: failures}},
		{Name: "movies", Error: "failed to load movies: connection refused"},
	}})

	assert.Equal(t, 1, logs.FilterMessage("Content type exported").Len())
	assert.Equal(t, 5, logs.FilterMessage("Skipped document").Len())
	assert.Equal(t, 1, logs.FilterMessage("Additional skipped documents not shown").Len())

	failed := logs.FilterMessage("Content type failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "movies", failed[0].ContextMap()["content_type"])
}
