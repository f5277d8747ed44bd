package integrity

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"catalog-export/core/database"
	"catalog-export/core/storage"
	"catalog-export/core/storage/mocks"
	"catalog-export/feature/show"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) (*fiber.App, *mocks.Client) {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: "file::memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, show.Models()...))

	repo := show.NewRepository(db)
	require.NoError(t, repo.Save(context.Background(), &show.Show{
		ImdbID: "tt0944947",
		Title:  "Game of Thrones",
		Year:   2011,
		Images: show.Images{
			Poster: "https://cdn.test/catalog/images/tt0944947/poster/p.jpg",
			Fanart: "https://source.test/fanart.jpg",
		},
	}))

	app := fiber.New()
	mockClient := new(mocks.Client)
	cfg := storage.Config{Bucket: "catalog", PublicURL: "https://cdn.test/catalog"}
	svc := NewService(mockClient, cfg, zap.NewNop(), db, show.Models(), repo)
	NewHandler(svc).RegisterRoutes(app)
	return app, mockClient
}

func TestHandleSchemaCheck(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/schema", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["matched"])
}

func TestHandleMediaCheck(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/media?type=shows", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 1)
	assert.Equal(t, "shows", body[0]["content_type"])
	assert.Equal(t, float64(1), body[0]["transient"])
	assert.Equal(t, float64(1), body[0]["relocated"])
}

func TestHandleMediaCheck_Verify(t *testing.T) {
	app, mockClient := setupTestApp(t)
	mockClient.On("StatObject", mock.Anything, "catalog", "images/tt0944947/poster/p.jpg", mock.Anything).
		Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey"})

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/media?verify=true", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 1)
	assert.Equal(t, float64(1), body[0]["missing"])
	mockClient.AssertExpectations(t)
}

func TestHandleMediaCheck_UnknownType(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/media?type=games", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleIntegrityCheck(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body, "schema")
	assert.Contains(t, body, "media")
}
