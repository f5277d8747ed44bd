package show

import (
	"context"
	"errors"
	"testing"

	"catalog-export/core/database"
	"catalog-export/core/relocate"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: "file::memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, Models()...))
	return db
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestRepository_SaveAndFind(t *testing.T) {
	db := setupDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	_, found, err := repo.FindExisting(ctx, "tt0944947")
	require.NoError(t, err)
	assert.False(t, found)

	s, err := Decode(sampleDoc())
	require.NoError(t, err)
	s.Similars = []Similar{{ImdbID: "tt1"}}
	require.NoError(t, repo.Save(ctx, s))
	assert.NotZero(t, s.ID)

	got, found, err := repo.FindExisting(ctx, "tt0944947")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Game of Thrones", got.Title)
	assert.Len(t, got.Genres, 2)
	assert.Len(t, got.Similars, 1)
	require.Len(t, got.Episodes, 2)
	assert.Equal(t, 3254641, got.Episodes[0].TvdbID)
	assert.Len(t, got.Episode(3254641).Torrents, 2)
	assert.Equal(t, s.LastUpdated, got.LastUpdated)
}

func TestRepository_SaveMerged(t *testing.T) {
	db := setupDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	first, err := Decode(sampleDoc())
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, first))

	doc := sampleDoc()
	doc["status"] = "returning"
	doc["genres"] = []any{"drama", "fantasy", "adventure"}
	doc["episodes"] = append(doc["episodes"].([]any),
		map[string]any{
			"tvdb_id": 4000000, "season": 2, "episode": 1, "title": "The North Remembers",
			"first_aired": int64(1333242000),
			"torrents": map[string]any{
				"1080p": map[string]any{"url": "https://source.test/t/s02e01.torrent", "seeds": 12},
			},
		})
	incoming, err := Decode(doc)
	require.NoError(t, err)

	existing, found, err := repo.FindExisting(ctx, incoming.ImdbID)
	require.NoError(t, err)
	require.True(t, found)
	Merge(existing, incoming)
	require.NoError(t, repo.Save(ctx, existing))

	got, _, err := repo.FindExisting(ctx, incoming.ImdbID)
	require.NoError(t, err)
	assert.Equal(t, "returning", got.Status)
	assert.Equal(t, "drama, fantasy, adventure", got.GenreNames)
	assert.Len(t, got.Episodes, 3)
	assert.Equal(t, int64(1333242000), got.LastUpdated)

	assert.Equal(t, int64(1), count(t, db, &Show{}))
	assert.Equal(t, int64(3), count(t, db, &Genre{}))
	assert.Equal(t, int64(3), count(t, db, &Episode{}))
	assert.Equal(t, int64(3), count(t, db, &EpisodeTorrent{}))
}

func TestRepository_Errors(t *testing.T) {
	t.Run("Find", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery("SELECT \\* FROM `shows`").WillReturnError(errors.New("connection reset"))

		_, found, err := NewRepository(db).FindExisting(context.Background(), "tt1")
		assert.ErrorContains(t, err, "connection reset")
		assert.False(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Save Rolls Back", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `shows`").WillReturnError(errors.New("deadlock"))
		mock.ExpectRollback()

		err := NewRepository(db).Save(context.Background(), &Show{ImdbID: "tt1", Year: 2000})
		assert.ErrorContains(t, err, "failed to save show tt1")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOpener(t *testing.T) {
	_, err := Opener(nil)(context.Background())
	assert.Error(t, err)

	store, err := Opener(setupDB(t))(context.Background())
	require.NoError(t, err)
	assert.NoError(t, store.Close())
}

func TestRepository_ScanMedia(t *testing.T) {
	db := setupDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	s, err := Decode(sampleDoc())
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, s))

	got := map[string]int{}
	err = repo.ScanMedia(ctx, func(key string, refs []relocate.Ref) error {
		got[key] = len(refs)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"tt0944947": len(s.MediaRefs())}, got)
	assert.Equal(t, ContentType, repo.Name())

	stop := errors.New("stop")
	err = repo.ScanMedia(ctx, func(string, []relocate.Ref) error { return stop })
	assert.ErrorIs(t, err, stop)
}
