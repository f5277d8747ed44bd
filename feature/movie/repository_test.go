package movie

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

func TestRepository_SaveAndFind(t *testing.T) {
	db := setupDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	m, err := Decode(sampleDoc())
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, m))

	got, found, err := repo.FindExisting(ctx, "tt0133093")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "The Matrix", got.Title)
	assert.Equal(t, "https://source.test/bg/matrix.jpg", got.Media.BackgroundImage)
	assert.Len(t, got.Genres, 2)
	assert.Len(t, got.Torrents, 2)
	assert.Len(t, got.Cast, 2)
	assert.Len(t, got.Similars, 2)

	incoming, err := Decode(sampleDoc())
	require.NoError(t, err)
	incoming.LikeCount = 99
	incoming.Torrents = append(incoming.Torrents, Torrent{Quality: "2160p", URL: "https://source.test/uhd"})
	Merge(got, incoming)
	require.NoError(t, repo.Save(ctx, got))

	again, _, err := repo.FindExisting(ctx, "tt0133093")
	require.NoError(t, err)
	assert.Equal(t, 99, again.LikeCount)
	assert.Len(t, again.Torrents, 3)
	assert.Len(t, again.Cast, 2)

	var n int64
	require.NoError(t, db.Model(&Movie{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestRepository_NotFound(t *testing.T) {
	_, found, err := NewRepository(setupDB(t)).FindExisting(context.Background(), "tt404")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRepository_SaveError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `movies`").WillReturnError(errors.New("duplicate entry"))
	mock.ExpectRollback()

	err = NewRepository(db).Save(context.Background(), &Movie{ImdbCode: "tt1", Year: 2000})
	assert.ErrorContains(t, err, "failed to save movie tt1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ScanMedia(t *testing.T) {
	db := setupDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	m, err := Decode(sampleDoc())
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, m))

	var keys []string
	var refs int
	err = repo.ScanMedia(ctx, func(key string, r []relocate.Ref) error {
		keys = append(keys, key)
		refs += len(r)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"tt0133093"}, keys)
	assert.Equal(t, len(m.MediaRefs()), refs)
	assert.Equal(t, ContentType, repo.Name())
}
