package movie

import (
	"testing"

	"catalog-export/core/reconcile"
	"catalog-export/core/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDoc() source.Document {
	return source.Document{
		"imdb_code":          "tt0133093",
		"title":              "The Matrix",
		"title_long":         "The Matrix (1999)",
		"slug":               "the-matrix-1999",
		"year":               1999,
		"rating":             8.7,
		"runtime":            "136",
		"language":           "en",
		"mpa_rating":         "R",
		"download_count":     1000,
		"like_count":         50,
		"description_full":   "A hacker learns the truth.",
		"yt_trailer_code":    "vKQi3bBA1y8",
		"date_uploaded":      "2015-10-31 20:41:14",
		"date_uploaded_unix": 1446320474,
		"genres":             []any{"Action", "Sci-Fi", "Action"},
		"background_image":   "https://source.test/bg/matrix.jpg",
		"small_cover_image":  "https://source.test/cover/small.jpg",
		"medium_screenshot_image1": "https://source.test/ss/m1.jpg",
		"large_screenshot_image3":  "",
		"torrents": []any{
			map[string]any{"url": "https://source.test/torrent/download/ABC", "hash": "ABC", "quality": "1080p", "seeds": 100, "peers": 5, "size": "1.8 GB", "size_bytes": 1932735283},
			map[string]any{"url": "https://source.test/torrent/download/DEF", "hash": "DEF", "quality": "720p", "seeds": 60, "peers": 2},
			map[string]any{"url": "https://source.test/dup", "quality": "720p"},
			map[string]any{"url": "https://source.test/none"},
		},
		"cast": []any{
			map[string]any{"imdb_code": "0000206", "name": "Keanu Reeves", "character_name": "Neo", "url_small_image": "https://source.test/cast/keanu.jpg"},
			map[string]any{"imdb_code": "0000401", "name": "Laurence Fishburne", "character_name": "Morpheus", "small_image": "https://source.test/cast/laurence.jpg"},
			map[string]any{"name": "Uncredited"},
		},
		"similar": []any{603, 604, 603, 0},
	}
}

func TestDecode(t *testing.T) {
	m, err := Decode(sampleDoc())
	require.NoError(t, err)

	assert.Equal(t, "tt0133093", m.ImdbCode)
	assert.Equal(t, 1999, m.Year)
	assert.Equal(t, 136, m.Runtime)
	assert.InDelta(t, 8.7, m.Rating, 0.001)
	assert.Equal(t, "Action, Sci-Fi", m.GenreNames)
	assert.Len(t, m.Genres, 2)
	assert.Equal(t, int64(1446320474), m.DateUploadedUnix)

	assert.Equal(t, "https://source.test/bg/matrix.jpg", m.Media.BackgroundImage)
	assert.Equal(t, "https://source.test/cover/small.jpg", m.Media.SmallCoverImage)
	assert.Equal(t, "https://source.test/ss/m1.jpg", m.Media.MediumScreenshotImage1)
	assert.Empty(t, m.Media.BackdropImage)

	require.Len(t, m.Torrents, 2)
	assert.Equal(t, "720p", m.Torrents[0].Quality)
	assert.Equal(t, "1080p", m.Torrents[1].Quality)
	assert.Equal(t, int64(1932735283), m.Torrents[1].SizeBytes)

	require.Len(t, m.Cast, 2)
	assert.Equal(t, "https://source.test/cast/keanu.jpg", m.Actor("0000206").SmallImage)
	assert.Equal(t, "https://source.test/cast/laurence.jpg", m.Actor("0000401").SmallImage)

	assert.Equal(t, []Similar{{TmdbID: 603}, {TmdbID: 604}}, m.Similars)
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name string
		edit func(source.Document)
	}{
		{"Missing Imdb", func(d source.Document) { delete(d, "imdb_code") }},
		{"Missing Year", func(d source.Document) { delete(d, "year") }},
		{"Negative Year", func(d source.Document) { d["year"] = -1 }},
		{"Wrong Shape", func(d source.Document) { d["cast"] = 12 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := sampleDoc()
			tt.edit(doc)
			_, err := Decode(doc)
			assert.ErrorIs(t, err, reconcile.ErrDecode)
		})
	}
}
