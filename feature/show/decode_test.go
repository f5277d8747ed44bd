package show

import (
	"testing"

	"catalog-export/core/reconcile"
	"catalog-export/core/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDoc() source.Document {
	return source.Document{
		"imdb_id":     "tt0944947",
		"tvdb_id":     "121361",
		"title":       "Game of Thrones",
		"year":        "2011",
		"slug":        "game-of-thrones",
		"synopsis":    "Seven noble families fight for control.",
		"runtime":     "60",
		"country":     "us",
		"network":     "HBO",
		"air_day":     "Sunday",
		"air_time":    "21:00",
		"status":      "ended",
		"num_seasons": 8,
		"genres":      []any{"drama", "fantasy", "drama", ""},
		"images": map[string]any{
			"banner": "https://source.test/banner/got.jpg",
			"fanart": "https://source.test/fanart/got.jpg",
			"poster": "https://source.test/poster/got.jpg",
		},
		"rating": map[string]any{
			"hated": 10, "loved": 90, "percentage": 93, "votes": 1200.0, "watching": 4,
		},
		"episodes": []any{
			map[string]any{
				"tvdb_id": 3254641, "season": 1, "episode": 1, "title": "Winter Is Coming",
				"first_aired": int64(1303002000),
				"torrents": map[string]any{
					"720p": map[string]any{"url": "https://source.test/t/s01e01-720.torrent", "peers": 3, "seeds": 40, "provider": "eztv"},
					"0":    map[string]any{"url": "magnet:?xt=urn:btih:abc", "peers": 1, "seeds": 2},
				},
			},
			map[string]any{
				"tvdb_id": 3436411, "season": 1, "episode": 2, "title": "The Kingsroad",
				"first_aired": int64(1303606800),
			},
			map[string]any{"tvdb_id": 0, "title": "special without id"},
			map[string]any{"tvdb_id": 3254641, "title": "duplicate"},
		},
	}
}

func TestDecode(t *testing.T) {
	s, err := Decode(sampleDoc())
	require.NoError(t, err)

	assert.Equal(t, "tt0944947", s.ImdbID)
	assert.Equal(t, "121361", s.TvdbID)
	assert.Equal(t, 2011, s.Year)
	assert.Equal(t, 8, s.NumSeasons)
	assert.Equal(t, "drama, fantasy", s.GenreNames)
	assert.Equal(t, []Genre{{Name: "drama"}, {Name: "fantasy"}}, s.Genres)
	assert.Equal(t, 1200, s.Rating.Votes)
	assert.Equal(t, "https://source.test/banner/got.jpg", s.Images.Banner)

	require.Len(t, s.Episodes, 2)
	first := s.Episodes[0]
	assert.Equal(t, "Winter Is Coming", first.Title)
	require.Len(t, first.Torrents, 2)
	assert.Equal(t, "0", first.Torrents[0].Quality)
	assert.Equal(t, "720p", first.Torrents[1].Quality)
	assert.Equal(t, 40, first.Torrents[1].Seeds)
	assert.Equal(t, "eztv", first.Torrents[1].Provider)

	assert.Equal(t, int64(1303606800), s.LastUpdated)
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name string
		edit func(source.Document)
	}{
		{"Missing Imdb", func(d source.Document) { delete(d, "imdb_id") }},
		{"Blank Imdb", func(d source.Document) { d["imdb_id"] = "  " }},
		{"Missing Year", func(d source.Document) { delete(d, "year") }},
		{"Zero Year", func(d source.Document) { d["year"] = 0 }},
		{"Garbage Year", func(d source.Document) { d["year"] = "soon" }},
		{"Wrong Shape", func(d source.Document) { d["episodes"] = "none" }},
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

func TestDecode_NoEpisodesKeepsSourceTimestamp(t *testing.T) {
	doc := sampleDoc()
	delete(doc, "episodes")
	doc["last_updated"] = 1500000000

	s, err := Decode(doc)
	require.NoError(t, err)
	assert.Empty(t, s.Episodes)
	assert.Equal(t, int64(1500000000), s.LastUpdated)
}
