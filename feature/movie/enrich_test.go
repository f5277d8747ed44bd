package movie

import (
	"context"
	"errors"
	"testing"

	"catalog-export/core/provider"
	providermocks "catalog-export/core/provider/mocks"
	relocatemocks "catalog-export/core/relocate/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func matrixDetails() *provider.Details {
	d := &provider.Details{ID: 603, ImdbID: "tt0133093"}
	d.Images.Backdrops = []provider.Image{
		{FilePath: "/voted.jpg", Width: 1280, VoteAverage: 9.1},
		{FilePath: "/wide.jpg", Width: 3840, VoteAverage: 5.0},
	}
	d.Images.Posters = []provider.Image{
		{FilePath: "/p1.jpg", Width: 2000, VoteAverage: 5.3},
		{FilePath: "/p2.jpg", Width: 1000, VoteAverage: 5.9},
	}
	return d
}

func TestEnrich(t *testing.T) {
	p := &providermocks.Provider{}
	p.On("Available").Return(true)
	p.On("FetchDetails", mock.Anything, provider.KindMovie, "tt0133093", true, false).Return(matrixDetails(), nil)

	m, err := Decode(sampleDoc())
	require.NoError(t, err)
	r := &relocatemocks.Relocator{}

	require.NoError(t, NewEnricher(p, r, zap.NewNop()).Enrich(context.Background(), m))

	assert.Equal(t, relocatemocks.PublicBase+"images/tt0133093/backdrop/wide.jpg", m.Media.BackdropImage)
	assert.Equal(t, relocatemocks.PublicBase+"images/tt0133093/poster/p2.jpg", m.Media.PosterImage)
	assert.Equal(t, relocatemocks.PublicBase+"images/tt0133093/background/matrix.jpg", m.Media.BackgroundImage)
	assert.Equal(t, relocatemocks.PublicBase+"images/tt0133093/cover/small/small.jpg", m.Media.SmallCoverImage)
	assert.Equal(t, relocatemocks.PublicBase+"images/tt0133093/screenshot/medium/1/m1.jpg", m.Media.MediumScreenshotImage1)
	assert.Empty(t, m.Media.LargeScreenshotImage3)

	assert.Equal(t, relocatemocks.PublicBase+"torrents/tt0133093/1080p/tt0133093.torrent", m.Torrent("1080p").URL)
	assert.Equal(t, "https://source.test/torrent/download/ABC", r.Source("torrents/tt0133093/1080p/tt0133093.torrent"))
	assert.Equal(t, relocatemocks.PublicBase+"images/tt0133093/cast/0000206/keanu.jpg", m.Actor("0000206").SmallImage)

	assert.Len(t, r.Paths(), 9)
	p.AssertExpectations(t)
}

func TestEnrich_ProviderMiss(t *testing.T) {
	p := &providermocks.Provider{}
	p.On("Available").Return(true)
	p.On("FetchDetails", mock.Anything, provider.KindMovie, "tt0133093", true, false).Return(nil, provider.ErrNotFound)

	m, err := Decode(sampleDoc())
	require.NoError(t, err)
	require.NoError(t, NewEnricher(p, &relocatemocks.Relocator{}, nil).Enrich(context.Background(), m))
	assert.Empty(t, m.Media.BackdropImage)
	assert.Empty(t, m.Media.PosterImage)
}

func TestEnrich_KeepsNonHTTPReferences(t *testing.T) {
	m := &Movie{
		ImdbCode: "tt1",
		Torrents: []Torrent{{Quality: "720p", URL: "magnet:?xt=urn:btih:abc"}},
		Media:    Media{LargeCoverImage: "/local/cover.jpg"},
	}
	r := &relocatemocks.Relocator{}
	require.NoError(t, NewEnricher(nil, r, nil).Enrich(context.Background(), m))
	assert.Empty(t, r.Paths())
	assert.Equal(t, "magnet:?xt=urn:btih:abc", m.Torrents[0].URL)
	assert.Equal(t, "/local/cover.jpg", m.Media.LargeCoverImage)
}

func TestEnrich_FailFast(t *testing.T) {
	boom := errors.New("upload refused")
	r := &relocatemocks.Relocator{Fail: map[string]error{"https://source.test/cast/keanu.jpg": boom}}

	m, err := Decode(sampleDoc())
	require.NoError(t, err)
	err = NewEnricher(provider.Disabled{}, r, nil).Enrich(context.Background(), m)
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "cast 0000206")
}
