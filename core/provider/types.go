package provider

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when the provider has no record for the identifier.
	ErrNotFound = errors.New("provider record not found")
	// ErrUnavailable is returned by a provider running in no-enrichment mode.
	ErrUnavailable = errors.New("provider unavailable")
)

// Kind selects the provider catalog.
type Kind string

const (
	KindMovie Kind = "movie"
	KindTV    Kind = "tv"
)

// Provider is the metadata source used to enrich new catalog records.
type Provider interface {
	// Available reports whether enrichment can be attempted at all.
	Available() bool
	SearchByTitle(ctx context.Context, kind Kind, title string) ([]SearchResult, error)
	// FetchDetails loads one record; id is the provider id or, for movies, an imdb code.
	FetchDetails(ctx context.Context, kind Kind, id string, withImages, withSimilar bool) (*Details, error)
	// ResolveImageURL turns an image path into an absolute URL at the given size.
	ResolveImageURL(size, path string) string
	ExternalIDs(ctx context.Context, kind Kind, id int) (*ExternalIDs, error)
}

// Image is one provider image candidate.
type Image struct {
	FilePath    string  `json:"file_path"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	AspectRatio float64 `json:"aspect_ratio"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
	Language    string  `json:"iso_639_1"`
}

// Images groups the candidates of a record.
type Images struct {
	Backdrops []Image `json:"backdrops"`
	Posters   []Image `json:"posters"`
}

// SearchResult is a search hit or a similar-title entry.
type SearchResult struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	VoteAverage  float64 `json:"vote_average"`
	PosterPath   string  `json:"poster_path"`
}

// DisplayTitle returns the movie title or the show name.
func (r SearchResult) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	return r.Name
}

// Details is a record fetched with optional appended images and similar titles.
type Details struct {
	ID           int    `json:"id"`
	ImdbID       string `json:"imdb_id"`
	Title        string `json:"title"`
	Name         string `json:"name"`
	BackdropPath string `json:"backdrop_path"`
	PosterPath   string `json:"poster_path"`
	Images       Images `json:"images"`
	Similar      struct {
		Results []SearchResult `json:"results"`
	} `json:"similar"`
}

// ExternalIDs maps a provider record onto other catalogs.
type ExternalIDs struct {
	ImdbID string `json:"imdb_id"`
	TvdbID int    `json:"tvdb_id"`
}

// Disabled is the no-enrichment provider.
type Disabled struct {
	Reason string
}

func (Disabled) Available() bool { return false }

func (Disabled) SearchByTitle(context.Context, Kind, string) ([]SearchResult, error) {
	return nil, ErrUnavailable
}

func (Disabled) FetchDetails(context.Context, Kind, string, bool, bool) (*Details, error) {
	return nil, ErrUnavailable
}

func (Disabled) ResolveImageURL(string, string) string { return "" }

func (Disabled) ExternalIDs(context.Context, Kind, int) (*ExternalIDs, error) {
	return nil, ErrUnavailable
}
