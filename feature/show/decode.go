package show

import (
	"fmt"
	"slices"
	"strings"

	"catalog-export/core/reconcile"
	"catalog-export/core/source"
	"catalog-export/core/utils"
)

type rawShow struct {
	ImdbID      string       `mapstructure:"imdb_id"`
	TvdbID      string       `mapstructure:"tvdb_id"`
	Title       string       `mapstructure:"title"`
	Year        string       `mapstructure:"year"`
	Slug        string       `mapstructure:"slug"`
	Synopsis    string       `mapstructure:"synopsis"`
	Runtime     string       `mapstructure:"runtime"`
	Country     string       `mapstructure:"country"`
	Network     string       `mapstructure:"network"`
	AirDay      string       `mapstructure:"air_day"`
	AirTime     string       `mapstructure:"air_time"`
	Status      string       `mapstructure:"status"`
	NumSeasons  int          `mapstructure:"num_seasons"`
	LastUpdated int64        `mapstructure:"last_updated"`
	Genres      []string     `mapstructure:"genres"`
	Images      Images       `mapstructure:"images"`
	Rating      Rating       `mapstructure:"rating"`
	Episodes    []rawEpisode `mapstructure:"episodes"`
}

type rawEpisode struct {
	TvdbID     int                   `mapstructure:"tvdb_id"`
	Season     int                   `mapstructure:"season"`
	Episode    int                   `mapstructure:"episode"`
	Title      string                `mapstructure:"title"`
	Overview   string                `mapstructure:"overview"`
	FirstAired int64                 `mapstructure:"first_aired"`
	DateBased  bool                  `mapstructure:"date_based"`
	Torrents   map[string]rawTorrent `mapstructure:"torrents"`
}

type rawTorrent struct {
	URL      string `mapstructure:"url"`
	Peers    int    `mapstructure:"peers"`
	Seeds    int    `mapstructure:"seeds"`
	Provider string `mapstructure:"provider"`
}

// Decode turns a raw source document into a Show. The imdb id and a positive
// year are mandatory.
func Decode(doc source.Document) (*Show, error) {
	var raw rawShow
	if err := source.Decode(doc, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", reconcile.ErrDecode, err)
	}

	imdb := strings.TrimSpace(raw.ImdbID)
	if imdb == "" {
		return nil, fmt.Errorf("%w: missing imdb_id", reconcile.ErrDecode)
	}
	year, ok := utils.ParseInt64(raw.Year)
	if !ok || year <= 0 {
		return nil, fmt.Errorf("%w: show %s has invalid year %q", reconcile.ErrDecode, imdb, raw.Year)
	}

	s := &Show{
		ImdbID:      imdb,
		TvdbID:      strings.TrimSpace(raw.TvdbID),
		Title:       raw.Title,
		Year:        int(year),
		Slug:        raw.Slug,
		Synopsis:    raw.Synopsis,
		Runtime:     raw.Runtime,
		Country:     raw.Country,
		Network:     raw.Network,
		AirDay:      raw.AirDay,
		AirTime:     raw.AirTime,
		Status:      raw.Status,
		NumSeasons:  raw.NumSeasons,
		LastUpdated: raw.LastUpdated,
		Images:      raw.Images,
		Rating:      raw.Rating,
	}

	seenGenre := make(map[string]struct{}, len(raw.Genres))
	names := make([]string, 0, len(raw.Genres))
	for _, g := range raw.Genres {
		g = strings.TrimSpace(g)
		if _, dup := seenGenre[g]; g == "" || dup {
			continue
		}
		seenGenre[g] = struct{}{}
		names = append(names, g)
		s.Genres = append(s.Genres, Genre{Name: g})
	}
	s.GenreNames = strings.Join(names, ", ")

	seenEpisode := make(map[int]struct{}, len(raw.Episodes))
	for _, re := range raw.Episodes {
		// Episodes without a key cannot be matched on later runs.
		if re.TvdbID == 0 {
			continue
		}
		if _, dup := seenEpisode[re.TvdbID]; dup {
			continue
		}
		seenEpisode[re.TvdbID] = struct{}{}
		s.Episodes = append(s.Episodes, decodeEpisode(re))
	}

	s.RecomputeLastUpdated()
	return s, nil
}

func decodeEpisode(re rawEpisode) Episode {
	e := Episode{
		TvdbID:        re.TvdbID,
		Season:        re.Season,
		EpisodeNumber: re.Episode,
		Title:         re.Title,
		Overview:      re.Overview,
		FirstAired:    re.FirstAired,
		DateBased:     re.DateBased,
	}
	for quality, rt := range re.Torrents {
		if rt.URL == "" {
			continue
		}
		e.Torrents = append(e.Torrents, EpisodeTorrent{
			Quality:  quality,
			URL:      rt.URL,
			Peers:    rt.Peers,
			Seeds:    rt.Seeds,
			Provider: rt.Provider,
		})
	}
	slices.SortFunc(e.Torrents, func(a, b EpisodeTorrent) int {
		return compareQuality(a.Quality, b.Quality)
	})
	return e
}
