package movie

import (
	"fmt"
	"slices"
	"strings"

	"catalog-export/core/reconcile"
	"catalog-export/core/source"
	"catalog-export/core/utils"
)

type rawMovie struct {
	ImdbCode         string       `mapstructure:"imdb_code"`
	Title            string       `mapstructure:"title"`
	TitleLong        string       `mapstructure:"title_long"`
	Slug             string       `mapstructure:"slug"`
	Year             string       `mapstructure:"year"`
	Rating           float64      `mapstructure:"rating"`
	Runtime          int          `mapstructure:"runtime"`
	Language         string       `mapstructure:"language"`
	MpaRating        string       `mapstructure:"mpa_rating"`
	DownloadCount    int          `mapstructure:"download_count"`
	LikeCount        int          `mapstructure:"like_count"`
	DescriptionIntro string       `mapstructure:"description_intro"`
	DescriptionFull  string       `mapstructure:"description_full"`
	YtTrailerCode    string       `mapstructure:"yt_trailer_code"`
	DateUploaded     string       `mapstructure:"date_uploaded"`
	DateUploadedUnix int64        `mapstructure:"date_uploaded_unix"`
	Genres           []string     `mapstructure:"genres"`
	Media            Media        `mapstructure:",squash"`
	Torrents         []rawTorrent `mapstructure:"torrents"`
	Cast             []rawCast    `mapstructure:"cast"`
	Similar          []int        `mapstructure:"similar"`
}

type rawTorrent struct {
	URL              string `mapstructure:"url"`
	Hash             string `mapstructure:"hash"`
	Quality          string `mapstructure:"quality"`
	Seeds            int    `mapstructure:"seeds"`
	Peers            int    `mapstructure:"peers"`
	Size             string `mapstructure:"size"`
	SizeBytes        int64  `mapstructure:"size_bytes"`
	DateUploaded     string `mapstructure:"date_uploaded"`
	DateUploadedUnix int64  `mapstructure:"date_uploaded_unix"`
}

type rawCast struct {
	ImdbCode      string `mapstructure:"imdb_code"`
	Name          string `mapstructure:"name"`
	CharacterName string `mapstructure:"character_name"`
	SmallImage    string `mapstructure:"small_image"`
	URLSmallImage string `mapstructure:"url_small_image"`
}

// Decode turns a raw source document into a Movie. The imdb code and a
// positive year are mandatory.
func Decode(doc source.Document) (*Movie, error) {
	var raw rawMovie
	if err := source.Decode(doc, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", reconcile.ErrDecode, err)
	}

	imdb := strings.TrimSpace(raw.ImdbCode)
	if imdb == "" {
		return nil, fmt.Errorf("%w: missing imdb_code", reconcile.ErrDecode)
	}
	year, ok := utils.ParseInt64(raw.Year)
	if !ok || year <= 0 {
		return nil, fmt.Errorf("%w: movie %s has invalid year %q", reconcile.ErrDecode, imdb, raw.Year)
	}

	m := &Movie{
		ImdbCode:         imdb,
		Title:            raw.Title,
		TitleLong:        raw.TitleLong,
		Slug:             raw.Slug,
		Year:             int(year),
		Rating:           raw.Rating,
		Runtime:          raw.Runtime,
		Language:         raw.Language,
		MpaRating:        raw.MpaRating,
		DownloadCount:    raw.DownloadCount,
		LikeCount:        raw.LikeCount,
		DescriptionIntro: raw.DescriptionIntro,
		DescriptionFull:  raw.DescriptionFull,
		YtTrailerCode:    raw.YtTrailerCode,
		DateUploaded:     raw.DateUploaded,
		DateUploadedUnix: raw.DateUploadedUnix,
		Media:            raw.Media,
	}

	names := make([]string, 0, len(raw.Genres))
	for _, g := range raw.Genres {
		g = strings.TrimSpace(g)
		if g == "" || slices.Contains(names, g) {
			continue
		}
		names = append(names, g)
		m.Genres = append(m.Genres, Genre{Name: g})
	}
	m.GenreNames = strings.Join(names, ", ")

	for _, rt := range raw.Torrents {
		// the quality is the torrent key
		if rt.Quality == "" || m.Torrent(rt.Quality) != nil {
			continue
		}
		m.Torrents = append(m.Torrents, Torrent{
			Quality:          rt.Quality,
			URL:              rt.URL,
			Hash:             rt.Hash,
			Seeds:            rt.Seeds,
			Peers:            rt.Peers,
			Size:             rt.Size,
			SizeBytes:        rt.SizeBytes,
			DateUploaded:     rt.DateUploaded,
			DateUploadedUnix: rt.DateUploadedUnix,
		})
	}
	slices.SortFunc(m.Torrents, func(a, b Torrent) int { return compareQuality(a.Quality, b.Quality) })

	for _, rc := range raw.Cast {
		code := strings.TrimSpace(rc.ImdbCode)
		if code == "" || m.Actor(code) != nil {
			continue
		}
		image := rc.SmallImage
		if image == "" {
			image = rc.URLSmallImage
		}
		m.Cast = append(m.Cast, Cast{
			ImdbCode:      code,
			Name:          rc.Name,
			CharacterName: rc.CharacterName,
			SmallImage:    image,
		})
	}

	for _, id := range raw.Similar {
		if id <= 0 || slices.ContainsFunc(m.Similars, func(s Similar) bool { return s.TmdbID == id }) {
			continue
		}
		m.Similars = append(m.Similars, Similar{TmdbID: id})
	}

	return m, nil
}
