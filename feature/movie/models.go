package movie

import (
	"slices"
	"strings"
	"time"

	"catalog-export/core/relocate"
)

// Movie is a film of the catalog, identified by its imdb code.
type Movie struct {
	ID               uint      `gorm:"primaryKey" json:"-"`
	ImdbCode         string    `gorm:"size:16;not null;uniqueIndex" json:"imdb_code"`
	Title            string    `gorm:"size:255" json:"title"`
	TitleLong        string    `gorm:"size:255" json:"title_long"`
	Slug             string    `gorm:"size:255" json:"slug"`
	Year             int       `json:"year"`
	Rating           float64   `json:"rating"`
	Runtime          int       `json:"runtime"`
	Language         string    `gorm:"size:16" json:"language"`
	MpaRating        string    `gorm:"size:16" json:"mpa_rating"`
	DownloadCount    int       `json:"download_count"`
	LikeCount        int       `json:"like_count"`
	DescriptionIntro string    `gorm:"type:text" json:"description_intro"`
	DescriptionFull  string    `gorm:"type:text" json:"description_full"`
	YtTrailerCode    string    `gorm:"size:32" json:"yt_trailer_code"`
	DateUploaded     string    `gorm:"size:32" json:"date_uploaded"`
	DateUploadedUnix int64     `json:"date_uploaded_unix"`
	GenreNames       string    `gorm:"size:255" json:"genre_names"`
	Media            Media     `gorm:"embedded" json:"media"`
	Genres           []Genre   `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE" json:"genres"`
	Torrents         []Torrent `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE" json:"torrents"`
	Cast             []Cast    `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE" json:"cast"`
	Similars         []Similar `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE" json:"similars"`
	CreatedAt        time.Time `json:"-"`
	UpdatedAt        time.Time `json:"-"`
}

// Media holds every image reference of a movie.
type Media struct {
	BackdropImage          string `gorm:"size:1024" json:"backdrop_image" mapstructure:"backdrop_image"`
	PosterImage            string `gorm:"size:1024" json:"poster_image" mapstructure:"poster_image"`
	BackgroundImage        string `gorm:"size:1024" json:"background_image" mapstructure:"background_image"`
	SmallCoverImage        string `gorm:"size:1024" json:"small_cover_image" mapstructure:"small_cover_image"`
	MediumCoverImage       string `gorm:"size:1024" json:"medium_cover_image" mapstructure:"medium_cover_image"`
	LargeCoverImage        string `gorm:"size:1024" json:"large_cover_image" mapstructure:"large_cover_image"`
	MediumScreenshotImage1 string `gorm:"size:1024" json:"medium_screenshot_image1" mapstructure:"medium_screenshot_image1"`
	MediumScreenshotImage2 string `gorm:"size:1024" json:"medium_screenshot_image2" mapstructure:"medium_screenshot_image2"`
	MediumScreenshotImage3 string `gorm:"size:1024" json:"medium_screenshot_image3" mapstructure:"medium_screenshot_image3"`
	LargeScreenshotImage1  string `gorm:"size:1024" json:"large_screenshot_image1" mapstructure:"large_screenshot_image1"`
	LargeScreenshotImage2  string `gorm:"size:1024" json:"large_screenshot_image2" mapstructure:"large_screenshot_image2"`
	LargeScreenshotImage3  string `gorm:"size:1024" json:"large_screenshot_image3" mapstructure:"large_screenshot_image3"`
}

// imageSlot is one media field and the storage subkinds it is relocated under.
type imageSlot struct {
	field    *string
	subkinds []string
}

func (m *Media) slots() []imageSlot {
	return []imageSlot{
		{&m.BackdropImage, []string{"backdrop"}},
		{&m.PosterImage, []string{"poster"}},
		{&m.BackgroundImage, []string{"background"}},
		{&m.SmallCoverImage, []string{"cover", "small"}},
		{&m.MediumCoverImage, []string{"cover", "medium"}},
		{&m.LargeCoverImage, []string{"cover", "large"}},
		{&m.MediumScreenshotImage1, []string{"screenshot", "medium", "1"}},
		{&m.MediumScreenshotImage2, []string{"screenshot", "medium", "2"}},
		{&m.MediumScreenshotImage3, []string{"screenshot", "medium", "3"}},
		{&m.LargeScreenshotImage1, []string{"screenshot", "large", "1"}},
		{&m.LargeScreenshotImage2, []string{"screenshot", "large", "2"}},
		{&m.LargeScreenshotImage3, []string{"screenshot", "large", "3"}},
	}
}

// MediaRefs lists every non-empty media field of the movie and its children.
func (m *Movie) MediaRefs() []relocate.Ref {
	var refs []relocate.Ref
	for _, slot := range m.Media.slots() {
		if *slot.field != "" {
			refs = append(refs, relocate.Ref{Field: strings.Join(slot.subkinds, "."), URL: *slot.field})
		}
	}
	for _, t := range m.Torrents {
		if t.URL != "" {
			refs = append(refs, relocate.Ref{Field: "torrents." + t.Quality, URL: t.URL})
		}
	}
	for _, c := range m.Cast {
		if c.SmallImage != "" {
			refs = append(refs, relocate.Ref{Field: "cast." + c.ImdbCode, URL: c.SmallImage})
		}
	}
	return refs
}

// Genre is one genre of a movie.
type Genre struct {
	ID      uint   `gorm:"primaryKey" json:"-"`
	MovieID uint   `gorm:"uniqueIndex:idx_movie_genre" json:"-"`
	Name    string `gorm:"size:64;uniqueIndex:idx_movie_genre" json:"name"`
}

func (Genre) TableName() string { return "movie_genres" }

// Torrent is one quality of a movie.
type Torrent struct {
	ID               uint   `gorm:"primaryKey" json:"-"`
	MovieID          uint   `gorm:"uniqueIndex:idx_movie_quality" json:"-"`
	Quality          string `gorm:"size:16;uniqueIndex:idx_movie_quality" json:"quality"`
	URL              string `gorm:"size:2048" json:"url"`
	Hash             string `gorm:"size:64" json:"hash"`
	Seeds            int    `json:"seeds"`
	Peers            int    `json:"peers"`
	Size             string `gorm:"size:32" json:"size"`
	SizeBytes        int64  `json:"size_bytes"`
	DateUploaded     string `gorm:"size:32" json:"date_uploaded"`
	DateUploadedUnix int64  `json:"date_uploaded_unix"`
}

func (Torrent) TableName() string { return "movie_torrents" }

// Cast is an actor of a movie, keyed by imdb code.
type Cast struct {
	ID            uint   `gorm:"primaryKey" json:"-"`
	MovieID       uint   `gorm:"uniqueIndex:idx_movie_cast" json:"-"`
	ImdbCode      string `gorm:"size:16;uniqueIndex:idx_movie_cast" json:"imdb_code"`
	Name          string `gorm:"size:255" json:"name"`
	CharacterName string `gorm:"size:255" json:"character_name"`
	SmallImage    string `gorm:"size:1024" json:"small_image"`
}

func (Cast) TableName() string { return "movie_casts" }

// Similar references a related movie by its provider id.
type Similar struct {
	ID      uint `gorm:"primaryKey" json:"-"`
	MovieID uint `gorm:"uniqueIndex:idx_movie_similar" json:"-"`
	TmdbID  int  `gorm:"uniqueIndex:idx_movie_similar" json:"tmdb_id"`
}

func (Similar) TableName() string { return "movie_similars" }

// Models lists every table of the movie catalog, for migrations.
func Models() []any {
	return []any{&Movie{}, &Genre{}, &Torrent{}, &Cast{}, &Similar{}}
}

// Torrent returns the torrent of the given quality, or nil.
func (m *Movie) Torrent(quality string) *Torrent {
	for i := range m.Torrents {
		if m.Torrents[i].Quality == quality {
			return &m.Torrents[i]
		}
	}
	return nil
}

// Actor returns the cast member with the given imdb code, or nil.
func (m *Movie) Actor(imdbCode string) *Cast {
	for i := range m.Cast {
		if m.Cast[i].ImdbCode == imdbCode {
			return &m.Cast[i]
		}
	}
	return nil
}

var qualityOrder = []string{"480p", "720p", "1080p", "2160p", "3D"}

func compareQuality(a, b string) int {
	ia, ib := slices.Index(qualityOrder, a), slices.Index(qualityOrder, b)
	if ia < 0 {
		ia = len(qualityOrder)
	}
	if ib < 0 {
		ib = len(qualityOrder)
	}
	if ia != ib {
		return ia - ib
	}
	return strings.Compare(a, b)
}
