package show

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"catalog-export/core/relocate"
)

// Show is a TV show of the catalog, identified by its imdb id.
type Show struct {
	ID     uint   `gorm:"primaryKey" json:"-"`
	ImdbID string `gorm:"size:16;not null;uniqueIndex" json:"imdb_id"`
	// TvdbID is the secondary identifier; it gates provider lookups.
	TvdbID      string    `gorm:"size:16;index" json:"tvdb_id"`
	Title       string    `gorm:"size:255" json:"title"`
	Year        int       `json:"year"`
	Slug        string    `gorm:"size:255" json:"slug"`
	Synopsis    string    `gorm:"type:text" json:"synopsis"`
	Runtime     string    `gorm:"size:16" json:"runtime"`
	Country     string    `gorm:"size:64" json:"country"`
	Network     string    `gorm:"size:128" json:"network"`
	AirDay      string    `gorm:"size:16" json:"air_day"`
	AirTime     string    `gorm:"size:16" json:"air_time"`
	Status      string    `gorm:"size:32" json:"status"`
	NumSeasons  int       `json:"num_seasons"`
	LastUpdated int64     `json:"last_updated"`
	GenreNames  string    `gorm:"size:255" json:"genre_names"`
	Images      Images    `gorm:"embedded;embeddedPrefix:image_" json:"images"`
	Rating      Rating    `gorm:"embedded;embeddedPrefix:rating_" json:"rating"`
	Genres      []Genre   `gorm:"foreignKey:ShowID;constraint:OnDelete:CASCADE" json:"genres"`
	Episodes    []Episode `gorm:"foreignKey:ShowID;constraint:OnDelete:CASCADE" json:"episodes"`
	Similars    []Similar `gorm:"foreignKey:ShowID;constraint:OnDelete:CASCADE" json:"similars"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// Images holds the show artwork.
type Images struct {
	Banner string `gorm:"size:1024" json:"banner"`
	Fanart string `gorm:"size:1024" json:"fanart"`
	Poster string `gorm:"size:1024" json:"poster"`
}

// Rating holds the community rating counters.
type Rating struct {
	Hated      int `json:"hated"`
	Loved      int `json:"loved"`
	Percentage int `json:"percentage"`
	Votes      int `json:"votes"`
	Watching   int `json:"watching"`
}

// Genre is one genre of a show.
type Genre struct {
	ID     uint   `gorm:"primaryKey" json:"-"`
	ShowID uint   `gorm:"uniqueIndex:idx_show_genre" json:"-"`
	Name   string `gorm:"size:64;uniqueIndex:idx_show_genre" json:"name"`
}

func (Genre) TableName() string { return "show_genres" }

// Episode is keyed by its tvdb id within a show.
type Episode struct {
	ID            uint             `gorm:"primaryKey" json:"-"`
	ShowID        uint             `gorm:"uniqueIndex:idx_show_episode" json:"-"`
	TvdbID        int              `gorm:"uniqueIndex:idx_show_episode" json:"tvdb_id"`
	Season        int              `json:"season"`
	EpisodeNumber int              `json:"episode"`
	Title         string           `gorm:"size:255" json:"title"`
	Overview      string           `gorm:"type:text" json:"overview"`
	FirstAired    int64            `json:"first_aired"`
	DateBased     bool             `json:"date_based"`
	Torrents      []EpisodeTorrent `gorm:"foreignKey:EpisodeID;constraint:OnDelete:CASCADE" json:"torrents"`
}

func (Episode) TableName() string { return "show_episodes" }

// Torrent returns the torrent of the given quality, or nil.
func (e *Episode) Torrent(quality string) *EpisodeTorrent {
	for i := range e.Torrents {
		if e.Torrents[i].Quality == quality {
			return &e.Torrents[i]
		}
	}
	return nil
}

// EpisodeTorrent is one quality of an episode.
type EpisodeTorrent struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	EpisodeID uint   `gorm:"uniqueIndex:idx_episode_quality" json:"-"`
	Quality   string `gorm:"size:8;uniqueIndex:idx_episode_quality" json:"quality"`
	URL       string `gorm:"size:2048" json:"url"`
	Peers     int    `json:"peers"`
	Seeds     int    `json:"seeds"`
	Provider  string `gorm:"size:64" json:"provider"`
}

func (EpisodeTorrent) TableName() string { return "show_episode_torrents" }

// Similar references a related show by imdb id.
type Similar struct {
	ID     uint   `gorm:"primaryKey" json:"-"`
	ShowID uint   `gorm:"uniqueIndex:idx_show_similar" json:"-"`
	ImdbID string `gorm:"size:16;uniqueIndex:idx_show_similar" json:"imdb_id"`
}

func (Similar) TableName() string { return "show_similars" }

// Models lists every table of the show catalog, for migrations.
func Models() []any {
	return []any{&Show{}, &Genre{}, &Episode{}, &EpisodeTorrent{}, &Similar{}}
}

// Episode returns the episode with the given tvdb id, or nil.
func (s *Show) Episode(tvdbID int) *Episode {
	for i := range s.Episodes {
		if s.Episodes[i].TvdbID == tvdbID {
			return &s.Episodes[i]
		}
	}
	return nil
}

// RecomputeLastUpdated sets LastUpdated to the latest episode air date.
// A show without episodes keeps its current value.
func (s *Show) RecomputeLastUpdated() {
	if len(s.Episodes) == 0 {
		return
	}
	var latest int64
	for _, e := range s.Episodes {
		latest = max(latest, e.FirstAired)
	}
	s.LastUpdated = latest
}

// MediaRefs lists every non-empty media field of the show and its episodes.
func (s *Show) MediaRefs() []relocate.Ref {
	var refs []relocate.Ref
	for field, url := range map[string]string{
		"images.banner": s.Images.Banner,
		"images.fanart": s.Images.Fanart,
		"images.poster": s.Images.Poster,
	} {
		if url != "" {
			refs = append(refs, relocate.Ref{Field: field, URL: url})
		}
	}
	slices.SortFunc(refs, func(a, b relocate.Ref) int { return strings.Compare(a.Field, b.Field) })

	for _, e := range s.Episodes {
		for _, t := range e.Torrents {
			if t.URL != "" {
				refs = append(refs, relocate.Ref{
					Field: fmt.Sprintf("episodes.%d.torrents.%s", e.TvdbID, t.Quality),
					URL:   t.URL,
				})
			}
		}
	}
	return refs
}

// qualityOrder ranks the known torrent qualities; unknown ones sort last.
var qualityOrder = []string{"0", "480p", "720p", "1080p"}

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
