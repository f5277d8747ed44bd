package movie

import "slices"

// Merge applies the movie merge rules of incoming onto existing, in place.
//
// Scalar fields: title, long title, rating, MPA rating, runtime, download and
// like counts and the genre display string. Torrents are matched by quality and
// only refresh seeds and peers. Unknown torrents, cast members, genres and
// similar movies are appended. Nothing is removed and images are kept.
func Merge(existing, incoming *Movie) {
	merge(existing, incoming)
}

// appended names the children added by merge, by natural key.
type appended struct {
	torrents []string
	cast     []string
}

func merge(existing, incoming *Movie) appended {
	existing.Title = incoming.Title
	existing.TitleLong = incoming.TitleLong
	existing.Rating = incoming.Rating
	existing.MpaRating = incoming.MpaRating
	existing.Runtime = incoming.Runtime
	existing.DownloadCount = incoming.DownloadCount
	existing.LikeCount = incoming.LikeCount
	existing.GenreNames = incoming.GenreNames

	for _, g := range incoming.Genres {
		if !slices.ContainsFunc(existing.Genres, func(x Genre) bool { return x.Name == g.Name }) {
			existing.Genres = append(existing.Genres, Genre{Name: g.Name})
		}
	}
	for _, s := range incoming.Similars {
		if !slices.ContainsFunc(existing.Similars, func(x Similar) bool { return x.TmdbID == s.TmdbID }) {
			existing.Similars = append(existing.Similars, Similar{TmdbID: s.TmdbID})
		}
	}

	var added appended
	for _, t := range incoming.Torrents {
		if cur := existing.Torrent(t.Quality); cur != nil {
			cur.Seeds = t.Seeds
			cur.Peers = t.Peers
			continue
		}
		t.ID, t.MovieID = 0, 0
		existing.Torrents = append(existing.Torrents, t)
		added.torrents = append(added.torrents, t.Quality)
	}
	for _, c := range incoming.Cast {
		if existing.Actor(c.ImdbCode) != nil {
			continue
		}
		c.ID, c.MovieID = 0, 0
		existing.Cast = append(existing.Cast, c)
		added.cast = append(added.cast, c.ImdbCode)
	}
	return added
}

// resolve returns pointers to the appended children of m. It must run after
// all appends are done.
func (a appended) resolve(m *Movie) ([]*Torrent, []*Cast) {
	var torrents []*Torrent
	for _, q := range a.torrents {
		if t := m.Torrent(q); t != nil {
			torrents = append(torrents, t)
		}
	}
	var cast []*Cast
	for _, code := range a.cast {
		if c := m.Actor(code); c != nil {
			cast = append(cast, c)
		}
	}
	return torrents, cast
}

// empty reports whether nothing was appended.
func (a appended) empty() bool {
	return len(a.torrents) == 0 && len(a.cast) == 0
}
