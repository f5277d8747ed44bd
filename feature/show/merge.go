package show

import (
	"slices"
)

// childKey identifies one torrent of one episode.
type childKey struct {
	episode int
	quality string
}

// Merge applies the show merge rules of incoming onto existing, in place.
//
// Scalar fields: title, status, air day and time, number of seasons, the rating
// counters and the genre display string. Episodes are matched by tvdb id: a
// known episode takes the incoming title and, per known quality, peers and
// seeds. Unknown episodes, qualities and genres are appended. Nothing is ever
// removed and similar shows are left untouched.
func Merge(existing, incoming *Show) {
	merge(existing, incoming)
}

// merge implements Merge and returns the torrents that were appended and still
// carry source URLs.
func merge(existing, incoming *Show) []childKey {
	existing.Title = incoming.Title
	existing.Status = incoming.Status
	existing.AirDay = incoming.AirDay
	existing.AirTime = incoming.AirTime
	existing.NumSeasons = incoming.NumSeasons
	existing.Rating = incoming.Rating
	existing.GenreNames = incoming.GenreNames

	for _, g := range incoming.Genres {
		if !slices.ContainsFunc(existing.Genres, func(x Genre) bool { return x.Name == g.Name }) {
			existing.Genres = append(existing.Genres, Genre{Name: g.Name})
		}
	}

	var appended []childKey
	for _, in := range incoming.Episodes {
		ep := existing.Episode(in.TvdbID)
		if ep == nil {
			fresh := in
			fresh.ID, fresh.ShowID = 0, 0
			fresh.Torrents = slices.Clone(in.Torrents)
			for i := range fresh.Torrents {
				fresh.Torrents[i].ID, fresh.Torrents[i].EpisodeID = 0, 0
				appended = append(appended, childKey{episode: in.TvdbID, quality: fresh.Torrents[i].Quality})
			}
			existing.Episodes = append(existing.Episodes, fresh)
			continue
		}

		ep.Title = in.Title
		for _, t := range in.Torrents {
			if cur := ep.Torrent(t.Quality); cur != nil {
				cur.Peers = t.Peers
				cur.Seeds = t.Seeds
				continue
			}
			ep.Torrents = append(ep.Torrents, EpisodeTorrent{
				Quality:  t.Quality,
				URL:      t.URL,
				Peers:    t.Peers,
				Seeds:    t.Seeds,
				Provider: t.Provider,
			})
			appended = append(appended, childKey{episode: in.TvdbID, quality: t.Quality})
		}
	}

	existing.RecomputeLastUpdated()
	return appended
}

// slots resolves child keys into torrent slots of s. Keys are resolved only
// once all appends are done, so the pointers stay valid.
func slots(s *Show, keys []childKey) []torrentSlot {
	out := make([]torrentSlot, 0, len(keys))
	for _, k := range keys {
		ep := s.Episode(k.episode)
		if ep == nil {
			continue
		}
		if t := ep.Torrent(k.quality); t != nil {
			out = append(out, torrentSlot{episode: k.episode, torrent: t})
		}
	}
	return out
}
