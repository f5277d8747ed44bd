// Package show reconciles TV shows from the source store into the catalog.
//
// A show is keyed by its imdb id and owns episodes (keyed by tvdb id), each with
// up to four torrents keyed by quality ("0", "480p", "720p", "1080p").
//
// # First Insert
//
// When the show has a numeric tvdb id and the provider is available, the show is
// searched by title and its details fetched with images and similar shows. The
// best voted backdrop becomes the fanart, the best voted poster the poster, and
// the imdb ids of similar shows are resolved with bounded concurrency. Banner,
// fanart, poster and every episode torrent are then relocated to the asset store.
//
// # Later Runs
//
// Merge only refreshes the fields that change over a show's life (see Merge).
// Episodes and torrents seen for the first time are appended and relocated;
// nothing is removed. The last update timestamp is the latest episode air date.
package show
