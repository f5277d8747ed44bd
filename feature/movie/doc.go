// Package movie reconciles movies from the source store into the catalog.
//
// A movie is keyed by its imdb code. New movies take their backdrop (widest
// candidate) and poster (best voted candidate) from the provider; every image,
// torrent and cast picture is then relocated to the asset store. Existing movies
// only refresh their counters and scalar fields; see Merge.
package movie
