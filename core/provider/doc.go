// Package provider talks to the TMDb metadata API.
//
// The exporter asks the provider for better imagery when a record is inserted
// for the first time. Lookups are rate limited, deduplicated with singleflight and
// cached (see core/cache), and the image configuration is fetched once in Init.
//
// # Degraded Mode
//
// New never fails. Without an api key, or when the configuration fetch fails, it
// returns a Disabled provider whose Available method reports false; enrichment is
// then skipped and records keep the media their source document carries.
//
// # Image Selection
//
// ByWidth and ByVoteAverage are the two metrics used with selector.Best. They are
// deliberately different: movie backdrops favour resolution, posters and show
// fanart favour community votes.
package provider
