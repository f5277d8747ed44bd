// Package relocate copies media referenced by source documents into the asset store.
//
// Source documents point at transient locations (provider CDNs, tracker sites).
// Relocate downloads such a reference, uploads it under a deterministic key and
// returns the asset store URL that replaces it in the catalog.
//
// # Keys
//
// Keys follow <kind>/<naturalKey>/<subkind...>/<basename>, for example
// images/tt0944947/poster/poster.jpg or torrents/tt0133093/720p/tt0133093.torrent.
//
// # Behaviour
//
//   - Empty values and non-http references (magnet links) are returned unchanged.
//   - A key that already exists is not downloaded again.
//   - Payloads stored under a .torrent key must parse as metainfo.
package relocate
