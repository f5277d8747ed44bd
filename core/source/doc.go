// Package source reads raw documents from the source-of-truth store.
//
// A Loader returns the whole batch of one content type ("movies", "shows") as
// schema-flexible Documents. Decoding them into typed records is left to the
// feature packages.
//
// # Drivers
//
//   - mongo: one collection per content type; BSON values are normalised to plain
//     Go values (ObjectIDs become hex strings, DateTimes become time.Time).
//   - storage: a JSON array stored at <prefix>/<content type>.json in the bucket.
package source
