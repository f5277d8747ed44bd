// Package reconcile merges raw source documents into the persisted catalog.
//
// The engine is generic over the record type. A content type plugs in through an
// Adapter (decode, key, enrich, merge) and a Store (find by natural key, save
// with the full child graph), so movies and shows share one loop.
//
// # Processing
//
// Documents are processed sequentially in batch order, each in one pass:
//
//  1. Decode the raw document; invalid documents are skipped.
//  2. Find the persisted record by natural key, children included.
//  3. New record: Enrich, then Save. Existing record: Merge, then Save.
//
// A failure at any step skips that document only. The failing stage is kept in a
// DocumentError and reported both to the telemetry sink and in the Summary.
// Panics are recovered per document.
//
// # Usage Example
//
//	engine := reconcile.NewEngine[*movie.Movie](movie.NewAdapter(deps), movie.Opener(db), sink, log)
//	summary, err := engine.Run(ctx, docs)
//
// # Creating Adapters
//
// To support a new content type, implement Adapter and Store for its record
// type. See feature/movie and feature/show.
package reconcile
