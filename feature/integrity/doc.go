// Package integrity checks that the served catalog is consistent with what the
// export pipeline promises.
//
// # Checks Provided
//
//   - Schema: every table and column of the catalog models exists in the database.
//   - Media: every http(s) media reference of a content type points under the public
//     URL of the asset store. With verify, the referenced objects are looked up in the
//     bucket. Magnet links and other non-http references are ignored.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks, without bucket verification.
//   - GET /integrity/schema : Runs the schema check.
//   - GET /integrity/media : Runs the media check (supports ?type=movies,shows and ?verify=true).
package integrity
