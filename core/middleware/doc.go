// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation protecting the export endpoints.
//   - rayid: a unique request id (RayID) for every incoming request, stored in
//     the context for logger.WithRayID and echoed in the response headers.
//
// These are registered globally in the start command.
package middleware
