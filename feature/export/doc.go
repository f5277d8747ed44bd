// Package export serves the catalog export over HTTP.
//
// Endpoints:
//   - GET  /export/status  current state and last run report
//   - POST /export/run     start a run; ?types=shows,movies limits it
//
// A run requested while another is in progress is rejected with 409.
package export
