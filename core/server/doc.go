// Package server holds the HTTP server configuration.
//
// While the main application entry point handles the server startup, this package
// defines the configuration structure for the export API: the listen port, the
// API key guarding the routes and the request read timeout.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server settings
// and by the start command to build the Fiber application.
package server
