// Package server holds the HTTP server configuration.
//
// The main application entry point handles the server startup; this package
// only defines the configuration structure (listen port and API key) so that
// core/config can embed it alongside the other partial configurations.
package server
