// Package server holds the HTTP server configuration.
//
// While the serve command handles the actual server startup, this package
// defines the configuration structure for server settings.
//
// # Configuration
//
// The Config struct defines the HTTP port and the optional API key that
// protects the browse endpoints.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server
// settings and by the serve command to bind the listener.
package server
