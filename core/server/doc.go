// Package server holds the HTTP server configuration partial.
//
// It is embedded into the central core/config.Config and consumed by the
// start command when constructing the Fiber application (listen port, API
// key protection, request body limit).
package server
