// Package server holds the HTTP server configuration and constants.
//
// The start command owns the server lifecycle; this package only defines
// the settings it reads: listen port, API key, and which backend stores
// scene documents (file, storage, database).
package server
