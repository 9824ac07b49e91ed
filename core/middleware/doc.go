// Package middleware groups the Fiber middleware shared by every feature.
//
// # Components
//
//   - auth: Checks the X-API-Key header (or a Bearer token) against the
//     configured key. Paths such as /swagger and the metrics route can be
//     exempted.
//   - rayid: Assigns every request a Ray ID, stores it in the request locals
//     and echoes it in the X-Ray-ID response header so logs can be correlated.
//
// Register rayid first so every later log line carries the ID.
package middleware
