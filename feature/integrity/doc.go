// Package integrity provides health checks for the collection boolean service.
//
// # Checks Provided
//
//   - Structure: Checks that the scene prefix exists in the storage bucket.
//   - Server: Validates that the scenes table matches the scene.Record model (columns, types).
//   - Scenes: Runs a reconcile pass on a copy of each stored scene and reports
//     every mutation it would make. A converged scene reports none.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/server : Runs server schema check.
//   - GET /integrity/scenes : Audits every stored scene.
//   - GET /integrity/scenes/:scene : Audits one scene.
package integrity
