// Package booleans exposes collection booleans over HTTP.
//
// Each stored scene is loaded once into a session that owns a reconcile
// engine subscribed to the scene. Requests on the same scene are serialized
// by the session lock; every mutation settles the scene and writes it back
// to the store.
package booleans
