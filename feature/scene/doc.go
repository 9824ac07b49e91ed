// Package scene is an in-memory scene graph that hosts the reconciliation
// engine outside a DCC application.
//
// A Scene holds ordered objects, each with boolean settings, display
// attributes and a modifier stack, plus named collections that may nest.
// It implements reconcile.SceneGraphSource, reconcile.ChangeNotifier and
// reconcile.UndoRecorder. Mutations mark the scene dirty; Update delivers
// notifications and repeats while handlers keep changing the scene, up to
// the configured settle rounds.
//
// References are weak: removing an object leaves effects that targeted it
// dangling, and removing a collection leaves slots naming it unresolved.
//
// # Persistence
//
// Scenes round-trip through Document (JSON or YAML, validated with
// go-playground/validator). Stores:
//
//   - FileStore: one file per scene on an afero filesystem.
//   - ObjectStore: JSON objects under the storage scene prefix.
//   - DBStore: the scenes table through GORM.
//   - CachedStore: TTL cache with singleflight in front of any store.
//
// Watcher turns writes to a scene file into reload callbacks for the
// watch command.
package scene
