// Package reconcile keeps auto-generated boolean effects on mesh objects
// convergent with per-object slot declarations.
//
// Each mesh object carries a Settings record with an enabled flag and three
// slots (difference, union, intersect), each optionally naming a grouping of
// other objects. For every enabled object the engine maintains exactly one
// generated boolean effect per (slot, mesh member of the slot's grouping) in
// the object's modifier stack, hides the referenced members, and removes
// generated effects that no declaration backs anymore. Effects the user
// added by hand are never read or modified.
//
// # Architecture
//
//  1. Capability interfaces (SceneGraphSource, ObjectHandle, Grouping,
//     EffectStackHandle): the engine is written purely against these. A host
//     binding adapts the real scene graph; feature/scene provides an
//     in-memory one.
//
//  2. Identity: generated effect names encode (operation, target, grouping)
//     and are parsed back on later passes. The name is the only provenance
//     record.
//
//  3. Engine: Pass reconciles the whole scene; Bake freezes one object's
//     generated effects into geometry.
//
//  4. Context and Guard: a suspended Context turns Pass into a no-op while
//     a bake rewrites a stack.
//
// # Usage Example
//
//	eng := reconcile.New(reconcile.WithLogger(log))
//	rc := reconcile.NewContext()
//
//	// React to every scene change
//	eng.Subscribe(rc, scene)
//	defer eng.Unsubscribe()
//
//	// Or run a pass directly
//	report := eng.Pass(rc, scene)
//
//	// Freeze an object's booleans
//	bake, err := eng.Bake(rc, scene, "Hull")
//
// # Concurrency
//
// Pass and Bake are synchronous and assume no other goroutine mutates the
// same scene meanwhile. Callers serving concurrent requests serialize per
// scene.
package reconcile
