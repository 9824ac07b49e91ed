package reconcile

// SceneGraphSource enumerates the objects and groupings of a host scene.
// The engine never creates or destroys objects or groupings through it.
type SceneGraphSource interface {
	// Objects returns every object in the scene, in host order.
	Objects() []ObjectHandle

	// Object resolves an object by name.
	Object(name string) (ObjectHandle, bool)

	// Grouping resolves a grouping by name.
	Grouping(name string) (Grouping, bool)

	// Groupings returns every grouping in the scene.
	Groupings() []Grouping
}

// Grouping is a named, host-owned collection of objects.
type Grouping interface {
	// Name returns the grouping name, unique within the scene.
	Name() string

	// AllObjects returns the members of the grouping and of every nested
	// child grouping, without duplicates.
	AllObjects() []ObjectHandle
}

// ObjectHandle gives the engine access to one scene object.
type ObjectHandle interface {
	// Name returns the object name, unique within the scene.
	Name() string

	// Kind returns the object kind. Only meshes participate.
	Kind() ObjectKind

	// Settings returns a copy of the object's boolean settings record.
	Settings() Settings

	// SetSettings replaces the object's boolean settings record.
	SetSettings(Settings)

	// Display returns the object's display attributes.
	Display() Display

	// SetDisplay replaces the object's display attributes.
	SetDisplay(Display)

	// Effects returns the object's modifier stack.
	Effects() EffectStackHandle
}

// EffectStackHandle manipulates one object's ordered modifier stack.
// Effects are addressed by name, which is unique within a stack.
type EffectStackHandle interface {
	// List returns a snapshot of the stack in order.
	List() []Effect

	// Create appends a new effect of the given kind.
	Create(name string, kind EffectKind) error

	// Rename renames an effect in place without moving it.
	Rename(oldName, newName string) error

	// Remove deletes an effect.
	Remove(name string) error

	// SetTarget points an effect at the named object.
	SetTarget(name, target string) error

	// SetOperation sets the boolean operation of an effect.
	SetOperation(name string, op Operation) error

	// SetExpanded sets the UI expansion hint of an effect.
	SetExpanded(name string, expanded bool) error

	// Apply resolves an effect into the object's geometry and removes it
	// from the stack.
	Apply(name string) error
}

// ChangeNotifier delivers scene-changed notifications.
type ChangeNotifier interface {
	// Subscribe registers fn to be called after every scene change.
	Subscribe(fn func(SceneGraphSource)) Subscription

	// Unsubscribe removes a subscription. Unknown subscriptions are ignored.
	Unsubscribe(sub Subscription)
}

// Subscription identifies a registered change callback.
type Subscription int

// UndoRecorder is implemented by scenes that keep an undo history.
// Bake pushes exactly one step before mutating anything.
type UndoRecorder interface {
	PushUndo(label string)
}

// Recorder receives engine activity, typically for metrics.
type Recorder interface {
	PassCompleted(report *PassReport)
	PassSuspended()
	BakeCompleted(report *BakeReport, err error)
}
