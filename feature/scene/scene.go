package scene

import (
	"errors"
	"fmt"
	"sort"

	"collbool/core/reconcile"
)

var (
	// ErrObjectNotFound is returned when a named object does not exist.
	ErrObjectNotFound = errors.New("object not found")
	// ErrCollectionNotFound is returned when a named collection does not exist.
	ErrCollectionNotFound = errors.New("collection not found")
	// ErrDuplicateName is returned when an object or collection name is taken.
	ErrDuplicateName = errors.New("name already in use")
	// ErrCollectionCycle is returned when nesting would make a collection its own descendant.
	ErrCollectionCycle = errors.New("collection cycle")
)

// DefaultSettleRounds bounds how often Update re-dispatches notifications.
const DefaultSettleRounds = 4

// Scene is an in-memory scene graph. It implements the engine's capability
// interfaces and notifies subscribers when Update is called after changes.
//
// A Scene is not safe for concurrent use.
type Scene struct {
	name         string
	objects      []*Object
	collections  []*Collection
	settleRounds int

	dirty    bool
	nextSub  reconcile.Subscription
	handlers map[reconcile.Subscription]func(reconcile.SceneGraphSource)

	undo   []snapshot
	pushes int
}

var (
	_ reconcile.SceneGraphSource = (*Scene)(nil)
	_ reconcile.ChangeNotifier   = (*Scene)(nil)
	_ reconcile.UndoRecorder     = (*Scene)(nil)
)

// Option configures a Scene.
type Option func(*Scene)

// WithSettleRounds sets how many notification rounds one Update may run.
func WithSettleRounds(n int) Option {
	return func(s *Scene) {
		if n > 0 {
			s.settleRounds = n
		}
	}
}

// New creates an empty scene.
func New(name string, opts ...Option) *Scene {
	s := &Scene{
		name:         name,
		settleRounds: DefaultSettleRounds,
		handlers:     make(map[reconcile.Subscription]func(reconcile.SceneGraphSource)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the scene name.
func (s *Scene) Name() string { return s.name }

// Dirty reports whether the scene changed since the last notification round.
func (s *Scene) Dirty() bool { return s.dirty }

func (s *Scene) touch() { s.dirty = true }

// Objects implements reconcile.SceneGraphSource.
func (s *Scene) Objects() []reconcile.ObjectHandle {
	out := make([]reconcile.ObjectHandle, len(s.objects))
	for i, o := range s.objects {
		out[i] = o
	}
	return out
}

// Object implements reconcile.SceneGraphSource.
func (s *Scene) Object(name string) (reconcile.ObjectHandle, bool) {
	if o := s.object(name); o != nil {
		return o, true
	}
	return nil, false
}

// Grouping implements reconcile.SceneGraphSource.
func (s *Scene) Grouping(name string) (reconcile.Grouping, bool) {
	if c := s.collection(name); c != nil {
		return c, true
	}
	return nil, false
}

// Groupings implements reconcile.SceneGraphSource.
func (s *Scene) Groupings() []reconcile.Grouping {
	out := make([]reconcile.Grouping, len(s.collections))
	for i, c := range s.collections {
		out[i] = c
	}
	return out
}

// Get returns the concrete object named name.
func (s *Scene) Get(name string) (*Object, error) {
	if o := s.object(name); o != nil {
		return o, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, name)
}

// Collection returns the concrete collection named name.
func (s *Scene) Collection(name string) (*Collection, error) {
	if c := s.collection(name); c != nil {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, name)
}

// ObjectNames returns object names in scene order.
func (s *Scene) ObjectNames() []string {
	out := make([]string, len(s.objects))
	for i, o := range s.objects {
		out[i] = o.name
	}
	return out
}

// CollectionNames returns collection names sorted alphabetically.
func (s *Scene) CollectionNames() []string {
	out := make([]string, len(s.collections))
	for i, c := range s.collections {
		out[i] = c.name
	}
	sort.Strings(out)
	return out
}

// AddObject appends a new object with visible display and default settings.
func (s *Scene) AddObject(name string, kind reconcile.ObjectKind) (*Object, error) {
	if name == "" {
		return nil, errors.New("object name is required")
	}
	if s.object(name) != nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	o := &Object{
		scene:   s,
		name:    name,
		kind:    kind,
		display: reconcile.VisibleDisplay,
	}
	o.stack = &Stack{object: o}
	s.objects = append(s.objects, o)
	s.touch()
	return o, nil
}

// RemoveObject deletes an object. It is unlinked from every collection and
// every effect targeting it is left dangling.
func (s *Scene) RemoveObject(name string) error {
	idx := -1
	for i, o := range s.objects {
		if o.name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, name)
	}
	s.objects = append(s.objects[:idx], s.objects[idx+1:]...)

	for _, c := range s.collections {
		c.unlink(name)
	}
	for _, o := range s.objects {
		for _, e := range o.stack.effects {
			if e.Target == name {
				e.Target = ""
			}
		}
	}
	s.touch()
	return nil
}

// AddCollection creates a collection, nested under parent when parent is
// not empty.
func (s *Scene) AddCollection(name, parent string) (*Collection, error) {
	if name == "" {
		return nil, errors.New("collection name is required")
	}
	if s.collection(name) != nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	var p *Collection
	if parent != "" {
		if p = s.collection(parent); p == nil {
			return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, parent)
		}
	}
	c := &Collection{scene: s, name: name}
	s.collections = append(s.collections, c)
	if p != nil {
		p.children = append(p.children, name)
	}
	s.touch()
	return c, nil
}

// RemoveCollection deletes a collection and clears every slot naming it, so
// a later collection of the same name is not picked up. Its children stay
// in the scene.
func (s *Scene) RemoveCollection(name string) error {
	idx := -1
	for i, c := range s.collections {
		if c.name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrCollectionNotFound, name)
	}
	s.collections = append(s.collections[:idx], s.collections[idx+1:]...)
	for _, c := range s.collections {
		c.children = without(c.children, name)
	}
	for _, o := range s.objects {
		st := o.Settings()
		for _, slot := range reconcile.Slots {
			if st.Slot(slot) == name {
				st.SetSlot(slot, "")
			}
		}
		o.SetSettings(st)
	}
	s.touch()
	return nil
}

// LinkObject adds an object to a collection. Linking twice is a no-op.
func (s *Scene) LinkObject(collection, object string) error {
	c, err := s.Collection(collection)
	if err != nil {
		return err
	}
	if s.object(object) == nil {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, object)
	}
	for _, m := range c.objects {
		if m == object {
			return nil
		}
	}
	c.objects = append(c.objects, object)
	s.touch()
	return nil
}

// UnlinkObject removes an object from a collection.
func (s *Scene) UnlinkObject(collection, object string) error {
	c, err := s.Collection(collection)
	if err != nil {
		return err
	}
	if c.unlink(object) {
		s.touch()
	}
	return nil
}

// NestCollection makes child a sub-collection of parent.
func (s *Scene) NestCollection(parent, child string) error {
	p, err := s.Collection(parent)
	if err != nil {
		return err
	}
	if _, err := s.Collection(child); err != nil {
		return err
	}
	if parent == child || s.descends(child, parent) {
		return fmt.Errorf("%w: %s under %s", ErrCollectionCycle, child, parent)
	}
	for _, name := range p.children {
		if name == child {
			return nil
		}
	}
	p.children = append(p.children, child)
	s.touch()
	return nil
}

// descends reports whether target is reachable from root through children.
func (s *Scene) descends(root, target string) bool {
	seen := map[string]bool{}
	var walk func(string) bool
	walk = func(name string) bool {
		if seen[name] {
			return false
		}
		seen[name] = true
		c := s.collection(name)
		if c == nil {
			return false
		}
		for _, child := range c.children {
			if child == target || walk(child) {
				return true
			}
		}
		return false
	}
	return walk(root)
}

// Subscribe implements reconcile.ChangeNotifier.
func (s *Scene) Subscribe(fn func(reconcile.SceneGraphSource)) reconcile.Subscription {
	s.nextSub++
	s.handlers[s.nextSub] = fn
	return s.nextSub
}

// Unsubscribe implements reconcile.ChangeNotifier.
func (s *Scene) Unsubscribe(sub reconcile.Subscription) {
	delete(s.handlers, sub)
}

// Update delivers change notifications. Handlers that mutate the scene
// cause another round, up to the configured settle rounds. It returns the
// number of rounds run.
func (s *Scene) Update() int {
	subs := make([]reconcile.Subscription, 0, len(s.handlers))
	for id := range s.handlers {
		subs = append(subs, id)
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i] < subs[j] })

	rounds := 0
	for s.dirty && rounds < s.settleRounds {
		s.dirty = false
		rounds++
		for _, id := range subs {
			if fn, ok := s.handlers[id]; ok {
				fn(s)
			}
		}
	}
	return rounds
}

func (s *Scene) object(name string) *Object {
	for _, o := range s.objects {
		if o.name == name {
			return o
		}
	}
	return nil
}

func (s *Scene) collection(name string) *Collection {
	for _, c := range s.collections {
		if c.name == name {
			return c
		}
	}
	return nil
}

func without(list []string, name string) []string {
	out := list[:0]
	for _, v := range list {
		if v != name {
			out = append(out, v)
		}
	}
	return out
}
