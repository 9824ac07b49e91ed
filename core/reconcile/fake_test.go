package reconcile

import "fmt"

// fakeScene is a minimal in-memory host used by the engine tests.
type fakeScene struct {
	objects   []*fakeObject
	groupings map[string]*fakeGrouping
	undo      []string
}

type fakeObject struct {
	name     string
	kind     ObjectKind
	settings Settings
	display  Display
	stack    *fakeStack
}

type fakeGrouping struct {
	scene   *fakeScene
	name    string
	members []string
}

type fakeStack struct {
	effects []Effect
	applied []Effect

	// failApply makes Apply fail for the named effect.
	failApply string
	// failCreate makes Create fail for every name.
	failCreate bool
	// onApply runs before every Apply.
	onApply func()
}

func newFakeScene() *fakeScene {
	return &fakeScene{groupings: make(map[string]*fakeGrouping)}
}

func (s *fakeScene) mesh(name string) *fakeObject {
	o := &fakeObject{name: name, kind: KindMesh, display: VisibleDisplay, stack: &fakeStack{}}
	s.objects = append(s.objects, o)
	return o
}

func (s *fakeScene) other(name string) *fakeObject {
	o := s.mesh(name)
	o.kind = KindOther
	return o
}

func (s *fakeScene) group(name string, members ...string) *fakeGrouping {
	g := &fakeGrouping{scene: s, name: name, members: members}
	s.groupings[name] = g
	return g
}

func (s *fakeScene) remove(name string) {
	for i, o := range s.objects {
		if o.name == name {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			break
		}
	}
	for _, o := range s.objects {
		for i := range o.stack.effects {
			if o.stack.effects[i].Target == name {
				o.stack.effects[i].Target = ""
			}
		}
	}
}

func (s *fakeScene) get(name string) *fakeObject {
	for _, o := range s.objects {
		if o.name == name {
			return o
		}
	}
	return nil
}

func (s *fakeScene) Objects() []ObjectHandle {
	out := make([]ObjectHandle, 0, len(s.objects))
	for _, o := range s.objects {
		out = append(out, o)
	}
	return out
}

func (s *fakeScene) Object(name string) (ObjectHandle, bool) {
	if o := s.get(name); o != nil {
		return o, true
	}
	return nil, false
}

func (s *fakeScene) Grouping(name string) (Grouping, bool) {
	g, ok := s.groupings[name]
	if !ok {
		return nil, false
	}
	return g, true
}

func (s *fakeScene) Groupings() []Grouping {
	out := make([]Grouping, 0, len(s.groupings))
	for _, g := range s.groupings {
		out = append(out, g)
	}
	return out
}

func (s *fakeScene) PushUndo(label string) {
	s.undo = append(s.undo, label)
}

func (g *fakeGrouping) Name() string { return g.name }

func (g *fakeGrouping) AllObjects() []ObjectHandle {
	var out []ObjectHandle
	for _, m := range g.members {
		if o := g.scene.get(m); o != nil {
			out = append(out, o)
		}
	}
	return out
}

func (o *fakeObject) Name() string               { return o.name }
func (o *fakeObject) Kind() ObjectKind           { return o.kind }
func (o *fakeObject) Settings() Settings         { return o.settings }
func (o *fakeObject) SetSettings(s Settings)     { o.settings = s }
func (o *fakeObject) Display() Display           { return o.display }
func (o *fakeObject) SetDisplay(d Display)       { o.display = d }
func (o *fakeObject) Effects() EffectStackHandle { return o.stack }
func (o *fakeObject) names() []string            { return o.stack.names() }

func (st *fakeStack) names() []string {
	out := make([]string, 0, len(st.effects))
	for _, e := range st.effects {
		out = append(out, e.Name)
	}
	return out
}

func (st *fakeStack) index(name string) int {
	for i, e := range st.effects {
		if e.Name == name {
			return i
		}
	}
	return -1
}

func (st *fakeStack) List() []Effect {
	out := make([]Effect, len(st.effects))
	copy(out, st.effects)
	return out
}

func (st *fakeStack) Create(name string, kind EffectKind) error {
	if st.failCreate {
		return fmt.Errorf("create refused")
	}
	if st.index(name) >= 0 {
		return fmt.Errorf("duplicate effect %q", name)
	}
	st.effects = append(st.effects, Effect{Name: name, Kind: kind, Expanded: true})
	return nil
}

func (st *fakeStack) Rename(oldName, newName string) error {
	i := st.index(oldName)
	if i < 0 {
		return fmt.Errorf("no effect %q", oldName)
	}
	if st.index(newName) >= 0 {
		return fmt.Errorf("duplicate effect %q", newName)
	}
	st.effects[i].Name = newName
	return nil
}

func (st *fakeStack) Remove(name string) error {
	i := st.index(name)
	if i < 0 {
		return fmt.Errorf("no effect %q", name)
	}
	st.effects = append(st.effects[:i], st.effects[i+1:]...)
	return nil
}

func (st *fakeStack) SetTarget(name, target string) error {
	i := st.index(name)
	if i < 0 {
		return fmt.Errorf("no effect %q", name)
	}
	st.effects[i].Target = target
	return nil
}

func (st *fakeStack) SetOperation(name string, op Operation) error {
	i := st.index(name)
	if i < 0 {
		return fmt.Errorf("no effect %q", name)
	}
	st.effects[i].Operation = op
	return nil
}

func (st *fakeStack) SetExpanded(name string, expanded bool) error {
	i := st.index(name)
	if i < 0 {
		return fmt.Errorf("no effect %q", name)
	}
	st.effects[i].Expanded = expanded
	return nil
}

func (st *fakeStack) Apply(name string) error {
	if st.onApply != nil {
		st.onApply()
	}
	if name == st.failApply {
		return fmt.Errorf("kernel failure")
	}
	i := st.index(name)
	if i < 0 {
		return fmt.Errorf("no effect %q", name)
	}
	st.applied = append(st.applied, st.effects[i])
	st.effects = append(st.effects[:i], st.effects[i+1:]...)
	return nil
}

// fakeNotifier records subscriptions and lets tests fire notifications.
type fakeNotifier struct {
	next     Subscription
	handlers map[Subscription]func(SceneGraphSource)
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{handlers: make(map[Subscription]func(SceneGraphSource))}
}

func (n *fakeNotifier) Subscribe(fn func(SceneGraphSource)) Subscription {
	n.next++
	n.handlers[n.next] = fn
	return n.next
}

func (n *fakeNotifier) Unsubscribe(sub Subscription) {
	delete(n.handlers, sub)
}

func (n *fakeNotifier) fire(scene SceneGraphSource) {
	for _, fn := range n.handlers {
		fn(scene)
	}
}
