package scene

import (
	"errors"
	"fmt"

	"collbool/core/reconcile"
)

var (
	// ErrEffectNotFound is returned when a named effect is not in the stack.
	ErrEffectNotFound = errors.New("effect not found")
	// ErrDuplicateEffect is returned when an effect name is already used in the stack.
	ErrDuplicateEffect = errors.New("effect name already in stack")
	// ErrNoTarget is returned when applying an effect without a target.
	ErrNoTarget = errors.New("effect has no target")
)

// Object is a scene object with boolean settings and a modifier stack.
type Object struct {
	scene    *Scene
	name     string
	kind     reconcile.ObjectKind
	settings reconcile.Settings
	display  reconcile.Display
	stack    *Stack

	// baked holds effects resolved into geometry, oldest first.
	baked []reconcile.Effect
}

var _ reconcile.ObjectHandle = (*Object)(nil)

func (o *Object) Name() string                         { return o.name }
func (o *Object) Kind() reconcile.ObjectKind           { return o.kind }
func (o *Object) Display() reconcile.Display           { return o.display }
func (o *Object) Effects() reconcile.EffectStackHandle { return o.stack }

// Stack returns the concrete modifier stack.
func (o *Object) Stack() *Stack { return o.stack }

// Settings returns a copy of the settings record.
func (o *Object) Settings() reconcile.Settings {
	return copySettings(o.settings)
}

// SetSettings replaces the settings record.
func (o *Object) SetSettings(st reconcile.Settings) {
	st = copySettings(st)
	if settingsEqual(o.settings, st) {
		return
	}
	o.settings = st
	o.scene.touch()
}

// SetDisplay replaces the display attributes.
func (o *Object) SetDisplay(d reconcile.Display) {
	if o.display == d {
		return
	}
	o.display = d
	o.scene.touch()
}

// Baked returns the effects applied to this object's geometry.
func (o *Object) Baked() []reconcile.Effect {
	out := make([]reconcile.Effect, len(o.baked))
	copy(out, o.baked)
	return out
}

func copySettings(st reconcile.Settings) reconcile.Settings {
	if st.SavedDisplay != nil {
		d := *st.SavedDisplay
		st.SavedDisplay = &d
	}
	return st
}

func settingsEqual(a, b reconcile.Settings) bool {
	if a.Enabled != b.Enabled || a.Difference != b.Difference || a.Union != b.Union || a.Intersect != b.Intersect {
		return false
	}
	if a.SavedDisplay == nil || b.SavedDisplay == nil {
		return a.SavedDisplay == nil && b.SavedDisplay == nil
	}
	return *a.SavedDisplay == *b.SavedDisplay
}

// Stack is an object's ordered modifier stack. Names are unique within it.
type Stack struct {
	object  *Object
	effects []*reconcile.Effect
}

var _ reconcile.EffectStackHandle = (*Stack)(nil)

// List returns a snapshot of the stack.
func (st *Stack) List() []reconcile.Effect {
	out := make([]reconcile.Effect, len(st.effects))
	for i, e := range st.effects {
		out[i] = *e
	}
	return out
}

// Names returns effect names in stack order.
func (st *Stack) Names() []string {
	out := make([]string, len(st.effects))
	for i, e := range st.effects {
		out[i] = e.Name
	}
	return out
}

// Add appends a fully specified effect, as loaded from a document or added
// by a user.
func (st *Stack) Add(e reconcile.Effect) error {
	if st.index(e.Name) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateEffect, e.Name)
	}
	st.effects = append(st.effects, &e)
	st.changed()
	return nil
}

func (st *Stack) Create(name string, kind reconcile.EffectKind) error {
	return st.Add(reconcile.Effect{Name: name, Kind: kind, Expanded: true})
}

func (st *Stack) Rename(oldName, newName string) error {
	e, err := st.find(oldName)
	if err != nil {
		return err
	}
	if oldName == newName {
		return nil
	}
	if st.index(newName) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateEffect, newName)
	}
	e.Name = newName
	st.changed()
	return nil
}

func (st *Stack) Remove(name string) error {
	i := st.index(name)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrEffectNotFound, name)
	}
	st.effects = append(st.effects[:i], st.effects[i+1:]...)
	st.changed()
	return nil
}

func (st *Stack) SetTarget(name, target string) error {
	e, err := st.find(name)
	if err != nil {
		return err
	}
	if target != "" && st.object.scene.object(target) == nil {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, target)
	}
	if e.Target != target {
		e.Target = target
		st.changed()
	}
	return nil
}

func (st *Stack) SetOperation(name string, op reconcile.Operation) error {
	e, err := st.find(name)
	if err != nil {
		return err
	}
	if !op.IsValid() {
		return fmt.Errorf("invalid operation %q", op)
	}
	if e.Operation != op {
		e.Operation = op
		st.changed()
	}
	return nil
}

func (st *Stack) SetExpanded(name string, expanded bool) error {
	e, err := st.find(name)
	if err != nil {
		return err
	}
	if e.Expanded != expanded {
		e.Expanded = expanded
		st.changed()
	}
	return nil
}

// Apply records the effect as baked into the object's geometry and removes
// it from the stack.
func (st *Stack) Apply(name string) error {
	i := st.index(name)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrEffectNotFound, name)
	}
	e := st.effects[i]
	if e.Kind == reconcile.EffectBoolean && e.Target == "" {
		return fmt.Errorf("%w: %s", ErrNoTarget, name)
	}
	st.object.baked = append(st.object.baked, *e)
	st.effects = append(st.effects[:i], st.effects[i+1:]...)
	st.changed()
	return nil
}

func (st *Stack) changed() {
	st.object.scene.touch()
}

func (st *Stack) index(name string) int {
	for i, e := range st.effects {
		if e.Name == name {
			return i
		}
	}
	return -1
}

func (st *Stack) find(name string) (*reconcile.Effect, error) {
	i := st.index(name)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrEffectNotFound, name)
	}
	return st.effects[i], nil
}

// Collection is a named set of objects with nested child collections.
type Collection struct {
	scene    *Scene
	name     string
	objects  []string
	children []string
}

var _ reconcile.Grouping = (*Collection)(nil)

func (c *Collection) Name() string { return c.name }

// Members returns the directly linked object names.
func (c *Collection) Members() []string {
	return append([]string(nil), c.objects...)
}

// Children returns the names of directly nested collections.
func (c *Collection) Children() []string {
	return append([]string(nil), c.children...)
}

// AllObjects returns direct members followed by the members of nested
// collections, depth first, without duplicates.
func (c *Collection) AllObjects() []reconcile.ObjectHandle {
	var out []reconcile.ObjectHandle
	seenObj := map[string]bool{}
	seenCol := map[string]bool{}

	var walk func(*Collection)
	walk = func(col *Collection) {
		if seenCol[col.name] {
			return
		}
		seenCol[col.name] = true
		for _, name := range col.objects {
			if seenObj[name] {
				continue
			}
			if o := c.scene.object(name); o != nil {
				seenObj[name] = true
				out = append(out, o)
			}
		}
		for _, child := range col.children {
			if cc := c.scene.collection(child); cc != nil {
				walk(cc)
			}
		}
	}
	walk(c)
	return out
}

func (c *Collection) unlink(object string) bool {
	before := len(c.objects)
	c.objects = without(c.objects, object)
	return len(c.objects) != before
}
