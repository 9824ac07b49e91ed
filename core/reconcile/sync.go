package reconcile

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// run holds the state of a single pass or bake: the journal of mutations
// and the set of operands whose effects were removed along the way.
type run struct {
	identity Identity
	scene    SceneGraphSource
	logger   *zap.Logger

	actions  []Action
	summary  PassSummary
	errors   []string
	released map[string]struct{}
}

func newRun(identity Identity, scene SceneGraphSource, logger *zap.Logger) *run {
	return &run{
		identity: identity,
		scene:    scene,
		logger:   logger,
		released: make(map[string]struct{}),
	}
}

func (r *run) record(a Action) {
	r.actions = append(r.actions, a)
	switch a.Type {
	case ActionCreateEffect:
		r.summary.Created++
	case ActionRenameEffect:
		r.summary.Renamed++
	case ActionRemoveEffect:
		r.summary.Removed++
	case ActionHideTarget:
		r.summary.Hidden++
	case ActionRestoreTarget:
		r.summary.Restored++
	case ActionDisableObject:
		r.summary.Disabled++
	case ActionSetOperation:
		r.summary.Operations++
	}
}

func (r *run) fail(object string, err error) {
	r.errors = append(r.errors, fmt.Sprintf("%s: %v", object, err))
	r.logger.Warn("Host rejected reconcile mutation", zap.String("object", object), zap.Error(err))
}

// owned decodes eff when it is a boolean effect generated by the engine.
func (r *run) owned(eff Effect) (Reference, bool) {
	if eff.Kind != EffectBoolean {
		return Reference{}, false
	}
	return r.identity.References(eff.Name)
}

// dangling reports whether eff's target no longer resolves.
func (r *run) dangling(eff Effect) bool {
	if eff.Target == "" {
		return true
	}
	_, ok := r.scene.Object(eff.Target)
	return !ok
}

// consistent reports whether eff's target is still a mesh member of the
// grouping encoded in its name.
func (r *run) consistent(ref Reference, eff Effect) bool {
	g, ok := r.scene.Grouping(ref.Grouping)
	if !ok {
		return false
	}
	return meshMember(g, eff.Target)
}

func (r *run) removeEffect(host ObjectHandle, eff Effect, reason string) bool {
	if err := host.Effects().Remove(eff.Name); err != nil {
		r.fail(host.Name(), fmt.Errorf("remove effect %s: %w", eff.Name, err))
		return false
	}
	r.record(Action{Type: ActionRemoveEffect, Object: host.Name(), Effect: eff.Name, Target: eff.Target, Reason: reason})
	if eff.Target != "" {
		r.released[eff.Target] = struct{}{}
	}
	return true
}

// syncOne ensures host's stack holds exactly one generated effect for
// (target, op), named for grouping. While scanning it also drops generated
// effects whose target is gone or has left the grouping their name encodes.
func (r *run) syncOne(host, target ObjectHandle, op Operation, grouping Grouping) (Effect, error) {
	stack := host.Effects()
	want := r.identity.NameFor(op, target.Name(), grouping.Name())

	var (
		match Effect
		found bool
	)
	for _, eff := range stack.List() {
		ref, ok := r.owned(eff)
		if !ok {
			continue
		}
		if r.dangling(eff) {
			r.removeEffect(host, eff, "dangling target")
			continue
		}
		if !r.consistent(ref, eff) {
			r.removeEffect(host, eff, "target left grouping "+ref.Grouping)
			continue
		}
		if eff.Target != target.Name() || ref.Operation != op {
			continue
		}
		if found {
			r.removeEffect(host, eff, "duplicate of "+match.Name)
			continue
		}
		match, found = eff, true
	}

	if found {
		if match.Name != want {
			if err := stack.Rename(match.Name, want); err != nil {
				return match, fmt.Errorf("rename effect %s: %w", match.Name, err)
			}
			r.record(Action{Type: ActionRenameEffect, Object: host.Name(), Effect: want, Target: target.Name(), Reason: "was " + match.Name})
			match.Name = want
		}
		return match, nil
	}

	if err := stack.Create(want, EffectBoolean); err != nil {
		return Effect{}, fmt.Errorf("create effect %s: %w", want, err)
	}
	r.record(Action{Type: ActionCreateEffect, Object: host.Name(), Effect: want, Target: target.Name()})
	if err := stack.SetExpanded(want, false); err != nil {
		return Effect{}, fmt.Errorf("collapse effect %s: %w", want, err)
	}
	if err := stack.SetTarget(want, target.Name()); err != nil {
		return Effect{}, fmt.Errorf("target effect %s: %w", want, err)
	}
	return Effect{Name: want, Kind: EffectBoolean, Target: target.Name()}, nil
}

// claimTarget turns t into an operand: its own declarations stop running
// and it is drawn as bounds only. The display it had before the first claim
// is saved so it can be restored on release.
func (r *run) claimTarget(t ObjectHandle) {
	settings := t.Settings()
	dirty := false
	if settings.Enabled {
		settings.Enabled = false
		dirty = true
		r.record(Action{Type: ActionDisableObject, Object: t.Name(), Reason: "operand of another object"})
	}
	current := t.Display()
	if settings.SavedDisplay == nil {
		saved := current
		settings.SavedDisplay = &saved
		dirty = true
	}
	if dirty {
		t.SetSettings(settings)
	}
	if current != HiddenDisplay {
		t.SetDisplay(HiddenDisplay)
		r.record(Action{Type: ActionHideTarget, Object: t.Name()})
	}
}

// releaseOrphans marks every operand the engine once hid as released.
// Effects that vanished with their host never pass through removeEffect,
// so the saved display is the only trace left of such a claim.
func (r *run) releaseOrphans() {
	for _, obj := range r.scene.Objects() {
		if obj.Settings().SavedDisplay != nil {
			r.released[obj.Name()] = struct{}{}
		}
	}
}

// restoreReleased restores the display of every released operand that no
// generated effect in the scene references anymore.
func (r *run) restoreReleased() {
	if len(r.released) == 0 {
		return
	}
	referenced := r.referencedTargets()

	names := make([]string, 0, len(r.released))
	for name := range r.released {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, still := referenced[name]; still {
			continue
		}
		obj, ok := r.scene.Object(name)
		if !ok {
			continue
		}
		restore := VisibleDisplay
		settings := obj.Settings()
		if settings.SavedDisplay != nil {
			restore = *settings.SavedDisplay
			settings.SavedDisplay = nil
			obj.SetSettings(settings)
		}
		if obj.Display() != restore {
			obj.SetDisplay(restore)
			r.record(Action{Type: ActionRestoreTarget, Object: name, Reason: "no longer referenced"})
		}
	}
	r.released = make(map[string]struct{})
}

func (r *run) referencedTargets() map[string]struct{} {
	refs := make(map[string]struct{})
	for _, obj := range r.scene.Objects() {
		for _, eff := range obj.Effects().List() {
			if _, ok := r.owned(eff); ok && eff.Target != "" {
				refs[eff.Target] = struct{}{}
			}
		}
	}
	return refs
}
