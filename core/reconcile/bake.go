package reconcile

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// BakeMessage is reported to the user after a successful bake.
const BakeMessage = "Collection boolean applied!"

// BakeUndoLabel names the undo step a bake records.
const BakeUndoLabel = "Apply collection booleans"

var (
	// ErrObjectNotFound is returned when the object to bake does not exist.
	ErrObjectNotFound = errors.New("object not found")
	// ErrNotMesh is returned when baking a non-mesh object.
	ErrNotMesh = errors.New("object is not a mesh")
	// ErrNotEnabled is returned when the object's boolean settings are disabled.
	ErrNotEnabled = errors.New("collection booleans are not enabled on object")
	// ErrBakeInProgress is returned when a bake is attempted while the context is suspended.
	ErrBakeInProgress = errors.New("a bake is already in progress")
)

// Bake resolves every generated effect on the named object into geometry
// and disables the object's declarations so they are not regenerated.
//
// rc is suspended for the whole operation and released on every exit path.
// Effects whose target is gone are dropped instead of applied. Generated
// effects sitting above unrelated, unapplied effects may bake incorrectly;
// apply those first.
func (e *Engine) Bake(rc *Context, scene SceneGraphSource, name string) (report BakeReport, err error) {
	if rc == nil {
		rc = NewContext()
	}
	report.Object = name
	defer func() {
		if e.recorder != nil {
			e.recorder.BakeCompleted(&report, err)
		}
	}()

	if rc.Suspended() {
		return report, ErrBakeInProgress
	}
	obj, ok := scene.Object(name)
	if !ok {
		return report, fmt.Errorf("%w: %s", ErrObjectNotFound, name)
	}
	if obj.Kind() != KindMesh {
		return report, fmt.Errorf("%w: %s", ErrNotMesh, name)
	}
	settings := obj.Settings()
	if !settings.Enabled {
		return report, fmt.Errorf("%w: %s", ErrNotEnabled, name)
	}

	if undo, ok := scene.(UndoRecorder); ok {
		undo.PushUndo(BakeUndoLabel)
	}

	guard := rc.Suspend()
	defer guard.Release()

	settings.Enabled = false
	obj.SetSettings(settings)

	r := newRun(e.identity, scene, e.logger)
	defer func() { report.Actions = r.actions }()

	stack := obj.Effects()
	for _, eff := range stack.List() {
		if _, ok := r.owned(eff); !ok {
			continue
		}
		if r.dangling(eff) {
			if r.removeEffect(obj, eff, "dangling target") {
				report.Dropped++
			}
			continue
		}
		if err := stack.Apply(eff.Name); err != nil {
			return report, fmt.Errorf("apply effect %s: %w", eff.Name, err)
		}
		r.record(Action{Type: ActionApplyEffect, Object: name, Effect: eff.Name, Target: eff.Target})
		r.released[eff.Target] = struct{}{}
		report.Applied++
	}
	r.restoreReleased()

	report.Message = BakeMessage
	e.logger.Info(BakeMessage,
		zap.String("object", name),
		zap.Int("applied", report.Applied),
		zap.Int("dropped", report.Dropped),
	)
	return report, nil
}
