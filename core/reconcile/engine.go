package reconcile

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Engine keeps generated boolean effects convergent with each object's
// slot declarations.
type Engine struct {
	identity Identity
	logger   *zap.Logger
	recorder Recorder

	mu       sync.Mutex
	notifier ChangeNotifier
	sub      Subscription
}

// Option configures an Engine.
type Option func(*Engine)

// WithIdentity sets the naming scheme for generated effects.
func WithIdentity(id Identity) Option {
	return func(e *Engine) { e.identity = id }
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithRecorder sets the activity recorder, usually core/metrics.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// New creates an engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		identity: NewIdentity(""),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Identity returns the naming scheme used by the engine.
func (e *Engine) Identity() Identity {
	return e.identity
}

// Pass reconciles every mesh object in the scene. It returns immediately
// with Suspended set when rc is suspended.
//
// Objects are visited in host order. Enabled meshes get one generated effect
// per (slot, mesh member) and lose generated effects no slot declares.
// Disabled meshes lose every generated effect.
func (e *Engine) Pass(rc *Context, scene SceneGraphSource) PassReport {
	if rc != nil && rc.Suspended() {
		if e.recorder != nil {
			e.recorder.PassSuspended()
		}
		return PassReport{Suspended: true}
	}

	start := time.Now()
	r := newRun(e.identity, scene, e.logger)
	objects := 0

	for _, obj := range scene.Objects() {
		if obj.Kind() != KindMesh {
			continue
		}
		if !obj.Settings().Enabled {
			r.strip(obj, "object disabled")
			continue
		}
		objects++
		r.reconcileObject(obj)
	}
	r.releaseOrphans()
	r.restoreReleased()

	report := PassReport{
		Objects: objects,
		Actions: r.actions,
		Summary: r.summary,
		Errors:  r.errors,
	}
	if report.Actions == nil {
		report.Actions = []Action{}
	}

	if report.Changed() {
		e.logger.Debug("Reconcile pass changed scene",
			zap.Int("objects", objects),
			zap.Int("created", report.Summary.Created),
			zap.Int("renamed", report.Summary.Renamed),
			zap.Int("removed", report.Summary.Removed),
			zap.Int("restored", report.Summary.Restored),
			zap.Duration("took", time.Since(start)),
		)
	}
	if e.recorder != nil {
		e.recorder.PassCompleted(&report)
	}
	return report
}

// SyncOne ensures host holds exactly one generated effect for target under
// op, named for grouping, and that the effect performs op. It is the unit
// Pass applies per (slot, member) and is exposed for hosts that reconcile
// a single pair on their own.
func (e *Engine) SyncOne(scene SceneGraphSource, host, target ObjectHandle, op Operation, grouping Grouping) (Effect, error) {
	r := newRun(e.identity, scene, e.logger)
	eff, err := r.syncOne(host, target, op, grouping)
	if err == nil {
		eff, err = r.ensureOperation(host, eff, op)
	}
	r.restoreReleased()
	return eff, err
}

// Subscribe registers a pass with notifier. Every notification runs Pass
// under rc. A previous subscription is removed first.
func (e *Engine) Subscribe(rc *Context, notifier ChangeNotifier) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.notifier != nil {
		e.notifier.Unsubscribe(e.sub)
	}
	e.notifier = notifier
	e.sub = notifier.Subscribe(func(scene SceneGraphSource) {
		e.Pass(rc, scene)
	})
}

// Unsubscribe removes the registration made by Subscribe.
func (e *Engine) Unsubscribe() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.notifier == nil {
		return
	}
	e.notifier.Unsubscribe(e.sub)
	e.notifier = nil
}

func (r *run) reconcileObject(obj ObjectHandle) {
	slots := usableSlots(r.scene, obj)

	for _, rs := range slots {
		for _, t := range rs.grouping.AllObjects() {
			if t.Kind() != KindMesh || t.Name() == obj.Name() {
				continue
			}
			r.claimTarget(t)
			eff, err := r.syncOne(obj, t, rs.op, rs.grouping)
			if err != nil {
				r.fail(obj.Name(), err)
				continue
			}
			if _, err := r.ensureOperation(obj, eff, rs.op); err != nil {
				r.fail(obj.Name(), err)
			}
		}
	}

	r.pruneStale(obj, slots)
}

func (r *run) ensureOperation(host ObjectHandle, eff Effect, op Operation) (Effect, error) {
	if eff.Operation == op {
		return eff, nil
	}
	if err := host.Effects().SetOperation(eff.Name, op); err != nil {
		return eff, err
	}
	r.record(Action{Type: ActionSetOperation, Object: host.Name(), Effect: eff.Name, Target: eff.Target, Reason: string(op)})
	eff.Operation = op
	return eff, nil
}

// pruneStale removes generated effects whose (operation, grouping) is not
// declared by any usable slot, e.g. after a slot was cleared or reassigned.
func (r *run) pruneStale(obj ObjectHandle, slots []resolvedSlot) {
	type key struct {
		op       Operation
		grouping string
	}
	active := make(map[key]struct{}, len(slots))
	for _, rs := range slots {
		active[key{rs.op, rs.grouping.Name()}] = struct{}{}
	}

	for _, eff := range obj.Effects().List() {
		ref, ok := r.owned(eff)
		if !ok {
			continue
		}
		if _, keep := active[key{ref.Operation, ref.Grouping}]; keep {
			continue
		}
		r.removeEffect(obj, eff, "slot no longer declares "+ref.Grouping)
	}
}

// strip removes every generated effect from obj.
func (r *run) strip(obj ObjectHandle, reason string) {
	for _, eff := range obj.Effects().List() {
		if _, ok := r.owned(eff); ok {
			r.removeEffect(obj, eff, reason)
		}
	}
}
