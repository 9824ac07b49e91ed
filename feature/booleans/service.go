package booleans

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"collbool/core/logger"
	"collbool/core/reconcile"
	"collbool/feature/scene"

	"go.uber.org/zap"
)

var (
	// ErrInvalidSlot is returned for a slot name other than difference, union, intersect.
	ErrInvalidSlot = errors.New("invalid slot")
	// ErrNotAssignable is returned when a collection fails the assignment rule.
	ErrNotAssignable = errors.New("collection cannot be assigned to this slot")
)

// ObjectView is the API representation of one object.
type ObjectView struct {
	Name     string               `json:"name"`
	Kind     reconcile.ObjectKind `json:"kind"`
	Settings reconcile.Settings   `json:"settings"`
	Display  reconcile.Display    `json:"display"`
	Effects  []reconcile.Effect   `json:"effects"`
	Baked    []reconcile.Effect   `json:"baked,omitempty"`
}

// session is a loaded scene with its own engine subscription. Every
// operation on a scene holds its mutex, which keeps the engine single
// threaded per scene.
type session struct {
	mu     sync.Mutex
	scene  *scene.Scene
	engine *reconcile.Engine
	rc     *reconcile.Context
}

// Service manages live scenes backed by a store.
type Service struct {
	store        scene.Store
	logger       *zap.Logger
	settleRounds int
	engineOpts   []reconcile.Option

	mu       sync.Mutex
	sessions map[string]*session
}

// NewService creates a service. engineOpts configure every per-scene engine.
func NewService(store scene.Store, logger *zap.Logger, settleRounds int, engineOpts ...reconcile.Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:        store,
		logger:       logger,
		settleRounds: settleRounds,
		engineOpts:   append([]reconcile.Option{reconcile.WithLogger(logger)}, engineOpts...),
		sessions:     make(map[string]*session),
	}
}

// Scenes lists the stored scene names.
func (s *Service) Scenes(ctx context.Context) ([]string, error) {
	return s.store.List(ctx)
}

// Evict drops a loaded scene so the next call reloads it from the store.
func (s *Service) Evict(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[name]; ok {
		sess.engine.Unsubscribe()
		delete(s.sessions, name)
	}
}

// session returns the live session for name, loading and converging it
// on first use.
func (s *Service) session(ctx context.Context, name string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[name]; ok {
		return sess, nil
	}

	doc, err := s.store.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	sc, err := scene.FromDocument(doc, scene.WithSettleRounds(s.settleRounds))
	if err != nil {
		return nil, err
	}

	sess := &session{
		scene:  sc,
		engine: reconcile.New(s.engineOpts...),
		rc:     reconcile.NewContext(),
	}
	sess.engine.Subscribe(sess.rc, sc)

	// Stored documents may have been edited outside the engine.
	if report := sess.engine.Pass(sess.rc, sc); report.Changed() {
		sc.Update()
		if err := s.store.Save(ctx, sc.ToDocument()); err != nil {
			return nil, err
		}
		logger.WithScene(s.logger, name, "").Info("Converged scene on load", zap.Int("actions", len(report.Actions)))
	}

	s.sessions[name] = sess
	return sess, nil
}

// withScene runs fn on a loaded scene, then settles and persists it when
// fn reports a change.
func (s *Service) withScene(ctx context.Context, name string, fn func(sess *session) (bool, error)) error {
	sess, err := s.session(ctx, name)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	changed, err := fn(sess)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	sess.scene.Update()
	return s.store.Save(ctx, sess.scene.ToDocument())
}

// Object returns one object of a scene.
func (s *Service) Object(ctx context.Context, sceneName, objectName string) (*ObjectView, error) {
	var view *ObjectView
	err := s.withScene(ctx, sceneName, func(sess *session) (bool, error) {
		o, err := sess.scene.Get(objectName)
		if err != nil {
			return false, err
		}
		view = viewOf(o)
		return false, nil
	})
	return view, err
}

// SetEnabled toggles boolean reconciliation for a mesh object.
func (s *Service) SetEnabled(ctx context.Context, sceneName, objectName string, enabled bool) (*ObjectView, error) {
	err := s.withScene(ctx, sceneName, func(sess *session) (bool, error) {
		o, err := meshObject(sess.scene, objectName)
		if err != nil {
			return false, err
		}
		st := o.Settings()
		st.Enabled = enabled
		o.SetSettings(st)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return s.Object(ctx, sceneName, objectName)
}

// AssignSlot sets or clears (collection == "") one slot of a mesh object.
func (s *Service) AssignSlot(ctx context.Context, sceneName, objectName, slotName, collection string) (*ObjectView, error) {
	slot, ok := reconcile.ParseSlot(slotName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSlot, slotName)
	}
	err := s.withScene(ctx, sceneName, func(sess *session) (bool, error) {
		o, err := meshObject(sess.scene, objectName)
		if err != nil {
			return false, err
		}
		if collection != "" {
			g, ok := sess.scene.Grouping(collection)
			if !ok {
				return false, fmt.Errorf("%w: %s", scene.ErrCollectionNotFound, collection)
			}
			if !reconcile.IsAssignableTo(o, slot, g) {
				return false, fmt.Errorf("%w: %s", ErrNotAssignable, collection)
			}
		}
		st := o.Settings()
		st.SetSlot(slot, collection)
		o.SetSettings(st)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return s.Object(ctx, sceneName, objectName)
}

// Candidates lists the collections that may be picked for a slot.
func (s *Service) Candidates(ctx context.Context, sceneName, objectName, slotName string) ([]string, error) {
	slot, ok := reconcile.ParseSlot(slotName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSlot, slotName)
	}
	var names []string
	err := s.withScene(ctx, sceneName, func(sess *session) (bool, error) {
		o, err := meshObject(sess.scene, objectName)
		if err != nil {
			return false, err
		}
		names = reconcile.Candidates(sess.scene, o, slot)
		if names == nil {
			names = []string{}
		}
		return false, nil
	})
	return names, err
}

// Bake freezes an object's generated effects. A bake that fails after
// recording its undo step is rolled back to that step.
func (s *Service) Bake(ctx context.Context, sceneName, objectName string) (*reconcile.BakeReport, error) {
	var report reconcile.BakeReport
	err := s.withScene(ctx, sceneName, func(sess *session) (bool, error) {
		pushes := sess.scene.UndoPushes()
		var err error
		report, err = sess.engine.Bake(sess.rc, sess.scene, objectName)
		if err != nil {
			if undoErr := rollback(sess.scene, pushes); undoErr != nil {
				logger.WithScene(s.logger, sceneName, objectName).Error("Failed to roll back bake", zap.Error(undoErr))
			}
			return false, err
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// rollback undoes the step a failed bake recorded, if it recorded one after
// pushes was read.
func rollback(sc *scene.Scene, pushes int) error {
	if sc.UndoPushes() <= pushes {
		return nil
	}
	defer sc.Update()
	_, err := sc.Undo()
	return err
}

// Reconcile runs one pass. With dryRun the pass runs on a copy and nothing
// is persisted.
func (s *Service) Reconcile(ctx context.Context, sceneName string, dryRun bool) (*reconcile.PassReport, error) {
	var report reconcile.PassReport
	err := s.withScene(ctx, sceneName, func(sess *session) (bool, error) {
		if dryRun {
			clone, err := sess.scene.Clone()
			if err != nil {
				return false, err
			}
			report = reconcile.New(s.engineOpts...).Pass(reconcile.NewContext(), clone)
			return false, nil
		}
		report = sess.engine.Pass(sess.rc, sess.scene)
		return report.Changed(), nil
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// Undo reverts the last recorded step and returns its label.
func (s *Service) Undo(ctx context.Context, sceneName string) (string, error) {
	var label string
	err := s.withScene(ctx, sceneName, func(sess *session) (bool, error) {
		var err error
		label, err = sess.scene.Undo()
		return err == nil, err
	})
	return label, err
}

func meshObject(sc *scene.Scene, name string) (*scene.Object, error) {
	o, err := sc.Get(name)
	if err != nil {
		return nil, err
	}
	if o.Kind() != reconcile.KindMesh {
		return nil, fmt.Errorf("%w: %s", reconcile.ErrNotMesh, name)
	}
	return o, nil
}

func viewOf(o *scene.Object) *ObjectView {
	return &ObjectView{
		Name:     o.Name(),
		Kind:     o.Kind(),
		Settings: o.Settings(),
		Display:  o.Display(),
		Effects:  o.Stack().List(),
		Baked:    o.Baked(),
	}
}
