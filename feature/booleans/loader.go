package booleans

import (
	"collbool/core/reconcile"
	"collbool/feature/scene"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new collection boolean feature.
func NewFeature(store scene.Store, logger *zap.Logger, cfg reconcile.Config, recorder reconcile.Recorder) *Feature {
	opts := []reconcile.Option{reconcile.WithIdentity(reconcile.NewIdentity(cfg.EffectPrefix))}
	if recorder != nil {
		opts = append(opts, reconcile.WithRecorder(recorder))
	}
	svc := NewService(store, logger, cfg.SettleRounds, opts...)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Service exposes the feature's service.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "booleans"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
