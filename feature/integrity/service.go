package integrity

import (
	"context"
	"fmt"

	"collbool/core/logger"
	"collbool/core/reconcile"
	"collbool/core/storage"
	"collbool/feature/integrity/checks"
	"collbool/feature/scene"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	client   storage.Client
	cfg      storage.Config
	logger   *zap.Logger
	db       *gorm.DB
	store    scene.Store
	identity reconcile.Identity
}

// NewService creates a new integrity service. client and db may be nil when
// the corresponding backend is not in use; their checks then report an error.
func NewService(client storage.Client, cfg storage.Config, logger *zap.Logger, db *gorm.DB, store scene.Store, identity reconcile.Identity) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:   client,
		cfg:      cfg,
		logger:   logger,
		db:       db,
		store:    store,
		identity: identity,
	}
}

// CheckStructure returns a list of missing folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	return checks.CheckStructure(ctx, s.client, s.cfg)
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	return checks.FixStructure(ctx, s.client, s.cfg, s.logger, missing)
}

// CheckServer verifies the scenes table schema.
func (s *Service) CheckServer() (*checks.ServerReport, error) {
	return checks.CheckServerIntegrity(s.db)
}

// CheckScene audits one stored scene.
func (s *Service) CheckScene(ctx context.Context, name string) (*checks.InvariantReport, error) {
	if s.store == nil {
		return nil, fmt.Errorf("scene store is not configured")
	}
	doc, err := s.store.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	sc, err := scene.FromDocument(doc)
	if err != nil {
		return nil, err
	}
	return checks.CheckInvariants(sc, s.identity)
}

// CheckScenes audits every stored scene. A scene that cannot be loaded is
// reported with the load error instead of failing the whole run.
func (s *Service) CheckScenes(ctx context.Context) ([]*checks.InvariantReport, error) {
	if s.store == nil {
		return nil, fmt.Errorf("scene store is not configured")
	}
	names, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	reports := make([]*checks.InvariantReport, 0, len(names))
	for _, name := range names {
		report, err := s.CheckScene(ctx, name)
		if err != nil {
			logger.WithScene(s.logger, name, "").Warn("Scene audit failed", zap.Error(err))
			report = &checks.InvariantReport{Scene: name, Violations: []checks.Violation{}, Errors: []string{err.Error()}}
		}
		reports = append(reports, report)
	}
	return reports, nil
}
