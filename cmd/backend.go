package cmd

import (
	"context"
	"fmt"
	"time"

	"collbool/core/config"
	"collbool/core/database"
	"collbool/core/logger"
	"collbool/core/server"
	"collbool/core/storage"
	"collbool/feature/scene"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// backend bundles the connections every command needs.
type backend struct {
	cfg    *config.Config
	logger *zap.Logger
	client storage.Client
	db     *gorm.DB
	store  scene.Store
}

// openBackend loads configuration and connects the configured scene store.
// Storage and database connections are optional unless the scene backend
// needs them.
func openBackend(ctx context.Context) (*backend, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if !cfg.Server.IsValidSceneBackend() {
		return nil, fmt.Errorf("unknown scene backend %q", cfg.Server.SceneBackend)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	b := &backend{cfg: cfg, logger: logg}

	if client, err := storage.NewClient(cfg.Storage); err != nil {
		if cfg.Server.SceneBackend == server.BackendStorage {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		logg.Warn("Optional storage client failed", zap.Error(err))
	} else {
		b.client = client
	}

	if conn, err := database.Connect(cfg.Database); err != nil {
		if cfg.Server.SceneBackend == server.BackendDatabase {
			return nil, fmt.Errorf("database connection required: %w", err)
		}
		logg.Warn("Optional database connection failed", zap.Error(err))
	} else {
		b.db = conn
	}

	var store scene.Store
	switch cfg.Server.SceneBackend {
	case server.BackendStorage:
		if err := storage.EnsureBucket(ctx, b.client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			return nil, fmt.Errorf("failed to prepare bucket: %w", err)
		}
		store = scene.NewObjectStore(b.client, cfg.Storage)
	case server.BackendDatabase:
		dbStore := scene.NewDBStore(b.db)
		if err := dbStore.Migrate(); err != nil {
			return nil, fmt.Errorf("failed to migrate scenes table: %w", err)
		}
		store = dbStore
	default:
		store = scene.NewFileStore(afero.NewOsFs(), cfg.Server.SceneDir, scene.FormatJSON)
	}

	b.store = scene.NewCachedStore(store, time.Duration(cfg.Engine.CacheTTLSeconds)*time.Second)
	logg.Debug("Scene store ready", zap.String("backend", cfg.Server.SceneBackend))
	return b, nil
}
