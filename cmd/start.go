package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"collbool/core/loader"
	"collbool/core/logger"
	"collbool/core/metrics"
	"collbool/core/middleware/auth"
	"collbool/core/middleware/rayid"
	"collbool/core/reconcile"

	"collbool/feature/booleans"
	"collbool/feature/integrity"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "collbool/docs/swagger"
)

// @title Collection Boolean API
// @version 1.0
// @description API for collection-driven boolean modifiers.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the collection boolean server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Configuration, logger, scene store
		b, err := openBackend(cmd.Context())
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		cfg, logg := b.cfg, b.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 2. Metrics
		m := metrics.New(cfg.Metrics)

		// 3. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 4. Initialize Feature Loader
		mgr := loader.NewManager()
		identity := reconcile.NewIdentity(cfg.Engine.EffectPrefix)
		mgr.Register(booleans.NewFeature(b.store, logg, cfg.Engine, m))
		mgr.Register(integrity.NewFeature(b.client, cfg.Storage, logg, b.db, b.store, identity))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Public routes
		app.Get("/swagger/*", swagger.HandlerDefault)
		skip := []string{"/swagger"}
		if m.Enabled() {
			app.Get(m.Path(), adaptor.HTTPHandler(m.Handler()))
			skip = append(skip, m.Path())
		}

		// 4. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey, Skip: skip}))

		// 5. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 6. Start Server
		go func() {
			logg.Info("Starting server",
				zap.String("port", cfg.Server.Port),
				zap.String("scene_backend", cfg.Server.SceneBackend))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
