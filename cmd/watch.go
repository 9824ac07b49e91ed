package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"collbool/core/config"
	"collbool/core/logger"
	"collbool/core/reconcile"
	"collbool/feature/scene"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchDebounce int

// watchCmd keeps a scene file converged while it is edited.
var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Reconcile a scene file every time it changes",
	Long: `Watches a JSON or YAML scene document. After each burst of edits the
file is reloaded, one reconcile pass runs, and the file is rewritten when
the pass changed anything.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&watchDebounce, "debounce-ms", int(scene.DefaultDebounce.Milliseconds()), "Quiet period before a change is processed")
	RootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logg.Sync()

	path := args[0]
	engine := reconcile.New(
		reconcile.WithIdentity(reconcile.NewIdentity(cfg.Engine.EffectPrefix)),
		reconcile.WithLogger(logg),
	)
	job := &fileSync{
		fs:           afero.NewOsFs(),
		path:         path,
		format:       scene.FormatFromPath(path),
		engine:       engine,
		logger:       logg.With(zap.String("file", path)),
		settleRounds: cfg.Engine.SettleRounds,
	}

	// Converge once before waiting for edits.
	if err := job.run(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := scene.NewWatcher(path, time.Duration(watchDebounce)*time.Millisecond, logg)
	return w.Run(ctx, func() {
		if err := job.run(); err != nil {
			logg.Error("Failed to reconcile scene file", zap.Error(err))
		}
	})
}

// fileSync reconciles one scene document on disk.
type fileSync struct {
	fs           afero.Fs
	path         string
	format       scene.Format
	engine       *reconcile.Engine
	logger       *zap.Logger
	settleRounds int
}

func (f *fileSync) run() error {
	data, err := afero.ReadFile(f.fs, f.path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", f.path, err)
	}
	doc, err := scene.Decode(data, f.format)
	if err != nil {
		return err
	}
	sc, err := scene.FromDocument(doc, scene.WithSettleRounds(f.settleRounds))
	if err != nil {
		return err
	}

	rc := reconcile.NewContext()
	report := f.engine.Pass(rc, sc)
	if !report.Changed() {
		f.logger.Debug("Scene file already converged")
		return nil
	}
	// Follow-up passes pick up what the first pass changed, such as
	// operands it disabled.
	f.engine.Subscribe(rc, sc)
	rounds := sc.Update()
	f.engine.Unsubscribe()
	f.logger.Debug("Settled scene file", zap.Int("rounds", rounds))

	out, err := scene.Encode(sc.ToDocument(), f.format)
	if err != nil {
		return err
	}
	if err := afero.WriteFile(f.fs, f.path, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", f.path, err)
	}
	printPassReport(f.logger, &report)
	return nil
}
