package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"collbool/core/reconcile"
	"collbool/feature/booleans"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dryRunReconcile bool
	yesConfirm      bool
)

// reconcileCmd runs one reconcile pass over a stored scene.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile [scene]",
	Short: "Bring a scene's generated effects in line with its slot assignments",
	Long: `Runs one reconcile pass over a stored scene and saves the result.

Examples:
  # Report what would change
  reconcile hull --dry-run

  # Apply and save
  reconcile hull`,
	Args: cobra.ExactArgs(1),
	RunE: runReconcile,
}

// bakeCmd applies an object's generated effects.
var bakeCmd = &cobra.Command{
	Use:   "bake [scene] [object]",
	Short: "Apply an object's generated effects to its geometry",
	Long: `Applies every generated effect of an object in stack order and turns
collection booleans off for it. Effects whose target no longer exists are
dropped. The scene records an undo step before baking.

Generated effects are applied where they sit in the stack. If unapplied
effects of other kinds sit below them the result may be wrong; apply
those first.

Examples:
  # Bake with interactive confirmation
  bake hull Hull

  # Bake without prompting
  bake hull Hull --yes`,
	Args: cobra.ExactArgs(2),
	RunE: runBake,
}

func init() {
	reconcileCmd.Flags().BoolVar(&dryRunReconcile, "dry-run", false, "Report without saving")
	bakeCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")

	RootCmd.AddCommand(reconcileCmd, bakeCmd)
}

func newService(ctx context.Context) (*booleans.Service, *backend, error) {
	b, err := openBackend(ctx)
	if err != nil {
		return nil, nil, err
	}
	identity := reconcile.NewIdentity(b.cfg.Engine.EffectPrefix)
	svc := booleans.NewService(b.store, b.logger, b.cfg.Engine.SettleRounds, reconcile.WithIdentity(identity))
	return svc, b, nil
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	svc, b, err := newService(ctx)
	if err != nil {
		return err
	}

	b.logger.Info("Starting reconcile pass", zap.String("scene", args[0]), zap.Bool("dry_run", dryRunReconcile))
	report, err := svc.Reconcile(ctx, args[0], dryRunReconcile)
	if err != nil {
		return fmt.Errorf("reconcile failed: %w", err)
	}

	printPassReport(b.logger, report)
	if dryRunReconcile {
		b.logger.Info("Dry-run mode: No changes were made.")
	}
	return nil
}

func runBake(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	svc, b, err := newService(ctx)
	if err != nil {
		return err
	}

	if !confirmDestructiveAction() {
		b.logger.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	report, err := svc.Bake(ctx, args[0], args[1])
	if err != nil {
		return fmt.Errorf("bake failed: %w", err)
	}
	b.logger.Info(report.Message,
		zap.String("object", report.Object),
		zap.Int("applied", report.Applied),
		zap.Int("dropped", report.Dropped))
	return nil
}

// printPassReport prints a pass report using logger.
func printPassReport(l *zap.Logger, report *reconcile.PassReport) {
	s := report.Summary

	l.Info("Reconcile report",
		zap.Int("objects", report.Objects),
		zap.Int("created", s.Created),
		zap.Int("renamed", s.Renamed),
		zap.Int("removed", s.Removed),
		zap.Int("hidden", s.Hidden),
		zap.Int("restored", s.Restored),
		zap.Int("disabled", s.Disabled),
		zap.Int("operations", s.Operations),
	)

	// Show sample of actions (max 5 for logger)
	maxShow := min(5, len(report.Actions))
	for _, action := range report.Actions[:maxShow] {
		l.Info("Action",
			zap.String("type", string(action.Type)),
			zap.String("object", action.Object),
			zap.String("effect", action.Effect),
			zap.String("reason", action.Reason),
		)
	}
	if len(report.Actions) > maxShow {
		l.Info("Additional actions not shown", zap.Int("count", len(report.Actions)-maxShow))
	}

	for _, e := range report.Errors {
		l.Warn("Host error", zap.String("error", e))
	}
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm destructive actions: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
