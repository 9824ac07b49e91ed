package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"collbool/core/reconcile"
	"collbool/feature/integrity"
	"collbool/feature/integrity/checks"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	fixFlag    bool
	jsonOutput bool
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on storage, database and scenes",
	Long:  `Checks the storage bucket structure, the scenes table schema and every stored scene.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return cmd.Help()
		}
		return runIntegrityChecks(cmd.Context(), true, true, true)
	},
}

// structureCmd represents the integrity structure command
var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix the bucket structure",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false, false)
	},
}

// serverCmd represents the integrity server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Check the scenes table schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, true, false)
	},
}

// sceneCmd audits a single scene without modifying it.
var sceneCmd = &cobra.Command{
	Use:   "scene [name]",
	Short: "Audit one scene against its converged state",
	Long:  `Runs a reconcile pass on a copy of the scene and reports every change it would make. Outputs a summary by default or the full report with --json.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		svc, logg, err := newIntegrityService(ctx)
		if err != nil {
			return err
		}

		report, err := svc.CheckScene(ctx, args[0])
		if err != nil {
			return fmt.Errorf("scene audit failed: %w", err)
		}
		return printInvariantReport(logg, report)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(structureCmd, serverCmd, sceneCmd)

	structureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create missing folders")
	sceneCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the full report as JSON")
}

func newIntegrityService(ctx context.Context) (*integrity.Service, *zap.Logger, error) {
	b, err := openBackend(ctx)
	if err != nil {
		return nil, nil, err
	}
	identity := reconcile.NewIdentity(b.cfg.Engine.EffectPrefix)
	return integrity.NewService(b.client, b.cfg.Storage, b.logger, b.db, b.store, identity), b.logger, nil
}

func runIntegrityChecks(ctx context.Context, runStructure, runServer, runScenes bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	svc, logg, err := newIntegrityService(ctx)
	if err != nil {
		return err
	}
	onlyStructure := runStructure && !runServer && !runScenes

	if runStructure {
		logg.Info("Checking bucket structure...")
		missing, err := svc.CheckStructure(ctx)
		switch {
		case err != nil:
			logg.Error("Structure check failed", zap.Error(err))
		case len(missing) == 0:
			logg.Info("Structure is intact.")
		default:
			logg.Warn("Missing folders detected", zap.Strings("missing", missing))
			if onlyStructure && fixFlag {
				logg.Info("Fixing missing folders...")
				if err := svc.FixStructure(ctx, missing); err != nil {
					return fmt.Errorf("failed to fix structure: %w", err)
				}
				logg.Info("Structure fixed successfully.")
			} else if onlyStructure {
				logg.Info("Run with --fix to create missing folders.")
			}
		}
	}

	if runServer {
		logg.Info("Checking server schema integrity...")
		report, err := svc.CheckServer()
		if err != nil {
			logg.Error("Server schema check failed", zap.Error(err))
		} else {
			printServerReport(logg, report)
		}
	}

	if runScenes {
		start := time.Now()
		reports, err := svc.CheckScenes(ctx)
		if err != nil {
			logg.Error("Scene audit failed", zap.Error(err))
			return nil
		}
		inconsistent := 0
		for _, r := range reports {
			if !r.Consistent {
				inconsistent++
				logg.Warn("Scene is not converged",
					zap.String("scene", r.Scene),
					zap.Int("violations", len(r.Violations)),
					zap.Strings("errors", r.Errors))
			}
		}
		logg.Info("Scene audit completed",
			zap.Int("scenes", len(reports)),
			zap.Int("inconsistent", inconsistent),
			zap.Duration("execution_time", time.Since(start)))
	}
	return nil
}

func printServerReport(logg *zap.Logger, report *checks.ServerReport) {
	if report.Matched {
		logg.Info("Server schema matches expected definition.", zap.String("driver", report.Driver))
		return
	}
	logg.Warn("Server schema mismatches found", zap.String("driver", report.Driver))
	for table, tblReport := range report.Tables {
		if tblReport.Status == "ok" {
			continue
		}
		if len(tblReport.MissingColumns) > 0 {
			logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tblReport.MissingColumns))
		}
		if len(tblReport.TypeMismatches) > 0 {
			logg.Warn("Type Mismatches", zap.String("table", table), zap.Strings("mismatches", tblReport.TypeMismatches))
		}
	}
	for _, e := range report.Errors {
		logg.Error("Inspection Error", zap.String("error", e))
	}
}

func printInvariantReport(logg *zap.Logger, report *checks.InvariantReport) error {
	if jsonOutput {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = fmt.Fprintln(os.Stdout, string(data))
		return err
	}

	if report.Consistent {
		logg.Info("Scene is converged.", zap.String("scene", report.Scene))
		return nil
	}
	logg.Warn("Scene is not converged", zap.String("scene", report.Scene), zap.Int("violations", len(report.Violations)))
	for _, v := range report.Violations {
		logg.Warn("Violation",
			zap.String("rule", v.Rule),
			zap.String("object", v.Object),
			zap.String("effect", v.Effect),
			zap.String("target", v.Target))
	}
	for _, e := range report.Errors {
		logg.Error("Host error", zap.String("error", e))
	}
	return nil
}
