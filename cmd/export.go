package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"catalog-export/core/config"
	"catalog-export/core/export"
	"catalog-export/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Flags for the export command
var exportTypes []string

// exportCmd runs a single export and prints its report.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Reconcile the catalog once",
	Long: `Loads every configured content type from the source store, reconciles it
into the catalog database and relocates new media into the asset store.

Examples:
  # Export every configured content type
  export

  # Export shows only
  export --type shows`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringSliceVarP(&exportTypes, "type", "t", nil, "Content types to export (default: all configured)")
	RootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()
	zap.ReplaceGlobals(l)

	svc, err := bootstrap(ctx, cfg, l)
	if err != nil {
		return err
	}
	defer svc.Close(context.Background())

	l.Info("Starting export", zap.Strings("types", svc.orchestrator.Types()))
	report, err := svc.orchestrator.Run(ctx, exportTypes...)
	if err != nil {
		return fmt.Errorf("failed to run export: %w", err)
	}

	printExportReport(l, report)

	if report.Failed() {
		return errors.New("export finished with failed content types")
	}
	return nil
}

// printExportReport prints a formatted export report using logger.
func printExportReport(l *zap.Logger, report export.RunReport) {
	l.Info("Export report",
		zap.Int("content_types", len(report.Jobs)),
		zap.Duration("duration", report.Duration),
	)

	for _, job := range report.Jobs {
		s := job.Summary
		if job.Error != "" {
			l.Error("Content type failed",
				zap.String("content_type", job.Name),
				zap.String("error", job.Error),
				zap.Int("processed", s.Processed()),
			)
			continue
		}

		l.Info("Content type exported",
			zap.String("content_type", job.Name),
			zap.Int("total", s.Total),
			zap.Int("inserted", s.Inserted),
			zap.Int("updated", s.Updated),
			zap.Int("skipped", s.Skipped),
			zap.Duration("duration", s.Duration),
		)

		// Show sample of failures (max 5 for logger)
		maxShow := min(len(s.Failures), 5)
		for _, f := range s.Failures[:maxShow] {
			l.Warn("Skipped document",
				zap.String("content_type", job.Name),
				zap.Int("index", f.Index),
				zap.String("key", f.Key),
				zap.String("stage", string(f.Stage)),
				zap.String("reason", f.Reason),
			)
		}
		if len(s.Failures) > maxShow {
			l.Info("Additional skipped documents not shown", zap.Int("count", len(s.Failures)-maxShow))
		}
	}
}
