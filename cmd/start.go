package cmd

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog-export/core/config"
	coreexport "catalog-export/core/export"
	"catalog-export/core/loader"
	"catalog-export/core/logger"
	"catalog-export/core/middleware/auth"
	"catalog-export/core/middleware/rayid"
	"catalog-export/core/scheduler"

	"catalog-export/feature/export"
	"catalog-export/feature/integrity"
	"catalog-export/feature/movie"
	"catalog-export/feature/show"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "catalog-export/docs/swagger"
)

// @title Catalog Export API
// @version 1.0
// @description API for triggering, monitoring and checking catalog exports.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the export server and scheduler",
	Long:  `Starts the HTTP API and runs exports on the configured schedule.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// Runs started by the scheduler or the API live until shutdown
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// 3. Connect backing services and wire export jobs
		svc, err := bootstrap(ctx, cfg, logg)
		if err != nil {
			logg.Fatal("Failed to initialize export services", zap.Error(err))
		}
		defer svc.Close(context.Background())

		// 4. Schedule periodic exports
		sched := scheduler.New(logg)
		err = sched.Add("export", cfg.Export.Schedule, func(ctx context.Context) {
			report, err := svc.orchestrator.Run(ctx)
			if errors.Is(err, coreexport.ErrAlreadyRunning) {
				logg.Info("Scheduled export skipped, a run is in progress")
				return
			}
			if err != nil {
				logg.Error("Scheduled export failed", zap.Error(err))
				return
			}
			printExportReport(logg, report)
		})
		if err != nil {
			logg.Fatal("Failed to schedule export", zap.Error(err))
		}
		sched.Start()

		if cfg.Export.RunOnStart {
			if _, err := svc.orchestrator.Start(ctx); err != nil {
				logg.Warn("Initial export not started", zap.Error(err))
			}
		}

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			ReadTimeout:           cfg.Server.ReadTimeout(),
		})

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()
		mgr.Register(export.NewFeature(ctx, svc.orchestrator, logg))
		mgr.Register(integrity.NewFeature(svc.storage, cfg.Storage, logg, svc.db,
			append(show.Models(), movie.Models()...),
			show.NewRepository(svc.db), movie.NewRepository(svc.db)))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Request logging with the ray id
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

		// 2.5 Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		logg.Info("Features loaded", zap.Strings("features", mgr.Loaded()))

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("address", cfg.Server.Address()))
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()

		cancel()
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer stopCancel()
		if err := sched.Stop(stopCtx); err != nil {
			logg.Warn("Scheduled export did not stop in time", zap.Error(err))
		}
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
