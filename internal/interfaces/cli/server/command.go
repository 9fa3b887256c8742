package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"issueflow/internal/infrastructure/config"
	"issueflow/internal/infrastructure/database"
	"issueflow/internal/infrastructure/migration"
	"issueflow/internal/infrastructure/monitoring"
	httpRouter "issueflow/internal/interfaces/http"
	"issueflow/internal/shared/constants"
	"issueflow/internal/shared/logger"
)

const shutdownTimeout = 30 * time.Second

var (
	env                string
	configPath         string
	autoMigrate        bool
	skipMigrationCheck bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the IssueFlow HTTP server with specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Run database migrations on startup")
	cmd.Flags().BoolVar(&skipMigrationCheck, "skip-migration-check", false, "Skip migration status check on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = mapEnvToGinMode(cfg.Env)

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	log := logger.NewLogger()
	log.Infow("starting server",
		"environment", cfg.Env,
		"database_driver", cfg.Database.Driver,
		"auto_migrate", autoMigrate)

	if enabled, err := monitoring.Init(cfg.Sentry, cfg.Env); err != nil {
		log.Warnw("sentry disabled", "error", err)
	} else if enabled {
		log.Infow("sentry error reporting enabled")
	}
	defer monitoring.Flush()

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if err := handleMigrations(cfg, log); err != nil {
		return fmt.Errorf("migration handling failed: %w", err)
	}

	router, err := httpRouter.NewRouter(database.Get(), cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}
	router.SetupRoutes()
	router.StartBackgroundJobs()
	defer router.Shutdown()

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.GetEngine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Infow("server starting", "address", srv.Addr, "mode", cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

func handleMigrations(cfg *config.Config, log logger.Interface) error {
	if skipMigrationCheck && !autoMigrate {
		log.Infow("skipping migration check")
		return nil
	}

	manager, err := migration.NewManager(cfg.Env, cfg.Database.Driver, "")
	if err != nil {
		return err
	}

	if autoMigrate {
		if cfg.Env == constants.EnvProduction {
			log.Warnw("auto-migration is enabled in production environment")
		}
		return manager.Migrate(database.Get(), migration.AutoMigrateModels()...)
	}

	if err := manager.Status(database.Get()); err != nil {
		log.Warnw("failed to check migration status", "strategy", manager.GetStrategy().GetName(), "error", err)
	}
	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case constants.EnvProduction, "prod":
		return gin.ReleaseMode
	case constants.EnvTest, "testing":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
