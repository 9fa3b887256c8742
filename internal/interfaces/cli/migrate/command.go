package migrate

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"issueflow/internal/infrastructure/config"
	"issueflow/internal/infrastructure/database"
	"issueflow/internal/infrastructure/migration"
	"issueflow/internal/shared/constants"
	"issueflow/internal/shared/logger"
)

var (
	env        string
	configPath string
	strategy   string
	name       string
	steps      int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations including running migrations, checking status, and creating new migration files.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.PersistentFlags().StringVarP(&strategy, "strategy", "s", "", "Migration strategy: auto, goose or golang-migrate (default depends on env and driver)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newCreateCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE:  runDown,
	}
	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")
	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE:  runStatus,
	}
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new migration",
		Long:  `Create a goose script, or an up/down pair with --strategy golang-migrate.`,
		RunE:  runCreate,
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

// initManager loads configuration, opens the database and picks the strategy.
func initManager() (*migration.Manager, logger.Interface, error) {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	manager, err := migration.NewManager(cfg.Env, cfg.Database.Driver, strategy)
	if err != nil {
		database.Close()
		return nil, nil, err
	}

	log.Infow("migration strategy selected",
		"environment", cfg.Env,
		"driver", cfg.Database.Driver,
		"strategy", manager.GetStrategy().GetName())

	return manager, log, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	manager, log, err := initManager()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close()

	if err := manager.Migrate(database.Get(), migration.AutoMigrateModels()...); err != nil {
		return err
	}

	log.Infow("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	manager, log, err := initManager()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close()

	if err := manager.Down(database.Get(), steps); err != nil {
		return fmt.Errorf("rollback failed: %w", err)
	}

	log.Infow("rollback completed successfully", "steps", steps)
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	manager, _, err := initManager()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close()

	return manager.Status(database.Get())
}

func runCreate(cmd *cobra.Command, args []string) error {
	switch strategy {
	case migration.StrategyGolangMigrate:
		dir, err := filepath.Abs(migration.MigrateScriptsDir)
		if err != nil {
			return fmt.Errorf("failed to resolve scripts path: %w", err)
		}
		upPath, downPath, err := migration.NewGenerator(dir).CreateMigration(name)
		if err != nil {
			return err
		}
		fmt.Printf("Created migration files:\n  %s\n  %s\n", upPath, downPath)
	case "", migration.StrategyGoose:
		dir, err := filepath.Abs(migration.GooseScriptsDir)
		if err != nil {
			return fmt.Errorf("failed to resolve scripts path: %w", err)
		}
		path, err := migration.NewGenerator(dir).CreateGooseMigration(name)
		if err != nil {
			return err
		}
		fmt.Printf("Created migration file:\n  %s\n", path)
	default:
		return fmt.Errorf("create supports goose or golang-migrate, got %q", strategy)
	}
	return nil
}
