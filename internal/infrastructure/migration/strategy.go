package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"issueflow/internal/shared/logger"
)

// Strategy defines the interface for different migration strategies
type Strategy interface {
	// Migrate executes the migration strategy
	Migrate(db *gorm.DB, models ...interface{}) error
	// GetName returns the strategy name
	GetName() string
}

// Reverter is implemented by strategies that can roll back versioned scripts.
type Reverter interface {
	MigrateDown(db *gorm.DB, steps int) error
}

// StatusReporter is implemented by strategies that track a schema version.
type StatusReporter interface {
	Status(db *gorm.DB) error
}

// GormAutoMigrateStrategy derives the schema from the persistence models.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy() Strategy {
	return &GormAutoMigrateStrategy{
		logger: logger.WithComponent("migration.gorm"),
	}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB, models ...interface{}) error {
	if len(models) == 0 {
		models = AutoMigrateModels()
	}
	s.logger.Infow("starting gorm auto migration", "models_count", len(models))
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return StrategyAuto
}

// GolangMigrateStrategy implements migration using golang-migrate over the
// embedded up/down script pairs. Only MySQL is supported.
type GolangMigrateStrategy struct {
	scripts fs.FS
	logger  logger.Interface
}

// NewGolangMigrateStrategy creates a new golang-migrate strategy
func NewGolangMigrateStrategy(scripts fs.FS) Strategy {
	return &GolangMigrateStrategy{
		scripts: scripts,
		logger:  logger.WithComponent("migration.golang-migrate"),
	}
}

// Migrate executes golang-migrate migration
func (s *GolangMigrateStrategy) Migrate(db *gorm.DB, _ ...interface{}) error {
	m, err := s.open(db)
	if err != nil {
		return err
	}
	defer m.Close()

	currentVersion, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}
	s.logger.Infow("current migration status", "version", currentVersion, "dirty", dirty)

	if dirty {
		s.logger.Warnw("database is in dirty state, please fix manually")
		return fmt.Errorf("database is in dirty state at version %d", currentVersion)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		s.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	finalVersion, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get final migration version: %w", err)
	}

	s.logger.Infow("migration completed successfully",
		"from_version", currentVersion,
		"to_version", finalVersion)
	return nil
}

func (s *GolangMigrateStrategy) GetName() string {
	return StrategyGolangMigrate
}

// MigrateDown executes down migrations
func (s *GolangMigrateStrategy) MigrateDown(db *gorm.DB, steps int) error {
	m, err := s.open(db)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		s.logger.Errorw("down migration failed", "error", err)
		return fmt.Errorf("failed to run down migrations: %w", err)
	}
	s.logger.Infow("down migration completed successfully", "steps", steps)
	return nil
}

func (s *GolangMigrateStrategy) Status(db *gorm.DB) error {
	m, err := s.open(db)
	if err != nil {
		return err
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get migration version: %w", err)
	}
	s.logger.Infow("migration status", "version", version, "dirty", dirty)
	return nil
}

func (s *GolangMigrateStrategy) open(db *gorm.DB) (*migrate.Migrate, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	driver, err := mysql.WithInstance(sqlDB, &mysql.Config{MultiStatementEnabled: true})
	if err != nil {
		return nil, fmt.Errorf("failed to create MySQL driver: %w", err)
	}

	source, err := iofs.New(s.scripts, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to open migration scripts: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "mysql", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

// GooseStrategy runs the embedded goose scripts.
type GooseStrategy struct {
	scripts fs.FS
	dialect string
	logger  logger.Interface
}

// NewGooseStrategy takes the gorm driver name (mysql, postgres, sqlite) as dialect.
func NewGooseStrategy(scripts fs.FS, dialect string) Strategy {
	if dialect == "sqlite" {
		dialect = "sqlite3"
	}
	return &GooseStrategy{
		scripts: scripts,
		dialect: dialect,
		logger:  logger.WithComponent("migration.goose"),
	}
}

func (s *GooseStrategy) Migrate(db *gorm.DB, _ ...interface{}) error {
	sqlDB, err := s.prepare(db)
	if err != nil {
		return err
	}

	currentVersion, err := goose.GetDBVersion(sqlDB)
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}
	s.logger.Infow("current migration status", "version", currentVersion)

	if err := goose.Up(sqlDB, "."); err != nil {
		s.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	finalVersion, err := goose.GetDBVersion(sqlDB)
	if err != nil {
		return fmt.Errorf("failed to get final version: %w", err)
	}

	s.logger.Infow("migration completed successfully",
		"from_version", currentVersion,
		"to_version", finalVersion)
	return nil
}

func (s *GooseStrategy) GetName() string {
	return StrategyGoose
}

func (s *GooseStrategy) MigrateDown(db *gorm.DB, steps int) error {
	sqlDB, err := s.prepare(db)
	if err != nil {
		return err
	}

	for i := 0; i < steps; i++ {
		if err := goose.Down(sqlDB, "."); err != nil {
			s.logger.Errorw("down migration failed", "error", err)
			return fmt.Errorf("failed to run down migration: %w", err)
		}
	}
	s.logger.Infow("down migration completed successfully", "steps", steps)
	return nil
}

func (s *GooseStrategy) Status(db *gorm.DB) error {
	sqlDB, err := s.prepare(db)
	if err != nil {
		return err
	}
	if err := goose.Status(sqlDB, "."); err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}
	return nil
}

func (s *GooseStrategy) prepare(db *gorm.DB) (*sql.DB, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	goose.SetBaseFS(s.scripts)
	if err := goose.SetDialect(s.dialect); err != nil {
		return nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return sqlDB, nil
}
