package migration

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"issueflow/internal/shared/constants"
	"issueflow/internal/shared/logger"
)

const (
	StrategyAuto          = "auto"
	StrategyGoose         = "goose"
	StrategyGolangMigrate = "golang-migrate"
)

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks a strategy. An explicit name wins; otherwise production
// and test MySQL run the goose scripts and everything else uses AutoMigrate.
func NewManager(environment, driver, strategyName string) (*Manager, error) {
	strategy, err := selectStrategy(environment, driver, strategyName)
	if err != nil {
		return nil, err
	}
	return NewManagerWithStrategy(strategy), nil
}

// NewManagerWithStrategy creates a new migration manager with a specific strategy
func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.WithComponent("migration.manager"),
	}
}

func selectStrategy(environment, driver, strategyName string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(strategyName)) {
	case StrategyAuto:
		return NewGormAutoMigrateStrategy(), nil
	case StrategyGoose:
		if driver != "mysql" {
			return nil, fmt.Errorf("goose scripts target mysql, got %q", driver)
		}
		return NewGooseStrategy(GooseScripts(), driver), nil
	case StrategyGolangMigrate:
		if driver != "mysql" {
			return nil, fmt.Errorf("golang-migrate strategy supports mysql only, got %q", driver)
		}
		return NewGolangMigrateStrategy(MigrateScripts()), nil
	case "":
	default:
		return nil, fmt.Errorf("unknown migration strategy %q", strategyName)
	}

	if driver != "mysql" || strings.EqualFold(environment, constants.EnvDevelopment) {
		return NewGormAutoMigrateStrategy(), nil
	}
	return NewGooseStrategy(GooseScripts(), driver), nil
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(db *gorm.DB, models ...interface{}) error {
	m.logger.Infow("starting database migration",
		"strategy", m.strategy.GetName(),
		"models_count", len(models))

	if err := m.strategy.Migrate(db, models...); err != nil {
		m.logger.Errorw("migration failed",
			"strategy", m.strategy.GetName(),
			"error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully",
		"strategy", m.strategy.GetName())
	return nil
}

// Down rolls back steps versions when the strategy is versioned.
func (m *Manager) Down(db *gorm.DB, steps int) error {
	reverter, ok := m.strategy.(Reverter)
	if !ok {
		return fmt.Errorf("strategy %s does not support down migrations", m.strategy.GetName())
	}
	if steps <= 0 {
		steps = 1
	}
	return reverter.MigrateDown(db, steps)
}

// Status reports the schema version when the strategy tracks one.
func (m *Manager) Status(db *gorm.DB) error {
	reporter, ok := m.strategy.(StatusReporter)
	if !ok {
		return fmt.Errorf("strategy %s does not track a schema version", m.strategy.GetName())
	}
	return reporter.Status(db)
}

// GetStrategy returns the current migration strategy
func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}

// GetStrategyInfo returns information about the current strategy
func (m *Manager) GetStrategyInfo() map[string]interface{} {
	return map[string]interface{}{
		"name":        m.strategy.GetName(),
		"description": getStrategyDescription(m.strategy.GetName()),
	}
}

func getStrategyDescription(strategyName string) string {
	switch strategyName {
	case StrategyAuto:
		return "GORM AutoMigrate - Automatic schema migration based on struct definitions"
	case StrategyGoose:
		return "goose - Embedded, version-controlled SQL migration scripts"
	case StrategyGolangMigrate:
		return "golang-migrate - Version-controlled up/down SQL script pairs"
	default:
		return "Unknown migration strategy"
	}
}
