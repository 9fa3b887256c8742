package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"issueflow/internal/shared/logger"
)

// Source directories of the embedded scripts, relative to the repository root.
const (
	GooseScriptsDir   = "internal/infrastructure/migration/scripts/goose"
	MigrateScriptsDir = "internal/infrastructure/migration/scripts/migrate"
)

var nonIdentifier = regexp.MustCompile(`[^a-z0-9_]+`)

// Generator handles creation of new migration files
type Generator struct {
	scriptsPath string
	now         func() time.Time
	logger      logger.Interface
}

// NewGenerator creates a new migration generator
func NewGenerator(scriptsPath string) *Generator {
	return &Generator{
		scriptsPath: scriptsPath,
		now:         time.Now,
		logger:      logger.WithComponent("migration.generator"),
	}
}

// CreateGooseMigration writes a single annotated goose file and returns its path.
func (g *Generator) CreateGooseMigration(name string) (string, error) {
	name, err := normalizeMigrationName(name)
	if err != nil {
		return "", err
	}

	now := g.now()
	path := filepath.Join(g.scriptsPath, fmt.Sprintf("%s_%s.sql", now.Format("20060102150405"), name))
	content := fmt.Sprintf(`-- Migration: %s
-- Created: %s

-- +goose Up
-- +goose StatementBegin
-- Add your SQL statements here
-- +goose StatementEnd

-- +goose Down
-- +goose StatementBegin
-- Add your rollback SQL statements here
-- +goose StatementEnd
`, name, now.Format("2006-01-02 15:04:05"))

	if err := g.write(path, content); err != nil {
		return "", err
	}
	g.logger.Infow("goose migration created", "file", path)
	return path, nil
}

// CreateMigration creates a new golang-migrate file pair (up and down)
func (g *Generator) CreateMigration(name string) (upPath, downPath string, err error) {
	name, err = normalizeMigrationName(name)
	if err != nil {
		return "", "", err
	}

	now := g.now()
	timestamp := now.Format("20060102150405")
	upPath = filepath.Join(g.scriptsPath, fmt.Sprintf("%s_%s.up.sql", timestamp, name))
	downPath = filepath.Join(g.scriptsPath, fmt.Sprintf("%s_%s.down.sql", timestamp, name))

	up := fmt.Sprintf("-- Migration: %s\n-- Created: %s\n\n-- Add your SQL statements here\n",
		name, now.Format("2006-01-02 15:04:05"))
	down := fmt.Sprintf("-- Rollback Migration: %s\n-- Created: %s\n\n-- Add your rollback SQL statements here\n",
		name, now.Format("2006-01-02 15:04:05"))

	if err := g.write(upPath, up); err != nil {
		return "", "", fmt.Errorf("failed to create up migration file: %w", err)
	}
	if err := g.write(downPath, down); err != nil {
		return "", "", fmt.Errorf("failed to create down migration file: %w", err)
	}

	g.logger.Infow("migration files created successfully",
		"up_file", upPath,
		"down_file", downPath)
	return upPath, downPath, nil
}

func (g *Generator) write(path, content string) error {
	if err := os.MkdirAll(g.scriptsPath, 0755); err != nil {
		return fmt.Errorf("failed to create scripts directory: %w", err)
	}
	return os.WriteFile(path, []byte(content), 0644)
}

func normalizeMigrationName(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	name = nonIdentifier.ReplaceAllString(strings.ReplaceAll(name, " ", "_"), "_")
	name = strings.Trim(name, "_")
	if name == "" {
		return "", fmt.Errorf("migration name is required")
	}
	return name, nil
}
