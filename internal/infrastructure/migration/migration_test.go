package migration

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"issueflow/internal/infrastructure/persistence/models"
)

func TestNewManager_StrategySelection(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		driver      string
		strategy    string
		want        string
		wantErr     bool
	}{
		{"sqlite defaults to auto", "production", "sqlite", "", StrategyAuto, false},
		{"development defaults to auto", "development", "mysql", "", StrategyAuto, false},
		{"production mysql defaults to goose", "production", "mysql", "", StrategyGoose, false},
		{"postgres defaults to auto", "production", "postgres", "", StrategyAuto, false},
		{"explicit goose", "development", "mysql", "goose", StrategyGoose, false},
		{"goose rejects sqlite", "development", "sqlite", "goose", "", true},
		{"explicit golang-migrate on mysql", "test", "mysql", "golang-migrate", StrategyGolangMigrate, false},
		{"golang-migrate rejects postgres", "test", "postgres", "golang-migrate", "", true},
		{"unknown strategy", "test", "mysql", "flyway", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewManager(tt.environment, tt.driver, tt.strategy)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.GetStrategy().GetName())
			assert.NotEqual(t, "Unknown migration strategy", m.GetStrategyInfo()["description"])
		})
	}
}

func TestAutoMigrate_CreatesEveryTable(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	m := NewManagerWithStrategy(NewGormAutoMigrateStrategy())
	require.NoError(t, m.Migrate(db))

	for _, model := range AutoMigrateModels() {
		assert.True(t, db.Migrator().HasTable(model), "missing table for %T", model)
	}
	assert.True(t, db.Migrator().HasIndex(&models.TicketModel{}, "idx_tickets_project_number"))
}

func TestManager_AutoStrategyIsNotVersioned(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	m := NewManagerWithStrategy(NewGormAutoMigrateStrategy())
	assert.Error(t, m.Down(db, 1))
	assert.Error(t, m.Status(db))
}

func TestEmbeddedScripts(t *testing.T) {
	gooseFiles, err := fs.Glob(GooseScripts(), "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, gooseFiles)

	for _, name := range gooseFiles {
		data, err := fs.ReadFile(GooseScripts(), name)
		require.NoError(t, err)
		assert.Contains(t, string(data), "-- +goose Up")
		assert.Contains(t, string(data), "-- +goose Down")
	}

	ups, err := fs.Glob(MigrateScripts(), "*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(MigrateScripts(), "*.down.sql")
	require.NoError(t, err)
	assert.Len(t, downs, len(ups))
	assert.NotEmpty(t, ups)
}

func TestGenerator(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator(dir)
	g.now = func() time.Time { return time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC) }

	t.Run("goose file", func(t *testing.T) {
		path, err := g.CreateGooseMigration("Add ticket Watchers")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "20260203040506_add_ticket_watchers.sql"), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(data), "-- +goose Up"))
	})

	t.Run("up and down pair", func(t *testing.T) {
		up, down, err := g.CreateMigration("add-labels-index")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "20260203040506_add_labels_index.up.sql"), up)
		assert.Equal(t, filepath.Join(dir, "20260203040506_add_labels_index.down.sql"), down)
		assert.FileExists(t, up)
		assert.FileExists(t, down)
	})

	t.Run("blank name", func(t *testing.T) {
		_, err := g.CreateGooseMigration("  ")
		assert.Error(t, err)
	})
}
