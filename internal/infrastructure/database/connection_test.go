package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"issueflow/internal/shared/config"
)

func TestOpen_SQLiteMemory(t *testing.T) {
	db, err := Open(&config.DatabaseConfig{Driver: "sqlite", Database: ":memory:"})
	require.NoError(t, err)

	var one int
	require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(&config.DatabaseConfig{Driver: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestInitGetClose(t *testing.T) {
	require.NoError(t, Init(&config.DatabaseConfig{Driver: "sqlite", Database: ":memory:"}))
	assert.NotNil(t, Get())
	assert.NoError(t, Close())
}
