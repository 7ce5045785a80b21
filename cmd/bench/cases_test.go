package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationTablesFromRepo(t *testing.T) {
	tables, err := migrationTables(filepath.Join("..", "..", "migrations"))
	require.NoError(t, err)
	assert.Equal(t, []string{"dealerships", "vehicles", "ai_usage"}, tables)
}

func TestMigrationTablesEmptyDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0001.sql"), []byte("SELECT 1;"), 0o644))

	_, err := migrationTables(dir)
	assert.Error(t, err)
}
