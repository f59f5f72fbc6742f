package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsDir_EnvOverride(t *testing.T) {
	t.Setenv("MIGRATIONS_DIR", "/custom/migrations")

	assert.Equal(t, "/custom/migrations", migrationsDir())
}

func TestMigrationsDir_Default(t *testing.T) {
	t.Setenv("MIGRATIONS_DIR", "")

	assert.Equal(t, "db/migrations", migrationsDir())
}

func TestDatabaseDSN_EnvWinsOverFile(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".env"), []byte("DB_DSN=from_file\n"), 0644))
	t.Setenv("DB_DSN", "from_env")
	t.Chdir(tmp)

	assert.Equal(t, "from_env", databaseDSN())
}

func TestDatabaseDSN_Default(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Chdir(t.TempDir())

	assert.Equal(t, defaultDSN, databaseDSN())
}

func TestRun_CreateRequiresName(t *testing.T) {
	assert.ErrorIs(t, run(context.Background(), "create", ""), errNoName)
}

func TestRun_CreateWritesMigration(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MIGRATIONS_DIR", dir)

	require.NoError(t, run(context.Background(), "create", "add_session_index"))

	matches, err := filepath.Glob(filepath.Join(dir, "*_add_session_index.sql"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}
