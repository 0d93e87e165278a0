package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "taskboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
storage:
  backend: sqlite
  path: /tmp/board.db
overdue_interval: 30s
log_level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/board.db", cfg.Storage.Path)
	assert.Equal(t, "kanban-tasks", cfg.Storage.Key) // default kept
	assert.Equal(t, 30*time.Second, cfg.OverdueInterval)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("TASKBOARD_STORAGE", "sqlite")
	t.Setenv("TASKBOARD_STORAGE_KEY", "work")
	t.Setenv("TASKBOARD_OVERDUE_INTERVAL", "5m")

	path := writeConfig(t, "storage:\n  backend: json\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "work", cfg.Storage.Key)
	assert.Equal(t, 5*time.Minute, cfg.OverdueInterval)

	t.Setenv("TASKBOARD_OVERDUE_INTERVAL", "soon")
	_, err = Load(path)
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown backend", "storage:\n  backend: redis\n"},
		{"empty path", "storage:\n  path: \"\"\n"},
		{"empty key", "storage:\n  key: \"\"\n"},
		{"zero interval", "overdue_interval: 0s\n"},
		{"not yaml", "storage: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	dir := t.TempDir()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TASKBOARD_LOG_LEVEL=warn\n"), 0600))
	t.Setenv("TASKBOARD_LOG_LEVEL", "")
	os.Unsetenv("TASKBOARD_LOG_LEVEL")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TASKBOARD_LOG_FILE=\"unterminated\n"), 0600))
	_, err = Load("")
	assert.Error(t, err)
}
