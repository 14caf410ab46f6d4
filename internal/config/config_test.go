package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadYAMLThenEnv(t *testing.T) {
	// keep godotenv from picking up a stray .env
	t.Chdir(t.TempDir())

	path := filepath.Join(t.TempDir(), "hoops.yaml")
	yml := `
databasePath: /var/lib/hoops/profiles.db
logLevel: debug
fetchTimeout: 5s
fetchRate: 0.5
corsOrigins:
  - https://example.org
renderedFetch: true
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0644))
	t.Setenv("HOOPS_LOG_LEVEL", "warn")
	t.Setenv("HOOPS_BATCH_LIMIT", "8")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/hoops/profiles.db", cfg.DatabasePath)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 0.5, cfg.FetchRate)
	assert.Equal(t, []string{"https://example.org"}, cfg.CORSOrigins)
	assert.True(t, cfg.RenderedFetch)
	assert.Equal(t, 8, cfg.BatchLimit)
	// untouched values keep their defaults
	assert.Equal(t, 10000, cfg.MarkdownMaxLength)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("HOOPS_DB_PATH=from-dotenv.db\n"), 0644))
	// godotenv never overrides variables that are already set, clear it after the test
	t.Cleanup(func() { os.Unsetenv("HOOPS_DB_PATH") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv.db", cfg.DatabasePath)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Setenv("HOOPS_FETCH_RATE", "fast")
	_, err := Load("")
	assert.ErrorContains(t, err, "HOOPS_FETCH_RATE")

	t.Setenv("HOOPS_FETCH_RATE", "0")
	_, err = Load("")
	assert.ErrorContains(t, err, "fetchRate")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b "))
	assert.Nil(t, splitList(""))
}
