package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"ERP_CONNECTION_STRING", "MIRROR_CONNECTION_STRING", "MONGO_CONNECTION_STRING",
		"MONGO_DATABASE", "SYNC_WINDOW_YEARS", "LOG_LEVEL", "LOG_FILE",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("ERP_CONNECTION_STRING", "sqlserver://erp/?database=epds01")
	t.Setenv("MIRROR_CONNECTION_STRING", "sqlserver://localhost/SQLEXPRESS?database=CustomerPortalMirror")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "sqlserver://erp/?database=epds01", cfg.ERPConnString)
	assert.Equal(t, DefaultWindowYears, cfg.WindowYears)
	assert.Equal(t, DefaultMongoDatabase, cfg.MongoDatabase)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.False(t, cfg.HistoryEnabled())
}

func TestLoadConfigMissingERP(t *testing.T) {
	clearEnv(t)
	t.Setenv("MIRROR_CONNECTION_STRING", "sqlite:/tmp/mirror.db")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ERP_CONNECTION_STRING")
}

func TestLoadConfigBadWindow(t *testing.T) {
	clearEnv(t)
	t.Setenv("ERP_CONNECTION_STRING", "sqlite:/tmp/erp.db")
	t.Setenv("MIRROR_CONNECTION_STRING", "sqlite:/tmp/mirror.db")

	t.Setenv("SYNC_WINDOW_YEARS", "two")
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("SYNC_WINDOW_YEARS", "-1")
	_, err = LoadConfig()
	assert.Error(t, err)
}

func TestLoadFileWithEnvOverride(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "portalsync.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
erp_connection_string: sqlite:/tmp/erp.db
mirror_connection_string: sqlite:/tmp/mirror.db
mongo_connection_string: mongodb://localhost:27017
window_years: 3
`), 0o644))
	t.Setenv("SYNC_WINDOW_YEARS", "5")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite:/tmp/erp.db", cfg.ERPConnString)
	assert.Equal(t, 5, cfg.WindowYears)
	assert.True(t, cfg.HistoryEnabled())
}

func TestLoadFileRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("erp_conection_string: x\n"), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
