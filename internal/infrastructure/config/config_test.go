package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Deltares-research/DHYDROGUI-sub073/pkg/validation"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadWith(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "msgpack", cfg.Serialization.Codec)
	assert.Equal(t, "zstd", cfg.Serialization.Compression)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.GreaterOrEqual(t, cfg.Generation.Workers, 1)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meshflow.yaml")
	body := `
log:
  level: debug
  format: json
storage:
  driver: sqlite
  dsn: file:meshes.db
generation:
  workers: 3
server:
  read_timeout: 2s
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadWith(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "file:meshes.db", cfg.Storage.DSN)
	assert.Equal(t, 3, cfg.Generation.Workers)
	assert.Equal(t, 2*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "meshes", cfg.Storage.Table)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meshflow.yaml")
	require.NoError(t, os.WriteFile(path, []byte("generation:\n  workers: 3\n"), 0o644))

	t.Setenv("MESHFLOW_GENERATION_WORKERS", "7")
	t.Setenv("MESHFLOW_SERIALIZATION_CODEC", "json")

	cfg, err := LoadWith(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Generation.Workers)
	assert.Equal(t, "json", cfg.Serialization.Codec)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("MESHFLOW_GENERATION_WORKERS=5\nMESHFLOW_STORAGE_TABLE=grids\n"), 0o644))
	t.Chdir(dir)
	for _, key := range []string{"MESHFLOW_GENERATION_WORKERS", "MESHFLOW_STORAGE_TABLE"} {
		require.NoError(t, os.Unsetenv(key))
		t.Cleanup(func() { os.Unsetenv(key) })
	}

	cfg, err := LoadWith(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Generation.Workers)
	assert.Equal(t, "grids", cfg.Storage.Table)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadWith(viper.New(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"unknown driver", func(c *Config) { c.Storage.Driver = "mysql" }, "storage.driver"},
		{"sqlite without dsn", func(c *Config) { c.Storage.Driver = DriverSQLite }, "storage.dsn"},
		{"unknown codec", func(c *Config) { c.Serialization.Codec = "xml" }, "serialization.codec"},
		{"unknown compression", func(c *Config) { c.Serialization.Compression = "lz4" }, "serialization.compression"},
		{"zero workers", func(c *Config) { c.Generation.Workers = 0 }, "generation.workers"},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, "server.addr"},
		{"unsafe table", func(c *Config) { c.Storage.Table = "meshes; DROP TABLE meshes" }, "storage.table"},
		{"table starting with digit", func(c *Config) { c.Storage.Table = "1meshes" }, "storage.table"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var verrs validation.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			require.NotEmpty(t, verrs)
			assert.Contains(t, verrs[0].Field, tt.field)
		})
	}

	assert.NoError(t, Default().Validate())
	var nilCfg *Config
	assert.Error(t, nilCfg.Validate())
}
