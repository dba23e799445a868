package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestLoadDatabase(t *testing.T) {
	t.Run("sqlite path", func(t *testing.T) {
		cfg, err := LoadDatabase(env(map[string]string{"DB_PATH": "field.geodatabase"}))
		require.NoError(t, err)
		assert.Equal(t, "sqlite", cfg.Type)
		assert.Equal(t, "field.geodatabase", cfg.Path)
	})

	t.Run("nothing set defaults to sqlite", func(t *testing.T) {
		cfg, err := LoadDatabase(env(nil))
		require.NoError(t, err)
		assert.Equal(t, "sqlite", cfg.Type)
	})

	t.Run("database name implies mysql", func(t *testing.T) {
		cfg, err := LoadDatabase(env(map[string]string{"DB_NAME": "gdb"}))
		require.NoError(t, err)
		assert.Equal(t, "mysql", cfg.Type)
		assert.Equal(t, "localhost", cfg.Host)
		assert.Equal(t, "root", cfg.User)
		assert.Equal(t, 3306, cfg.Port)
	})

	t.Run("postgres", func(t *testing.T) {
		cfg, err := LoadDatabase(env(map[string]string{
			"DB_TYPE":     "Postgres",
			"DB_HOST":     "gis.internal",
			"DB_PORT":     "6432",
			"DB_USER":     "sde",
			"DB_PASSWORD": "secret",
			"DB_NAME":     "gdb",
			"DB_SSLMODE":  "require",
		}))
		require.NoError(t, err)
		assert.Equal(t, "postgres", cfg.Type)
		assert.Equal(t, 6432, cfg.Port)
		assert.Equal(t, "require", cfg.SSLMode)
	})

	t.Run("invalid port keeps default", func(t *testing.T) {
		cfg, err := LoadDatabase(env(map[string]string{"DB_TYPE": "postgres", "DB_NAME": "gdb", "DB_PORT": "abc"}))
		require.NoError(t, err)
		assert.Equal(t, 5432, cfg.Port)
	})

	t.Run("network database needs a name", func(t *testing.T) {
		_, err := LoadDatabase(env(map[string]string{"DB_TYPE": "mysql"}))
		require.Error(t, err)
	})
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, LoadEnv(filepath.Join(dir, "missing.env")))

	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("ATTACHEXPORT_TEST_VALUE=loaded\n"), 0600))
	t.Cleanup(func() { os.Unsetenv("ATTACHEXPORT_TEST_VALUE") })

	require.NoError(t, LoadEnv(path))
	assert.Equal(t, "loaded", os.Getenv("ATTACHEXPORT_TEST_VALUE"))
}

func TestParseFilePerm(t *testing.T) {
	tests := []struct {
		in      string
		want    fs.FileMode
		wantErr bool
	}{
		{in: "644", want: 0644},
		{in: "600", want: 0600},
		{in: "755", want: 0755},
		{in: "64", wantErr: true},
		{in: "648", wantErr: true},
		{in: "rw-", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFilePerm(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
