package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	t.Run("overlays present keys only", func(t *testing.T) {
		path := writeTempJSON(t, map[string]any{
			"backend":         "sqlite",
			"allow_overdraft": false,
			"max_attempts":    4,
			"failure_delay":   int64(2 * time.Second),
		})

		cfg := defaults()
		require.NoError(t, parseJson(cfg, path))

		assert.Equal(t, "sqlite", cfg.Backend)
		assert.False(t, cfg.AllowOverdraft)
		assert.Equal(t, 4, cfg.MaxAttempts)
		assert.Equal(t, 2*time.Second, cfg.FailureDelay)
		assert.Equal(t, "Accounts.dat", cfg.StorePath, "absent key keeps default")
	})

	t.Run("empty path → no changes", func(t *testing.T) {
		cfg := defaults()
		require.NoError(t, parseJson(cfg, ""))
		assert.Equal(t, defaults(), cfg)
	})

	t.Run("missing file", func(t *testing.T) {
		require.Error(t, parseJson(defaults(), filepath.Join(t.TempDir(), "nope.json")))
	})

	t.Run("invalid JSON", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		require.Error(t, parseJson(defaults(), bad))
	})
}
