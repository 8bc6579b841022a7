package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetAfter removes variables a dotenv file may have set in this process.
func unsetAfter(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func Test_parseEnv_Variables(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin", "-e", writeEnvFile(t, "")}

	t.Setenv("MOVIEKEEPER_STORE", "memory")
	t.Setenv("MOVIEKEEPER_LIST_FRESHNESS", "10m")
	t.Setenv("MOVIEKEEPER_RETRY_ATTEMPTS", "4")
	t.Setenv("MOVIEKEEPER_RATE_LIMIT", "2.5")
	t.Setenv("TMDB_API_KEY", "from-tmdb-var")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "memory", cfg.StoreBackend)
	assert.Equal(t, 10*time.Minute, cfg.ListFreshness)
	assert.Equal(t, uint(4), cfg.RetryAttempts)
	assert.Equal(t, 2.5, cfg.RateLimit)
	assert.Equal(t, "from-tmdb-var", cfg.APIKey)
	assert.Equal(t, "es-MX", cfg.Language, "unset variables keep their value")
}

func Test_parseEnv_DotenvFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	unsetAfter(t, "MOVIEKEEPER_LANGUAGE", "MOVIEKEEPER_LOG_LEVEL")
	t.Setenv("MOVIEKEEPER_LOG_LEVEL", "error")

	path := writeEnvFile(t, "MOVIEKEEPER_LANGUAGE=en-US\nMOVIEKEEPER_LOG_LEVEL=debug\n")
	os.Args = []string{"testbin", "-env", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "en-US", cfg.Language)
	assert.Equal(t, "error", cfg.LogLevel, "real environment wins over the file")
}

func Test_parseEnv_MissingExplicitFilePanics(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin", "-e", filepath.Join(t.TempDir(), "absent.env")}

	require.Panics(t, func() { parseEnv(&Config{}) })
}

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
