package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "default-app-id", cfg.AppID)
	assert.Equal(t, "memory", cfg.DocStore.Driver)
	assert.Equal(t, "gemini-2.0-flash", cfg.Diagnosis.Model)
	assert.Equal(t, 5, cfg.HN.MaxAttempts)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL())
	assert.Equal(t, 60*time.Second, cfg.DiagnosisTimeout())
	require.NoError(t, cfg.Validate())
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "petcare.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app_id: clinic-a
docstore:
  driver: sqlite
  dsn: /tmp/petcare.db
hn:
  max_attempts: 3
illness:
  session_ttl: 30m
`), 0o600))

	t.Setenv("PETCARE_HN_MAX_ATTEMPTS", "7")
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("PORT", "9090")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "clinic-a", cfg.AppID)
	assert.Equal(t, "sqlite", cfg.DocStore.Driver)
	assert.Equal(t, 7, cfg.HN.MaxAttempts)
	assert.Equal(t, "gem-key", cfg.Diagnosis.APIKey)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("PETCARE_APP_ID", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultAppID, cfg.AppID)
}

func TestLoad_AppIDFromEnv(t *testing.T) {
	t.Setenv("PETCARE_APP_ID", "shelter-42")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "shelter-42", cfg.AppID)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty app id", func(c *Config) { c.AppID = " " }},
		{"app id with slash", func(c *Config) { c.AppID = "a/b" }},
		{"unknown driver", func(c *Config) { c.DocStore.Driver = "mongo" }},
		{"sqlite without dsn", func(c *Config) { c.DocStore.Driver = "sqlite" }},
		{"firestore without project", func(c *Config) { c.DocStore.Driver = "firestore" }},
		{"s3 without bucket", func(c *Config) { c.Blob.Driver = "s3" }},
		{"unknown blob driver", func(c *Config) { c.Blob.Driver = "gcs" }},
		{"zero attempts", func(c *Config) { c.HN.MaxAttempts = 0 }},
		{"bad duration", func(c *Config) { c.Illness.SessionTTL = "soon" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Run("DB_DSN and PETCARE_DOCSTORE_DSN precedence", func(t *testing.T) {
		t.Setenv("DB_DSN", "postgres://a")
		t.Setenv("PETCARE_DOCSTORE_DSN", "postgres://b")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.Equal(t, "postgres://b", cfg.DocStore.DSN)
	})

	t.Run("invalid bool is ignored", func(t *testing.T) {
		t.Setenv("PETCARE_DIAGNOSIS_STRUCTURED", "maybe")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.False(t, cfg.Diagnosis.Structured)
	})

	t.Run("structured on", func(t *testing.T) {
		t.Setenv("PETCARE_DIAGNOSIS_STRUCTURED", "true")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.True(t, cfg.Diagnosis.Structured)
	})
}
