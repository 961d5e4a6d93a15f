package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "DATABASE_URL", "REDIS_URL", "STATIC_DIR", "SETTINGS_CACHE_TTL", "WORKER_INTERVAL", "FIREBASE_CREDENTIALS_PATH"} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.Production())
	assert.Equal(t, "", cfg.DatabaseURL)
	assert.Equal(t, "web/static", cfg.StaticDir)
	assert.Equal(t, 30*time.Second, cfg.SettingsCacheTTL)
	assert.Equal(t, 5*time.Minute, cfg.WorkerInterval)
	assert.Equal(t, "./firebase-service-account.json", cfg.FirebaseCredentialsPath)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ENV", "production")
	t.Setenv("DATABASE_URL", "postgres://localhost/site")
	t.Setenv("SETTINGS_CACHE_TTL", "2m")
	t.Setenv("WORKER_INTERVAL", "30s")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.True(t, cfg.Production())
	assert.Equal(t, "postgres://localhost/site", cfg.DatabaseURL)
	assert.Equal(t, 2*time.Minute, cfg.SettingsCacheTTL)
	assert.Equal(t, 30*time.Second, cfg.WorkerInterval)
}

func TestFromEnvInvalidDurations(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"SETTINGS_CACHE_TTL", "soon"},
		{"SETTINGS_CACHE_TTL", "0s"},
		{"WORKER_INTERVAL", "-1m"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := FromEnv()
			assert.ErrorContains(t, err, tt.key)
		})
	}
}
