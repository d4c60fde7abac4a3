package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoadConfig_DemoDefaults(t *testing.T) {
	t.Setenv("MODE", "demo")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")

	cfg, err := LoadConfig(missingEnvFile(t))
	require.NoError(t, err)

	assert.True(t, cfg.IsDemo())
	assert.Equal(t, "8080", cfg.Rest.PORT)
	assert.False(t, cfg.Rest.CookieSecure)
	assert.NotEmpty(t, cfg.Auth.JWTSecret)
	assert.Equal(t, 7*24*time.Hour, cfg.Leads.MarkerTTL)
	assert.Equal(t, 24*time.Hour, cfg.Leads.DuplicateWindow)
	assert.True(t, cfg.Leads.StrictPhone)
	assert.True(t, cfg.Catalog.SampleFallback)
	assert.Equal(t, 50, cfg.Catalog.SlugMaxAttempts)
}

func TestLoadConfig_ProductionRequiresDatabaseAndSecret(t *testing.T) {
	t.Setenv("MODE", "production")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "s3cret")

	_, err := LoadConfig(missingEnvFile(t))
	require.Error(t, err)

	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/realstate")
	t.Setenv("JWT_SECRET", "")
	_, err = LoadConfig(missingEnvFile(t))
	require.Error(t, err)
}

func TestLoadConfig_DuplicateWindowNotBelowOneDay(t *testing.T) {
	t.Setenv("MODE", "demo")
	t.Setenv("LEAD_DUPLICATE_WINDOW", "1h")

	_, err := LoadConfig(missingEnvFile(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LEAD_DUPLICATE_WINDOW")

	t.Setenv("LEAD_DUPLICATE_WINDOW", "48h")
	cfg, err := LoadConfig(missingEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, 48*time.Hour, cfg.Leads.DuplicateWindow)
}

func TestLoadConfig_UnknownMode(t *testing.T) {
	t.Setenv("MODE", "staging")
	_, err := LoadConfig(missingEnvFile(t))
	assert.Error(t, err)
}

func TestLoadConfig_FromEnvFile(t *testing.T) {
	for _, k := range []string{"MODE", "DATABASE_URL", "JWT_SECRET", "LEAD_DUPLICATE_WINDOW", "CORS_ALLOWED_ORIGINS", "REDIS_ADDR", "LEAD_PHONE_STRICT"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	path := filepath.Join(t.TempDir(), ".env")
	content := "MODE=production\n" +
		"DATABASE_URL=postgres://u:p@localhost:5432/realstate\n" +
		"JWT_SECRET=s3cret\n" +
		"LEAD_DUPLICATE_WINDOW=36h\n" +
		"LEAD_PHONE_STRICT=false\n" +
		"CORS_ALLOWED_ORIGINS=https://a.example, https://b.example\n" +
		"REDIS_ADDR=localhost:6379\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.False(t, cfg.IsDemo())
	assert.True(t, cfg.Rest.CookieSecure)
	assert.Equal(t, 36*time.Hour, cfg.Leads.DuplicateWindow)
	assert.False(t, cfg.Leads.StrictPhone)
	assert.Equal(t, "s3cret", cfg.Leads.MarkerSecret)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Rest.CORSAllowedOrigins)
	assert.True(t, cfg.Redis.Enabled)
	assert.False(t, cfg.RabbitMQ.Enabled)
}

func TestGetEnvHelpers_FallBackOnGarbage(t *testing.T) {
	t.Setenv("X_INT", "abc")
	t.Setenv("X_BOOL", "maybe")
	t.Setenv("X_DUR", "-5m")

	assert.Equal(t, 7, getEnvAsInt("X_INT", 7))
	assert.True(t, getEnvAsBool("X_BOOL", true))
	assert.Equal(t, time.Minute, getEnvAsDuration("X_DUR", time.Minute))
}
