package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("JWT_ACCESS_TTL", "")

	cfg := Load()

	assert.Equal(t, "fitbalance-api", cfg.AppName)
	assert.Equal(t, "postgres", cfg.StorageDriver)
	assert.Equal(t, time.Hour, cfg.AccessTTL)
	assert.False(t, cfg.UsesMemoryStorage())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Memory")
	t.Setenv("API_PREFIX", "/api/")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("SESSION_TTL", "2h")

	cfg := Load()

	assert.True(t, cfg.UsesMemoryStorage())
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, int32(25), cfg.DBMaxConns)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "many")
	t.Setenv("COOKIE_SECURE", "yes please")
	t.Setenv("JWT_ACCESS_TTL", "soon")

	cfg := Load()

	assert.Equal(t, int32(10), cfg.DBMaxConns)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, time.Hour, cfg.AccessTTL)
}

func TestListHelpers(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: "http://a.test, ,http://b.test", ElasticsearchAddrs: ""}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
	assert.Empty(t, cfg.ESAddrs())
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "d", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", cfg.PostgresDSN())
}
