package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORE_DRIVER", "DATA_DIR", "RELOAD_SCHEDULE", "WHATSAPP_SECONDARY_DELAY", "CORS_ORIGINS", "DATABASE_URL", "DB_HOST", "DEV_DB_HOST", "ENV"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8083", cfg.Port)
	assert.Equal(t, StoreFile, cfg.StoreDriver)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "@every 10s", cfg.ReloadSchedule)
	assert.Equal(t, 2*time.Second, cfg.SecondaryDelay)
	assert.Empty(t, cfg.CORSOrigins)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("WHATSAPP_SECONDARY_DELAY", "0s")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")

	cfg := Load()
	assert.Equal(t, StorePostgres, cfg.StoreDriver)
	assert.Zero(t, cfg.SecondaryDelay)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)

	t.Setenv("WHATSAPP_SECONDARY_DELAY", "soon")
	assert.Equal(t, 2*time.Second, Load().SecondaryDelay)
}

func TestDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "rooms")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_SSLMODE", "")
	t.Setenv("PROD_DB_HOST", "prod-db")

	assert.Equal(t, "host=db user=app password=pw dbname=rooms port=5432 sslmode=require TimeZone=UTC", databaseURL("local"))
	assert.Contains(t, databaseURL("prod"), "host=prod-db user=app")

	t.Setenv("DATABASE_URL", "postgres://x")
	assert.Equal(t, "postgres://x", databaseURL("prod"))
}

func TestConnectCloudinary_Unset(t *testing.T) {
	cld, err := ConnectCloudinary(Config{})
	assert.NoError(t, err)
	assert.Nil(t, cld)
}
