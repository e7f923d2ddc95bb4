package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("portal-service")
	require.NoError(t, err)

	assert.Equal(t, "portal-service", cfg.ServiceName)
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, "portal-service", cfg.DB.DBName)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 24, cfg.JWT.ExpirationHours)

	// Cache stays disabled unless an address is configured.
	assert.Empty(t, cfg.Redis.Addr)

	assert.Equal(t, 10*time.Second, cfg.ExtDB.ConnectTimeout)
	assert.Equal(t, 30*time.Second, cfg.ExtDB.QueryTimeout)
	assert.Equal(t, 5, cfg.ExtDB.MaxConns)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("REDIS_ADDR", "cache.internal:6379")
	t.Setenv("EXTDB_CONNECT_TIMEOUT", "3s")
	t.Setenv("DB_LOG_LEVEL", "silent")

	cfg, err := Load("portal-service")
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "cache.internal:6379", cfg.Redis.Addr)
	assert.Equal(t, 3*time.Second, cfg.ExtDB.ConnectTimeout)
	assert.Equal(t, logger.Silent, cfg.DB.LogLevel)
}

func TestGetDSN(t *testing.T) {
	c := DBConfig{Host: "h", Port: "5432", User: "u", Password: "p", DBName: "d", SSLMode: "disable"}
	assert.Equal(t, "host=h port=5432 user=u password=p dbname=d sslmode=disable", c.GetDSN())
}
