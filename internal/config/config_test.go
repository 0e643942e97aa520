package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("AUDIT_STORE", "")
	t.Setenv("DIRECTORY_CACHE_TTL", "")
	t.Setenv("DB_AUTO_MIGRATE", "")

	cfg := Load()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, AuditStorePostgres, cfg.AuditStore)
	assert.Equal(t, 10*time.Minute, cfg.DirectoryTTL)
	assert.False(t, cfg.Database.AutoMigrate)
	assert.Equal(t, 5, cfg.Database.MaxRetries)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("AUDIT_STORE", AuditStoreMongo)
	t.Setenv("DIRECTORY_CACHE_TTL", "90s")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("DB_MAX_RETRIES", "not-a-number")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, AuditStoreMongo, cfg.AuditStore)
	assert.Equal(t, 90*time.Second, cfg.DirectoryTTL)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, 5, cfg.Database.MaxRetries)
}
