package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "")
	t.Setenv("REDIS_DB", "")
	t.Setenv("DRAFT_TTL_MINUTES", "")
	t.Setenv("SERVER_PORT", "")

	cfg := Load()
	assert.Equal(t, "America/Bogota", cfg.Timezone)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, 2*time.Hour, cfg.DraftTTL)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "@hourly", cfg.NoticeSweepSpec)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("DRAFT_TTL_MINUTES", "15")
	t.Setenv("S3_BUCKET", "reports")

	cfg := Load()
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 15*time.Minute, cfg.DraftTTL)
	assert.Equal(t, "reports", cfg.S3Bucket)
}

func TestGetEnvInt_Invalid(t *testing.T) {
	t.Setenv("REDIS_DB", "abc")
	assert.Equal(t, 7, getEnvInt("REDIS_DB", 7))
}

func TestLoad_CORSOrigins(t *testing.T) {
	t.Setenv("CORS_ORIGINS", " http://localhost:5173 ,, https://agenda.centro.co")
	assert.Equal(t, []string{"http://localhost:5173", "https://agenda.centro.co"}, Load().CORSOrigins)

	t.Setenv("CORS_ORIGINS", "")
	assert.Nil(t, Load().CORSOrigins)
}
