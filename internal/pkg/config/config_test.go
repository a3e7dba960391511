package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
	assert.Equal(t, 12*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 5, cfg.Login.MaxAttempts)
	assert.Equal(t, 15*time.Minute, cfg.Login.Window)
	assert.Equal(t, 60*time.Minute, cfg.Security.CSRFTTL)
	assert.Equal(t, 90*24*time.Hour, cfg.Security.APIKeyTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.Security.APIKeyGrace)
	assert.Equal(t, 10.0, cfg.LoyaltyRupeesPerPoint)
	assert.Equal(t, "cafe_pos", cfg.Mongo.Database)
	assert.Empty(t, cfg.Minio.Endpoint)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV":                      "production",
		"JWT_SECRET":               "prod-secret",
		"JWT_TTL":                  "1h",
		"LOGIN_MAX_ATTEMPTS":       "3",
		"LOYALTY_RUPEES_PER_POINT": "25",
		"MINIO_ENDPOINT":           "minio:9000",
		"MINIO_USE_SSL":            "true",
	}))
	require.NoError(t, err)

	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, 3, cfg.Login.MaxAttempts)
	assert.Equal(t, 25.0, cfg.LoyaltyRupeesPerPoint)
	assert.Equal(t, "minio:9000", cfg.Minio.Endpoint)
	assert.True(t, cfg.Minio.UseSSL)
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{"ENV": "production"}))
	assert.Error(t, err)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{"LOYALTY_RUPEES_PER_POINT": "0"}))
	assert.Error(t, err)

	_, err = load(context.Background(), envconfig.MapLookuper(map[string]string{"JWT_TTL": "soon"}))
	assert.Error(t, err)
}
