package config_test

import (
	"testing"
	"time"

	"github.com/agenciaworcode-source/dashboard-expatur/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, 8080, cfg.App.Port)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)

	assert.Equal(t, "UC_DTK0RF", cfg.Bitrix.StageTicketed)
	assert.Equal(t, "WON", cfg.Bitrix.StageFlown)
	assert.Equal(t, 500, cfg.Bitrix.MaxRecordsPerStage)
	assert.Equal(t, 30*time.Second, cfg.Bitrix.RequestTimeoutDuration())

	assert.Equal(t, "BRL", cfg.Exchange.BaseCurrency)
	assert.Equal(t, 5.80, cfg.Exchange.FallbackRates["USD"])
	assert.Equal(t, 6.30, cfg.Exchange.FallbackRates["EUR"])
	assert.Equal(t, "Smiles", cfg.Exchange.IssuingPartners["174"])
	assert.Equal(t, "AFKLM Flying Blue", cfg.Exchange.IssuingPartners["208"])

	assert.False(t, cfg.Sync.PeriodicEnabled)
	assert.Equal(t, 50, cfg.Sync.BatchSize)
	assert.Equal(t, 5*time.Minute, cfg.Sync.TimeoutDuration())

	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Contains(t, cfg.RateLimit.WhitelistPaths, "/health")
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("BITRIX_STAGETICKETED", "C1:NEW")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "C1:NEW", cfg.Bitrix.StageTicketed)
}

func TestDatabaseConnectionString(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		Name:     "expatur",
		User:     "svc",
		Password: "secret",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.internal port=5433 user=svc password=secret dbname=expatur sslmode=require",
		cfg.ConnectionString(),
	)
}
