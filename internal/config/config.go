package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/agenciaworcode-source/dashboard-expatur/internal/secrets"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Bitrix    BitrixConfig
	Exchange  ExchangeConfig
	Sync      SyncConfig
	Secrets   SecretsConfig
	Logging   LoggingConfig
	Server    ServerConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Port        int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
}

// BitrixConfig holds configuration for the Bitrix24 REST webhook.
// WebhookURL is sensitive (it embeds the access token) and is resolved
// through the secrets provider outside development.
type BitrixConfig struct {
	// WebhookURL is the inbound webhook base, e.g. https://<portal>.bitrix24.com.br/rest/<user>/<token>
	WebhookURL string
	// StageTicketed is the Bitrix stage code mapped to the "ticketed" stage
	StageTicketed string
	// StageFlown is the Bitrix stage code mapped to the "flown" stage
	StageFlown string
	// RequestTimeout is the per-request timeout in seconds
	RequestTimeout int
	// MaxRecordsPerStage caps how many deals a single stage fetch accumulates
	MaxRecordsPerStage int
}

// ExchangeConfig holds the currency conversion tables used by the normalizer.
// Rates here are only fallbacks; a per-deal exchange rate from the CRM wins.
type ExchangeConfig struct {
	// BaseCurrency is the reporting currency (amounts are converted into it)
	BaseCurrency string
	// FallbackRates maps currency code to a fixed rate into the base currency
	FallbackRates map[string]float64
	// IssuingPartners maps Bitrix enumeration IDs to partner labels
	IssuingPartners map[string]string
}

// SyncConfig controls the periodic CRM sync job
type SyncConfig struct {
	// PeriodicEnabled turns the cron-driven sync on
	PeriodicEnabled bool
	// PeriodicCron is the cron expression for the sync job
	PeriodicCron string
	// Timeout is the maximum duration of one sync run (seconds)
	Timeout int
	// BatchSize is the upsert chunk size
	BatchSize int
}

type SecretsConfig struct {
	// Source determines where secrets are loaded from: "environment", "vault", or "auto"
	// "auto" uses environment in development, vault in staging/production
	Source       string
	KeyVaultName string
	CacheEnabled bool
	CacheTTL     int // seconds
}

type LoggingConfig struct {
	Level  string
	Format string
}

type ServerConfig struct {
	ReadTimeout   int
	WriteTimeout  int
	EnableSwagger bool
}

// CORSConfig holds CORS configuration. The dashboard frontend is served from
// a different origin, so the defaults are wide open (GET/POST/OPTIONS, any
// origin, any headers); deployments can tighten this via config.
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerMinute int
	WhitelistIPs      []string
	WhitelistPaths    []string
}

// ConnectionString builds PostgreSQL connection string
func (d *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// ConnMaxLifetimeDuration returns connection max lifetime as duration
func (d *DatabaseConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Second
}

// ReadTimeoutDuration returns read timeout as duration
func (s *ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns write timeout as duration
func (s *ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

// RequestTimeoutDuration returns the Bitrix request timeout as duration
func (b *BitrixConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(b.RequestTimeout) * time.Second
}

// TimeoutDuration returns the sync run timeout as duration
func (s *SyncConfig) TimeoutDuration() time.Duration {
	return time.Duration(s.Timeout) * time.Second
}

// Load loads configuration from file and environment variables.
// This is a basic load that doesn't fetch secrets from vault.
// Use LoadWithSecrets for full secret resolution.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	// Read from config file
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables override config file
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Webhook URL may come straight from the environment in development
	if cfg.Bitrix.WebhookURL == "" {
		cfg.Bitrix.WebhookURL = v.GetString("BITRIX_WEBHOOK_URL")
	}

	if cfg.Secrets.KeyVaultName == "" {
		cfg.Secrets.KeyVaultName = v.GetString("AZURE_KEY_VAULT_NAME")
	}

	return &cfg, nil
}

// LoadWithSecrets loads configuration and resolves sensitive values from the
// configured secrets source. In development secrets come from env vars; in
// staging/production they come from Azure Key Vault.
func LoadWithSecrets(ctx context.Context, logger *zap.Logger) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	provider, err := secrets.NewProvider(&secrets.ProviderConfig{
		Source:       secrets.SecretSource(cfg.Secrets.Source),
		VaultName:    cfg.Secrets.KeyVaultName,
		Environment:  cfg.App.Environment,
		CacheEnabled: cfg.Secrets.CacheEnabled,
		CacheTTL:     time.Duration(cfg.Secrets.CacheTTL) * time.Second,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize secrets provider: %w", err)
	}

	if webhook, err := provider.GetSecretOrEnv(ctx, "BITRIX-WEBHOOK-URL", "BITRIX_WEBHOOK_URL"); err == nil && webhook != "" {
		cfg.Bitrix.WebhookURL = webhook
	}
	if password, err := provider.GetSecretOrEnv(ctx, "POSTGRES-MAIN-PASSWORD", "DATABASE_PASSWORD"); err == nil && password != "" {
		cfg.Database.Password = password
	}
	if user, err := provider.GetSecretOrEnv(ctx, "POSTGRES-MAIN-USER", "DATABASE_USER"); err == nil && user != "" {
		cfg.Database.User = user
	}

	if cfg.Bitrix.WebhookURL == "" {
		logger.Warn("Bitrix webhook URL not configured, sync will fail until it is set",
			zap.String("secret_source", string(provider.Source())),
		)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "Expatur Dashboard API")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.port", 8080)

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "expatur")
	v.SetDefault("database.user", "expatur_user")
	v.SetDefault("database.password", "expatur_password")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.connMaxLifetime", 300)

	// Bitrix defaults. Stage codes come from the Expatur pipeline:
	// UC_DTK0RF is the "ticketed" column, WON is "flown".
	v.SetDefault("bitrix.stageTicketed", "UC_DTK0RF")
	v.SetDefault("bitrix.stageFlown", "WON")
	v.SetDefault("bitrix.requestTimeout", 30)
	v.SetDefault("bitrix.maxRecordsPerStage", 500)

	// Exchange defaults. Fallback rates apply only when the deal carries no
	// exchange rate of its own.
	v.SetDefault("exchange.baseCurrency", "BRL")
	v.SetDefault("exchange.fallbackRates", map[string]float64{
		"USD": 5.80,
		"EUR": 6.30,
	})
	v.SetDefault("exchange.issuingPartners", map[string]string{
		"174": "Smiles",
		"176": "Latam",
		"178": "Azul",
		"180": "Consolidator",
		"190": "QR Privilege Club",
		"192": "IB Iberia Plus",
		"198": "Azul Pelo Mundo",
		"204": "CM Connect Miles",
		"208": "AFKLM Flying Blue",
	})

	// Sync defaults
	v.SetDefault("sync.periodicEnabled", false)
	v.SetDefault("sync.periodicCron", "@hourly")
	v.SetDefault("sync.timeout", 300)
	v.SetDefault("sync.batchSize", 50)

	// Secrets defaults
	v.SetDefault("secrets.source", "auto")
	v.SetDefault("secrets.cacheEnabled", true)
	v.SetDefault("secrets.cacheTTL", 300) // 5 minutes

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Server defaults
	v.SetDefault("server.readTimeout", 30)
	v.SetDefault("server.writeTimeout", 30)
	v.SetDefault("server.enableSwagger", true)

	// CORS defaults - the dashboard is a public SPA, so allow everything
	v.SetDefault("cors.allowedOrigins", []string{"*"})
	v.SetDefault("cors.allowedMethods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("cors.allowedHeaders", []string{"*"})
	v.SetDefault("cors.allowCredentials", false)
	v.SetDefault("cors.maxAge", 300) // 5 minutes

	// Rate limiting defaults
	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.requestsPerMinute", 60)
	v.SetDefault("rateLimit.whitelistIPs", []string{"127.0.0.1", "::1"})
	v.SetDefault("rateLimit.whitelistPaths", []string{"/health", "/health/db"})
}
