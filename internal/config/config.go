// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/inklight/bookip-backend/internal/models"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	Protocol    ProtocolConfig
	License     LicenseConfig
	Payment     PaymentConfig
	Gateway     GatewayConfig
	I18n        I18nConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
}

type JWTConfig struct {
	SecretKey      string
	AccessTokenTTL int // in hours
}

// ProtocolConfig points at the external IP registration and royalty
// settlement node this gateway orchestrates against.
type ProtocolConfig struct {
	NodeURL          string
	APIKey           string
	RequestTimeout   int // in seconds
	RoyaltyPolicy    models.Principal
	Currency         models.Principal
	CollectionName   string
	CollectionSymbol string
}

// LicenseConfig carries the protocol defaults the policy builder falls
// back to when the caller supplies no override.
type LicenseConfig struct {
	DefaultCommercialFee      models.Amount
	DefaultCommercialRevShare uint32
	AttributionFee            models.Amount
	AttributionRevShare       uint32
}

type PaymentConfig struct {
	PlatformFeePercent uint32
	FeeTreasury        models.Principal
}

// MaxPlatformFeePercent bounds the administrative fee setting to 10%.
const MaxPlatformFeePercent uint32 = 10_000_000

type GatewayConfig struct {
	Owner models.Principal
}

type I18nConfig struct {
	DefaultLocale string
	LocalesPath   string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "bookip_gateway"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "silent"),
		},
		JWT: JWTConfig{
			SecretKey:      getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AccessTokenTTL: getEnvAsInt("JWT_ACCESS_TTL", 24),
		},
		Protocol: ProtocolConfig{
			NodeURL:          getEnv("PROTOCOL_NODE_URL", "http://localhost:9650"),
			APIKey:           getEnv("PROTOCOL_API_KEY", ""),
			RequestTimeout:   getEnvAsInt("PROTOCOL_REQUEST_TIMEOUT", 30),
			RoyaltyPolicy:    getEnvAsPrincipal("PROTOCOL_ROYALTY_POLICY", ""),
			Currency:         getEnvAsPrincipal("PROTOCOL_CURRENCY", ""),
			CollectionName:   getEnv("PROTOCOL_COLLECTION_NAME", "BookIP Works"),
			CollectionSymbol: getEnv("PROTOCOL_COLLECTION_SYMBOL", "BOOK"),
		},
		License: LicenseConfig{
			DefaultCommercialFee:      getEnvAsAmount("LICENSE_DEFAULT_COMMERCIAL_FEE", "10000000000000000000"), // 10 tokens
			DefaultCommercialRevShare: getEnvAsUint32("LICENSE_DEFAULT_COMMERCIAL_REV_SHARE", 10_000_000),       // 10%
			AttributionFee:            getEnvAsAmount("LICENSE_ATTRIBUTION_FEE", "0"),
			AttributionRevShare:       getEnvAsUint32("LICENSE_ATTRIBUTION_REV_SHARE", 0),
		},
		Payment: PaymentConfig{
			PlatformFeePercent: getEnvAsUint32("PAYMENT_PLATFORM_FEE_PERCENT", 1_000_000), // 1%
			FeeTreasury:        getEnvAsPrincipal("PAYMENT_FEE_TREASURY", ""),
		},
		Gateway: GatewayConfig{
			Owner: getEnvAsPrincipal("GATEWAY_OWNER", ""),
		},
		I18n: I18nConfig{
			DefaultLocale: getEnv("DEFAULT_LOCALE", "en"),
			LocalesPath:   getEnv("LOCALES_PATH", "./internal/i18n/locales"),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.JWT.SecretKey == "your-secret-key-change-in-production" && c.Environment == "production" {
		return fmt.Errorf("JWT secret key must be changed in production")
	}

	if c.Database.Password == "" && c.Environment == "production" {
		return fmt.Errorf("database password is required in production")
	}

	if c.Gateway.Owner.IsZero() {
		return fmt.Errorf("GATEWAY_OWNER must be a non-zero principal")
	}

	if c.Payment.PlatformFeePercent > MaxPlatformFeePercent {
		return fmt.Errorf("platform fee percent %d exceeds the %d limit",
			c.Payment.PlatformFeePercent, MaxPlatformFeePercent)
	}

	if c.License.DefaultCommercialRevShare > models.PercentScale {
		return fmt.Errorf("default commercial revenue share exceeds 100%%")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsUint32(key string, defaultValue uint32) uint32 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseUint(value, 10, 32); err == nil {
			return uint32(parsed)
		}
	}
	return defaultValue
}

func getEnvAsAmount(key, defaultValue string) models.Amount {
	if value := os.Getenv(key); value != "" {
		if amount, err := models.AmountFromDecimal(value); err == nil {
			return amount
		}
	}
	return models.MustAmount(defaultValue)
}

func getEnvAsPrincipal(key, defaultValue string) models.Principal {
	raw := getEnv(key, defaultValue)
	if principal, ok := models.NewPrincipal(raw); ok {
		return principal
	}
	return models.ZeroPrincipal
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
