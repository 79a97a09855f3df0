package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Catalog sources
const (
	CatalogSourceMemory = "memory"
	CatalogSourceMySQL  = "mysql"
)

// Config holds application configuration from environment variables
type Config struct {
	// Application
	AppPort       string
	AppEnv        string
	LogLevel      string
	DefaultUserID string

	// Catalog
	CatalogSource string

	// Database (only used when CatalogSource is "mysql")
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Pricing
	TaxRate               decimal.Decimal
	ShippingFee           int64
	FreeShippingThreshold int64
	CurrencySuffix        string
	CurrencyLocale        string

	// OpenTelemetry
	MetricsEnabled            bool
	OTELExporterOTLPEndpoint  string
	OTELExporterOTLPProtocol  string
	OTELExporterOTLPHeaders   string // For SigNoz Cloud: signoz-ingestion-key=<key>
	OTELExporterOTLPInsecure  bool   // true for http://, false for https://
	OTELServiceName           string
	OTELServiceVersion        string
	OTELDeploymentEnvironment string
}

// LoadConfig loads configuration from .env file and environment variables with defaults
func LoadConfig() *Config {
	// .env is optional; only complain when it exists but can't be parsed
	if err := godotenv.Load(); err != nil {
		if _, ok := err.(*os.PathError); !ok {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	}

	return &Config{
		AppPort:       getEnv("APP_PORT", "4000"),
		AppEnv:        getEnv("APP_ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DefaultUserID: getEnv("DEFAULT_USER_ID", "user-001"),

		CatalogSource: getEnv("CATALOG_SOURCE", CatalogSourceMemory),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "cart"),

		TaxRate:               getEnvDecimal("TAX_RATE", decimal.NewFromFloat(0.1)),
		ShippingFee:           getEnvInt64("SHIPPING_FEE", 30000),
		FreeShippingThreshold: getEnvInt64("FREE_SHIPPING_THRESHOLD", 1000000),
		CurrencySuffix:        getEnv("CURRENCY_SUFFIX", "đ"),
		CurrencyLocale:        getEnv("CURRENCY_LOCALE", "vi"),

		MetricsEnabled:            getEnvBool("METRICS_ENABLED", true),
		OTELExporterOTLPEndpoint:  getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		OTELExporterOTLPProtocol:  getEnv("OTEL_EXPORTER_OTLP_PROTOCOL", "http/protobuf"),
		OTELExporterOTLPHeaders:   getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""),
		OTELExporterOTLPInsecure:  getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
		OTELServiceName:           getEnv("OTEL_SERVICE_NAME", "cart-graphql-api"),
		OTELServiceVersion:        getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
		OTELDeploymentEnvironment: getEnv("OTEL_DEPLOYMENT_ENVIRONMENT", "development"),
	}
}

// GetDSN returns the MySQL DSN string
func (c *Config) GetDSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true&charset=utf8mb4"
}

// GetAppPortInt returns the application port as an integer
func (c *Config) GetAppPortInt() int {
	port, err := strconv.Atoi(c.AppPort)
	if err != nil {
		return 4000
	}
	return port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if value == "true" || value == "1" || value == "yes" {
			return true
		}
		return false
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			log.Printf("Warning: invalid %s=%q, using %d", key, value, defaultValue)
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

func getEnvDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		parsed, err := decimal.NewFromString(value)
		if err != nil || parsed.IsNegative() {
			log.Printf("Warning: invalid %s=%q, using %s", key, value, defaultValue)
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}
