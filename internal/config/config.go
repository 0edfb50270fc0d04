package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kevin07696/pxpost/internal/adapters/database"
	"github.com/kevin07696/pxpost/internal/adapters/pxpost"
	"github.com/kevin07696/pxpost/internal/adapters/secrets"
)

// Audit store backends
const (
	AuditStoreMemory   = "memory"
	AuditStorePostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	Gateway  GatewayConfig
	Audit    AuditConfig
	Database DatabaseConfig
	Secrets  SecretsConfig
	Logger   LoggerConfig
}

// GatewayConfig holds PXPost gateway configuration
type GatewayConfig struct {
	URL      string // e.g. https://uat.paymentexpress.com/pxpost.aspx
	Username string
	Password string

	// Secret path resolved through the secrets backend when Password is empty
	PasswordSecret string

	Currency string // ISO 4217, default AUD
	Timeout  time.Duration

	// Outbound throttle; zero disables it
	RequestsPerSecond float64
	Burst             int

	InsecureSkipVerify bool
}

// AuditConfig selects where audit records are written
type AuditConfig struct {
	Store string // memory or postgres
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxConns     int32
	MinConns     int32
	QueryTimeout time.Duration
}

// SecretsConfig holds the secret backend configuration
type SecretsConfig struct {
	Backend   string // local, aws, gcp or vault
	LocalPath string
	CacheTTL  time.Duration

	AWSRegion   string
	AWSProfile  string
	AWSEndpoint string

	GCPProjectID string

	VaultAddress    string
	VaultAuthMethod string
	VaultToken      string
	VaultRoleID     string
	VaultSecretID   string
	VaultMountPath  string
	VaultKVVersion  string
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level       string // debug, info, warn, error
	Development bool
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Gateway: GatewayConfig{
			URL:                getEnv("PXPOST_URL", "https://uat.paymentexpress.com/pxpost.aspx"),
			Username:           getEnv("PXPOST_USERNAME", ""),
			Password:           getEnv("PXPOST_PASSWORD", ""),
			PasswordSecret:     getEnv("PXPOST_PASSWORD_SECRET", ""),
			Currency:           getEnv("PXPOST_CURRENCY", pxpost.DefaultCurrency),
			Timeout:            getEnvAsDuration("PXPOST_TIMEOUT", 30*time.Second),
			RequestsPerSecond:  getEnvAsFloat("PXPOST_RATE_LIMIT", 0),
			Burst:              getEnvAsInt("PXPOST_RATE_BURST", 1),
			InsecureSkipVerify: getEnvAsBool("PXPOST_INSECURE_SKIP_VERIFY", false),
		},
		Audit: AuditConfig{
			Store: getEnv("AUDIT_STORE", AuditStoreMemory),
		},
		Database: LoadDatabaseFromEnv(),
		Secrets: SecretsConfig{
			Backend:         getEnv("SECRETS_BACKEND", secrets.BackendLocal),
			LocalPath:       getEnv("SECRETS_LOCAL_PATH", "./secrets"),
			CacheTTL:        getEnvAsDuration("SECRETS_CACHE_TTL", 5*time.Minute),
			AWSRegion:       getEnv("AWS_REGION", "ap-southeast-2"),
			AWSProfile:      getEnv("AWS_PROFILE", ""),
			AWSEndpoint:     getEnv("AWS_SECRETS_ENDPOINT", ""),
			GCPProjectID:    getEnv("GCP_PROJECT_ID", ""),
			VaultAddress:    getEnv("VAULT_ADDR", "http://127.0.0.1:8200"),
			VaultAuthMethod: getEnv("VAULT_AUTH_METHOD", "token"),
			VaultToken:      getEnv("VAULT_TOKEN", ""),
			VaultRoleID:     getEnv("VAULT_ROLE_ID", ""),
			VaultSecretID:   getEnv("VAULT_SECRET_ID", ""),
			VaultMountPath:  getEnv("VAULT_MOUNT_PATH", "secret"),
			VaultKVVersion:  getEnv("VAULT_KV_VERSION", "v2"),
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: getEnvAsBool("LOG_DEVELOPMENT", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDatabaseFromEnv loads only the database settings. Migrations need no
// gateway credentials.
func LoadDatabaseFromEnv() DatabaseConfig {
	return DatabaseConfig{
		Host:         getEnv("DB_HOST", "localhost"),
		Port:         getEnvAsInt("DB_PORT", 5432),
		User:         getEnv("DB_USER", "postgres"),
		Password:     getEnv("DB_PASSWORD", ""),
		Database:     getEnv("DB_NAME", "pxpost"),
		SSLMode:      getEnv("DB_SSL_MODE", "disable"),
		MaxConns:     int32(getEnvAsInt("DB_MAX_CONNS", 10)),
		MinConns:     int32(getEnvAsInt("DB_MIN_CONNS", 1)),
		QueryTimeout: getEnvAsDuration("DB_QUERY_TIMEOUT", 2*time.Second),
	}
}

// Validate checks required values and their combinations
func (c *Config) Validate() error {
	if c.Gateway.URL == "" {
		return fmt.Errorf("PXPOST_URL is required")
	}
	if c.Gateway.Username == "" {
		return fmt.Errorf("PXPOST_USERNAME is required")
	}
	if c.Gateway.Password == "" && c.Gateway.PasswordSecret == "" {
		return fmt.Errorf("PXPOST_PASSWORD or PXPOST_PASSWORD_SECRET is required")
	}
	if len(c.Gateway.Currency) != 3 || strings.ToUpper(c.Gateway.Currency) != c.Gateway.Currency {
		return fmt.Errorf("PXPOST_CURRENCY must be a three letter uppercase code, got %q", c.Gateway.Currency)
	}

	switch c.Audit.Store {
	case AuditStoreMemory:
	case AuditStorePostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required for the postgres audit store")
		}
	default:
		return fmt.Errorf("unsupported AUDIT_STORE %q", c.Audit.Store)
	}

	if c.Gateway.Password == "" && c.Secrets.Backend == secrets.BackendGCP && c.Secrets.GCPProjectID == "" {
		return fmt.Errorf("GCP_PROJECT_ID is required for the gcp secrets backend")
	}
	return nil
}

// ConnectionString returns PostgreSQL connection string
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// PostgreSQLConfig returns the pool configuration for the audit database
func (c *DatabaseConfig) PostgreSQLConfig() *database.PostgreSQLConfig {
	pg := database.DefaultPostgreSQLConfig(c.ConnectionString())
	pg.MaxConns = c.MaxConns
	pg.MinConns = c.MinConns
	pg.QueryTimeout = c.QueryTimeout
	return pg
}

// PXPostConfig returns the merchant account with the resolved password
func (c *GatewayConfig) PXPostConfig(password string) pxpost.Config {
	return pxpost.Config{
		URL:      c.URL,
		Username: c.Username,
		Password: password,
		Currency: c.Currency,
	}
}

// TransportConfig returns the HTTP transport settings
func (c *GatewayConfig) TransportConfig() *pxpost.HTTPTransportConfig {
	return &pxpost.HTTPTransportConfig{
		Timeout:            c.Timeout,
		RequestsPerSecond:  c.RequestsPerSecond,
		Burst:              c.Burst,
		InsecureSkipVerify: c.InsecureSkipVerify,
	}
}

// ManagerConfig returns the configuration of the selected secrets backend
func (c *SecretsConfig) ManagerConfig() secrets.Config {
	out := secrets.Config{
		Backend:   c.Backend,
		LocalPath: c.LocalPath,
	}

	switch c.Backend {
	case secrets.BackendAWS:
		aws := secrets.DefaultAWSSecretsManagerConfig(c.AWSRegion)
		aws.Profile = c.AWSProfile
		aws.Endpoint = c.AWSEndpoint
		aws.CacheTTL = c.CacheTTL
		out.AWS = aws
	case secrets.BackendGCP:
		out.GCP = &secrets.GCPConfig{ProjectID: c.GCPProjectID, CacheTTL: c.CacheTTL}
	case secrets.BackendVault:
		vault := secrets.DefaultVaultConfig(c.VaultAddress)
		vault.AuthMethod = c.VaultAuthMethod
		vault.Token = c.VaultToken
		vault.RoleID = c.VaultRoleID
		vault.SecretID = c.VaultSecretID
		vault.MountPath = c.VaultMountPath
		vault.KVVersion = c.VaultKVVersion
		vault.CacheTTL = c.CacheTTL
		out.Vault = vault
	}
	return out
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
