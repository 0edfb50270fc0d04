package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevin07696/pxpost/internal/adapters/secrets"
)

func setGatewayEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PXPOST_USERNAME", "TestUsername")
	t.Setenv("PXPOST_PASSWORD", "TestPassword")
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	setGatewayEnv(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "https://uat.paymentexpress.com/pxpost.aspx", cfg.Gateway.URL)
	assert.Equal(t, "AUD", cfg.Gateway.Currency)
	assert.Equal(t, 30*time.Second, cfg.Gateway.Timeout)
	assert.Zero(t, cfg.Gateway.RequestsPerSecond)
	assert.Equal(t, AuditStoreMemory, cfg.Audit.Store)
	assert.Equal(t, secrets.BackendLocal, cfg.Secrets.Backend)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	setGatewayEnv(t)
	t.Setenv("PXPOST_URL", "https://sec.paymentexpress.com/pxpost.aspx")
	t.Setenv("PXPOST_CURRENCY", "NZD")
	t.Setenv("PXPOST_TIMEOUT", "45s")
	t.Setenv("PXPOST_RATE_LIMIT", "2.5")
	t.Setenv("PXPOST_RATE_BURST", "5")
	t.Setenv("AUDIT_STORE", "postgres")
	t.Setenv("DB_PASSWORD", "dbpass")
	t.Setenv("DB_QUERY_TIMEOUT", "not-a-duration")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "https://sec.paymentexpress.com/pxpost.aspx", cfg.Gateway.URL)
	assert.Equal(t, "NZD", cfg.Gateway.Currency)
	assert.Equal(t, 45*time.Second, cfg.Gateway.Timeout)
	assert.Equal(t, 2.5, cfg.Gateway.RequestsPerSecond)
	assert.Equal(t, 5, cfg.Gateway.Burst)
	assert.Equal(t, AuditStorePostgres, cfg.Audit.Store)
	assert.Equal(t, 2*time.Second, cfg.Database.QueryTimeout, "invalid durations fall back to the default")
}

func TestLoadFromEnv_Validation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing username",
			env:     map[string]string{"PXPOST_PASSWORD": "p"},
			wantErr: "PXPOST_USERNAME is required",
		},
		{
			name:    "missing password",
			env:     map[string]string{"PXPOST_USERNAME": "u"},
			wantErr: "PXPOST_PASSWORD or PXPOST_PASSWORD_SECRET is required",
		},
		{
			name:    "lowercase currency",
			env:     map[string]string{"PXPOST_USERNAME": "u", "PXPOST_PASSWORD": "p", "PXPOST_CURRENCY": "aud"},
			wantErr: "PXPOST_CURRENCY must be a three letter uppercase code",
		},
		{
			name:    "postgres without password",
			env:     map[string]string{"PXPOST_USERNAME": "u", "PXPOST_PASSWORD": "p", "AUDIT_STORE": "postgres"},
			wantErr: "DB_PASSWORD is required",
		},
		{
			name:    "unknown audit store",
			env:     map[string]string{"PXPOST_USERNAME": "u", "PXPOST_PASSWORD": "p", "AUDIT_STORE": "redis"},
			wantErr: "unsupported AUDIT_STORE",
		},
		{
			name:    "gcp without project",
			env:     map[string]string{"PXPOST_USERNAME": "u", "PXPOST_PASSWORD_SECRET": "pw", "SECRETS_BACKEND": "gcp"},
			wantErr: "GCP_PROJECT_ID is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := LoadFromEnv()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromEnv_PasswordSecret(t *testing.T) {
	t.Setenv("PXPOST_USERNAME", "u")
	t.Setenv("PXPOST_PASSWORD_SECRET", "pxpost/merchants/u/password")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Empty(t, cfg.Gateway.Password)
	assert.Equal(t, "pxpost/merchants/u/password", cfg.Gateway.PasswordSecret)
}

func TestGatewayConfig_Conversions(t *testing.T) {
	gw := GatewayConfig{
		URL:               "https://uat.paymentexpress.com/pxpost.aspx",
		Username:          "u",
		Currency:          "AUD",
		Timeout:           10 * time.Second,
		RequestsPerSecond: 3,
		Burst:             2,
	}

	px := gw.PXPostConfig("resolved")
	assert.Equal(t, "resolved", px.Password)
	assert.Equal(t, "u", px.Username)
	assert.Equal(t, "AUD", px.Currency)

	tc := gw.TransportConfig()
	assert.Equal(t, 10*time.Second, tc.Timeout)
	assert.Equal(t, float64(3), tc.RequestsPerSecond)
	assert.Equal(t, 2, tc.Burst)
}

func TestDatabaseConfig_PostgreSQLConfig(t *testing.T) {
	db := DatabaseConfig{
		Host: "db", Port: 5433, User: "px", Password: "pw", Database: "audit", SSLMode: "require",
		MaxConns: 4, MinConns: 2, QueryTimeout: time.Second,
	}

	assert.Equal(t, "host=db port=5433 user=px password=pw dbname=audit sslmode=require", db.ConnectionString())

	pg := db.PostgreSQLConfig()
	assert.Equal(t, db.ConnectionString(), pg.DatabaseURL)
	assert.Equal(t, int32(4), pg.MaxConns)
	assert.Equal(t, int32(2), pg.MinConns)
	assert.Equal(t, time.Second, pg.QueryTimeout)
}

func TestSecretsConfig_ManagerConfig(t *testing.T) {
	tests := []struct {
		backend string
		check   func(t *testing.T, cfg secrets.Config)
	}{
		{secrets.BackendLocal, func(t *testing.T, cfg secrets.Config) {
			assert.Equal(t, "./secrets", cfg.LocalPath)
			assert.Nil(t, cfg.AWS)
		}},
		{secrets.BackendAWS, func(t *testing.T, cfg secrets.Config) {
			require.NotNil(t, cfg.AWS)
			assert.Equal(t, "ap-southeast-2", cfg.AWS.Region)
		}},
		{secrets.BackendGCP, func(t *testing.T, cfg secrets.Config) {
			require.NotNil(t, cfg.GCP)
			assert.Equal(t, "proj", cfg.GCP.ProjectID)
		}},
		{secrets.BackendVault, func(t *testing.T, cfg secrets.Config) {
			require.NotNil(t, cfg.Vault)
			assert.Equal(t, "tok", cfg.Vault.Token)
			assert.Equal(t, "v2", cfg.Vault.KVVersion)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			sc := SecretsConfig{
				Backend:         tt.backend,
				LocalPath:       "./secrets",
				AWSRegion:       "ap-southeast-2",
				GCPProjectID:    "proj",
				VaultAddress:    "http://127.0.0.1:8200",
				VaultAuthMethod: "token",
				VaultToken:      "tok",
				VaultMountPath:  "secret",
				VaultKVVersion:  "v2",
				CacheTTL:        time.Minute,
			}
			out := sc.ManagerConfig()
			assert.Equal(t, tt.backend, out.Backend)
			tt.check(t, out)
		})
	}
}

func TestLoadDatabaseFromEnv_NoGatewayRequired(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_NAME", "audit")

	cfg := LoadDatabaseFromEnv()
	assert.Equal(t, "db.internal", cfg.Host)
	assert.Equal(t, 6543, cfg.Port)
	assert.Contains(t, cfg.ConnectionString(), "dbname=audit")
}
