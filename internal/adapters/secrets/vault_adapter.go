package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	vault "github.com/hashicorp/vault/api"
	"go.uber.org/zap"

	"github.com/kevin07696/pxpost/internal/adapters/ports"
	"github.com/kevin07696/pxpost/internal/domain"
)

// VaultConfig contains configuration for HashiCorp Vault adapter
type VaultConfig struct {
	// Vault server address (e.g., "https://vault.example.com:8200")
	Address string

	// Authentication method: "token" or "approle"
	AuthMethod string

	Token string

	// AppRole credentials
	RoleID   string
	SecretID string

	// Vault namespace (Vault Enterprise)
	Namespace string

	// KV secrets engine mount path (default: "secret")
	MountPath string

	// KV version: "v1" or "v2" (default: "v2")
	KVVersion string

	CacheTTL    time.Duration
	EnableCache bool

	TLSSkipVerify bool
}

// DefaultVaultConfig returns default configuration for Vault adapter
func DefaultVaultConfig(address string) *VaultConfig {
	return &VaultConfig{
		Address:     address,
		AuthMethod:  "token",
		MountPath:   "secret",
		KVVersion:   "v2",
		CacheTTL:    5 * time.Minute,
		EnableCache: true,
	}
}

// logicalReader is the part of the Vault logical client the adapter uses
type logicalReader interface {
	ReadWithContext(ctx context.Context, path string) (*vault.Secret, error)
}

// vaultAdapter implements the SecretManagerAdapter port for HashiCorp Vault
type vaultAdapter struct {
	logical   logicalReader
	mountPath string
	kvVersion string
	logger    *zap.Logger
	cache     *secretCache
}

// NewVaultAdapter creates a new HashiCorp Vault adapter
func NewVaultAdapter(ctx context.Context, cfg *VaultConfig, logger *zap.Logger) (ports.SecretManagerAdapter, error) {
	vaultConfig := vault.DefaultConfig()
	vaultConfig.Address = cfg.Address

	if cfg.TLSSkipVerify {
		if err := vaultConfig.ConfigureTLS(&vault.TLSConfig{Insecure: true}); err != nil {
			return nil, fmt.Errorf("failed to configure TLS: %w", err)
		}
	}

	client, err := vault.NewClient(vaultConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vault client: %w", err)
	}

	if cfg.Namespace != "" {
		client.SetNamespace(cfg.Namespace)
	}

	if err := authenticateVault(ctx, client, cfg); err != nil {
		return nil, fmt.Errorf("failed to authenticate with Vault: %w", err)
	}

	logger.Info("Vault adapter initialized",
		zap.String("address", cfg.Address),
		zap.String("auth_method", cfg.AuthMethod),
		zap.String("mount_path", cfg.MountPath),
		zap.String("kv_version", cfg.KVVersion),
	)

	return newVaultAdapter(client.Logical(), cfg, logger), nil
}

func newVaultAdapter(logical logicalReader, cfg *VaultConfig, logger *zap.Logger) *vaultAdapter {
	return &vaultAdapter{
		logical:   logical,
		mountPath: cfg.MountPath,
		kvVersion: cfg.KVVersion,
		logger:    logger,
		cache:     newSecretCache(cfg.EnableCache, cfg.CacheTTL),
	}
}

// authenticateVault handles authentication with Vault
func authenticateVault(ctx context.Context, client *vault.Client, cfg *VaultConfig) error {
	switch cfg.AuthMethod {
	case "token":
		if cfg.Token == "" {
			return fmt.Errorf("token is required for token auth")
		}
		client.SetToken(cfg.Token)
		return nil

	case "approle":
		if cfg.RoleID == "" || cfg.SecretID == "" {
			return fmt.Errorf("role_id and secret_id are required for AppRole auth")
		}
		resp, err := client.Logical().WriteWithContext(ctx, "auth/approle/login", map[string]interface{}{
			"role_id":   cfg.RoleID,
			"secret_id": cfg.SecretID,
		})
		if err != nil {
			return fmt.Errorf("AppRole login failed: %w", err)
		}
		if resp == nil || resp.Auth == nil {
			return fmt.Errorf("AppRole login returned no auth info")
		}
		client.SetToken(resp.Auth.ClientToken)
		return nil

	default:
		return fmt.Errorf("unsupported auth method: %s", cfg.AuthMethod)
	}
}

// GetSecret retrieves a secret by its path. The value is read from the
// "value" key, falling back to the first string value in the secret.
// Path format: "pxpost/merchants/{username}"
func (a *vaultAdapter) GetSecret(ctx context.Context, path string) (*ports.Secret, error) {
	if cached := a.cache.get(path); cached != nil {
		a.logger.Debug("Secret retrieved from cache", zap.String("path", path))
		return cached, nil
	}

	a.logger.Info("Retrieving secret from Vault", zap.String("path", path))

	fullPath := fmt.Sprintf("%s/%s", a.mountPath, path)
	if a.kvVersion == "v2" {
		fullPath = fmt.Sprintf("%s/data/%s", a.mountPath, path)
	}

	startTime := time.Now()
	raw, err := a.logical.ReadWithContext(ctx, fullPath)
	if err != nil {
		a.logger.Error("Failed to retrieve secret from Vault",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, domain.WrapError(domain.ErrorCodeSecretError, "failed to read secret from Vault", err)
	}
	if raw == nil {
		return nil, domain.NewDomainError(domain.ErrorCodeSecretError, fmt.Sprintf("secret not found: %s", path))
	}

	secret, err := decodeVaultSecret(raw.Data, a.kvVersion)
	if err != nil {
		return nil, err
	}

	a.logger.Info("Secret retrieved successfully",
		zap.String("path", path),
		zap.Duration("elapsed", time.Since(startTime)),
	)

	a.cache.set(path, secret)
	return secret, nil
}

// decodeVaultSecret extracts value and metadata from a KV v1 or v2 payload
func decodeVaultSecret(data map[string]interface{}, kvVersion string) (*ports.Secret, error) {
	secretData := data
	version := "1"
	var createdTime string

	if kvVersion == "v2" {
		// KV v2 wraps data in "data" field
		inner, ok := data["data"].(map[string]interface{})
		if !ok {
			return nil, domain.NewDomainError(domain.ErrorCodeSecretError, "invalid secret format from Vault")
		}
		secretData = inner
		version = ""

		if metadata, ok := data["metadata"].(map[string]interface{}); ok {
			if v, ok := metadata["version"].(json.Number); ok {
				version = v.String()
			}
			if ct, ok := metadata["created_time"].(string); ok {
				createdTime = ct
			}
		}
	}

	value, _ := secretData["value"].(string)
	if value == "" {
		for _, v := range secretData {
			if str, ok := v.(string); ok && str != "" {
				value = str
				break
			}
		}
	}
	if value == "" {
		return nil, domain.NewDomainError(domain.ErrorCodeSecretError, "secret value is empty or not found")
	}

	secret := &ports.Secret{
		Value:     value,
		Version:   version,
		CreatedAt: createdTime,
		Metadata:  make(map[string]string),
	}
	for k, v := range secretData {
		if str, ok := v.(string); ok && k != "value" {
			secret.Metadata[k] = str
		}
	}
	return secret, nil
}
