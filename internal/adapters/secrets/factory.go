package secrets

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kevin07696/pxpost/internal/adapters/ports"
)

// Supported secret backends
const (
	BackendLocal = "local"
	BackendAWS   = "aws"
	BackendGCP   = "gcp"
	BackendVault = "vault"
)

// Config selects and configures one secret backend
type Config struct {
	Backend   string
	LocalPath string
	AWS       *AWSSecretsManagerConfig
	GCP       *GCPConfig
	Vault     *VaultConfig
}

// NewSecretManager creates the adapter for the configured backend
func NewSecretManager(ctx context.Context, cfg Config, logger *zap.Logger) (ports.SecretManagerAdapter, error) {
	switch cfg.Backend {
	case BackendLocal, "":
		return NewLocalSecretManager(cfg.LocalPath, logger), nil
	case BackendAWS:
		if cfg.AWS == nil {
			return nil, fmt.Errorf("aws secrets backend selected without configuration")
		}
		return NewAWSSecretsManagerAdapter(ctx, cfg.AWS, logger)
	case BackendGCP:
		if cfg.GCP == nil {
			return nil, fmt.Errorf("gcp secrets backend selected without configuration")
		}
		return NewGCPSecretManager(ctx, cfg.GCP, logger)
	case BackendVault:
		if cfg.Vault == nil {
			return nil, fmt.Errorf("vault secrets backend selected without configuration")
		}
		return NewVaultAdapter(ctx, cfg.Vault, logger)
	default:
		return nil, fmt.Errorf("unsupported secrets backend: %s", cfg.Backend)
	}
}

// ResolveValue returns the secret stored at path
func ResolveValue(ctx context.Context, manager ports.SecretManagerAdapter, path string) (string, error) {
	secret, err := manager.GetSecret(ctx, path)
	if err != nil {
		return "", err
	}
	if secret.Value == "" {
		return "", fmt.Errorf("secret %s is empty", path)
	}
	return secret.Value, nil
}
