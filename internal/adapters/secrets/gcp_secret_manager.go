package secrets

import (
	"context"
	"fmt"
	"strings"
	"time"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"go.uber.org/zap"

	"github.com/kevin07696/pxpost/internal/adapters/ports"
	"github.com/kevin07696/pxpost/internal/domain"
)

// GCPConfig contains configuration for the GCP Secret Manager adapter
type GCPConfig struct {
	ProjectID string
	CacheTTL  time.Duration
}

// gcpSecretManager implements the SecretManagerAdapter port for GCP Secret Manager
type gcpSecretManager struct {
	client    *secretmanager.Client
	projectID string
	logger    *zap.Logger
	cache     *secretCache
}

// NewGCPSecretManager creates a new GCP Secret Manager adapter.
// Credentials come from GOOGLE_APPLICATION_CREDENTIALS, workload identity or
// the default application credentials.
func NewGCPSecretManager(ctx context.Context, cfg *GCPConfig, logger *zap.Logger) (ports.SecretManagerAdapter, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("GCP project ID is required")
	}

	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCP Secret Manager client: %w", err)
	}

	logger.Info("GCP Secret Manager initialized",
		zap.String("project_id", cfg.ProjectID),
		zap.Duration("cache_ttl", cfg.CacheTTL),
	)

	return &gcpSecretManager{
		client:    client,
		projectID: cfg.ProjectID,
		logger:    logger,
		cache:     newSecretCache(true, cfg.CacheTTL),
	}, nil
}

// GetSecret retrieves the latest version of a secret
// Path format: "pxpost-merchant-password"
// GCP converts to: projects/{project_id}/secrets/{secret_name}/versions/latest
func (sm *gcpSecretManager) GetSecret(ctx context.Context, path string) (*ports.Secret, error) {
	if cached := sm.cache.get(path); cached != nil {
		sm.logger.Debug("Secret cache hit", zap.String("path", path))
		return cached, nil
	}

	secretName := fmt.Sprintf("projects/%s/secrets/%s/versions/latest", sm.projectID, path)

	result, err := sm.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: secretName,
	})
	if err != nil {
		sm.logger.Error("Failed to access GCP secret",
			zap.String("path", path),
			zap.String("secret_name", secretName),
			zap.Error(err),
		)
		return nil, domain.WrapError(domain.ErrorCodeSecretError, fmt.Sprintf("failed to access GCP secret %s", path), err)
	}

	secret := &ports.Secret{
		Value:   string(result.GetPayload().GetData()),
		Version: extractVersionFromName(result.GetName()),
		Metadata: map[string]string{
			"gcp_project_id": sm.projectID,
			"gcp_secret":     path,
		},
	}

	sm.cache.set(path, secret)

	sm.logger.Info("Secret fetched from GCP",
		zap.String("path", path),
		zap.String("version", secret.Version),
	)
	return secret, nil
}

// extractVersionFromName returns the trailing segment of
// projects/{project}/secrets/{secret}/versions/{version}
func extractVersionFromName(name string) string {
	i := strings.LastIndex(name, "/")
	if i < 0 {
		return "unknown"
	}
	return name[i+1:]
}
