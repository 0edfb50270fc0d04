package pxpost

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kevin07696/pxpost/internal/adapters/ports"
	pkghttp "github.com/kevin07696/pxpost/pkg/http"
)

// maxResponseBytes caps how much of a reply is read; PXPost replies are a few KB
const maxResponseBytes = 1 << 20

// HTTPTransportConfig contains configuration for the HTTPS POST transport
type HTTPTransportConfig struct {
	// Whole-exchange timeout applied by the HTTP client
	Timeout time.Duration

	// Outbound throttle. Zero RequestsPerSecond disables it.
	// Throttled calls wait for a slot; they are never retried.
	RequestsPerSecond float64
	Burst             int

	// TLS configuration
	InsecureSkipVerify bool
}

// DefaultHTTPTransportConfig returns default configuration for the transport
func DefaultHTTPTransportConfig() *HTTPTransportConfig {
	return &HTTPTransportConfig{
		Timeout: 30 * time.Second,
	}
}

// HTTPTransport implements ports.GatewayTransport over HTTPS POST
type HTTPTransport struct {
	client  ports.HTTPClient
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewHTTPTransport creates a transport with a pooled client tuned for PXPost
func NewHTTPTransport(cfg *HTTPTransportConfig, logger *zap.Logger) *HTTPTransport {
	clientCfg := pkghttp.GatewayClientConfig()
	clientCfg.InsecureSkipVerify = cfg.InsecureSkipVerify
	return NewHTTPTransportWithClient(pkghttp.NewHTTPClient(clientCfg, cfg.Timeout), cfg, logger)
}

// NewHTTPTransportWithClient creates a transport around an existing client
func NewHTTPTransportWithClient(client ports.HTTPClient, cfg *HTTPTransportConfig, logger *zap.Logger) *HTTPTransport {
	var limiter *rate.Limiter
	if cfg != nil && cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &HTTPTransport{
		client:  client,
		limiter: limiter,
		logger:  logger,
	}
}

// Post sends the document with HTTP basic auth and returns the raw reply.
// Any non-nil error means no usable reply was received.
func (t *HTTPTransport) Post(ctx context.Context, req *ports.TransportRequest) (*ports.TransportResponse, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("wait for gateway slot: %w", err)
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.URL, bytes.NewReader(req.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.SetBasicAuth(req.Username, req.Password)
	httpReq.Header.Set("Content-Type", "application/xml; charset=utf-8")
	httpReq.Header.Set("Accept", "application/xml")

	startTime := time.Now()
	httpResp, err := t.client.Do(httpReq)
	if err != nil {
		t.logger.Error("Failed to send gateway request",
			zap.Error(err),
			zap.Duration("elapsed", time.Since(startTime)),
		)
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		t.logger.Error("Failed to read gateway response body", zap.Error(err))
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	t.logger.Debug("Received gateway response",
		zap.Int("status_code", httpResp.StatusCode),
		zap.Duration("elapsed", time.Since(startTime)),
		zap.Int("body_length", len(body)),
	)

	return &ports.TransportResponse{
		StatusCode: httpResp.StatusCode,
		Body:       body,
	}, nil
}
