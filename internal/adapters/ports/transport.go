package ports

import "context"

// TransportRequest is one HTTP POST of a serialized gateway document
type TransportRequest struct {
	URL      string
	Username string // HTTP basic auth
	Password string
	Body     []byte
}

// TransportResponse is the raw reply of the gateway endpoint
type TransportResponse struct {
	StatusCode int
	Body       []byte
}

// GatewayTransport posts a request document to the gateway.
// Implementations must not retry: connection failures and timeouts are
// returned as-is so the caller sees exactly one exchange per call.
type GatewayTransport interface {
	Post(ctx context.Context, req *TransportRequest) (*TransportResponse, error)
}
