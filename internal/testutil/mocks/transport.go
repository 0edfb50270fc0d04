// Package mocks provides shared mock implementations for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kevin07696/pxpost/internal/adapters/ports"
)

// MockTransport is a testify mock of ports.GatewayTransport
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Post(ctx context.Context, req *ports.TransportRequest) (*ports.TransportResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.TransportResponse), args.Error(1)
}

// ReplyWith returns a transport response carrying body with status 200
func ReplyWith(body string) *ports.TransportResponse {
	return &ports.TransportResponse{StatusCode: 200, Body: []byte(body)}
}
