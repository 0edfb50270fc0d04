package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kevin07696/pxpost/internal/domain"
)

// MockAuditStore is a testify mock of ports.AuditStore
type MockAuditStore struct {
	mock.Mock
}

func (m *MockAuditStore) Create(ctx context.Context, txn *domain.OrderTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockAuditStore) CountByOrderAndType(ctx context.Context, orderNumber string, txnType domain.TxnType) (int, error) {
	args := m.Called(ctx, orderNumber, txnType)
	return args.Int(0), args.Error(1)
}

func (m *MockAuditStore) ListByOrder(ctx context.Context, orderNumber string) ([]*domain.OrderTransaction, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.OrderTransaction), args.Error(1)
}
