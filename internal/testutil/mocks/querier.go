package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kevin07696/pxpost/internal/db/sqlc"
)

// MockQuerier provides a mock implementation of sqlc.Querier
type MockQuerier struct {
	mock.Mock
}

var _ sqlc.Querier = (*MockQuerier)(nil)

func (m *MockQuerier) CountOrderTransactionsByType(ctx context.Context, arg sqlc.CountOrderTransactionsByTypeParams) (int64, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuerier) CreateOrderTransaction(ctx context.Context, arg sqlc.CreateOrderTransactionParams) error {
	args := m.Called(ctx, arg)
	return args.Error(0)
}

func (m *MockQuerier) ListOrderTransactionsByOrder(ctx context.Context, orderNumber string) ([]sqlc.OrderTransaction, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sqlc.OrderTransaction), args.Error(1)
}
