package ports

import (
	"context"

	"github.com/kevin07696/pxpost/internal/domain"
)

// AuditStore persists gateway audit records.
// Records are insert-only: implementations never update or delete them, so
// concurrent writers need no coordination beyond the store's own consistency.
type AuditStore interface {
	// Create inserts a record. The request XML must already be sanitized;
	// implementations sanitize again before writing.
	Create(ctx context.Context, txn *domain.OrderTransaction) error

	// CountByOrderAndType returns how many records exist for an order and
	// transaction type. Used to number merchant references.
	CountByOrderAndType(ctx context.Context, orderNumber string, txnType domain.TxnType) (int, error)

	// ListByOrder returns an order's records, newest first
	ListByOrder(ctx context.Context, orderNumber string) ([]*domain.OrderTransaction, error)
}
