// Package memory provides process-local adapters used by the CLI and tests.
package memory

import (
	"context"
	"sync"

	"github.com/kevin07696/pxpost/internal/adapters/ports"
	"github.com/kevin07696/pxpost/internal/domain"
)

// AuditStore keeps audit records in memory. Records are never mutated after insert.
type AuditStore struct {
	mu   sync.RWMutex
	txns []*domain.OrderTransaction
}

var _ ports.AuditStore = (*AuditStore)(nil)

// NewAuditStore creates an empty store
func NewAuditStore() *AuditStore {
	return &AuditStore{}
}

// Create appends a copy of the record with its request XML sanitized
func (s *AuditStore) Create(ctx context.Context, txn *domain.OrderTransaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	stored := *txn
	stored.RequestXML = domain.SanitizeRequestXML(txn.RequestXML)

	s.mu.Lock()
	s.txns = append(s.txns, &stored)
	s.mu.Unlock()
	return nil
}

// CountByOrderAndType returns the number of records for an order and type
func (s *AuditStore) CountByOrderAndType(ctx context.Context, orderNumber string, txnType domain.TxnType) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, txn := range s.txns {
		if txn.OrderNumber == orderNumber && txn.TxnType == txnType {
			count++
		}
	}
	return count, nil
}

// ListByOrder returns copies of an order's records, newest first
func (s *AuditStore) ListByOrder(ctx context.Context, orderNumber string) ([]*domain.OrderTransaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*domain.OrderTransaction{}
	for i := len(s.txns) - 1; i >= 0; i-- {
		if s.txns[i].OrderNumber == orderNumber {
			txn := *s.txns[i]
			out = append(out, &txn)
		}
	}
	return out, nil
}

// Len returns the total number of records
func (s *AuditStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.txns)
}
