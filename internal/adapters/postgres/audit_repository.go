package postgres

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kevin07696/pxpost/internal/adapters/ports"
	"github.com/kevin07696/pxpost/internal/db/sqlc"
	"github.com/kevin07696/pxpost/internal/domain"
	"github.com/kevin07696/pxpost/pkg/timeutil"
)

// AuditRepository implements ports.AuditStore over the order_transactions table
type AuditRepository struct {
	queries sqlc.Querier
	timeout time.Duration
	logger  *zap.Logger
}

var _ ports.AuditStore = (*AuditRepository)(nil)

// NewAuditRepository creates a repository. A zero timeout leaves statement
// deadlines to the caller's context.
func NewAuditRepository(queries sqlc.Querier, timeout time.Duration, logger *zap.Logger) *AuditRepository {
	return &AuditRepository{
		queries: queries,
		timeout: timeout,
		logger:  logger,
	}
}

func (r *AuditRepository) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

// Create inserts an audit record
func (r *AuditRepository) Create(ctx context.Context, txn *domain.OrderTransaction) error {
	amount, err := decimalToNumeric(txn.Amount)
	if err != nil {
		return err
	}

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	err = r.queries.CreateOrderTransaction(ctx, sqlc.CreateOrderTransactionParams{
		ID:              txn.ID,
		OrderNumber:     txn.OrderNumber,
		TxnType:         string(txn.TxnType),
		TxnRef:          nullText(txn.TxnRef),
		Amount:          amount,
		ResponseCode:    nullText(txn.ResponseCode),
		ResponseMessage: nullText(txn.ResponseMessage),
		RequestXml:      domain.SanitizeRequestXML(txn.RequestXML),
		ResponseXml:     txn.ResponseXML,
		CreatedAt:       timestamptz(txn.CreatedAt),
	})
	if err != nil {
		r.logger.Error("Failed to insert order transaction",
			zap.String("order_number", txn.OrderNumber),
			zap.String("txn_type", string(txn.TxnType)),
			zap.Error(err),
		)
		return domain.WrapError(domain.ErrorCodeDatabaseError, "create order transaction", err)
	}

	return nil
}

// CountByOrderAndType returns the number of records for an order and type
func (r *AuditRepository) CountByOrderAndType(ctx context.Context, orderNumber string, txnType domain.TxnType) (int, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	count, err := r.queries.CountOrderTransactionsByType(ctx, sqlc.CountOrderTransactionsByTypeParams{
		OrderNumber: orderNumber,
		TxnType:     string(txnType),
	})
	if err != nil {
		return 0, domain.WrapError(domain.ErrorCodeDatabaseError, "count order transactions", err)
	}
	return int(count), nil
}

// ListByOrder returns an order's records, newest first
func (r *AuditRepository) ListByOrder(ctx context.Context, orderNumber string) ([]*domain.OrderTransaction, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.queries.ListOrderTransactionsByOrder(ctx, orderNumber)
	if err != nil {
		return nil, domain.WrapError(domain.ErrorCodeDatabaseError, "list order transactions", err)
	}

	out := make([]*domain.OrderTransaction, 0, len(rows))
	for _, row := range rows {
		txn, err := toDomainModel(row)
		if err != nil {
			return nil, err
		}
		out = append(out, txn)
	}
	return out, nil
}

// toDomainModel converts a row to the domain record without re-sanitizing
func toDomainModel(row sqlc.OrderTransaction) (*domain.OrderTransaction, error) {
	amount, err := pgNumericToDecimal(row.Amount)
	if err != nil {
		return nil, fmt.Errorf("order transaction %s amount: %w", row.ID, err)
	}

	return &domain.OrderTransaction{
		ID:              row.ID,
		OrderNumber:     row.OrderNumber,
		TxnType:         domain.TxnType(row.TxnType),
		TxnRef:          row.TxnRef.String,
		Amount:          amount,
		ResponseCode:    row.ResponseCode.String,
		ResponseMessage: row.ResponseMessage.String,
		RequestXML:      row.RequestXml,
		ResponseXML:     row.ResponseXml,
		CreatedAt:       timeutil.ToUTC(row.CreatedAt.Time),
	}, nil
}
