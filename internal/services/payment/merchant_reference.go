package payment

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"go.uber.org/zap"

	"github.com/kevin07696/pxpost/internal/domain"
)

// RandomSource supplies the random suffix of merchant references.
// Implementations must be safe for concurrent use.
type RandomSource interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int {
	return rand.IntN(n)
}

// MerchantReference builds the reference for the next attempt of an order's
// transaction type: <order>_<TYPE>_<attempt>_<4 random digits>. The attempt
// number counts prior audit records, and the suffix separates attempts whose
// predecessor crashed before being recorded.
func (s *Service) MerchantReference(ctx context.Context, orderNumber string, txnType domain.TxnType) string {
	previous, err := s.store.CountByOrderAndType(ctx, orderNumber, txnType)
	if err != nil {
		s.logger.Warn("Failed to count previous attempts, numbering from 1",
			zap.String("order_number", orderNumber),
			zap.String("txn_type", string(txnType)),
			zap.Error(err),
		)
		previous = 0
	}

	return fmt.Sprintf("%s_%s_%d_%04d",
		orderNumber,
		strings.ToUpper(string(txnType)),
		previous+1,
		s.random.IntN(10000),
	)
}
