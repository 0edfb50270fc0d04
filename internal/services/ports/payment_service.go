package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/kevin07696/pxpost/internal/domain"
)

// Result is what a successful payment operation returns
type Result struct {
	// DpsTxnRef of the approved transaction, needed for Complete and Refund
	TxnReference string

	// DpsBillingId of the stored card, when the gateway created one
	PartnerReference string
}

// PaymentService defines the business logic for card payments through PXPost.
// Declines are returned as domain.ErrUnableToTakePayment and gateway
// rejections as domain.ErrInvalidGatewayRequest.
type PaymentService interface {
	// Authorise reserves funds on a card for an order
	Authorise(ctx context.Context, orderNumber string, amount decimal.Decimal, card domain.Bankcard) (*Result, error)

	// Complete settles an authorisation
	Complete(ctx context.Context, orderNumber string, amount decimal.Decimal, dpsTxnRef string) (*Result, error)

	// Purchase charges a stored card (billingID) or a new card
	Purchase(ctx context.Context, orderNumber string, amount decimal.Decimal, billingID string, card *domain.Bankcard) (*Result, error)

	// Refund returns funds of a previous transaction
	Refund(ctx context.Context, orderNumber string, amount decimal.Decimal, dpsTxnRef string) (*Result, error)

	// Validate checks card details with a 1.00 authorisation
	Validate(ctx context.Context, card domain.Bankcard) (*Result, error)

	// History lists an order's audit records, newest first
	History(ctx context.Context, orderNumber string) ([]*domain.OrderTransaction, error)
}
