package payment

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/kevin07696/pxpost/internal/adapters/ports"
	"github.com/kevin07696/pxpost/internal/adapters/pxpost"
	"github.com/kevin07696/pxpost/internal/domain"
	serviceports "github.com/kevin07696/pxpost/internal/services/ports"
)

// Service adds payment policy on top of the PXPost gateway: amount checks,
// merchant references, audit records and caller-facing errors.
type Service struct {
	gateway *pxpost.Gateway
	store   ports.AuditStore
	random  RandomSource
	logger  *zap.Logger
}

var _ serviceports.PaymentService = (*Service)(nil)

// Option configures a Service
type Option func(*Service)

// WithRandomSource replaces the merchant reference suffix generator
func WithRandomSource(r RandomSource) Option {
	return func(s *Service) {
		s.random = r
	}
}

// NewService creates a new payment service
func NewService(gateway *pxpost.Gateway, store ports.AuditStore, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		gateway: gateway,
		store:   store,
		random:  globalRand{},
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Authorise reserves funds on a card. The authorisation must be completed
// within 7 days.
func (s *Service) Authorise(ctx context.Context, orderNumber string, amount decimal.Decimal, card domain.Bankcard) (*serviceports.Result, error) {
	if err := checkOrder(orderNumber, amount); err != nil {
		return nil, err
	}

	s.logCard("authorise", orderNumber, card)
	fields := cardFields(card)
	fields[pxpost.FieldMerchantRef] = s.MerchantReference(ctx, orderNumber, domain.TxnTypeAuth)

	ex, err := s.gateway.Authorise(ctx, amount, fields)
	return s.finish(ctx, orderNumber, amount, ex, err)
}

// Complete settles an approved authorisation identified by its DpsTxnRef
func (s *Service) Complete(ctx context.Context, orderNumber string, amount decimal.Decimal, dpsTxnRef string) (*serviceports.Result, error) {
	if err := checkOrder(orderNumber, amount); err != nil {
		return nil, err
	}

	fields := pxpost.FieldSet{
		pxpost.FieldDpsTxnRef:   dpsTxnRef,
		pxpost.FieldMerchantRef: s.MerchantReference(ctx, orderNumber, domain.TxnTypeComplete),
	}

	ex, err := s.gateway.Complete(ctx, amount, fields)
	return s.finish(ctx, orderNumber, amount, ex, err)
}

// Purchase transfers funds immediately from a card stored at the gateway
// (billingID) or, when billingID is empty, from the supplied card, which the
// gateway is asked to store for later use.
func (s *Service) Purchase(ctx context.Context, orderNumber string, amount decimal.Decimal, billingID string, card *domain.Bankcard) (*serviceports.Result, error) {
	if err := checkOrder(orderNumber, amount); err != nil {
		return nil, err
	}

	var fields pxpost.FieldSet
	switch {
	case billingID != "":
		fields = pxpost.FieldSet{pxpost.FieldDpsBillingID: billingID}
	case card != nil:
		s.logCard("purchase", orderNumber, *card)
		fields = cardFields(*card)
		fields[pxpost.FieldEnableAddBillCard] = "1"
	default:
		return nil, domain.ErrBillingIDOrCardRequired
	}
	fields[pxpost.FieldMerchantRef] = s.MerchantReference(ctx, orderNumber, domain.TxnTypePurchase)

	ex, err := s.gateway.Purchase(ctx, amount, fields)
	return s.finish(ctx, orderNumber, amount, ex, err)
}

// Refund returns funds of a previous transaction identified by its DpsTxnRef
func (s *Service) Refund(ctx context.Context, orderNumber string, amount decimal.Decimal, dpsTxnRef string) (*serviceports.Result, error) {
	if err := checkOrder(orderNumber, amount); err != nil {
		return nil, err
	}

	fields := pxpost.FieldSet{
		pxpost.FieldDpsTxnRef:   dpsTxnRef,
		pxpost.FieldMerchantRef: s.MerchantReference(ctx, orderNumber, domain.TxnTypeRefund),
	}

	ex, err := s.gateway.Refund(ctx, amount, fields)
	return s.finish(ctx, orderNumber, amount, ex, err)
}

// Validate runs a 1.00 authorisation to check card details and adds the card
// to the gateway's billing database when approved. It is not tied to an order.
func (s *Service) Validate(ctx context.Context, card domain.Bankcard) (*serviceports.Result, error) {
	s.logCard("validate", "", card)
	ex, err := s.gateway.Validate(ctx, cardFields(card))
	return s.finish(ctx, "", pxpost.ValidationAmount, ex, err)
}

// History returns the audit records of an order, newest first
func (s *Service) History(ctx context.Context, orderNumber string) ([]*domain.OrderTransaction, error) {
	return s.store.ListByOrder(ctx, orderNumber)
}

// finish records the exchange and maps its outcome to a result or error
func (s *Service) finish(ctx context.Context, orderNumber string, amount decimal.Decimal, ex *pxpost.Exchange, err error) (*serviceports.Result, error) {
	if err != nil {
		return nil, err
	}

	if ex.Response.Present {
		s.record(ctx, orderNumber, amount, ex)
	}

	switch ex.Outcome.Kind {
	case pxpost.OutcomeSuccessful:
		return &serviceports.Result{
			TxnReference:     ex.Outcome.TxnReference,
			PartnerReference: ex.Outcome.BillingReference,
		}, nil
	case pxpost.OutcomeDeclined:
		return nil, domain.UnableToTakePayment(ex.Outcome.Message)
	default:
		return nil, domain.InvalidGatewayRequest(ex.Outcome.Message)
	}
}

// record writes the audit record of an exchange. A failed insert is logged
// and does not change the payment outcome: the gateway has already acted.
func (s *Service) record(ctx context.Context, orderNumber string, amount decimal.Decimal, ex *pxpost.Exchange) {
	txn := domain.NewOrderTransaction(domain.OrderTransactionParams{
		OrderNumber:     orderNumber,
		TxnType:         ex.Operation.AuditType(),
		TxnRef:          ex.Response.DpsTxnRef,
		Amount:          amount,
		ResponseCode:    ex.Response.ResponseCode,
		ResponseMessage: ex.Response.Message(),
		RequestXML:      ex.Request.XML(),
		ResponseXML:     ex.Response.RawXML,
	})

	if err := s.store.Create(ctx, txn); err != nil {
		s.logger.Error("Failed to record order transaction",
			zap.String("order_number", orderNumber),
			zap.String("txn_type", string(txn.TxnType)),
			zap.String("dps_txn_ref", txn.TxnRef),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("Recorded order transaction", zap.Stringer("txn", txn))
}

func (s *Service) logCard(action, orderNumber string, card domain.Bankcard) {
	s.logger.Debug("Charging card",
		zap.String("action", action),
		zap.String("order_number", orderNumber),
		zap.String("card_number", card.ObfuscatedNumber()),
	)
}

func checkOrder(orderNumber string, amount decimal.Decimal) error {
	if amount.IsZero() {
		return domain.ErrAmountRequired
	}
	if utf8.RuneCountInString(orderNumber) > domain.MaxOrderNumberLength {
		return domain.ErrOrderNumberTooLong
	}
	return nil
}

func cardFields(card domain.Bankcard) pxpost.FieldSet {
	fields := pxpost.FieldSet{
		pxpost.FieldCardHolder: card.HolderName,
		pxpost.FieldCardNumber: card.Number,
		pxpost.FieldCardExpiry: card.ExpiryDate,
		pxpost.FieldCvc2:       card.CVV,
	}
	fields.SetIfNotEmpty(pxpost.FieldCardIssueDate, card.StartDate)
	fields.SetIfNotEmpty(pxpost.FieldIssueNumber, card.IssueNumber)
	return fields
}

// IsPaymentDeclined reports whether err is a cardholder decline
func IsPaymentDeclined(err error) bool {
	return errors.Is(err, domain.ErrUnableToTakePayment)
}
