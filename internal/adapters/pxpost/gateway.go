package pxpost

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/kevin07696/pxpost/internal/adapters/ports"
	"github.com/kevin07696/pxpost/internal/domain"
)

// Config contains the merchant account the gateway posts as
type Config struct {
	// PXPost endpoint
	// Production: https://sec.paymentexpress.com/pxpost.aspx
	// UAT: https://uat.paymentexpress.com/pxpost.aspx
	URL string

	// PostUsername / PostPassword, also used as HTTP basic auth
	Username string
	Password string

	// ISO 4217 code sent as InputCurrency
	Currency string
}

// DefaultCurrency is used when no currency is configured
const DefaultCurrency = "AUD"

// ValidationAmount is the fixed amount of a card validation
var ValidationAmount = decimal.RequireFromString("1.00")

// Exchange is everything one call produced: the request that was sent,
// the parsed reply and its classification.
type Exchange struct {
	Operation Operation
	Request   *Request
	Response  *Response
	Outcome   Outcome
}

// Gateway runs build, send, parse and classify for each PXPost operation.
// Every call is exactly one request/response exchange.
type Gateway struct {
	url       string
	username  string
	password  string
	builder   *RequestBuilder
	transport ports.GatewayTransport
	logger    *zap.Logger
}

// NewGateway creates a gateway for one merchant account
func NewGateway(cfg Config, transport ports.GatewayTransport, logger *zap.Logger) *Gateway {
	if cfg.Currency == "" {
		cfg.Currency = DefaultCurrency
	}
	return &Gateway{
		url:       cfg.URL,
		username:  cfg.Username,
		password:  cfg.Password,
		builder:   NewRequestBuilder(cfg.Username, cfg.Password, cfg.Currency),
		transport: transport,
		logger:    logger,
	}
}

// Authorise reserves funds on a card. The authorisation must be completed
// within 7 days using Complete.
func (g *Gateway) Authorise(ctx context.Context, amount decimal.Decimal, fields FieldSet) (*Exchange, error) {
	return g.Do(ctx, OperationAuthorise, withAmount(fields, amount))
}

// Complete settles a previously approved authorisation identified by dps_txn_ref
func (g *Gateway) Complete(ctx context.Context, amount decimal.Decimal, fields FieldSet) (*Exchange, error) {
	return g.Do(ctx, OperationComplete, withAmount(fields, amount))
}

// Purchase transfers funds immediately, either from a card on file
// (dps_billing_id set) or from the card details supplied.
func (g *Gateway) Purchase(ctx context.Context, amount decimal.Decimal, fields FieldSet) (*Exchange, error) {
	return g.Do(ctx, PurchaseOperation(fields), withAmount(fields, amount))
}

// Refund returns funds of a previous transaction identified by dps_txn_ref
func (g *Gateway) Refund(ctx context.Context, amount decimal.Decimal, fields FieldSet) (*Exchange, error) {
	return g.Do(ctx, OperationRefund, withAmount(fields, amount))
}

// Validate runs a 1.00 authorisation to check card details including the
// expiry date, and asks the gateway to add the card to its billing database.
func (g *Gateway) Validate(ctx context.Context, fields FieldSet) (*Exchange, error) {
	f := withAmount(fields, ValidationAmount)
	f[FieldEnableAddBillCard] = "1"
	return g.Do(ctx, OperationValidate, f)
}

// Do performs one exchange for an operation
func (g *Gateway) Do(ctx context.Context, op Operation, fields FieldSet) (*Exchange, error) {
	if !op.valid() {
		return nil, domain.ErrUnknownOperation
	}

	req, err := g.builder.Build(op.TxnType(), fields, op.RequiredFields())
	if err != nil {
		recordResult(op, resultInvalidRequest)
		g.logger.Warn("Rejected PXPost request",
			zap.String("operation", op.String()),
			zap.Error(err),
		)
		return nil, err
	}

	merchantRef, _ := req.Value(FieldMerchantRef)
	amount, _ := req.Value(FieldAmount)
	g.logger.Info("Processing PXPost transaction",
		zap.String("operation", op.String()),
		zap.String("txn_type", string(op.TxnType())),
		zap.String("merchant_ref", merchantRef),
		zap.String("amount", amount),
	)

	startTime := time.Now()
	reply, err := g.transport.Post(ctx, &ports.TransportRequest{
		URL:      g.url,
		Username: g.username,
		Password: g.password,
		Body:     req.Bytes(),
	})
	gatewayRequestDuration.WithLabelValues(op.String()).Observe(time.Since(startTime).Seconds())
	if err != nil {
		recordResult(op, resultTransportError)
		return nil, fmt.Errorf("pxpost %s: %w", op, err)
	}

	resp, err := ParseResponse(string(reply.Body))
	if err != nil {
		recordResult(op, resultMalformed)
		g.logger.Error("Failed to parse PXPost response",
			zap.String("operation", op.String()),
			zap.Int("status_code", reply.StatusCode),
			zap.Error(err),
		)
		return nil, err
	}

	outcome := Classify(resp)
	recordResult(op, outcome.Kind.String())

	g.logger.Info("Processed PXPost transaction",
		zap.String("operation", op.String()),
		zap.Int("status_code", reply.StatusCode),
		zap.Duration("elapsed", time.Since(startTime)),
		zap.Bool("response_present", resp.Present),
		zap.String("response_code", resp.ResponseCode),
		zap.String("response_text", resp.ResponseText),
		zap.String("outcome", outcome.Kind.String()),
		zap.String("dps_txn_ref", resp.DpsTxnRef),
	)

	return &Exchange{
		Operation: op,
		Request:   req,
		Response:  resp,
		Outcome:   outcome,
	}, nil
}

func withAmount(fields FieldSet, amount decimal.Decimal) FieldSet {
	f := FieldSet{}
	if fields != nil {
		f = fields.Clone()
	}
	f[FieldAmount] = amount.StringFixed(2)
	return f
}
