package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kevin07696/pxpost/internal/adapters/database"
	"github.com/kevin07696/pxpost/internal/adapters/memory"
	"github.com/kevin07696/pxpost/internal/adapters/ports"
	"github.com/kevin07696/pxpost/internal/adapters/postgres"
	"github.com/kevin07696/pxpost/internal/adapters/pxpost"
	"github.com/kevin07696/pxpost/internal/adapters/secrets"
	"github.com/kevin07696/pxpost/internal/config"
	"github.com/kevin07696/pxpost/internal/domain"
	"github.com/kevin07696/pxpost/internal/services/payment"
	serviceports "github.com/kevin07696/pxpost/internal/services/ports"
	"github.com/kevin07696/pxpost/pkg/shutdown"
)

// Exit codes
const (
	exitOK       = 0
	exitFailure  = 1
	exitUsage    = 2
	exitDeclined = 3
	exitGateway  = 4
)

// Actions
const (
	actionAuthorise = "authorise"
	actionComplete  = "complete"
	actionPurchase  = "purchase"
	actionRefund    = "refund"
	actionValidate  = "validate"
	actionHistory   = "history"
)

type options struct {
	action      string
	orderNumber string
	amount      decimal.Decimal
	dpsTxnRef   string
	billingID   string
	card        domain.Bankcard
	showXML     bool
	envFile     string
}

func main() {
	opts, err := parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(exitOK)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsage)
	}

	if opts.envFile != "" {
		if err := godotenv.Load(opts.envFile); err != nil {
			fmt.Fprintf(os.Stderr, "load %s: %v\n", opts.envFile, err)
			os.Exit(exitUsage)
		}
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(exitUsage)
	}

	logger := initLogger(cfg.Logger)
	code := run(opts, cfg, logger, os.Stdout)
	_ = logger.Sync()
	os.Exit(code)
}

func run(opts *options, cfg *config.Config, logger *zap.Logger, out io.Writer) int {
	ctx, stop := shutdown.SignalContext(context.Background(), logger)
	defer stop()

	sm := shutdown.NewManager(logger, 10*time.Second)
	defer func() {
		if err := sm.Shutdown(); err != nil {
			logger.Warn("Shutdown completed with errors", zap.Error(err))
		}
	}()

	svc, err := initService(ctx, cfg, sm, logger)
	if err != nil {
		logger.Error("Failed to initialize payment service", zap.Error(err))
		return exitFailure
	}

	if opts.action == actionHistory {
		records, err := svc.History(ctx, opts.orderNumber)
		if err != nil {
			logger.Error("Failed to list order transactions", zap.Error(err))
			return exitFailure
		}
		if err := writeHistory(out, records, opts.showXML); err != nil {
			logger.Error("Failed to write history", zap.Error(err))
			return exitFailure
		}
		return exitOK
	}

	result, err := execute(ctx, svc, opts)
	if err != nil {
		logger.Error("Payment failed",
			zap.String("action", opts.action),
			zap.String("order_number", opts.orderNumber),
			zap.Error(err),
		)
		return exitCode(err)
	}

	if err := json.NewEncoder(out).Encode(result); err != nil {
		logger.Error("Failed to write result", zap.Error(err))
		return exitFailure
	}
	return exitOK
}

func execute(ctx context.Context, svc serviceports.PaymentService, opts *options) (*serviceports.Result, error) {
	switch opts.action {
	case actionAuthorise:
		return svc.Authorise(ctx, opts.orderNumber, opts.amount, opts.card)
	case actionComplete:
		return svc.Complete(ctx, opts.orderNumber, opts.amount, opts.dpsTxnRef)
	case actionPurchase:
		var card *domain.Bankcard
		if opts.card.Number != "" {
			card = &opts.card
		}
		return svc.Purchase(ctx, opts.orderNumber, opts.amount, opts.billingID, card)
	case actionRefund:
		return svc.Refund(ctx, opts.orderNumber, opts.amount, opts.dpsTxnRef)
	case actionValidate:
		return svc.Validate(ctx, opts.card)
	default:
		return nil, domain.ErrUnknownOperation
	}
}

func exitCode(err error) int {
	switch {
	case payment.IsPaymentDeclined(err):
		return exitDeclined
	case errors.Is(err, domain.ErrInvalidGatewayRequest):
		return exitGateway
	case domain.IsCallerInputError(err), domain.IsValidationError(err):
		return exitUsage
	default:
		return exitFailure
	}
}

func parseArgs(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("pxctl", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	var amount string
	fs.StringVar(&opts.action, "action", "", "authorise, complete, purchase, refund, validate or history")
	fs.StringVar(&opts.orderNumber, "order", "", "order number")
	fs.StringVar(&amount, "amount", "", "amount, e.g. 12.50")
	fs.StringVar(&opts.dpsTxnRef, "txn-ref", "", "DpsTxnRef of the transaction to complete or refund")
	fs.StringVar(&opts.billingID, "billing-id", "", "DpsBillingId of a stored card")
	fs.StringVar(&opts.card.HolderName, "card-holder", "", "cardholder name")
	fs.StringVar(&opts.card.Number, "card-number", "", "card number")
	fs.StringVar(&opts.card.ExpiryDate, "expiry", "", "expiry date, MMYY")
	fs.StringVar(&opts.card.StartDate, "start-date", "", "issue date, MMYY")
	fs.StringVar(&opts.card.IssueNumber, "issue-number", "", "card issue number")
	fs.StringVar(&opts.card.CVV, "cvv", "", "card security code")
	fs.BoolVar(&opts.showXML, "xml", false, "include request and response documents in history output")
	fs.StringVar(&opts.envFile, "env-file", "", "load environment variables from this file first")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	switch opts.action {
	case actionAuthorise, actionComplete, actionPurchase, actionRefund:
		if opts.orderNumber == "" {
			return nil, fmt.Errorf("-order is required for %s", opts.action)
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("invalid -amount %q: %w", amount, err)
		}
		opts.amount = d
	case actionHistory:
		if opts.orderNumber == "" {
			return nil, fmt.Errorf("-order is required for %s", opts.action)
		}
	case actionValidate:
	case "":
		return nil, errors.New("-action is required")
	default:
		return nil, fmt.Errorf("unknown action %q", opts.action)
	}

	if (opts.action == actionComplete || opts.action == actionRefund) && opts.dpsTxnRef == "" {
		return nil, fmt.Errorf("-txn-ref is required for %s", opts.action)
	}

	return opts, nil
}

func initService(ctx context.Context, cfg *config.Config, sm *shutdown.Manager, logger *zap.Logger) (*payment.Service, error) {
	password := cfg.Gateway.Password
	if password == "" {
		manager, err := secrets.NewSecretManager(ctx, cfg.Secrets.ManagerConfig(), logger)
		if err != nil {
			return nil, fmt.Errorf("create secret manager: %w", err)
		}
		password, err = secrets.ResolveValue(ctx, manager, cfg.Gateway.PasswordSecret)
		if err != nil {
			return nil, fmt.Errorf("resolve gateway password: %w", err)
		}
	}

	store, err := initAuditStore(ctx, cfg, sm, logger)
	if err != nil {
		return nil, err
	}

	transport := pxpost.NewHTTPTransport(cfg.Gateway.TransportConfig(), logger)
	gateway := pxpost.NewGateway(cfg.Gateway.PXPostConfig(password), transport, logger)

	return payment.NewService(gateway, store, logger), nil
}

func initAuditStore(ctx context.Context, cfg *config.Config, sm *shutdown.Manager, logger *zap.Logger) (ports.AuditStore, error) {
	if cfg.Audit.Store != config.AuditStorePostgres {
		logger.Debug("Using in-memory audit store")
		return memory.NewAuditStore(), nil
	}

	db, err := database.NewPostgreSQLAdapter(ctx, cfg.Database.PostgreSQLConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("connect audit database: %w", err)
	}
	sm.RegisterNoErr("database", db.Close)

	return postgres.NewAuditRepository(db.Queries(), db.QueryTimeout(), logger), nil
}

type historyEntry struct {
	ID              string    `json:"id"`
	OrderNumber     string    `json:"order_number"`
	TxnType         string    `json:"txn_type"`
	TxnRef          string    `json:"txn_ref"`
	Amount          string    `json:"amount"`
	ResponseCode    string    `json:"response_code"`
	ResponseMessage string    `json:"response_message"`
	CreatedAt       time.Time `json:"created_at"`
	RequestXML      string    `json:"request_xml,omitempty"`
	ResponseXML     string    `json:"response_xml,omitempty"`
}

func writeHistory(out io.Writer, records []*domain.OrderTransaction, showXML bool) error {
	entries := make([]historyEntry, 0, len(records))
	for _, r := range records {
		e := historyEntry{
			ID:              r.ID.String(),
			OrderNumber:     r.OrderNumber,
			TxnType:         string(r.TxnType),
			TxnRef:          r.TxnRef,
			Amount:          r.Amount.StringFixed(2),
			ResponseCode:    r.ResponseCode,
			ResponseMessage: r.ResponseMessage,
			CreatedAt:       r.CreatedAt,
		}
		if showXML {
			e.RequestXML = prettyOrRaw(r.PrettyRequestXML, r.RequestXML)
			e.ResponseXML = prettyOrRaw(r.PrettyResponseXML, r.ResponseXML)
		}
		entries = append(entries, e)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

func prettyOrRaw(pretty func() (string, error), raw string) string {
	if s, err := pretty(); err == nil {
		return s
	}
	return raw
}

func initLogger(cfg config.LoggerConfig) *zap.Logger {
	zapCfg := zap.NewProductionConfig()
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
	}
	// stdout carries results only
	zapCfg.OutputPaths = []string{"stderr"}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
