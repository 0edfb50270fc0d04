package fixtures

import (
	"github.com/shopspring/decimal"

	"github.com/kevin07696/pxpost/internal/domain"
)

// OrderTransactionBuilder provides fluent API for building test audit records.
type OrderTransactionBuilder struct {
	params domain.OrderTransactionParams
}

// NewOrderTransaction creates a builder with an approved purchase as default.
func NewOrderTransaction() *OrderTransactionBuilder {
	return &OrderTransactionBuilder{
		params: domain.OrderTransactionParams{
			OrderNumber:     "1000",
			TxnType:         domain.TxnTypePurchase,
			TxnRef:          "0000000600fdd28e",
			Amount:          decimal.RequireFromString("1.23"),
			ResponseCode:    "00",
			ResponseMessage: "The Transaction was approved",
			RequestXML:      PurchaseRequest,
			ResponseXML:     SuccessfulResponse,
		},
	}
}

func (b *OrderTransactionBuilder) WithOrderNumber(orderNumber string) *OrderTransactionBuilder {
	b.params.OrderNumber = orderNumber
	return b
}

func (b *OrderTransactionBuilder) WithTxnType(txnType domain.TxnType) *OrderTransactionBuilder {
	b.params.TxnType = txnType
	return b
}

func (b *OrderTransactionBuilder) WithTxnRef(ref string) *OrderTransactionBuilder {
	b.params.TxnRef = ref
	return b
}

func (b *OrderTransactionBuilder) WithAmount(amount string) *OrderTransactionBuilder {
	b.params.Amount = decimal.RequireFromString(amount)
	return b
}

func (b *OrderTransactionBuilder) WithRequestXML(xml string) *OrderTransactionBuilder {
	b.params.RequestXML = xml
	return b
}

// Build returns the sanitized record.
func (b *OrderTransactionBuilder) Build() *domain.OrderTransaction {
	return domain.NewOrderTransaction(b.params)
}
