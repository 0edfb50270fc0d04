package pxpost

import (
	"github.com/kevin07696/pxpost/internal/domain"
)

// Operation identifies one of the request shapes the gateway accepts
type Operation int

const (
	OperationAuthorise Operation = iota
	OperationComplete
	OperationPurchaseNewCard
	OperationPurchaseOnFile
	OperationRefund
	OperationValidate

	operationCount
)

type operationSpec struct {
	name     string
	txnType  domain.TxnType // TxnType element sent on the wire
	auditAs  domain.TxnType // type recorded against the order
	required []Field
}

// operations is indexed by Operation; adding a constant without a row
// here fails to compile.
var operations = [operationCount]operationSpec{
	OperationAuthorise: {
		name:     "authorise",
		txnType:  domain.TxnTypeAuth,
		auditAs:  domain.TxnTypeAuth,
		required: []Field{FieldCardHolder, FieldCardNumber, FieldCvc2},
	},
	OperationComplete: {
		name:     "complete",
		txnType:  domain.TxnTypeComplete,
		auditAs:  domain.TxnTypeComplete,
		required: []Field{FieldDpsTxnRef},
	},
	OperationPurchaseNewCard: {
		name:    "purchase_new_card",
		txnType: domain.TxnTypePurchase,
		auditAs: domain.TxnTypePurchase,
		required: []Field{
			FieldCardHolder, FieldCardNumber, FieldCardExpiry, FieldCvc2,
			FieldMerchantRef, FieldEnableAddBillCard,
		},
	},
	OperationPurchaseOnFile: {
		name:     "purchase_on_file",
		txnType:  domain.TxnTypePurchase,
		auditAs:  domain.TxnTypePurchase,
		required: []Field{FieldDpsBillingID},
	},
	OperationRefund: {
		name:     "refund",
		txnType:  domain.TxnTypeRefund,
		auditAs:  domain.TxnTypeRefund,
		required: []Field{FieldDpsTxnRef, FieldMerchantRef},
	},
	OperationValidate: {
		name:     "validate",
		txnType:  domain.TxnTypeAuth,
		auditAs:  domain.TxnTypeValidate,
		required: []Field{FieldCardHolder, FieldCardNumber, FieldCvc2, FieldCardExpiry},
	},
}

func (o Operation) valid() bool {
	return o >= 0 && o < operationCount
}

// String returns the operation's log name
func (o Operation) String() string {
	if !o.valid() {
		return "unknown"
	}
	return operations[o].name
}

// TxnType returns the TxnType element value sent for this operation
func (o Operation) TxnType() domain.TxnType {
	if !o.valid() {
		return ""
	}
	return operations[o].txnType
}

// AuditType returns the transaction type recorded in the audit trail
func (o Operation) AuditType() domain.TxnType {
	if !o.valid() {
		return ""
	}
	return operations[o].auditAs
}

// RequiredFields returns the fields the caller must supply, beyond the baseline
func (o Operation) RequiredFields() []Field {
	if !o.valid() {
		return nil
	}
	out := make([]Field, len(operations[o].required))
	copy(out, operations[o].required)
	return out
}

// PurchaseOperation picks the purchase variant: on-file when a gateway
// billing id is supplied, new card otherwise.
func PurchaseOperation(fields FieldSet) Operation {
	if fields[FieldDpsBillingID] != "" {
		return OperationPurchaseOnFile
	}
	return OperationPurchaseNewCard
}
