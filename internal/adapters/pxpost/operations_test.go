package pxpost

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kevin07696/pxpost/internal/domain"
)

func TestOperations_Table(t *testing.T) {
	tests := []struct {
		op        Operation
		name      string
		txnType   domain.TxnType
		auditType domain.TxnType
		required  []Field
	}{
		{OperationAuthorise, "authorise", domain.TxnTypeAuth, domain.TxnTypeAuth,
			[]Field{FieldCardHolder, FieldCardNumber, FieldCvc2}},
		{OperationComplete, "complete", domain.TxnTypeComplete, domain.TxnTypeComplete,
			[]Field{FieldDpsTxnRef}},
		{OperationPurchaseNewCard, "purchase_new_card", domain.TxnTypePurchase, domain.TxnTypePurchase,
			[]Field{FieldCardHolder, FieldCardNumber, FieldCardExpiry, FieldCvc2, FieldMerchantRef, FieldEnableAddBillCard}},
		{OperationPurchaseOnFile, "purchase_on_file", domain.TxnTypePurchase, domain.TxnTypePurchase,
			[]Field{FieldDpsBillingID}},
		{OperationRefund, "refund", domain.TxnTypeRefund, domain.TxnTypeRefund,
			[]Field{FieldDpsTxnRef, FieldMerchantRef}},
		{OperationValidate, "validate", domain.TxnTypeAuth, domain.TxnTypeValidate,
			[]Field{FieldCardHolder, FieldCardNumber, FieldCvc2, FieldCardExpiry}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.op.String())
			assert.Equal(t, tt.txnType, tt.op.TxnType())
			assert.Equal(t, tt.auditType, tt.op.AuditType())
			assert.Equal(t, tt.required, tt.op.RequiredFields())
		})
	}
}

func TestOperation_RequiredFieldsIsACopy(t *testing.T) {
	fields := OperationComplete.RequiredFields()
	fields[0] = FieldTrack2
	assert.Equal(t, []Field{FieldDpsTxnRef}, OperationComplete.RequiredFields())
}

func TestOperation_Unknown(t *testing.T) {
	op := Operation(99)
	assert.Equal(t, "unknown", op.String())
	assert.Empty(t, op.TxnType())
	assert.Nil(t, op.RequiredFields())
}

func TestPurchaseOperation(t *testing.T) {
	assert.Equal(t, OperationPurchaseOnFile, PurchaseOperation(FieldSet{FieldDpsBillingID: "0000080023225598"}))
	assert.Equal(t, OperationPurchaseNewCard, PurchaseOperation(FieldSet{FieldDpsBillingID: ""}))
	assert.Equal(t, OperationPurchaseNewCard, PurchaseOperation(FieldSet{FieldCardNumber: "4111111111111111"}))
}
