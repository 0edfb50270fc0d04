package pxpost

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevin07696/pxpost/internal/domain"
	"github.com/kevin07696/pxpost/internal/testutil/fixtures"
)

func newTestBuilder() *RequestBuilder {
	return NewRequestBuilder("TestUsername", "TestPassword", "AUD")
}

func newCardFields() FieldSet {
	card := fixtures.ValidBankcard()
	return FieldSet{
		FieldAmount:            "1.23",
		FieldCardHolder:        card.HolderName,
		FieldCardNumber:        card.Number,
		FieldCardExpiry:        card.ExpiryDate,
		FieldCvc2:              card.CVV,
		FieldMerchantRef:       "1000_PURCHASE_1_4242",
		FieldEnableAddBillCard: "1",
		FieldDpsTxnRef:         "000000030884cdc6",
		FieldDpsBillingID:      "0000080023225598",
	}
}

func TestBuild_SerializesFields(t *testing.T) {
	req, err := newTestBuilder().Build(domain.TxnTypePurchase, newCardFields(), OperationPurchaseNewCard.RequiredFields())
	require.NoError(t, err)

	doc := req.XML()
	assert.True(t, strings.HasPrefix(doc, "<Txn>"))
	assert.True(t, strings.HasSuffix(doc, "</Txn>"))
	assert.Contains(t, doc, "<CardHolderName>Frankie</CardHolderName>")
	assert.Contains(t, doc, "<PostUsername>TestUsername</PostUsername>")
	assert.Contains(t, doc, "<PostPassword>TestPassword</PostPassword>")
	assert.Contains(t, doc, "<InputCurrency>AUD</InputCurrency>")
	assert.Contains(t, doc, "<TxnType>Purchase</TxnType>")
	assert.Contains(t, doc, "<Amount>1.23</Amount>")
	assert.NotContains(t, doc, "<DateStart>")

	assert.Equal(t, domain.TxnTypePurchase, req.TxnType())
	v, ok := req.Value(FieldMerchantRef)
	assert.True(t, ok)
	assert.Equal(t, "1000_PURCHASE_1_4242", v)
}

func TestBuild_RoundTripsThroughParser(t *testing.T) {
	req, err := newTestBuilder().Build(domain.TxnTypeAuth, newCardFields(), OperationAuthorise.RequiredFields())
	require.NoError(t, err)

	resp, err := ParseResponse(req.XML())
	require.NoError(t, err)
	assert.True(t, resp.Present)
	assert.Equal(t, "000000030884cdc6", resp.DpsTxnRef)
	assert.Equal(t, "0000080023225598", resp.DpsBillingID)
}

func TestBuild_EmptyValueIsAnEmptyElement(t *testing.T) {
	fields := newCardFields()
	fields[FieldTxnData1] = ""

	req, err := newTestBuilder().Build(domain.TxnTypeAuth, fields, nil)
	require.NoError(t, err)
	assert.Contains(t, req.XML(), "<TxnData1></TxnData1>")
}

func TestBuild_EscapesValues(t *testing.T) {
	fields := newCardFields()
	fields[FieldCardHolder] = "Smith & <Sons>"

	req, err := newTestBuilder().Build(domain.TxnTypeAuth, fields, nil)
	require.NoError(t, err)
	assert.Contains(t, req.XML(), "<CardHolderName>Smith &amp; &lt;Sons&gt;</CardHolderName>")

	resp, err := ParseResponse(req.XML())
	require.NoError(t, err)
	assert.True(t, resp.Present)
}

func TestBuild_MissingRequiredField(t *testing.T) {
	ops := []Operation{
		OperationAuthorise,
		OperationComplete,
		OperationPurchaseNewCard,
		OperationPurchaseOnFile,
		OperationRefund,
		OperationValidate,
	}

	for _, op := range ops {
		for _, missing := range append(op.RequiredFields(), FieldAmount) {
			t.Run(op.String()+"/"+string(missing), func(t *testing.T) {
				fields := newCardFields()
				delete(fields, missing)

				req, err := newTestBuilder().Build(op.TxnType(), fields, op.RequiredFields())
				require.Error(t, err)
				assert.Nil(t, req)
				assert.True(t, errors.Is(err, domain.ErrMissingField))
				assert.Equal(t, string(missing), domain.FieldOf(err))
			})
		}
	}
}

func TestBuild_RequiredFieldMayBeEmpty(t *testing.T) {
	fields := newCardFields()
	fields[FieldCvc2] = ""

	_, err := newTestBuilder().Build(domain.TxnTypeAuth, fields, OperationAuthorise.RequiredFields())
	assert.NoError(t, err)
}

func TestBuild_Currency(t *testing.T) {
	tests := []struct {
		currency string
		wantErr  bool
	}{
		{"AUD", false},
		{"NZD", false},
		{"aud", true},
		{"AU", true},
		{"AUDD", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.currency, func(t *testing.T) {
			_, err := NewRequestBuilder("u", "p", tt.currency).Build(domain.TxnTypeAuth, newCardFields(), nil)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrInvalidFormat))
				assert.Equal(t, string(FieldCurrency), domain.FieldOf(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestBuild_Dates(t *testing.T) {
	tests := []struct {
		name    string
		field   Field
		value   string
		wantErr bool
	}{
		{"expiry mmyy", FieldCardExpiry, "1015", false},
		{"expiry with slash", FieldCardExpiry, "10/15", true},
		{"expiry month 13", FieldCardExpiry, "1315", true},
		{"expiry month 00", FieldCardExpiry, "0015", true},
		{"expiry too long", FieldCardExpiry, "102015", true},
		{"expiry empty", FieldCardExpiry, "", false},
		{"issue date mmyy", FieldCardIssueDate, "0110", false},
		{"issue date with dash", FieldCardIssueDate, "01-10", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := newCardFields()
			fields[tt.field] = tt.value

			_, err := newTestBuilder().Build(domain.TxnTypeAuth, fields, nil)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrInvalidFormat))
				assert.Equal(t, string(tt.field), domain.FieldOf(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestBuild_Amount(t *testing.T) {
	tests := []struct {
		amount  string
		wantErr error
	}{
		{"1.23", nil},
		{"100", nil},
		{"-5.00", nil},
		{"0", domain.ErrInvalidAmount},
		{"0.00", domain.ErrInvalidAmount},
		{"ten dollars", domain.ErrInvalidFormat},
		{"", domain.ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			fields := newCardFields()
			fields[FieldAmount] = tt.amount

			_, err := newTestBuilder().Build(domain.TxnTypeAuth, fields, nil)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestBuild_UnknownField(t *testing.T) {
	fields := newCardFields()
	fields[Field("shoe_size")] = "10"

	_, err := newTestBuilder().Build(domain.TxnTypeAuth, fields, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownField))
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	fields := newCardFields()
	_, err := newTestBuilder().Build(domain.TxnTypeAuth, fields, nil)
	require.NoError(t, err)

	assert.False(t, fields.Has(FieldUsername))
	assert.False(t, fields.Has(FieldTxnType))
}

func TestRequest_BytesIsACopy(t *testing.T) {
	req, err := newTestBuilder().Build(domain.TxnTypeAuth, newCardFields(), nil)
	require.NoError(t, err)

	b := req.Bytes()
	b[0] = 'X'
	assert.True(t, strings.HasPrefix(req.XML(), "<Txn>"))
}
