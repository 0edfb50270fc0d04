package pxpost

import (
	"github.com/kevin07696/pxpost/internal/domain"
)

// Field is the semantic name of a PXPost request field
type Field string

const (
	// Authentication
	FieldUsername Field = "username"
	FieldPassword Field = "password"

	// Transaction metadata
	FieldAmount      Field = "amount"
	FieldCurrency    Field = "currency"
	FieldTxnType     Field = "txn_type"
	FieldMerchantRef Field = "merchant_ref"
	FieldTxnID       Field = "txn_id"

	// Card details
	FieldCardHolder    Field = "card_holder"
	FieldCardNumber    Field = "card_number"
	FieldCvc2          Field = "cvc2"
	FieldCardIssueDate Field = "card_issue_date"
	FieldCardExpiry    Field = "card_expiry"
	FieldTrack2        Field = "track2"
	FieldIssueNumber   Field = "issue_number"

	// Billing and on-file identifiers
	FieldBillingID         Field = "billing_id"
	FieldDpsBillingID      Field = "dps_billing_id"
	FieldDpsTxnRef         Field = "dps_txn_ref"
	FieldEnableAddBillCard Field = "enable_add_bill_card"

	// Merchant defined data
	FieldTxnData1 Field = "txn_data1"
	FieldTxnData2 Field = "txn_data2"
	FieldTxnData3 Field = "txn_data3"

	// Address verification
	FieldEnableAvs        Field = "enable_avs"
	FieldAvsAction        Field = "avs_action"
	FieldAvsPostcode      Field = "avs_postcode"
	FieldAvsStreetAddress Field = "avs_street_address"
)

// fieldTable lists every registered field in document order
var fieldTable = []struct {
	field Field
	wire  string
}{
	{FieldUsername, "PostUsername"},
	{FieldPassword, "PostPassword"},
	{FieldCardHolder, "CardHolderName"},
	{FieldCardNumber, "CardNumber"},
	{FieldAmount, "Amount"},
	{FieldCardIssueDate, "DateStart"},
	{FieldCardExpiry, "DateExpiry"},
	{FieldIssueNumber, "IssueNumber"},
	{FieldTrack2, "Track2"},
	{FieldCvc2, "Cvc2"},
	{FieldCurrency, "InputCurrency"},
	{FieldTxnType, "TxnType"},
	{FieldTxnID, "TxnId"},
	{FieldMerchantRef, "MerchantReference"},
	{FieldBillingID, "BillingId"},
	{FieldDpsBillingID, "DpsBillingId"},
	{FieldDpsTxnRef, "DpsTxnRef"},
	{FieldEnableAddBillCard, "EnableAddBillCard"},
	{FieldTxnData1, "TxnData1"},
	{FieldTxnData2, "TxnData2"},
	{FieldTxnData3, "TxnData3"},
	{FieldEnableAvs, "EnableAvsData"},
	{FieldAvsAction, "AvsAction"},
	{FieldAvsPostcode, "AvsPostCode"},
	{FieldAvsStreetAddress, "AvsStreetAddress"},
}

var (
	wireNames  = make(map[Field]string, len(fieldTable))
	fieldNames = make(map[string]Field, len(fieldTable))
	fieldOrder = make(map[Field]int, len(fieldTable))
)

func init() {
	for i, entry := range fieldTable {
		wireNames[entry.field] = entry.wire
		fieldNames[entry.wire] = entry.field
		fieldOrder[entry.field] = i
	}
}

// WireName returns the XML element name for a semantic field
func WireName(f Field) (string, error) {
	name, ok := wireNames[f]
	if !ok {
		return "", domain.UnknownField(string(f))
	}
	return name, nil
}

// FieldForWireName is the reverse lookup of WireName
func FieldForWireName(wire string) (Field, error) {
	f, ok := fieldNames[wire]
	if !ok {
		return "", domain.UnknownField(wire)
	}
	return f, nil
}

// ParseField validates a semantic field name supplied as a plain string
func ParseField(name string) (Field, error) {
	f := Field(name)
	if _, ok := wireNames[f]; !ok {
		return "", domain.UnknownField(name)
	}
	return f, nil
}

// FieldSet maps semantic fields to their scalar values. A field that was
// never set is absent from the serialized document.
type FieldSet map[Field]string

// Set assigns a value to a field
func (s FieldSet) Set(f Field, value string) FieldSet {
	s[f] = value
	return s
}

// SetIfNotEmpty assigns a value only when it is non-empty
func (s FieldSet) SetIfNotEmpty(f Field, value string) FieldSet {
	if value != "" {
		s[f] = value
	}
	return s
}

// Has reports whether a field was set, even to an empty value
func (s FieldSet) Has(f Field) bool {
	_, ok := s[f]
	return ok
}

// Clone returns a shallow copy of the set
func (s FieldSet) Clone() FieldSet {
	out := make(FieldSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
