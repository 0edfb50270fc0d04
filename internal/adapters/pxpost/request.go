package pxpost

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"regexp"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/kevin07696/pxpost/internal/domain"
)

// RootElement is the document element of every request and response
const RootElement = "Txn"

var (
	currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)
	mmyyPattern     = regexp.MustCompile(`^(0[1-9]|1[0-2])\d{2}$`)
)

// Request is a serialized PXPost request document
type Request struct {
	txnType domain.TxnType
	fields  FieldSet
	body    []byte
}

// TxnType returns the TxnType element the request was built with
func (r *Request) TxnType() domain.TxnType {
	return r.txnType
}

// Value returns the value of a field in the request
func (r *Request) Value(f Field) (string, bool) {
	v, ok := r.fields[f]
	return v, ok
}

// Bytes returns a copy of the serialized document
func (r *Request) Bytes() []byte {
	out := make([]byte, len(r.body))
	copy(out, r.body)
	return out
}

// XML returns the serialized document. It contains credentials and card
// data; sanitize it before logging or persisting.
func (r *Request) XML() string {
	return string(r.body)
}

// RequestBuilder validates field sets and serializes them into requests.
// It carries the merchant credentials and currency injected into every request.
type RequestBuilder struct {
	username string
	password string
	currency string
}

// NewRequestBuilder creates a builder for one set of merchant credentials
func NewRequestBuilder(username, password, currency string) *RequestBuilder {
	return &RequestBuilder{
		username: username,
		password: password,
		currency: currency,
	}
}

// Build validates fields against the required list and serializes the request.
// Amount is always required. Nothing is serialized unless every check passes.
func (b *RequestBuilder) Build(txnType domain.TxnType, fields FieldSet, required []Field) (*Request, error) {
	all := fields.Clone()
	all[FieldUsername] = b.username
	all[FieldPassword] = b.password
	all[FieldCurrency] = b.currency
	all[FieldTxnType] = string(txnType)

	if err := checkRequired(all, required); err != nil {
		return nil, err
	}
	if !currencyPattern.MatchString(b.currency) {
		return nil, domain.InvalidFormat(string(FieldCurrency), b.currency, "a three letter uppercase currency code")
	}
	if err := checkAmount(fields[FieldAmount]); err != nil {
		return nil, err
	}
	for _, f := range []Field{FieldCardIssueDate, FieldCardExpiry} {
		if v := fields[f]; v != "" && !mmyyPattern.MatchString(v) {
			return nil, domain.InvalidFormat(string(f), v, "MMYY")
		}
	}

	body, err := encodeFields(all)
	if err != nil {
		return nil, err
	}

	return &Request{
		txnType: txnType,
		fields:  all,
		body:    body,
	}, nil
}

func checkRequired(fields FieldSet, required []Field) error {
	for _, f := range required {
		if !fields.Has(f) {
			return domain.MissingField(string(f))
		}
	}
	if !fields.Has(FieldAmount) {
		return domain.MissingField(string(FieldAmount))
	}
	return nil
}

func checkAmount(value string) error {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return domain.InvalidFormat(string(FieldAmount), value, "a decimal amount")
	}
	if amount.IsZero() {
		return domain.ErrInvalidAmount
	}
	return nil
}

// encodeFields writes one child element per set field under the root
func encodeFields(fields FieldSet) ([]byte, error) {
	keys := make([]Field, 0, len(fields))
	for f := range fields {
		if _, err := WireName(f); err != nil {
			return nil, err
		}
		keys = append(keys, f)
	}
	sort.Slice(keys, func(i, j int) bool {
		return fieldOrder[keys[i]] < fieldOrder[keys[j]]
	})

	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	root := xml.StartElement{Name: xml.Name{Local: RootElement}}
	if err := enc.EncodeToken(root); err != nil {
		return nil, fmt.Errorf("encode %s: %w", RootElement, err)
	}
	for _, f := range keys {
		start := xml.StartElement{Name: xml.Name{Local: wireNames[f]}}
		if err := enc.EncodeToken(start); err != nil {
			return nil, fmt.Errorf("encode %s: %w", start.Name.Local, err)
		}
		if v := fields[f]; v != "" {
			if err := enc.EncodeToken(xml.CharData(v)); err != nil {
				return nil, fmt.Errorf("encode %s: %w", start.Name.Local, err)
			}
		}
		if err := enc.EncodeToken(start.End()); err != nil {
			return nil, fmt.Errorf("encode %s: %w", start.Name.Local, err)
		}
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return nil, fmt.Errorf("encode %s: %w", RootElement, err)
	}
	if err := enc.Flush(); err != nil {
		return nil, fmt.Errorf("flush request: %w", err)
	}
	return buf.Bytes(), nil
}
