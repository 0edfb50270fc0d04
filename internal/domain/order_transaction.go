package domain

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kevin07696/pxpost/pkg/timeutil"
)

// TxnType is the PXPost transaction type an audit record was created for
type TxnType string

const (
	TxnTypeAuth     TxnType = "Auth"
	TxnTypeComplete TxnType = "Complete"
	TxnTypePurchase TxnType = "Purchase"
	TxnTypeRefund   TxnType = "Refund"
	TxnTypeValidate TxnType = "Validate"
)

// Column limits of the order_transactions table
const (
	MaxOrderNumberLength     = 128
	MaxTxnRefLength          = 16
	MaxResponseCodeLength    = 2
	MaxResponseMessageLength = 255
)

var (
	cardNumberPattern = regexp.MustCompile(`<CardNumber>[^<]*</CardNumber>`)
	track2Pattern     = regexp.MustCompile(`<Track2>[^<]*</Track2>`)
	cvc2Pattern       = regexp.MustCompile(`<Cvc2>[^<]*</Cvc2>`)
	passwordPattern   = regexp.MustCompile(`<PostPassword>[^<]*</PostPassword>`)

	// catches card numbers outside the elements above
	digitRunPattern = regexp.MustCompile(`\b\d{12,19}\b`)
)

// SanitizeRequestXML masks card numbers, track data, security codes and the
// gateway password. Element contents are replaced whole, whatever their
// formatting. The transformation is irreversible and idempotent.
func SanitizeRequestXML(requestXML string) string {
	out := cardNumberPattern.ReplaceAllString(requestXML, "<CardNumber>XXXXXXXXXXXX</CardNumber>")
	out = track2Pattern.ReplaceAllString(out, "<Track2>XXXXXXXXXXXX</Track2>")
	out = cvc2Pattern.ReplaceAllString(out, "<Cvc2>XXX</Cvc2>")
	out = passwordPattern.ReplaceAllString(out, "<PostPassword>XXX</PostPassword>")
	out = digitRunPattern.ReplaceAllString(out, "XXXXXXXXXXXX")
	return out
}

// OrderTransaction is the immutable audit record of one gateway exchange.
// There is no order foreign key: the order usually does not exist yet when
// the payment is taken.
type OrderTransaction struct {
	ID              uuid.UUID
	OrderNumber     string
	TxnType         TxnType
	TxnRef          string
	Amount          decimal.Decimal
	ResponseCode    string
	ResponseMessage string
	RequestXML      string
	ResponseXML     string
	CreatedAt       time.Time
}

// OrderTransactionParams holds the raw values captured after an exchange
type OrderTransactionParams struct {
	OrderNumber     string
	TxnType         TxnType
	TxnRef          string
	Amount          decimal.Decimal
	ResponseCode    string
	ResponseMessage string
	RequestXML      string
	ResponseXML     string
}

// NewOrderTransaction creates an audit record, sanitizing the request XML
func NewOrderTransaction(p OrderTransactionParams) *OrderTransaction {
	return &OrderTransaction{
		ID:              uuid.New(),
		OrderNumber:     p.OrderNumber,
		TxnType:         p.TxnType,
		TxnRef:          truncateRunes(p.TxnRef, MaxTxnRefLength),
		Amount:          p.Amount,
		ResponseCode:    truncateRunes(p.ResponseCode, MaxResponseCodeLength),
		ResponseMessage: truncateRunes(p.ResponseMessage, MaxResponseMessageLength),
		RequestXML:      SanitizeRequestXML(p.RequestXML),
		ResponseXML:     p.ResponseXML,
		CreatedAt:       timeutil.Now(),
	}
}

// String returns a one-line summary of the record
func (t *OrderTransaction) String() string {
	return fmt.Sprintf("%s txn for order %s - ref: %s, message: %s",
		t.TxnType, t.OrderNumber, t.TxnRef, t.ResponseMessage)
}

// PrettyRequestXML returns the sanitized request indented with tabs
func (t *OrderTransaction) PrettyRequestXML() (string, error) {
	return PrettyPrintXML(t.RequestXML)
}

// PrettyResponseXML returns the raw response indented with tabs
func (t *OrderTransaction) PrettyResponseXML() (string, error) {
	return PrettyPrintXML(t.ResponseXML)
}

// PrettyPrintXML re-indents an XML document with one tab per level.
// Whitespace-only text between elements is dropped.
func PrettyPrintXML(doc string) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(doc))
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "\t")

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse xml: %w", err)
		}

		switch v := tok.(type) {
		case xml.CharData:
			text := strings.TrimSpace(string(v))
			if text == "" {
				continue
			}
			tok = xml.CharData(text)
		case xml.ProcInst:
			// The encoder only accepts a declaration as the very first token
			if v.Target == "xml" && buf.Len() > 0 {
				continue
			}
		case xml.Comment, xml.Directive:
			continue
		}

		if err := enc.EncodeToken(xml.CopyToken(tok)); err != nil {
			return "", fmt.Errorf("encode xml: %w", err)
		}
	}

	if err := enc.Flush(); err != nil {
		return "", fmt.Errorf("flush xml: %w", err)
	}
	return buf.String(), nil
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
