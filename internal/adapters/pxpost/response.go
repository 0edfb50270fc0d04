package pxpost

import (
	"encoding/xml"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/kevin07696/pxpost/internal/domain"
)

// emptyDocument is what the gateway sends when it has nothing to say
const emptyDocument = `<?xml version="1.0" ?>`

var (
	errNoRoot          = errors.New("no root element")
	errMultipleRoots   = errors.New("more than one root element")
	errTextOutsideRoot = errors.New("text outside the root element")
)

// Response holds the fields extracted from a PXPost reply.
//
// Present is false when the gateway returned no document at all. A present
// response may still have every field empty; callers must not treat the two
// cases alike.
type Response struct {
	Present bool

	// Attributes of the Transaction element
	Success      int
	ResponseCode string
	ResponseText string

	Authorized             int
	AuthCode               string
	TxnRef                 string
	DpsTxnRef              string
	CardHolderHelpText     string
	HelpText               string
	CardHolderResponseText string
	DpsBillingID           string

	RawXML string
}

// NoResponse returns the absent-response variant
func NoResponse(raw string) *Response {
	return &Response{RawXML: raw}
}

// elements extracted by text content; the first occurrence in document order wins
var responseElements = map[string]func(*Response, string){
	"Authorized":             func(r *Response, v string) { r.Authorized = parseFlag(v) },
	"AuthCode":               func(r *Response, v string) { r.AuthCode = v },
	"TxnRef":                 func(r *Response, v string) { r.TxnRef = v },
	"DpsTxnRef":              func(r *Response, v string) { r.DpsTxnRef = v },
	"CardHolderHelpText":     func(r *Response, v string) { r.CardHolderHelpText = v },
	"HelpText":               func(r *Response, v string) { r.HelpText = v },
	"CardHolderResponseText": func(r *Response, v string) { r.CardHolderResponseText = v },
	"DpsBillingId":           func(r *Response, v string) { r.DpsBillingID = v },
}

// ParseResponse extracts the known fields from a gateway reply. Missing
// elements and attributes leave their field at the zero value; only a
// document that is not well-formed is an error.
func ParseResponse(raw string) (*Response, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == emptyDocument {
		return NoResponse(raw), nil
	}

	resp := &Response{Present: true, RawXML: raw}
	seen := make(map[string]bool, len(responseElements)+1)

	dec := xml.NewDecoder(strings.NewReader(trimmed))
	depth, roots := 0, 0
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, domain.MalformedResponse(err)
		}

		var start xml.StartElement
		switch t := tok.(type) {
		case xml.StartElement:
			start = t
		case xml.EndElement:
			depth--
			continue
		case xml.CharData:
			if depth == 0 && len(strings.TrimSpace(string(t))) > 0 {
				return nil, domain.MalformedResponse(errTextOutsideRoot)
			}
			continue
		default:
			continue
		}

		if depth == 0 {
			roots++
			if roots > 1 {
				return nil, domain.MalformedResponse(errMultipleRoots)
			}
		}
		depth++
		name := start.Name.Local

		if name == "Transaction" && !seen[name] {
			seen[name] = true
			readTransactionAttrs(resp, start.Attr)
			continue
		}

		set, wanted := responseElements[name]
		if !wanted || seen[name] {
			continue
		}
		var text struct {
			Value string `xml:",chardata"`
		}
		// DecodeElement consumes the matching end element
		if err := dec.DecodeElement(&text, &start); err != nil {
			return nil, domain.MalformedResponse(err)
		}
		depth--
		seen[name] = true
		set(resp, strings.TrimSpace(text.Value))
	}

	if roots == 0 {
		return nil, domain.MalformedResponse(errNoRoot)
	}

	return resp, nil
}

func readTransactionAttrs(resp *Response, attrs []xml.Attr) {
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "success":
			resp.Success = parseFlag(attr.Value)
		case "reco":
			resp.ResponseCode = attr.Value
		case "responseText":
			resp.ResponseText = attr.Value
		}
	}
}

func parseFlag(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0
	}
	return n
}

// IsSuccessful reports whether the gateway approved and authorized the transaction
func (r *Response) IsSuccessful() bool {
	return r.Present && r.Success == 1 && r.Authorized == 1
}

// IsDeclined reports whether the gateway explicitly declined the cardholder
func (r *Response) IsDeclined() bool {
	return r.Present &&
		r.Success != 1 &&
		r.Authorized != 1 &&
		strings.HasPrefix(r.CardHolderResponseText, "DECLINED")
}

// Message returns the most specific help text available
func (r *Response) Message() string {
	if !r.Present {
		return NoResponseMessage
	}
	if r.CardHolderHelpText != "" {
		return r.CardHolderHelpText
	}
	if r.HelpText != "" {
		return r.HelpText
	}
	return NoResponseMessage
}
