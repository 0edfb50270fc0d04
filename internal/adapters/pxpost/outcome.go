package pxpost

// Fixed messages surfaced to callers
const (
	NoResponseMessage = "unable to fulfill transaction"
	DeclinedMessage   = "card declined, check details and retry"
)

// OutcomeKind tags the result of one exchange
type OutcomeKind int

const (
	OutcomeGatewayError OutcomeKind = iota
	OutcomeSuccessful
	OutcomeDeclined
)

// String returns the kind's metric label
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccessful:
		return "successful"
	case OutcomeDeclined:
		return "declined"
	default:
		return "gateway_error"
	}
}

// Outcome is the classified result of one gateway exchange.
// TxnReference and BillingReference are only set for OutcomeSuccessful.
type Outcome struct {
	Kind             OutcomeKind
	TxnReference     string
	BillingReference string
	Message          string
}

// Classify decides success, decline or error from a parsed reply.
// Ambiguous replies are errors: they are never reported as a success
// or as a card decline.
func Classify(resp *Response) Outcome {
	switch {
	case resp == nil || !resp.Present:
		return Outcome{Kind: OutcomeGatewayError, Message: NoResponseMessage}
	case resp.IsSuccessful():
		return Outcome{
			Kind:             OutcomeSuccessful,
			TxnReference:     resp.DpsTxnRef,
			BillingReference: resp.DpsBillingID,
		}
	case resp.IsDeclined():
		return Outcome{Kind: OutcomeDeclined, Message: DeclinedMessage}
	default:
		return Outcome{Kind: OutcomeGatewayError, Message: resp.Message()}
	}
}
