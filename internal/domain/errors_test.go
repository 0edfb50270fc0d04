package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_IsMatchesByCode(t *testing.T) {
	err := MissingField("card_number")

	assert.True(t, errors.Is(err, ErrMissingField))
	assert.False(t, errors.Is(err, ErrInvalidFormat))

	wrapped := fmt.Errorf("build request: %w", err)
	assert.True(t, errors.Is(wrapped, ErrMissingField))
	assert.Equal(t, "card_number", FieldOf(wrapped))
}

func TestDomainError_Error(t *testing.T) {
	assert.Equal(t, "INPUT_AMOUNT_REQUIRED: order amount must be non-zero", ErrAmountRequired.Error())

	cause := errors.New("unexpected EOF")
	err := MalformedResponse(cause)
	assert.Equal(t, "GATEWAY_MALFORMED_RESPONSE: gateway response is not well-formed XML: unexpected EOF", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestDomainError_Constructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *DomainError
		sentinel error
		field    string
		contains string
	}{
		{"unknown field", UnknownField("colour"), ErrUnknownField, "colour", `unknown field "colour"`},
		{"missing field", MissingField("cvc2"), ErrMissingField, "cvc2", `you must provide a "cvc2" field`},
		{"invalid format", InvalidFormat("card_expiry", "13/25", "MMYY"), ErrInvalidFormat, "card_expiry", "expected MMYY"},
		{"declined", UnableToTakePayment("card declined"), ErrUnableToTakePayment, "", "card declined"},
		{"gateway", InvalidGatewayRequest("Invalid Card Number"), ErrInvalidGatewayRequest, "", "Invalid Card Number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.Equal(t, tt.field, FieldOf(tt.err))
			assert.Contains(t, tt.err.Error(), tt.contains)
		})
	}
}

func TestDomainError_Categories(t *testing.T) {
	assert.True(t, IsCallerInputError(ErrBillingIDOrCardRequired))
	assert.True(t, IsCallerInputError(ErrOrderNumberTooLong))
	assert.False(t, IsCallerInputError(ErrMissingField))

	assert.True(t, IsValidationError(InvalidFormat("amount", "x", "a decimal")))
	assert.False(t, IsValidationError(ErrDatabaseError))

	assert.True(t, IsGatewayError(UnableToTakePayment("no")))
	assert.True(t, IsGatewayError(MalformedResponse(errors.New("eof"))))
	assert.False(t, IsGatewayError(errors.New("plain")))

	assert.Equal(t, ErrorCodeSecretError, GetErrorCode(fmt.Errorf("load: %w", ErrSecretError)))
	assert.Equal(t, ErrorCode(""), GetErrorCode(errors.New("plain")))
	assert.True(t, IsDomainError(WrapError(ErrorCodeDatabaseError, "insert", errors.New("x")), ErrorCodeDatabaseError))
}

func TestFieldOf_NonDomainError(t *testing.T) {
	assert.Empty(t, FieldOf(errors.New("plain")))
	assert.Empty(t, FieldOf(nil))
}
