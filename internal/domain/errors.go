package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a machine-readable error code
type ErrorCode string

const (
	// Caller Input Errors (INPUT_*)
	// Raised locally before any request is built
	ErrorCodeInputAmountRequired    ErrorCode = "INPUT_AMOUNT_REQUIRED"
	ErrorCodeInputBillingOrCard     ErrorCode = "INPUT_BILLING_ID_OR_CARD_REQUIRED"
	ErrorCodeInputUnknownField      ErrorCode = "INPUT_UNKNOWN_FIELD"
	ErrorCodeInputUnknownOperation  ErrorCode = "INPUT_UNKNOWN_OPERATION"
	ErrorCodeInputOrderNumberLength ErrorCode = "INPUT_ORDER_NUMBER_TOO_LONG"

	// Validation Errors (VALIDATION_*)
	// Raised by the request builder before any network call
	ErrorCodeValidationMissingField  ErrorCode = "VALIDATION_MISSING_FIELD"
	ErrorCodeValidationInvalidFormat ErrorCode = "VALIDATION_INVALID_FORMAT"
	ErrorCodeValidationAmountInvalid ErrorCode = "VALIDATION_AMOUNT_INVALID"

	// Payment Gateway Errors (GATEWAY_*)
	ErrorCodeGatewayMalformedResponse ErrorCode = "GATEWAY_MALFORMED_RESPONSE"
	ErrorCodeGatewayDeclined          ErrorCode = "GATEWAY_DECLINED"
	ErrorCodeGatewayInvalidRequest    ErrorCode = "GATEWAY_INVALID_REQUEST"

	// Internal Errors (INTERNAL_*)
	ErrorCodeDatabaseError ErrorCode = "INTERNAL_DATABASE_ERROR"
	ErrorCodeSecretError   ErrorCode = "INTERNAL_SECRET_ERROR"
)

// DomainError represents a structured domain error with error code and context
type DomainError struct {
	Err     error
	Details map[string]interface{}
	Code    ErrorCode
	Message string
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a DomainError carrying the same code.
// This lets errors.Is(err, ErrMissingField) match any missing-field error
// regardless of which field it names.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithDetail adds a detail field to the error
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewDomainError creates a new domain error
func NewDomainError(code ErrorCode, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// WrapError wraps an existing error with a domain error code
func WrapError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Err:     err,
	}
}

// IsDomainError checks if an error is a DomainError with the given code
func IsDomainError(err error, code ErrorCode) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error, returns empty string if not a DomainError
func GetErrorCode(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}

// IsCallerInputError checks if an error was caused by invalid caller input
func IsCallerInputError(err error) bool {
	code := GetErrorCode(err)
	return code == ErrorCodeInputAmountRequired ||
		code == ErrorCodeInputBillingOrCard ||
		code == ErrorCodeInputUnknownField ||
		code == ErrorCodeInputUnknownOperation ||
		code == ErrorCodeInputOrderNumberLength
}

// IsValidationError checks if an error is a request validation error
func IsValidationError(err error) bool {
	code := GetErrorCode(err)
	return code == ErrorCodeValidationMissingField ||
		code == ErrorCodeValidationInvalidFormat ||
		code == ErrorCodeValidationAmountInvalid
}

// IsGatewayError checks if an error originated from a gateway reply
func IsGatewayError(err error) bool {
	code := GetErrorCode(err)
	return code == ErrorCodeGatewayMalformedResponse ||
		code == ErrorCodeGatewayDeclined ||
		code == ErrorCodeGatewayInvalidRequest
}

// Sentinel instances for errors.Is comparisons. Never mutate these; build
// fresh errors with the constructors below when details are needed.
var (
	ErrAmountRequired          = NewDomainError(ErrorCodeInputAmountRequired, "order amount must be non-zero")
	ErrBillingIDOrCardRequired = NewDomainError(ErrorCodeInputBillingOrCard, "either a billing id or a bankcard must be supplied")
	ErrUnknownField            = NewDomainError(ErrorCodeInputUnknownField, "unknown field")
	ErrUnknownOperation        = NewDomainError(ErrorCodeInputUnknownOperation, "unknown operation")
	ErrOrderNumberTooLong      = NewDomainError(ErrorCodeInputOrderNumberLength, "order number is too long")

	ErrMissingField  = NewDomainError(ErrorCodeValidationMissingField, "required field missing")
	ErrInvalidFormat = NewDomainError(ErrorCodeValidationInvalidFormat, "invalid field format")
	ErrInvalidAmount = NewDomainError(ErrorCodeValidationAmountInvalid, "amount must be non-zero")

	ErrMalformedResponse     = NewDomainError(ErrorCodeGatewayMalformedResponse, "gateway response is not well-formed XML")
	ErrUnableToTakePayment   = NewDomainError(ErrorCodeGatewayDeclined, "unable to take payment")
	ErrInvalidGatewayRequest = NewDomainError(ErrorCodeGatewayInvalidRequest, "invalid gateway request")

	ErrDatabaseError = NewDomainError(ErrorCodeDatabaseError, "database error")
	ErrSecretError   = NewDomainError(ErrorCodeSecretError, "secret retrieval failed")
)

// UnknownField reports a semantic field name that has no wire mapping
func UnknownField(name string) *DomainError {
	return NewDomainError(ErrorCodeInputUnknownField, fmt.Sprintf("unknown field %q", name)).
		WithDetail("field", name)
}

// MissingField reports the first required field absent from a request
func MissingField(name string) *DomainError {
	return NewDomainError(ErrorCodeValidationMissingField, fmt.Sprintf("you must provide a %q field", name)).
		WithDetail("field", name)
}

// InvalidFormat reports a field whose value does not match its expected shape
func InvalidFormat(name, value, expected string) *DomainError {
	return NewDomainError(ErrorCodeValidationInvalidFormat,
		fmt.Sprintf("field %q has invalid value %q, expected %s", name, value, expected)).
		WithDetail("field", name)
}

// MalformedResponse wraps the XML decoder failure for a gateway body
func MalformedResponse(err error) *DomainError {
	return WrapError(ErrorCodeGatewayMalformedResponse, "gateway response is not well-formed XML", err)
}

// UnableToTakePayment is returned when the gateway declines the cardholder's transaction.
// The message is always user-facing and never the raw gateway text.
func UnableToTakePayment(message string) *DomainError {
	return NewDomainError(ErrorCodeGatewayDeclined, message)
}

// InvalidGatewayRequest carries the raw gateway message for diagnostics
func InvalidGatewayRequest(message string) *DomainError {
	return NewDomainError(ErrorCodeGatewayInvalidRequest, message)
}

// FieldOf returns the field name attached to a validation error, if any
func FieldOf(err error) string {
	var domainErr *DomainError
	if !errors.As(err, &domainErr) {
		return ""
	}
	name, _ := domainErr.Details["field"].(string)
	return name
}
