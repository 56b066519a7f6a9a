package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationRequired is used when a required field is missing
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	// ErrCodeValidationFormat is used when a field has invalid format
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
	// ErrCodeValidationRange is used when a value is out of range
	ErrCodeValidationRange = "ERR_VALIDATION_RANGE"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeBusinessRule is used for generic business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,
	ErrCodeValidationRange:    http.StatusBadRequest,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState: http.StatusUnprocessableEntity,
	ErrCodeBusinessRule: http.StatusUnprocessableEntity,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to standardized codes.
// Domain codes without an entry fall through NormalizeErrorCode
// unchanged and map to 422 via DomainErrorHTTPStatus.
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"INVALID_STATE":        ErrCodeInvalidState,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
	"VALIDATION_ERROR":     ErrCodeValidation,
	"BAD_REQUEST":          ErrCodeBadRequest,
	"INTERNAL_ERROR":       ErrCodeInternal,
}

// DomainErrorHTTPStatus maps ledger domain error codes that keep their
// own identity to HTTP status codes. Workflow and posting-rule
// violations are 422; malformed values are 400; duplicates are 409.
var DomainErrorHTTPStatus = map[string]int{
	// Posting rule violations
	"PERIOD_LOCKED":             http.StatusUnprocessableEntity,
	"PERIOD_NOT_LOCKED":         http.StatusUnprocessableEntity,
	"FISCAL_YEAR_CLOSED":        http.StatusUnprocessableEntity,
	"DATE_OUTSIDE_PERIOD":       http.StatusUnprocessableEntity,
	"ACCOUNT_INACTIVE":          http.StatusUnprocessableEntity,
	"DIRECT_POSTING_FORBIDDEN":  http.StatusUnprocessableEntity,
	"UNBALANCED_VOUCHER":        http.StatusUnprocessableEntity,
	"INSUFFICIENT_LINES":        http.StatusUnprocessableEntity,
	"VOUCHER_NOT_EDITABLE":      http.StatusUnprocessableEntity,
	"REJECTION_REASON_REQUIRED": http.StatusUnprocessableEntity,
	"ALREADY_REVERSED":          http.StatusUnprocessableEntity,

	// Overlaps and duplicates
	"OVERLAPPING_FISCAL_YEAR": http.StatusConflict,
	"OVERLAPPING_PERIOD":      http.StatusConflict,

	// Malformed values
	"INVALID_DATE_RANGE":     http.StatusBadRequest,
	"INVALID_AMOUNT":         http.StatusBadRequest,
	"INVALID_DR_CR":          http.StatusBadRequest,
	"INVALID_ACCOUNT":        http.StatusBadRequest,
	"INVALID_ACCOUNT_NUMBER": http.StatusBadRequest,
	"INVALID_ACCOUNT_NAME":   http.StatusBadRequest,
	"INVALID_ACCOUNT_TYPE":   http.StatusBadRequest,
	"INVALID_PL_SECTION":     http.StatusBadRequest,
	"INVALID_VOUCHER_TYPE":   http.StatusBadRequest,
	"INVALID_PERIOD":         http.StatusBadRequest,
	"INVALID_PERIOD_NAME":    http.StatusBadRequest,
	"INVALID_FISCAL_YEAR_NAME": http.StatusBadRequest,
	"INVALID_GROUP_NAME":       http.StatusBadRequest,
	"INVALID_GROUP_PARENT":     http.StatusBadRequest,
	"ACCOUNT_NOT_FOUND":        http.StatusNotFound,

	// Server-side invariant violations
	"INVALID_ACCOUNT_NATURE": http.StatusInternalServerError,
	"INVALID_VOUCHER_NUMBER": http.StatusInternalServerError,
}

// NormalizeErrorCode converts a domain error code to the standardized format
// If the code has no mapping, returns it as-is
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}

// GetDomainHTTPStatus resolves the HTTP status for a domain error code,
// consulting the domain-specific table before the standardized one.
// Unknown domain codes default to 422 rather than 500 so that new
// business rules surface as client errors.
func GetDomainHTTPStatus(code string) int {
	if status, ok := DomainErrorHTTPStatus[code]; ok {
		return status
	}
	normalized := NormalizeErrorCode(code)
	if status, ok := ErrorCodeHTTPStatus[normalized]; ok {
		return status
	}
	return http.StatusUnprocessableEntity
}
