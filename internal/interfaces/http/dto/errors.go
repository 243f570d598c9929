package dto

import "net/http"

// General error codes
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
)

// Resource error codes
const (
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeAlreadyExists       = "ALREADY_EXISTS"
	ErrCodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	ErrCodeInvalidState        = "INVALID_STATE"
	ErrCodeInvalidInput        = "INVALID_INPUT"
)

// Resolution error codes. These mirror the per-record failure codes of
// the identity resolution pipeline.
const (
	ErrCodeParseFailure            = "PARSE_FAILURE"
	ErrCodeAmbiguousEquivalence    = "AMBIGUOUS_EQUIVALENCE"
	ErrCodeInvalidConversionFactor = "INVALID_CONVERSION_FACTOR"
	ErrCodeCatalogMiss             = "CATALOG_MISS"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes.
// Codes not listed default to 400 Bad Request; domain validation
// errors all follow the INVALID_* convention.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeInvalidState:        http.StatusUnprocessableEntity,
	ErrCodeInvalidInput:        http.StatusBadRequest,

	// Resolution failures are well-formed requests the pipeline
	// could not process
	ErrCodeParseFailure:            http.StatusUnprocessableEntity,
	ErrCodeAmbiguousEquivalence:    http.StatusUnprocessableEntity,
	ErrCodeInvalidConversionFactor: http.StatusUnprocessableEntity,
	ErrCodeCatalogMiss:             http.StatusUnprocessableEntity,

	"UNKNOWN_CANONICAL_SKU": http.StatusUnprocessableEntity,
	"UNKNOWN_BASE_SKU":      http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 400 Bad Request since every remaining domain
// code reports invalid input.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusBadRequest
}
