package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)

// Resolution error codes. These classify per-record failures of the
// identity resolution pipeline; none of them abort a batch.
const (
	ErrCodeParseFailure            = "PARSE_FAILURE"
	ErrCodeAmbiguousEquivalence    = "AMBIGUOUS_EQUIVALENCE"
	ErrCodeInvalidConversionFactor = "INVALID_CONVERSION_FACTOR"
	ErrCodeCatalogMiss             = "CATALOG_MISS"
)
