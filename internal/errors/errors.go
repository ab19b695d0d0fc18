package errors

import "fmt"

// ErrorCode represents a trove error code.
type ErrorCode string

const (
	ErrValidation        ErrorCode = "VALIDATION"         // rejected input, store unchanged
	ErrNotFound          ErrorCode = "NOT_FOUND"          // addressed record does not exist
	ErrDuplicateSKU      ErrorCode = "DUPLICATE_SKU"      // identifying key already in use
	ErrInsufficientStock ErrorCode = "INSUFFICIENT_STOCK" // outgoing movement exceeds quantity
	ErrImportFormat      ErrorCode = "IMPORT_FORMAT"      // malformed import file, nothing imported
	ErrDecodeFailure     ErrorCode = "DECODE_FAILURE"     // corrupt persisted state
	ErrInternal          ErrorCode = "INTERNAL"
)

// TroveError represents a structured error with code and details.
type TroveError struct {
	Code    ErrorCode
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *TroveError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidation creates a validation error; the triggering operation is a no-op.
func NewValidation(msg string) *TroveError {
	return &TroveError{
		Code:    ErrValidation,
		Message: msg,
	}
}

// NewNotFound creates an error for when a record cannot be found.
func NewNotFound(id string) *TroveError {
	return &TroveError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("record not found: %s", id),
		Details: map[string]any{"id": id},
	}
}

// NewDuplicateSKU creates an error for SKU collisions.
func NewDuplicateSKU(sku string) *TroveError {
	return &TroveError{
		Code:    ErrDuplicateSKU,
		Message: fmt.Sprintf("record with sku %q already exists", sku),
		Details: map[string]any{"sku": sku},
	}
}

// NewInsufficientStock creates an error for an outgoing movement that would
// drive a record's quantity negative.
func NewInsufficientStock(id string, available, requested float64) *TroveError {
	return &TroveError{
		Code:    ErrInsufficientStock,
		Message: fmt.Sprintf("insufficient stock: %g available, %g requested", available, requested),
		Details: map[string]any{"id": id, "available": available, "requested": requested},
	}
}

// NewImportFormat creates an error for a malformed import file. The whole
// import is abandoned; no rows are applied.
func NewImportFormat(msg string) *TroveError {
	return &TroveError{
		Code:    ErrImportFormat,
		Message: msg,
	}
}

// NewDecodeFailure creates an error for corrupt persisted state.
func NewDecodeFailure(key string, err error) *TroveError {
	return &TroveError{
		Code:    ErrDecodeFailure,
		Message: fmt.Sprintf("failed to decode slot %q: %v", key, err),
		Details: map[string]any{"key": key},
	}
}

// NewInternal creates an error for unexpected internal failures.
func NewInternal(err error) *TroveError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &TroveError{
		Code:    ErrInternal,
		Message: msg,
	}
}

// Is checks if an error is a TroveError with the given code.
func Is(err error, code ErrorCode) bool {
	if tErr, ok := err.(*TroveError); ok {
		return tErr.Code == code
	}
	return false
}
