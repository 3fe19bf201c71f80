package types

import (
	"errors"
	"fmt"
	"net/http"

	pkgerrors "github.com/pkg/errors"
)

// Error types carried in CustomError.Type and in the error response body.
const (
	TypeValidation         = "validation"
	TypeUnauthenticated    = "unauthenticated"
	TypeForbidden          = "forbidden"
	TypeNotFound           = "notFound"
	TypeInsufficientStock  = "insufficientStock"
	TypeStorageUnavailable = "storageUnavailable"
	TypeInternal           = "internal"
)

// ErrDuplicate marks a write rejected by a unique index.
var ErrDuplicate = errors.New("duplicate key")

// CustomError is the typed error every layer returns to the controllers.
// Code is always a valid HTTP status.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`

	cause error
	stack error
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// Unwrap exposes the driver or library error, if any.
func (e *CustomError) Unwrap() error {
	return e.cause
}

// StackTrace renders the stack captured when the error was created.
func (e *CustomError) StackTrace() string {
	if e.stack == nil {
		return ""
	}
	return fmt.Sprintf("%+v", e.stack)
}

func newError(code int, errorType string, cause error, format string, args ...interface{}) *CustomError {
	message := fmt.Sprintf(format, args...)
	return &CustomError{
		Code:    code,
		Message: message,
		Type:    errorType,
		cause:   cause,
		stack:   pkgerrors.New(message),
	}
}

// Validation reports missing or malformed input.
func Validation(format string, args ...interface{}) *CustomError {
	return newError(http.StatusBadRequest, TypeValidation, nil, format, args...)
}

// MissingField reports the first required field absent from a payload.
func MissingField(field string) *CustomError {
	return Validation("Field '%s' is mandatory", field)
}

// Duplicate reports a write that collides with a unique value already stored.
func Duplicate(cause error) *CustomError {
	return newError(http.StatusBadRequest, TypeValidation, fmt.Errorf("%w: %v", ErrDuplicate, cause),
		"Value already in use")
}

// Unauthenticated reports a missing or invalid bearer token.
func Unauthenticated(format string, args ...interface{}) *CustomError {
	return newError(http.StatusUnauthorized, TypeUnauthenticated, nil, format, args...)
}

// Forbidden reports an authenticated principal lacking the required role.
func Forbidden(format string, args ...interface{}) *CustomError {
	return newError(http.StatusForbidden, TypeForbidden, nil, format, args...)
}

// NotFound reports a referenced entity that does not exist.
func NotFound(format string, args ...interface{}) *CustomError {
	return newError(http.StatusNotFound, TypeNotFound, nil, format, args...)
}

// InsufficientStock reports an order line exceeding the available quantity.
func InsufficientStock(productName string) *CustomError {
	return newError(http.StatusBadRequest, TypeInsufficientStock, nil,
		"Product %s is not available in this quantity", productName)
}

// StorageUnavailable wraps a storage driver failure.
func StorageUnavailable(cause error) *CustomError {
	return newError(http.StatusInternalServerError, TypeStorageUnavailable, cause, "Storage unavailable: %v", cause)
}

// Internal wraps any other unexpected fault.
func Internal(cause error) *CustomError {
	return newError(http.StatusInternalServerError, TypeInternal, cause, "%v", cause)
}

// AsCustomError extracts a CustomError from err. Untyped errors become Internal.
func AsCustomError(err error) *CustomError {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce
	}
	return Internal(err)
}

// IsType reports whether err is a CustomError of the given type.
func IsType(err error, errorType string) bool {
	var ce *CustomError
	return errors.As(err, &ce) && ce.Type == errorType
}

// Title returns the short heading used in error responses for a status code.
func Title(code int) string {
	switch code {
	case http.StatusBadRequest:
		return "Bad Request"
	case http.StatusUnauthorized:
		return "Unauthorized"
	case http.StatusForbidden:
		return "Forbidden"
	case http.StatusNotFound:
		return "Not Found"
	}
	if code >= http.StatusInternalServerError {
		return "Server Error"
	}
	return http.StatusText(code)
}
