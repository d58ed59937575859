package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorKind classifies the errors surfaced by the booking core
type ErrorKind string

const (
	KindValidationFailed     ErrorKind = "ValidationFailed"
	KindAmountExceedsPending ErrorKind = "AmountExceedsPending"
	KindPaymentNotFound      ErrorKind = "PaymentNotFound"
	KindEntityNotFound       ErrorKind = "EntityNotFound"
	KindPersistenceFailure   ErrorKind = "PersistenceFailure"
	KindBadRequest           ErrorKind = "BadRequest"
	KindInternal             ErrorKind = "Internal"
)

// AppError represents a custom application error
type AppError struct {
	Kind    ErrorKind         `json:"kind"`
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Details string            `json:"details,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
	Err     error             `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any AppError of the same kind, so errors.Is(err, &AppError{Kind: k}) works
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// IsKind reports whether err carries an AppError of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// Common error constructors
func NewValidationError(message string) *AppError {
	return &AppError{
		Kind:    KindValidationFailed,
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// NewFieldValidationError reports every offending field at once
func NewFieldValidationError(fields map[string]string) *AppError {
	return &AppError{
		Kind:    KindValidationFailed,
		Code:    http.StatusBadRequest,
		Message: "Validation failed",
		Fields:  fields,
	}
}

func NewAmountExceedsPendingError(amount, pending float64) *AppError {
	return &AppError{
		Kind:    KindAmountExceedsPending,
		Code:    http.StatusUnprocessableEntity,
		Message: ErrAmountExceeds,
		Details: fmt.Sprintf("amount %.2f, pending %.2f", amount, pending),
	}
}

func NewPaymentNotFoundError(id string) *AppError {
	return &AppError{
		Kind:    KindPaymentNotFound,
		Code:    http.StatusNotFound,
		Message: ErrPaymentNotFound,
		Details: id,
	}
}

func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Kind:    KindEntityNotFound,
		Code:    http.StatusNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

func NewPersistenceError(err error) *AppError {
	return &AppError{
		Kind:    KindPersistenceFailure,
		Code:    http.StatusInternalServerError,
		Message: ErrFailedToStore,
		Err:     err,
	}
}

func NewInternalError(message string) *AppError {
	return &AppError{
		Kind:    KindInternal,
		Code:    http.StatusInternalServerError,
		Message: message,
	}
}

func NewBadRequestError(message string) *AppError {
	return &AppError{
		Kind:    KindBadRequest,
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// HandleError sends an appropriate HTTP response for an error
func HandleError(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		body := gin.H{"error": appErr.Message, "kind": appErr.Kind}
		if len(appErr.Fields) > 0 {
			body["fields"] = appErr.Fields
		}
		if appErr.Details != "" && appErr.Kind != KindPersistenceFailure {
			body["details"] = appErr.Details
		}
		c.JSON(appErr.Code, body)
		return
	}

	// Default to internal server error
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// HandleSuccess sends a success response
func HandleSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// HandleCreated sends a 201 response
func HandleCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}
