package errors

import (
	goerrors "errors"
	"fmt"
)

// ErrorType represents different types of errors in the system
type ErrorType string

const (
	// ErrorTypeNotFound indicates a resource was not found
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeForbidden indicates the caller is not allowed to act on the resource
	ErrorTypeForbidden ErrorType = "FORBIDDEN"

	// ErrorTypeDuplicateEmail indicates the email is already registered
	ErrorTypeDuplicateEmail ErrorType = "DUPLICATE_EMAIL"

	// ErrorTypeAlreadyRated indicates the user already rated this subject
	ErrorTypeAlreadyRated ErrorType = "ALREADY_RATED"

	// ErrorTypePendingApproval indicates a manager account awaiting admin approval
	ErrorTypePendingApproval ErrorType = "PENDING_APPROVAL"

	// ErrorTypeInvalidCredentials indicates a failed email/password check
	ErrorTypeInvalidCredentials ErrorType = "INVALID_CREDENTIALS"

	// ErrorTypeInvalidFormat indicates a malformed import document
	ErrorTypeInvalidFormat ErrorType = "INVALID_FORMAT"

	// ErrorTypeInvalidRating indicates a star value outside the 1-5 range
	ErrorTypeInvalidRating ErrorType = "INVALID_RATING"

	// ErrorTypeInternal indicates an infrastructure fault
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, t ErrorType) bool {
	var appErr *AppError
	if goerrors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}

// IsNotFound reports whether err is a not found error.
func IsNotFound(err error) bool { return IsType(err, ErrorTypeNotFound) }

// IsForbidden reports whether err is a forbidden error.
func IsForbidden(err error) bool { return IsType(err, ErrorTypeForbidden) }

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewForbiddenError creates a new forbidden error
func NewForbiddenError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeForbidden,
		Message: message,
	}
}

// NewDuplicateEmailError creates a new duplicate email error
func NewDuplicateEmailError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeDuplicateEmail,
		Message: message,
	}
}

// NewAlreadyRatedError creates a new already rated error
func NewAlreadyRatedError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeAlreadyRated,
		Message: message,
	}
}

// NewPendingApprovalError creates a new pending approval error
func NewPendingApprovalError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypePendingApproval,
		Message: message,
	}
}

// NewInvalidCredentialsError creates a new invalid credentials error
func NewInvalidCredentialsError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidCredentials,
		Message: message,
	}
}

// NewInvalidFormatError creates a new invalid format error
func NewInvalidFormatError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidFormat,
		Message: message,
		Err:     err,
	}
}

// NewInvalidRatingError creates a new invalid rating error
func NewInvalidRatingError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidRating,
		Message: message,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}
