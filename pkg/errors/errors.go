package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code
type ErrorCode int

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
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

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrBadRequest
	ErrUnauthorized
	ErrForbidden
	ErrInternal
	ErrValidation
)

// Scheduling and housekeeping error codes
const (
	ErrPastDate ErrorCode = iota + 2000
	ErrDuplicateAssignment
	ErrCrossDepartment
	ErrInsufficientRole
	ErrNoShiftOnDate
	ErrUnauthorizedActor
	ErrNoOpTransition
	ErrShiftWindowClosed
	ErrShiftNotStarted
	ErrRoleNotPermitted
	ErrTaskAlreadyEnded
	ErrTaskNotStarted
	ErrInsufficientBalance
)

// Error constructors
func NewNotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func NewBadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    ErrBadRequest,
		Message: message,
		Err:     err,
	}
}

func NewValidation(message string) *AppError {
	return &AppError{
		Code:    ErrValidation,
		Message: message,
	}
}

func NewInternal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal server error",
		Err:     err,
	}
}

// Common errors
func NotFound(resource string, err error) *AppError {
	return NewNotFound(resource, err)
}

func BadRequest(message string, err error) *AppError {
	return NewBadRequest(message, err)
}

func Internal(err error) *AppError {
	return NewInternal(err)
}

func Unauthorized(err error) *AppError {
	return &AppError{
		Code:    ErrUnauthorized,
		Message: "unauthorized",
		Err:     err,
	}
}

func Forbidden(message string) *AppError {
	return &AppError{
		Code:    ErrForbidden,
		Message: message,
	}
}

// Domain constructors used by the shift and housekeeping services.
func PastDate(message string) *AppError {
	return &AppError{Code: ErrPastDate, Message: message}
}

func DuplicateAssignment(message string) *AppError {
	return &AppError{Code: ErrDuplicateAssignment, Message: message}
}

func CrossDepartment(message string) *AppError {
	return &AppError{Code: ErrCrossDepartment, Message: message}
}

func InsufficientRole(message string) *AppError {
	return &AppError{Code: ErrInsufficientRole, Message: message}
}

func NoShiftOnDate(message string) *AppError {
	return &AppError{Code: ErrNoShiftOnDate, Message: message}
}

func UnauthorizedActor(message string) *AppError {
	return &AppError{Code: ErrUnauthorizedActor, Message: message}
}

func NoOpTransition(message string) *AppError {
	return &AppError{Code: ErrNoOpTransition, Message: message}
}

func ShiftWindowClosed(message string) *AppError {
	return &AppError{Code: ErrShiftWindowClosed, Message: message}
}

func ShiftNotStarted(message string) *AppError {
	return &AppError{Code: ErrShiftNotStarted, Message: message}
}

func RoleNotPermitted(message string) *AppError {
	return &AppError{Code: ErrRoleNotPermitted, Message: message}
}

func TaskAlreadyEnded(message string) *AppError {
	return &AppError{Code: ErrTaskAlreadyEnded, Message: message}
}

func TaskNotStarted(message string) *AppError {
	return &AppError{Code: ErrTaskNotStarted, Message: message}
}

func InsufficientBalance(message string) *AppError {
	return &AppError{Code: ErrInsufficientBalance, Message: message}
}

// CodeOf returns the AppError code wrapped anywhere in err, or ErrInternal.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrInternal
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
