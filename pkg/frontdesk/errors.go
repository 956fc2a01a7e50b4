package frontdesk

import (
	"errors"
	"fmt"
)

// Error kinds. Every domain error returned by Service wraps exactly one of these.
var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInvalidState      = errors.New("invalid state")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrForbidden         = errors.New("forbidden")
	ErrDayLocked         = errors.New("day locked")
)

// Domain-level error values returned by the front-desk service.
var (
	ErrUnknownRoom        = fmt.Errorf("%w: unknown room", ErrNotFound)
	ErrUnknownBooking     = fmt.Errorf("%w: unknown booking", ErrNotFound)
	ErrUnknownTransaction = fmt.Errorf("%w: unknown transaction", ErrNotFound)
	ErrUnknownShift       = fmt.Errorf("%w: unknown shift", ErrNotFound)
	ErrUnknownDailyReport = fmt.Errorf("%w: unknown daily report", ErrNotFound)

	ErrRoomUnavailable      = fmt.Errorf("%w: room is not available", ErrConflict)
	ErrRoomNumberTaken      = fmt.Errorf("%w: room number already registered", ErrConflict)
	ErrRoomStatusChanged    = fmt.Errorf("%w: room status changed concurrently", ErrConflict)
	ErrBookingStatusChanged = fmt.Errorf("%w: booking status changed concurrently", ErrConflict)

	ErrBookingNotActive = fmt.Errorf("%w: booking is not active", ErrInvalidState)
	ErrShiftClosed      = fmt.Errorf("%w: shift is closed", ErrInvalidState)

	ErrIllegalRoomTransition = fmt.Errorf("%w: room status change not allowed", ErrInvalidTransition)
	ErrRoomHeldByBooking     = fmt.Errorf("%w: room is held by an active booking", ErrInvalidTransition)

	ErrNotTransactionOwner = fmt.Errorf("%w: transaction belongs to another admin", ErrForbidden)
	ErrNotShiftOwner       = fmt.Errorf("%w: shift belongs to another admin", ErrForbidden)
	ErrSuperAdminRequired  = fmt.Errorf("%w: super admin role required", ErrForbidden)

	ErrClosedDay = fmt.Errorf("%w: calendar day is closed", ErrDayLocked)

	ErrInvalidRoomID          = fmt.Errorf("%w: invalid room id", ErrValidation)
	ErrInvalidRoomNumber      = fmt.Errorf("%w: invalid room number", ErrValidation)
	ErrInvalidRoomStatus      = fmt.Errorf("%w: invalid room status", ErrValidation)
	ErrInvalidFloor           = fmt.Errorf("%w: invalid floor", ErrValidation)
	ErrInvalidBookingID       = fmt.Errorf("%w: invalid booking id", ErrValidation)
	ErrInvalidBookingStatus   = fmt.Errorf("%w: invalid booking status", ErrValidation)
	ErrInvalidShiftID         = fmt.Errorf("%w: invalid shift id", ErrValidation)
	ErrInvalidTransactionID   = fmt.Errorf("%w: invalid transaction id", ErrValidation)
	ErrInvalidTransactionType = fmt.Errorf("%w: invalid transaction type", ErrValidation)
	ErrInvalidAmount          = fmt.Errorf("%w: invalid amount", ErrValidation)
	ErrInvalidPrice           = fmt.Errorf("%w: invalid price", ErrValidation)
	ErrInvalidCategory        = fmt.Errorf("%w: invalid category", ErrValidation)
	ErrInvalidDescription     = fmt.Errorf("%w: invalid description", ErrValidation)
	ErrInvalidCalendarDate    = fmt.Errorf("%w: invalid calendar date", ErrValidation)
	ErrInvalidMonth           = fmt.Errorf("%w: invalid month", ErrValidation)
	ErrInvalidNights          = fmt.Errorf("%w: invalid nights", ErrValidation)
	ErrInvalidGuest           = fmt.Errorf("%w: invalid guest", ErrValidation)
	ErrInvalidActor           = fmt.Errorf("%w: invalid actor", ErrValidation)
	ErrInvalidRole            = fmt.Errorf("%w: invalid role", ErrValidation)
	ErrInvalidReportText      = fmt.Errorf("%w: invalid report text", ErrValidation)

	ErrInvalidServiceConfig = errors.New("invalid service config")
)

// ErrorKind is the stable, transport-neutral code of an error kind.
type ErrorKind string

const (
	KindValidation        ErrorKind = "VALIDATION_ERROR"
	KindNotFound          ErrorKind = "NOT_FOUND"
	KindConflict          ErrorKind = "CONFLICT"
	KindInvalidState      ErrorKind = "INVALID_STATE"
	KindInvalidTransition ErrorKind = "INVALID_TRANSITION"
	KindForbidden         ErrorKind = "FORBIDDEN"
	KindDayLocked         ErrorKind = "DAY_LOCKED"
)

var errorKinds = []struct {
	sentinel error
	kind     ErrorKind
}{
	{ErrValidation, KindValidation},
	{ErrNotFound, KindNotFound},
	{ErrConflict, KindConflict},
	{ErrInvalidState, KindInvalidState},
	{ErrInvalidTransition, KindInvalidTransition},
	{ErrForbidden, KindForbidden},
	{ErrDayLocked, KindDayLocked},
}

// KindOf classifies err. Unexpected errors yield an empty kind.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	for _, candidate := range errorKinds {
		if errors.Is(err, candidate.sentinel) {
			return candidate.kind
		}
	}
	return ""
}

// OperationError wraps a failure with a stable operation code.
type OperationError struct {
	operation string
	subject   string
	code      string
	err       error
}

// Error returns the formatted error message.
func (operationError OperationError) Error() string {
	return fmt.Sprintf("%s.%s.%s: %v", operationError.operation, operationError.subject, operationError.code, operationError.err)
}

// Unwrap returns the underlying error.
func (operationError OperationError) Unwrap() error {
	return operationError.err
}

// Operation returns the operation segment.
func (operationError OperationError) Operation() string {
	return operationError.operation
}

// Subject returns the subject segment.
func (operationError OperationError) Subject() string {
	return operationError.subject
}

// Code returns the stable error code segment.
func (operationError OperationError) Code() string {
	return operationError.code
}

// WrapError wraps an error with operation, subject, and code metadata.
func WrapError(operation string, subject string, code string, err error) error {
	if err == nil {
		return nil
	}
	return OperationError{
		operation: operation,
		subject:   subject,
		code:      code,
		err:       err,
	}
}
