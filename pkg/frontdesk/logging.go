package frontdesk

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ServiceOption configures a Service instance.
type ServiceOption func(*Service)

// OperationLogger records domain-level events emitted by Service operations.
type OperationLogger interface {
	LogOperation(ctx context.Context, entry OperationLog)
}

// OperationLog describes a state-changing front-desk operation.
type OperationLog struct {
	Operation     string
	Actor         Actor
	RoomNumber    string
	BookingID     string
	TransactionID string
	ShiftID       string
	Day           string
	Amount        Amount
	Status        string
	Error         error
}

// WithOperationLogger wires a logger that receives callbacks for every operation.
func WithOperationLogger(logger OperationLogger) ServiceOption {
	return func(service *Service) {
		service.logger = logger
	}
}

// WithLocation sets the hotel time zone used to derive calendar days.
func WithLocation(location *time.Location) ServiceOption {
	return func(service *Service) {
		if location != nil {
			service.location = location
		}
	}
}

// WithIDGenerator replaces the random identifier source.
func WithIDGenerator(generate func() string) ServiceOption {
	return func(service *Service) {
		if generate != nil {
			service.newID = generate
		}
	}
}

func newRandomID() string {
	return uuid.NewString()
}
