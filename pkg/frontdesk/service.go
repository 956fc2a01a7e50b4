package frontdesk

import (
	"context"
	"fmt"
	"time"
)

// Service contains the front-desk domain logic over a Store.
type Service struct {
	store    Store
	nowFn    func() time.Time
	location *time.Location
	newID    func() string
	logger   OperationLogger
}

// NewService wires a Service.
func NewService(store Store, now func() time.Time, options ...ServiceOption) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store dependency is nil", ErrInvalidServiceConfig)
	}
	if now == nil {
		return nil, fmt.Errorf("%w: clock dependency is nil", ErrInvalidServiceConfig)
	}
	service := &Service{
		store:    store,
		nowFn:    now,
		location: time.UTC,
		newID:    newRandomID,
	}
	for _, option := range options {
		if option != nil {
			option(service)
		}
	}
	return service, nil
}

// Location returns the hotel time zone.
func (service *Service) Location() *time.Location {
	return service.location
}

// Today returns the current calendar date in the hotel time zone.
func (service *Service) Today() CalendarDate {
	return CalendarDateOf(service.nowFn(), service.location)
}

func (service *Service) now() time.Time {
	return service.nowFn().In(service.location)
}

// atomically runs fn inside one store transaction and reports the outcome.
func (service *Service) atomically(ctx context.Context, entry *OperationLog, fn func(ctx context.Context, transactionStore Store) error) error {
	operationError := service.store.WithTx(ctx, fn)
	entry.Error = operationError
	service.logOperation(ctx, *entry)
	return operationError
}

// reject reports an operation that failed before a transaction was opened.
func (service *Service) reject(ctx context.Context, entry OperationLog, err error) error {
	entry.Error = err
	service.logOperation(ctx, entry)
	return err
}

func (service *Service) logOperation(ctx context.Context, entry OperationLog) {
	if service.logger == nil {
		return
	}
	if entry.Status == "" {
		if entry.Error != nil {
			entry.Status = operationStatusError
		} else {
			entry.Status = operationStatusOK
		}
	}
	service.logger.LogOperation(ctx, entry)
}

// ensureDayOpen rejects writes against a calendar day that has a daily report.
// The day lock is held until the caller's transaction ends, so CloseDay cannot
// total the day while the write is in flight.
func ensureDayOpen(ctx context.Context, transactionStore Store, day string) error {
	if err := transactionStore.LockDay(ctx, day); err != nil {
		return err
	}
	closed, err := transactionStore.DailyReportExists(ctx, day)
	if err != nil {
		return err
	}
	if closed {
		return fmt.Errorf("%w: %s", ErrClosedDay, day)
	}
	return nil
}

func clampAtZero(value int64) Amount {
	if value < 0 {
		return 0
	}
	return Amount(value)
}
