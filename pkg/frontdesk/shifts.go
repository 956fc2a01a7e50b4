package frontdesk

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// applyShiftDelta moves the shift total for transactionType by delta, clamping at zero.
func applyShiftDelta(shift Shift, transactionType TransactionType, delta int64) Shift {
	switch transactionType {
	case TransactionIncome:
		shift.TotalIncome = clampAtZero(shift.TotalIncome.Int64() + delta)
	case TransactionExpense:
		shift.TotalExpense = clampAtZero(shift.TotalExpense.Int64() + delta)
	}
	return shift
}

// openShift loads a shift that still accepts new transactions.
func openShift(ctx context.Context, transactionStore Store, shiftID string) (Shift, error) {
	shift, err := transactionStore.GetShift(ctx, shiftID)
	if err != nil {
		return Shift{}, err
	}
	if shift.Closed {
		return Shift{}, fmt.Errorf("%w: %s", ErrShiftClosed, shiftID)
	}
	return shift, nil
}

// adjustShift applies a correction to a shift's totals. A shift that no longer
// exists is skipped.
func adjustShift(ctx context.Context, transactionStore Store, shiftID string, transactionType TransactionType, delta int64) error {
	if shiftID == "" || delta == 0 {
		return nil
	}
	shift, err := transactionStore.GetShift(ctx, shiftID)
	if errors.Is(err, ErrUnknownShift) {
		return nil
	}
	if err != nil {
		return err
	}
	return transactionStore.UpdateShift(ctx, applyShiftDelta(shift, transactionType, delta))
}

// OpenShift starts a cash-drawer session for actor.
func (service *Service) OpenShift(ctx context.Context, actor Actor) (Shift, error) {
	entry := OperationLog{Operation: operationOpenShift, Actor: actor}
	if err := actor.validate(); err != nil {
		return Shift{}, service.reject(ctx, entry, err)
	}
	shift := Shift{
		ID:        service.newID(),
		AdminID:   actor.ID,
		AdminName: actor.Name,
		AdminRole: actor.Role,
		StartTime: service.now(),
	}
	entry.ShiftID = shift.ID
	err := service.atomically(ctx, &entry, func(ctx context.Context, transactionStore Store) error {
		if err := transactionStore.InsertShift(ctx, shift); err != nil {
			return err
		}
		return service.appendActivity(ctx, transactionStore, actor, activityShiftStart, "Shift started", "", 0, nil)
	})
	if err != nil {
		return Shift{}, err
	}
	return shift, nil
}

// CloseShift ends a shift exactly once. Only its owner or a super admin may close it.
func (service *Service) CloseShift(ctx context.Context, actor Actor, shiftID ShiftID, notes string) (Shift, error) {
	entry := OperationLog{Operation: operationCloseShift, Actor: actor, ShiftID: shiftID.String()}
	if err := actor.validate(); err != nil {
		return Shift{}, service.reject(ctx, entry, err)
	}
	if shiftID.String() == "" {
		return Shift{}, service.reject(ctx, entry, fmt.Errorf("%w: empty value", ErrInvalidShiftID))
	}
	var closed Shift
	err := service.atomically(ctx, &entry, func(ctx context.Context, transactionStore Store) error {
		shift, err := transactionStore.GetShift(ctx, shiftID.String())
		if err != nil {
			return err
		}
		if shift.Closed {
			return fmt.Errorf("%w: %s", ErrShiftClosed, shift.ID)
		}
		if shift.AdminID != actor.ID && !actor.IsSuperAdmin() {
			return ErrNotShiftOwner
		}
		endTime := service.now()
		shift.EndTime = &endTime
		shift.Notes = sanitizeText(notes, maxNotesLength)
		shift.Closed = true
		if err := transactionStore.UpdateShift(ctx, shift); err != nil {
			return err
		}
		closed = shift
		return service.appendActivity(ctx, transactionStore, actor, activityShiftClose,
			fmt.Sprintf("Shift closed. Income: %d, expense: %d", shift.TotalIncome, shift.TotalExpense), "", 0,
			activityDetails{"total_income": shift.TotalIncome, "total_expense": shift.TotalExpense})
	})
	if err != nil {
		return Shift{}, err
	}
	return closed, nil
}

// ListShifts lists shifts newest first. Without a time window it covers the last
// thirty days.
func (service *Service) ListShifts(ctx context.Context, filter ShiftFilter) ([]Shift, error) {
	if filter.Since == nil && filter.Until == nil {
		since := service.now().Add(-shiftHistoryDays * 24 * time.Hour)
		filter.Since = &since
	}
	return service.store.ListShifts(ctx, filter)
}

// GetShift returns one shift.
func (service *Service) GetShift(ctx context.Context, shiftID ShiftID) (Shift, error) {
	if shiftID.String() == "" {
		return Shift{}, fmt.Errorf("%w: empty value", ErrInvalidShiftID)
	}
	return service.store.GetShift(ctx, shiftID.String())
}
