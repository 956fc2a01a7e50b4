package frontdesk

import (
	"context"
	"fmt"
	"time"
)

// TransactionInput records a manual income or expense.
type TransactionInput struct {
	Type        TransactionType
	Category    string
	Amount      Amount
	Description string
	RoomNumber  string
	ShiftID     *ShiftID
	OccurredAt  *time.Time
}

// TransactionEdit changes an existing transaction. Nil fields stay as they are.
type TransactionEdit struct {
	Category    *string
	Description *string
	Amount      *Amount
}

// postTransaction inserts draft and credits its shift. The caller's transaction
// makes both writes atomic.
func (service *Service) postTransaction(ctx context.Context, transactionStore Store, actor Actor, draft Transaction) (Transaction, error) {
	if err := ensureDayOpen(ctx, transactionStore, draft.Day); err != nil {
		return Transaction{}, err
	}
	var shift *Shift
	if draft.ShiftID != "" {
		open, err := openShift(ctx, transactionStore, draft.ShiftID)
		if err != nil {
			return Transaction{}, err
		}
		shift = &open
	}
	draft.ID = service.newID()
	draft.AdminID = actor.ID
	draft.AdminName = actor.Name
	if err := transactionStore.InsertTransaction(ctx, draft); err != nil {
		return Transaction{}, err
	}
	if shift != nil {
		if err := transactionStore.UpdateShift(ctx, applyShiftDelta(*shift, draft.Type, draft.Amount.Int64())); err != nil {
			return Transaction{}, err
		}
	}
	return draft, nil
}

// RecordTransaction appends a manual income or expense and credits its shift.
func (service *Service) RecordTransaction(ctx context.Context, actor Actor, input TransactionInput) (Transaction, error) {
	entry := OperationLog{Operation: operationRecordTransaction, Actor: actor, Amount: input.Amount, RoomNumber: input.RoomNumber}
	draft, err := service.transactionDraft(actor, input)
	if err != nil {
		return Transaction{}, service.reject(ctx, entry, err)
	}
	entry.Day = draft.Day
	entry.ShiftID = draft.ShiftID
	var recorded Transaction
	err = service.atomically(ctx, &entry, func(ctx context.Context, transactionStore Store) error {
		posted, err := service.postTransaction(ctx, transactionStore, actor, draft)
		if err != nil {
			return err
		}
		recorded = posted
		entry.TransactionID = posted.ID
		return service.appendActivity(ctx, transactionStore, actor, activityTransactionAdd,
			fmt.Sprintf("%s: %s - %d", posted.Type, posted.Description, posted.Amount), posted.RoomNumber, posted.Amount,
			activityDetails{"transaction_id": posted.ID, "category": posted.Category, "day": posted.Day})
	})
	if err != nil {
		return Transaction{}, err
	}
	return recorded, nil
}

func (service *Service) transactionDraft(actor Actor, input TransactionInput) (Transaction, error) {
	if err := actor.validate(); err != nil {
		return Transaction{}, err
	}
	transactionType, err := ParseTransactionType(string(input.Type))
	if err != nil {
		return Transaction{}, err
	}
	amount, err := NewAmount(input.Amount.Int64())
	if err != nil {
		return Transaction{}, err
	}
	category, err := requireText(input.Category, maxCategoryLength, ErrInvalidCategory)
	if err != nil {
		return Transaction{}, err
	}
	description, err := requireText(input.Description, maxDescriptionLength, ErrInvalidDescription)
	if err != nil {
		return Transaction{}, err
	}
	roomNumber := ""
	if input.RoomNumber != "" {
		number, err := NewRoomNumber(input.RoomNumber)
		if err != nil {
			return Transaction{}, err
		}
		roomNumber = number.String()
	}
	occurredAt := service.now()
	if input.OccurredAt != nil {
		occurredAt = input.OccurredAt.In(service.location)
	}
	draft := Transaction{
		Type:        transactionType,
		Category:    category,
		Amount:      amount,
		Description: description,
		RoomNumber:  roomNumber,
		OccurredAt:  occurredAt,
		Day:         CalendarDateOf(occurredAt, service.location).String(),
	}
	if input.ShiftID != nil {
		draft.ShiftID = input.ShiftID.String()
	}
	return draft, nil
}

// loadMutableTransaction fetches a transaction that actor may still change.
// Checks run in order: existence, day lock, ownership.
func loadMutableTransaction(ctx context.Context, transactionStore Store, actor Actor, transactionID TransactionID) (Transaction, error) {
	transaction, err := transactionStore.GetTransaction(ctx, transactionID.String())
	if err != nil {
		return Transaction{}, err
	}
	if err := ensureDayOpen(ctx, transactionStore, transaction.Day); err != nil {
		return Transaction{}, err
	}
	if transaction.AdminID != actor.ID && !actor.IsSuperAdmin() {
		return Transaction{}, ErrNotTransactionOwner
	}
	return transaction, nil
}

// DeleteTransaction removes a transaction and reverses its shift contribution.
func (service *Service) DeleteTransaction(ctx context.Context, actor Actor, transactionID TransactionID) error {
	entry := OperationLog{Operation: operationDeleteTransaction, Actor: actor, TransactionID: transactionID.String()}
	if err := actor.validate(); err != nil {
		return service.reject(ctx, entry, err)
	}
	if transactionID.String() == "" {
		return service.reject(ctx, entry, fmt.Errorf("%w: empty value", ErrInvalidTransactionID))
	}
	return service.atomically(ctx, &entry, func(ctx context.Context, transactionStore Store) error {
		transaction, err := loadMutableTransaction(ctx, transactionStore, actor, transactionID)
		if err != nil {
			return err
		}
		entry.Amount = transaction.Amount
		entry.Day = transaction.Day
		entry.ShiftID = transaction.ShiftID
		if err := adjustShift(ctx, transactionStore, transaction.ShiftID, transaction.Type, -transaction.Amount.Int64()); err != nil {
			return err
		}
		if err := transactionStore.DeleteTransaction(ctx, transaction.ID); err != nil {
			return err
		}
		return service.appendActivity(ctx, transactionStore, actor, activityTransactionDelete,
			fmt.Sprintf("Transaction deleted: %s - %d", transaction.Description, transaction.Amount), transaction.RoomNumber, transaction.Amount,
			activityDetails{"transaction_id": transaction.ID, "type": transaction.Type, "day": transaction.Day})
	})
}

// EditTransaction changes category, description, or amount. Amount changes move
// the shift total by the difference, clamped at zero.
func (service *Service) EditTransaction(ctx context.Context, actor Actor, transactionID TransactionID, edit TransactionEdit) (Transaction, error) {
	entry := OperationLog{Operation: operationEditTransaction, Actor: actor, TransactionID: transactionID.String()}
	if err := actor.validate(); err != nil {
		return Transaction{}, service.reject(ctx, entry, err)
	}
	if transactionID.String() == "" {
		return Transaction{}, service.reject(ctx, entry, fmt.Errorf("%w: empty value", ErrInvalidTransactionID))
	}
	if edit.Category == nil && edit.Description == nil && edit.Amount == nil {
		return Transaction{}, service.reject(ctx, entry, fmt.Errorf("%w: nothing to change", ErrValidation))
	}
	var category, description string
	var err error
	if edit.Category != nil {
		if category, err = requireText(*edit.Category, maxCategoryLength, ErrInvalidCategory); err != nil {
			return Transaction{}, service.reject(ctx, entry, err)
		}
	}
	if edit.Description != nil {
		if description, err = requireText(*edit.Description, maxDescriptionLength, ErrInvalidDescription); err != nil {
			return Transaction{}, service.reject(ctx, entry, err)
		}
	}
	if edit.Amount != nil {
		if _, err := NewAmount(edit.Amount.Int64()); err != nil {
			return Transaction{}, service.reject(ctx, entry, err)
		}
	}

	var updated Transaction
	err = service.atomically(ctx, &entry, func(ctx context.Context, transactionStore Store) error {
		transaction, err := loadMutableTransaction(ctx, transactionStore, actor, transactionID)
		if err != nil {
			return err
		}
		entry.Day = transaction.Day
		entry.ShiftID = transaction.ShiftID
		next := transaction
		if edit.Category != nil {
			next.Category = category
		}
		if edit.Description != nil {
			next.Description = description
		}
		if edit.Amount != nil {
			next.Amount = *edit.Amount
			delta := next.Amount.Int64() - transaction.Amount.Int64()
			if err := adjustShift(ctx, transactionStore, transaction.ShiftID, transaction.Type, delta); err != nil {
				return err
			}
		}
		entry.Amount = next.Amount
		if err := transactionStore.UpdateTransaction(ctx, next); err != nil {
			return err
		}
		updated = next
		return service.appendActivity(ctx, transactionStore, actor, activityTransactionEdit,
			fmt.Sprintf("Transaction edited: %s - %d", next.Description, next.Amount), next.RoomNumber, next.Amount,
			activityDetails{"transaction_id": next.ID, "previous_amount": transaction.Amount})
	})
	if err != nil {
		return Transaction{}, err
	}
	return updated, nil
}

// ListTransactions lists transactions newest first.
func (service *Service) ListTransactions(ctx context.Context, filter TransactionFilter) ([]Transaction, error) {
	if filter.Day != "" {
		if _, err := ParseCalendarDate(filter.Day); err != nil {
			return nil, err
		}
	}
	if filter.Type != "" {
		if _, err := ParseTransactionType(string(filter.Type)); err != nil {
			return nil, err
		}
	}
	return service.store.ListTransactions(ctx, filter)
}

// GetTransaction returns one transaction.
func (service *Service) GetTransaction(ctx context.Context, transactionID TransactionID) (Transaction, error) {
	if transactionID.String() == "" {
		return Transaction{}, fmt.Errorf("%w: empty value", ErrInvalidTransactionID)
	}
	return service.store.GetTransaction(ctx, transactionID.String())
}
