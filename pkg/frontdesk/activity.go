package frontdesk

import (
	"context"
	"encoding/json"
	"fmt"
)

const (
	activityRoomRegister      = "room_register"
	activityRoomUpdate        = "room_update"
	activityBookingCreate     = "booking_create"
	activityBookingEdit       = "booking_edit"
	activityBookingCancel     = "booking_cancel"
	activityBookingCheckIn    = "checkin_from_booking"
	activityTransactionAdd    = "transaction_add"
	activityTransactionEdit   = "transaction_edit"
	activityTransactionDelete = "transaction_delete"
	activityShiftStart        = "shift_start"
	activityShiftClose        = "shift_close"
	activityDayClose          = "day_close"
	activityDetailsEmptyJSON  = "{}"
)

type activityDetails map[string]any

// appendActivity journals a mutation inside the caller's transaction.
func (service *Service) appendActivity(ctx context.Context, transactionStore Store, actor Actor, action string, description string, roomNumber string, amount Amount, details activityDetails) error {
	encoded := activityDetailsEmptyJSON
	if len(details) > 0 {
		raw, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("encode activity details: %w", err)
		}
		encoded = string(raw)
	}
	return transactionStore.InsertActivity(ctx, ActivityEntry{
		ID:          service.newID(),
		OccurredAt:  service.now(),
		AdminName:   actor.Name,
		Action:      action,
		Description: description,
		RoomNumber:  roomNumber,
		Amount:      amount,
		Details:     encoded,
	})
}

// ListActivity returns the most recent journal rows, newest first.
func (service *Service) ListActivity(ctx context.Context, limit int) ([]ActivityEntry, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}
	return service.store.ListActivity(ctx, limit)
}
