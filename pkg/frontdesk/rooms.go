package frontdesk

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var roomTransitions = map[RoomStatus][]RoomStatus{
	RoomStatusAvailable:   {RoomStatusOccupied, RoomStatusCleaning, RoomStatusMaintenance, RoomStatusBooked},
	RoomStatusOccupied:    {RoomStatusAvailable, RoomStatusCleaning},
	RoomStatusCleaning:    {RoomStatusAvailable, RoomStatusMaintenance},
	RoomStatusMaintenance: {RoomStatusAvailable, RoomStatusCleaning},
	RoomStatusBooked:      {RoomStatusOccupied, RoomStatusAvailable},
}

// CanTransition reports whether a room may move from one status to another.
func CanTransition(from RoomStatus, to RoomStatus) bool {
	for _, allowed := range roomTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// transitionRoom returns room moved to target. Guest fields, stay timestamps and the
// booking reference are cleared whenever target does not hold a guest.
func transitionRoom(room Room, target RoomStatus, guest Guest) (Room, error) {
	if !CanTransition(room.Status, target) {
		return Room{}, fmt.Errorf("%w: %s -> %s", ErrIllegalRoomTransition, room.Status, target)
	}
	next := room
	next.Status = target
	if !target.holdsGuest() {
		next.GuestName = ""
		next.GuestPassport = ""
		next.GuestPhone = ""
		next.CheckIn = nil
		next.CheckOut = nil
		next.BookingID = ""
		return next, nil
	}
	if guest.Name == "" {
		return Room{}, fmt.Errorf("%w: guest name required for %s room", ErrInvalidGuest, target)
	}
	next.GuestName = guest.Name
	next.GuestPassport = guest.Passport
	next.GuestPhone = guest.Phone
	if target != RoomStatusBooked {
		next.BookingID = ""
	}
	return next, nil
}

// normalizeGuest sanitizes guest fields.
func normalizeGuest(guest Guest) Guest {
	return Guest{
		Name:     sanitizeText(guest.Name, maxGuestNameLength),
		Passport: sanitizeText(guest.Passport, maxPassportLength),
		Phone:    sanitizeText(guest.Phone, maxGuestPhoneLength),
	}
}

// RoomInput registers a new room.
type RoomInput struct {
	Number        RoomNumber
	Floor         int
	PricePerNight Amount
	Notes         string
}

// RoomStatusChange describes a manual room update. An empty Status keeps the
// current status and only applies price and notes.
type RoomStatusChange struct {
	Status        RoomStatus
	Guest         Guest
	CheckOut      *time.Time
	PricePerNight *Amount
	Notes         *string
}

// RegisterRoom creates an available room. Only super admins may add rooms.
func (service *Service) RegisterRoom(ctx context.Context, actor Actor, input RoomInput) (Room, error) {
	entry := OperationLog{Operation: operationRegisterRoom, Actor: actor, RoomNumber: input.Number.String()}
	if err := actor.validate(); err != nil {
		return Room{}, service.reject(ctx, entry, err)
	}
	if !actor.IsSuperAdmin() {
		return Room{}, service.reject(ctx, entry, ErrSuperAdminRequired)
	}
	if input.Number.String() == "" {
		return Room{}, service.reject(ctx, entry, fmt.Errorf("%w: empty value", ErrInvalidRoomNumber))
	}
	if input.Floor < 0 {
		return Room{}, service.reject(ctx, entry, fmt.Errorf("%w: must not be negative", ErrInvalidFloor))
	}
	if _, err := NewPrice(input.PricePerNight.Int64()); err != nil {
		return Room{}, service.reject(ctx, entry, err)
	}
	var created Room
	err := service.atomically(ctx, &entry, func(ctx context.Context, transactionStore Store) error {
		_, lookupErr := transactionStore.GetRoomByNumber(ctx, input.Number.String())
		switch {
		case lookupErr == nil:
			return fmt.Errorf("%w: %s", ErrRoomNumberTaken, input.Number)
		case !errors.Is(lookupErr, ErrUnknownRoom):
			return lookupErr
		}
		room := Room{
			ID:            service.newID(),
			Number:        input.Number.String(),
			Floor:         input.Floor,
			Status:        RoomStatusAvailable,
			PricePerNight: input.PricePerNight,
			Notes:         sanitizeText(input.Notes, maxNotesLength),
			UpdatedAt:     service.now(),
		}
		if err := transactionStore.InsertRoom(ctx, room); err != nil {
			return err
		}
		created = room
		return service.appendActivity(ctx, transactionStore, actor, activityRoomRegister,
			fmt.Sprintf("Room %s registered", room.Number), room.Number, 0,
			activityDetails{"floor": room.Floor, "price_per_night": room.PricePerNight})
	})
	if err != nil {
		return Room{}, err
	}
	return created, nil
}

// ChangeRoomStatus applies a manual status change through the room state machine.
func (service *Service) ChangeRoomStatus(ctx context.Context, actor Actor, roomID RoomID, change RoomStatusChange) (Room, error) {
	entry := OperationLog{Operation: operationChangeRoomStatus, Actor: actor}
	if err := actor.validate(); err != nil {
		return Room{}, service.reject(ctx, entry, err)
	}
	if roomID.String() == "" {
		return Room{}, service.reject(ctx, entry, fmt.Errorf("%w: empty value", ErrInvalidRoomID))
	}
	if change.Status != "" {
		if _, err := ParseRoomStatus(string(change.Status)); err != nil {
			return Room{}, service.reject(ctx, entry, err)
		}
	}
	if change.PricePerNight != nil {
		if _, err := NewPrice(change.PricePerNight.Int64()); err != nil {
			return Room{}, service.reject(ctx, entry, err)
		}
	}
	if change.Status == "" && change.PricePerNight == nil && change.Notes == nil {
		return Room{}, service.reject(ctx, entry, fmt.Errorf("%w: nothing to change", ErrInvalidRoomStatus))
	}
	guest := normalizeGuest(change.Guest)

	var updated Room
	err := service.atomically(ctx, &entry, func(ctx context.Context, transactionStore Store) error {
		room, err := transactionStore.GetRoom(ctx, roomID.String())
		if err != nil {
			return err
		}
		entry.RoomNumber = room.Number
		next := room
		if change.Status != "" {
			if room.Status == RoomStatusBooked && room.BookingID != "" {
				return fmt.Errorf("%w: booking %s", ErrRoomHeldByBooking, room.BookingID)
			}
			next, err = transitionRoom(room, change.Status, guest)
			if err != nil {
				return err
			}
			if change.Status == RoomStatusOccupied {
				checkIn := service.now()
				next.CheckIn = &checkIn
				next.CheckOut = change.CheckOut
			}
		}
		if change.PricePerNight != nil {
			next.PricePerNight = *change.PricePerNight
		}
		if change.Notes != nil {
			next.Notes = sanitizeText(*change.Notes, maxNotesLength)
		}
		next.UpdatedAt = service.now()
		if err := transactionStore.UpdateRoom(ctx, next, room.Status); err != nil {
			return err
		}
		updated = next
		return service.appendActivity(ctx, transactionStore, actor, activityRoomUpdate,
			fmt.Sprintf("Room %s updated: %s -> %s", room.Number, room.Status, next.Status), room.Number, 0,
			activityDetails{"from": room.Status, "to": next.Status})
	})
	if err != nil {
		return Room{}, err
	}
	return updated, nil
}

// ListRooms returns every room ordered by number.
func (service *Service) ListRooms(ctx context.Context) ([]Room, error) {
	return service.store.ListRooms(ctx)
}

// GetRoom returns one room.
func (service *Service) GetRoom(ctx context.Context, roomID RoomID) (Room, error) {
	if roomID.String() == "" {
		return Room{}, fmt.Errorf("%w: empty value", ErrInvalidRoomID)
	}
	return service.store.GetRoom(ctx, roomID.String())
}
