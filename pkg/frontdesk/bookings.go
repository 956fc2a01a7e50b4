package frontdesk

import (
	"context"
	"fmt"
	"time"
)

// CreateBookingInput reserves an available room for a guest.
type CreateBookingInput struct {
	RoomNumber   RoomNumber
	GuestName    string
	GuestPhone   string
	CheckInDate  CalendarDate
	CheckOutDate CalendarDate
	Nights       int
	Notes        string
	Prepayment   Amount
	ShiftID      *ShiftID
}

// EditBookingInput changes an active booking. Nil fields stay as they are; a
// non-nil zero CheckOutDate clears the planned departure.
type EditBookingInput struct {
	RoomNumber   *RoomNumber
	GuestName    *string
	GuestPhone   *string
	CheckInDate  *CalendarDate
	CheckOutDate *CalendarDate
	Nights       *int
	Notes        *string
}

// CheckInInput converts an active booking into an occupied room.
type CheckInInput struct {
	Passport   string
	Nights     int
	Date       CalendarDate
	TotalPrice Amount
	ShiftID    *ShiftID
}

// CheckInResult reports the settlement of a check-in.
type CheckInResult struct {
	Booking   Booking
	Room      Room
	Remaining Amount
	FullTotal Amount
	Prepaid   Amount
}

func normalizeNights(raw int) (int, error) {
	if raw == 0 {
		return minNights, nil
	}
	if raw < minNights || raw > maxNights {
		return 0, fmt.Errorf("%w: must be between %d and %d", ErrInvalidNights, minNights, maxNights)
	}
	return raw, nil
}

func (service *Service) validateStayDates(checkIn CalendarDate, checkOut CalendarDate) error {
	if checkIn.IsZero() {
		return fmt.Errorf("%w: check-in date required", ErrInvalidCalendarDate)
	}
	latest := CalendarDateOf(service.Today().Start(service.location).AddDate(maxBookingLeadYears, 0, 0), service.location)
	if checkIn.After(latest) {
		return fmt.Errorf("%w: check-in date more than a year ahead", ErrInvalidCalendarDate)
	}
	if !checkOut.IsZero() && !checkOut.After(checkIn) {
		return fmt.Errorf("%w: check-out must be after check-in", ErrInvalidCalendarDate)
	}
	return nil
}

// reserveRoom moves room to booked for booking.
func (service *Service) reserveRoom(room Room, booking Booking) (Room, error) {
	next, err := transitionRoom(room, RoomStatusBooked, Guest{Name: booking.GuestName, Phone: booking.GuestPhone})
	if err != nil {
		return Room{}, err
	}
	return service.withBookingPreview(next, booking), nil
}

// withBookingPreview copies the booking's guest and planned stay onto a booked room.
func (service *Service) withBookingPreview(room Room, booking Booking) Room {
	room.GuestName = booking.GuestName
	room.GuestPhone = booking.GuestPhone
	room.BookingID = booking.ID
	room.CheckIn = service.dateStart(booking.CheckInDate)
	room.CheckOut = service.dateStart(booking.CheckOutDate)
	room.UpdatedAt = service.now()
	return room
}

// releaseRoom returns room to available when it is still held by bookingID.
// It reports false without writing when the room has moved on.
func (service *Service) releaseRoom(ctx context.Context, transactionStore Store, roomNumber string, bookingID string) (bool, error) {
	room, err := transactionStore.GetRoomByNumber(ctx, roomNumber)
	if err != nil {
		return false, err
	}
	if room.Status != RoomStatusBooked || room.BookingID != bookingID {
		return false, nil
	}
	next, err := transitionRoom(room, RoomStatusAvailable, Guest{})
	if err != nil {
		return false, err
	}
	next.UpdatedAt = service.now()
	if err := transactionStore.UpdateRoom(ctx, next, room.Status); err != nil {
		return false, err
	}
	return true, nil
}

func (service *Service) dateStart(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	date, err := ParseCalendarDate(raw)
	if err != nil {
		return nil
	}
	start := date.Start(service.location)
	return &start
}

func loadActiveBooking(ctx context.Context, transactionStore Store, bookingID BookingID) (Booking, error) {
	booking, err := transactionStore.GetBooking(ctx, bookingID.String())
	if err != nil {
		return Booking{}, err
	}
	if booking.Status != BookingStatusActive {
		return Booking{}, fmt.Errorf("%w: %s is %s", ErrBookingNotActive, booking.ID, booking.Status)
	}
	return booking, nil
}

func shiftIDValue(shiftID *ShiftID) string {
	if shiftID == nil {
		return ""
	}
	return shiftID.String()
}

// CreateBooking reserves an available room, and records the prepayment if any.
func (service *Service) CreateBooking(ctx context.Context, actor Actor, input CreateBookingInput) (Booking, error) {
	entry := OperationLog{Operation: operationCreateBooking, Actor: actor, RoomNumber: input.RoomNumber.String(), Amount: input.Prepayment, ShiftID: shiftIDValue(input.ShiftID)}
	if err := actor.validate(); err != nil {
		return Booking{}, service.reject(ctx, entry, err)
	}
	if input.RoomNumber.String() == "" {
		return Booking{}, service.reject(ctx, entry, fmt.Errorf("%w: empty value", ErrInvalidRoomNumber))
	}
	guestName, err := requireText(input.GuestName, maxGuestNameLength, ErrInvalidGuest)
	if err != nil {
		return Booking{}, service.reject(ctx, entry, err)
	}
	guestPhone, err := requireText(input.GuestPhone, maxGuestPhoneLength, ErrInvalidGuest)
	if err != nil {
		return Booking{}, service.reject(ctx, entry, err)
	}
	if err := service.validateStayDates(input.CheckInDate, input.CheckOutDate); err != nil {
		return Booking{}, service.reject(ctx, entry, err)
	}
	nights, err := normalizeNights(input.Nights)
	if err != nil {
		return Booking{}, service.reject(ctx, entry, err)
	}
	if _, err := NewPrice(input.Prepayment.Int64()); err != nil {
		return Booking{}, service.reject(ctx, entry, err)
	}

	now := service.now()
	booking := Booking{
		ID:           service.newID(),
		RoomNumber:   input.RoomNumber.String(),
		GuestName:    guestName,
		GuestPhone:   guestPhone,
		CheckInDate:  input.CheckInDate.String(),
		CheckOutDate: input.CheckOutDate.String(),
		Nights:       nights,
		Notes:        sanitizeText(input.Notes, maxNotesLength),
		Prepayment:   input.Prepayment,
		Status:       BookingStatusActive,
		CreatedBy:    actor.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	entry.BookingID = booking.ID
	err = service.atomically(ctx, &entry, func(ctx context.Context, transactionStore Store) error {
		room, err := transactionStore.GetRoomByNumber(ctx, booking.RoomNumber)
		if err != nil {
			return err
		}
		if room.Status != RoomStatusAvailable {
			return fmt.Errorf("%w: room %s is %s", ErrRoomUnavailable, room.Number, room.Status)
		}
		if err := transactionStore.InsertBooking(ctx, booking); err != nil {
			return err
		}
		reserved, err := service.reserveRoom(room, booking)
		if err != nil {
			return err
		}
		if err := transactionStore.UpdateRoom(ctx, reserved, room.Status); err != nil {
			return err
		}
		if booking.Prepayment > 0 {
			_, err := service.postTransaction(ctx, transactionStore, actor, Transaction{
				Type:        TransactionIncome,
				Category:    categoryPrepayment,
				Amount:      booking.Prepayment,
				Description: fmt.Sprintf("Room %s, %s - prepayment (booking)", booking.RoomNumber, booking.GuestName),
				RoomNumber:  booking.RoomNumber,
				ShiftID:     shiftIDValue(input.ShiftID),
				OccurredAt:  now,
				Day:         CalendarDateOf(now, service.location).String(),
			})
			if err != nil {
				return err
			}
		}
		return service.appendActivity(ctx, transactionStore, actor, activityBookingCreate,
			fmt.Sprintf("Booking: room %s, %s", booking.RoomNumber, booking.GuestName), booking.RoomNumber, booking.Prepayment,
			activityDetails{"booking_id": booking.ID, "check_in_date": booking.CheckInDate, "nights": booking.Nights})
	})
	if err != nil {
		return Booking{}, err
	}
	return booking, nil
}

// EditBooking changes an active booking. Moving to another room reserves the
// destination before the source is released.
func (service *Service) EditBooking(ctx context.Context, actor Actor, bookingID BookingID, input EditBookingInput) (Booking, error) {
	entry := OperationLog{Operation: operationEditBooking, Actor: actor, BookingID: bookingID.String()}
	if err := actor.validate(); err != nil {
		return Booking{}, service.reject(ctx, entry, err)
	}
	if bookingID.String() == "" {
		return Booking{}, service.reject(ctx, entry, fmt.Errorf("%w: empty value", ErrInvalidBookingID))
	}
	var guestName, guestPhone string
	var err error
	if input.GuestName != nil {
		if guestName, err = requireText(*input.GuestName, maxGuestNameLength, ErrInvalidGuest); err != nil {
			return Booking{}, service.reject(ctx, entry, err)
		}
	}
	if input.GuestPhone != nil {
		if guestPhone, err = requireText(*input.GuestPhone, maxGuestPhoneLength, ErrInvalidGuest); err != nil {
			return Booking{}, service.reject(ctx, entry, err)
		}
	}
	var nights int
	if input.Nights != nil {
		if nights, err = normalizeNights(*input.Nights); err != nil {
			return Booking{}, service.reject(ctx, entry, err)
		}
	}
	if input.RoomNumber != nil && input.RoomNumber.String() == "" {
		return Booking{}, service.reject(ctx, entry, fmt.Errorf("%w: empty value", ErrInvalidRoomNumber))
	}

	var updated Booking
	err = service.atomically(ctx, &entry, func(ctx context.Context, transactionStore Store) error {
		booking, err := loadActiveBooking(ctx, transactionStore, bookingID)
		if err != nil {
			return err
		}
		next := booking
		if input.GuestName != nil {
			next.GuestName = guestName
		}
		if input.GuestPhone != nil {
			next.GuestPhone = guestPhone
		}
		if input.CheckInDate != nil {
			next.CheckInDate = input.CheckInDate.String()
		}
		if input.CheckOutDate != nil {
			next.CheckOutDate = input.CheckOutDate.String()
		}
		if input.Nights != nil {
			next.Nights = nights
		}
		if input.Notes != nil {
			next.Notes = sanitizeText(*input.Notes, maxNotesLength)
		}
		if input.RoomNumber != nil {
			next.RoomNumber = input.RoomNumber.String()
		}
		if input.CheckInDate != nil || input.CheckOutDate != nil {
			checkIn, err := ParseCalendarDate(next.CheckInDate)
			if err != nil {
				return err
			}
			var checkOut CalendarDate
			if next.CheckOutDate != "" {
				if checkOut, err = ParseCalendarDate(next.CheckOutDate); err != nil {
					return err
				}
			}
			if err := service.validateStayDates(checkIn, checkOut); err != nil {
				return err
			}
		}
		next.UpdatedAt = service.now()
		entry.RoomNumber = next.RoomNumber

		if next.RoomNumber != booking.RoomNumber {
			destination, err := transactionStore.GetRoomByNumber(ctx, next.RoomNumber)
			if err != nil {
				return err
			}
			if destination.Status != RoomStatusAvailable {
				return fmt.Errorf("%w: room %s is %s", ErrRoomUnavailable, destination.Number, destination.Status)
			}
			reserved, err := service.reserveRoom(destination, next)
			if err != nil {
				return err
			}
			if err := transactionStore.UpdateRoom(ctx, reserved, destination.Status); err != nil {
				return err
			}
			if _, err := service.releaseRoom(ctx, transactionStore, booking.RoomNumber, booking.ID); err != nil {
				return err
			}
		} else {
			room, err := transactionStore.GetRoomByNumber(ctx, booking.RoomNumber)
			if err != nil {
				return err
			}
			if room.Status == RoomStatusBooked && room.BookingID == booking.ID {
				if err := transactionStore.UpdateRoom(ctx, service.withBookingPreview(room, next), room.Status); err != nil {
					return err
				}
			}
		}
		if err := transactionStore.UpdateBooking(ctx, next, BookingStatusActive); err != nil {
			return err
		}
		updated = next
		return service.appendActivity(ctx, transactionStore, actor, activityBookingEdit,
			fmt.Sprintf("Booking edited: room %s, %s", next.RoomNumber, next.GuestName), next.RoomNumber, 0,
			activityDetails{"booking_id": next.ID, "previous_room": booking.RoomNumber})
	})
	if err != nil {
		return Booking{}, err
	}
	return updated, nil
}

// CancelBooking cancels an active booking, frees its room, and refunds the prepayment.
func (service *Service) CancelBooking(ctx context.Context, actor Actor, bookingID BookingID, shiftID *ShiftID) error {
	entry := OperationLog{Operation: operationCancelBooking, Actor: actor, BookingID: bookingID.String(), ShiftID: shiftIDValue(shiftID)}
	if err := actor.validate(); err != nil {
		return service.reject(ctx, entry, err)
	}
	if bookingID.String() == "" {
		return service.reject(ctx, entry, fmt.Errorf("%w: empty value", ErrInvalidBookingID))
	}
	return service.atomically(ctx, &entry, func(ctx context.Context, transactionStore Store) error {
		booking, err := loadActiveBooking(ctx, transactionStore, bookingID)
		if err != nil {
			return err
		}
		entry.RoomNumber = booking.RoomNumber
		entry.Amount = booking.Prepayment
		cancelled := booking
		cancelled.Status = BookingStatusCancelled
		cancelled.UpdatedAt = service.now()
		if err := transactionStore.UpdateBooking(ctx, cancelled, BookingStatusActive); err != nil {
			return err
		}
		if _, err := service.releaseRoom(ctx, transactionStore, booking.RoomNumber, booking.ID); err != nil {
			return err
		}
		if booking.Prepayment > 0 {
			now := service.now()
			_, err := service.postTransaction(ctx, transactionStore, actor, Transaction{
				Type:        TransactionExpense,
				Category:    categoryPrepaymentRefund,
				Amount:      booking.Prepayment,
				Description: fmt.Sprintf("Room %s, %s - prepayment refunded (booking cancelled)", booking.RoomNumber, booking.GuestName),
				RoomNumber:  booking.RoomNumber,
				ShiftID:     shiftIDValue(shiftID),
				OccurredAt:  now,
				Day:         CalendarDateOf(now, service.location).String(),
			})
			if err != nil {
				return err
			}
		}
		return service.appendActivity(ctx, transactionStore, actor, activityBookingCancel,
			fmt.Sprintf("Booking cancelled: room %s, %s", booking.RoomNumber, booking.GuestName), booking.RoomNumber, booking.Prepayment,
			activityDetails{"booking_id": booking.ID})
	})
}

// CheckInBooking settles an active booking: the room becomes occupied and any
// balance beyond the prepayment is recorded as one income transaction.
func (service *Service) CheckInBooking(ctx context.Context, actor Actor, bookingID BookingID, input CheckInInput) (CheckInResult, error) {
	entry := OperationLog{Operation: operationCheckInBooking, Actor: actor, BookingID: bookingID.String(), ShiftID: shiftIDValue(input.ShiftID)}
	if err := actor.validate(); err != nil {
		return CheckInResult{}, service.reject(ctx, entry, err)
	}
	if bookingID.String() == "" {
		return CheckInResult{}, service.reject(ctx, entry, fmt.Errorf("%w: empty value", ErrInvalidBookingID))
	}
	if input.Nights < 0 || input.Nights > maxNights {
		return CheckInResult{}, service.reject(ctx, entry, fmt.Errorf("%w: must be between %d and %d", ErrInvalidNights, minNights, maxNights))
	}
	if _, err := NewPrice(input.TotalPrice.Int64()); err != nil {
		return CheckInResult{}, service.reject(ctx, entry, err)
	}
	passport := sanitizeText(input.Passport, maxPassportLength)

	var result CheckInResult
	err := service.atomically(ctx, &entry, func(ctx context.Context, transactionStore Store) error {
		booking, err := loadActiveBooking(ctx, transactionStore, bookingID)
		if err != nil {
			return err
		}
		entry.RoomNumber = booking.RoomNumber
		room, err := transactionStore.GetRoomByNumber(ctx, booking.RoomNumber)
		if err != nil {
			return err
		}
		if room.Status == RoomStatusBooked && room.BookingID != "" && room.BookingID != booking.ID {
			return fmt.Errorf("%w: room %s is held by booking %s", ErrRoomUnavailable, room.Number, room.BookingID)
		}

		nights := input.Nights
		if nights == 0 {
			nights = booking.Nights
		}
		if nights < minNights {
			nights = minNights
		}
		fullTotal := input.TotalPrice
		if fullTotal <= 0 {
			fullTotal = Amount(int64(nights) * room.PricePerNight.Int64())
		}
		prepaid := booking.Prepayment
		remaining := clampAtZero(fullTotal.Int64() - prepaid.Int64())

		checkedIn := booking
		checkedIn.Status = BookingStatusCheckedIn
		checkedIn.UpdatedAt = service.now()
		if err := transactionStore.UpdateBooking(ctx, checkedIn, BookingStatusActive); err != nil {
			return err
		}

		occupied, err := transitionRoom(room, RoomStatusOccupied, Guest{Name: booking.GuestName, Passport: passport, Phone: booking.GuestPhone})
		if err != nil {
			return err
		}
		checkInTime := service.now()
		occupied.CheckIn = &checkInTime
		occupied.CheckOut = service.dateStart(booking.CheckOutDate)
		if occupied.CheckOut == nil {
			arrival := input.Date
			if arrival.IsZero() {
				arrival = service.Today()
			}
			departure := arrival.AddDays(nights).Start(service.location)
			occupied.CheckOut = &departure
		}
		occupied.UpdatedAt = checkInTime
		if err := transactionStore.UpdateRoom(ctx, occupied, room.Status); err != nil {
			return err
		}

		if remaining > 0 {
			if _, err := NewAmount(remaining.Int64()); err != nil {
				return err
			}
			occurredAt := service.now()
			if !input.Date.IsZero() {
				occurredAt = input.Date.Start(service.location)
			}
			_, err := service.postTransaction(ctx, transactionStore, actor, Transaction{
				Type:        TransactionIncome,
				Category:    categoryRoomPayment,
				Amount:      remaining,
				Description: fmt.Sprintf("Room %s, %s, %d nights (booking balance)", booking.RoomNumber, booking.GuestName, nights),
				RoomNumber:  booking.RoomNumber,
				ShiftID:     shiftIDValue(input.ShiftID),
				OccurredAt:  occurredAt,
				Day:         CalendarDateOf(occurredAt, service.location).String(),
			})
			if err != nil {
				return err
			}
		}
		entry.Amount = fullTotal
		result = CheckInResult{
			Booking:   checkedIn,
			Room:      occupied,
			Remaining: remaining,
			FullTotal: fullTotal,
			Prepaid:   prepaid,
		}
		return service.appendActivity(ctx, transactionStore, actor, activityBookingCheckIn,
			fmt.Sprintf("Check-in from booking: room %s, %s, total: %d, prepaid: %d, remaining: %d", booking.RoomNumber, booking.GuestName, fullTotal, prepaid, remaining),
			booking.RoomNumber, fullTotal,
			activityDetails{"booking_id": booking.ID, "nights": nights, "remaining": remaining})
	})
	if err != nil {
		return CheckInResult{}, err
	}
	return result, nil
}

// ListBookings lists bookings by check-in date.
func (service *Service) ListBookings(ctx context.Context, filter BookingFilter) ([]Booking, error) {
	if filter.Status != "" {
		if _, err := ParseBookingStatus(string(filter.Status)); err != nil {
			return nil, err
		}
	}
	return service.store.ListBookings(ctx, filter)
}

// GetBooking returns one booking.
func (service *Service) GetBooking(ctx context.Context, bookingID BookingID) (Booking, error) {
	if bookingID.String() == "" {
		return Booking{}, fmt.Errorf("%w: empty value", ErrInvalidBookingID)
	}
	return service.store.GetBooking(ctx, bookingID.String())
}
