package frontdesk

import (
	"context"
	"errors"
	"testing"
)

func TestCanTransitionTable(test *testing.T) {
	test.Parallel()
	statuses := []RoomStatus{RoomStatusAvailable, RoomStatusOccupied, RoomStatusCleaning, RoomStatusMaintenance, RoomStatusBooked}
	allowed := map[RoomStatus]map[RoomStatus]bool{
		RoomStatusAvailable:   {RoomStatusOccupied: true, RoomStatusCleaning: true, RoomStatusMaintenance: true, RoomStatusBooked: true},
		RoomStatusOccupied:    {RoomStatusAvailable: true, RoomStatusCleaning: true},
		RoomStatusCleaning:    {RoomStatusAvailable: true, RoomStatusMaintenance: true},
		RoomStatusMaintenance: {RoomStatusAvailable: true, RoomStatusCleaning: true},
		RoomStatusBooked:      {RoomStatusOccupied: true, RoomStatusAvailable: true},
	}
	for _, from := range statuses {
		for _, to := range statuses {
			if got := CanTransition(from, to); got != allowed[from][to] {
				test.Fatalf("CanTransition(%s, %s) = %v, want %v", from, to, got, allowed[from][to])
			}
		}
	}
}

func TestTransitionRoomGuestFields(test *testing.T) {
	test.Parallel()
	occupied := Room{ID: "room-1", Number: roomNumber301, Status: RoomStatusOccupied, GuestName: guestNameValue, GuestPassport: "AA1", GuestPhone: guestPhoneValue, BookingID: "stale"}
	occupied.CheckIn = &fixedNow

	cleaning, err := transitionRoom(occupied, RoomStatusCleaning, Guest{})
	if err != nil {
		test.Fatalf("transition: %v", err)
	}
	if cleaning.GuestName != "" || cleaning.GuestPassport != "" || cleaning.GuestPhone != "" || cleaning.CheckIn != nil || cleaning.BookingID != "" {
		test.Fatalf("expected guest fields cleared, got %+v", cleaning)
	}

	available := Room{ID: "room-2", Number: roomNumber302, Status: RoomStatusAvailable}
	if _, err := transitionRoom(available, RoomStatusOccupied, Guest{}); !errors.Is(err, ErrInvalidGuest) {
		test.Fatalf(errorMismatchFmt, ErrInvalidGuest, err)
	}
	if _, err := transitionRoom(available, RoomStatusAvailable, Guest{}); !errors.Is(err, ErrInvalidTransition) {
		test.Fatalf(errorMismatchFmt, ErrInvalidTransition, err)
	}
}

func TestChangeRoomStatus(test *testing.T) {
	test.Parallel()
	testCases := []struct {
		name       string
		seedStatus RoomStatus
		bookingID  string
		change     RoomStatusChange
		wantErr    error
		wantStatus RoomStatus
	}{
		{
			name:       "available to occupied with guest",
			seedStatus: RoomStatusAvailable,
			change:     RoomStatusChange{Status: RoomStatusOccupied, Guest: Guest{Name: guestNameValue, Passport: "AB1234567"}},
			wantStatus: RoomStatusOccupied,
		},
		{
			name:       "occupied to cleaning",
			seedStatus: RoomStatusOccupied,
			change:     RoomStatusChange{Status: RoomStatusCleaning},
			wantStatus: RoomStatusCleaning,
		},
		{
			name:       "cleaning to occupied is illegal",
			seedStatus: RoomStatusCleaning,
			change:     RoomStatusChange{Status: RoomStatusOccupied, Guest: Guest{Name: guestNameValue}},
			wantErr:    ErrIllegalRoomTransition,
			wantStatus: RoomStatusCleaning,
		},
		{
			name:       "occupied without guest name",
			seedStatus: RoomStatusAvailable,
			change:     RoomStatusChange{Status: RoomStatusOccupied},
			wantErr:    ErrInvalidGuest,
			wantStatus: RoomStatusAvailable,
		},
		{
			name:       "booked room held by booking",
			seedStatus: RoomStatusBooked,
			bookingID:  "booking-1",
			change:     RoomStatusChange{Status: RoomStatusAvailable},
			wantErr:    ErrRoomHeldByBooking,
			wantStatus: RoomStatusBooked,
		},
		{
			name:       "manual booked room released",
			seedStatus: RoomStatusBooked,
			change:     RoomStatusChange{Status: RoomStatusAvailable},
			wantStatus: RoomStatusAvailable,
		},
		{
			name:       "unknown status",
			seedStatus: RoomStatusAvailable,
			change:     RoomStatusChange{Status: "demolished"},
			wantErr:    ErrInvalidRoomStatus,
			wantStatus: RoomStatusAvailable,
		},
	}
	for _, testCase := range testCases {
		testCase := testCase
		test.Run(testCase.name, func(test *testing.T) {
			test.Parallel()
			store := newStubStore(test)
			room := store.seedRoom(test, roomNumber301, testCase.seedStatus, roomPrice350k)
			if testCase.bookingID != "" {
				room.BookingID = testCase.bookingID
				store.state.rooms[room.ID] = room
			}
			service := mustNewService(test, store)

			_, err := service.ChangeRoomStatus(context.Background(), adminActor(test), mustRoomID(test, room.ID), testCase.change)
			if testCase.wantErr == nil && err != nil {
				test.Fatalf("change room status: %v", err)
			}
			if testCase.wantErr != nil && !errors.Is(err, testCase.wantErr) {
				test.Fatalf(errorMismatchFmt, testCase.wantErr, err)
			}
			if got := store.mustRoom(test, roomNumber301).Status; got != testCase.wantStatus {
				test.Fatalf("expected status %s, got %s", testCase.wantStatus, got)
			}
		})
	}
}

func TestChangeRoomStatusUpdatesPriceAndNotes(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	room := store.seedRoom(test, roomNumber301, RoomStatusAvailable, roomPrice350k)
	service := mustNewService(test, store)
	price := Amount(400000)
	notes := "<script>"

	updated, err := service.ChangeRoomStatus(context.Background(), adminActor(test), mustRoomID(test, room.ID), RoomStatusChange{PricePerNight: &price, Notes: &notes})
	if err != nil {
		test.Fatalf("change room: %v", err)
	}
	if updated.Status != RoomStatusAvailable || updated.PricePerNight != price || updated.Notes != "&lt;script&gt;" {
		test.Fatalf("unexpected room: %+v", updated)
	}
	if len(store.state.transactions) != 0 {
		test.Fatalf("expected no financial side effects")
	}

	if _, err := service.ChangeRoomStatus(context.Background(), adminActor(test), mustRoomID(test, unknownIDValue), RoomStatusChange{Notes: &notes}); !errors.Is(err, ErrUnknownRoom) {
		test.Fatalf(errorMismatchFmt, ErrUnknownRoom, err)
	}
	if _, err := service.ChangeRoomStatus(context.Background(), adminActor(test), mustRoomID(test, room.ID), RoomStatusChange{}); KindOf(err) != KindValidation {
		test.Fatalf("expected validation error for empty change, got %v", err)
	}
}

func TestChangeRoomStatusLostRaceIsConflict(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	room := store.seedRoom(test, roomNumber301, RoomStatusAvailable, roomPrice350k)
	store.failOn("UpdateRoom", ErrRoomStatusChanged)
	service := mustNewService(test, store)

	_, err := service.ChangeRoomStatus(context.Background(), adminActor(test), mustRoomID(test, room.ID), RoomStatusChange{Status: RoomStatusCleaning})
	if KindOf(err) != KindConflict {
		test.Fatalf("expected CONFLICT, got %v", err)
	}
}

func TestRegisterRoom(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	store.seedRoom(test, roomNumber301, RoomStatusAvailable, roomPrice350k)
	service := mustNewService(test, store)
	input := RoomInput{Number: mustRoomNumber(test, roomNumber302), Floor: 3, PricePerNight: roomPrice350k}

	if _, err := service.RegisterRoom(context.Background(), adminActor(test), input); !errors.Is(err, ErrSuperAdminRequired) {
		test.Fatalf(errorMismatchFmt, ErrSuperAdminRequired, err)
	}
	room, err := service.RegisterRoom(context.Background(), superAdminActor(test), input)
	if err != nil {
		test.Fatalf("register room: %v", err)
	}
	if room.Status != RoomStatusAvailable || room.Number != roomNumber302 || room.ID == "" {
		test.Fatalf("unexpected room: %+v", room)
	}
	duplicate := RoomInput{Number: mustRoomNumber(test, roomNumber301)}
	if _, err := service.RegisterRoom(context.Background(), superAdminActor(test), duplicate); !errors.Is(err, ErrRoomNumberTaken) {
		test.Fatalf(errorMismatchFmt, ErrRoomNumberTaken, err)
	}
	rooms, err := service.ListRooms(context.Background())
	if err != nil {
		test.Fatalf("list rooms: %v", err)
	}
	if len(rooms) != 2 || rooms[0].Number != roomNumber301 || rooms[1].Number != roomNumber302 {
		test.Fatalf("unexpected rooms: %+v", rooms)
	}
}
