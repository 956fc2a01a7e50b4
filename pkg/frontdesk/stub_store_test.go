package frontdesk

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

var hotelLocation = time.FixedZone("UZT", 5*60*60)

var fixedNow = time.Date(2024, time.March, 15, 10, 30, 0, 0, hotelLocation)

var errStoreFailure = errors.New("store error")

const (
	fixedToday       = "2024-03-15"
	adminIDValue     = "admin-1"
	adminNameValue   = "Aziza"
	otherAdminID     = "admin-2"
	otherAdminName   = "Bekzod"
	superAdminID     = "root"
	superAdminName   = "Director"
	roomNumber301    = "301"
	roomNumber302    = "302"
	roomPrice350k    = 350000
	guestNameValue   = "Jasur Karimov"
	guestPhoneValue  = "+998901234567"
	unknownIDValue   = "missing"
	errorMismatchFmt = "expected %v, got %v"
)

type stubState struct {
	rooms        map[string]Room
	bookings     map[string]Booking
	transactions map[string]Transaction
	shifts       map[string]Shift
	reports      map[string]DailyReport
	activity     []ActivityEntry
	dayTrace     []string
}

func newStubState() stubState {
	return stubState{
		rooms:        map[string]Room{},
		bookings:     map[string]Booking{},
		transactions: map[string]Transaction{},
		shifts:       map[string]Shift{},
		reports:      map[string]DailyReport{},
	}
}

func (state stubState) clone() stubState {
	cloned := newStubState()
	for key, value := range state.rooms {
		cloned.rooms[key] = value
	}
	for key, value := range state.bookings {
		cloned.bookings[key] = value
	}
	for key, value := range state.transactions {
		cloned.transactions[key] = value
	}
	for key, value := range state.shifts {
		cloned.shifts[key] = value
	}
	for key, value := range state.reports {
		cloned.reports[key] = value
	}
	cloned.activity = append([]ActivityEntry(nil), state.activity...)
	cloned.dayTrace = append([]string(nil), state.dayTrace...)
	return cloned
}

// stubStore keeps rows in memory. WithTx works on a copy that replaces the
// committed state only when fn succeeds.
type stubStore struct {
	mutex    sync.Mutex
	state    stubState
	failures map[string]error
	inTx     bool
}

func newStubStore(test *testing.T) *stubStore {
	test.Helper()
	return &stubStore{state: newStubState(), failures: map[string]error{}}
}

func (store *stubStore) failOn(method string, err error) {
	store.failures[method] = err
}

func (store *stubStore) fail(method string) error {
	return store.failures[method]
}

func (store *stubStore) WithTx(ctx context.Context, fn func(ctx context.Context, txStore Store) error) error {
	if store.inTx {
		return fn(ctx, store)
	}
	if err := store.fail("WithTx"); err != nil {
		return err
	}
	store.mutex.Lock()
	defer store.mutex.Unlock()
	transactionStore := &stubStore{state: store.state.clone(), failures: store.failures, inTx: true}
	if err := fn(ctx, transactionStore); err != nil {
		return err
	}
	store.state = transactionStore.state
	return nil
}

func (store *stubStore) lock() func() {
	if store.inTx {
		return func() {}
	}
	store.mutex.Lock()
	return store.mutex.Unlock
}

func (store *stubStore) InsertRoom(ctx context.Context, room Room) error {
	if err := store.fail("InsertRoom"); err != nil {
		return err
	}
	defer store.lock()()
	for _, existing := range store.state.rooms {
		if existing.Number == room.Number {
			return ErrRoomNumberTaken
		}
	}
	store.state.rooms[room.ID] = room
	return nil
}

func (store *stubStore) GetRoom(ctx context.Context, roomID string) (Room, error) {
	if err := store.fail("GetRoom"); err != nil {
		return Room{}, err
	}
	defer store.lock()()
	room, ok := store.state.rooms[roomID]
	if !ok {
		return Room{}, ErrUnknownRoom
	}
	return room, nil
}

func (store *stubStore) GetRoomByNumber(ctx context.Context, number string) (Room, error) {
	if err := store.fail("GetRoomByNumber"); err != nil {
		return Room{}, err
	}
	defer store.lock()()
	for _, room := range store.state.rooms {
		if room.Number == number {
			return room, nil
		}
	}
	return Room{}, ErrUnknownRoom
}

func (store *stubStore) ListRooms(ctx context.Context) ([]Room, error) {
	if err := store.fail("ListRooms"); err != nil {
		return nil, err
	}
	defer store.lock()()
	rooms := make([]Room, 0, len(store.state.rooms))
	for _, room := range store.state.rooms {
		rooms = append(rooms, room)
	}
	sort.Slice(rooms, func(left, right int) bool { return rooms[left].Number < rooms[right].Number })
	return rooms, nil
}

func (store *stubStore) UpdateRoom(ctx context.Context, room Room, expected RoomStatus) error {
	if err := store.fail("UpdateRoom"); err != nil {
		return err
	}
	defer store.lock()()
	existing, ok := store.state.rooms[room.ID]
	if !ok {
		return ErrUnknownRoom
	}
	if existing.Status != expected {
		return ErrRoomStatusChanged
	}
	store.state.rooms[room.ID] = room
	return nil
}

func (store *stubStore) InsertBooking(ctx context.Context, booking Booking) error {
	if err := store.fail("InsertBooking"); err != nil {
		return err
	}
	defer store.lock()()
	store.state.bookings[booking.ID] = booking
	return nil
}

func (store *stubStore) GetBooking(ctx context.Context, bookingID string) (Booking, error) {
	if err := store.fail("GetBooking"); err != nil {
		return Booking{}, err
	}
	defer store.lock()()
	booking, ok := store.state.bookings[bookingID]
	if !ok {
		return Booking{}, ErrUnknownBooking
	}
	return booking, nil
}

func (store *stubStore) UpdateBooking(ctx context.Context, booking Booking, expected BookingStatus) error {
	if err := store.fail("UpdateBooking"); err != nil {
		return err
	}
	defer store.lock()()
	existing, ok := store.state.bookings[booking.ID]
	if !ok {
		return ErrUnknownBooking
	}
	if existing.Status != expected {
		return ErrBookingStatusChanged
	}
	store.state.bookings[booking.ID] = booking
	return nil
}

func (store *stubStore) ListBookings(ctx context.Context, filter BookingFilter) ([]Booking, error) {
	if err := store.fail("ListBookings"); err != nil {
		return nil, err
	}
	defer store.lock()()
	bookings := []Booking{}
	for _, booking := range store.state.bookings {
		if filter.Status != "" && booking.Status != filter.Status {
			continue
		}
		if filter.RoomNumber != "" && booking.RoomNumber != filter.RoomNumber {
			continue
		}
		bookings = append(bookings, booking)
	}
	sort.Slice(bookings, func(left, right int) bool { return bookings[left].ID < bookings[right].ID })
	return bookings, nil
}

func (store *stubStore) InsertTransaction(ctx context.Context, transaction Transaction) error {
	if err := store.fail("InsertTransaction"); err != nil {
		return err
	}
	defer store.lock()()
	store.state.transactions[transaction.ID] = transaction
	return nil
}

func (store *stubStore) GetTransaction(ctx context.Context, transactionID string) (Transaction, error) {
	if err := store.fail("GetTransaction"); err != nil {
		return Transaction{}, err
	}
	defer store.lock()()
	transaction, ok := store.state.transactions[transactionID]
	if !ok {
		return Transaction{}, ErrUnknownTransaction
	}
	return transaction, nil
}

func (store *stubStore) UpdateTransaction(ctx context.Context, transaction Transaction) error {
	if err := store.fail("UpdateTransaction"); err != nil {
		return err
	}
	defer store.lock()()
	if _, ok := store.state.transactions[transaction.ID]; !ok {
		return ErrUnknownTransaction
	}
	store.state.transactions[transaction.ID] = transaction
	return nil
}

func (store *stubStore) DeleteTransaction(ctx context.Context, transactionID string) error {
	if err := store.fail("DeleteTransaction"); err != nil {
		return err
	}
	defer store.lock()()
	if _, ok := store.state.transactions[transactionID]; !ok {
		return ErrUnknownTransaction
	}
	delete(store.state.transactions, transactionID)
	return nil
}

func (store *stubStore) ListTransactions(ctx context.Context, filter TransactionFilter) ([]Transaction, error) {
	if err := store.fail("ListTransactions"); err != nil {
		return nil, err
	}
	defer store.lock()()
	transactions := []Transaction{}
	for _, transaction := range store.state.transactions {
		if filter.Day != "" && transaction.Day != filter.Day {
			continue
		}
		if filter.Type != "" && transaction.Type != filter.Type {
			continue
		}
		if filter.ShiftID != "" && transaction.ShiftID != filter.ShiftID {
			continue
		}
		transactions = append(transactions, transaction)
	}
	sort.Slice(transactions, func(left, right int) bool { return transactions[left].ID < transactions[right].ID })
	return transactions, nil
}

func (store *stubStore) SumDay(ctx context.Context, day string) (DayTotals, error) {
	if err := store.fail("SumDay"); err != nil {
		return DayTotals{}, err
	}
	defer store.lock()()
	store.state.dayTrace = append(store.state.dayTrace, "sum:"+day)
	var totals DayTotals
	for _, transaction := range store.state.transactions {
		if transaction.Day != day {
			continue
		}
		if transaction.Type == TransactionIncome {
			totals.Income += transaction.Amount
		} else {
			totals.Expense += transaction.Amount
		}
	}
	return totals, nil
}

func (store *stubStore) InsertShift(ctx context.Context, shift Shift) error {
	if err := store.fail("InsertShift"); err != nil {
		return err
	}
	defer store.lock()()
	store.state.shifts[shift.ID] = shift
	return nil
}

func (store *stubStore) GetShift(ctx context.Context, shiftID string) (Shift, error) {
	if err := store.fail("GetShift"); err != nil {
		return Shift{}, err
	}
	defer store.lock()()
	shift, ok := store.state.shifts[shiftID]
	if !ok {
		return Shift{}, ErrUnknownShift
	}
	return shift, nil
}

func (store *stubStore) UpdateShift(ctx context.Context, shift Shift) error {
	if err := store.fail("UpdateShift"); err != nil {
		return err
	}
	defer store.lock()()
	if _, ok := store.state.shifts[shift.ID]; !ok {
		return ErrUnknownShift
	}
	store.state.shifts[shift.ID] = shift
	return nil
}

func (store *stubStore) ListShifts(ctx context.Context, filter ShiftFilter) ([]Shift, error) {
	if err := store.fail("ListShifts"); err != nil {
		return nil, err
	}
	defer store.lock()()
	shifts := []Shift{}
	for _, shift := range store.state.shifts {
		if filter.Since != nil && shift.StartTime.Before(*filter.Since) {
			continue
		}
		if filter.Until != nil && !shift.StartTime.Before(*filter.Until) {
			continue
		}
		if filter.ExcludeSuperAdmins && shift.AdminRole == RoleSuperAdmin {
			continue
		}
		shifts = append(shifts, shift)
	}
	sort.Slice(shifts, func(left, right int) bool { return shifts[left].StartTime.After(shifts[right].StartTime) })
	return shifts, nil
}

func (store *stubStore) LockDay(ctx context.Context, day string) error {
	if err := store.fail("LockDay"); err != nil {
		return err
	}
	defer store.lock()()
	if store.inTx {
		store.state.dayTrace = append(store.state.dayTrace, "lock:"+day)
	}
	return nil
}

func (store *stubStore) DailyReportExists(ctx context.Context, day string) (bool, error) {
	if err := store.fail("DailyReportExists"); err != nil {
		return false, err
	}
	defer store.lock()()
	store.state.dayTrace = append(store.state.dayTrace, "check:"+day)
	_, ok := store.state.reports[day]
	return ok, nil
}

func (store *stubStore) GetDailyReport(ctx context.Context, day string) (DailyReport, error) {
	if err := store.fail("GetDailyReport"); err != nil {
		return DailyReport{}, err
	}
	defer store.lock()()
	report, ok := store.state.reports[day]
	if !ok {
		return DailyReport{}, ErrUnknownDailyReport
	}
	return report, nil
}

func (store *stubStore) UpsertDailyReport(ctx context.Context, report DailyReport) error {
	if err := store.fail("UpsertDailyReport"); err != nil {
		return err
	}
	defer store.lock()()
	store.state.reports[report.Date] = report
	return nil
}

func (store *stubStore) ListDailyReports(ctx context.Context, month string) ([]DailyReport, error) {
	if err := store.fail("ListDailyReports"); err != nil {
		return nil, err
	}
	defer store.lock()()
	reports := []DailyReport{}
	for _, report := range store.state.reports {
		if month != "" && !strings.HasPrefix(report.Date, month+"-") {
			continue
		}
		reports = append(reports, report)
	}
	sort.Slice(reports, func(left, right int) bool { return reports[left].Date < reports[right].Date })
	return reports, nil
}

func (store *stubStore) InsertActivity(ctx context.Context, entry ActivityEntry) error {
	if err := store.fail("InsertActivity"); err != nil {
		return err
	}
	defer store.lock()()
	store.state.activity = append(store.state.activity, entry)
	return nil
}

func (store *stubStore) ListActivity(ctx context.Context, limit int) ([]ActivityEntry, error) {
	if err := store.fail("ListActivity"); err != nil {
		return nil, err
	}
	defer store.lock()()
	entries := []ActivityEntry{}
	for index := len(store.state.activity) - 1; index >= 0 && len(entries) < limit; index-- {
		entries = append(entries, store.state.activity[index])
	}
	return entries, nil
}

func (store *stubStore) seedRoom(test *testing.T, number string, status RoomStatus, price Amount) Room {
	test.Helper()
	room := Room{ID: "room-" + number, Number: number, Floor: 3, Status: status, PricePerNight: price}
	if status.holdsGuest() {
		room.GuestName = guestNameValue
	}
	store.state.rooms[room.ID] = room
	return room
}

func (store *stubStore) seedShift(test *testing.T, id string, adminID string, closed bool) Shift {
	test.Helper()
	shift := Shift{ID: id, AdminID: adminID, AdminName: adminNameValue, AdminRole: RoleAdmin, StartTime: fixedNow, Closed: closed}
	store.state.shifts[id] = shift
	return shift
}

func (store *stubStore) seedReport(test *testing.T, day string) {
	test.Helper()
	store.state.reports[day] = DailyReport{Date: day, ReportText: "closed", ClosedAt: fixedNow}
}

func (store *stubStore) mustRoom(test *testing.T, number string) Room {
	test.Helper()
	for _, room := range store.state.rooms {
		if room.Number == number {
			return room
		}
	}
	test.Fatalf("room %s not found", number)
	return Room{}
}

func (store *stubStore) mustBooking(test *testing.T, bookingID string) Booking {
	test.Helper()
	booking, ok := store.state.bookings[bookingID]
	if !ok {
		test.Fatalf("booking %s not found", bookingID)
	}
	return booking
}

func (store *stubStore) mustShift(test *testing.T, shiftID string) Shift {
	test.Helper()
	shift, ok := store.state.shifts[shiftID]
	if !ok {
		test.Fatalf("shift %s not found", shiftID)
	}
	return shift
}

func (store *stubStore) transactionsOfType(transactionType TransactionType) []Transaction {
	transactions := []Transaction{}
	for _, transaction := range store.state.transactions {
		if transaction.Type == transactionType {
			transactions = append(transactions, transaction)
		}
	}
	sort.Slice(transactions, func(left, right int) bool { return transactions[left].ID < transactions[right].ID })
	return transactions
}

func sequentialIDs(prefix string) func() string {
	var counter atomic.Int64
	return func() string {
		return fmt.Sprintf("%s-%03d", prefix, counter.Add(1))
	}
}

func mustNewService(test *testing.T, store Store, options ...ServiceOption) *Service {
	test.Helper()
	defaults := []ServiceOption{WithLocation(hotelLocation), WithIDGenerator(sequentialIDs("id"))}
	service, err := NewService(store, func() time.Time { return fixedNow }, append(defaults, options...)...)
	if err != nil {
		test.Fatalf("new service: %v", err)
	}
	return service
}

func mustActor(test *testing.T, id string, name string, role Role) Actor {
	test.Helper()
	actor, err := NewActor(id, name, role)
	if err != nil {
		test.Fatalf("actor: %v", err)
	}
	return actor
}

func adminActor(test *testing.T) Actor {
	test.Helper()
	return mustActor(test, adminIDValue, adminNameValue, RoleAdmin)
}

func otherAdminActor(test *testing.T) Actor {
	test.Helper()
	return mustActor(test, otherAdminID, otherAdminName, RoleAdmin)
}

func superAdminActor(test *testing.T) Actor {
	test.Helper()
	return mustActor(test, superAdminID, superAdminName, RoleSuperAdmin)
}

func mustRoomNumber(test *testing.T, raw string) RoomNumber {
	test.Helper()
	number, err := NewRoomNumber(raw)
	if err != nil {
		test.Fatalf("room number: %v", err)
	}
	return number
}

func mustRoomID(test *testing.T, raw string) RoomID {
	test.Helper()
	id, err := NewRoomID(raw)
	if err != nil {
		test.Fatalf("room id: %v", err)
	}
	return id
}

func mustBookingID(test *testing.T, raw string) BookingID {
	test.Helper()
	id, err := NewBookingID(raw)
	if err != nil {
		test.Fatalf("booking id: %v", err)
	}
	return id
}

func mustShiftID(test *testing.T, raw string) *ShiftID {
	test.Helper()
	id, err := NewShiftID(raw)
	if err != nil {
		test.Fatalf("shift id: %v", err)
	}
	return &id
}

func mustTransactionID(test *testing.T, raw string) TransactionID {
	test.Helper()
	id, err := NewTransactionID(raw)
	if err != nil {
		test.Fatalf("transaction id: %v", err)
	}
	return id
}

func mustDate(test *testing.T, raw string) CalendarDate {
	test.Helper()
	date, err := ParseCalendarDate(raw)
	if err != nil {
		test.Fatalf("calendar date: %v", err)
	}
	return date
}

func mustAmount(test *testing.T, raw int64) Amount {
	test.Helper()
	amount, err := NewAmount(raw)
	if err != nil {
		test.Fatalf("amount: %v", err)
	}
	return amount
}
