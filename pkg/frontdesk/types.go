package frontdesk

import (
	"context"
	"fmt"
	"html"
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

// Amount is an integer sum of so'm.
type Amount int64

// Int64 returns the raw amount.
func (amount Amount) Int64() int64 {
	return int64(amount)
}

// NewAmount validates a transaction amount: strictly positive and at most MaxAmount.
func NewAmount(raw int64) (Amount, error) {
	if raw <= 0 {
		return 0, fmt.Errorf("%w: must be greater than zero", ErrInvalidAmount)
	}
	if raw > int64(MaxAmount) {
		return 0, fmt.Errorf("%w: must not exceed %d", ErrInvalidAmount, MaxAmount)
	}
	return Amount(raw), nil
}

// NewAmountFromFloat validates a decoded JSON number as a transaction amount.
func NewAmountFromFloat(raw float64) (Amount, error) {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0, fmt.Errorf("%w: must be finite", ErrInvalidAmount)
	}
	if raw != math.Trunc(raw) {
		return 0, fmt.Errorf("%w: must be a whole number", ErrInvalidAmount)
	}
	if raw > float64(MaxAmount) {
		return 0, fmt.Errorf("%w: must not exceed %d", ErrInvalidAmount, MaxAmount)
	}
	return NewAmount(int64(raw))
}

// NewPrice validates a non-negative price, prepayment, or total.
func NewPrice(raw int64) (Amount, error) {
	if raw < 0 {
		return 0, fmt.Errorf("%w: must not be negative", ErrInvalidPrice)
	}
	if raw > int64(MaxAmount) {
		return 0, fmt.Errorf("%w: must not exceed %d", ErrInvalidPrice, MaxAmount)
	}
	return Amount(raw), nil
}

// RoomID identifies a room row.
type RoomID struct {
	value string
}

// RoomNumber is the human-facing room label, unique per hotel.
type RoomNumber struct {
	value string
}

// BookingID identifies a booking.
type BookingID struct {
	value string
}

// ShiftID identifies a cash-drawer shift.
type ShiftID struct {
	value string
}

// TransactionID identifies a ledger transaction.
type TransactionID struct {
	value string
}

// NewRoomID validates and normalizes a room id.
func NewRoomID(raw string) (RoomID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return RoomID{}, fmt.Errorf("%w: empty value", ErrInvalidRoomID)
	}
	return RoomID{value: trimmed}, nil
}

// String returns the normalized identifier.
func (id RoomID) String() string {
	return id.value
}

// NewRoomNumber validates and normalizes a room number.
func NewRoomNumber(raw string) (RoomNumber, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return RoomNumber{}, fmt.Errorf("%w: empty value", ErrInvalidRoomNumber)
	}
	if utf8.RuneCountInString(trimmed) > maxRoomNumberLength {
		return RoomNumber{}, fmt.Errorf("%w: longer than %d characters", ErrInvalidRoomNumber, maxRoomNumberLength)
	}
	return RoomNumber{value: trimmed}, nil
}

// String returns the normalized room number.
func (number RoomNumber) String() string {
	return number.value
}

// NewBookingID validates and normalizes a booking id.
func NewBookingID(raw string) (BookingID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return BookingID{}, fmt.Errorf("%w: empty value", ErrInvalidBookingID)
	}
	return BookingID{value: trimmed}, nil
}

// String returns the normalized identifier.
func (id BookingID) String() string {
	return id.value
}

// NewShiftID validates and normalizes a shift id.
func NewShiftID(raw string) (ShiftID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ShiftID{}, fmt.Errorf("%w: empty value", ErrInvalidShiftID)
	}
	return ShiftID{value: trimmed}, nil
}

// String returns the normalized identifier.
func (id ShiftID) String() string {
	return id.value
}

// NewOptionalShiftID returns nil for a blank value.
func NewOptionalShiftID(raw string) (*ShiftID, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	shiftID, err := NewShiftID(raw)
	if err != nil {
		return nil, err
	}
	return &shiftID, nil
}

// NewTransactionID validates and normalizes a transaction id.
func NewTransactionID(raw string) (TransactionID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return TransactionID{}, fmt.Errorf("%w: empty value", ErrInvalidTransactionID)
	}
	return TransactionID{value: trimmed}, nil
}

// String returns the normalized identifier.
func (id TransactionID) String() string {
	return id.value
}

// CalendarDate is a YYYY-MM-DD date in the hotel time zone.
type CalendarDate struct {
	value string
}

// ParseCalendarDate validates a YYYY-MM-DD date.
func ParseCalendarDate(raw string) (CalendarDate, error) {
	trimmed := strings.TrimSpace(raw)
	parsed, err := time.Parse(calendarDateLayout, trimmed)
	if err != nil {
		return CalendarDate{}, fmt.Errorf("%w: %q", ErrInvalidCalendarDate, raw)
	}
	return CalendarDate{value: parsed.Format(calendarDateLayout)}, nil
}

// CalendarDateOf returns the calendar date of instant in location.
func CalendarDateOf(instant time.Time, location *time.Location) CalendarDate {
	return CalendarDate{value: instant.In(location).Format(calendarDateLayout)}
}

// String returns the YYYY-MM-DD form.
func (date CalendarDate) String() string {
	return date.value
}

// IsZero reports whether the date was never set.
func (date CalendarDate) IsZero() bool {
	return date.value == ""
}

// Start returns midnight of the date in location.
func (date CalendarDate) Start(location *time.Location) time.Time {
	parsed, err := time.ParseInLocation(calendarDateLayout, date.value, location)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

// AddDays returns the date shifted by days.
func (date CalendarDate) AddDays(days int) CalendarDate {
	return CalendarDate{value: date.Start(time.UTC).AddDate(0, 0, days).Format(calendarDateLayout)}
}

// After reports whether date is strictly later than other.
func (date CalendarDate) After(other CalendarDate) bool {
	return date.value > other.value
}

// Month is a YYYY-MM calendar month.
type Month struct {
	value string
}

// ParseMonth validates a YYYY-MM month.
func ParseMonth(raw string) (Month, error) {
	trimmed := strings.TrimSpace(raw)
	parsed, err := time.Parse(monthLayout, trimmed)
	if err != nil {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidMonth, raw)
	}
	return Month{value: parsed.Format(monthLayout)}, nil
}

// String returns the YYYY-MM form.
func (month Month) String() string {
	return month.value
}

// IsZero reports whether the month was never set.
func (month Month) IsZero() bool {
	return month.value == ""
}

// Role is the authority level of an admin.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// ParseRole validates a role string.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.TrimSpace(raw)) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleSuperAdmin:
		return RoleSuperAdmin, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, raw)
	}
}

// Actor is the authenticated admin performing an operation.
type Actor struct {
	ID   string
	Name string
	Role Role
}

// NewActor validates the identity supplied by the identity provider.
func NewActor(id string, name string, role Role) (Actor, error) {
	trimmedID := strings.TrimSpace(id)
	if trimmedID == "" {
		return Actor{}, fmt.Errorf("%w: empty id", ErrInvalidActor)
	}
	trimmedName := strings.TrimSpace(name)
	if trimmedName == "" {
		trimmedName = trimmedID
	}
	if role != RoleAdmin && role != RoleSuperAdmin {
		return Actor{}, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	return Actor{ID: trimmedID, Name: trimmedName, Role: role}, nil
}

// IsSuperAdmin reports whether the actor may bypass ownership checks.
func (actor Actor) IsSuperAdmin() bool {
	return actor.Role == RoleSuperAdmin
}

func (actor Actor) validate() error {
	if strings.TrimSpace(actor.ID) == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidActor)
	}
	if actor.Role != RoleAdmin && actor.Role != RoleSuperAdmin {
		return fmt.Errorf("%w: %q", ErrInvalidRole, actor.Role)
	}
	return nil
}

// RoomStatus defines the room lifecycle.
type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "available"
	RoomStatusOccupied    RoomStatus = "occupied"
	RoomStatusCleaning    RoomStatus = "cleaning"
	RoomStatusMaintenance RoomStatus = "maintenance"
	RoomStatusBooked      RoomStatus = "booked"
)

// ParseRoomStatus validates a room status string.
func ParseRoomStatus(raw string) (RoomStatus, error) {
	status := RoomStatus(strings.TrimSpace(raw))
	switch status {
	case RoomStatusAvailable, RoomStatusOccupied, RoomStatusCleaning, RoomStatusMaintenance, RoomStatusBooked:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRoomStatus, raw)
	}
}

// holdsGuest reports whether guest fields are populated in this status.
func (status RoomStatus) holdsGuest() bool {
	return status == RoomStatusOccupied || status == RoomStatusBooked
}

// BookingStatus defines the booking lifecycle.
type BookingStatus string

const (
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCheckedIn BookingStatus = "checked_in"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// ParseBookingStatus validates a booking status string.
func ParseBookingStatus(raw string) (BookingStatus, error) {
	status := BookingStatus(strings.TrimSpace(raw))
	switch status {
	case BookingStatusActive, BookingStatusCheckedIn, BookingStatusCancelled:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidBookingStatus, raw)
	}
}

// TransactionType enumerates ledger directions.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// ParseTransactionType validates a transaction type string.
func ParseTransactionType(raw string) (TransactionType, error) {
	transactionType := TransactionType(strings.TrimSpace(raw))
	switch transactionType {
	case TransactionIncome, TransactionExpense:
		return transactionType, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTransactionType, raw)
	}
}

// Guest carries the guest fields a room shows while occupied or booked.
type Guest struct {
	Name     string
	Passport string
	Phone    string
}

// Room is a stored room record. Rooms are never deleted.
type Room struct {
	ID            string
	Number        string
	Floor         int
	Status        RoomStatus
	GuestName     string
	GuestPassport string
	GuestPhone    string
	CheckIn       *time.Time
	CheckOut      *time.Time
	PricePerNight Amount
	Notes         string
	BookingID     string
	UpdatedAt     time.Time
}

// Booking is a stored reservation of a room for a guest.
type Booking struct {
	ID           string
	RoomNumber   string
	GuestName    string
	GuestPhone   string
	CheckInDate  string
	CheckOutDate string
	Nights       int
	Notes        string
	Prepayment   Amount
	Status       BookingStatus
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Transaction is a single income or expense line of the ledger.
type Transaction struct {
	ID          string
	Type        TransactionType
	Category    string
	Amount      Amount
	Description string
	RoomNumber  string
	AdminID     string
	AdminName   string
	ShiftID     string
	OccurredAt  time.Time
	Day         string
}

// Shift is a cash-drawer session with cached totals.
type Shift struct {
	ID           string
	AdminID      string
	AdminName    string
	AdminRole    Role
	StartTime    time.Time
	EndTime      *time.Time
	TotalIncome  Amount
	TotalExpense Amount
	Notes        string
	Closed       bool
}

// DailyReport locks a calendar day. Its presence is the lock.
type DailyReport struct {
	Date         string
	ReportText   string
	TotalIncome  Amount
	TotalExpense Amount
	ClosedAt     time.Time
	AdminName    string
}

// DayTotals aggregates a day of transactions.
type DayTotals struct {
	Income  Amount
	Expense Amount
}

// ActivityEntry is one append-only audit journal row.
type ActivityEntry struct {
	ID          string
	OccurredAt  time.Time
	AdminName   string
	Action      string
	Description string
	RoomNumber  string
	Amount      Amount
	Details     string
}

// BookingFilter narrows ListBookings. Zero fields match everything.
type BookingFilter struct {
	Status     BookingStatus
	RoomNumber string
}

// TransactionFilter narrows ListTransactions. Zero fields match everything.
type TransactionFilter struct {
	Day     string
	Type    TransactionType
	ShiftID string
}

// ShiftFilter narrows ListShifts.
type ShiftFilter struct {
	Since              *time.Time
	Until              *time.Time
	ExcludeSuperAdmins bool
}

// Store is the persistence contract used by Service.
//
// Get* methods return the matching ErrUnknown* error when the row is missing and,
// inside WithTx, lock the row where the backend supports it. UpdateRoom and
// UpdateBooking only write when the stored status still equals expected and
// return ErrRoomStatusChanged / ErrBookingStatusChanged otherwise. LockDay
// serializes transactions touching one calendar day until the enclosing
// transaction ends; outside WithTx it is a no-op.
type Store interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, txStore Store) error) error

	InsertRoom(ctx context.Context, room Room) error
	GetRoom(ctx context.Context, roomID string) (Room, error)
	GetRoomByNumber(ctx context.Context, number string) (Room, error)
	ListRooms(ctx context.Context) ([]Room, error)
	UpdateRoom(ctx context.Context, room Room, expected RoomStatus) error

	InsertBooking(ctx context.Context, booking Booking) error
	GetBooking(ctx context.Context, bookingID string) (Booking, error)
	UpdateBooking(ctx context.Context, booking Booking, expected BookingStatus) error
	ListBookings(ctx context.Context, filter BookingFilter) ([]Booking, error)

	InsertTransaction(ctx context.Context, transaction Transaction) error
	GetTransaction(ctx context.Context, transactionID string) (Transaction, error)
	UpdateTransaction(ctx context.Context, transaction Transaction) error
	DeleteTransaction(ctx context.Context, transactionID string) error
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]Transaction, error)
	SumDay(ctx context.Context, day string) (DayTotals, error)

	InsertShift(ctx context.Context, shift Shift) error
	GetShift(ctx context.Context, shiftID string) (Shift, error)
	UpdateShift(ctx context.Context, shift Shift) error
	ListShifts(ctx context.Context, filter ShiftFilter) ([]Shift, error)

	LockDay(ctx context.Context, day string) error
	DailyReportExists(ctx context.Context, day string) (bool, error)
	GetDailyReport(ctx context.Context, day string) (DailyReport, error)
	UpsertDailyReport(ctx context.Context, report DailyReport) error
	ListDailyReports(ctx context.Context, month string) ([]DailyReport, error)

	InsertActivity(ctx context.Context, entry ActivityEntry) error
	ListActivity(ctx context.Context, limit int) ([]ActivityEntry, error)
}

// sanitizeText escapes HTML, trims, and caps the rune length.
func sanitizeText(raw string, limit int) string {
	escaped := strings.TrimSpace(html.EscapeString(raw))
	if utf8.RuneCountInString(escaped) <= limit {
		return escaped
	}
	runes := []rune(escaped)
	return string(runes[:limit])
}

// requireText sanitizes raw and rejects values that are empty after trimming.
func requireText(raw string, limit int, sentinel error) (string, error) {
	sanitized := sanitizeText(raw, limit)
	if sanitized == "" {
		return "", fmt.Errorf("%w: empty value", sentinel)
	}
	return sanitized, nil
}
