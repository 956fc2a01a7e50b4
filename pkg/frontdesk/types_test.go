package frontdesk

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

func TestNewAmountBounds(test *testing.T) {
	test.Parallel()
	testCases := []struct {
		name    string
		raw     int64
		wantErr bool
	}{
		{name: "zero", raw: 0, wantErr: true},
		{name: "negative", raw: -1, wantErr: true},
		{name: "one", raw: 1},
		{name: "cap", raw: int64(MaxAmount)},
		{name: "above cap", raw: int64(MaxAmount) + 1, wantErr: true},
	}
	for _, testCase := range testCases {
		testCase := testCase
		test.Run(testCase.name, func(test *testing.T) {
			test.Parallel()
			amount, err := NewAmount(testCase.raw)
			if testCase.wantErr {
				if !errors.Is(err, ErrInvalidAmount) {
					test.Fatalf(errorMismatchFmt, ErrInvalidAmount, err)
				}
				return
			}
			if err != nil || amount.Int64() != testCase.raw {
				test.Fatalf("expected %d, got %d (%v)", testCase.raw, amount, err)
			}
		})
	}
}

func TestNewAmountFromFloat(test *testing.T) {
	test.Parallel()
	testCases := []struct {
		name    string
		raw     float64
		want    Amount
		wantErr bool
	}{
		{name: "integral", raw: 350000, want: 350000},
		{name: "fractional", raw: 10.5, wantErr: true},
		{name: "nan", raw: math.NaN(), wantErr: true},
		{name: "infinite", raw: math.Inf(1), wantErr: true},
		{name: "huge", raw: 1e19, wantErr: true},
		{name: "zero", raw: 0, wantErr: true},
	}
	for _, testCase := range testCases {
		testCase := testCase
		test.Run(testCase.name, func(test *testing.T) {
			test.Parallel()
			amount, err := NewAmountFromFloat(testCase.raw)
			if testCase.wantErr {
				if !errors.Is(err, ErrInvalidAmount) {
					test.Fatalf(errorMismatchFmt, ErrInvalidAmount, err)
				}
				return
			}
			if err != nil || amount != testCase.want {
				test.Fatalf("expected %d, got %d (%v)", testCase.want, amount, err)
			}
		})
	}
}

func TestIdentifierConstructorsTrimAndReject(test *testing.T) {
	test.Parallel()
	if _, err := NewRoomID("  "); !errors.Is(err, ErrInvalidRoomID) {
		test.Fatalf(errorMismatchFmt, ErrInvalidRoomID, err)
	}
	if _, err := NewBookingID(""); !errors.Is(err, ErrInvalidBookingID) {
		test.Fatalf(errorMismatchFmt, ErrInvalidBookingID, err)
	}
	if _, err := NewTransactionID("\t"); !errors.Is(err, ErrInvalidTransactionID) {
		test.Fatalf(errorMismatchFmt, ErrInvalidTransactionID, err)
	}
	if _, err := NewRoomNumber(strings.Repeat("9", maxRoomNumberLength+1)); !errors.Is(err, ErrInvalidRoomNumber) {
		test.Fatalf(errorMismatchFmt, ErrInvalidRoomNumber, err)
	}
	number, err := NewRoomNumber(" 301 ")
	if err != nil || number.String() != roomNumber301 {
		test.Fatalf("expected trimmed room number, got %q (%v)", number.String(), err)
	}
	shiftID, err := NewOptionalShiftID(" ")
	if err != nil || shiftID != nil {
		test.Fatalf("expected nil shift id, got %v (%v)", shiftID, err)
	}
}

func TestCalendarDate(test *testing.T) {
	test.Parallel()
	if _, err := ParseCalendarDate("2024-02-30"); !errors.Is(err, ErrInvalidCalendarDate) {
		test.Fatalf(errorMismatchFmt, ErrInvalidCalendarDate, err)
	}
	date := mustDate(test, "2024-02-28")
	if got := date.AddDays(2).String(); got != "2024-03-01" {
		test.Fatalf("expected 2024-03-01, got %s", got)
	}
	if !date.AddDays(1).After(date) || date.After(date) {
		test.Fatalf("unexpected ordering")
	}
	start := date.Start(hotelLocation)
	if start.Hour() != 0 || start.Location() != hotelLocation {
		test.Fatalf("expected midnight in hotel zone, got %v", start)
	}
	utcEvening := time.Date(2024, time.February, 28, 21, 0, 0, 0, time.UTC)
	if got := CalendarDateOf(utcEvening, hotelLocation).String(); got != "2024-02-29" {
		test.Fatalf("expected 2024-02-29, got %s", got)
	}
	if _, err := ParseMonth("2024-13"); !errors.Is(err, ErrInvalidMonth) {
		test.Fatalf(errorMismatchFmt, ErrInvalidMonth, err)
	}
}

func TestNewActorAndRoles(test *testing.T) {
	test.Parallel()
	if _, err := NewActor("", "name", RoleAdmin); !errors.Is(err, ErrInvalidActor) {
		test.Fatalf(errorMismatchFmt, ErrInvalidActor, err)
	}
	if _, err := NewActor("id", "name", "owner"); !errors.Is(err, ErrInvalidRole) {
		test.Fatalf(errorMismatchFmt, ErrInvalidRole, err)
	}
	actor, err := NewActor("id", " ", RoleSuperAdmin)
	if err != nil {
		test.Fatalf("new actor: %v", err)
	}
	if actor.Name != "id" || !actor.IsSuperAdmin() {
		test.Fatalf("unexpected actor: %+v", actor)
	}
	if role, err := ParseRole("super_admin"); err != nil || role != RoleSuperAdmin {
		test.Fatalf("expected super_admin, got %q (%v)", role, err)
	}
}

func TestParseEnums(test *testing.T) {
	test.Parallel()
	if _, err := ParseRoomStatus("vacant"); !errors.Is(err, ErrInvalidRoomStatus) {
		test.Fatalf(errorMismatchFmt, ErrInvalidRoomStatus, err)
	}
	if _, err := ParseBookingStatus("done"); !errors.Is(err, ErrInvalidBookingStatus) {
		test.Fatalf(errorMismatchFmt, ErrInvalidBookingStatus, err)
	}
	if transactionType, err := ParseTransactionType(" expense "); err != nil || transactionType != TransactionExpense {
		test.Fatalf("expected expense, got %q (%v)", transactionType, err)
	}
}

func TestSanitizeText(test *testing.T) {
	test.Parallel()
	if got := sanitizeText("  <i>ok</i>  ", 100); got != "&lt;i&gt;ok&lt;/i&gt;" {
		test.Fatalf("unexpected sanitized text: %q", got)
	}
	if got := sanitizeText("ўзбекча матн", 4); got != "ўзбе" {
		test.Fatalf("expected rune-safe truncation, got %q", got)
	}
	if _, err := requireText(" ", 10, ErrInvalidCategory); !errors.Is(err, ErrInvalidCategory) {
		test.Fatalf(errorMismatchFmt, ErrInvalidCategory, err)
	}
}
