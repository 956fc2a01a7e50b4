package pgstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/MarkoPoloResearchLab/frontdesk/pkg/frontdesk"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresURLEnv = "FRONTDESK_TEST_POSTGRES_URL"

func TestLockingOnlyInsideTransactions(test *testing.T) {
	test.Parallel()
	autocommit := &Store{}
	if got := autocommit.locking(sqlSelectShift); strings.HasSuffix(got, lockClause) {
		test.Fatalf("expected no lock outside transactions, got %q", got)
	}
	transactional := &Store{inTx: true}
	if got := transactional.locking(sqlSelectShift); !strings.HasSuffix(got, lockClause) {
		test.Fatalf("expected lock inside transactions, got %q", got)
	}
}

func TestLockDayIsTransactionScoped(test *testing.T) {
	test.Parallel()
	if !strings.Contains(sqlLockDay, "pg_advisory_xact_lock") {
		test.Fatalf("expected a transaction-scoped advisory lock, got %q", sqlLockDay)
	}
	autocommit := &Store{}
	if err := autocommit.LockDay(context.Background(), "2024-03-15"); err != nil {
		test.Fatalf("expected no-op outside transactions, got %v", err)
	}
}

func TestIsRoomNumberConflict(test *testing.T) {
	test.Parallel()
	testCases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "room number", err: &pgconn.PgError{Code: pgUniqueViolationCode, ConstraintName: constraintRoomNumber}, want: true},
		{name: "wrapped", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgUniqueViolationCode, ConstraintName: constraintRoomNumber}), want: true},
		{name: "other constraint", err: &pgconn.PgError{Code: pgUniqueViolationCode, ConstraintName: "rooms_pkey"}},
		{name: "other code", err: &pgconn.PgError{Code: "23503", ConstraintName: constraintRoomNumber}},
		{name: "plain", err: errors.New("boom")},
		{name: "nil"},
	}
	for _, testCase := range testCases {
		testCase := testCase
		test.Run(testCase.name, func(test *testing.T) {
			test.Parallel()
			if got := isRoomNumberConflict(testCase.err); got != testCase.want {
				test.Fatalf("isRoomNumberConflict(%v) = %v, want %v", testCase.err, got, testCase.want)
			}
		})
	}
}

func TestSchemaDeclaresEveryTable(test *testing.T) {
	test.Parallel()
	for _, table := range []string{"rooms", "bookings", "ledger_transactions", "shifts", "daily_reports", "activity_logs"} {
		if !strings.Contains(schemaSQL, "create table if not exists "+table+" (") {
			test.Fatalf("schema is missing table %s", table)
		}
	}
}

// TestPostgresBookingLifecycle runs against a live database when
// FRONTDESK_TEST_POSTGRES_URL is set.
func TestPostgresBookingLifecycle(test *testing.T) {
	databaseURL := os.Getenv(postgresURLEnv)
	if databaseURL == "" {
		test.Skipf("%s not set", postgresURLEnv)
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		test.Fatalf("pgxpool: %v", err)
	}
	test.Cleanup(pool.Close)
	if err := EnsureSchema(ctx, pool); err != nil {
		test.Fatalf("ensure schema: %v", err)
	}
	store := New(pool)
	now := time.Now().UTC().Truncate(time.Second)
	service, err := frontdesk.NewService(store, func() time.Time { return now })
	if err != nil {
		test.Fatalf("new service: %v", err)
	}
	root, err := frontdesk.NewActor("root", "Director", frontdesk.RoleSuperAdmin)
	if err != nil {
		test.Fatalf("actor: %v", err)
	}
	number, err := frontdesk.NewRoomNumber("T" + uuid.NewString()[:8])
	if err != nil {
		test.Fatalf("room number: %v", err)
	}
	room, err := service.RegisterRoom(ctx, root, frontdesk.RoomInput{Number: number, Floor: 1, PricePerNight: 100000})
	if err != nil {
		test.Fatalf("register room: %v", err)
	}
	if _, err := service.RegisterRoom(ctx, root, frontdesk.RoomInput{Number: number, Floor: 1}); !errors.Is(err, frontdesk.ErrRoomNumberTaken) {
		test.Fatalf("expected %v, got %v", frontdesk.ErrRoomNumberTaken, err)
	}

	booking, err := service.CreateBooking(ctx, root, frontdesk.CreateBookingInput{
		RoomNumber:  number,
		GuestName:   "Integration Guest",
		GuestPhone:  "+998901234567",
		CheckInDate: service.Today(),
		Nights:      1,
	})
	if err != nil {
		test.Fatalf("create booking: %v", err)
	}
	if _, err := service.CreateBooking(ctx, root, frontdesk.CreateBookingInput{
		RoomNumber:  number,
		GuestName:   "Second Guest",
		GuestPhone:  "+998907654321",
		CheckInDate: service.Today(),
	}); !errors.Is(err, frontdesk.ErrRoomUnavailable) {
		test.Fatalf("expected %v, got %v", frontdesk.ErrRoomUnavailable, err)
	}
	bookingID, err := frontdesk.NewBookingID(booking.ID)
	if err != nil {
		test.Fatalf("booking id: %v", err)
	}
	if err := service.CancelBooking(ctx, root, bookingID, nil); err != nil {
		test.Fatalf("cancel booking: %v", err)
	}
	roomID, err := frontdesk.NewRoomID(room.ID)
	if err != nil {
		test.Fatalf("room id: %v", err)
	}
	stored, err := service.GetRoom(ctx, roomID)
	if err != nil {
		test.Fatalf("get room: %v", err)
	}
	if stored.Status != frontdesk.RoomStatusAvailable || stored.BookingID != "" {
		test.Fatalf("expected released room, got %+v", stored)
	}
}

// TestPostgresDayLockBlocksConcurrentTransaction runs against a live database when
// FRONTDESK_TEST_POSTGRES_URL is set.
func TestPostgresDayLockBlocksConcurrentTransaction(test *testing.T) {
	databaseURL := os.Getenv(postgresURLEnv)
	if databaseURL == "" {
		test.Skipf("%s not set", postgresURLEnv)
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		test.Fatalf("pgxpool: %v", err)
	}
	test.Cleanup(pool.Close)
	store := New(pool)
	day := "2099-" + time.Now().UTC().Format("01-02")

	err = store.WithTx(ctx, func(ctx context.Context, holder frontdesk.Store) error {
		if err := holder.LockDay(ctx, day); err != nil {
			return err
		}
		waitCtx, cancel := context.WithTimeout(ctx, 200*time.Millisecond)
		defer cancel()
		blockedErr := store.WithTx(waitCtx, func(ctx context.Context, waiter frontdesk.Store) error {
			return waiter.LockDay(ctx, day)
		})
		if blockedErr == nil {
			return errors.New("second transaction acquired a held day lock")
		}
		return nil
	})
	if err != nil {
		test.Fatalf("day lock: %v", err)
	}
	if err := store.WithTx(ctx, func(ctx context.Context, txStore frontdesk.Store) error {
		return txStore.LockDay(ctx, day)
	}); err != nil {
		test.Fatalf("expected lock released after commit, got %v", err)
	}
}
