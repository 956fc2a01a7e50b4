package pgstore

import (
	"context"
	_ "embed"
	"errors"
	"time"

	"github.com/MarkoPoloResearchLab/frontdesk/pkg/frontdesk"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgUniqueViolationCode   = "23505"
	constraintRoomNumber    = "uniq_rooms_number"
	errorOperationStore     = "store"
	errorSubjectRoom        = "room"
	errorSubjectBooking     = "booking"
	errorSubjectTransaction = "transaction"
	errorSubjectShift       = "shift"
	errorSubjectDailyReport = "daily_report"
	errorSubjectActivity    = "activity"
	errorSubjectSchema      = "schema"
	errorSubjectDayLock     = "day_lock"
	errorCodeBegin          = "begin"
	errorCodeCommit         = "commit"
	errorCodeCreate         = "create"
	errorCodeDelete         = "delete"
	errorCodeDuplicate      = "duplicate"
	errorCodeEnsure         = "ensure"
	errorCodeGet            = "get"
	errorCodeInvalid        = "invalid"
	errorCodeList           = "list"
	errorCodeLock           = "lock"
	errorCodeSumDay         = "sum_day"
	errorCodeUpdate         = "update"
	errorCodeUpdateStatus   = "update_status"
	errorCodeUpsert         = "upsert"
	lockClause              = " for update"

	roomColumns = `id, number, floor, status, guest_name, guest_passport, guest_phone,
		check_in, check_out, price_per_night, notes, booking_id, updated_at`

	bookingColumns = `id, room_number, guest_name, guest_phone, check_in_date, check_out_date,
		nights, notes, prepayment, status, created_by, created_at, updated_at`

	transactionColumns = `id, type, category, amount, description, room_number,
		admin_id, admin_name, shift_id, occurred_at, day`

	shiftColumns = `id, admin_id, admin_name, admin_role, start_time, end_time,
		total_income, total_expense, notes, closed`

	reportColumns = `report_date, report_text, total_income, total_expense, closed_at, admin_name`

	sqlInsertRoom = `insert into rooms(` + roomColumns + `)
		values($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	sqlSelectRoomByID     = `select ` + roomColumns + ` from rooms where id = $1`
	sqlSelectRoomByNumber = `select ` + roomColumns + ` from rooms where number = $1`
	sqlListRooms          = `select ` + roomColumns + ` from rooms order by floor, number`

	sqlUpdateRoom = `
		update rooms set number = $3, floor = $4, status = $5, guest_name = $6, guest_passport = $7,
			guest_phone = $8, check_in = $9, check_out = $10, price_per_night = $11, notes = $12,
			booking_id = $13, updated_at = $14
		where id = $1 and status = $2
	`

	sqlInsertBooking = `insert into bookings(` + bookingColumns + `)
		values($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	sqlSelectBooking = `select ` + bookingColumns + ` from bookings where id = $1`

	sqlUpdateBooking = `
		update bookings set room_number = $3, guest_name = $4, guest_phone = $5, check_in_date = $6,
			check_out_date = $7, nights = $8, notes = $9, prepayment = $10, status = $11, updated_at = $12
		where id = $1 and status = $2
	`

	sqlListBookings = `
		select ` + bookingColumns + ` from bookings
		where ($1::text = '' or status = $1::text) and ($2::text = '' or room_number = $2::text)
		order by check_in_date, id
	`

	sqlInsertTransaction = `insert into ledger_transactions(` + transactionColumns + `)
		values($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	sqlSelectTransaction = `select ` + transactionColumns + ` from ledger_transactions where id = $1`

	sqlUpdateTransaction = `
		update ledger_transactions set category = $2, amount = $3, description = $4
		where id = $1
	`

	sqlDeleteTransaction = `delete from ledger_transactions where id = $1`

	sqlListTransactions = `
		select ` + transactionColumns + ` from ledger_transactions
		where ($1::text = '' or day = $1::text) and ($2::text = '' or type = $2::text)
			and ($3::text = '' or shift_id = $3::text)
		order by occurred_at, id
	`

	sqlSumDay = `
		select
			coalesce(sum(case when type = 'income' then amount else 0 end),0),
			coalesce(sum(case when type <> 'income' then amount else 0 end),0)
		from ledger_transactions
		where day = $1
	`

	sqlInsertShift = `insert into shifts(` + shiftColumns + `)
		values($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	sqlSelectShift = `select ` + shiftColumns + ` from shifts where id = $1`

	sqlUpdateShift = `
		update shifts set end_time = $2, total_income = $3, total_expense = $4, notes = $5, closed = $6
		where id = $1
	`

	sqlListShifts = `
		select ` + shiftColumns + ` from shifts
		where ($1::timestamptz is null or start_time >= $1::timestamptz)
			and ($2::timestamptz is null or start_time < $2::timestamptz)
			and (not $3::boolean or admin_role <> 'super_admin')
		order by start_time desc
	`

	sqlLockDay = `select pg_advisory_xact_lock(hashtext('frontdesk.day:' || $1::text))`

	sqlDailyReportExists = `select exists(select 1 from daily_reports where report_date = $1)`

	sqlSelectDailyReport = `select ` + reportColumns + ` from daily_reports where report_date = $1`

	sqlUpsertDailyReport = `
		insert into daily_reports(` + reportColumns + `)
		values($1, $2, $3, $4, $5, $6)
		on conflict (report_date) do update set
			report_text = excluded.report_text,
			total_income = excluded.total_income,
			total_expense = excluded.total_expense,
			closed_at = excluded.closed_at,
			admin_name = excluded.admin_name
	`

	sqlListDailyReports = `
		select ` + reportColumns + ` from daily_reports
		where ($1::text = '' or report_date like $1::text || '-%')
		order by report_date
	`

	sqlInsertActivity = `
		insert into activity_logs(id, occurred_at, admin_name, action, description, room_number, amount, details)
		values($1, $2, $3, $4, $5, $6, $7, coalesce(nullif($8::text,''),'{}')::jsonb)
	`

	sqlListActivity = `
		select id, occurred_at, admin_name, action, description, room_number, amount, details::text
		from activity_logs
		order by occurred_at desc, id desc
		limit $1
	`
)

//go:embed schema.sql
var schemaSQL string

// executor is the query surface shared by the pool and an open transaction.
type executor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, arguments ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, arguments ...any) pgx.Row
}

// Store implements frontdesk.Store using a pgx connection pool. Outside WithTx
// every statement autocommits.
type Store struct {
	pool *pgxpool.Pool
	db   executor
	inTx bool
}

// New returns a Store backed by a pgx pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, db: pool}
}

// EnsureSchema creates the tables and indexes when they are missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return wrapStoreError(errorSubjectSchema, errorCodeEnsure, err)
	}
	return nil
}

func (store *Store) WithTx(ctx context.Context, fn func(ctx context.Context, txStore frontdesk.Store) error) error {
	if store.inTx {
		return fn(ctx, store)
	}
	tx, err := store.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return wrapStoreError(errorSubjectTransaction, errorCodeBegin, err)
	}
	transactionStore := &Store{pool: store.pool, db: tx, inTx: true}
	if err := fn(ctx, transactionStore); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return wrapStoreError(errorSubjectTransaction, errorCodeCommit, err)
	}
	return nil
}

// locking appends FOR UPDATE to row reads made inside a transaction.
func (store *Store) locking(query string) string {
	if store.inTx {
		return query + lockClause
	}
	return query
}

func (store *Store) InsertRoom(ctx context.Context, room frontdesk.Room) error {
	_, err := store.db.Exec(ctx, sqlInsertRoom,
		room.ID, room.Number, room.Floor, string(room.Status),
		room.GuestName, room.GuestPassport, room.GuestPhone,
		room.CheckIn, room.CheckOut, room.PricePerNight.Int64(), room.Notes, room.BookingID, room.UpdatedAt,
	)
	if isRoomNumberConflict(err) {
		return wrapStoreError(errorSubjectRoom, errorCodeDuplicate, frontdesk.ErrRoomNumberTaken)
	}
	if err != nil {
		return wrapStoreError(errorSubjectRoom, errorCodeCreate, err)
	}
	return nil
}

func (store *Store) GetRoom(ctx context.Context, roomID string) (frontdesk.Room, error) {
	return store.queryRoom(ctx, sqlSelectRoomByID, roomID)
}

func (store *Store) GetRoomByNumber(ctx context.Context, number string) (frontdesk.Room, error) {
	return store.queryRoom(ctx, sqlSelectRoomByNumber, number)
}

func (store *Store) queryRoom(ctx context.Context, query string, value string) (frontdesk.Room, error) {
	room, err := scanRoom(store.db.QueryRow(ctx, store.locking(query), value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return frontdesk.Room{}, wrapStoreError(errorSubjectRoom, errorCodeGet, frontdesk.ErrUnknownRoom)
		}
		return frontdesk.Room{}, wrapStoreError(errorSubjectRoom, errorCodeGet, err)
	}
	return room, nil
}

func (store *Store) ListRooms(ctx context.Context) ([]frontdesk.Room, error) {
	rows, err := store.db.Query(ctx, sqlListRooms)
	if err != nil {
		return nil, wrapStoreError(errorSubjectRoom, errorCodeList, err)
	}
	defer rows.Close()
	rooms := make([]frontdesk.Room, 0, 32)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, wrapStoreError(errorSubjectRoom, errorCodeInvalid, err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreError(errorSubjectRoom, errorCodeList, err)
	}
	return rooms, nil
}

func (store *Store) UpdateRoom(ctx context.Context, room frontdesk.Room, expected frontdesk.RoomStatus) error {
	tag, err := store.db.Exec(ctx, sqlUpdateRoom,
		room.ID, string(expected),
		room.Number, room.Floor, string(room.Status),
		room.GuestName, room.GuestPassport, room.GuestPhone,
		room.CheckIn, room.CheckOut, room.PricePerNight.Int64(), room.Notes, room.BookingID, room.UpdatedAt,
	)
	if isRoomNumberConflict(err) {
		return wrapStoreError(errorSubjectRoom, errorCodeDuplicate, frontdesk.ErrRoomNumberTaken)
	}
	if err != nil {
		return wrapStoreError(errorSubjectRoom, errorCodeUpdateStatus, err)
	}
	if tag.RowsAffected() == 0 {
		return wrapStoreError(errorSubjectRoom, errorCodeUpdateStatus, frontdesk.ErrRoomStatusChanged)
	}
	return nil
}

func (store *Store) InsertBooking(ctx context.Context, booking frontdesk.Booking) error {
	_, err := store.db.Exec(ctx, sqlInsertBooking,
		booking.ID, booking.RoomNumber, booking.GuestName, booking.GuestPhone,
		booking.CheckInDate, booking.CheckOutDate, booking.Nights, booking.Notes,
		booking.Prepayment.Int64(), string(booking.Status), booking.CreatedBy, booking.CreatedAt, booking.UpdatedAt,
	)
	if err != nil {
		return wrapStoreError(errorSubjectBooking, errorCodeCreate, err)
	}
	return nil
}

func (store *Store) GetBooking(ctx context.Context, bookingID string) (frontdesk.Booking, error) {
	booking, err := scanBooking(store.db.QueryRow(ctx, store.locking(sqlSelectBooking), bookingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return frontdesk.Booking{}, wrapStoreError(errorSubjectBooking, errorCodeGet, frontdesk.ErrUnknownBooking)
		}
		return frontdesk.Booking{}, wrapStoreError(errorSubjectBooking, errorCodeGet, err)
	}
	return booking, nil
}

func (store *Store) UpdateBooking(ctx context.Context, booking frontdesk.Booking, expected frontdesk.BookingStatus) error {
	tag, err := store.db.Exec(ctx, sqlUpdateBooking,
		booking.ID, string(expected),
		booking.RoomNumber, booking.GuestName, booking.GuestPhone, booking.CheckInDate, booking.CheckOutDate,
		booking.Nights, booking.Notes, booking.Prepayment.Int64(), string(booking.Status), booking.UpdatedAt,
	)
	if err != nil {
		return wrapStoreError(errorSubjectBooking, errorCodeUpdateStatus, err)
	}
	if tag.RowsAffected() == 0 {
		return wrapStoreError(errorSubjectBooking, errorCodeUpdateStatus, frontdesk.ErrBookingStatusChanged)
	}
	return nil
}

func (store *Store) ListBookings(ctx context.Context, filter frontdesk.BookingFilter) ([]frontdesk.Booking, error) {
	rows, err := store.db.Query(ctx, sqlListBookings, string(filter.Status), filter.RoomNumber)
	if err != nil {
		return nil, wrapStoreError(errorSubjectBooking, errorCodeList, err)
	}
	defer rows.Close()
	bookings := make([]frontdesk.Booking, 0, 32)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, wrapStoreError(errorSubjectBooking, errorCodeInvalid, err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreError(errorSubjectBooking, errorCodeList, err)
	}
	return bookings, nil
}

func (store *Store) InsertTransaction(ctx context.Context, transaction frontdesk.Transaction) error {
	_, err := store.db.Exec(ctx, sqlInsertTransaction,
		transaction.ID, string(transaction.Type), transaction.Category, transaction.Amount.Int64(),
		transaction.Description, transaction.RoomNumber, transaction.AdminID, transaction.AdminName,
		transaction.ShiftID, transaction.OccurredAt, transaction.Day,
	)
	if err != nil {
		return wrapStoreError(errorSubjectTransaction, errorCodeCreate, err)
	}
	return nil
}

func (store *Store) GetTransaction(ctx context.Context, transactionID string) (frontdesk.Transaction, error) {
	transaction, err := scanTransaction(store.db.QueryRow(ctx, store.locking(sqlSelectTransaction), transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return frontdesk.Transaction{}, wrapStoreError(errorSubjectTransaction, errorCodeGet, frontdesk.ErrUnknownTransaction)
		}
		return frontdesk.Transaction{}, wrapStoreError(errorSubjectTransaction, errorCodeGet, err)
	}
	return transaction, nil
}

func (store *Store) UpdateTransaction(ctx context.Context, transaction frontdesk.Transaction) error {
	tag, err := store.db.Exec(ctx, sqlUpdateTransaction,
		transaction.ID, transaction.Category, transaction.Amount.Int64(), transaction.Description)
	if err != nil {
		return wrapStoreError(errorSubjectTransaction, errorCodeUpdate, err)
	}
	if tag.RowsAffected() == 0 {
		return wrapStoreError(errorSubjectTransaction, errorCodeUpdate, frontdesk.ErrUnknownTransaction)
	}
	return nil
}

func (store *Store) DeleteTransaction(ctx context.Context, transactionID string) error {
	tag, err := store.db.Exec(ctx, sqlDeleteTransaction, transactionID)
	if err != nil {
		return wrapStoreError(errorSubjectTransaction, errorCodeDelete, err)
	}
	if tag.RowsAffected() == 0 {
		return wrapStoreError(errorSubjectTransaction, errorCodeDelete, frontdesk.ErrUnknownTransaction)
	}
	return nil
}

func (store *Store) ListTransactions(ctx context.Context, filter frontdesk.TransactionFilter) ([]frontdesk.Transaction, error) {
	rows, err := store.db.Query(ctx, sqlListTransactions, filter.Day, string(filter.Type), filter.ShiftID)
	if err != nil {
		return nil, wrapStoreError(errorSubjectTransaction, errorCodeList, err)
	}
	defer rows.Close()
	transactions := make([]frontdesk.Transaction, 0, 32)
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, wrapStoreError(errorSubjectTransaction, errorCodeInvalid, err)
		}
		transactions = append(transactions, transaction)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreError(errorSubjectTransaction, errorCodeList, err)
	}
	return transactions, nil
}

func (store *Store) SumDay(ctx context.Context, day string) (frontdesk.DayTotals, error) {
	var income, expense int64
	if err := store.db.QueryRow(ctx, sqlSumDay, day).Scan(&income, &expense); err != nil {
		return frontdesk.DayTotals{}, wrapStoreError(errorSubjectTransaction, errorCodeSumDay, err)
	}
	return frontdesk.DayTotals{Income: frontdesk.Amount(income), Expense: frontdesk.Amount(expense)}, nil
}

func (store *Store) InsertShift(ctx context.Context, shift frontdesk.Shift) error {
	_, err := store.db.Exec(ctx, sqlInsertShift,
		shift.ID, shift.AdminID, shift.AdminName, string(shift.AdminRole), shift.StartTime, shift.EndTime,
		shift.TotalIncome.Int64(), shift.TotalExpense.Int64(), shift.Notes, shift.Closed,
	)
	if err != nil {
		return wrapStoreError(errorSubjectShift, errorCodeCreate, err)
	}
	return nil
}

func (store *Store) GetShift(ctx context.Context, shiftID string) (frontdesk.Shift, error) {
	shift, err := scanShift(store.db.QueryRow(ctx, store.locking(sqlSelectShift), shiftID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return frontdesk.Shift{}, wrapStoreError(errorSubjectShift, errorCodeGet, frontdesk.ErrUnknownShift)
		}
		return frontdesk.Shift{}, wrapStoreError(errorSubjectShift, errorCodeGet, err)
	}
	return shift, nil
}

func (store *Store) UpdateShift(ctx context.Context, shift frontdesk.Shift) error {
	tag, err := store.db.Exec(ctx, sqlUpdateShift,
		shift.ID, shift.EndTime, shift.TotalIncome.Int64(), shift.TotalExpense.Int64(), shift.Notes, shift.Closed)
	if err != nil {
		return wrapStoreError(errorSubjectShift, errorCodeUpdate, err)
	}
	if tag.RowsAffected() == 0 {
		return wrapStoreError(errorSubjectShift, errorCodeUpdate, frontdesk.ErrUnknownShift)
	}
	return nil
}

func (store *Store) ListShifts(ctx context.Context, filter frontdesk.ShiftFilter) ([]frontdesk.Shift, error) {
	rows, err := store.db.Query(ctx, sqlListShifts, filter.Since, filter.Until, filter.ExcludeSuperAdmins)
	if err != nil {
		return nil, wrapStoreError(errorSubjectShift, errorCodeList, err)
	}
	defer rows.Close()
	shifts := make([]frontdesk.Shift, 0, 32)
	for rows.Next() {
		shift, err := scanShift(rows)
		if err != nil {
			return nil, wrapStoreError(errorSubjectShift, errorCodeInvalid, err)
		}
		shifts = append(shifts, shift)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreError(errorSubjectShift, errorCodeList, err)
	}
	return shifts, nil
}

// LockDay takes a transaction-scoped advisory lock keyed by the day; it is released on commit or rollback.
func (store *Store) LockDay(ctx context.Context, day string) error {
	if !store.inTx {
		return nil
	}
	if _, err := store.db.Exec(ctx, sqlLockDay, day); err != nil {
		return wrapStoreError(errorSubjectDayLock, errorCodeLock, err)
	}
	return nil
}

func (store *Store) DailyReportExists(ctx context.Context, day string) (bool, error) {
	var exists bool
	if err := store.db.QueryRow(ctx, sqlDailyReportExists, day).Scan(&exists); err != nil {
		return false, wrapStoreError(errorSubjectDailyReport, errorCodeGet, err)
	}
	return exists, nil
}

func (store *Store) GetDailyReport(ctx context.Context, day string) (frontdesk.DailyReport, error) {
	report, err := scanDailyReport(store.db.QueryRow(ctx, sqlSelectDailyReport, day))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return frontdesk.DailyReport{}, wrapStoreError(errorSubjectDailyReport, errorCodeGet, frontdesk.ErrUnknownDailyReport)
		}
		return frontdesk.DailyReport{}, wrapStoreError(errorSubjectDailyReport, errorCodeGet, err)
	}
	return report, nil
}

func (store *Store) UpsertDailyReport(ctx context.Context, report frontdesk.DailyReport) error {
	_, err := store.db.Exec(ctx, sqlUpsertDailyReport,
		report.Date, report.ReportText, report.TotalIncome.Int64(), report.TotalExpense.Int64(), report.ClosedAt, report.AdminName)
	if err != nil {
		return wrapStoreError(errorSubjectDailyReport, errorCodeUpsert, err)
	}
	return nil
}

func (store *Store) ListDailyReports(ctx context.Context, month string) ([]frontdesk.DailyReport, error) {
	rows, err := store.db.Query(ctx, sqlListDailyReports, month)
	if err != nil {
		return nil, wrapStoreError(errorSubjectDailyReport, errorCodeList, err)
	}
	defer rows.Close()
	reports := make([]frontdesk.DailyReport, 0, 31)
	for rows.Next() {
		report, err := scanDailyReport(rows)
		if err != nil {
			return nil, wrapStoreError(errorSubjectDailyReport, errorCodeInvalid, err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreError(errorSubjectDailyReport, errorCodeList, err)
	}
	return reports, nil
}

func (store *Store) InsertActivity(ctx context.Context, entry frontdesk.ActivityEntry) error {
	_, err := store.db.Exec(ctx, sqlInsertActivity,
		entry.ID, entry.OccurredAt, entry.AdminName, entry.Action, entry.Description,
		entry.RoomNumber, entry.Amount.Int64(), entry.Details)
	if err != nil {
		return wrapStoreError(errorSubjectActivity, errorCodeCreate, err)
	}
	return nil
}

func (store *Store) ListActivity(ctx context.Context, limit int) ([]frontdesk.ActivityEntry, error) {
	rows, err := store.db.Query(ctx, sqlListActivity, limit)
	if err != nil {
		return nil, wrapStoreError(errorSubjectActivity, errorCodeList, err)
	}
	defer rows.Close()
	entries := make([]frontdesk.ActivityEntry, 0, limit)
	for rows.Next() {
		var (
			entry  frontdesk.ActivityEntry
			amount int64
		)
		if err := rows.Scan(&entry.ID, &entry.OccurredAt, &entry.AdminName, &entry.Action,
			&entry.Description, &entry.RoomNumber, &amount, &entry.Details); err != nil {
			return nil, wrapStoreError(errorSubjectActivity, errorCodeInvalid, err)
		}
		entry.Amount = frontdesk.Amount(amount)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreError(errorSubjectActivity, errorCodeList, err)
	}
	return entries, nil
}

func scanRoom(row pgx.Row) (frontdesk.Room, error) {
	var (
		room          frontdesk.Room
		statusValue   string
		pricePerNight int64
	)
	if err := row.Scan(&room.ID, &room.Number, &room.Floor, &statusValue, &room.GuestName, &room.GuestPassport,
		&room.GuestPhone, &room.CheckIn, &room.CheckOut, &pricePerNight, &room.Notes, &room.BookingID, &room.UpdatedAt); err != nil {
		return frontdesk.Room{}, err
	}
	status, err := frontdesk.ParseRoomStatus(statusValue)
	if err != nil {
		return frontdesk.Room{}, err
	}
	room.Status = status
	room.PricePerNight = frontdesk.Amount(pricePerNight)
	return room, nil
}

func scanBooking(row pgx.Row) (frontdesk.Booking, error) {
	var (
		booking     frontdesk.Booking
		prepayment  int64
		statusValue string
	)
	if err := row.Scan(&booking.ID, &booking.RoomNumber, &booking.GuestName, &booking.GuestPhone,
		&booking.CheckInDate, &booking.CheckOutDate, &booking.Nights, &booking.Notes, &prepayment,
		&statusValue, &booking.CreatedBy, &booking.CreatedAt, &booking.UpdatedAt); err != nil {
		return frontdesk.Booking{}, err
	}
	status, err := frontdesk.ParseBookingStatus(statusValue)
	if err != nil {
		return frontdesk.Booking{}, err
	}
	booking.Status = status
	booking.Prepayment = frontdesk.Amount(prepayment)
	return booking, nil
}

func scanTransaction(row pgx.Row) (frontdesk.Transaction, error) {
	var (
		transaction frontdesk.Transaction
		typeValue   string
		amountValue int64
	)
	if err := row.Scan(&transaction.ID, &typeValue, &transaction.Category, &amountValue, &transaction.Description,
		&transaction.RoomNumber, &transaction.AdminID, &transaction.AdminName, &transaction.ShiftID,
		&transaction.OccurredAt, &transaction.Day); err != nil {
		return frontdesk.Transaction{}, err
	}
	transactionType, err := frontdesk.ParseTransactionType(typeValue)
	if err != nil {
		return frontdesk.Transaction{}, err
	}
	amount, err := frontdesk.NewAmount(amountValue)
	if err != nil {
		return frontdesk.Transaction{}, err
	}
	transaction.Type = transactionType
	transaction.Amount = amount
	return transaction, nil
}

func scanShift(row pgx.Row) (frontdesk.Shift, error) {
	var (
		shift        frontdesk.Shift
		roleValue    string
		totalIncome  int64
		totalExpense int64
		endTime      *time.Time
	)
	if err := row.Scan(&shift.ID, &shift.AdminID, &shift.AdminName, &roleValue, &shift.StartTime, &endTime,
		&totalIncome, &totalExpense, &shift.Notes, &shift.Closed); err != nil {
		return frontdesk.Shift{}, err
	}
	role, err := frontdesk.ParseRole(roleValue)
	if err != nil {
		return frontdesk.Shift{}, err
	}
	shift.AdminRole = role
	shift.EndTime = endTime
	shift.TotalIncome = frontdesk.Amount(totalIncome)
	shift.TotalExpense = frontdesk.Amount(totalExpense)
	return shift, nil
}

func scanDailyReport(row pgx.Row) (frontdesk.DailyReport, error) {
	var (
		report       frontdesk.DailyReport
		totalIncome  int64
		totalExpense int64
	)
	if err := row.Scan(&report.Date, &report.ReportText, &totalIncome, &totalExpense, &report.ClosedAt, &report.AdminName); err != nil {
		return frontdesk.DailyReport{}, err
	}
	report.TotalIncome = frontdesk.Amount(totalIncome)
	report.TotalExpense = frontdesk.Amount(totalExpense)
	return report, nil
}

func wrapStoreError(subject string, code string, err error) error {
	return frontdesk.WrapError(errorOperationStore, subject, code, err)
}

func isRoomNumberConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolationCode && pgErr.ConstraintName == constraintRoomNumber
	}
	return false
}
