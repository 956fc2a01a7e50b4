package gormstore

import (
	"context"
	"errors"
	"time"

	"github.com/MarkoPoloResearchLab/frontdesk/pkg/frontdesk"
	gosqlite "github.com/glebarez/go-sqlite"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	defaultDetailsJSON      = "{}"
	pgUniqueViolationCode   = "23505"
	sqliteConstraintCode    = 19
	mysqlDuplicateEntryCode = 1062
	errorOperationStore     = "store"
	errorSubjectRoom        = "room"
	errorSubjectBooking     = "booking"
	errorSubjectTransaction = "transaction"
	errorSubjectShift       = "shift"
	errorSubjectDailyReport = "daily_report"
	errorSubjectDayLock     = "day_lock"
	errorSubjectActivity    = "activity"
	errorCodeCreate         = "create"
	errorCodeDelete         = "delete"
	errorCodeDuplicate      = "duplicate"
	errorCodeGet            = "get"
	errorCodeInvalid        = "invalid"
	errorCodeList           = "list"
	errorCodeLock           = "lock"
	errorCodeSumDay         = "sum_day"
	errorCodeUpdate         = "update"
	errorCodeUpdateStatus   = "update_status"
	errorCodeUpsert         = "upsert"
	lockStrengthUpdate      = "UPDATE"
	monthPatternSuffix      = "-%"
)

// Store implements frontdesk.Store using GORM.
type Store struct {
	db   *gorm.DB
	inTx bool
}

// New returns a Store backed by gorm.DB.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// WithTx executes fn within a transaction. Nested calls reuse the open transaction.
func (store *Store) WithTx(ctx context.Context, fn func(ctx context.Context, txStore frontdesk.Store) error) error {
	if store.inTx {
		return fn(ctx, store)
	}
	return store.db.WithContext(ctx).Transaction(func(transaction *gorm.DB) error {
		return fn(ctx, &Store{db: transaction, inTx: true})
	})
}

// locked adds SELECT ... FOR UPDATE inside transactions. Dialects without
// row locks drop the clause.
func (store *Store) locked(ctx context.Context) *gorm.DB {
	db := store.db.WithContext(ctx)
	if store.inTx {
		db = db.Clauses(clause.Locking{Strength: lockStrengthUpdate})
	}
	return db
}

func (store *Store) InsertRoom(ctx context.Context, room frontdesk.Room) error {
	model := roomModel(room)
	err := store.db.WithContext(ctx).Create(&model).Error
	if isUniqueViolation(err) {
		return wrapStoreError(errorSubjectRoom, errorCodeDuplicate, frontdesk.ErrRoomNumberTaken)
	}
	if err != nil {
		return wrapStoreError(errorSubjectRoom, errorCodeCreate, err)
	}
	return nil
}

func (store *Store) GetRoom(ctx context.Context, roomID string) (frontdesk.Room, error) {
	return store.takeRoom(ctx, "id = ?", roomID)
}

func (store *Store) GetRoomByNumber(ctx context.Context, number string) (frontdesk.Room, error) {
	return store.takeRoom(ctx, "number = ?", number)
}

func (store *Store) takeRoom(ctx context.Context, query string, value string) (frontdesk.Room, error) {
	var model Room
	err := store.locked(ctx).Where(query, value).Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return frontdesk.Room{}, wrapStoreError(errorSubjectRoom, errorCodeGet, frontdesk.ErrUnknownRoom)
		}
		return frontdesk.Room{}, wrapStoreError(errorSubjectRoom, errorCodeGet, err)
	}
	room, err := mapRoom(model)
	if err != nil {
		return frontdesk.Room{}, wrapStoreError(errorSubjectRoom, errorCodeInvalid, err)
	}
	return room, nil
}

func (store *Store) ListRooms(ctx context.Context) ([]frontdesk.Room, error) {
	var rows []Room
	if err := store.db.WithContext(ctx).Order("floor ASC").Order("number ASC").Find(&rows).Error; err != nil {
		return nil, wrapStoreError(errorSubjectRoom, errorCodeList, err)
	}
	rooms := make([]frontdesk.Room, 0, len(rows))
	for _, row := range rows {
		room, err := mapRoom(row)
		if err != nil {
			return nil, wrapStoreError(errorSubjectRoom, errorCodeInvalid, err)
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

// UpdateRoom writes room only while the stored status still equals expected.
func (store *Store) UpdateRoom(ctx context.Context, room frontdesk.Room, expected frontdesk.RoomStatus) error {
	model := roomModel(room)
	result := store.db.WithContext(ctx).
		Model(&Room{}).
		Where("id = ? AND status = ?", model.ID, string(expected)).
		Updates(map[string]interface{}{
			"number":          model.Number,
			"floor":           model.Floor,
			"status":          model.Status,
			"guest_name":      model.GuestName,
			"guest_passport":  model.GuestPassport,
			"guest_phone":     model.GuestPhone,
			"check_in":        model.CheckIn,
			"check_out":       model.CheckOut,
			"price_per_night": model.PricePerNight,
			"notes":           model.Notes,
			"booking_id":      model.BookingID,
			"updated_at":      model.UpdatedAt,
		})
	if isUniqueViolation(result.Error) {
		return wrapStoreError(errorSubjectRoom, errorCodeDuplicate, frontdesk.ErrRoomNumberTaken)
	}
	if result.Error != nil {
		return wrapStoreError(errorSubjectRoom, errorCodeUpdateStatus, result.Error)
	}
	if result.RowsAffected == 0 {
		return wrapStoreError(errorSubjectRoom, errorCodeUpdateStatus, frontdesk.ErrRoomStatusChanged)
	}
	return nil
}

func (store *Store) InsertBooking(ctx context.Context, booking frontdesk.Booking) error {
	model := bookingModel(booking)
	err := store.db.WithContext(ctx).Create(&model).Error
	if err != nil {
		return wrapStoreError(errorSubjectBooking, errorCodeCreate, err)
	}
	return nil
}

func (store *Store) GetBooking(ctx context.Context, bookingID string) (frontdesk.Booking, error) {
	var model Booking
	err := store.locked(ctx).Where("id = ?", bookingID).Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return frontdesk.Booking{}, wrapStoreError(errorSubjectBooking, errorCodeGet, frontdesk.ErrUnknownBooking)
		}
		return frontdesk.Booking{}, wrapStoreError(errorSubjectBooking, errorCodeGet, err)
	}
	booking, err := mapBooking(model)
	if err != nil {
		return frontdesk.Booking{}, wrapStoreError(errorSubjectBooking, errorCodeInvalid, err)
	}
	return booking, nil
}

// UpdateBooking writes booking only while the stored status still equals expected.
func (store *Store) UpdateBooking(ctx context.Context, booking frontdesk.Booking, expected frontdesk.BookingStatus) error {
	model := bookingModel(booking)
	result := store.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ? AND status = ?", model.ID, string(expected)).
		Updates(map[string]interface{}{
			"room_number":    model.RoomNumber,
			"guest_name":     model.GuestName,
			"guest_phone":    model.GuestPhone,
			"check_in_date":  model.CheckInDate,
			"check_out_date": model.CheckOutDate,
			"nights":         model.Nights,
			"notes":          model.Notes,
			"prepayment":     model.Prepayment,
			"status":         model.Status,
			"updated_at":     model.UpdatedAt,
		})
	if result.Error != nil {
		return wrapStoreError(errorSubjectBooking, errorCodeUpdateStatus, result.Error)
	}
	if result.RowsAffected == 0 {
		return wrapStoreError(errorSubjectBooking, errorCodeUpdateStatus, frontdesk.ErrBookingStatusChanged)
	}
	return nil
}

func (store *Store) ListBookings(ctx context.Context, filter frontdesk.BookingFilter) ([]frontdesk.Booking, error) {
	query := store.db.WithContext(ctx).Model(&Booking{})
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.RoomNumber != "" {
		query = query.Where("room_number = ?", filter.RoomNumber)
	}
	var rows []Booking
	if err := query.Order("check_in_date ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, wrapStoreError(errorSubjectBooking, errorCodeList, err)
	}
	bookings := make([]frontdesk.Booking, 0, len(rows))
	for _, row := range rows {
		booking, err := mapBooking(row)
		if err != nil {
			return nil, wrapStoreError(errorSubjectBooking, errorCodeInvalid, err)
		}
		bookings = append(bookings, booking)
	}
	return bookings, nil
}

func (store *Store) InsertTransaction(ctx context.Context, transaction frontdesk.Transaction) error {
	model := transactionModel(transaction)
	if err := store.db.WithContext(ctx).Create(&model).Error; err != nil {
		return wrapStoreError(errorSubjectTransaction, errorCodeCreate, err)
	}
	return nil
}

func (store *Store) GetTransaction(ctx context.Context, transactionID string) (frontdesk.Transaction, error) {
	var model LedgerTransaction
	err := store.locked(ctx).Where("id = ?", transactionID).Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return frontdesk.Transaction{}, wrapStoreError(errorSubjectTransaction, errorCodeGet, frontdesk.ErrUnknownTransaction)
		}
		return frontdesk.Transaction{}, wrapStoreError(errorSubjectTransaction, errorCodeGet, err)
	}
	transaction, err := mapTransaction(model)
	if err != nil {
		return frontdesk.Transaction{}, wrapStoreError(errorSubjectTransaction, errorCodeInvalid, err)
	}
	return transaction, nil
}

func (store *Store) UpdateTransaction(ctx context.Context, transaction frontdesk.Transaction) error {
	model := transactionModel(transaction)
	result := store.db.WithContext(ctx).
		Model(&LedgerTransaction{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"category":    model.Category,
			"amount":      model.Amount,
			"description": model.Description,
		})
	if result.Error != nil {
		return wrapStoreError(errorSubjectTransaction, errorCodeUpdate, result.Error)
	}
	if result.RowsAffected == 0 {
		return wrapStoreError(errorSubjectTransaction, errorCodeUpdate, frontdesk.ErrUnknownTransaction)
	}
	return nil
}

func (store *Store) DeleteTransaction(ctx context.Context, transactionID string) error {
	result := store.db.WithContext(ctx).Where("id = ?", transactionID).Delete(&LedgerTransaction{})
	if result.Error != nil {
		return wrapStoreError(errorSubjectTransaction, errorCodeDelete, result.Error)
	}
	if result.RowsAffected == 0 {
		return wrapStoreError(errorSubjectTransaction, errorCodeDelete, frontdesk.ErrUnknownTransaction)
	}
	return nil
}

func (store *Store) ListTransactions(ctx context.Context, filter frontdesk.TransactionFilter) ([]frontdesk.Transaction, error) {
	query := store.db.WithContext(ctx).Model(&LedgerTransaction{})
	if filter.Day != "" {
		query = query.Where("day = ?", filter.Day)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", string(filter.Type))
	}
	if filter.ShiftID != "" {
		query = query.Where("shift_id = ?", filter.ShiftID)
	}
	var rows []LedgerTransaction
	if err := query.Order("occurred_at ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, wrapStoreError(errorSubjectTransaction, errorCodeList, err)
	}
	transactions := make([]frontdesk.Transaction, 0, len(rows))
	for _, row := range rows {
		transaction, err := mapTransaction(row)
		if err != nil {
			return nil, wrapStoreError(errorSubjectTransaction, errorCodeInvalid, err)
		}
		transactions = append(transactions, transaction)
	}
	return transactions, nil
}

func (store *Store) SumDay(ctx context.Context, day string) (frontdesk.DayTotals, error) {
	var sum sqlDaySum
	err := store.db.WithContext(ctx).
		Model(&LedgerTransaction{}).
		Select("coalesce(sum(case when type = ? then amount else 0 end),0) as income, coalesce(sum(case when type <> ? then amount else 0 end),0) as expense",
			string(frontdesk.TransactionIncome), string(frontdesk.TransactionIncome)).
		Where("day = ?", day).
		Scan(&sum).Error
	if err != nil {
		return frontdesk.DayTotals{}, wrapStoreError(errorSubjectTransaction, errorCodeSumDay, err)
	}
	return frontdesk.DayTotals{Income: frontdesk.Amount(sum.Income), Expense: frontdesk.Amount(sum.Expense)}, nil
}

func (store *Store) InsertShift(ctx context.Context, shift frontdesk.Shift) error {
	model := shiftModel(shift)
	if err := store.db.WithContext(ctx).Create(&model).Error; err != nil {
		return wrapStoreError(errorSubjectShift, errorCodeCreate, err)
	}
	return nil
}

func (store *Store) GetShift(ctx context.Context, shiftID string) (frontdesk.Shift, error) {
	var model Shift
	err := store.locked(ctx).Where("id = ?", shiftID).Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return frontdesk.Shift{}, wrapStoreError(errorSubjectShift, errorCodeGet, frontdesk.ErrUnknownShift)
		}
		return frontdesk.Shift{}, wrapStoreError(errorSubjectShift, errorCodeGet, err)
	}
	shift, err := mapShift(model)
	if err != nil {
		return frontdesk.Shift{}, wrapStoreError(errorSubjectShift, errorCodeInvalid, err)
	}
	return shift, nil
}

func (store *Store) UpdateShift(ctx context.Context, shift frontdesk.Shift) error {
	model := shiftModel(shift)
	result := store.db.WithContext(ctx).
		Model(&Shift{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"end_time":      model.EndTime,
			"total_income":  model.TotalIncome,
			"total_expense": model.TotalExpense,
			"notes":         model.Notes,
			"closed":        model.Closed,
		})
	if result.Error != nil {
		return wrapStoreError(errorSubjectShift, errorCodeUpdate, result.Error)
	}
	if result.RowsAffected == 0 {
		return wrapStoreError(errorSubjectShift, errorCodeUpdate, frontdesk.ErrUnknownShift)
	}
	return nil
}

func (store *Store) ListShifts(ctx context.Context, filter frontdesk.ShiftFilter) ([]frontdesk.Shift, error) {
	query := store.db.WithContext(ctx).Model(&Shift{})
	if filter.Since != nil {
		query = query.Where("start_time >= ?", filter.Since.UTC())
	}
	if filter.Until != nil {
		query = query.Where("start_time < ?", filter.Until.UTC())
	}
	if filter.ExcludeSuperAdmins {
		query = query.Where("admin_role <> ?", string(frontdesk.RoleSuperAdmin))
	}
	var rows []Shift
	if err := query.Order("start_time DESC").Find(&rows).Error; err != nil {
		return nil, wrapStoreError(errorSubjectShift, errorCodeList, err)
	}
	shifts := make([]frontdesk.Shift, 0, len(rows))
	for _, row := range rows {
		shift, err := mapShift(row)
		if err != nil {
			return nil, wrapStoreError(errorSubjectShift, errorCodeInvalid, err)
		}
		shifts = append(shifts, shift)
	}
	return shifts, nil
}

// LockDay materializes the day's lock row and holds it FOR UPDATE until the transaction ends.
// SQLite serializes writers on its own and ignores the locking clause.
func (store *Store) LockDay(ctx context.Context, day string) error {
	if !store.inTx {
		return nil
	}
	err := store.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&DayLock{Day: day}).Error
	if err != nil {
		return wrapStoreError(errorSubjectDayLock, errorCodeLock, err)
	}
	var lock DayLock
	if err := store.locked(ctx).Where("day = ?", day).Take(&lock).Error; err != nil {
		return wrapStoreError(errorSubjectDayLock, errorCodeLock, err)
	}
	return nil
}

// DailyReportExists reads the report row with a locking read inside a transaction,
// so repeatable-read snapshots still see a report committed by a concurrent CloseDay.
func (store *Store) DailyReportExists(ctx context.Context, day string) (bool, error) {
	var dates []string
	err := store.locked(ctx).Model(&DailyReport{}).Where("report_date = ?", day).Limit(1).Pluck("report_date", &dates).Error
	if err != nil {
		return false, wrapStoreError(errorSubjectDailyReport, errorCodeGet, err)
	}
	return len(dates) > 0, nil
}

func (store *Store) GetDailyReport(ctx context.Context, day string) (frontdesk.DailyReport, error) {
	var model DailyReport
	err := store.db.WithContext(ctx).Where("report_date = ?", day).Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return frontdesk.DailyReport{}, wrapStoreError(errorSubjectDailyReport, errorCodeGet, frontdesk.ErrUnknownDailyReport)
		}
		return frontdesk.DailyReport{}, wrapStoreError(errorSubjectDailyReport, errorCodeGet, err)
	}
	return mapDailyReport(model), nil
}

// UpsertDailyReport inserts the report or refreshes the snapshot of an already closed day.
func (store *Store) UpsertDailyReport(ctx context.Context, report frontdesk.DailyReport) error {
	model := DailyReport{
		ReportDate:   report.Date,
		ReportText:   report.ReportText,
		TotalIncome:  report.TotalIncome.Int64(),
		TotalExpense: report.TotalExpense.Int64(),
		ClosedAt:     report.ClosedAt.UTC(),
		AdminName:    report.AdminName,
	}
	err := store.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "report_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"report_text", "total_income", "total_expense", "closed_at", "admin_name"}),
		}).
		Create(&model).Error
	if err != nil {
		return wrapStoreError(errorSubjectDailyReport, errorCodeUpsert, err)
	}
	return nil
}

func (store *Store) ListDailyReports(ctx context.Context, month string) ([]frontdesk.DailyReport, error) {
	query := store.db.WithContext(ctx).Model(&DailyReport{})
	if month != "" {
		query = query.Where("report_date LIKE ?", month+monthPatternSuffix)
	}
	var rows []DailyReport
	if err := query.Order("report_date ASC").Find(&rows).Error; err != nil {
		return nil, wrapStoreError(errorSubjectDailyReport, errorCodeList, err)
	}
	reports := make([]frontdesk.DailyReport, 0, len(rows))
	for _, row := range rows {
		reports = append(reports, mapDailyReport(row))
	}
	return reports, nil
}

func (store *Store) InsertActivity(ctx context.Context, entry frontdesk.ActivityEntry) error {
	model := ActivityLog{
		ID:          entry.ID,
		OccurredAt:  entry.OccurredAt.UTC(),
		AdminName:   entry.AdminName,
		Action:      entry.Action,
		Description: entry.Description,
		RoomNumber:  entry.RoomNumber,
		Amount:      entry.Amount.Int64(),
		Details:     datatypesJSON(entry.Details),
	}
	if err := store.db.WithContext(ctx).Create(&model).Error; err != nil {
		return wrapStoreError(errorSubjectActivity, errorCodeCreate, err)
	}
	return nil
}

func (store *Store) ListActivity(ctx context.Context, limit int) ([]frontdesk.ActivityEntry, error) {
	var rows []ActivityLog
	err := store.db.WithContext(ctx).
		Order("occurred_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, wrapStoreError(errorSubjectActivity, errorCodeList, err)
	}
	entries := make([]frontdesk.ActivityEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, frontdesk.ActivityEntry{
			ID:          row.ID,
			OccurredAt:  row.OccurredAt,
			AdminName:   row.AdminName,
			Action:      row.Action,
			Description: row.Description,
			RoomNumber:  row.RoomNumber,
			Amount:      frontdesk.Amount(row.Amount),
			Details:     string(row.Details),
		})
	}
	return entries, nil
}

func wrapStoreError(subject string, code string, err error) error {
	return frontdesk.WrapError(errorOperationStore, subject, code, err)
}

type sqlDaySum struct {
	Income  int64
	Expense int64
}

func roomModel(room frontdesk.Room) Room {
	return Room{
		ID:            room.ID,
		Number:        room.Number,
		Floor:         room.Floor,
		Status:        string(room.Status),
		GuestName:     room.GuestName,
		GuestPassport: room.GuestPassport,
		GuestPhone:    room.GuestPhone,
		CheckIn:       utcOrNil(room.CheckIn),
		CheckOut:      utcOrNil(room.CheckOut),
		PricePerNight: room.PricePerNight.Int64(),
		Notes:         room.Notes,
		BookingID:     room.BookingID,
		UpdatedAt:     room.UpdatedAt.UTC(),
	}
}

func mapRoom(row Room) (frontdesk.Room, error) {
	status, err := frontdesk.ParseRoomStatus(row.Status)
	if err != nil {
		return frontdesk.Room{}, err
	}
	return frontdesk.Room{
		ID:            row.ID,
		Number:        row.Number,
		Floor:         row.Floor,
		Status:        status,
		GuestName:     row.GuestName,
		GuestPassport: row.GuestPassport,
		GuestPhone:    row.GuestPhone,
		CheckIn:       row.CheckIn,
		CheckOut:      row.CheckOut,
		PricePerNight: frontdesk.Amount(row.PricePerNight),
		Notes:         row.Notes,
		BookingID:     row.BookingID,
		UpdatedAt:     row.UpdatedAt,
	}, nil
}

func bookingModel(booking frontdesk.Booking) Booking {
	return Booking{
		ID:           booking.ID,
		RoomNumber:   booking.RoomNumber,
		GuestName:    booking.GuestName,
		GuestPhone:   booking.GuestPhone,
		CheckInDate:  booking.CheckInDate,
		CheckOutDate: booking.CheckOutDate,
		Nights:       booking.Nights,
		Notes:        booking.Notes,
		Prepayment:   booking.Prepayment.Int64(),
		Status:       string(booking.Status),
		CreatedBy:    booking.CreatedBy,
		CreatedAt:    booking.CreatedAt.UTC(),
		UpdatedAt:    booking.UpdatedAt.UTC(),
	}
}

func mapBooking(row Booking) (frontdesk.Booking, error) {
	status, err := frontdesk.ParseBookingStatus(row.Status)
	if err != nil {
		return frontdesk.Booking{}, err
	}
	return frontdesk.Booking{
		ID:           row.ID,
		RoomNumber:   row.RoomNumber,
		GuestName:    row.GuestName,
		GuestPhone:   row.GuestPhone,
		CheckInDate:  row.CheckInDate,
		CheckOutDate: row.CheckOutDate,
		Nights:       row.Nights,
		Notes:        row.Notes,
		Prepayment:   frontdesk.Amount(row.Prepayment),
		Status:       status,
		CreatedBy:    row.CreatedBy,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}

func transactionModel(transaction frontdesk.Transaction) LedgerTransaction {
	return LedgerTransaction{
		ID:          transaction.ID,
		Type:        string(transaction.Type),
		Category:    transaction.Category,
		Amount:      transaction.Amount.Int64(),
		Description: transaction.Description,
		RoomNumber:  transaction.RoomNumber,
		AdminID:     transaction.AdminID,
		AdminName:   transaction.AdminName,
		ShiftID:     transaction.ShiftID,
		OccurredAt:  transaction.OccurredAt.UTC(),
		Day:         transaction.Day,
	}
}

func mapTransaction(row LedgerTransaction) (frontdesk.Transaction, error) {
	transactionType, err := frontdesk.ParseTransactionType(row.Type)
	if err != nil {
		return frontdesk.Transaction{}, err
	}
	amount, err := frontdesk.NewAmount(row.Amount)
	if err != nil {
		return frontdesk.Transaction{}, err
	}
	return frontdesk.Transaction{
		ID:          row.ID,
		Type:        transactionType,
		Category:    row.Category,
		Amount:      amount,
		Description: row.Description,
		RoomNumber:  row.RoomNumber,
		AdminID:     row.AdminID,
		AdminName:   row.AdminName,
		ShiftID:     row.ShiftID,
		OccurredAt:  row.OccurredAt,
		Day:         row.Day,
	}, nil
}

func shiftModel(shift frontdesk.Shift) Shift {
	return Shift{
		ID:           shift.ID,
		AdminID:      shift.AdminID,
		AdminName:    shift.AdminName,
		AdminRole:    string(shift.AdminRole),
		StartTime:    shift.StartTime.UTC(),
		EndTime:      utcOrNil(shift.EndTime),
		TotalIncome:  shift.TotalIncome.Int64(),
		TotalExpense: shift.TotalExpense.Int64(),
		Notes:        shift.Notes,
		Closed:       shift.Closed,
	}
}

func mapShift(row Shift) (frontdesk.Shift, error) {
	role, err := frontdesk.ParseRole(row.AdminRole)
	if err != nil {
		return frontdesk.Shift{}, err
	}
	return frontdesk.Shift{
		ID:           row.ID,
		AdminID:      row.AdminID,
		AdminName:    row.AdminName,
		AdminRole:    role,
		StartTime:    row.StartTime,
		EndTime:      row.EndTime,
		TotalIncome:  frontdesk.Amount(row.TotalIncome),
		TotalExpense: frontdesk.Amount(row.TotalExpense),
		Notes:        row.Notes,
		Closed:       row.Closed,
	}, nil
}

func mapDailyReport(row DailyReport) frontdesk.DailyReport {
	return frontdesk.DailyReport{
		Date:         row.ReportDate,
		ReportText:   row.ReportText,
		TotalIncome:  frontdesk.Amount(row.TotalIncome),
		TotalExpense: frontdesk.Amount(row.TotalExpense),
		ClosedAt:     row.ClosedAt,
		AdminName:    row.AdminName,
	}
}

func utcOrNil(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	utc := value.UTC()
	return &utc
}

func datatypesJSON(raw string) datatypes.JSON {
	if raw == "" {
		return datatypes.JSON([]byte(defaultDetailsJSON))
	}
	return datatypes.JSON([]byte(raw))
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolationCode
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntryCode
	}
	var sqliteErr *gosqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code()&0xFF == sqliteConstraintCode
	}
	return false
}
