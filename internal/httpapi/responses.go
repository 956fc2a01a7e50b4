package httpapi

import (
	"encoding/json"
	"time"

	"github.com/MarkoPoloResearchLab/frontdesk/pkg/frontdesk"
)

type roomPayload struct {
	ID            string     `json:"id"`
	Number        string     `json:"number"`
	Floor         int        `json:"floor"`
	Status        string     `json:"status"`
	GuestName     string     `json:"guest_name,omitempty"`
	GuestPassport string     `json:"guest_passport,omitempty"`
	GuestPhone    string     `json:"guest_phone,omitempty"`
	CheckIn       *time.Time `json:"check_in,omitempty"`
	CheckOut      *time.Time `json:"check_out,omitempty"`
	PricePerNight int64      `json:"price_per_night"`
	Notes         string     `json:"notes"`
	BookingID     string     `json:"booking_id,omitempty"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func newRoomPayload(room frontdesk.Room) roomPayload {
	return roomPayload{
		ID:            room.ID,
		Number:        room.Number,
		Floor:         room.Floor,
		Status:        string(room.Status),
		GuestName:     room.GuestName,
		GuestPassport: room.GuestPassport,
		GuestPhone:    room.GuestPhone,
		CheckIn:       room.CheckIn,
		CheckOut:      room.CheckOut,
		PricePerNight: room.PricePerNight.Int64(),
		Notes:         room.Notes,
		BookingID:     room.BookingID,
		UpdatedAt:     room.UpdatedAt,
	}
}

type bookingPayload struct {
	ID           string    `json:"id"`
	RoomNumber   string    `json:"room_number"`
	GuestName    string    `json:"guest_name"`
	GuestPhone   string    `json:"guest_phone"`
	CheckInDate  string    `json:"check_in_date"`
	CheckOutDate string    `json:"check_out_date"`
	Nights       int       `json:"nights"`
	Notes        string    `json:"notes"`
	Prepayment   int64     `json:"prepayment"`
	Status       string    `json:"status"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func newBookingPayload(booking frontdesk.Booking) bookingPayload {
	return bookingPayload{
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
		CreatedAt:    booking.CreatedAt,
		UpdatedAt:    booking.UpdatedAt,
	}
}

type checkInPayload struct {
	Booking   bookingPayload `json:"booking"`
	Room      roomPayload    `json:"room"`
	Remaining int64          `json:"remaining"`
	FullTotal int64          `json:"full_total"`
	Prepaid   int64          `json:"prepaid"`
}

type transactionPayload struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	Amount      int64     `json:"amount"`
	Description string    `json:"description"`
	RoomNumber  string    `json:"room_number,omitempty"`
	AdminID     string    `json:"admin_id"`
	AdminName   string    `json:"admin_name"`
	ShiftID     string    `json:"shift_id,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
	Day         string    `json:"day"`
}

func newTransactionPayload(transaction frontdesk.Transaction) transactionPayload {
	return transactionPayload{
		ID:          transaction.ID,
		Type:        string(transaction.Type),
		Category:    transaction.Category,
		Amount:      transaction.Amount.Int64(),
		Description: transaction.Description,
		RoomNumber:  transaction.RoomNumber,
		AdminID:     transaction.AdminID,
		AdminName:   transaction.AdminName,
		ShiftID:     transaction.ShiftID,
		OccurredAt:  transaction.OccurredAt,
		Day:         transaction.Day,
	}
}

type shiftPayload struct {
	ID           string     `json:"id"`
	AdminID      string     `json:"admin_id"`
	AdminName    string     `json:"admin_name"`
	AdminRole    string     `json:"admin_role"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	TotalIncome  int64      `json:"total_income"`
	TotalExpense int64      `json:"total_expense"`
	Notes        string     `json:"notes"`
	Closed       bool       `json:"closed"`
}

func newShiftPayload(shift frontdesk.Shift) shiftPayload {
	return shiftPayload{
		ID:           shift.ID,
		AdminID:      shift.AdminID,
		AdminName:    shift.AdminName,
		AdminRole:    string(shift.AdminRole),
		StartTime:    shift.StartTime,
		EndTime:      shift.EndTime,
		TotalIncome:  shift.TotalIncome.Int64(),
		TotalExpense: shift.TotalExpense.Int64(),
		Notes:        shift.Notes,
		Closed:       shift.Closed,
	}
}

type dailyReportPayload struct {
	Date         string    `json:"date"`
	ReportText   string    `json:"report_text"`
	TotalIncome  int64     `json:"total_income"`
	TotalExpense int64     `json:"total_expense"`
	ClosedAt     time.Time `json:"closed_at"`
	AdminName    string    `json:"admin_name"`
}

func newDailyReportPayload(report frontdesk.DailyReport) dailyReportPayload {
	return dailyReportPayload{
		Date:         report.Date,
		ReportText:   report.ReportText,
		TotalIncome:  report.TotalIncome.Int64(),
		TotalExpense: report.TotalExpense.Int64(),
		ClosedAt:     report.ClosedAt,
		AdminName:    report.AdminName,
	}
}

type daySnapshotPayload struct {
	Date         string               `json:"date"`
	Closed       bool                 `json:"closed"`
	Transactions []transactionPayload `json:"transactions"`
	Shifts       []shiftPayload       `json:"shifts"`
	Rooms        []roomPayload        `json:"rooms"`
	Report       *dailyReportPayload  `json:"report,omitempty"`
}

func newDaySnapshotPayload(snapshot frontdesk.DaySnapshot) daySnapshotPayload {
	payload := daySnapshotPayload{
		Date:         snapshot.Date,
		Closed:       snapshot.Report != nil,
		Transactions: mapSlice(snapshot.Transactions, newTransactionPayload),
		Shifts:       mapSlice(snapshot.Shifts, newShiftPayload),
		Rooms:        mapSlice(snapshot.Rooms, newRoomPayload),
	}
	if snapshot.Report != nil {
		report := newDailyReportPayload(*snapshot.Report)
		payload.Report = &report
	}
	return payload
}

type activityPayload struct {
	ID          string          `json:"id"`
	OccurredAt  time.Time       `json:"occurred_at"`
	AdminName   string          `json:"admin_name"`
	Action      string          `json:"action"`
	Description string          `json:"description"`
	RoomNumber  string          `json:"room_number,omitempty"`
	Amount      int64           `json:"amount"`
	Details     json.RawMessage `json:"details"`
}

func newActivityPayload(entry frontdesk.ActivityEntry) activityPayload {
	details := json.RawMessage(entry.Details)
	if !json.Valid(details) {
		details = json.RawMessage("{}")
	}
	return activityPayload{
		ID:          entry.ID,
		OccurredAt:  entry.OccurredAt,
		AdminName:   entry.AdminName,
		Action:      entry.Action,
		Description: entry.Description,
		RoomNumber:  entry.RoomNumber,
		Amount:      entry.Amount.Int64(),
		Details:     details,
	}
}

func mapSlice[From any, To any](values []From, convert func(From) To) []To {
	mapped := make([]To, 0, len(values))
	for _, value := range values {
		mapped = append(mapped, convert(value))
	}
	return mapped
}
