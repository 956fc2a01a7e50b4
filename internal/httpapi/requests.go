package httpapi

import (
	"strings"
	"time"

	"github.com/MarkoPoloResearchLab/frontdesk/pkg/frontdesk"
)

type registerRoomRequest struct {
	Number        string `json:"number" binding:"required"`
	Floor         int    `json:"floor"`
	PricePerNight int64  `json:"price_per_night"`
	Notes         string `json:"notes"`
}

func (request registerRoomRequest) toInput() (frontdesk.RoomInput, error) {
	number, err := frontdesk.NewRoomNumber(request.Number)
	if err != nil {
		return frontdesk.RoomInput{}, err
	}
	price, err := frontdesk.NewPrice(request.PricePerNight)
	if err != nil {
		return frontdesk.RoomInput{}, err
	}
	return frontdesk.RoomInput{Number: number, Floor: request.Floor, PricePerNight: price, Notes: request.Notes}, nil
}

type roomStatusRequest struct {
	Status        string     `json:"status"`
	GuestName     string     `json:"guest_name"`
	GuestPassport string     `json:"guest_passport"`
	GuestPhone    string     `json:"guest_phone"`
	CheckOut      *time.Time `json:"check_out"`
	PricePerNight *int64     `json:"price_per_night"`
	Notes         *string    `json:"notes"`
}

func (request roomStatusRequest) toChange() (frontdesk.RoomStatusChange, error) {
	change := frontdesk.RoomStatusChange{
		Guest:    frontdesk.Guest{Name: request.GuestName, Passport: request.GuestPassport, Phone: request.GuestPhone},
		CheckOut: request.CheckOut,
		Notes:    request.Notes,
	}
	if strings.TrimSpace(request.Status) != "" {
		status, err := frontdesk.ParseRoomStatus(request.Status)
		if err != nil {
			return frontdesk.RoomStatusChange{}, err
		}
		change.Status = status
	}
	if request.PricePerNight != nil {
		price, err := frontdesk.NewPrice(*request.PricePerNight)
		if err != nil {
			return frontdesk.RoomStatusChange{}, err
		}
		change.PricePerNight = &price
	}
	return change, nil
}

type createBookingRequest struct {
	RoomNumber   string `json:"room_number" binding:"required"`
	GuestName    string `json:"guest_name" binding:"required"`
	GuestPhone   string `json:"guest_phone" binding:"required"`
	CheckInDate  string `json:"check_in_date" binding:"required"`
	CheckOutDate string `json:"check_out_date"`
	Nights       int    `json:"nights"`
	Notes        string `json:"notes"`
	Prepayment   int64  `json:"prepayment"`
	ShiftID      string `json:"shift_id"`
}

func (request createBookingRequest) toInput() (frontdesk.CreateBookingInput, error) {
	number, err := frontdesk.NewRoomNumber(request.RoomNumber)
	if err != nil {
		return frontdesk.CreateBookingInput{}, err
	}
	checkIn, err := frontdesk.ParseCalendarDate(request.CheckInDate)
	if err != nil {
		return frontdesk.CreateBookingInput{}, err
	}
	checkOut, err := parseOptionalDate(request.CheckOutDate)
	if err != nil {
		return frontdesk.CreateBookingInput{}, err
	}
	prepayment, err := frontdesk.NewPrice(request.Prepayment)
	if err != nil {
		return frontdesk.CreateBookingInput{}, err
	}
	shiftID, err := frontdesk.NewOptionalShiftID(request.ShiftID)
	if err != nil {
		return frontdesk.CreateBookingInput{}, err
	}
	return frontdesk.CreateBookingInput{
		RoomNumber:   number,
		GuestName:    request.GuestName,
		GuestPhone:   request.GuestPhone,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Nights:       request.Nights,
		Notes:        request.Notes,
		Prepayment:   prepayment,
		ShiftID:      shiftID,
	}, nil
}

type editBookingRequest struct {
	RoomNumber   *string `json:"room_number"`
	GuestName    *string `json:"guest_name"`
	GuestPhone   *string `json:"guest_phone"`
	CheckInDate  *string `json:"check_in_date"`
	CheckOutDate *string `json:"check_out_date"`
	Nights       *int    `json:"nights"`
	Notes        *string `json:"notes"`
}

func (request editBookingRequest) toInput() (frontdesk.EditBookingInput, error) {
	input := frontdesk.EditBookingInput{
		GuestName:  request.GuestName,
		GuestPhone: request.GuestPhone,
		Nights:     request.Nights,
		Notes:      request.Notes,
	}
	if request.RoomNumber != nil {
		number, err := frontdesk.NewRoomNumber(*request.RoomNumber)
		if err != nil {
			return frontdesk.EditBookingInput{}, err
		}
		input.RoomNumber = &number
	}
	if request.CheckInDate != nil {
		checkIn, err := frontdesk.ParseCalendarDate(*request.CheckInDate)
		if err != nil {
			return frontdesk.EditBookingInput{}, err
		}
		input.CheckInDate = &checkIn
	}
	if request.CheckOutDate != nil {
		checkOut, err := parseOptionalDate(*request.CheckOutDate)
		if err != nil {
			return frontdesk.EditBookingInput{}, err
		}
		input.CheckOutDate = &checkOut
	}
	return input, nil
}

type cancelBookingRequest struct {
	ShiftID string `json:"shift_id"`
}

type checkInRequest struct {
	Passport   string `json:"passport"`
	Nights     int    `json:"nights"`
	Date       string `json:"date"`
	TotalPrice int64  `json:"total_price"`
	ShiftID    string `json:"shift_id"`
}

func (request checkInRequest) toInput() (frontdesk.CheckInInput, error) {
	date, err := parseOptionalDate(request.Date)
	if err != nil {
		return frontdesk.CheckInInput{}, err
	}
	total, err := frontdesk.NewPrice(request.TotalPrice)
	if err != nil {
		return frontdesk.CheckInInput{}, err
	}
	shiftID, err := frontdesk.NewOptionalShiftID(request.ShiftID)
	if err != nil {
		return frontdesk.CheckInInput{}, err
	}
	return frontdesk.CheckInInput{
		Passport:   request.Passport,
		Nights:     request.Nights,
		Date:       date,
		TotalPrice: total,
		ShiftID:    shiftID,
	}, nil
}

type transactionRequest struct {
	Type        string     `json:"type" binding:"required"`
	Category    string     `json:"category" binding:"required"`
	Amount      float64    `json:"amount"`
	Description string     `json:"description"`
	RoomNumber  string     `json:"room_number"`
	ShiftID     string     `json:"shift_id"`
	OccurredAt  *time.Time `json:"occurred_at"`
}

func (request transactionRequest) toInput() (frontdesk.TransactionInput, error) {
	transactionType, err := frontdesk.ParseTransactionType(request.Type)
	if err != nil {
		return frontdesk.TransactionInput{}, err
	}
	amount, err := frontdesk.NewAmountFromFloat(request.Amount)
	if err != nil {
		return frontdesk.TransactionInput{}, err
	}
	shiftID, err := frontdesk.NewOptionalShiftID(request.ShiftID)
	if err != nil {
		return frontdesk.TransactionInput{}, err
	}
	return frontdesk.TransactionInput{
		Type:        transactionType,
		Category:    request.Category,
		Amount:      amount,
		Description: request.Description,
		RoomNumber:  request.RoomNumber,
		ShiftID:     shiftID,
		OccurredAt:  request.OccurredAt,
	}, nil
}

type editTransactionRequest struct {
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	Amount      *float64 `json:"amount"`
}

func (request editTransactionRequest) toEdit() (frontdesk.TransactionEdit, error) {
	edit := frontdesk.TransactionEdit{Category: request.Category, Description: request.Description}
	if request.Amount != nil {
		amount, err := frontdesk.NewAmountFromFloat(*request.Amount)
		if err != nil {
			return frontdesk.TransactionEdit{}, err
		}
		edit.Amount = &amount
	}
	return edit, nil
}

type closeShiftRequest struct {
	Notes string `json:"notes"`
}

type closeDayRequest struct {
	ReportText string `json:"report_text" binding:"required"`
}

// parseOptionalDate returns the zero date for a blank value.
func parseOptionalDate(raw string) (frontdesk.CalendarDate, error) {
	if strings.TrimSpace(raw) == "" {
		return frontdesk.CalendarDate{}, nil
	}
	return frontdesk.ParseCalendarDate(raw)
}
