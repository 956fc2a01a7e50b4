package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MarkoPoloResearchLab/frontdesk/pkg/frontdesk"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FrontDesk is the operation surface served over HTTP. *frontdesk.Service satisfies it.
type FrontDesk interface {
	Location() *time.Location
	Today() frontdesk.CalendarDate

	RegisterRoom(ctx context.Context, actor frontdesk.Actor, input frontdesk.RoomInput) (frontdesk.Room, error)
	ChangeRoomStatus(ctx context.Context, actor frontdesk.Actor, roomID frontdesk.RoomID, change frontdesk.RoomStatusChange) (frontdesk.Room, error)
	ListRooms(ctx context.Context) ([]frontdesk.Room, error)
	GetRoom(ctx context.Context, roomID frontdesk.RoomID) (frontdesk.Room, error)

	CreateBooking(ctx context.Context, actor frontdesk.Actor, input frontdesk.CreateBookingInput) (frontdesk.Booking, error)
	EditBooking(ctx context.Context, actor frontdesk.Actor, bookingID frontdesk.BookingID, input frontdesk.EditBookingInput) (frontdesk.Booking, error)
	CancelBooking(ctx context.Context, actor frontdesk.Actor, bookingID frontdesk.BookingID, shiftID *frontdesk.ShiftID) error
	CheckInBooking(ctx context.Context, actor frontdesk.Actor, bookingID frontdesk.BookingID, input frontdesk.CheckInInput) (frontdesk.CheckInResult, error)
	ListBookings(ctx context.Context, filter frontdesk.BookingFilter) ([]frontdesk.Booking, error)
	GetBooking(ctx context.Context, bookingID frontdesk.BookingID) (frontdesk.Booking, error)

	RecordTransaction(ctx context.Context, actor frontdesk.Actor, input frontdesk.TransactionInput) (frontdesk.Transaction, error)
	EditTransaction(ctx context.Context, actor frontdesk.Actor, transactionID frontdesk.TransactionID, edit frontdesk.TransactionEdit) (frontdesk.Transaction, error)
	DeleteTransaction(ctx context.Context, actor frontdesk.Actor, transactionID frontdesk.TransactionID) error
	ListTransactions(ctx context.Context, filter frontdesk.TransactionFilter) ([]frontdesk.Transaction, error)
	GetTransaction(ctx context.Context, transactionID frontdesk.TransactionID) (frontdesk.Transaction, error)

	OpenShift(ctx context.Context, actor frontdesk.Actor) (frontdesk.Shift, error)
	CloseShift(ctx context.Context, actor frontdesk.Actor, shiftID frontdesk.ShiftID, notes string) (frontdesk.Shift, error)
	ListShifts(ctx context.Context, filter frontdesk.ShiftFilter) ([]frontdesk.Shift, error)
	GetShift(ctx context.Context, shiftID frontdesk.ShiftID) (frontdesk.Shift, error)

	CloseDay(ctx context.Context, actor frontdesk.Actor, date frontdesk.CalendarDate, reportText string) (frontdesk.DailyReport, error)
	ListClosedDays(ctx context.Context, month frontdesk.Month) ([]frontdesk.DailyReport, error)
	DaySnapshot(ctx context.Context, date frontdesk.CalendarDate) (frontdesk.DaySnapshot, error)
	ListActivity(ctx context.Context, limit int) ([]frontdesk.ActivityEntry, error)
}

type httpHandler struct {
	logger  *zap.Logger
	service FrontDesk
	cfg     Config
	actors  actorResolver
}

func (handler *httpHandler) requestContext(ctx *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx.Request.Context(), handler.cfg.RequestTimeout)
}

func (handler *httpHandler) handleSession(ctx *gin.Context) {
	actor := getActor(ctx)
	claims := getClaims(ctx)
	ctx.JSON(http.StatusOK, gin.H{
		"user_id": actor.ID,
		"display": actor.Name,
		"email":   claims.GetUserEmail(),
		"role":    actor.Role,
		"expires": claims.GetExpiresAt().Unix(),
		"today":   handler.service.Today().String(),
	})
}

func (handler *httpHandler) handleListRooms(ctx *gin.Context) {
	requestCtx, cancel := handler.requestContext(ctx)
	defer cancel()
	rooms, err := handler.service.ListRooms(requestCtx)
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"rooms": mapSlice(rooms, newRoomPayload)})
}

func (handler *httpHandler) handleGetRoom(ctx *gin.Context) {
	roomID, err := frontdesk.NewRoomID(ctx.Param("id"))
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	requestCtx, cancel := handler.requestContext(ctx)
	defer cancel()
	room, err := handler.service.GetRoom(requestCtx, roomID)
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newRoomPayload(room))
}

func (handler *httpHandler) handleRegisterRoom(ctx *gin.Context) {
	var request registerRoomRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		handler.respondBindError(ctx, err)
		return
	}
	input, err := request.toInput()
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	requestCtx, cancel := handler.requestContext(ctx)
	defer cancel()
	room, err := handler.service.RegisterRoom(requestCtx, getActor(ctx), input)
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, newRoomPayload(room))
}

func (handler *httpHandler) handleChangeRoomStatus(ctx *gin.Context) {
	roomID, err := frontdesk.NewRoomID(ctx.Param("id"))
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	var request roomStatusRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		handler.respondBindError(ctx, err)
		return
	}
	change, err := request.toChange()
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	requestCtx, cancel := handler.requestContext(ctx)
	defer cancel()
	room, err := handler.service.ChangeRoomStatus(requestCtx, getActor(ctx), roomID, change)
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newRoomPayload(room))
}

func (handler *httpHandler) handleListBookings(ctx *gin.Context) {
	filter := frontdesk.BookingFilter{RoomNumber: strings.TrimSpace(ctx.Query("room"))}
	if rawStatus := strings.TrimSpace(ctx.Query("status")); rawStatus != "" {
		status, err := frontdesk.ParseBookingStatus(rawStatus)
		if err != nil {
			handler.respondError(ctx, err)
			return
		}
		filter.Status = status
	}
	requestCtx, cancel := handler.requestContext(ctx)
	defer cancel()
	bookings, err := handler.service.ListBookings(requestCtx, filter)
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"bookings": mapSlice(bookings, newBookingPayload)})
}

func (handler *httpHandler) handleGetBooking(ctx *gin.Context) {
	bookingID, err := frontdesk.NewBookingID(ctx.Param("id"))
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	requestCtx, cancel := handler.requestContext(ctx)
	defer cancel()
	booking, err := handler.service.GetBooking(requestCtx, bookingID)
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newBookingPayload(booking))
}

func (handler *httpHandler) handleCreateBooking(ctx *gin.Context) {
	var request createBookingRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		handler.respondBindError(ctx, err)
		return
	}
	input, err := request.toInput()
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	requestCtx, cancel := handler.requestContext(ctx)
	defer cancel()
	booking, err := handler.service.CreateBooking(requestCtx, getActor(ctx), input)
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, newBookingPayload(booking))
}

func (handler *httpHandler) handleEditBooking(ctx *gin.Context) {
	bookingID, err := frontdesk.NewBookingID(ctx.Param("id"))
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	var request editBookingRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		handler.respondBindError(ctx, err)
		return
	}
	input, err := request.toInput()
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	requestCtx, cancel := handler.requestContext(ctx)
	defer cancel()
	booking, err := handler.service.EditBooking(requestCtx, getActor(ctx), bookingID, input)
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newBookingPayload(booking))
}

func (handler *httpHandler) handleCancelBooking(ctx *gin.Context) {
	bookingID, err := frontdesk.NewBookingID(ctx.Param("id"))
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	var request cancelBookingRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			handler.respondBindError(ctx, err)
			return
		}
	}
	shiftID, err := frontdesk.NewOptionalShiftID(request.ShiftID)
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	requestCtx, cancel := handler.requestContext(ctx)
	defer cancel()
	if err := handler.service.CancelBooking(requestCtx, getActor(ctx), bookingID, shiftID); err != nil {
		handler.respondError(ctx, err)
		return
	}
	booking, err := handler.service.GetBooking(requestCtx, bookingID)
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newBookingPayload(booking))
}

func (handler *httpHandler) handleCheckIn(ctx *gin.Context) {
	bookingID, err := frontdesk.NewBookingID(ctx.Param("id"))
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	var request checkInRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		handler.respondBindError(ctx, err)
		return
	}
	input, err := request.toInput()
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	requestCtx, cancel := handler.requestContext(ctx)
	defer cancel()
	result, err := handler.service.CheckInBooking(requestCtx, getActor(ctx), bookingID, input)
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, checkInPayload{
		Booking:   newBookingPayload(result.Booking),
		Room:      newRoomPayload(result.Room),
		Remaining: result.Remaining.Int64(),
		FullTotal: result.FullTotal.Int64(),
		Prepaid:   result.Prepaid.Int64(),
	})
}

func (handler *httpHandler) handleListTransactions(ctx *gin.Context) {
	filter := frontdesk.TransactionFilter{ShiftID: strings.TrimSpace(ctx.Query("shift_id"))}
	if rawDate := strings.TrimSpace(ctx.Query("date")); rawDate != "" {
		date, err := frontdesk.ParseCalendarDate(rawDate)
		if err != nil {
			handler.respondError(ctx, err)
			return
		}
		filter.Day = date.String()
	}
	if rawType := strings.TrimSpace(ctx.Query("type")); rawType != "" {
		transactionType, err := frontdesk.ParseTransactionType(rawType)
		if err != nil {
			handler.respondError(ctx, err)
			return
		}
		filter.Type = transactionType
	}
	requestCtx, cancel := handler.requestContext(ctx)
	defer cancel()
	transactions, err := handler.service.ListTransactions(requestCtx, filter)
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"transactions": mapSlice(transactions, newTransactionPayload)})
}

func (handler *httpHandler) handleGetTransaction(ctx *gin.Context) {
	transactionID, err := frontdesk.NewTransactionID(ctx.Param("id"))
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	requestCtx, cancel := handler.requestContext(ctx)
	defer cancel()
	transaction, err := handler.service.GetTransaction(requestCtx, transactionID)
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newTransactionPayload(transaction))
}

func (handler *httpHandler) handleRecordTransaction(ctx *gin.Context) {
	var request transactionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		handler.respondBindError(ctx, err)
		return
	}
	input, err := request.toInput()
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	requestCtx, cancel := handler.requestContext(ctx)
	defer cancel()
	transaction, err := handler.service.RecordTransaction(requestCtx, getActor(ctx), input)
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, newTransactionPayload(transaction))
}

func (handler *httpHandler) handleEditTransaction(ctx *gin.Context) {
	transactionID, err := frontdesk.NewTransactionID(ctx.Param("id"))
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	var request editTransactionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		handler.respondBindError(ctx, err)
		return
	}
	edit, err := request.toEdit()
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	requestCtx, cancel := handler.requestContext(ctx)
	defer cancel()
	transaction, err := handler.service.EditTransaction(requestCtx, getActor(ctx), transactionID, edit)
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newTransactionPayload(transaction))
}

func (handler *httpHandler) handleDeleteTransaction(ctx *gin.Context) {
	transactionID, err := frontdesk.NewTransactionID(ctx.Param("id"))
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	requestCtx, cancel := handler.requestContext(ctx)
	defer cancel()
	if err := handler.service.DeleteTransaction(requestCtx, getActor(ctx), transactionID); err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"deleted": transactionID.String()})
}

// handleListShifts lists shifts between from and to (inclusive calendar dates).
// Plain admins never see super admin shifts.
func (handler *httpHandler) handleListShifts(ctx *gin.Context) {
	actor := getActor(ctx)
	filter := frontdesk.ShiftFilter{ExcludeSuperAdmins: !actor.IsSuperAdmin()}
	location := handler.service.Location()
	if rawFrom := strings.TrimSpace(ctx.Query("from")); rawFrom != "" {
		from, err := frontdesk.ParseCalendarDate(rawFrom)
		if err != nil {
			handler.respondError(ctx, err)
			return
		}
		since := from.Start(location)
		filter.Since = &since
	}
	if rawTo := strings.TrimSpace(ctx.Query("to")); rawTo != "" {
		to, err := frontdesk.ParseCalendarDate(rawTo)
		if err != nil {
			handler.respondError(ctx, err)
			return
		}
		until := to.AddDays(1).Start(location)
		filter.Until = &until
	}
	requestCtx, cancel := handler.requestContext(ctx)
	defer cancel()
	shifts, err := handler.service.ListShifts(requestCtx, filter)
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"shifts": mapSlice(shifts, newShiftPayload)})
}

func (handler *httpHandler) handleGetShift(ctx *gin.Context) {
	shiftID, err := frontdesk.NewShiftID(ctx.Param("id"))
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	requestCtx, cancel := handler.requestContext(ctx)
	defer cancel()
	shift, err := handler.service.GetShift(requestCtx, shiftID)
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newShiftPayload(shift))
}

func (handler *httpHandler) handleOpenShift(ctx *gin.Context) {
	requestCtx, cancel := handler.requestContext(ctx)
	defer cancel()
	shift, err := handler.service.OpenShift(requestCtx, getActor(ctx))
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, newShiftPayload(shift))
}

func (handler *httpHandler) handleCloseShift(ctx *gin.Context) {
	shiftID, err := frontdesk.NewShiftID(ctx.Param("id"))
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	var request closeShiftRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			handler.respondBindError(ctx, err)
			return
		}
	}
	requestCtx, cancel := handler.requestContext(ctx)
	defer cancel()
	shift, err := handler.service.CloseShift(requestCtx, getActor(ctx), shiftID, request.Notes)
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newShiftPayload(shift))
}

func (handler *httpHandler) handleDailyReport(ctx *gin.Context) {
	date, err := frontdesk.ParseCalendarDate(ctx.Param("date"))
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	requestCtx, cancel := handler.requestContext(ctx)
	defer cancel()
	snapshot, err := handler.service.DaySnapshot(requestCtx, date)
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newDaySnapshotPayload(snapshot))
}

func (handler *httpHandler) handleCloseDay(ctx *gin.Context) {
	date, err := frontdesk.ParseCalendarDate(ctx.Param("date"))
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	var request closeDayRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		handler.respondBindError(ctx, err)
		return
	}
	requestCtx, cancel := handler.requestContext(ctx)
	defer cancel()
	report, err := handler.service.CloseDay(requestCtx, getActor(ctx), date, request.ReportText)
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newDailyReportPayload(report))
}

// handleClosedDates lists the closed days of ?month=YYYY-MM, defaulting to the current month.
func (handler *httpHandler) handleClosedDates(ctx *gin.Context) {
	rawMonth := strings.TrimSpace(ctx.Query("month"))
	if rawMonth == "" {
		rawMonth = handler.service.Today().String()[:len("2006-01")]
	}
	month, err := frontdesk.ParseMonth(rawMonth)
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	requestCtx, cancel := handler.requestContext(ctx)
	defer cancel()
	reports, err := handler.service.ListClosedDays(requestCtx, month)
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	dates := make([]string, 0, len(reports))
	for _, report := range reports {
		dates = append(dates, report.Date)
	}
	ctx.JSON(http.StatusOK, gin.H{
		"month":   month.String(),
		"dates":   dates,
		"reports": mapSlice(reports, newDailyReportPayload),
	})
}

func (handler *httpHandler) handleListActivity(ctx *gin.Context) {
	limit := 0
	if rawLimit := strings.TrimSpace(ctx.Query("limit")); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, errorResponse(string(frontdesk.KindValidation), "limit must be an integer"))
			return
		}
		limit = parsed
	}
	requestCtx, cancel := handler.requestContext(ctx)
	defer cancel()
	entries, err := handler.service.ListActivity(requestCtx, limit)
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"activity": mapSlice(entries, newActivityPayload)})
}
