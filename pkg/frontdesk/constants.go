package frontdesk

// MaxAmount caps a single transaction.
const MaxAmount Amount = 10_000_000_000

const (
	operationRegisterRoom      = "register_room"
	operationChangeRoomStatus  = "change_room_status"
	operationCreateBooking     = "create_booking"
	operationEditBooking       = "edit_booking"
	operationCancelBooking     = "cancel_booking"
	operationCheckInBooking    = "check_in_booking"
	operationRecordTransaction = "record_transaction"
	operationEditTransaction   = "edit_transaction"
	operationDeleteTransaction = "delete_transaction"
	operationOpenShift         = "open_shift"
	operationCloseShift        = "close_shift"
	operationCloseDay          = "close_day"

	operationStatusOK    = "ok"
	operationStatusError = "error"

	calendarDateLayout = "2006-01-02"
	monthLayout        = "2006-01"

	maxRoomNumberLength  = 20
	maxCategoryLength    = 100
	maxDescriptionLength = 500
	maxNotesLength       = 500
	maxGuestNameLength   = 200
	maxGuestPhoneLength  = 30
	maxPassportLength    = 50
	maxReportTextLength  = 10000

	minNights = 1
	maxNights = 365

	maxBookingLeadYears = 1

	defaultActivityLimit = 100
	maxActivityLimit     = 1000
	shiftHistoryDays     = 30

	categoryPrepayment       = "Prepayment"
	categoryPrepaymentRefund = "Prepayment refund"
	categoryRoomPayment      = "Room payment"
)
