package gormstore

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Room mirrors the rooms table.
type Room struct {
	ID            string     `gorm:"primaryKey;size:64"`
	Number        string     `gorm:"size:20;not null;uniqueIndex:uniq_rooms_number"`
	Floor         int        `gorm:"not null"`
	Status        string     `gorm:"size:20;not null;index:idx_rooms_status"`
	GuestName     string     `gorm:"size:200;not null;default:''"`
	GuestPassport string     `gorm:"size:50;not null;default:''"`
	GuestPhone    string     `gorm:"size:30;not null;default:''"`
	CheckIn       *time.Time `gorm:""`
	CheckOut      *time.Time `gorm:""`
	PricePerNight int64      `gorm:"not null;default:0"`
	Notes         string     `gorm:"size:500;not null;default:''"`
	BookingID     string     `gorm:"size:64;not null;default:'';index:idx_rooms_booking"`
	UpdatedAt     time.Time  `gorm:"not null;autoUpdateTime:false"`
}

func (Room) TableName() string { return "rooms" }

func (room *Room) BeforeCreate(tx *gorm.DB) error {
	if room.ID == "" {
		room.ID = uuid.NewString()
	}
	return nil
}

// Booking mirrors the bookings table.
type Booking struct {
	ID           string    `gorm:"primaryKey;size:64"`
	RoomNumber   string    `gorm:"size:20;not null;index:idx_bookings_room_status,priority:1"`
	GuestName    string    `gorm:"size:200;not null"`
	GuestPhone   string    `gorm:"size:30;not null;default:''"`
	CheckInDate  string    `gorm:"size:10;not null"`
	CheckOutDate string    `gorm:"size:10;not null;default:''"`
	Nights       int       `gorm:"not null;default:1"`
	Notes        string    `gorm:"size:500;not null;default:''"`
	Prepayment   int64     `gorm:"not null;default:0"`
	Status       string    `gorm:"size:20;not null;index:idx_bookings_room_status,priority:2"`
	CreatedBy    string    `gorm:"size:200;not null"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (Booking) TableName() string { return "bookings" }

func (booking *Booking) BeforeCreate(tx *gorm.DB) error {
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	return nil
}

// LedgerTransaction mirrors the ledger_transactions table. Day is the hotel
// calendar date the row belongs to and is what the day lock checks.
type LedgerTransaction struct {
	ID          string    `gorm:"primaryKey;size:64"`
	Type        string    `gorm:"size:10;not null"`
	Category    string    `gorm:"size:100;not null"`
	Amount      int64     `gorm:"not null"`
	Description string    `gorm:"size:500;not null;default:''"`
	RoomNumber  string    `gorm:"size:20;not null;default:''"`
	AdminID     string    `gorm:"size:64;not null"`
	AdminName   string    `gorm:"size:200;not null"`
	ShiftID     string    `gorm:"size:64;not null;default:'';index:idx_ledger_transactions_shift"`
	OccurredAt  time.Time `gorm:"not null"`
	Day         string    `gorm:"size:10;not null;index:idx_ledger_transactions_day"`
}

func (LedgerTransaction) TableName() string { return "ledger_transactions" }

func (transaction *LedgerTransaction) BeforeCreate(tx *gorm.DB) error {
	if transaction.ID == "" {
		transaction.ID = uuid.NewString()
	}
	return nil
}

// Shift mirrors the shifts table.
type Shift struct {
	ID           string     `gorm:"primaryKey;size:64"`
	AdminID      string     `gorm:"size:64;not null;index:idx_shifts_admin"`
	AdminName    string     `gorm:"size:200;not null"`
	AdminRole    string     `gorm:"size:20;not null"`
	StartTime    time.Time  `gorm:"not null;index:idx_shifts_start"`
	EndTime      *time.Time `gorm:""`
	TotalIncome  int64      `gorm:"not null;default:0"`
	TotalExpense int64      `gorm:"not null;default:0"`
	Notes        string     `gorm:"size:500;not null;default:''"`
	Closed       bool       `gorm:"not null;default:false"`
}

func (Shift) TableName() string { return "shifts" }

func (shift *Shift) BeforeCreate(tx *gorm.DB) error {
	if shift.ID == "" {
		shift.ID = uuid.NewString()
	}
	return nil
}

// DailyReport mirrors the daily_reports table. A row locks its date.
type DailyReport struct {
	ReportDate   string    `gorm:"primaryKey;size:10"`
	ReportText   string    `gorm:"type:text;not null"`
	TotalIncome  int64     `gorm:"not null"`
	TotalExpense int64     `gorm:"not null"`
	ClosedAt     time.Time `gorm:"not null"`
	AdminName    string    `gorm:"size:200;not null"`
}

func (DailyReport) TableName() string { return "daily_reports" }

// ActivityLog mirrors the append-only activity_logs table.
type ActivityLog struct {
	ID          string         `gorm:"primaryKey;size:64"`
	OccurredAt  time.Time      `gorm:"not null;index:idx_activity_logs_occurred"`
	AdminName   string         `gorm:"size:200;not null"`
	Action      string         `gorm:"size:50;not null"`
	Description string         `gorm:"size:500;not null;default:''"`
	RoomNumber  string         `gorm:"size:20;not null;default:''"`
	Amount      int64          `gorm:"not null;default:0"`
	Details     datatypes.JSON `gorm:"not null"`
}

func (ActivityLog) TableName() string { return "activity_logs" }

func (entry *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	return nil
}

// DayLock is one row per calendar day that writers and CloseDay lock with FOR UPDATE.
type DayLock struct {
	Day string `gorm:"primaryKey;size:10"`
}

func (DayLock) TableName() string { return "day_locks" }

// AutoMigrate creates or updates every table the store uses.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Room{}, &Booking{}, &LedgerTransaction{}, &Shift{}, &DailyReport{}, &DayLock{}, &ActivityLog{})
}
