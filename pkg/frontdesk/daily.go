package frontdesk

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// DaySnapshot is the read-only view of one calendar day.
type DaySnapshot struct {
	Date         string
	Transactions []Transaction
	Shifts       []Shift
	Rooms        []Room
	Report       *DailyReport
}

// CloseDay snapshots the day's totals into a daily report, locking the day.
// Closing an already closed day refreshes the snapshot.
func (service *Service) CloseDay(ctx context.Context, actor Actor, date CalendarDate, reportText string) (DailyReport, error) {
	entry := OperationLog{Operation: operationCloseDay, Actor: actor, Day: date.String()}
	if err := actor.validate(); err != nil {
		return DailyReport{}, service.reject(ctx, entry, err)
	}
	if date.IsZero() {
		return DailyReport{}, service.reject(ctx, entry, fmt.Errorf("%w: empty value", ErrInvalidCalendarDate))
	}
	text := strings.TrimSpace(reportText)
	if text == "" {
		return DailyReport{}, service.reject(ctx, entry, fmt.Errorf("%w: empty value", ErrInvalidReportText))
	}
	if len(text) > maxReportTextLength {
		return DailyReport{}, service.reject(ctx, entry, fmt.Errorf("%w: longer than %d bytes", ErrInvalidReportText, maxReportTextLength))
	}
	var report DailyReport
	err := service.atomically(ctx, &entry, func(ctx context.Context, transactionStore Store) error {
		if err := transactionStore.LockDay(ctx, date.String()); err != nil {
			return err
		}
		totals, err := transactionStore.SumDay(ctx, date.String())
		if err != nil {
			return err
		}
		report = DailyReport{
			Date:         date.String(),
			ReportText:   text,
			TotalIncome:  totals.Income,
			TotalExpense: totals.Expense,
			ClosedAt:     service.now(),
			AdminName:    actor.Name,
		}
		entry.Amount = totals.Income
		if err := transactionStore.UpsertDailyReport(ctx, report); err != nil {
			return err
		}
		return service.appendActivity(ctx, transactionStore, actor, activityDayClose,
			fmt.Sprintf("Day closed: %s", report.Date), "", 0,
			activityDetails{"total_income": report.TotalIncome, "total_expense": report.TotalExpense})
	})
	if err != nil {
		return DailyReport{}, err
	}
	return report, nil
}

// IsDayClosed reports whether date has a daily report.
func (service *Service) IsDayClosed(ctx context.Context, date CalendarDate) (bool, error) {
	if date.IsZero() {
		return false, fmt.Errorf("%w: empty value", ErrInvalidCalendarDate)
	}
	return service.store.DailyReportExists(ctx, date.String())
}

// ListClosedDays lists daily reports of month, or every report for a zero month.
func (service *Service) ListClosedDays(ctx context.Context, month Month) ([]DailyReport, error) {
	return service.store.ListDailyReports(ctx, month.String())
}

// DaySnapshot collects the day's transactions, the shifts started that day, the
// current rooms, and the daily report when the day is closed.
func (service *Service) DaySnapshot(ctx context.Context, date CalendarDate) (DaySnapshot, error) {
	if date.IsZero() {
		return DaySnapshot{}, fmt.Errorf("%w: empty value", ErrInvalidCalendarDate)
	}
	transactions, err := service.store.ListTransactions(ctx, TransactionFilter{Day: date.String()})
	if err != nil {
		return DaySnapshot{}, err
	}
	since := date.Start(service.location)
	until := date.AddDays(1).Start(service.location)
	shifts, err := service.store.ListShifts(ctx, ShiftFilter{Since: &since, Until: &until})
	if err != nil {
		return DaySnapshot{}, err
	}
	rooms, err := service.store.ListRooms(ctx)
	if err != nil {
		return DaySnapshot{}, err
	}
	snapshot := DaySnapshot{
		Date:         date.String(),
		Transactions: transactions,
		Shifts:       shifts,
		Rooms:        rooms,
	}
	report, err := service.store.GetDailyReport(ctx, date.String())
	switch {
	case err == nil:
		snapshot.Report = &report
	case !errors.Is(err, ErrUnknownDailyReport):
		return DaySnapshot{}, err
	}
	return snapshot, nil
}
