package oplog

import (
	"context"

	"github.com/MarkoPoloResearchLab/frontdesk/pkg/frontdesk"
	"go.uber.org/zap"
)

const operationMessage = "frontdesk operation"

// ZapOperationLogger writes frontdesk operation events as structured zap entries.
// Rejections with a known error kind log at warn; unexpected failures at error.
type ZapOperationLogger struct {
	logger *zap.Logger
}

// NewZapOperationLogger wraps logger. A nil logger discards events.
func NewZapOperationLogger(logger *zap.Logger) *ZapOperationLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapOperationLogger{logger: logger}
}

// LogOperation implements frontdesk.OperationLogger.
func (operationLogger *ZapOperationLogger) LogOperation(_ context.Context, entry frontdesk.OperationLog) {
	fields := []zap.Field{
		zap.String("operation", entry.Operation),
		zap.String("status", entry.Status),
		zap.String("admin_id", entry.Actor.ID),
		zap.String("admin_name", entry.Actor.Name),
		zap.String("admin_role", string(entry.Actor.Role)),
	}
	fields = appendNonEmpty(fields, "room_number", entry.RoomNumber)
	fields = appendNonEmpty(fields, "booking_id", entry.BookingID)
	fields = appendNonEmpty(fields, "transaction_id", entry.TransactionID)
	fields = appendNonEmpty(fields, "shift_id", entry.ShiftID)
	fields = appendNonEmpty(fields, "day", entry.Day)
	if entry.Amount != 0 {
		fields = append(fields, zap.Int64("amount", entry.Amount.Int64()))
	}
	if entry.Error == nil {
		operationLogger.logger.Info(operationMessage, fields...)
		return
	}
	fields = append(fields, zap.Error(entry.Error))
	kind := frontdesk.KindOf(entry.Error)
	if kind == "" {
		operationLogger.logger.Error(operationMessage, fields...)
		return
	}
	fields = append(fields, zap.String("error_code", string(kind)))
	operationLogger.logger.Warn(operationMessage, fields...)
}

func appendNonEmpty(fields []zap.Field, key string, value string) []zap.Field {
	if value == "" {
		return fields
	}
	return append(fields, zap.String(key, value))
}
