package httpapi

import (
	"net/http"

	"github.com/MarkoPoloResearchLab/frontdesk/pkg/frontdesk"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	codeInternal      = "INTERNAL_ERROR"
	codeInvalidJSON   = "VALIDATION_ERROR"
	messageInternal   = "internal error"
	statusDayLocked   = http.StatusLocked
	messageBadPayload = "invalid request payload"
)

var kindStatuses = map[frontdesk.ErrorKind]int{
	frontdesk.KindValidation:        http.StatusBadRequest,
	frontdesk.KindForbidden:         http.StatusForbidden,
	frontdesk.KindNotFound:          http.StatusNotFound,
	frontdesk.KindConflict:          http.StatusConflict,
	frontdesk.KindInvalidState:      http.StatusConflict,
	frontdesk.KindInvalidTransition: http.StatusConflict,
	frontdesk.KindDayLocked:         statusDayLocked,
}

// statusForError maps a domain error onto its HTTP status and envelope code.
func statusForError(err error) (int, string) {
	kind := frontdesk.KindOf(err)
	status, ok := kindStatuses[kind]
	if !ok {
		return http.StatusInternalServerError, codeInternal
	}
	return status, string(kind)
}

func (handler *httpHandler) respondError(ctx *gin.Context, err error) {
	status, code := statusForError(err)
	if status == http.StatusInternalServerError {
		handler.logger.Error("request failed", zap.String("path", ctx.FullPath()), zap.Error(err))
		ctx.JSON(status, errorResponse(code, messageInternal))
		return
	}
	ctx.JSON(status, errorResponse(code, err.Error()))
}

func (handler *httpHandler) respondBindError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, errorResponse(codeInvalidJSON, messageBadPayload+": "+err.Error()))
}
