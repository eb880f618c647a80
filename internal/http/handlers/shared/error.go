package shared

import (
	"errors"

	"github.com/tawseel-next/internal/http/response"
	"github.com/tawseel-next/internal/i18n"
	"github.com/tawseel-next/internal/logger"
	"github.com/tawseel-next/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog logger carrying the request_id
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError translated error response; err, when set, is logged and never sent
func RespondError(c *gin.Context, code int, key string, err error) {
	locale := i18n.ResolveLocale(c)
	RespondErrorWithMsg(c, code, i18n.T(locale, key), err)
}

// RespondErrorWithMsg error response with a ready message
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", code,
			"message", msg,
			"path", c.FullPath(),
			"error", err,
		)
	}
	response.Error(c, code, msg)
}

// MappedError maps a service error onto a response code and message key
type MappedError struct {
	Target error
	Code   int
	Key    string
}

// RespondMapped answers with the first matching rule. Field validation errors become
// 400 with the field name; anything else falls back and is logged.
func RespondMapped(c *gin.Context, err error, rules []MappedError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.Target) {
			RespondError(c, rule.Code, rule.Key, nil)
			return
		}
	}
	var fieldErr *service.FieldError
	if errors.As(err, &fieldErr) {
		RespondErrorWithMsg(c, response.CodeBadRequest, FieldErrorMessage(i18n.ResolveLocale(c), fieldErr), nil)
		return
	}
	RespondError(c, fallbackCode, fallbackKey, err)
}

// ConcatRules joins rule groups
func ConcatRules(groups ...[]MappedError) []MappedError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]MappedError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

// FieldErrorMessage localized text for a field validation error
func FieldErrorMessage(locale string, err *service.FieldError) string {
	if err.Reason == "" {
		return i18n.Sprintf(locale, "error.field_required", err.Field)
	}
	return i18n.Sprintf(locale, "error.field_invalid", err.Field, err.Reason)
}
