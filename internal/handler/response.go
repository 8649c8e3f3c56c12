package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/zizouhuweidi/trivia/internal/domain"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Success bool              `json:"success"`
	Error   int               `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

var messages = map[int]string{
	http.StatusBadRequest:          "client error, make modifications to request!",
	http.StatusNotFound:            "requested resource not found",
	http.StatusMethodNotAllowed:    "requested method is not valid!",
	http.StatusConflict:            "request conflicts with current state",
	http.StatusUnprocessableEntity: "provided instructions cannot be processed",
	http.StatusTooManyRequests:     "too many requests",
	http.StatusInternalServerError: "internal server error",
	http.StatusServiceUnavailable:  "service unavailable",
}

func statusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindInvalidInput:
		return http.StatusUnprocessableEntity
	case domain.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func newErrorResponse(err error) ErrorResponse {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg, ok := messages[he.Code]
		if !ok {
			msg = fmt.Sprint(he.Message)
		}
		return ErrorResponse{Error: he.Code, Message: msg}
	}

	code := statusFor(domain.KindOf(err))
	resp := ErrorResponse{Error: code, Message: messages[code]}

	var derr *domain.Error
	if errors.As(err, &derr) && len(derr.Fields) > 0 {
		resp.Fields = derr.Fields
	}
	return resp
}

// ErrorHandler renders every error as an ErrorResponse
func ErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		resp := newErrorResponse(err)
		if resp.Error >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(resp.Error)
		} else {
			err = c.JSON(resp.Error, resp)
		}
		if err != nil {
			log.Error("failed to write error response", zap.Error(err))
		}
	}
}
