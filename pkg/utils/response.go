package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "room-inventory/pkg/errors"
	"room-inventory/pkg/types"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

// SuccessResponse wraps body as {list, pagination} when the client asked for pagination and total is given.
func SuccessResponse(ctx echo.Context, body interface{}, message string, code int, total ...uint64) error {
	response := &HTTPResponse{Status: true, Message: message, Body: body}
	if len(total) > 0 && ctx.QueryParam("withPagination") == "true" {
		filter := ParseFilterFromQuery(ctx.Request().URL.Query())
		response.Body = map[string]interface{}{
			"list":       body,
			"pagination": types.NewPagination(total[0], filter.Page, filter.Limit),
		}
	}
	return ctx.JSON(code, response)
}

func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		msgs := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed '%s'", e.Field(), e.Tag()))
		}
		return c.JSON(http.StatusBadRequest, HTTPResponse{Message: "validation failed: " + strings.Join(msgs, "; ")})
	}

	code := apperrors.HTTPStatus(err)
	response := HTTPResponse{Message: apperrors.PublicMessage(err)}

	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Details != nil {
			response.Body = httpErr.Details
		}
		if httpErr.Err != nil {
			logger.Error("HTTP error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
				zap.Any("context", httpErr.Context),
			)
		}
	} else if code == http.StatusInternalServerError {
		logger.Error("unexpected error", zap.Error(err))
	}

	return c.JSON(code, response)
}
