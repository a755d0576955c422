package handler

import (
	"errors"
	"net/http"

	"github.com/Gakenye8741/ticket-gateway/internal/backend"
	"github.com/Gakenye8741/ticket-gateway/internal/service"
	"github.com/labstack/echo/v4"
)

// toHTTPError maps service and backend errors onto HTTP responses.
func toHTTPError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrUnknownTicketType),
		errors.Is(err, service.ErrTotalBelowMinimum):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrEventNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotBookingOwner):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrBookingNotEditable),
		errors.Is(err, service.ErrBookingNotCancellable):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrBookingIDMissing),
		errors.Is(err, service.ErrCheckoutSessionFailed):
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return echo.NewHTTPError(apiErr.StatusCode, apiErr.Message)
	}

	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
