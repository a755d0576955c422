package handler

import (
	"net/http"
	"strconv"

	"github.com/Gakenye8741/ticket-gateway/internal/backend"
	"github.com/Gakenye8741/ticket-gateway/internal/dto"
	"github.com/Gakenye8741/ticket-gateway/internal/repository"
	"github.com/Gakenye8741/ticket-gateway/internal/service"
	"github.com/Gakenye8741/ticket-gateway/internal/session"
	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	checkout   service.CheckoutService
	bookings   service.BookingService
	reconciler service.ReconcileService
	payments   backend.PaymentAPI
	attempts   repository.AttemptRepository
}

func NewBookingHandler(
	checkout service.CheckoutService,
	bookings service.BookingService,
	reconciler service.ReconcileService,
	payments backend.PaymentAPI,
	attempts repository.AttemptRepository,
) *BookingHandler {
	return &BookingHandler{
		checkout:   checkout,
		bookings:   bookings,
		reconciler: reconciler,
		payments:   payments,
		attempts:   attempts,
	}
}

func (h *BookingHandler) RegisterRoutes(g *echo.Group, admin *echo.Group) {
	g.POST("/bookings", h.SubmitBooking)
	g.GET("/bookings", h.ListMyBookings)
	g.GET("/bookings/:id", h.GetBooking)
	g.PUT("/bookings/:id", h.EditBooking)
	g.PATCH("/bookings/:id/cancel", h.CancelBooking)
	g.POST("/reconcile", h.Reconcile)
	g.GET("/payments", h.ListMyPayments)
	g.GET("/payments/booking/:id", h.ListPaymentsByBooking)

	admin.GET("/booking-attempts/orphans", h.ListOrphanedAttempts)
}

// SubmitBooking runs the full booking flow and hands back the external
// payment page URL; the caller performs the redirect.
func (h *BookingHandler) SubmitBooking(c echo.Context) error {
	ident, ok := session.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	var req dto.SubmitBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result, err := h.checkout.Submit(c.Request().Context(), ident, service.SubmitInput{
		EventID:      req.EventID,
		TicketTypeID: req.TicketTypeID,
		Quantity:     req.Quantity,
		Origin:       c.Request().Header.Get("Origin"),
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, result)
}

func (h *BookingHandler) ListMyBookings(c echo.Context) error {
	ident, ok := session.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	views, err := h.bookings.ListForCustomer(c.Request().Context(), ident.NationalID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, views)
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	ident, ok := session.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	view, err := h.bookings.Get(c.Request().Context(), ident, id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *BookingHandler) EditBooking(c echo.Context) error {
	ident, ok := session.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	var req dto.EditBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	booking, err := h.bookings.Edit(c.Request().Context(), ident, id, service.EditBookingInput{
		TicketTypeID: req.TicketTypeID,
		Quantity:     req.Quantity,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) CancelBooking(c echo.Context) error {
	ident, ok := session.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	if err := h.bookings.Cancel(c.Request().Context(), ident, id); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "booking cancelled"})
}

func (h *BookingHandler) Reconcile(c echo.Context) error {
	ident, ok := session.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	confirmed, err := h.reconciler.Reconcile(c.Request().Context(), ident.NationalID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ReconcileResponse{Confirmed: confirmed})
}

func (h *BookingHandler) ListMyPayments(c echo.Context) error {
	ident, ok := session.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	payments, err := h.payments.ListPaymentsByNationalID(c.Request().Context(), ident.NationalID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, payments)
}

func (h *BookingHandler) ListPaymentsByBooking(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	payments, err := h.payments.ListPaymentsByBookingID(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, payments)
}

// ListOrphanedAttempts surfaces bookings that were created but never got a
// payment session.
func (h *BookingHandler) ListOrphanedAttempts(c echo.Context) error {
	attempts, err := h.attempts.FindOrphans(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, attempts)
}
