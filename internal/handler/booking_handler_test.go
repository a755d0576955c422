package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Gakenye8741/ticket-gateway/internal/models"
	"github.com/Gakenye8741/ticket-gateway/internal/service"
	"github.com/Gakenye8741/ticket-gateway/internal/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

type stubCheckout struct {
	submitFn func(ctx context.Context, ident session.Identity, in service.SubmitInput) (*service.SubmitResult, error)
}

func (s *stubCheckout) Submit(ctx context.Context, ident session.Identity, in service.SubmitInput) (*service.SubmitResult, error) {
	return s.submitFn(ctx, ident, in)
}

type stubBookings struct {
	listFn   func(ctx context.Context, nationalID int64) ([]service.BookingView, error)
	getFn    func(ctx context.Context, ident session.Identity, id int) (*service.BookingView, error)
	editFn   func(ctx context.Context, ident session.Identity, id int, in service.EditBookingInput) (*models.Booking, error)
	cancelFn func(ctx context.Context, ident session.Identity, id int) error
}

func (s *stubBookings) ListForCustomer(ctx context.Context, nationalID int64) ([]service.BookingView, error) {
	return s.listFn(ctx, nationalID)
}
func (s *stubBookings) Get(ctx context.Context, ident session.Identity, id int) (*service.BookingView, error) {
	return s.getFn(ctx, ident, id)
}
func (s *stubBookings) Edit(ctx context.Context, ident session.Identity, id int, in service.EditBookingInput) (*models.Booking, error) {
	return s.editFn(ctx, ident, id, in)
}
func (s *stubBookings) Cancel(ctx context.Context, ident session.Identity, id int) error {
	return s.cancelFn(ctx, ident, id)
}

type stubReconciler struct {
	reconcileFn func(ctx context.Context, nationalID int64) ([]int, error)
}

func (s *stubReconciler) Reconcile(ctx context.Context, nationalID int64) ([]int, error) {
	return s.reconcileFn(ctx, nationalID)
}
func (s *stubReconciler) ReconcileAll(ctx context.Context) ([]int, error) { return nil, nil }

func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder) echo.Context {
	c := e.NewContext(req, rec)
	c.Set("identity", session.Identity{NationalID: 31415926, Email: "fan@example.com", Role: "user"})
	return c
}

func TestSubmitBooking_Created(t *testing.T) {
	var gotInput service.SubmitInput
	var gotIdent session.Identity
	h := &BookingHandler{checkout: &stubCheckout{
		submitFn: func(ctx context.Context, ident session.Identity, in service.SubmitInput) (*service.SubmitResult, error) {
			gotIdent = ident
			gotInput = in
			return &service.SubmitResult{
				Booking:     &models.Booking{BookingID: 42, Status: models.BookingPending},
				CheckoutURL: "https://pay.example.com/cs_123",
				AttemptID:   "attempt-1",
			}, nil
		},
	}}

	e := echo.New()
	body := `{"event_id":3,"ticket_type_id":7,"quantity":2}`
	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Origin", "https://tickets.example.com")
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)

	assert.NoError(t, h.SubmitBooking(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, int64(31415926), gotIdent.NationalID)
	assert.Equal(t, 3, gotInput.EventID)
	assert.Equal(t, 7, gotInput.TicketTypeID)
	assert.Equal(t, 2, gotInput.Quantity)
	assert.Equal(t, "https://tickets.example.com", gotInput.Origin)

	var resp service.SubmitResult
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "https://pay.example.com/cs_123", resp.CheckoutURL)
	assert.Equal(t, 42, resp.Booking.BookingID)
}

func TestSubmitBooking_Unauthenticated(t *testing.T) {
	h := &BookingHandler{checkout: &stubCheckout{}}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec) // no identity on the context

	err := h.SubmitBooking(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestSubmitBooking_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"invalid quantity", service.ErrInvalidQuantity, http.StatusBadRequest},
		{"unknown ticket type", service.ErrUnknownTicketType, http.StatusBadRequest},
		{"total below minimum", service.ErrTotalBelowMinimum, http.StatusBadRequest},
		{"missing booking id", service.ErrBookingIDMissing, http.StatusBadGateway},
		{"session failed", service.ErrCheckoutSessionFailed, http.StatusBadGateway},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := &BookingHandler{checkout: &stubCheckout{
				submitFn: func(ctx context.Context, ident session.Identity, in service.SubmitInput) (*service.SubmitResult, error) {
					return nil, tc.err
				},
			}}

			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(`{"event_id":3,"ticket_type_id":7,"quantity":1}`))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := authedContext(e, req, rec)

			err := h.SubmitBooking(c)
			httpErr, ok := err.(*echo.HTTPError)
			assert.True(t, ok)
			assert.Equal(t, tc.code, httpErr.Code)
		})
	}
}

func TestGetBooking_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"not found", service.ErrBookingNotFound, http.StatusNotFound},
		{"not owner", service.ErrNotBookingOwner, http.StatusForbidden},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := &BookingHandler{bookings: &stubBookings{
				getFn: func(ctx context.Context, ident session.Identity, id int) (*service.BookingView, error) {
					return nil, tc.err
				},
			}}

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/bookings/5", nil)
			rec := httptest.NewRecorder()
			c := authedContext(e, req, rec)
			c.SetParamNames("id")
			c.SetParamValues("5")

			err := h.GetBooking(c)
			httpErr, ok := err.(*echo.HTTPError)
			assert.True(t, ok)
			assert.Equal(t, tc.code, httpErr.Code)
		})
	}
}

func TestCancelBooking_Conflict(t *testing.T) {
	h := &BookingHandler{bookings: &stubBookings{
		cancelFn: func(ctx context.Context, ident session.Identity, id int) error {
			return service.ErrBookingNotCancellable
		},
	}}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/bookings/5/cancel", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("5")

	err := h.CancelBooking(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
}

func TestReconcile_ReturnsConfirmedIDs(t *testing.T) {
	var gotNationalID int64
	h := &BookingHandler{reconciler: &stubReconciler{
		reconcileFn: func(ctx context.Context, nationalID int64) ([]int, error) {
			gotNationalID = nationalID
			return []int{10, 11}, nil
		},
	}}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/reconcile", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)

	assert.NoError(t, h.Reconcile(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(31415926), gotNationalID)
	assert.JSONEq(t, `{"confirmed":[10,11]}`, rec.Body.String())
}

func TestListMyBookings(t *testing.T) {
	h := &BookingHandler{bookings: &stubBookings{
		listFn: func(ctx context.Context, nationalID int64) ([]service.BookingView, error) {
			return []service.BookingView{
				{Booking: models.Booking{BookingID: 1, NationalID: nationalID, Status: models.BookingPending}, CanEdit: true, CanCancel: true},
			}, nil
		},
	}}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)

	assert.NoError(t, h.ListMyBookings(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var views []service.BookingView
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	assert.Len(t, views, 1)
	assert.True(t, views[0].CanEdit)
}
