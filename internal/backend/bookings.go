package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Gakenye8741/ticket-gateway/internal/models"
)

type CreateBookingRequest struct {
	NationalID     int64  `json:"nationalId"`
	EventID        int    `json:"eventId"`
	TicketTypeID   int    `json:"ticketTypeId"`
	TicketTypeName string `json:"ticketTypeName"`
	Quantity       int    `json:"quantity"`
	TotalAmount    string `json:"totalAmount"`
}

// CreateBookingResponse mirrors the backend's create envelope: the created
// booking arrives wrapped in a single-element array.
type CreateBookingResponse struct {
	Message string           `json:"message"`
	Booking []models.Booking `json:"booking"`
}

// Created returns the booking from the envelope, or nil when the backend
// answered without one.
func (r *CreateBookingResponse) Created() *models.Booking {
	if len(r.Booking) == 0 {
		return nil
	}
	return &r.Booking[0]
}

type UpdateBookingRequest struct {
	Status       models.BookingStatus `json:"bookingStatus"`
	Quantity     int                  `json:"quantity"`
	TotalAmount  string               `json:"totalAmount"`
	TicketTypeID int                  `json:"ticketTypeId"`
	EventID      int                  `json:"eventId"`
	NationalID   int64                `json:"nationalId"`
}

type BookingAPI interface {
	ListBookings(ctx context.Context) ([]models.Booking, error)
	GetBooking(ctx context.Context, id int) (*models.Booking, error)
	ListBookingsByNationalID(ctx context.Context, nationalID int64) ([]models.Booking, error)
	ListBookingsByEventID(ctx context.Context, eventID int) ([]models.Booking, error)
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*CreateBookingResponse, error)
	UpdateBooking(ctx context.Context, id int, req UpdateBookingRequest) error
	UpdateBookingStatus(ctx context.Context, id int, status models.BookingStatus) error
	CancelBooking(ctx context.Context, id int) error
	DeleteBooking(ctx context.Context, id int) error
}

func (c *Client) ListBookings(ctx context.Context) ([]models.Booking, error) {
	var out []models.Booking
	if err := c.do(ctx, http.MethodGet, "/bookings", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetBooking(ctx context.Context, id int) (*models.Booking, error) {
	var out models.Booking
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/bookings/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListBookingsByNationalID(ctx context.Context, nationalID int64) ([]models.Booking, error) {
	var out []models.Booking
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/bookings/user/national-id/%d", nationalID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListBookingsByEventID(ctx context.Context, eventID int) ([]models.Booking, error) {
	var out []models.Booking
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/bookings/event/%d", eventID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateBooking(ctx context.Context, req CreateBookingRequest) (*CreateBookingResponse, error) {
	var out CreateBookingResponse
	if err := c.do(ctx, http.MethodPost, "/bookings", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateBooking(ctx context.Context, id int, req UpdateBookingRequest) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/bookings/%d", id), req, nil)
}

func (c *Client) UpdateBookingStatus(ctx context.Context, id int, status models.BookingStatus) error {
	body := struct {
		Status models.BookingStatus `json:"status"`
	}{Status: status}
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/bookings/%d/status", id), body, nil)
}

func (c *Client) CancelBooking(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/bookings/%d/cancel", id), nil, nil)
}

func (c *Client) DeleteBooking(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/bookings/%d", id), nil, nil)
}
