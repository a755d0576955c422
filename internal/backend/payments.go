package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Gakenye8741/ticket-gateway/internal/models"
)

// CreateCheckoutSessionRequest asks the payment gateway for a hosted payment
// page. Amount is in minor currency units (integer cents).
type CreateCheckoutSessionRequest struct {
	Amount     int64  `json:"amount"`
	NationalID int64  `json:"nationalId"`
	BookingID  int    `json:"bookingId"`
	Currency   string `json:"currency"`
	SuccessURL string `json:"successUrl"`
	CancelURL  string `json:"cancelUrl"`
}

type CreateCheckoutSessionResponse struct {
	URL string `json:"url"`
}

type PaymentAPI interface {
	ListPayments(ctx context.Context) ([]models.Payment, error)
	GetPayment(ctx context.Context, id int) (*models.Payment, error)
	ListPaymentsByBookingID(ctx context.Context, bookingID int) ([]models.Payment, error)
	ListPaymentsByNationalID(ctx context.Context, nationalID int64) ([]models.Payment, error)
	ListPaymentsByStatus(ctx context.Context, status models.PaymentStatus) ([]models.Payment, error)
	CreateCheckoutSession(ctx context.Context, req CreateCheckoutSessionRequest) (*CreateCheckoutSessionResponse, error)
}

func (c *Client) ListPayments(ctx context.Context) ([]models.Payment, error) {
	var out []models.Payment
	if err := c.do(ctx, http.MethodGet, "/payments", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetPayment(ctx context.Context, id int) (*models.Payment, error) {
	var out models.Payment
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/payments/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListPaymentsByBookingID(ctx context.Context, bookingID int) ([]models.Payment, error) {
	var out []models.Payment
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/payments/booking/%d", bookingID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListPaymentsByNationalID(ctx context.Context, nationalID int64) ([]models.Payment, error) {
	var out []models.Payment
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/payments/national-id/%d", nationalID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListPaymentsByStatus(ctx context.Context, status models.PaymentStatus) ([]models.Payment, error) {
	var out []models.Payment
	path := "/payments-status-search?status=" + url.QueryEscape(string(status))
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCheckoutSession(ctx context.Context, req CreateCheckoutSessionRequest) (*CreateCheckoutSessionResponse, error) {
	var out CreateCheckoutSessionResponse
	if err := c.do(ctx, http.MethodPost, "/payments/create-session", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
