package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Gakenye8741/ticket-gateway/internal/models"
)

type CreateSupportTicketRequest struct {
	NationalID  int64  `json:"nationalId"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
}

type SupportAPI interface {
	ListSupportTickets(ctx context.Context) ([]models.SupportTicket, error)
	ListSupportTicketsByNationalID(ctx context.Context, nationalID int64) ([]models.SupportTicket, error)
	CreateSupportTicket(ctx context.Context, req CreateSupportTicketRequest) (*models.SupportTicket, error)
	UpdateSupportTicketStatus(ctx context.Context, id int, status string) error
}

func (c *Client) ListSupportTickets(ctx context.Context) ([]models.SupportTicket, error) {
	var out []models.SupportTicket
	if err := c.do(ctx, http.MethodGet, "/support-tickets", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListSupportTicketsByNationalID(ctx context.Context, nationalID int64) ([]models.SupportTicket, error) {
	var out []models.SupportTicket
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/support-tickets/national-id/%d", nationalID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateSupportTicket(ctx context.Context, req CreateSupportTicketRequest) (*models.SupportTicket, error) {
	var out models.SupportTicket
	if err := c.do(ctx, http.MethodPost, "/support-tickets", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateSupportTicketStatus(ctx context.Context, id int, status string) error {
	body := struct {
		Status string `json:"status"`
	}{Status: status}
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/support-tickets/%d/status", id), body, nil)
}
