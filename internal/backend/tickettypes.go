package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Gakenye8741/ticket-gateway/internal/models"
)

type CreateTicketTypeRequest struct {
	EventID int     `json:"eventId"`
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
}

type UpdateTicketTypeRequest struct {
	Name  *string  `json:"name,omitempty"`
	Price *float64 `json:"price,omitempty"`
}

type TicketTypeAPI interface {
	ListTicketTypes(ctx context.Context) ([]models.TicketType, error)
	GetTicketType(ctx context.Context, id int) (*models.TicketType, error)
	ListTicketTypesByEventID(ctx context.Context, eventID int) ([]models.TicketType, error)
	CreateTicketType(ctx context.Context, req CreateTicketTypeRequest) (*models.TicketType, error)
	UpdateTicketType(ctx context.Context, id int, req UpdateTicketTypeRequest) error
	DeleteTicketType(ctx context.Context, id int) error
}

func (c *Client) ListTicketTypes(ctx context.Context) ([]models.TicketType, error) {
	var out []models.TicketType
	if err := c.do(ctx, http.MethodGet, "/ticket-types", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetTicketType(ctx context.Context, id int) (*models.TicketType, error) {
	var out models.TicketType
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/ticket-types/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListTicketTypesByEventID(ctx context.Context, eventID int) ([]models.TicketType, error) {
	var out []models.TicketType
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/ticket-types/event/%d", eventID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateTicketType(ctx context.Context, req CreateTicketTypeRequest) (*models.TicketType, error) {
	var out models.TicketType
	if err := c.do(ctx, http.MethodPost, "/ticket-types", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTicketType(ctx context.Context, id int, req UpdateTicketTypeRequest) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/ticket-types/%d", id), req, nil)
}

func (c *Client) DeleteTicketType(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/ticket-types/%d", id), nil, nil)
}
