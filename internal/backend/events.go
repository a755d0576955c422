package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Gakenye8741/ticket-gateway/internal/models"
)

type CreateEventRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description,omitempty"`
	VenueID      int     `json:"venueId"`
	Category     string  `json:"category,omitempty"`
	Date         string  `json:"date"`
	Time         string  `json:"time"`
	TicketPrice  float64 `json:"ticketPrice"`
	TicketsTotal int     `json:"ticketsTotal"`
}

type UpdateEventRequest struct {
	Title        *string  `json:"title,omitempty"`
	Description  *string  `json:"description,omitempty"`
	VenueID      *int     `json:"venueId,omitempty"`
	Category     *string  `json:"category,omitempty"`
	Date         *string  `json:"date,omitempty"`
	Time         *string  `json:"time,omitempty"`
	TicketPrice  *float64 `json:"ticketPrice,omitempty"`
	TicketsTotal *int     `json:"ticketsTotal,omitempty"`
	Status       *string  `json:"status,omitempty"`
}

type EventAPI interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
	GetEvent(ctx context.Context, id int) (*models.Event, error)
	SearchEventsByTitle(ctx context.Context, title string) ([]models.Event, error)
	SearchEventsByCategory(ctx context.Context, category string) ([]models.Event, error)
	CreateEvent(ctx context.Context, req CreateEventRequest) (*models.Event, error)
	UpdateEvent(ctx context.Context, id int, req UpdateEventRequest) error
	DeleteEvent(ctx context.Context, id int) error
}

func (c *Client) ListEvents(ctx context.Context) ([]models.Event, error) {
	var out []models.Event
	if err := c.do(ctx, http.MethodGet, "/events", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetEvent(ctx context.Context, id int) (*models.Event, error) {
	var out models.Event
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/events/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SearchEventsByTitle(ctx context.Context, title string) ([]models.Event, error) {
	var out []models.Event
	path := "/events-search-title?title=" + url.QueryEscape(title)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SearchEventsByCategory(ctx context.Context, category string) ([]models.Event, error) {
	var out []models.Event
	path := "/events-search-category?category=" + url.QueryEscape(category)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateEvent(ctx context.Context, req CreateEventRequest) (*models.Event, error) {
	var out models.Event
	if err := c.do(ctx, http.MethodPost, "/events", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateEvent(ctx context.Context, id int, req UpdateEventRequest) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/events/%d", id), req, nil)
}

func (c *Client) DeleteEvent(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/events/%d", id), nil, nil)
}
