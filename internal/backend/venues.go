package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Gakenye8741/ticket-gateway/internal/models"
)

type CreateVenueRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Capacity int    `json:"capacity"`
}

type UpdateVenueRequest struct {
	Name     *string `json:"name,omitempty"`
	Address  *string `json:"address,omitempty"`
	Capacity *int    `json:"capacity,omitempty"`
	Status   *string `json:"status,omitempty"`
}

type VenueAPI interface {
	ListVenues(ctx context.Context) ([]models.Venue, error)
	GetVenue(ctx context.Context, id int) (*models.Venue, error)
	CreateVenue(ctx context.Context, req CreateVenueRequest) (*models.Venue, error)
	UpdateVenue(ctx context.Context, id int, req UpdateVenueRequest) error
	DeleteVenue(ctx context.Context, id int) error
}

func (c *Client) ListVenues(ctx context.Context) ([]models.Venue, error) {
	var out []models.Venue
	if err := c.do(ctx, http.MethodGet, "/venues", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetVenue(ctx context.Context, id int) (*models.Venue, error) {
	var out models.Venue
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/venues/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateVenue(ctx context.Context, req CreateVenueRequest) (*models.Venue, error) {
	var out models.Venue
	if err := c.do(ctx, http.MethodPost, "/venues", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateVenue(ctx context.Context, id int, req UpdateVenueRequest) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/venues/%d", id), req, nil)
}

func (c *Client) DeleteVenue(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/venues/%d", id), nil, nil)
}
