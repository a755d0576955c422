package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Gakenye8741/ticket-gateway/internal/models"
)

type MediaAPI interface {
	ListMediaByEventID(ctx context.Context, eventID int) ([]models.Media, error)
}

func (c *Client) ListMediaByEventID(ctx context.Context, eventID int) ([]models.Media, error) {
	var out []models.Media
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/media/event/%d", eventID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
